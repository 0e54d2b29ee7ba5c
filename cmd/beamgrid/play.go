package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/beamgrid/beamgrid/internal/games/beam"
	"github.com/beamgrid/beamgrid/internal/platform/tui"
	"github.com/beamgrid/beamgrid/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level",
	Long: `Start playing. Without a level number the highest level reached is
opened. Locked levels cannot be played.

Controls:
  Mouse        - Drag mirrors along their tracks
  Arrows/WASD  - Move the cursor, or the held mirror
  Space        - Grab or drop the mirror under the cursor
  H            - Show the solution
  R            - Restart the level
  Esc/P        - Menu
  Q/Ctrl+C     - Quit

Examples:
  beamgrid play
  beamgrid play 4
  beamgrid play 2 --levels ./mylevels`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	game, err := registry.Create(beam.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	cfg := runtimeConfig()
	store := openStore()
	if store != nil {
		if maxLevel, err := store.MaxLevel(beam.ID, ""); err == nil {
			cfg.MaxLevel = maxLevel
		}
		if on, err := store.BoolSetting(tui.SettingKey("", tui.SoundSetting), cfg.Sound); err == nil {
			cfg.Sound = on
		}
	}

	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			fmt.Fprintf(os.Stderr, "Error: invalid level %q\n", args[0])
			os.Exit(1)
		}
		if n > cfg.MaxLevel {
			fmt.Fprintf(os.Stderr, "Error: level %d is locked (reached: %d)\n", n, cfg.MaxLevel)
			os.Exit(1)
		}
		cfg.StartLevel = n
	}

	player := newPlayer()
	player.SetEnabled(cfg.Sound)

	restoreLog := logToFile()
	runErr := tui.Run(game, store, player, cfg)
	restoreLog()

	player.Close()
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
