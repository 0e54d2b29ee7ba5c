// beamgrid is a terminal puzzle: slide mirrors along their tracks until the
// light beam reaches every gem.
//
// Usage:
//
//	beamgrid play [level]         - Play a level (default: highest reached)
//	beamgrid menu                 - Level select, play and best solves
//	beamgrid list                 - List levels and progress
//	beamgrid check [file...]      - Validate level files
//	beamgrid convert <src> <dst>  - Convert a level between .mp and .yaml
//	beamgrid scores [level]       - Show best solves
//	beamgrid serve                - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>     - Set tick rate (default: 60)
//	--db <path>      - Set database path (default: ~/.beamgrid/beamgrid.db)
//	--config <path>  - Use a custom beam.yaml
//	--levels <dir>   - Load levels from a directory instead of the built-in set
//	--log <path>     - Log file used while the terminal UI runs
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/beamgrid/beamgrid/internal/config"
	"github.com/beamgrid/beamgrid/internal/games/beam"
	"github.com/beamgrid/beamgrid/internal/games/beam/levels"
)

var (
	flagFPS       int
	flagSeed      int64
	flagDBPath    string
	flagConfig    string
	flagLevelsDir string
	flagStrict    bool
	flagLogPath   string
	flagDebug     bool

	beamConfig config.BeamConfig
	levelSrc   *levels.Loader
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "beamgrid",
	Short: "Beamgrid - a light beam puzzle for your terminal",
	Long: `Beamgrid is a tile puzzle played in the terminal. A light source shoots a
beam across the board; slide the mirrors along their tracks until the beam
touches every gem.

Available commands:
  play     - Play a level directly
  menu     - Level select with best solves
  list     - Show levels and your progress
  check    - Validate level files
  convert  - Convert levels between formats
  scores   - View best solves
  serve    - Start SSH server for remote play

Examples:
  beamgrid menu
  beamgrid play 3
  beamgrid check ./mylevels/level7.yaml
  beamgrid serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = time based)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.beamgrid/beamgrid.db", "Path to the progress and scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a custom beam.yaml")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "", "Directory of level files (default: built-in levels)")
	rootCmd.PersistentFlags().BoolVar(&flagStrict, "strict", false, "Skip levels that fail validation")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "~/.beamgrid/beamgrid.log", "Log file used while the terminal UI runs")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup loads the configuration and level source shared by every command.
func setup(_ *cobra.Command, _ []string) error {
	if flagDebug {
		log.SetLevel(log.DebugLevel)
	}

	cfg, err := config.LoadBeam(flagConfig)
	if err != nil {
		return err
	}
	beamConfig = cfg

	levelSrc = levels.Embedded()
	if flagLevelsDir != "" {
		levelSrc = levels.NewDirLoader(flagLevelsDir)
	}
	levelSrc.Strict = flagStrict

	beam.Configure(beamConfig, levelSrc)
	return nil
}
