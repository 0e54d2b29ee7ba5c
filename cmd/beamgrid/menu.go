package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/beamgrid/beamgrid/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with level select",
	Long: `Start in interactive menu mode.

Pick any level you have reached; after leaving a level you return to the
menu. Tab opens the best solves of each level.

Controls:
  Up/Down/j/k  - Navigate
  Enter/Space  - Play level
  Tab          - Best solves
  Q            - Quit

Examples:
  beamgrid menu
  beamgrid menu --fps 30
  beamgrid menu --db ./beamgrid.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	store := openStore()
	player := newPlayer()

	restoreLog := logToFile()
	err := tui.RunSession(store, player, runtimeConfig())
	restoreLog()

	player.Close()
	if store != nil {
		store.Close()
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
