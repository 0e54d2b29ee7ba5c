package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/beamgrid/beamgrid/internal/games/beam/core"
	"github.com/beamgrid/beamgrid/internal/games/beam/levels"
)

var checkCmd = &cobra.Command{
	Use:   "check [file...]",
	Short: "Validate level files",
	Long: `Check levels for structural problems: missing or multiple ray sources,
unpaired teleports, no gems, and solutions that do not light every gem.

Without arguments every level of the current level source is checked.

Examples:
  beamgrid check
  beamgrid check ./mylevels/level7.yaml ./mylevels/level8.mp
  beamgrid check --levels ./mylevels`,
	Run: runCheck,
}

func runCheck(_ *cobra.Command, args []string) {
	var lvls []levels.Level
	failed := 0

	if len(args) == 0 {
		all, err := levelSrc.LoadAll()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
			os.Exit(1)
		}
		lvls = all
	}
	for _, p := range args {
		lvl, err := levels.NewDirLoader(filepath.Dir(p)).LoadFile(filepath.Base(p))
		if err != nil {
			fmt.Printf("FAIL  %s: %v\n", p, err)
			failed++
			continue
		}
		lvl.FilePath = p
		lvls = append(lvls, lvl)
	}

	for _, lvl := range lvls {
		if !lvl.Playable() {
			continue
		}
		err := core.Validate(lvl.Grid, beamConfig.Simulation.PlaySteps)
		if err == nil {
			fmt.Printf("OK    %s (level %d: %s)\n", lvl.FilePath, lvl.Number, lvl.Name)
			continue
		}
		failed++
		var verr core.ValidationError
		if errors.As(err, &verr) {
			fmt.Printf("FAIL  %s: %s: %s\n", lvl.FilePath, verr.Code, verr.Message)
		} else {
			fmt.Printf("FAIL  %s: %v\n", lvl.FilePath, err)
		}
	}

	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d level(s) failed\n", failed)
		os.Exit(1)
	}
}
