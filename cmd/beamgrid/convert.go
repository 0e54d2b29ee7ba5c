package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/beamgrid/beamgrid/internal/games/beam/levels"
)

var flagConvertNumber int

var convertCmd = &cobra.Command{
	Use:   "convert <src> <dst>",
	Short: "Convert a level between .mp and .yaml",
	Long: `Read a level file and write it in the format named by the destination
extension (.mp binary or .yaml text). All layers, including the solution,
are kept.

Examples:
  beamgrid convert level3.mp level3.yaml
  beamgrid convert draft.yaml level9.mp --number 9`,
	Args: cobra.ExactArgs(2),
	Run:  runConvert,
}

func init() {
	convertCmd.Flags().IntVar(&flagConvertNumber, "number", 0, "Override the level number")
}

func runConvert(_ *cobra.Command, args []string) {
	src, dst := args[0], args[1]

	lvl, err := levels.NewDirLoader(filepath.Dir(src)).LoadFile(filepath.Base(src))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagConvertNumber > 0 {
		lvl.Number = flagConvertNumber
	}

	if err := levels.WriteFile(dst, lvl); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote level %d (%dx%d) to %s\n", lvl.Number, lvl.Grid.W, lvl.Grid.H, dst)
}
