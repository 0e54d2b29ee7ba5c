package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/beamgrid/beamgrid/internal/games/beam"
	"github.com/beamgrid/beamgrid/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List levels",
	Long:  `Shows every playable level with its size, gem count and your progress.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	all, err := levelSrc.LoadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		os.Exit(1)
	}

	maxLevel := 1
	best := map[int]storage.LevelSummary{}
	if store := openStore(); store != nil {
		if n, err := store.MaxLevel(beam.ID, ""); err == nil {
			maxLevel = n
		}
		sums, _ := store.LevelSummaries(beam.ID)
		for _, s := range sums {
			best[s.Level] = s
		}
		store.Close()
	}

	nameLen := 4 // "Name" header
	for _, lvl := range all {
		nameLen = max(nameLen, len(lvl.Name))
	}

	fmt.Printf("  %-3s  %-*s  %-5s  %-4s  %s\n", "#", nameLen, "Name", "Size", "Gems", "Status")
	fmt.Printf("  %-3s  %-*s  %-5s  %-4s  %s\n", "-", nameLen, "----", "----", "----", "------")

	shown := 0
	for _, lvl := range all {
		if !lvl.Playable() {
			continue
		}
		shown++

		status := "open"
		switch s, solved := best[lvl.Number]; {
		case lvl.Number > maxLevel:
			status = "locked"
		case solved:
			status = fmt.Sprintf("best %.1fs, %d moves", s.BestSeconds, s.FewestMoves)
		}
		size := fmt.Sprintf("%dx%d", lvl.Grid.W, lvl.Grid.H)
		fmt.Printf("  %-3d  %-*s  %-5s  %-4d  %s\n", lvl.Number, nameLen, lvl.Name, size, lvl.Grid.CountJewels(), status)
	}

	if shown == 0 {
		fmt.Println("No levels available.")
		return
	}
	fmt.Println()
	fmt.Println("Run 'beamgrid play <#>' to play a level.")
}
