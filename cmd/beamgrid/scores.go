package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/beamgrid/beamgrid/internal/games/beam"
	"github.com/beamgrid/beamgrid/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show best solves",
	Long: `Without a level, show a summary of every solved level and the best
session scores. With a level, show its fastest solves.

Examples:
  beamgrid scores
  beamgrid scores 3 --limit 20`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of entries to show")
}

func runScores(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(args) == 0 {
		if err := printSummaries(store); err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
			os.Exit(1)
		}
		return
	}

	level, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid level %q\n", args[0])
		os.Exit(1)
	}
	if err := printLevel(store, level); err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving solves: %v\n", err)
		os.Exit(1)
	}
}

func printSummaries(store *storage.Store) error {
	sums, err := store.LevelSummaries(beam.ID)
	if err != nil {
		return err
	}

	fmt.Println("Solved levels")
	fmt.Println()
	if len(sums) == 0 {
		fmt.Println("No solves recorded yet.")
		fmt.Println()
		fmt.Println("Run 'beamgrid play' to start!")
		return nil
	}

	fmt.Printf("  %-5s  %-6s  %-8s  %-6s  %s\n", "Level", "Solves", "Best", "Moves", "Last")
	fmt.Printf("  %-5s  %-6s  %-8s  %-6s  %s\n", "-----", "------", "----", "-----", "----")
	for _, s := range sums {
		fmt.Printf("  %-5d  %-6d  %-8s  %-6d  %s\n",
			s.Level, s.Solves, fmt.Sprintf("%.1fs", s.BestSeconds), s.FewestMoves,
			s.LastSolved.Format("2006-01-02 15:04"))
	}

	scores, err := store.TopScores(beam.ID, flagScoresLimit)
	if err != nil {
		return err
	}
	if len(scores) > 0 {
		fmt.Println()
		fmt.Println("Most levels in one session")
		fmt.Println()
		for i, e := range scores {
			fmt.Printf("  %-4d  %-4d  %s\n", i+1, e.Score, e.CreatedAt.Format("2006-01-02 15:04"))
		}
	}
	return nil
}

func printLevel(store *storage.Store, level int) error {
	solves, err := store.BestSolves(beam.ID, level, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Best Solves - Level %d\n", level)
	fmt.Println()
	if len(solves) == 0 {
		fmt.Println("No solves recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'beamgrid play %d' to set the first time!\n", level)
		return nil
	}

	fmt.Printf("  %-4s  %-12s  %-8s  %-5s  %s\n", "Rank", "Player", "Time", "Moves", "Date")
	fmt.Printf("  %-4s  %-12s  %-8s  %-5s  %s\n", "----", "------", "----", "-----", "----")
	for i, s := range solves {
		player := s.Player
		if player == "" {
			player = "local"
		}
		fmt.Printf("  %-4d  %-12s  %-8s  %-5d  %s\n",
			i+1, player, fmt.Sprintf("%.1fs", s.Seconds), s.Moves, s.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
