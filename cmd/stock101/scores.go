package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/stock101/internal/platform/tui"
	"github.com/vovakirdan/stock101/internal/registry"
	"github.com/vovakirdan/stock101/internal/storage"
)

var (
	flagScoresTUI   bool
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [board]",
	Short: "Show the results table",
	Long: `Display the best results, ranked by score and then by heap.

Without a board, results from every board are ranked together. With --user,
the player's best result and statistics are shown as well.

Examples:
  stock101 scores
  stock101 scores stock101_large
  stock101 scores --user alice
  stock101 scores --tui
  stock101 scores --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse results in an interactive table")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of results to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the stored results (of one board if given)")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := ""
	if len(args) == 1 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			fmt.Fprintf(os.Stderr, "Error: unknown board %q\n", gameID)
			fmt.Fprintln(os.Stderr, "Run 'stock101 list' to see available boards.")
			os.Exit(1)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening results database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagScoresClear:
		if err := store.ClearResults(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Results cleared.")
		return

	case flagScoresTUI:
		cfg := runtimeConfig()
		if _, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := printResults(store, gameID); err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving results: %v\n", err)
		os.Exit(1)
	}
	if flagUser != "" {
		if err := printUser(store, flagUser); err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving player stats: %v\n", err)
			os.Exit(1)
		}
	}
}

func printResults(store *storage.Store, gameID string) error {
	title := "all boards"
	if gameID != "" {
		if game, err := registry.Create(gameID); err == nil {
			title = game.Title()
		}
	}

	results, err := store.TopResults(gameID, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Results - %s\n", title)
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No results recorded yet.")
		fmt.Println()
		fmt.Println("Play 'stock101 play' to set the first one!")
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-16s  %-7s  %-5s  %-6s  %-10s  %s\n", "Rank", "Player", "Score", "Heap", "Source", "Ended", "Date")
	fmt.Printf("  %-4s  %-16s  %-7s  %-5s  %-6s  %-10s  %s\n", "----", "------", "-----", "----", "------", "-----", "----")

	for i, r := range results {
		fmt.Printf("  %-4d  %-16s  %-7d  %-5d  %-6s  %-10s  %s\n",
			i+1, truncate(r.UserName, 16), r.MaxScore, r.MaxHeap, r.Source, r.EndReason,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func printUser(store *storage.Store, name string) error {
	stats, err := store.UserStats(name)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Player %s\n", name)
	if stats.Games == 0 {
		fmt.Println("  No games recorded.")
		return nil
	}

	best, err := store.UserBest(name)
	if err != nil {
		return err
	}
	fmt.Printf("  Games:      %d\n", stats.Games)
	fmt.Printf("  Best score: %d\n", stats.BestScore)
	fmt.Printf("  Best heap:  %d\n", stats.BestHeap)
	fmt.Printf("  Avg score:  %.1f\n", stats.AvgScore)
	if !stats.LastPlayed.IsZero() {
		fmt.Printf("  Last game:  %s\n", stats.LastPlayed.Format("2006-01-02 15:04"))
	}
	if best != nil {
		fmt.Printf("  Best game:  %d points on %s (%s)\n", best.MaxScore, best.GameID, best.CreatedAt.Format("2006-01-02"))
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "."
}
