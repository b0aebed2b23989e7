// stock101 is a terminal tile-merging puzzle: merge matching neighbors into
// a working tile and land the heap exactly on the goal.
//
// Usage:
//
//	stock101 play [board]    - Play a board (stock101 or stock101_large)
//	stock101 menu            - Start menu with board and color pickers
//	stock101 list            - List available boards
//	stock101 scores          - Show the results table
//	stock101 serve           - Start SSH server for remote play
//	stock101 simulate        - Let a bot play many games and summarize
//	stock101 rules           - Print the effective rules config as YAML
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 60)
//	--seed <value>     - Set RNG seed for reproducible gameplay
//	--db <path>        - Set database path (default: ~/.stock101/results.db)
//	--config <path>    - Use a custom stock101.yaml
//	--user <name>      - Player name stored with results
//	--colors <list>    - Comma-separated tile colors to spawn
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/stock101/internal/config"
	"github.com/vovakirdan/stock101/internal/games/stock101"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
	flagConfig string
	flagUser   string
	flagColors string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "stock101",
	Short: "Stock 101 - a tile-merging puzzle for your terminal",
	Long: `Stock 101 is a tile-merging puzzle. Click a tile with matching
neighbors to merge them into a working tile; the merged values add to your
score and to the heap. Reach the goal exactly to raise it by 101, overshoot
it and the game is over.

Available commands:
  play      - Play a board directly
  menu      - Interactive start menu
  list      - Show all available boards
  scores    - View the results table
  serve     - Start SSH server for remote play
  simulate  - Run bot games and print statistics
  rules     - Print the effective rules

Examples:
  stock101 play
  stock101 play stock101_large --colors red,blue,green
  stock101 menu --user alice
  stock101 serve --ssh :2222
  stock101 simulate --games 1000 --strategy greedy`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		stock101.SetConfigPath(flagConfig)
		if flagColors == "" {
			stock101.SetEnabledColors(nil)
			return nil
		}
		colors, err := config.SplitColors(flagColors)
		if err != nil {
			return fmt.Errorf("--colors: %w", err)
		}
		stock101.SetEnabledColors(colors)
		return nil
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.stock101/results.db", "Path to results database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom stock101.yaml")
	rootCmd.PersistentFlags().StringVar(&flagUser, "user", "", "Player name stored with results (default Anonymous)")
	rootCmd.PersistentFlags().StringVar(&flagColors, "colors", "", "Comma-separated tile colors to spawn, e.g. red,blue,green")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(rulesCmd)
}

// newLogger creates a stderr logger with the given prefix.
func newLogger(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
}
