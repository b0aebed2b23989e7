package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/stock101/internal/platform/tui"
	"github.com/vovakirdan/stock101/internal/registry"
	"github.com/vovakirdan/stock101/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the board and color picker",
	Long: `Start Stock 101 in interactive menu mode.

Pick a board, toggle which tile colors spawn, or open the results table.
After a game ends (Esc on the game over screen, or Q), you return to the
menu to play again.

Controls:
  Up/Down/j/k   - Navigate menu
  Left/Right    - Move along the color row
  Space         - Toggle a color
  Enter         - Play the selected board
  Tab           - Results table
  Q             - Quit

Examples:
  stock101 menu
  stock101 menu --user alice
  stock101 menu --db ./results.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	logger := newLogger("stock101")

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open results database, results will not be saved", "error", err)
		store = nil
	}
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	cfg := runtimeConfig()
	choice := colorChoice()
	var saveErrs []error

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(cfg, choice)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config
		choice.Enabled = menuResult.Colors

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from scoreboard
		}

		if menuResult.Quit || menuResult.GameID == "" {
			break
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}
		if c, ok := game.(registry.Colorable); ok {
			c.SetColors(menuResult.Colors)
		}

		summary, runErr := tui.Run(game, store, cfg, localPlayer(), tui.WithBackToMenu())
		if runErr != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
			break
		}
		if summary.SaveErr != nil {
			saveErrs = append(saveErrs, summary.SaveErr)
		}
		if !summary.BackToMenu {
			break // Quit from the game
		}
	}

	for _, err := range saveErrs {
		logger.Error("could not save result", "error", err)
	}
}
