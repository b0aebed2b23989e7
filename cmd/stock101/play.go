package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/stock101/internal/config"
	"github.com/vovakirdan/stock101/internal/core"
	"github.com/vovakirdan/stock101/internal/games/stock101"
	"github.com/vovakirdan/stock101/internal/platform/tui"
	"github.com/vovakirdan/stock101/internal/registry"
	"github.com/vovakirdan/stock101/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [board]",
	Short: "Play a board",
	Long: `Start playing the specified board (default: stock101).

Controls:
  Arrows/WASD   - Move the cursor
  Enter/Click   - Merge the tile and its matching neighbors
  C             - Repaint mode: the next tile you pick gets a new color
  U/Backspace   - Undo the last move (also after game over)
  H             - Show a hint
  R             - Restart (asks for confirmation while playing)
  P             - Pause
  Q/Ctrl+C      - Quit

Examples:
  stock101 play
  stock101 play stock101_large
  stock101 play --seed 7 --user alice
  stock101 play --config ./my-stock101.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := "stock101"
	if len(args) == 1 {
		gameID = args[0]
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown board %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'stock101 list' to see available boards.")
		os.Exit(1)
	}

	logger := newLogger("stock101")

	// Surface config problems before the alt screen hides them
	if _, err := stock101.LoadConfig(stock101.VariantClassic); err != nil {
		logger.Warn("config problem, using defaults", "error", err)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open result storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open results database, results will not be saved", "error", err)
		// Continue without storage - game still works
		store = nil
	}

	summary, runErr := tui.Run(game, store, runtimeConfig(), localPlayer())

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
	if summary.SaveErr != nil {
		logger.Error("could not save result", "error", summary.SaveErr)
	}
	if summary.State.GameOver {
		logger.Info("game over",
			"score", summary.State.Score,
			"heap", summary.State.Heap,
			"goal", summary.State.Goal,
			"reason", summary.State.EndReason,
		)
	}
}

// runtimeConfig builds the game runtime config from the terminal and flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// localPlayer identifies the person at this terminal.
func localPlayer() tui.Player {
	return tui.Player{
		ID:     flagUser,
		Name:   flagUser,
		Source: storage.SourceLocal,
	}
}

// colorChoice offers the configured tile colors to the start menu.
func colorChoice() tui.ColorChoice {
	cfg, err := stock101.LoadConfig(stock101.VariantClassic)
	if err != nil {
		cfg = config.DefaultStock101Config()
	}
	colors, enabled, _, err := cfg.Rules.Palette()
	if err != nil {
		return tui.ColorChoice{}
	}
	return tui.ColorChoice{Available: colors, Enabled: enabled}
}
