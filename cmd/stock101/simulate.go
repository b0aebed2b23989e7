package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/stock101/internal/config"
	"github.com/vovakirdan/stock101/internal/games/stock101"
	"github.com/vovakirdan/stock101/internal/sim"
)

var (
	flagSimGames    int
	flagSimWorkers  int
	flagSimStrategy string
	flagSimMaxSteps int
	flagSimPreset   string
	flagSimVerbose  bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Let a bot play many games and summarize the results",
	Long: `Run bot games concurrently and print score statistics and how the
games ended. Game i is seeded with --seed + i, so runs are reproducible.

Strategies:
  random  - Any legal move
  greedy  - Hit the goal exactly if possible, else the biggest safe merge
  safe    - Hit the goal exactly if possible, else the smallest merge

Examples:
  stock101 simulate
  stock101 simulate --games 10000 --workers 8 --strategy greedy
  stock101 simulate --preset large --seed 1 --verbose`,
	Run: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimGames, "games", 1000, "Number of games to play")
	simulateCmd.Flags().IntVar(&flagSimWorkers, "workers", 0, "Concurrent workers (0 = half the CPUs)")
	simulateCmd.Flags().StringVar(&flagSimStrategy, "strategy", "random",
		"Bot strategy: "+strings.Join(stock101.StrategyNames(), ", "))
	simulateCmd.Flags().IntVar(&flagSimMaxSteps, "max-steps", 100000, "Per-game move limit (0 = none)")
	simulateCmd.Flags().StringVar(&flagSimPreset, "preset", "classic", "Board preset: classic, large")
	simulateCmd.Flags().BoolVar(&flagSimVerbose, "verbose", false, "Log every game")
}

func runSimulate(_ *cobra.Command, _ []string) {
	logger := newLogger("stock101-sim")
	if flagSimVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	preset, err := config.ParsePreset(flagSimPreset)
	if err != nil {
		logger.Fatal("bad preset", "error", err)
	}
	variant := stock101.VariantClassic
	if preset == config.PresetLarge {
		variant = stock101.VariantLarge
	}
	cfg, err := stock101.LoadConfig(variant)
	if err != nil {
		logger.Fatal("cannot load config", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("simulating",
		"games", flagSimGames,
		"strategy", flagSimStrategy,
		"board", cfg.Rules.BoardSize,
		"seed", flagSeed,
	)

	report, err := sim.Run(ctx, sim.Options{
		Games:    flagSimGames,
		Workers:  flagSimWorkers,
		Strategy: flagSimStrategy,
		Seed:     flagSeed,
		MaxSteps: flagSimMaxSteps,
		Config:   cfg,
		Logger:   logger,
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("simulation failed", "error", err)
	}
	if errors.Is(err, context.Canceled) {
		logger.Warn("interrupted, reporting finished games", "games", report.Games)
	}

	printReport(report)
}

func printReport(r sim.Report) {
	fmt.Printf("%d games, strategy %s (%s)\n", r.Games, r.Strategy, r.Elapsed)
	if r.Games == 0 {
		return
	}
	fmt.Printf("  score  min=%d  mean=%.1f  max=%d\n", r.ScoreMin, r.ScoreMean, r.ScoreMax)
	fmt.Printf("  heap   max=%d\n", r.HeapMax)
	fmt.Printf("  goals  %d hit exactly, %.2f per game\n", r.Goals, float64(r.Goals)/float64(r.Games))
	fmt.Printf("  moves  %.1f per game\n", float64(r.Steps)/float64(r.Games))

	reasons := make([]string, 0, len(r.Reasons))
	for reason := range r.Reasons {
		reasons = append(reasons, reason)
	}
	sort.Strings(reasons)
	fmt.Println("  ended by:")
	for _, reason := range reasons {
		fmt.Printf("    %-10s %d\n", reason, r.Reasons[reason])
	}
}
