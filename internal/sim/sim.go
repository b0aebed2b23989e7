// Package sim plays Stock 101 with bots, many games at once, and
// summarizes how a strategy fares.
package sim

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/stock101/internal/config"
	"github.com/vovakirdan/stock101/internal/games/stock101"
)

// ErrNoGames is returned when Options.Games is not positive.
var ErrNoGames = errors.New("sim: number of games must be positive")

// Options controls a simulation run.
type Options struct {
	Games    int
	Workers  int   // Defaults to half the CPUs, at least one
	Strategy string
	Seed     int64 // Game i uses Seed+i, so a run is reproducible
	MaxSteps int   // Per-game click limit, 0 for none
	Config   config.Stock101Config
	Logger   *log.Logger // Optional; each game is logged at debug level
}

// GameResult is one finished bot game.
type GameResult struct {
	stock101.BotResult
	Index   int
	Seed    int64
	Elapsed time.Duration
	Err     error
}

// Report aggregates a run.
type Report struct {
	Strategy  string
	Games     int
	ScoreMin  int
	ScoreMax  int
	ScoreMean float64
	HeapMax   int
	Goals     int // Exact goal hits over all games
	Steps     int
	Reasons   map[string]int
	Elapsed   time.Duration
}

// Run plays opts.Games games across a worker pool. Cancelling ctx stops
// handing out new games; the report then covers the games that finished.
func Run(ctx context.Context, opts Options) (Report, error) {
	if opts.Games <= 0 {
		return Report{}, ErrNoGames
	}
	if _, err := stock101.NewStrategy(opts.Strategy, opts.Seed); err != nil {
		return Report{}, err
	}
	if err := opts.Config.Validate(); err != nil {
		return Report{}, err
	}

	workers := opts.Workers
	if workers < 1 {
		workers = max(runtime.NumCPU()/2, 1)
	}

	source := make(chan int, workers*10)
	results := make(chan GameResult, workers*10)

	start := time.Now()

	go feed(ctx, source, opts.Games)

	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go worker(&wg, source, results, opts)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	report := Report{
		Strategy: opts.Strategy,
		Reasons:  make(map[string]int),
	}
	var firstErr error
	scoreSum := 0
	for r := range results {
		if r.Err != nil {
			if firstErr == nil {
				firstErr = r.Err
			}
			continue
		}
		if opts.Logger != nil {
			opts.Logger.Debug("game finished",
				"game", r.Index,
				"seed", r.Seed,
				"score", r.Score,
				"heap", r.Heap,
				"steps", r.Steps,
				"reason", r.Reason,
				"elapsed", r.Elapsed,
			)
		}
		report.add(r.BotResult)
		scoreSum += r.Score
	}
	if report.Games > 0 {
		report.ScoreMean = float64(scoreSum) / float64(report.Games)
	}
	report.Elapsed = time.Since(start)

	if firstErr != nil {
		return report, firstErr
	}
	if err := ctx.Err(); err != nil {
		return report, err
	}
	return report, nil
}

func (r *Report) add(res stock101.BotResult) {
	if r.Games == 0 || res.Score < r.ScoreMin {
		r.ScoreMin = res.Score
	}
	if r.Games == 0 || res.Score > r.ScoreMax {
		r.ScoreMax = res.Score
	}
	r.HeapMax = max(r.HeapMax, res.Heap)
	r.Goals += res.Goals
	r.Steps += res.Steps
	r.Reasons[res.Reason.String()]++
	r.Games++
}

func feed(ctx context.Context, source chan<- int, n int) {
	defer close(source)
	for i := range n {
		if ctx.Err() != nil {
			return
		}
		select {
		case source <- i:
		case <-ctx.Done():
			return
		}
	}
}

func worker(wg *sync.WaitGroup, source <-chan int, results chan<- GameResult, opts Options) {
	defer wg.Done()
	for i := range source {
		results <- PlayOne(opts, i)
	}
}

// PlayOne plays game number i of a run.
func PlayOne(opts Options, i int) GameResult {
	seed := opts.Seed + int64(i)
	res := GameResult{Index: i, Seed: seed}

	strat, err := stock101.NewStrategy(opts.Strategy, seed)
	if err != nil {
		res.Err = err
		return res
	}
	state, err := stock101.NewStateFromConfig(opts.Config, seed)
	if err != nil {
		res.Err = fmt.Errorf("sim: game %d: %w", i, err)
		return res
	}

	begin := time.Now()
	res.BotResult = stock101.RunBot(state, strat, opts.MaxSteps)
	res.Elapsed = time.Since(begin)
	return res
}
