package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/vovakirdan/stock101/internal/config"
)

func testOptions(strategy string) Options {
	return Options{
		Games:    20,
		Workers:  4,
		Strategy: strategy,
		Seed:     42,
		MaxSteps: 5000,
		Config:   config.DefaultStock101Config(),
	}
}

func TestRunReportsEveryGame(t *testing.T) {
	for _, name := range []string{"random", "greedy", "safe"} {
		t.Run(name, func(t *testing.T) {
			report, err := Run(context.Background(), testOptions(name))
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if report.Games != 20 {
				t.Errorf("Games = %d, want 20", report.Games)
			}
			if report.ScoreMin > report.ScoreMax {
				t.Errorf("ScoreMin %d > ScoreMax %d", report.ScoreMin, report.ScoreMax)
			}
			if report.ScoreMean < float64(report.ScoreMin) || report.ScoreMean > float64(report.ScoreMax) {
				t.Errorf("ScoreMean %f outside [%d, %d]", report.ScoreMean, report.ScoreMin, report.ScoreMax)
			}

			total := 0
			for _, n := range report.Reasons {
				total += n
			}
			if total != report.Games {
				t.Errorf("reason counts sum to %d, want %d", total, report.Games)
			}
		})
	}
}

func TestRunIsReproducible(t *testing.T) {
	a, err := Run(context.Background(), testOptions("random"))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	opts := testOptions("random")
	opts.Workers = 1
	b, err := Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if a.ScoreMin != b.ScoreMin || a.ScoreMax != b.ScoreMax || a.ScoreMean != b.ScoreMean {
		t.Errorf("scores differ between worker counts: %+v vs %+v", a, b)
	}
	if a.Steps != b.Steps || a.Goals != b.Goals {
		t.Errorf("steps/goals differ: %d/%d vs %d/%d", a.Steps, a.Goals, b.Steps, b.Goals)
	}
}

func TestPlayOneMatchesSeed(t *testing.T) {
	opts := testOptions("greedy")
	first := PlayOne(opts, 3)
	second := PlayOne(opts, 3)

	if first.Err != nil {
		t.Fatalf("PlayOne() error = %v", first.Err)
	}
	if first.Seed != 45 {
		t.Errorf("Seed = %d, want 45", first.Seed)
	}
	if first.BotResult != second.BotResult {
		t.Errorf("same game played twice differs: %+v vs %+v", first.BotResult, second.BotResult)
	}
}

func TestRunRejectsBadOptions(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Options)
	}{
		{"no games", func(o *Options) { o.Games = 0 }},
		{"unknown strategy", func(o *Options) { o.Strategy = "psychic" }},
		{"invalid config", func(o *Options) { o.Config.Rules.BoardSize = 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOptions("safe")
			tt.modify(&opts)
			if _, err := Run(context.Background(), opts); err == nil {
				t.Error("Run() expected error")
			}
		})
	}
}

func TestRunNoGamesSentinel(t *testing.T) {
	opts := testOptions("safe")
	opts.Games = -1
	_, err := Run(context.Background(), opts)
	if !errors.Is(err, ErrNoGames) {
		t.Errorf("error = %v, want ErrNoGames", err)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := testOptions("safe")
	opts.Games = 1000
	report, err := Run(ctx, opts)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if report.Games >= 1000 {
		t.Errorf("Games = %d, want fewer than 1000 after cancel", report.Games)
	}
}
