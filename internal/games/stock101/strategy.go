package stock101

import (
	"fmt"
	"math/rand"
)

// Strategy chooses the next click for a bot player.
type Strategy interface {
	Name() string
	NextMove(s *State) (Move, bool)
}

// RandomStrategy clicks a uniformly random legal cell.
type RandomStrategy struct {
	rng *rand.Rand
}

func NewRandomStrategy(seed int64) *RandomStrategy {
	return &RandomStrategy{rng: rand.New(rand.NewSource(seed))}
}

func (*RandomStrategy) Name() string { return "random" }

func (rs *RandomStrategy) NextMove(s *State) (Move, bool) {
	moves := LegalMoves(s.board)
	if len(moves) == 0 {
		return Move{}, false
	}
	return moves[rs.rng.Intn(len(moves))], true
}

// GreedyStrategy takes the biggest merge that does not overshoot.
type GreedyStrategy struct{}

func (GreedyStrategy) Name() string { return "greedy" }

func (GreedyStrategy) NextMove(s *State) (Move, bool) {
	return pickGreedy(LegalMoves(s.board), s.goal)
}

// SafeStrategy grows slowly: it takes an exact goal hit when offered and
// otherwise the smallest merge, keeping the heap well under the goal.
type SafeStrategy struct{}

func (SafeStrategy) Name() string { return "safe" }

func (SafeStrategy) NextMove(s *State) (Move, bool) {
	moves := LegalMoves(s.board)
	if len(moves) == 0 {
		return Move{}, false
	}
	for _, m := range moves {
		if m.Total == s.goal {
			return m, true
		}
	}
	return smallest(moves), true
}

// StrategyNames lists the names accepted by NewStrategy.
func StrategyNames() []string {
	return []string{"random", "greedy", "safe"}
}

// NewStrategy builds a strategy by name. seed only affects "random".
func NewStrategy(name string, seed int64) (Strategy, error) {
	switch name {
	case "random":
		return NewRandomStrategy(seed), nil
	case "greedy":
		return GreedyStrategy{}, nil
	case "safe":
		return SafeStrategy{}, nil
	default:
		return nil, fmt.Errorf("stock101: unknown strategy %q", name)
	}
}

// BotResult summarizes one bot game.
type BotResult struct {
	Score  int
	Heap   int
	Goal   int
	Steps  int
	Goals  int // Number of times the goal was hit exactly
	Reason EndReason
}

// RunBot plays s to completion with strat, or until maxSteps clicks when
// maxSteps > 0. Reason stays ReasonNone if the step limit stopped the game.
func RunBot(s *State, strat Strategy, maxSteps int) BotResult {
	var res BotResult
	for !s.over && (maxSteps <= 0 || res.Steps < maxSteps) {
		m, ok := strat.NextMove(s)
		if !ok {
			break
		}
		plan, ok := s.PlanMerge(m.Row, m.Col)
		if !ok {
			break
		}
		out := s.CommitMerge(plan)
		res.Steps++
		if out.GoalReached {
			res.Goals++
		}
	}
	res.Score = s.score
	res.Heap = s.heap
	res.Goal = s.goal
	res.Reason = s.reason
	return res
}
