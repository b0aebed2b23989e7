package stock101

import "fmt"

// EndReason says why a game ended.
type EndReason int

const (
	ReasonNone EndReason = iota
	ReasonOvershoot
	ReasonNoMoves
)

// String returns a stable identifier, used when persisting results.
func (r EndReason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonOvershoot:
		return "overshoot"
	case ReasonNoMoves:
		return "no_moves"
	default:
		return "unknown"
	}
}

// Message returns the player-facing explanation for the given goal.
func (r EndReason) Message(goal int) string {
	switch r {
	case ReasonOvershoot:
		return fmt.Sprintf("Heap too big! Needed exactly %d", goal)
	case ReasonNoMoves:
		return "No available moves!"
	default:
		return ""
	}
}

// Verdict is the outcome of a terminal-state check.
type Verdict struct {
	Over   bool
	Reason EndReason
}

// Evaluate decides whether the game has ended. Overshoot is checked before
// move availability: a heap above the goal ends the game even when merges
// remain.
func Evaluate(b *Board, heap, goal int) Verdict {
	if heap > goal {
		return Verdict{Over: true, Reason: ReasonOvershoot}
	}
	if !HasLegalMove(b) {
		return Verdict{Over: true, Reason: ReasonNoMoves}
	}
	return Verdict{}
}

// HasLegalMove reports whether any occupied cell has a same-colored neighbor.
func HasLegalMove(b *Board) bool {
	for row := range b.size {
		for col := range b.size {
			t, ok := b.At(row, col)
			if !ok {
				continue
			}
			if len(FindSameColorNeighbors(b, row, col, t.Color)) > 0 {
				return true
			}
		}
	}
	return false
}
