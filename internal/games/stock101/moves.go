package stock101

// Move is a clickable cell and what merging there would be worth.
type Move struct {
	Row, Col  int
	Total     int
	Neighbors int
}

// Safe reports whether playing m cannot overshoot goal.
func (m Move) Safe(goal int) bool {
	return m.Total <= goal
}

// LegalMoves lists every cell that has at least one same-colored neighbor,
// in row-major order.
func LegalMoves(b *Board) []Move {
	var moves []Move
	for row := range b.size {
		for col := range b.size {
			t, ok := b.At(row, col)
			if !ok {
				continue
			}
			ns := FindSameColorNeighbors(b, row, col, t.Color)
			if len(ns) == 0 {
				continue
			}
			moves = append(moves, Move{
				Row:       row,
				Col:       col,
				Total:     MergeTotal(t, ns),
				Neighbors: len(ns),
			})
		}
	}
	return moves
}

// Hint suggests a move for the current state: an exact goal hit if one
// exists, otherwise the largest total that stays at or under the goal.
// ok is false when nothing is playable.
func (s *State) Hint() (Move, bool) {
	if s.over {
		return Move{}, false
	}
	return pickGreedy(LegalMoves(s.board), s.goal)
}

func pickGreedy(moves []Move, goal int) (Move, bool) {
	if len(moves) == 0 {
		return Move{}, false
	}
	best, found := Move{}, false
	for _, m := range moves {
		if m.Total == goal {
			return m, true
		}
		if !m.Safe(goal) {
			continue
		}
		if !found || m.Total > best.Total {
			best, found = m, true
		}
	}
	if !found {
		return smallest(moves), true
	}
	return best, true
}

func smallest(moves []Move) Move {
	best := moves[0]
	for _, m := range moves[1:] {
		if m.Total < best.Total {
			best = m
		}
	}
	return best
}
