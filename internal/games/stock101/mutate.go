package stock101

import "github.com/vovakirdan/stock101/internal/core"

// ApplyShifts returns a new board with every shift applied. All From cells
// are cleared first, then each tile read from the original board is placed
// at its To cell, so shifts along one axis may chain through shared cells.
// When two shifts land on the same cell (the merge center when neighbors
// sit on both sides) the later one wins; the center is overwritten by the
// merged tile anyway.
func ApplyShifts(b *Board, shifts []Shift) *Board {
	next := b.Clone()
	for _, s := range shifts {
		next.Clear(s.From.Row, s.From.Col)
	}
	for _, s := range shifts {
		if t, ok := b.At(s.From.Row, s.From.Col); ok {
			next.Set(s.To.Row, s.To.Col, t)
		}
	}
	return next
}

// PlaceMergedTile overwrites (row, col) with a merge result.
func PlaceMergedTile(b *Board, row, col, value int, color core.Color) {
	b.Set(row, col, Tile{Value: value, Color: color})
}

// FillEmptySpaces returns a new board where every empty cell holds a fresh
// value-1 tile marked IsNew and every other tile has IsNew cleared.
func FillEmptySpaces(b *Board, src ColorSource) *Board {
	next := NewBoard(b.size)
	for row := range b.size {
		for col := range b.size {
			t, ok := b.At(row, col)
			if !ok {
				next.Set(row, col, Tile{Value: 1, Color: src.Draw(), IsNew: true})
				continue
			}
			t.IsNew = false
			next.Set(row, col, t)
		}
	}
	return next
}

// SpawnedCells lists the cells marked IsNew, row-major.
func SpawnedCells(b *Board) []Pos {
	var out []Pos
	for row := range b.size {
		for col := range b.size {
			if t, ok := b.At(row, col); ok && t.IsNew {
				out = append(out, Pos{row, col})
			}
		}
	}
	return out
}
