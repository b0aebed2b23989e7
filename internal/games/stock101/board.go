package stock101

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/stock101/internal/core"
)

// Tile is a numbered, colored unit occupying one board cell.
type Tile struct {
	Value int
	Color core.Color
	IsNew bool // Spawned by the last refill
}

// Pos is a board coordinate.
type Pos struct {
	Row, Col int
}

// Board is a square grid of cells, each empty or holding one tile.
// The zero value is not usable; create boards with NewBoard or NewFilledBoard.
type Board struct {
	size  int
	cells []*Tile
}

// NewBoard returns an empty size×size board.
func NewBoard(size int) *Board {
	if size <= 0 {
		panic(fmt.Sprintf("stock101: invalid board size %d", size))
	}
	return &Board{
		size:  size,
		cells: make([]*Tile, size*size),
	}
}

// NewFilledBoard returns a board where every cell holds a value-1 tile
// with a color drawn from src.
func NewFilledBoard(size int, src ColorSource) *Board {
	b := NewBoard(size)
	for row := range size {
		for col := range size {
			b.Set(row, col, Tile{Value: 1, Color: src.Draw()})
		}
	}
	return b
}

// BoardFromRows builds a board from explicit tiles; nil entries are empty cells.
// Rows must form a square.
func BoardFromRows(rows [][]*Tile) *Board {
	b := NewBoard(len(rows))
	for r, row := range rows {
		if len(row) != b.size {
			panic(fmt.Sprintf("stock101: row %d has %d cells, want %d", r, len(row), b.size))
		}
		for c, t := range row {
			if t != nil {
				b.Set(r, c, *t)
			}
		}
	}
	return b
}

// Size returns the side length of the board.
func (b *Board) Size() int {
	return b.size
}

// InBounds reports whether (row, col) is on the board.
func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.size && col >= 0 && col < b.size
}

func (b *Board) index(row, col int) int {
	if !b.InBounds(row, col) {
		panic(fmt.Sprintf("stock101: cell (%d,%d) out of range for %dx%d board", row, col, b.size, b.size))
	}
	return row*b.size + col
}

// At returns the tile at (row, col) and whether the cell is occupied.
func (b *Board) At(row, col int) (Tile, bool) {
	t := b.cells[b.index(row, col)]
	if t == nil {
		return Tile{}, false
	}
	return *t, true
}

// IsEmpty reports whether (row, col) holds no tile.
func (b *Board) IsEmpty(row, col int) bool {
	return b.cells[b.index(row, col)] == nil
}

// Set places a copy of t at (row, col).
func (b *Board) Set(row, col int, t Tile) {
	b.cells[b.index(row, col)] = &t
}

// Clear empties (row, col).
func (b *Board) Clear(row, col int) {
	b.cells[b.index(row, col)] = nil
}

// EmptyCount returns the number of empty cells.
func (b *Board) EmptyCount() int {
	n := 0
	for _, t := range b.cells {
		if t == nil {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	c := NewBoard(b.size)
	for i, t := range b.cells {
		if t != nil {
			cp := *t
			c.cells[i] = &cp
		}
	}
	return c
}

// Equal reports whether both boards have the same size and identical cells.
func (b *Board) Equal(other *Board) bool {
	if b == nil || other == nil {
		return b == other
	}
	if b.size != other.size {
		return false
	}
	for i := range b.cells {
		x, y := b.cells[i], other.cells[i]
		if (x == nil) != (y == nil) {
			return false
		}
		if x != nil && *x != *y {
			return false
		}
	}
	return true
}

// Sum returns the total value of all tiles on the board.
func (b *Board) Sum() int {
	total := 0
	for _, t := range b.cells {
		if t != nil {
			total += t.Value
		}
	}
	return total
}

// String renders the board as rows of value/color-initial pairs, e.g. "3r".
// Empty cells print as dots.
func (b *Board) String() string {
	var sb strings.Builder
	for row := range b.size {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := range b.size {
			t, ok := b.At(row, col)
			if !ok {
				fmt.Fprintf(&sb, "%5s", ".")
				continue
			}
			fmt.Fprintf(&sb, "%4d%c", t.Value, t.Color.String()[0])
		}
	}
	return sb.String()
}
