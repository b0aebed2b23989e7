package stock101

import "github.com/vovakirdan/stock101/internal/core"

// Direction is one of the four orthogonal neighbor directions.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// neighborOrder fixes the output order of FindSameColorNeighbors.
var neighborOrder = [...]Direction{DirUp, DirDown, DirLeft, DirRight}

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Delta returns the row and column offset of one step in d.
func (d Direction) Delta() (dRow, dCol int) {
	switch d {
	case DirUp:
		return -1, 0
	case DirDown:
		return 1, 0
	case DirLeft:
		return 0, -1
	case DirRight:
		return 0, 1
	default:
		return 0, 0
	}
}

// Neighbor is a same-colored tile orthogonally adjacent to a clicked cell.
type Neighbor struct {
	Row, Col  int
	Direction Direction
	Value     int
}

// Shift moves the tile at From one cell to To.
type Shift struct {
	From, To Pos
}

// FindSameColorNeighbors returns the occupied in-bounds neighbors of
// (row, col) whose color equals color, in up, down, left, right order.
func FindSameColorNeighbors(b *Board, row, col int, color core.Color) []Neighbor {
	var out []Neighbor
	for _, dir := range neighborOrder {
		dr, dc := dir.Delta()
		r, c := row+dr, col+dc
		if !b.InBounds(r, c) {
			continue
		}
		t, ok := b.At(r, c)
		if !ok || t.Color != color {
			continue
		}
		out = append(out, Neighbor{Row: r, Col: c, Direction: dir, Value: t.Value})
	}
	return out
}

// MergeTotal is the center value plus every neighbor value.
func MergeTotal(center Tile, neighbors []Neighbor) int {
	total := center.Value
	for _, n := range neighbors {
		total += n.Value
	}
	return total
}

// ComputeShifts returns the compaction that pulls each neighbor, and every
// tile behind it up to the board edge, one cell toward the center along the
// neighbor's axis. Only cells on the center's row or column move.
func ComputeShifts(size, centerRow, centerCol int, neighbors []Neighbor) []Shift {
	var shifts []Shift
	for _, n := range neighbors {
		switch n.Direction {
		case DirLeft:
			for c := n.Col; c >= 0; c-- {
				if c+1 <= centerCol {
					shifts = append(shifts, Shift{
						From: Pos{centerRow, c},
						To:   Pos{centerRow, c + 1},
					})
				}
			}
		case DirRight:
			for c := n.Col; c < size; c++ {
				if c-1 >= centerCol {
					shifts = append(shifts, Shift{
						From: Pos{centerRow, c},
						To:   Pos{centerRow, c - 1},
					})
				}
			}
		case DirUp:
			for r := n.Row; r >= 0; r-- {
				if r+1 <= centerRow {
					shifts = append(shifts, Shift{
						From: Pos{r, centerCol},
						To:   Pos{r + 1, centerCol},
					})
				}
			}
		case DirDown:
			for r := n.Row; r < size; r++ {
				if r-1 >= centerRow {
					shifts = append(shifts, Shift{
						From: Pos{r, centerCol},
						To:   Pos{r - 1, centerCol},
					})
				}
			}
		}
	}
	return shifts
}
