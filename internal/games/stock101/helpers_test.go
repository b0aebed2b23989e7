package stock101

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/stock101/internal/core"
)

var colorInitials = map[byte]core.Color{
	'r': core.ColorRed,
	'b': core.ColorBlue,
	'g': core.ColorGreen,
	'm': core.ColorMagenta,
	'y': core.ColorYellow,
}

// parseBoard builds a board from rows of space separated cells such as
// "3r" (value 3, red) or "." (empty).
func parseBoard(t *testing.T, rows ...string) *Board {
	t.Helper()
	grid := make([][]*Tile, len(rows))
	for r, row := range rows {
		for _, tok := range strings.Fields(row) {
			if tok == "." {
				grid[r] = append(grid[r], nil)
				continue
			}
			color, ok := colorInitials[tok[len(tok)-1]]
			require.True(t, ok, "bad color in %q", tok)
			value, err := strconv.Atoi(tok[:len(tok)-1])
			require.NoError(t, err, "bad value in %q", tok)
			grid[r] = append(grid[r], &Tile{Value: value, Color: color})
		}
	}
	return BoardFromRows(grid)
}

// checkerboard returns a full board with no legal moves.
func checkerboard(t *testing.T) *Board {
	t.Helper()
	return parseBoard(t,
		"1r 1b 1r 1b",
		"1b 1r 1b 1r",
		"1r 1b 1r 1b",
		"1b 1r 1b 1r",
	)
}

// sequenceSource hands out colors in a fixed cycle.
type sequenceSource struct {
	colors []core.Color
	next   int
}

func (s *sequenceSource) Draw() core.Color {
	c := s.colors[s.next%len(s.colors)]
	s.next++
	return c
}

// recorder collects observer callbacks in order.
type recorder struct {
	events []string
	over   []GameOverEvent
	goals  []int
	scores []int
}

func (r *recorder) BoardChanged(*Board) { r.events = append(r.events, "board") }

func (r *recorder) ScoreChanged(score int) {
	r.events = append(r.events, "score")
	r.scores = append(r.scores, score)
}

func (r *recorder) GoalAchieved(goal int) {
	r.events = append(r.events, "goal")
	r.goals = append(r.goals, goal)
}

func (r *recorder) GameOver(ev GameOverEvent) {
	r.events = append(r.events, "over")
	r.over = append(r.over, ev)
}

func newTestState(t *testing.T, b *Board, opts ...Option) *State {
	t.Helper()
	return NewStateWithBoard(DefaultRules(), NewDefaultPalette(7), b, opts...)
}
