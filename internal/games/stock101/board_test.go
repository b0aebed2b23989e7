package stock101

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/stock101/internal/core"
)

func TestNewFilledBoard(t *testing.T) {
	src := &sequenceSource{colors: []core.Color{core.ColorRed, core.ColorBlue}}
	b := NewFilledBoard(4, src)

	assert.Equal(t, 4, b.Size())
	assert.Zero(t, b.EmptyCount())
	assert.Equal(t, 16, b.Sum())

	first, ok := b.At(0, 0)
	require.True(t, ok)
	assert.Equal(t, Tile{Value: 1, Color: core.ColorRed}, first)
	second, _ := b.At(0, 1)
	assert.Equal(t, core.ColorBlue, second.Color)
}

func TestBoardOutOfRangePanics(t *testing.T) {
	b := NewBoard(4)
	assert.Panics(t, func() { b.At(4, 0) })
	assert.Panics(t, func() { b.Set(0, -1, Tile{Value: 1}) })
	assert.Panics(t, func() { NewBoard(0) })
	assert.False(t, b.InBounds(-1, 2))
	assert.True(t, b.InBounds(3, 3))
}

func TestBoardCloneIsDeep(t *testing.T) {
	b := parseBoard(t,
		"1r 2b",
		"3g .",
	)
	c := b.Clone()
	require.True(t, b.Equal(c))

	c.Set(0, 0, Tile{Value: 9, Color: core.ColorYellow})
	c.Clear(1, 0)
	orig, _ := b.At(0, 0)
	assert.Equal(t, 1, orig.Value)
	assert.False(t, b.IsEmpty(1, 0))
	assert.False(t, b.Equal(c))
}

func TestBoardString(t *testing.T) {
	b := parseBoard(t,
		"1r 12b",
		". 3y",
	)
	assert.Equal(t, "   1r  12b\n    .   3y", b.String())
}

func TestBoardFromRowsRejectsRagged(t *testing.T) {
	assert.Panics(t, func() {
		BoardFromRows([][]*Tile{{nil, nil}, {nil}})
	})
}
