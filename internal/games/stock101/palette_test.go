package stock101

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/stock101/internal/core"
)

func TestPaletteDefaults(t *testing.T) {
	p := NewDefaultPalette(1)
	assert.Equal(t, DefaultColors(), p.Enabled())
	assert.Equal(t, core.ColorYellow, p.Working())
	assert.False(t, p.IsEnabled(core.ColorYellow))
}

func TestPaletteSetEnabledEmptyFallsBackToSingleton(t *testing.T) {
	p := NewDefaultPalette(1)
	require.NoError(t, p.SetEnabled(nil))
	assert.Equal(t, []core.Color{core.ColorRed}, p.Enabled())

	require.NoError(t, p.SetEnabled([]core.Color{}))
	assert.Len(t, p.Enabled(), 1)
}

func TestPaletteSetEnabledRejectsUnknown(t *testing.T) {
	p := NewDefaultPalette(1)
	err := p.SetEnabled([]core.Color{core.ColorBlue, core.ColorYellow})
	assert.ErrorIs(t, err, ErrColorNotInPalette)
	assert.Equal(t, DefaultColors(), p.Enabled(), "failed update must not change the set")
}

func TestPaletteSetEnabledKeepsPaletteOrder(t *testing.T) {
	p := NewDefaultPalette(1)
	require.NoError(t, p.SetEnabled([]core.Color{core.ColorMagenta, core.ColorBlue, core.ColorBlue}))
	assert.Equal(t, []core.Color{core.ColorBlue, core.ColorMagenta}, p.Enabled())
}

func TestPaletteToggleNeverEmpties(t *testing.T) {
	p := NewDefaultPalette(1)
	for _, c := range DefaultColors() {
		require.NoError(t, p.Toggle(c))
	}
	assert.NotEmpty(t, p.Enabled())

	require.NoError(t, p.Toggle(core.ColorGreen))
	assert.True(t, p.IsEnabled(core.ColorGreen))
}

func TestPaletteDrawOnlyEnabled(t *testing.T) {
	p := NewDefaultPalette(42)
	require.NoError(t, p.SetEnabled([]core.Color{core.ColorBlue, core.ColorGreen}))
	seen := map[core.Color]int{}
	for range 500 {
		seen[p.Draw()]++
	}
	assert.Len(t, seen, 2)
	assert.Positive(t, seen[core.ColorBlue])
	assert.Positive(t, seen[core.ColorGreen])
}

func TestPaletteDrawIsSeeded(t *testing.T) {
	a, b := NewDefaultPalette(99), NewDefaultPalette(99)
	for range 50 {
		require.Equal(t, a.Draw(), b.Draw())
	}
}

func TestPaletteRepaint(t *testing.T) {
	p := NewDefaultPalette(3)
	require.NoError(t, p.SetEnabled([]core.Color{core.ColorGreen}))

	orig := Tile{Value: 5, Color: core.ColorRed}
	got, ok := p.Repaint(orig)
	require.True(t, ok)
	assert.Equal(t, Tile{Value: 5, Color: core.ColorGreen}, got)
	assert.Equal(t, core.ColorRed, orig.Color, "argument must not be mutated")

	working := Tile{Value: 9, Color: core.ColorYellow}
	got, ok = p.Repaint(working)
	assert.False(t, ok)
	assert.Equal(t, working, got)
}

func TestNewPalettePanics(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	assert.Panics(t, func() { NewPalette(nil, core.ColorYellow, rng) })
	assert.Panics(t, func() {
		NewPalette([]core.Color{core.ColorRed, core.ColorYellow}, core.ColorYellow, rng)
	})
}
