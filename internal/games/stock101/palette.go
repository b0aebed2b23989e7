package stock101

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/stock101/internal/core"
)

// ErrColorNotInPalette is returned when enabling a color the palette does not offer.
var ErrColorNotInPalette = errors.New("stock101: color not in palette")

// DefaultColors returns the selectable tile colors in palette order.
func DefaultColors() []core.Color {
	return []core.Color{core.ColorRed, core.ColorBlue, core.ColorGreen, core.ColorMagenta}
}

// DefaultWorkingColor is the color given to every merge result.
const DefaultWorkingColor = core.ColorYellow

// ColorSource supplies colors for freshly spawned tiles.
type ColorSource interface {
	Draw() core.Color
}

// Palette tracks which tile colors are enabled and draws from them.
// The working color is never part of the selectable set.
type Palette struct {
	colors  []core.Color
	enabled []core.Color
	working core.Color
	rng     *rand.Rand
}

// NewPalette creates a palette with every color enabled.
// Panics if colors is empty or contains the working color.
func NewPalette(colors []core.Color, working core.Color, rng *rand.Rand) *Palette {
	if len(colors) == 0 {
		panic("stock101: palette needs at least one color")
	}
	seen := make(map[core.Color]bool, len(colors))
	all := make([]core.Color, 0, len(colors))
	for _, c := range colors {
		if c == working {
			panic(fmt.Sprintf("stock101: working color %s cannot be selectable", c))
		}
		if seen[c] {
			continue
		}
		seen[c] = true
		all = append(all, c)
	}
	return &Palette{
		colors:  all,
		enabled: append([]core.Color(nil), all...),
		working: working,
		rng:     rng,
	}
}

// NewDefaultPalette creates the four-color palette seeded with seed.
func NewDefaultPalette(seed int64) *Palette {
	return NewPalette(DefaultColors(), DefaultWorkingColor, rand.New(rand.NewSource(seed)))
}

// Colors returns every selectable color, enabled or not.
func (p *Palette) Colors() []core.Color {
	return append([]core.Color(nil), p.colors...)
}

// Enabled returns the colors new tiles are drawn from. Never empty.
func (p *Palette) Enabled() []core.Color {
	return append([]core.Color(nil), p.enabled...)
}

// IsEnabled reports whether c is currently drawn for new tiles.
func (p *Palette) IsEnabled(c core.Color) bool {
	for _, e := range p.enabled {
		if e == c {
			return true
		}
	}
	return false
}

// Working returns the reserved merge-result color.
func (p *Palette) Working() core.Color {
	return p.working
}

// SetEnabled replaces the enabled set. An empty set enables the first
// palette color instead. Colors outside the palette are rejected and leave
// the enabled set untouched.
func (p *Palette) SetEnabled(colors []core.Color) error {
	want := make(map[core.Color]bool, len(colors))
	for _, c := range colors {
		if !p.offers(c) {
			return fmt.Errorf("%w: %s", ErrColorNotInPalette, c)
		}
		want[c] = true
	}

	enabled := make([]core.Color, 0, len(want))
	for _, c := range p.colors {
		if want[c] {
			enabled = append(enabled, c)
		}
	}
	if len(enabled) == 0 {
		enabled = append(enabled, p.colors[0])
	}
	p.enabled = enabled
	return nil
}

// Toggle flips a single color, keeping at least one enabled.
func (p *Palette) Toggle(c core.Color) error {
	if !p.IsEnabled(c) {
		return p.SetEnabled(append(p.Enabled(), c))
	}
	rest := make([]core.Color, 0, len(p.enabled))
	for _, e := range p.enabled {
		if e != c {
			rest = append(rest, e)
		}
	}
	return p.SetEnabled(rest)
}

// Draw picks a uniformly random enabled color.
func (p *Palette) Draw() core.Color {
	if len(p.enabled) == 0 {
		panic("stock101: draw from empty palette")
	}
	return p.enabled[p.rng.Intn(len(p.enabled))]
}

// Repaint returns t with a freshly drawn color. Working-colored tiles cannot
// be repainted and come back unchanged with ok == false.
func (p *Palette) Repaint(t Tile) (Tile, bool) {
	if t.Color == p.working {
		return t, false
	}
	t.Color = p.Draw()
	return t, true
}

func (p *Palette) offers(c core.Color) bool {
	for _, o := range p.colors {
		if o == c {
			return true
		}
	}
	return false
}
