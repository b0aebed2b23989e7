package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/stock101/internal/core"
)

// ansiCodes maps core.Color to terminal palette indices. ColorDefault has
// no entry and leaves the terminal's own color in place.
var ansiCodes = map[core.Color]string{
	core.ColorRed:     "1",
	core.ColorGreen:   "2",
	core.ColorYellow:  "3",
	core.ColorBlue:    "4",
	core.ColorMagenta: "5",
	core.ColorCyan:    "6",
	core.ColorWhite:   "15",
	core.ColorGray:    "245",
	core.ColorBlack:   "0",
}

const colorCount = int(core.ColorBlack) + 1

// Painter turns a Screen buffer into a styled string. Styles for every
// foreground/background pair are built up front, so a Painter is safe to
// share between goroutines.
type Painter struct {
	styles [colorCount][colorCount]lipgloss.Style
}

// NewPainter builds styles with the given renderer. Over SSH the renderer
// should come from the session so the client's color profile is used.
func NewPainter(r *lipgloss.Renderer) *Painter {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	p := &Painter{}
	for fg := range colorCount {
		for bg := range colorCount {
			style := r.NewStyle()
			if code, ok := ansiCodes[core.Color(fg)]; ok {
				style = style.Foreground(lipgloss.Color(code))
			}
			if code, ok := ansiCodes[core.Color(bg)]; ok {
				style = style.Background(lipgloss.Color(code))
			}
			p.styles[fg][bg] = style
		}
	}
	return p
}

var defaultPainter = NewPainter(nil)

// RenderScreen converts a Screen buffer using the process-wide renderer.
func RenderScreen(s *core.Screen) string {
	return defaultPainter.Render(s)
}

func (p *Painter) style(fg, bg core.Color) lipgloss.Style {
	if int(fg) >= colorCount {
		fg = core.ColorDefault
	}
	if int(bg) >= colorCount {
		bg = core.ColorDefault
	}
	return p.styles[fg][bg]
}

// Render converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func (p *Painter) Render(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y)

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != start.Color || cell.Background != start.Background {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(p.style(start.Color, start.Background).Render(run.String()))
		}
	}
	return sb.String()
}
