package tui

import (
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/stock101/internal/core"
)

func TestPainterRenderKeepsText(t *testing.T) {
	s := core.NewScreen(20, 3)
	s.DrawTextColored(0, 0, "STOCK", core.ColorRed, core.ColorDefault)
	s.DrawTextColored(6, 0, "101", core.ColorBlack, core.ColorYellow)
	s.DrawText(0, 2, "plain")

	p := NewPainter(lipgloss.NewRenderer(io.Discard))
	out := p.Render(s)

	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	for _, want := range []string{"STOCK", "101", "plain"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPainterOutOfRangeColor(t *testing.T) {
	s := core.NewScreen(4, 1)
	s.SetCell(0, 0, core.Cell{Rune: 'x', Color: core.Color(200), Background: core.Color(201)})

	p := NewPainter(lipgloss.NewRenderer(io.Discard))
	if out := p.Render(s); !strings.Contains(out, "x") {
		t.Errorf("output = %q, want it to contain x", out)
	}
}

func TestPainterConcurrentUse(t *testing.T) {
	p := NewPainter(lipgloss.NewRenderer(io.Discard))

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := core.NewScreen(10, 2)
			s.DrawTextColored(0, 0, "tile", core.Color(i%colorCount), core.ColorWhite)
			_ = p.Render(s)
		}()
	}
	wg.Wait()
}
