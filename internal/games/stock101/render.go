package stock101

import (
	"fmt"
	"math"
	"strconv"

	"github.com/vovakirdan/stock101/internal/core"
)

const hudHeight = 4

// layout places the board on screen. Cells are separated by one-character
// borders.
type layout struct {
	cellW, cellH   int
	boardX, boardY int
	boardW, boardH int
	size           int
}

func (g *Game) layout() layout {
	n := g.state.board.Size()
	cw, ch := g.cfg.Display.CellWidth, g.cfg.Display.CellHeight
	l := layout{
		cellW:  cw,
		cellH:  ch,
		boardW: n*(cw+1) + 1,
		boardH: n*(ch+1) + 1,
		boardY: hudHeight,
		size:   n,
	}
	l.boardX = max((g.screenW-l.boardW)/2, 0)
	return l
}

// cellRect returns the interior of a cell, borders excluded.
func (l layout) cellRect(row, col int) core.Rect {
	return core.NewRect(
		l.boardX+col*(l.cellW+1)+1,
		l.boardY+row*(l.cellH+1)+1,
		l.cellW,
		l.cellH,
	)
}

// cellAt maps a screen position to the board cell under it. Borders do not
// belong to any cell.
func (g *Game) cellAt(x, y int) (Pos, bool) {
	l := g.layout()
	dx, dy := x-l.boardX-1, y-l.boardY-1
	if dx < 0 || dy < 0 {
		return Pos{}, false
	}
	if dx%(l.cellW+1) == l.cellW || dy%(l.cellH+1) == l.cellH {
		return Pos{}, false
	}
	p := Pos{Row: dy / (l.cellH + 1), Col: dx / (l.cellW + 1)}
	if !g.state.board.InBounds(p.Row, p.Col) {
		return Pos{}, false
	}
	return p, true
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	l := g.layout()
	g.renderHUD(dst, l)
	g.renderGrid(dst, l)
	g.renderTiles(dst, l)
	g.renderCursor(dst, l)
	g.renderStatus(dst, l)
	g.renderOverlays(dst, l)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws score, heap and goal above the board.
func (g *Game) renderHUD(dst *core.Screen, l layout) {
	title := "STOCK 101"
	dst.DrawText(l.boardX+(l.boardW-len(title))/2, 0, title)

	dst.DrawText(l.boardX, 1, fmt.Sprintf("Score: %d", g.state.Score()))

	goal := fmt.Sprintf("Heap %d / Goal %d", g.state.Heap(), g.state.Goal())
	dst.DrawText(max(l.boardX+l.boardW-len(goal), l.boardX), 1, goal)

	if g.state.RepaintMode() {
		mode := "REPAINT MODE"
		dst.DrawTextColored(l.boardX+(l.boardW-len(mode))/2, 2, mode, core.ColorBlack, g.state.Palette().Working())
	}
}

// renderGrid draws the cell borders.
func (g *Game) renderGrid(dst *core.Screen, l layout) {
	n := l.size
	for row := range n + 1 {
		y := l.boardY + row*(l.cellH+1)
		for col := range n + 1 {
			x := l.boardX + col*(l.cellW+1)
			dst.Set(x, y, junction(row, col, n))

			if col < n {
				for i := 1; i <= l.cellW; i++ {
					dst.Set(x+i, y, '─')
				}
			}
			if row < n {
				for i := 1; i <= l.cellH; i++ {
					dst.Set(x, y+i, '│')
				}
			}
		}
	}
}

func junction(row, col, n int) rune {
	switch {
	case row == 0 && col == 0:
		return '┌'
	case row == 0 && col == n:
		return '┐'
	case row == n && col == 0:
		return '└'
	case row == n && col == n:
		return '┘'
	case row == 0:
		return '┬'
	case row == n:
		return '┴'
	case col == 0:
		return '├'
	case col == n:
		return '┤'
	default:
		return '┼'
	}
}

// renderTiles draws resting tiles, then tiles sliding toward a pending merge.
func (g *Game) renderTiles(dst *core.Screen, l layout) {
	moving := make(map[Pos]Shift)
	if g.pending != nil {
		for _, s := range g.pending.Shifts {
			moving[s.From] = s
		}
	}

	b := g.state.board
	for row := range l.size {
		for col := range l.size {
			if _, ok := moving[Pos{row, col}]; ok {
				continue
			}
			if t, ok := b.At(row, col); ok {
				g.drawTile(dst, l.cellRect(row, col), t)
			}
		}
	}

	if g.pending == nil {
		return
	}
	t := easeOutQuad(float64(g.animTicks) / float64(max(g.cfg.Display.SlideTicks, 1)))
	for _, s := range g.pending.Shifts {
		tile, ok := b.At(s.From.Row, s.From.Col)
		if !ok {
			continue
		}
		r := l.cellRect(s.From.Row, s.From.Col)
		r.X += int(math.Round(float64((s.To.Col-s.From.Col)*(l.cellW+1)) * t))
		r.Y += int(math.Round(float64((s.To.Row-s.From.Row)*(l.cellH+1)) * t))
		g.drawTile(dst, r, tile)
	}
}

func (g *Game) drawTile(dst *core.Screen, r core.Rect, t Tile) {
	dst.FillRect(r, ' ', t.Color)

	fg := core.ColorBlack
	if t.IsNew {
		fg = core.ColorWhite
	}
	text := strconv.Itoa(t.Value)
	cx, cy := r.Center()
	dst.DrawTextColored(cx-len(text)/2, cy, text, fg, t.Color)
}

// renderCursor brackets the selected cell and marks a hinted one.
func (g *Game) renderCursor(dst *core.Screen, l layout) {
	if g.hint != nil {
		r := l.cellRect(g.hint.Row, g.hint.Col)
		bg := dst.GetCell(r.X, r.Y).Background
		dst.SetCell(r.X, r.Y, core.Cell{Rune: '*', Color: core.ColorWhite, Background: bg})
	}

	if g.state.Over() {
		return
	}
	r := l.cellRect(g.cursor.Row, g.cursor.Col)
	_, cy := r.Center()
	dst.SetCell(r.X-1, cy, core.Cell{Rune: '[', Color: core.ColorWhite})
	dst.SetCell(r.Right(), cy, core.Cell{Rune: ']', Color: core.ColorWhite})
}

// renderStatus shows the latest message under the board.
func (g *Game) renderStatus(dst *core.Screen, l layout) {
	y := l.boardY + l.boardH
	if g.message != "" {
		dst.DrawText(l.boardX, y, g.message)
	}
	if g.state.HistoryLen() > 0 {
		undo := fmt.Sprintf("undo x%d", g.state.HistoryLen())
		dst.DrawTextColored(max(l.boardX+l.boardW-len(undo), l.boardX), y+1, undo, core.ColorGray, core.ColorDefault)
	}
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, l layout) {
	centerX := l.boardX + l.boardW/2
	centerY := l.boardY + l.boardH/2

	if g.paused {
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
		return
	}

	if g.state.Over() {
		g.drawOverlay(dst, centerX, centerY,
			"GAME OVER",
			g.state.Reason().Message(g.state.Goal()),
			fmt.Sprintf("Score %d  Heap %d", g.state.Score(), g.state.Heap()),
			"U: undo  R: new game",
		)
	}
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	boxX := centerX - boxW/2
	boxY := centerY - boxH/2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box)

	for i, line := range lines {
		dst.DrawText(centerX-len(line)/2, boxY+1+i, line)
	}
}

// easeOutQuad provides smooth deceleration for animation.
func easeOutQuad(t float64) float64 {
	t = math.Min(math.Max(t, 0), 1)
	return t * (2 - t)
}
