package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/stock101/internal/core"
	"github.com/vovakirdan/stock101/internal/storage"
)

// fakeGame records what the platform asks of it.
type fakeGame struct {
	state   core.GameState
	resets  int
	frames  []core.InputFrame
	resized []core.Point
}

func (g *fakeGame) ID() string { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }

func (g *fakeGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.state = core.GameState{Session: "session-" + string(rune('a'+g.resets))}
}

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, in.Clone())
	return core.StepResult{State: g.state}
}

func (g *fakeGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "fake") }
func (g *fakeGame) State() core.GameState { return g.state }

func (g *fakeGame) Resize(width, height int) {
	g.resized = append(g.resized, core.Point{X: width, Y: height})
}

type fakeSaver struct {
	saved []storage.Result
	err   error
}

func (s *fakeSaver) SaveResult(r storage.Result) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.saved = append(s.saved, r)
	return int64(len(s.saved)), nil
}

func newTestModel(g *fakeGame, saver ResultSaver, opts ...ModelOption) Model {
	cfg := core.RuntimeConfig{ScreenW: 60, ScreenH: 30, TickRate: 60, Seed: 1}
	m := NewModel(g, saver, cfg, Player{ID: "id-7", Name: "alice"}, opts...)
	m.Init()
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm
}

func tick(t *testing.T, m Model) Model {
	t.Helper()
	return update(t, m, TickMsg(time.Now()))
}

func TestModelSavesResultOncePerGameOver(t *testing.T) {
	g := &fakeGame{}
	saver := &fakeSaver{}
	m := newTestModel(g, saver)

	m = tick(t, m)
	if len(saver.saved) != 0 {
		t.Fatalf("saved %d results while playing", len(saver.saved))
	}

	g.state.Score = 150
	g.state.Heap = 101
	g.state.Goal = 202
	g.state.GameOver = true
	g.state.EndReason = "overshoot"
	m = tick(t, m)
	m = tick(t, m)

	if len(saver.saved) != 1 {
		t.Fatalf("saved %d results, want 1", len(saver.saved))
	}
	r := saver.saved[0]
	if r.SessionID != g.state.Session || r.GameID != "fake" {
		t.Errorf("saved session/game = %q/%q", r.SessionID, r.GameID)
	}
	if r.UserName != "alice" || r.UserID != "id-7" || r.Source != storage.SourceLocal {
		t.Errorf("saved player = %q/%q/%q", r.UserName, r.UserID, r.Source)
	}
	if r.MaxScore != 150 || r.MaxHeap != 101 || r.EndReason != "overshoot" {
		t.Errorf("saved result = %+v", r)
	}

	// Undo reopens the game; the next game over saves again
	g.state.GameOver = false
	m = tick(t, m)
	g.state.GameOver = true
	g.state.Score = 180
	m = tick(t, m)

	if len(saver.saved) != 2 {
		t.Fatalf("saved %d results, want 2", len(saver.saved))
	}
	if saver.saved[1].SessionID != saver.saved[0].SessionID {
		t.Error("second save should reuse the session ID")
	}
	if m.SaveErr() != nil {
		t.Errorf("SaveErr() = %v", m.SaveErr())
	}
}

func TestModelRecordsSaveError(t *testing.T) {
	g := &fakeGame{}
	saver := &fakeSaver{err: errors.New("disk full")}
	m := newTestModel(g, saver)

	g.state.GameOver = true
	m = tick(t, m)

	if m.SaveErr() == nil {
		t.Error("SaveErr() should report the failed save")
	}
	if !strings.Contains(m.View(), "Result not saved") {
		t.Error("View() should show the failed save")
	}
}

func TestModelWithoutStore(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(g, nil)

	g.state.GameOver = true
	m = tick(t, m)
	if m.SaveErr() != nil {
		t.Errorf("SaveErr() = %v, want nil", m.SaveErr())
	}
}

func TestModelRestartAfterGameOver(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(g, &fakeSaver{})
	if g.resets != 1 {
		t.Fatalf("resets after Init = %d, want 1", g.resets)
	}

	g.state.GameOver = true
	m = tick(t, m)
	steps := len(g.frames)

	m = update(t, m, runeKey('r'))
	m = tick(t, m)

	if g.resets != 2 {
		t.Errorf("resets = %d, want 2", g.resets)
	}
	if len(g.frames) != steps {
		t.Error("restart tick should not step the game")
	}
	if m.State().GameOver {
		t.Error("state should be fresh after restart")
	}
}

func TestModelForwardsInput(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(g, nil)

	m = update(t, m, runeKey('u'))
	m = update(t, m, tea.MouseMsg{X: 4, Y: 9, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = tick(t, m)

	last := g.frames[len(g.frames)-1]
	if !last.Has(core.ActionUndo) {
		t.Error("Step should see Undo")
	}
	if last.Click == nil || *last.Click != (core.Point{X: 4, Y: 9}) {
		t.Errorf("Step click = %v, want (4, 9)", last.Click)
	}

	// Input does not leak into the next tick
	m = tick(t, m)
	if !g.frames[len(g.frames)-1].Empty() {
		t.Error("second tick should see an empty frame")
	}
}

func TestModelResizeKeepsGame(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(g, nil)

	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	if g.resets != 1 {
		t.Errorf("resize reset the game (%d resets)", g.resets)
	}
	want := core.Point{X: 100, Y: 40 - helpHeight}
	if len(g.resized) != 1 || g.resized[0] != want {
		t.Errorf("resized = %v, want [%v]", g.resized, want)
	}
}

func TestModelBackToMenu(t *testing.T) {
	esc := tea.KeyMsg{Type: tea.KeyEsc}

	tests := []struct {
		name     string
		opts     []ModelOption
		over     bool
		wantBack bool
	}{
		{"playing", []ModelOption{WithBackToMenu()}, false, false},
		{"game over", []ModelOption{WithBackToMenu()}, true, true},
		{"standalone game over", nil, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &fakeGame{}
			m := newTestModel(g, nil, tt.opts...)
			g.state.GameOver = tt.over
			m = tick(t, m)

			m = update(t, m, esc)
			if m.BackToMenu() != tt.wantBack {
				t.Errorf("BackToMenu() = %v, want %v", m.BackToMenu(), tt.wantBack)
			}
			if tt.wantBack && m.View() != "" {
				t.Error("View should be empty after leaving")
			}
		})
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(&fakeGame{}, nil)
	next, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if !next.(Model).IsQuitting() {
		t.Error("IsQuitting() should be true")
	}
}

func TestModelViewIncludesHelp(t *testing.T) {
	m := newTestModel(&fakeGame{}, nil)
	view := m.View()
	if view == "" {
		t.Fatal("View() is empty")
	}
	for _, want := range []string{"fake", "undo"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}
