package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/stock101/internal/core"
	"github.com/vovakirdan/stock101/internal/registry"
	"github.com/vovakirdan/stock101/internal/storage"
)

func init() {
	registry.Register("fake", func() registry.Game { return &fakeGame{} })
}

var testColors = ColorChoice{
	Available: []core.Color{core.ColorRed, core.ColorBlue, core.ColorGreen},
	Enabled:   []core.Color{core.ColorRed, core.ColorBlue},
}

func menuUpdate(t *testing.T, m MenuModel, msg tea.Msg) MenuModel {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(MenuModel)
	if !ok {
		t.Fatalf("Update returned %T, want MenuModel", next)
	}
	return nm
}

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 60, Seed: 1}
}

func TestMenuSelectGame(t *testing.T) {
	m := NewMenuModel(testRuntime(), testColors)
	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	res := m.Result()
	if res.GameID != "fake" {
		t.Errorf("GameID = %q, want fake", res.GameID)
	}
	if res.Quit || res.WantsScoreboard {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestMenuToggleColors(t *testing.T) {
	m := NewMenuModel(testRuntime(), testColors)
	if got := m.EnabledColors(); len(got) != 2 {
		t.Fatalf("EnabledColors() = %v, want red and blue", got)
	}

	// Move to the color row, then onto green and enable it
	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})

	got := m.EnabledColors()
	want := []core.Color{core.ColorRed, core.ColorBlue, core.ColorGreen}
	if len(got) != len(want) {
		t.Fatalf("EnabledColors() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("EnabledColors()[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	// Enter on the color row toggles instead of starting a game
	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Selected() != nil {
		t.Error("Enter on the color row should not select a game")
	}
	if len(m.EnabledColors()) != 2 {
		t.Errorf("EnabledColors() = %v, want green off again", m.EnabledColors())
	}
}

func TestMenuKeepsOneColor(t *testing.T) {
	m := NewMenuModel(testRuntime(), ColorChoice{
		Available: []core.Color{core.ColorRed, core.ColorBlue},
		Enabled:   []core.Color{core.ColorRed},
	})
	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})

	if got := m.EnabledColors(); len(got) != 1 || got[0] != core.ColorRed {
		t.Errorf("EnabledColors() = %v, want [red]", got)
	}
}

func TestMenuScoreboardAndQuit(t *testing.T) {
	m := NewMenuModel(testRuntime(), testColors)
	if res := menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyTab}).Result(); !res.WantsScoreboard {
		t.Errorf("Tab result = %+v, want scoreboard", res)
	}

	m = NewMenuModel(testRuntime(), testColors)
	if res := menuUpdate(t, m, runeKey('q')).Result(); !res.Quit {
		t.Errorf("q result = %+v, want quit", res)
	}
}

type fakeLister struct {
	results []storage.Result
	err     error
	asked   []string
}

func (l *fakeLister) TopResults(gameID string, _ int) ([]storage.Result, error) {
	l.asked = append(l.asked, gameID)
	return l.results, l.err
}

func TestScoreboardTabs(t *testing.T) {
	lister := &fakeLister{results: []storage.Result{
		{UserName: "alice", MaxScore: 300, MaxHeap: 202, Source: storage.SourceSSH, CreatedAt: time.Now()},
	}}
	m := NewScoreboardModel(lister, 120, 30)

	if len(lister.asked) != 1 || lister.asked[0] != "" {
		t.Fatalf("first load asked for %v, want all boards", lister.asked)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if last := lister.asked[len(lister.asked)-1]; last != "fake" {
		t.Errorf("Tab loaded %q, want fake", last)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(ScoreboardModel).IsGoingBack() {
		t.Error("Esc should go back")
	}
}

func TestScoreboardLoadError(t *testing.T) {
	m := NewScoreboardModel(&fakeLister{err: errors.New("locked")}, 80, 24)
	if m.loadErr == nil {
		t.Error("load error should be kept for display")
	}
	if m.View() == "" {
		t.Error("View() should render the error")
	}
}

func TestSessionFlow(t *testing.T) {
	s := NewSessionModel(nil, testRuntime(), Player{Name: "bob", Source: storage.SourceSSH}, testColors)

	// Menu -> results -> menu
	next, _ := s.Update(tea.KeyMsg{Type: tea.KeyTab})
	s = next.(SessionModel)
	if s.screen != screenScoreboard {
		t.Fatalf("screen = %v, want scoreboard", s.screen)
	}
	next, _ = s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	s = next.(SessionModel)
	if s.screen != screenMenu {
		t.Fatalf("screen = %v, want menu", s.screen)
	}

	// Menu -> game
	next, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	s = next.(SessionModel)
	if s.screen != screenGame || s.gameModel == nil {
		t.Fatalf("screen = %v, want game", s.screen)
	}
	if cmd == nil {
		t.Error("starting a game should schedule a tick")
	}

	// Pause, then Esc returns to the menu
	next, _ = s.Update(runeKey('p'))
	s = next.(SessionModel)
	s.gameModel.gameState.Paused = true
	next, _ = s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	s = next.(SessionModel)
	if s.screen != screenMenu {
		t.Errorf("screen = %v, want menu after Esc on a paused game", s.screen)
	}
	if s.quitting {
		t.Error("leaving a game should not end the session")
	}
}
