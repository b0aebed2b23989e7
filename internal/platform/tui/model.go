package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/stock101/internal/core"
	"github.com/vovakirdan/stock101/internal/registry"
	"github.com/vovakirdan/stock101/internal/storage"
)

// helpHeight is the number of rows reserved below the game for key help.
const helpHeight = 1

// ResultSaver persists finished games. *storage.Store implements it.
type ResultSaver interface {
	SaveResult(r storage.Result) (int64, error)
}

// Player identifies who is at the keyboard.
type Player struct {
	ID     string
	Name   string
	Source string // storage.SourceLocal or storage.SourceSSH
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithLogger logs result persistence through l.
func WithLogger(l *log.Logger) ModelOption {
	return func(m *Model) { m.logger = l }
}

// WithPainter renders through p instead of the process-wide renderer.
func WithPainter(p *Painter) ModelOption {
	return func(m *Model) { m.painter = p }
}

// WithBackToMenu lets Esc leave a paused or finished game.
func WithBackToMenu() ModelOption {
	return func(m *Model) { m.canGoBack = true }
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	painter    *Painter
	store      ResultSaver
	config     core.RuntimeConfig
	player     Player
	logger     *log.Logger
	keyMapper  *KeyMapper
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	canGoBack  bool
	backToMenu bool
	scoreSaved bool // Whether the result has been saved for the current game over
	saveErr    error
}

// NewModel creates a new Bubble Tea model for the given game. store may be nil.
func NewModel(game registry.Game, store ResultSaver, cfg core.RuntimeConfig, player Player, opts ...ModelOption) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if player.Source == "" {
		player.Source = storage.SourceLocal
	}

	h := help.New()
	h.Width = cfg.ScreenW

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, gameHeight(cfg.ScreenH)),
		painter:    defaultPainter,
		store:      store,
		config:     cfg,
		player:     player,
		keyMapper:  NewKeyMapper(),
		help:       h,
		inputFrame: core.NewInputFrame(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func gameHeight(screenH int) int {
	if screenH <= helpHeight {
		return screenH
	}
	return screenH - helpHeight
}

// gameConfig is the runtime config the game sees: the terminal minus the help line.
func (m Model) gameConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH = gameHeight(cfg.ScreenH)
	return cfg
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.gameConfig())
	// Note: gameState will be set on first tick (value receiver limitation)

	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keyMapper.MapMouseToFrame(msg, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	// Esc leaves the game only when nothing is in progress
	if action == core.ActionBack && m.canGoBack && (m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
		return m, tea.Quit // A session model swallows this and shows its menu
	}

	if action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, gameHeight(msg.Height))
	m.help.Width = msg.Width

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, gameHeight(msg.Height))
	} else if !m.gameState.GameOver {
		m.game.Reset(m.gameConfig())
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}

	// Restart after game over starts a fresh session
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.gameConfig())
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// Undo after game over reopens the session; the next game over
	// overwrites its row.
	if !m.gameState.GameOver {
		m.scoreSaved = false
	} else if !m.scoreSaved {
		m.saveResult()
		m.scoreSaved = true
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// saveResult records the finished game.
func (m *Model) saveResult() {
	if m.store == nil {
		return
	}

	r := storage.Result{
		SessionID: m.gameState.Session,
		GameID:    m.game.ID(),
		UserID:    m.player.ID,
		UserName:  m.player.Name,
		Source:    m.player.Source,
		MaxHeap:   m.gameState.Heap,
		MaxScore:  m.gameState.Score,
		EndReason: m.gameState.EndReason,
	}
	id, err := m.store.SaveResult(r)
	m.saveErr = err
	if m.logger == nil {
		return
	}
	if err != nil {
		m.logger.Error("cannot save result", "game", r.GameID, "user", r.UserName, "error", err)
		return
	}
	m.logger.Info("result saved",
		"id", id,
		"game", r.GameID,
		"user", r.UserName,
		"score", r.MaxScore,
		"heap", r.MaxHeap,
		"reason", r.EndReason,
	)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)

	status := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(m.help.View(m.keyMapper.Keys()))
	if m.saveErr != nil && m.gameState.GameOver {
		status = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render("Result not saved: " + m.saveErr.Error())
	}
	return m.painter.Render(m.screen) + "\n" + status
}

// State returns the game state seen on the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// SaveErr returns the error from the last result save, if any.
func (m Model) SaveErr() error {
	return m.saveErr
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Summary describes how a local run ended.
type Summary struct {
	State      core.GameState
	SaveErr    error
	BackToMenu bool
}

// Run starts the Bubble Tea program with the given game and blocks until
// the player quits. store may be nil.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, player Player, opts ...ModelOption) (Summary, error) {
	var saver ResultSaver
	if store != nil {
		saver = store
	}
	model := NewModel(game, saver, cfg, player, opts...)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Clicks select tiles
	)

	final, err := p.Run()
	if err != nil {
		return Summary{}, err
	}
	m, ok := final.(Model)
	if !ok {
		return Summary{}, nil
	}
	return Summary{State: m.State(), SaveErr: m.SaveErr(), BackToMenu: m.BackToMenu()}, nil
}
