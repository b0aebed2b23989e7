package stock101

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/vovakirdan/stock101/internal/config"
	"github.com/vovakirdan/stock101/internal/core"
	"github.com/vovakirdan/stock101/internal/registry"
)

// Variant selects the board layout of a registered game.
type Variant int

const (
	VariantClassic Variant = iota // 4x4, or whatever the config file says
	VariantLarge                  // 6x6
)

// configPath stores the custom config path set via CLI
var configPath string

// colorOverride stores the enabled colors set via CLI
var colorOverride []core.Color

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetEnabledColors restricts spawned colors for new games. nil restores
// the config file's selection.
func SetEnabledColors(colors []core.Color) {
	colorOverride = append([]core.Color(nil), colors...)
}

// Game adapts a State to the platform: cursor and mouse input, a slide
// animation between planning and committing a merge, and status messages.
type Game struct {
	variant Variant
	tick    uint64
	colors  []core.Color

	cfg     config.Stock101Config
	state   *State
	session uuid.UUID

	screenW int
	screenH int

	cursor Pos
	hint   *Move

	// Merge waiting for its slide animation to finish
	pending   *MergePlan
	animTicks int

	paused         bool
	tooSmall       bool
	confirmRestart bool

	message      string
	messageTicks int
}

// New creates a Stock 101 game using the configured board size.
func New() *Game {
	return &Game{variant: VariantClassic}
}

// NewLarge creates a Stock 101 game on a 6x6 board.
func NewLarge() *Game {
	return &Game{variant: VariantLarge}
}

func init() {
	registry.Register("stock101", func() registry.Game {
		return New()
	})
	registry.Register("stock101_large", func() registry.Game {
		return NewLarge()
	})
}

// SetColors restricts spawned colors for this instance only, overriding
// SetEnabledColors. Takes effect on the next Reset.
func (g *Game) SetColors(colors []core.Color) {
	g.colors = append([]core.Color(nil), colors...)
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.variant == VariantLarge {
		return "stock101_large"
	}
	return "stock101"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.variant == VariantLarge {
		return "Stock 101 (Large)"
	}
	return "Stock 101"
}

// LoadConfig resolves the effective configuration for a variant: file or
// embedded defaults, then the variant preset, then the CLI color override.
func LoadConfig(v Variant) (config.Stock101Config, error) {
	return loadConfig(v, colorOverride)
}

func loadConfig(v Variant, colors []core.Color) (config.Stock101Config, error) {
	cfg, err := config.LoadStock101(configPath)
	if err != nil {
		return cfg, err
	}
	if v == VariantLarge {
		config.ApplyStock101Preset(&cfg, config.PresetLarge)
	}
	if len(colors) > 0 {
		cfg.Rules.Enabled = make([]string, 0, len(colors))
		for _, c := range colors {
			cfg.Rules.Enabled = append(cfg.Rules.Enabled, c.String())
		}
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// NewStateFromConfig builds a palette and game state from validated config.
func NewStateFromConfig(cfg config.Stock101Config, seed int64, opts ...Option) (*State, error) {
	colors, enabled, working, err := cfg.Rules.Palette()
	if err != nil {
		return nil, err
	}
	palette := NewPalette(colors, working, rand.New(rand.NewSource(seed)))
	if len(enabled) > 0 {
		if err := palette.SetEnabled(enabled); err != nil {
			return nil, err
		}
	}
	rules := Rules{
		BoardSize:       cfg.Rules.BoardSize,
		InitialGoal:     cfg.Rules.InitialGoal,
		GoalIncrement:   cfg.Rules.GoalIncrement,
		HistoryCapacity: cfg.Rules.HistoryCapacity,
	}
	return NewState(rules, palette, opts...), nil
}

// Reset initializes/restarts the game.
func (g *Game) Reset(rc core.RuntimeConfig) {
	colors := colorOverride
	if len(g.colors) > 0 {
		colors = g.colors
	}
	cfg, err := loadConfig(g.variant, colors)
	if err != nil {
		cfg = config.DefaultStock101Config()
		if g.variant == VariantLarge {
			config.ApplyStock101Preset(&cfg, config.PresetLarge)
		}
	}
	g.cfg = cfg

	state, err := NewStateFromConfig(cfg, rc.Seed, WithObserver(g.observer()))
	if err != nil {
		state = NewState(DefaultRules(), NewDefaultPalette(rc.Seed), WithObserver(g.observer()))
	}
	g.state = state
	g.session = uuid.New()

	g.tick = 0
	g.cursor = Pos{}
	g.hint = nil
	g.pending = nil
	g.animTicks = 0
	g.paused = false
	g.confirmRestart = false
	g.message = ""
	g.messageTicks = 0

	g.Resize(rc.ScreenW, rc.ScreenH)
}

// Resize updates the screen dimensions, keeping the game in progress.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	g.checkScreenSize()
}

// observer turns engine events into status messages.
func (g *Game) observer() Observer {
	return ObserverFuncs{
		OnGoalAchieved: func(goal int) {
			g.flash(fmt.Sprintf("Goal %d reached! Next goal: %d", goal, goal+g.state.rules.GoalIncrement))
		},
		OnGameOver: func(ev GameOverEvent) {
			g.flash(ev.Reason.Message(ev.Goal))
		},
	}
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	l := g.layout()
	g.tooSmall = g.screenW < l.boardW+2 || g.screenH < l.boardY+l.boardH+2
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	if g.messageTicks > 0 {
		g.messageTicks--
		if g.messageTicks == 0 {
			g.message = ""
		}
	}

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if g.pending != nil {
		g.animTicks++
		if g.animTicks >= g.cfg.Display.SlideTicks {
			g.commitPending()
		}
		// Input is ignored until the merge lands
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.state.Over() {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	// Undo also works after a game over
	if in.Has(core.ActionUndo) {
		g.undo()
		return core.StepResult{State: g.State()}
	}

	if g.state.Over() {
		// Restart after game over is handled by the platform
		return core.StepResult{State: g.State()}
	}

	switch {
	case in.Has(core.ActionRestart):
		g.restart()
	case in.Has(core.ActionBack):
		g.confirmRestart = false
		g.state.SetRepaintMode(false)
	case in.Has(core.ActionRepaint):
		g.toggleRepaint()
	case in.Has(core.ActionHint):
		g.showHint()
	}

	g.moveCursor(in)

	if in.Click != nil {
		if pos, ok := g.cellAt(in.Click.X, in.Click.Y); ok {
			g.cursor = pos
			g.click(pos)
		}
	} else if in.Has(core.ActionConfirm) {
		g.click(g.cursor)
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) moveCursor(in core.InputFrame) {
	n := g.state.board.Size()
	switch {
	case in.Has(core.ActionUp):
		g.cursor.Row--
	case in.Has(core.ActionDown):
		g.cursor.Row++
	case in.Has(core.ActionLeft):
		g.cursor.Col--
	case in.Has(core.ActionRight):
		g.cursor.Col++
	default:
		return
	}
	g.cursor.Row = core.Clamp(g.cursor.Row, 0, n-1)
	g.cursor.Col = core.Clamp(g.cursor.Col, 0, n-1)
}

// click resolves a press on a board cell.
func (g *Game) click(p Pos) {
	g.confirmRestart = false
	g.hint = nil

	if g.state.RepaintMode() {
		if !g.state.Repaint(p.Row, p.Col) {
			g.flash(fmt.Sprintf("%s tiles cannot be repainted", g.state.Palette().Working()))
			return
		}
		g.flash("Tile repainted")
		return
	}

	plan, ok := g.state.PlanMerge(p.Row, p.Col)
	if !ok {
		g.flash("No matching neighbors")
		return
	}
	g.pending = &plan
	g.animTicks = 0
	if g.cfg.Display.SlideTicks <= 0 {
		g.commitPending()
	}
}

func (g *Game) commitPending() {
	plan := *g.pending
	g.pending = nil
	g.animTicks = 0
	g.state.CommitMerge(plan)
}

func (g *Game) undo() {
	g.confirmRestart = false
	g.hint = nil
	if !g.state.Undo() {
		g.flash("Nothing to undo")
		return
	}
	g.flash("Move undone")
}

func (g *Game) restart() {
	if !g.confirmRestart {
		g.confirmRestart = true
		g.flash("Press R again to start over, Esc to keep playing")
		return
	}
	g.confirmRestart = false
	g.hint = nil
	g.cursor = Pos{}
	g.state.Restart()
	g.session = uuid.New()
	g.flash("New game")
}

func (g *Game) toggleRepaint() {
	on := !g.state.RepaintMode()
	g.state.SetRepaintMode(on)
	if on {
		g.flash("Repaint: pick a tile to recolor")
	} else {
		g.flash("Repaint cancelled")
	}
}

func (g *Game) showHint() {
	m, ok := g.state.Hint()
	if !ok {
		g.flash("No moves left")
		return
	}
	g.hint = &m
	g.cursor = Pos{m.Row, m.Col}
	g.flash(fmt.Sprintf("Try (%d,%d) for %d", m.Row+1, m.Col+1, m.Total))
}

func (g *Game) flash(msg string) {
	g.message = msg
	g.messageTicks = g.cfg.Display.MessageTicks
	if g.messageTicks == 0 {
		g.messageTicks = 1
	}
}

// Engine exposes the underlying game state.
func (g *Game) Engine() *State {
	return g.state
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		Score:    g.state.Score(),
		Heap:     g.state.Heap(),
		Goal:     g.state.Goal(),
		GameOver: g.state.Over(),
		Paused:   g.paused || g.tooSmall,
		Busy:     g.pending != nil,
		Session:  g.session.String(),
	}
	if st.GameOver {
		st.EndReason = g.state.Reason().String()
	}
	return st
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD: Move | Enter/Click: Merge | C: Repaint | U: Undo | H: Hint | R: Restart | P: Pause | Q: Quit"
}
