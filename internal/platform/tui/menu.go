package tui

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/stock101/internal/core"
	"github.com/vovakirdan/stock101/internal/registry"
)

// MenuItem represents a selectable game in the menu.
type MenuItem struct {
	GameID string
	Title  string
}

// ColorChoice lists the tile colors a player may spawn with and which of
// them start enabled.
type ColorChoice struct {
	Available []core.Color
	Enabled   []core.Color
}

// MenuModel is the Bubble Tea model for the start menu: pick a board,
// choose tile colors, or open the results table.
type MenuModel struct {
	items          []MenuItem
	colors         []core.Color
	enabled        map[core.Color]bool
	cursor         int // Index into items; len(items) is the color row
	colorCursor    int
	width          int
	height         int
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	message        string
	quitting       bool
	selected       *MenuItem // Set when user selects a game
	openScoreboard bool      // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a new menu model.
func NewMenuModel(cfg core.RuntimeConfig, choice ColorChoice) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))
	for _, g := range games {
		items = append(items, MenuItem{GameID: g.ID, Title: g.Title})
	}

	enabled := make(map[core.Color]bool, len(choice.Available))
	for _, c := range choice.Available {
		enabled[c] = len(choice.Enabled) == 0 || slices.Contains(choice.Enabled, c)
	}

	return MenuModel{
		items:     items,
		colors:    slices.Clone(choice.Available),
		enabled:   enabled,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

func (m MenuModel) onColorRow() bool {
	return len(m.colors) > 0 && m.cursor == len(m.items)
}

func (m MenuModel) lastRow() int {
	if len(m.colors) > 0 {
		return len(m.items)
	}
	return len(m.items) - 1
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.message = ""

	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < m.lastRow() {
			m.cursor++
		}

	case MenuActionLeft:
		if m.onColorRow() && m.colorCursor > 0 {
			m.colorCursor--
		}

	case MenuActionRight:
		if m.onColorRow() && m.colorCursor < len(m.colors)-1 {
			m.colorCursor++
		}

	case MenuActionToggle:
		if m.onColorRow() {
			m.toggleColor()
		}

	case MenuActionSelect:
		if m.onColorRow() {
			m.toggleColor()
			return m, nil
		}
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit // Exit menu to start game
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit // Exit menu to show scoreboard
	}

	return m, nil
}

// toggleColor flips the color under the cursor. The last enabled color
// cannot be turned off.
func (m *MenuModel) toggleColor() {
	c := m.colors[m.colorCursor]
	if m.enabled[c] && len(m.EnabledColors()) == 1 {
		m.message = "At least one color must stay enabled"
		return
	}
	m.enabled[c] = !m.enabled[c]
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("  S T O C K   1 0 1  ", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Merge matching tiles, hit the goal exactly", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+item.Title, m.width))
		b.WriteString("\n")
	}

	if len(m.colors) > 0 {
		b.WriteString("\n")
		b.WriteString(m.renderColorRow())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.message != "" {
		b.WriteString(centerText(m.message, m.width))
		b.WriteString("\n")
	}
	controls := "Up/Down: Navigate  |  Enter: Play  |  Space: Toggle color  |  Tab: Results  |  Q: Quit"
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

func (m MenuModel) renderColorRow() string {
	cursor := "  "
	if m.onColorRow() {
		cursor = "> "
	}

	var plain, styled strings.Builder
	plain.WriteString(cursor + "Colors: ")
	styled.WriteString(cursor + "Colors: ")
	for i, c := range m.colors {
		mark := "[ ]"
		if m.enabled[c] {
			mark = "[x]"
		}
		label := fmt.Sprintf("%s %s", mark, c)
		if m.onColorRow() && i == m.colorCursor {
			label = "<" + label + ">"
		} else {
			label = " " + label + " "
		}
		plain.WriteString(label)

		style := lipgloss.NewStyle()
		if code, ok := ansiCodes[c]; ok && m.enabled[c] {
			style = style.Foreground(lipgloss.Color(code))
		}
		styled.WriteString(style.Render(label))
	}

	// Center on the unstyled width
	text := plain.String()
	if len(text) >= m.width {
		return styled.String()
	}
	return strings.Repeat(" ", (m.width-len(text))/2) + styled.String()
}

// EnabledColors returns the chosen colors in palette order.
func (m MenuModel) EnabledColors() []core.Color {
	out := make([]core.Color, 0, len(m.colors))
	for _, c := range m.colors {
		if m.enabled[c] {
			out = append(out, c)
		}
	}
	return out
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Colors          []core.Color
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// Result summarizes the menu's final state.
func (m MenuModel) Result() MenuResult {
	result := MenuResult{
		Config: m.Config(),
		Colors: m.EnabledColors(),
	}

	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.IsQuitting(), m.Selected() == nil:
		result.Quit = true
	default:
		result.GameID = m.Selected().GameID
	}
	return result
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(cfg core.RuntimeConfig, choice ColorChoice) (MenuResult, error) {
	model := NewMenuModel(cfg, choice)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return m.Result(), nil
}
