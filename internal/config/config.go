// Package config provides YAML-based game configuration loading and
// rule presets for Stock 101.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/stock101/internal/core"
)

var (
	// ErrUnknownColor is returned for a color name that does not parse.
	ErrUnknownColor = errors.New("config: unknown color")
	// ErrInvalidRules is returned by Validate for inconsistent rules.
	ErrInvalidRules = errors.New("config: invalid rules")
)

// Stock101Config contains all configuration for Stock 101.
type Stock101Config struct {
	Rules   RulesConfig   `yaml:"rules"`
	Display DisplayConfig `yaml:"display"`
}

// RulesConfig defines the game rules.
type RulesConfig struct {
	BoardSize       int      `yaml:"board_size"`
	InitialGoal     int      `yaml:"initial_goal"`
	GoalIncrement   int      `yaml:"goal_increment"`
	HistoryCapacity int      `yaml:"history_capacity"` // Undo depth
	Colors          []string `yaml:"colors"`           // Selectable tile colors
	Enabled         []string `yaml:"enabled"`          // Subset spawned at start, empty means all
	Working         string   `yaml:"working"`          // Color of merge results
}

// DisplayConfig defines terminal layout and animation timing.
type DisplayConfig struct {
	CellWidth    int `yaml:"cell_width"`    // Columns per tile, border excluded
	CellHeight   int `yaml:"cell_height"`   // Rows per tile, border excluded
	SlideTicks   int `yaml:"slide_ticks"`   // Merge animation length, 0 disables it
	MessageTicks int `yaml:"message_ticks"` // How long status messages stay up
}

// Preset represents a named rule variant.
type Preset string

const (
	PresetClassic Preset = "classic"
	PresetLarge   Preset = "large"
)

// ParsePreset maps a CLI name to a preset. Empty input means no preset.
func ParsePreset(name string) (Preset, error) {
	switch p := Preset(strings.ToLower(strings.TrimSpace(name))); p {
	case "":
		return "", nil
	case PresetClassic, PresetLarge:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown preset %q", name)
	}
}

// ApplyStock101Preset modifies the config for a preset.
func ApplyStock101Preset(cfg *Stock101Config, preset Preset) {
	switch preset {
	case PresetClassic:
		cfg.Rules.BoardSize = 4
	case PresetLarge:
		cfg.Rules.BoardSize = 6
		cfg.Display.CellWidth = min(cfg.Display.CellWidth, 5)
	}
}

// Palette resolves the color names of the rules.
func (r RulesConfig) Palette() (colors, enabled []core.Color, working core.Color, err error) {
	colors, err = ParseColorList(r.Colors)
	if err != nil {
		return nil, nil, core.ColorDefault, err
	}
	enabled, err = ParseColorList(r.Enabled)
	if err != nil {
		return nil, nil, core.ColorDefault, err
	}
	working, ok := core.ParseColor(r.Working)
	if !ok {
		return nil, nil, core.ColorDefault, fmt.Errorf("%w: %q", ErrUnknownColor, r.Working)
	}
	return colors, enabled, working, nil
}

// ParseColorList parses color names, skipping blanks.
func ParseColorList(names []string) ([]core.Color, error) {
	out := make([]core.Color, 0, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		c, ok := core.ParseColor(name)
		if !ok || c == core.ColorDefault {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColor, name)
		}
		out = append(out, c)
	}
	return out, nil
}

// SplitColors parses a comma separated flag value such as "red,blue".
func SplitColors(flag string) ([]core.Color, error) {
	return ParseColorList(strings.Split(flag, ","))
}

// Validate checks the config for values the game cannot run with.
func (c Stock101Config) Validate() error {
	r := c.Rules
	switch {
	case r.BoardSize < 2:
		return fmt.Errorf("%w: board_size %d, need at least 2", ErrInvalidRules, r.BoardSize)
	case r.InitialGoal <= 0:
		return fmt.Errorf("%w: initial_goal %d must be positive", ErrInvalidRules, r.InitialGoal)
	case r.GoalIncrement <= 0:
		return fmt.Errorf("%w: goal_increment %d must be positive", ErrInvalidRules, r.GoalIncrement)
	case r.HistoryCapacity < 1:
		return fmt.Errorf("%w: history_capacity %d, need at least 1", ErrInvalidRules, r.HistoryCapacity)
	}

	colors, enabled, working, err := r.Palette()
	if err != nil {
		return err
	}
	if len(colors) == 0 {
		return fmt.Errorf("%w: no colors", ErrInvalidRules)
	}
	offered := make(map[core.Color]bool, len(colors))
	for _, col := range colors {
		if col == working {
			return fmt.Errorf("%w: working color %s is also selectable", ErrInvalidRules, working)
		}
		offered[col] = true
	}
	for _, col := range enabled {
		if !offered[col] {
			return fmt.Errorf("%w: enabled color %s is not in colors", ErrInvalidRules, col)
		}
	}

	d := c.Display
	if d.CellWidth < 3 || d.CellHeight < 1 {
		return fmt.Errorf("%w: cell %dx%d too small", ErrInvalidRules, d.CellWidth, d.CellHeight)
	}
	if d.SlideTicks < 0 || d.MessageTicks < 0 {
		return fmt.Errorf("%w: negative tick count", ErrInvalidRules)
	}
	return nil
}
