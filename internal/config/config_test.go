package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/stock101/internal/core"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultStock101Config().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	cfg, err := parseStock101(defaultStock101YAML)
	if err != nil {
		t.Fatalf("parse embedded: %v", err)
	}
	def := DefaultStock101Config()
	if cfg.Rules.BoardSize != def.Rules.BoardSize ||
		cfg.Rules.InitialGoal != def.Rules.InitialGoal ||
		cfg.Rules.GoalIncrement != def.Rules.GoalIncrement ||
		cfg.Rules.HistoryCapacity != def.Rules.HistoryCapacity ||
		cfg.Rules.Working != def.Rules.Working {
		t.Errorf("embedded rules %+v differ from defaults %+v", cfg.Rules, def.Rules)
	}
	if len(cfg.Rules.Colors) != 4 {
		t.Errorf("expected 4 colors, got %v", cfg.Rules.Colors)
	}
	if cfg.Display != def.Display {
		t.Errorf("embedded display %+v differ from defaults %+v", cfg.Display, def.Display)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("rules:\n  board_size: 5\n  colors: [red, cyan]\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadStock101(path)
	if err != nil {
		t.Fatalf("LoadStock101() failed: %v", err)
	}
	if cfg.Rules.BoardSize != 5 {
		t.Errorf("board_size = %d, want 5", cfg.Rules.BoardSize)
	}
	if cfg.Rules.InitialGoal != 101 {
		t.Errorf("missing key should keep default goal, got %d", cfg.Rules.InitialGoal)
	}
	if len(cfg.Rules.Colors) != 2 {
		t.Errorf("colors = %v, want [red cyan]", cfg.Rules.Colors)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	_, err := LoadStock101(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing custom config")
	}
}

func TestLoadMalformedCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("rules: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadStock101(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Stock101Config)
		want   error
	}{
		{"tiny board", func(c *Stock101Config) { c.Rules.BoardSize = 1 }, ErrInvalidRules},
		{"zero goal", func(c *Stock101Config) { c.Rules.InitialGoal = 0 }, ErrInvalidRules},
		{"negative increment", func(c *Stock101Config) { c.Rules.GoalIncrement = -5 }, ErrInvalidRules},
		{"no history", func(c *Stock101Config) { c.Rules.HistoryCapacity = 0 }, ErrInvalidRules},
		{"no colors", func(c *Stock101Config) { c.Rules.Colors = nil }, ErrInvalidRules},
		{"unknown color", func(c *Stock101Config) { c.Rules.Colors = []string{"red", "mauve"} }, ErrUnknownColor},
		{"unknown working", func(c *Stock101Config) { c.Rules.Working = "gold" }, ErrUnknownColor},
		{"working selectable", func(c *Stock101Config) { c.Rules.Working = "red" }, ErrInvalidRules},
		{"enabled outside colors", func(c *Stock101Config) { c.Rules.Enabled = []string{"cyan"} }, ErrInvalidRules},
		{"narrow cell", func(c *Stock101Config) { c.Display.CellWidth = 2 }, ErrInvalidRules},
		{"negative slide", func(c *Stock101Config) { c.Display.SlideTicks = -1 }, ErrInvalidRules},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultStock101Config()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestPalette(t *testing.T) {
	r := DefaultStock101Config().Rules
	r.Enabled = []string{"Blue", " green "}

	colors, enabled, working, err := r.Palette()
	if err != nil {
		t.Fatalf("Palette() failed: %v", err)
	}
	want := []core.Color{core.ColorRed, core.ColorBlue, core.ColorGreen, core.ColorMagenta}
	if len(colors) != len(want) {
		t.Fatalf("colors = %v, want %v", colors, want)
	}
	for i := range want {
		if colors[i] != want[i] {
			t.Errorf("colors[%d] = %v, want %v", i, colors[i], want[i])
		}
	}
	if len(enabled) != 2 || enabled[0] != core.ColorBlue || enabled[1] != core.ColorGreen {
		t.Errorf("enabled = %v, want [blue green]", enabled)
	}
	if working != core.ColorYellow {
		t.Errorf("working = %v, want yellow", working)
	}
}

func TestSplitColors(t *testing.T) {
	got, err := SplitColors("red, magenta,,")
	if err != nil {
		t.Fatalf("SplitColors() failed: %v", err)
	}
	if len(got) != 2 || got[0] != core.ColorRed || got[1] != core.ColorMagenta {
		t.Errorf("SplitColors() = %v", got)
	}

	if _, err := SplitColors("red,plaid"); !errors.Is(err, ErrUnknownColor) {
		t.Errorf("expected ErrUnknownColor, got %v", err)
	}
}

func TestPresets(t *testing.T) {
	cfg := DefaultStock101Config()
	ApplyStock101Preset(&cfg, PresetLarge)
	if cfg.Rules.BoardSize != 6 {
		t.Errorf("large preset board = %d, want 6", cfg.Rules.BoardSize)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("large preset invalid: %v", err)
	}

	ApplyStock101Preset(&cfg, PresetClassic)
	if cfg.Rules.BoardSize != 4 {
		t.Errorf("classic preset board = %d, want 4", cfg.Rules.BoardSize)
	}

	if p, err := ParsePreset(" Large "); err != nil || p != PresetLarge {
		t.Errorf("ParsePreset(Large) = %q, %v", p, err)
	}
	if _, err := ParsePreset("huge"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestMarshalRoundTripKeepsRules(t *testing.T) {
	data, err := DefaultStock101Config().Marshal()
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	cfg, err := parseStock101(data)
	if err != nil {
		t.Fatalf("parse marshaled: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("marshaled config invalid: %v", err)
	}
}
