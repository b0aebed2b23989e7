package config

import (
	_ "embed"
)

//go:embed defaults/stock101.yaml
var defaultStock101YAML []byte

// DefaultStock101Config returns the default Stock 101 configuration.
func DefaultStock101Config() Stock101Config {
	return Stock101Config{
		Rules: RulesConfig{
			BoardSize:       4,
			InitialGoal:     101,
			GoalIncrement:   101,
			HistoryCapacity: 10,
			Colors:          []string{"red", "blue", "green", "magenta"},
			Working:         "yellow",
		},
		Display: DisplayConfig{
			CellWidth:    6,
			CellHeight:   1,
			SlideTicks:   9,
			MessageTicks: 120,
		},
	}
}
