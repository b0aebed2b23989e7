package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/stock101/internal/config"
	"github.com/vovakirdan/stock101/internal/games/stock101"
)

var flagRulesPreset string

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the effective rules as YAML",
	Long: `Print the configuration a new game would use, after applying the
config file, the preset and --colors. The output is a valid stock101.yaml.

Examples:
  stock101 rules
  stock101 rules --preset large
  stock101 rules --colors red,blue > ~/.stock101/configs/stock101.yaml`,
	Run: runRules,
}

func init() {
	rulesCmd.Flags().StringVar(&flagRulesPreset, "preset", "classic", "Board preset: classic, large")
}

func runRules(_ *cobra.Command, _ []string) {
	preset, err := config.ParsePreset(flagRulesPreset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	variant := stock101.VariantClassic
	if preset == config.PresetLarge {
		variant = stock101.VariantLarge
	}

	cfg, err := stock101.LoadConfig(variant)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	data, err := cfg.Marshal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(data)
}
