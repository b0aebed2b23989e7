package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadStock101 loads Stock 101 configuration.
// Search order: customPath -> ~/.stock101/configs/stock101.yaml -> ./configs/stock101.yaml -> embedded default
// Keys missing from a file keep their default values.
func LoadStock101(customPath string) (Stock101Config, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultStock101Config(), fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parseStock101(data)
		if err != nil {
			return DefaultStock101Config(), fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("stock101.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseStock101(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "stock101.yaml")); err == nil {
		if cfg, err := parseStock101(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseStock101(defaultStock101YAML)
	if err != nil {
		return DefaultStock101Config(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Marshal renders the config as YAML.
func (c Stock101Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}
	return data, nil
}

func parseStock101(data []byte) (Stock101Config, error) {
	cfg := DefaultStock101Config()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".stock101", "configs", filename)
}
