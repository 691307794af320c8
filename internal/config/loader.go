package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadCrush loads the game configuration. Keys missing from the file keep
// their default values.
// Search order: customPath -> ~/.crush/configs/crush.yaml -> ./configs/crush.yaml -> embedded default
func LoadCrush(customPath string) (CrushConfig, error) {
	cfg := DefaultCrushConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		cfg.Validate()
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("crush.yaml"); userCfgPath != "" {
		if c, ok := tryLoad(userCfgPath); ok {
			return c, nil
		}
	}

	// Try local configs directory
	if c, ok := tryLoad(filepath.Join("configs", "crush.yaml")); ok {
		return c, nil
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultCrushYAML, &cfg); err != nil {
		return DefaultCrushConfig(), nil // Fallback to hardcoded if embed fails
	}
	cfg.Validate()
	return cfg, nil
}

// tryLoad reads an optional config file; unreadable or malformed files are
// ignored so the search can continue.
func tryLoad(path string) (CrushConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return CrushConfig{}, false
	}
	cfg := DefaultCrushConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return CrushConfig{}, false
	}
	cfg.Validate()
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".crush", "configs", filename)
}
