package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load loads the catch configuration.
// Search order: customPath -> ~/.catch/configs/catch.yaml -> ./configs/catch.yaml -> embedded default.
// Files are layered over the built-in defaults, so a file may set only the keys it changes.
func Load(customPath string) (CatchConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return CatchConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return CatchConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return CatchConfig{}, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// User and local files are optional; broken ones are skipped.
	candidates := []string{userConfigPath("catch.yaml"), filepath.Join("configs", "catch.yaml")}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parse(data); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	cfg, err := parse(defaultCatchYAML)
	if err != nil || cfg.Validate() != nil {
		return DefaultCatchConfig(), nil
	}
	return cfg, nil
}

// LoadWithPreset loads the configuration and applies a difficulty preset by name.
// An empty preset falls back to difficulty.preset from the loaded file.
func LoadWithPreset(customPath, preset string) (CatchConfig, error) {
	cfg, err := Load(customPath)
	if err != nil {
		return CatchConfig{}, err
	}
	if strings.TrimSpace(preset) == "" {
		preset = cfg.Difficulty.Preset
	}
	p, err := ParsePreset(preset)
	if err != nil {
		return CatchConfig{}, err
	}
	ApplyPreset(&cfg, p)
	return cfg, nil
}

func parse(data []byte) (CatchConfig, error) {
	cfg := DefaultCatchConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return CatchConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".catch", "configs", filename)
}

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
