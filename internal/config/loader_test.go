package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchBuiltins(t *testing.T) {
	var fromYAML CatchConfig
	if err := yaml.Unmarshal(DefaultYAML(), &fromYAML); err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}

	if !reflect.DeepEqual(fromYAML, DefaultCatchConfig()) {
		t.Errorf("embedded YAML = %+v\nexpected %+v", fromYAML, DefaultCatchConfig())
	}
}

func TestDefaultsAreValid(t *testing.T) {
	if err := DefaultCatchConfig().Validate(); err != nil {
		t.Errorf("Validate() on defaults = %v, expected nil", err)
	}
}

func TestLoadCustomPathLayersOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catch.yaml")
	data := []byte("round:\n  duration_secs: 30\nitems:\n  bonus_points: 75\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Round.DurationSecs != 30 {
		t.Errorf("Round.DurationSecs = %d, expected 30", cfg.Round.DurationSecs)
	}
	if cfg.Items.BonusPoints != 75 {
		t.Errorf("Items.BonusPoints = %d, expected 75", cfg.Items.BonusPoints)
	}
	// Untouched keys keep their defaults
	if cfg.Spawn.HazardMax != 0.6 {
		t.Errorf("Spawn.HazardMax = %v, expected 0.6", cfg.Spawn.HazardMax)
	}
	if cfg.Catcher.MinY != 70 {
		t.Errorf("Catcher.MinY = %v, expected 70", cfg.Catcher.MinY)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() of a missing file should fail")
	}

	broken := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(broken, []byte("round: [oops"), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	if _, err := Load(broken); err == nil {
		t.Error("Load() of malformed YAML should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("catcher:\n  min_x: 60\n  max_x: 40\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	_, err := Load(invalid)
	if err == nil || !strings.Contains(err.Error(), "catcher x band") {
		t.Errorf("Load() of an inverted band = %v, expected a catcher x band error", err)
	}
}

func TestValidateRejectsBadProbabilities(t *testing.T) {
	cfg := DefaultCatchConfig()
	cfg.Spawn.BonusChance = 1.5
	cfg.Spawn.HazardBase = -0.1

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() should reject probabilities outside [0, 1]")
	}
	for _, want := range []string{"spawn.bonus_chance", "spawn.hazard_base"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Validate() error %q should mention %s", err, want)
		}
	}
}

func TestPresets(t *testing.T) {
	tests := []struct {
		in       string
		expected DifficultyPreset
		speed    float64
	}{
		{"", DifficultyNormal, 2},
		{"easy", DifficultyEasy, 1.5},
		{"HARD", DifficultyHard, 2.5},
	}

	for _, tc := range tests {
		p, err := ParsePreset(tc.in)
		if err != nil {
			t.Fatalf("ParsePreset(%q) failed: %v", tc.in, err)
		}
		if p != tc.expected {
			t.Errorf("ParsePreset(%q) = %q, expected %q", tc.in, p, tc.expected)
		}

		cfg := DefaultCatchConfig()
		ApplyPreset(&cfg, p)
		if cfg.Physics.BaseFallSpeed != tc.speed {
			t.Errorf("preset %q fall speed = %v, expected %v", p, cfg.Physics.BaseFallSpeed, tc.speed)
		}
	}

	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("ParsePreset should reject unknown presets")
	}
}

func TestLoadWithPresetFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catch.yaml")
	if err := os.WriteFile(path, []byte("difficulty:\n  preset: hard\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	cfg, err := LoadWithPreset(path, "")
	if err != nil {
		t.Fatalf("LoadWithPreset() failed: %v", err)
	}
	if cfg.Difficulty.Preset != string(DifficultyHard) {
		t.Errorf("Difficulty.Preset = %q, expected %q", cfg.Difficulty.Preset, DifficultyHard)
	}
	if cfg.Physics.BaseFallSpeed != 2.5 {
		t.Errorf("Physics.BaseFallSpeed = %v, expected 2.5", cfg.Physics.BaseFallSpeed)
	}

	// The flag wins over the file.
	cfg, err = LoadWithPreset(path, "easy")
	if err != nil {
		t.Fatalf("LoadWithPreset() failed: %v", err)
	}
	if cfg.Difficulty.Preset != string(DifficultyEasy) || cfg.Physics.BaseFallSpeed != 1.5 {
		t.Errorf("flag preset = %q at %v, expected easy at 1.5", cfg.Difficulty.Preset, cfg.Physics.BaseFallSpeed)
	}

	if _, err := LoadWithPreset(path, "nightmare"); err == nil {
		t.Error("LoadWithPreset() should reject unknown presets")
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("CATCH_TEST_VALUE", "set")

	if got := GetEnv("CATCH_TEST_VALUE", "fallback"); got != "set" {
		t.Errorf("GetEnv() = %q, expected %q", got, "set")
	}
	if got := GetEnv("CATCH_TEST_MISSING", "fallback"); got != "fallback" {
		t.Errorf("GetEnv() = %q, expected %q", got, "fallback")
	}
}
