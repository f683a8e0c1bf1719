package config

import (
	"fmt"
	"strings"
)

// ParsePreset converts a flag value into a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(strings.ToLower(strings.TrimSpace(s))) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyHard:
		return DifficultyHard, nil
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
}

// FallSpeedFactorForPreset returns the base fall speed multiplier for a preset.
// The in-round speed ramp is applied on top of this.
func FallSpeedFactorForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.75
	case DifficultyHard:
		return 1.25
	default:
		return 1.0
	}
}

// ApplyPreset scales the configured fall speed by the preset and records it.
// Applying the same preset twice scales twice, so callers apply it once per load.
func ApplyPreset(cfg *CatchConfig, preset DifficultyPreset) {
	cfg.Physics.BaseFallSpeed *= FallSpeedFactorForPreset(preset)
	cfg.Difficulty.Preset = string(preset)
}
