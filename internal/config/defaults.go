package config

import (
	_ "embed"
)

//go:embed defaults/catch.yaml
var defaultCatchYAML []byte

// DefaultCatchConfig returns the built-in catch configuration.
// It mirrors defaults/catch.yaml and is the fallback if the embed fails to parse.
func DefaultCatchConfig() CatchConfig {
	return CatchConfig{
		Round: RoundConfig{
			DurationSecs:  60,
			SpeedStepSecs: 10,
			SpeedStep:     0.5,
		},
		Spawn: SpawnConfig{
			BaseIntervalMs:  800,
			IntervalStepMs:  100,
			MinIntervalMs:   300,
			HazardBase:      0.3,
			HazardStep:      0.1,
			HazardMax:       0.6,
			BonusChance:     0.1,
			BonusWindowSecs: 30,
		},
		Items: ItemsConfig{
			Size:          50,
			GoodPoints:    10,
			BonusPoints:   50,
			HazardPenalty: 10,
		},
		Catcher: CatcherConfig{
			Size:   60,
			MinX:   5,
			MaxX:   95,
			MinY:   70,
			MaxY:   95,
			StartX: 50,
			StartY: 80,
		},
		Physics: PhysicsConfig{
			BaseFallSpeed:     2,
			FrameRate:         60,
			CollisionPeriodMs: 16,
		},
		Feedback: FeedbackConfig{
			DurationMs: 600,
		},
		Terminal: TerminalConfig{
			CellWidth:  10,
			CellHeight: 20,
		},
		Difficulty: DifficultyConfig{
			Preset: string(DifficultyNormal),
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultCatchYAML
}
