// Package config provides YAML-based configuration loading and difficulty
// presets for the catch game.
package config

import "time"

// CatchConfig contains all tuning for a round of the catch game.
type CatchConfig struct {
	Round      RoundConfig      `yaml:"round"`
	Spawn      SpawnConfig      `yaml:"spawn"`
	Items      ItemsConfig      `yaml:"items"`
	Catcher    CatcherConfig    `yaml:"catcher"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Feedback   FeedbackConfig   `yaml:"feedback"`
	Terminal   TerminalConfig   `yaml:"terminal"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// RoundConfig defines the round clock and the speed ramp.
type RoundConfig struct {
	DurationSecs  int     `yaml:"duration_secs"`   // Round length, counts down to 0
	SpeedStepSecs int     `yaml:"speed_step_secs"` // Elapsed seconds between speed increases
	SpeedStep     float64 `yaml:"speed_step"`      // Added to the speed multiplier per step
}

// SpawnConfig defines the item spawning policy.
type SpawnConfig struct {
	BaseIntervalMs  int     `yaml:"base_interval_ms"`  // Interval before the speed discount
	IntervalStepMs  int     `yaml:"interval_step_ms"`  // Discount per unit of speed multiplier
	MinIntervalMs   int     `yaml:"min_interval_ms"`   // Floor for the spawn interval
	HazardBase      float64 `yaml:"hazard_base"`       // Hazard chance at the start of a round
	HazardStep      float64 `yaml:"hazard_step"`       // Added per elapsed speed step
	HazardMax       float64 `yaml:"hazard_max"`        // Cap on hazard chance
	BonusChance     float64 `yaml:"bonus_chance"`      // Per-tick chance once the bonus window opens
	BonusWindowSecs int     `yaml:"bonus_window_secs"` // Bonus is possible while remaining < this
}

// ItemsConfig defines falling item sizes and scores.
type ItemsConfig struct {
	Size          float64 `yaml:"size"`
	GoodPoints    int     `yaml:"good_points"`
	BonusPoints   int     `yaml:"bonus_points"`
	HazardPenalty int     `yaml:"hazard_penalty"`
}

// CatcherConfig defines the catcher box and its allowed band, in field percent.
type CatcherConfig struct {
	Size   float64 `yaml:"size"`
	MinX   float64 `yaml:"min_x"`
	MaxX   float64 `yaml:"max_x"`
	MinY   float64 `yaml:"min_y"`
	MaxY   float64 `yaml:"max_y"`
	StartX float64 `yaml:"start_x"`
	StartY float64 `yaml:"start_y"`
}

// PhysicsConfig defines motion and hit-test cadence.
type PhysicsConfig struct {
	BaseFallSpeed     float64 `yaml:"base_fall_speed"`     // Field units per frame at speed 1
	FrameRate         int     `yaml:"frame_rate"`          // Motion ticks per second
	CollisionPeriodMs int     `yaml:"collision_period_ms"` // Hit-test cadence, independent of frames
}

// FeedbackConfig defines score popup behavior.
type FeedbackConfig struct {
	DurationMs int `yaml:"duration_ms"`
}

// TerminalConfig maps field units to terminal cells.
type TerminalConfig struct {
	CellWidth  float64 `yaml:"cell_width"`  // Field units per terminal column
	CellHeight float64 `yaml:"cell_height"` // Field units per terminal row
}

// DifficultyConfig scales the base fall speed.
type DifficultyConfig struct {
	Preset string `yaml:"preset"` // "easy", "normal" or "hard"
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// RoundDuration returns the round length as a time.Duration.
func (c CatchConfig) RoundDuration() time.Duration {
	return time.Duration(c.Round.DurationSecs) * time.Second
}

// FramePeriod returns the motion tick period.
func (c CatchConfig) FramePeriod() time.Duration {
	if c.Physics.FrameRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.Physics.FrameRate)
}

// CollisionPeriod returns the hit-test tick period.
func (c CatchConfig) CollisionPeriod() time.Duration {
	return time.Duration(c.Physics.CollisionPeriodMs) * time.Millisecond
}

// FeedbackDuration returns how long a score popup stays visible.
func (c CatchConfig) FeedbackDuration() time.Duration {
	return time.Duration(c.Feedback.DurationMs) * time.Millisecond
}
