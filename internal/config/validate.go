package config

import (
	"errors"
	"fmt"
)

// Validate checks that the configuration keeps the round invariants reachable:
// positive clocks and sizes, a catcher band inside the field, and probabilities in [0, 1].
func (c CatchConfig) Validate() error {
	var errs []error

	if c.Round.DurationSecs <= 0 {
		errs = append(errs, fmt.Errorf("round.duration_secs must be positive, got %d", c.Round.DurationSecs))
	}
	if c.Round.SpeedStepSecs <= 0 {
		errs = append(errs, fmt.Errorf("round.speed_step_secs must be positive, got %d", c.Round.SpeedStepSecs))
	}
	if c.Round.SpeedStep < 0 {
		errs = append(errs, fmt.Errorf("round.speed_step must not be negative, got %v", c.Round.SpeedStep))
	}

	if c.Spawn.BaseIntervalMs <= 0 || c.Spawn.MinIntervalMs <= 0 {
		errs = append(errs, errors.New("spawn intervals must be positive"))
	}
	if c.Spawn.IntervalStepMs < 0 {
		errs = append(errs, fmt.Errorf("spawn.interval_step_ms must not be negative, got %d", c.Spawn.IntervalStepMs))
	}
	for name, p := range map[string]float64{
		"spawn.hazard_base":  c.Spawn.HazardBase,
		"spawn.hazard_step":  c.Spawn.HazardStep,
		"spawn.hazard_max":   c.Spawn.HazardMax,
		"spawn.bonus_chance": c.Spawn.BonusChance,
	} {
		if p < 0 || p > 1 {
			errs = append(errs, fmt.Errorf("%s must be within [0, 1], got %v", name, p))
		}
	}

	if c.Items.Size <= 0 {
		errs = append(errs, fmt.Errorf("items.size must be positive, got %v", c.Items.Size))
	}
	if c.Items.GoodPoints < 0 || c.Items.BonusPoints < 0 || c.Items.HazardPenalty < 0 {
		errs = append(errs, errors.New("item points and penalty must not be negative"))
	}

	cc := c.Catcher
	if cc.Size <= 0 {
		errs = append(errs, fmt.Errorf("catcher.size must be positive, got %v", cc.Size))
	}
	if cc.MinX < 0 || cc.MaxX > 100 || cc.MinX > cc.MaxX {
		errs = append(errs, fmt.Errorf("catcher x band [%v, %v] must lie within [0, 100]", cc.MinX, cc.MaxX))
	}
	if cc.MinY < 0 || cc.MaxY > 100 || cc.MinY > cc.MaxY {
		errs = append(errs, fmt.Errorf("catcher y band [%v, %v] must lie within [0, 100]", cc.MinY, cc.MaxY))
	}
	if cc.StartX < cc.MinX || cc.StartX > cc.MaxX || cc.StartY < cc.MinY || cc.StartY > cc.MaxY {
		errs = append(errs, fmt.Errorf("catcher start (%v, %v) must lie inside its band", cc.StartX, cc.StartY))
	}

	if c.Physics.BaseFallSpeed <= 0 {
		errs = append(errs, fmt.Errorf("physics.base_fall_speed must be positive, got %v", c.Physics.BaseFallSpeed))
	}
	if c.Physics.FrameRate <= 0 || c.Physics.CollisionPeriodMs <= 0 {
		errs = append(errs, errors.New("physics.frame_rate and physics.collision_period_ms must be positive"))
	}
	if c.Feedback.DurationMs < 0 {
		errs = append(errs, fmt.Errorf("feedback.duration_ms must not be negative, got %d", c.Feedback.DurationMs))
	}
	if c.Terminal.CellWidth <= 0 || c.Terminal.CellHeight <= 0 {
		errs = append(errs, errors.New("terminal cell size must be positive"))
	}
	if _, err := ParsePreset(c.Difficulty.Preset); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
