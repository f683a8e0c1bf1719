package catch

import "github.com/vovakirdan/tui-catch/internal/config"

// Clock advances the round timer and the speed ramp.
type Clock struct {
	duration int
	stepSecs int
	step     float64
}

// NewClock creates a round clock.
func NewClock(cfg config.RoundConfig) Clock {
	return Clock{duration: cfg.DurationSecs, stepSecs: cfg.SpeedStepSecs, step: cfg.SpeedStep}
}

// Tick consumes one second. It reports whether the speed changed and
// whether the round has run out of time. Ticks on an expired round do nothing.
func (c Clock) Tick(st *RoundState) (speedChanged, ended bool) {
	if st.RemainingSeconds <= 0 {
		return false, true
	}
	st.RemainingSeconds--
	if st.RemainingSeconds == 0 {
		return false, true
	}
	elapsed := c.duration - st.RemainingSeconds
	if c.stepSecs > 0 && elapsed%c.stepSecs == 0 {
		st.SpeedMultiplier += c.step
		return c.step != 0, false
	}
	return false, false
}

// Elapsed returns the whole seconds played so far.
func (c Clock) Elapsed(st RoundState) int {
	return c.duration - st.RemainingSeconds
}
