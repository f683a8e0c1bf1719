package catch

import (
	"math"
	"time"

	"github.com/vovakirdan/tui-catch/internal/config"
)

// Rand is the random source the spawner draws from.
// *math/rand.Rand satisfies it; tests inject scripted sources.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Spawner decides what, if anything, appears on each spawn tick.
type Spawner struct {
	spawn    config.SpawnConfig
	items    config.ItemsConfig
	duration int
	stepSecs int
	rng      Rand
	nextID   ItemID
}

// NewSpawner creates a spawner drawing from rng.
func NewSpawner(cfg config.CatchConfig, rng Rand) *Spawner {
	return &Spawner{
		spawn:    cfg.Spawn,
		items:    cfg.Items,
		duration: cfg.Round.DurationSecs,
		stepSecs: cfg.Round.SpeedStepSecs,
		rng:      rng,
	}
}

// Interval returns the spawn period for the given speed multiplier.
func (s *Spawner) Interval(speed float64) time.Duration {
	ms := float64(s.spawn.BaseIntervalMs) - speed*float64(s.spawn.IntervalStepMs)
	ms = math.Max(ms, float64(s.spawn.MinIntervalMs))
	return time.Duration(ms * float64(time.Millisecond))
}

// HazardChance returns the probability that a non-bonus spawn is a hazard
// after elapsed seconds of play.
func (s *Spawner) HazardChance(elapsed int) float64 {
	steps := 0
	if s.stepSecs > 0 {
		steps = elapsed / s.stepSecs
	}
	return math.Min(s.spawn.HazardBase+float64(steps)*s.spawn.HazardStep, s.spawn.HazardMax)
}

// Spawn produces at most one new item for the current round state.
// It does nothing until the field has been measured.
func (s *Spawner) Spawn(st *RoundState, field Field) (FallingItem, bool) {
	if !field.Ready() {
		return FallingItem{}, false
	}

	var kind Kind
	switch {
	case s.bonusEligible(st) && s.rng.Float64() < s.spawn.BonusChance:
		kind = KindBonus
		st.BonusItemsSpawned++
	case s.rng.Float64() < s.HazardChance(s.duration-st.RemainingSeconds):
		kind = hazardKinds[s.rng.Intn(len(hazardKinds))]
	default:
		kind = goodKinds[s.rng.Intn(len(goodKinds))]
	}

	span := math.Max(field.Width-s.items.Size, 0)
	s.nextID++
	item := FallingItem{
		ID:       s.nextID,
		Kind:     kind,
		X:        s.rng.Float64() * span,
		Y:        -s.items.Size,
		IsHazard: kind.IsHazard(),
	}
	switch {
	case kind == KindBonus:
		item.PointValue = s.items.BonusPoints
	case !item.IsHazard:
		item.PointValue = s.items.GoodPoints
	}
	return item, true
}

// bonusEligible reports whether this tick may roll for the bonus.
// No random draw is consumed for ineligible ticks.
func (s *Spawner) bonusEligible(st *RoundState) bool {
	return st.BonusItemsSpawned == 0 && st.RemainingSeconds < s.spawn.BonusWindowSecs
}
