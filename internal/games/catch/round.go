package catch

import (
	"time"

	"github.com/vovakirdan/tui-catch/internal/config"
	"github.com/vovakirdan/tui-catch/internal/core"
)

// Phase is the round lifecycle state.
type Phase int

const (
	PhaseInstructions Phase = iota
	PhasePlaying
	PhaseEnded
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseInstructions:
		return "instructions"
	case PhasePlaying:
		return "playing"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// RoundState is the scoring and timing state of one round.
type RoundState struct {
	Score             int     `json:"score"`
	RemainingSeconds  int     `json:"remainingSeconds"`
	SpeedMultiplier   float64 `json:"speedMultiplier"`
	BonusItemsSpawned int     `json:"bonusItemsSpawned"`
}

// Stats counts what happened to items during a round.
type Stats struct {
	Spawned       int `json:"spawned"`
	GoodCaught    int `json:"goodCaught"`
	BonusCaught   int `json:"bonusCaught"`
	HazardsCaught int `json:"hazardsCaught"`
	Missed        int `json:"missed"`
}

// Result is handed to the round-end callback.
type Result struct {
	Score             int   `json:"score"`
	BonusItemsSpawned int   `json:"bonusItemsSpawned"`
	DurationSecs      int   `json:"durationSecs"`
	Stats             Stats `json:"stats"`
}

// Round owns all mutable state of a single round and applies the four tick
// kinds to it. A Round is not safe for concurrent use; Scheduler and Runner
// serialize access. Rounds are single-use: once Ended, a new Round is needed.
type Round struct {
	cfg      config.CatchConfig
	phase    Phase
	state    RoundState
	items    []FallingItem
	field    Field
	feedback *Feedback
	stats    Stats

	tracker  *Tracker
	spawner  *Spawner
	motion   Motion
	resolver Resolver
	clock    Clock

	onEnd func(Result)
}

// NewRound creates a round in the Instructions phase.
// onEnd, if non-nil, is called exactly once when the timer runs out.
func NewRound(cfg config.CatchConfig, rng Rand, onEnd func(Result)) *Round {
	return &Round{
		cfg:   cfg,
		phase: PhaseInstructions,
		state: RoundState{
			RemainingSeconds: cfg.Round.DurationSecs,
			SpeedMultiplier:  1,
		},
		tracker:  NewTracker(cfg.Catcher),
		spawner:  NewSpawner(cfg, rng),
		motion:   NewMotion(cfg.Physics.BaseFallSpeed, cfg.Items.Size),
		resolver: NewResolver(cfg),
		clock:    NewClock(cfg.Round),
		onEnd:    onEnd,
	}
}

// Config returns the tuning the round was created with.
func (r *Round) Config() config.CatchConfig {
	return r.cfg
}

// Phase returns the current lifecycle phase.
func (r *Round) Phase() Phase {
	return r.phase
}

// State returns a copy of the scoring state.
func (r *Round) State() RoundState {
	return r.state
}

// Stats returns a copy of the item counters.
func (r *Round) Stats() Stats {
	return r.stats
}

// Items returns a copy of the live items in insertion order.
func (r *Round) Items() []FallingItem {
	out := make([]FallingItem, len(r.items))
	copy(out, r.items)
	return out
}

// Catcher returns the catcher state.
func (r *Round) Catcher() CatcherState {
	return r.tracker.State()
}

// Field returns the last measured field size.
func (r *Round) Field() Field {
	return r.field
}

// Start moves the round from Instructions to Playing.
// It reports false if the round was already started.
func (r *Round) Start() bool {
	if r.phase != PhaseInstructions {
		return false
	}
	r.phase = PhasePlaying
	return true
}

// SetField records the measured play-field size. It may change mid-round.
func (r *Round) SetField(f Field) {
	r.field = f
}

// SpawnInterval returns the current spawn period.
func (r *Round) SpawnInterval() time.Duration {
	return r.spawner.Interval(r.state.SpeedMultiplier)
}

// TimerTick advances the clock by one second.
// It reports whether the speed multiplier changed.
func (r *Round) TimerTick() bool {
	if r.phase != PhasePlaying {
		return false
	}
	changed, ended := r.clock.Tick(&r.state)
	if ended {
		r.end()
	}
	return changed
}

// SpawnTick runs one spawn decision.
func (r *Round) SpawnTick() (FallingItem, bool) {
	if r.phase != PhasePlaying {
		return FallingItem{}, false
	}
	it, ok := r.spawner.Spawn(&r.state, r.field)
	if ok {
		r.items = append(r.items, it)
		r.stats.Spawned++
	}
	return it, ok
}

// FrameTick advances item motion by one frame.
func (r *Round) FrameTick() {
	if r.phase != PhasePlaying {
		return
	}
	var missed int
	r.items, missed = r.motion.Advance(r.items, r.state.SpeedMultiplier, r.field)
	r.stats.Missed += missed
}

// CollisionTick resolves catches against the current catcher position.
func (r *Round) CollisionTick(now time.Time) []Capture {
	if r.phase != PhasePlaying {
		return nil
	}
	var captures []Capture
	r.items, captures = r.resolver.Resolve(r.items, r.tracker.State(), r.field, &r.state.Score, now)
	for _, c := range captures {
		switch {
		case c.Item.IsHazard:
			r.stats.HazardsCaught++
		case c.Item.Kind == KindBonus:
			r.stats.BonusCaught++
		default:
			r.stats.GoodCaught++
		}
	}
	if n := len(captures); n > 0 {
		fb := captures[n-1].Feedback
		r.feedback = &fb
	}
	return captures
}

// Pointer feeds a pointer sample to the catcher. Input outside Playing is ignored.
func (r *Round) Pointer(ev core.PointerEvent) {
	if r.phase != PhasePlaying {
		return
	}
	r.tracker.Handle(ev)
}

// Snapshot returns an immutable copy of everything a renderer needs.
// Feedback that has expired by now is omitted.
func (r *Round) Snapshot(now time.Time) Snapshot {
	var fb *Feedback
	if r.feedback != nil && now.Before(r.feedback.ExpiresAt) {
		f := *r.feedback
		fb = &f
	}
	return Snapshot{
		Phase:             r.phase,
		Score:             r.state.Score,
		RemainingSeconds:  r.state.RemainingSeconds,
		SpeedMultiplier:   r.state.SpeedMultiplier,
		BonusItemsSpawned: r.state.BonusItemsSpawned,
		Items:             r.Items(),
		Catcher:           r.tracker.State(),
		Feedback:          fb,
		Field:             r.field,
		Stats:             r.stats,
		ItemSize:          r.cfg.Items.Size,
		CatcherSize:       r.cfg.Catcher.Size,
	}
}

func (r *Round) end() {
	if r.phase == PhaseEnded {
		return
	}
	r.phase = PhaseEnded
	r.items = nil
	r.feedback = nil
	if r.onEnd != nil {
		r.onEnd(r.result())
	}
}

func (r *Round) result() Result {
	return Result{
		Score:             r.state.Score,
		BonusItemsSpawned: r.state.BonusItemsSpawned,
		DurationSecs:      r.cfg.Round.DurationSecs,
		Stats:             r.stats,
	}
}
