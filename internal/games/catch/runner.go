package catch

import (
	"context"
	"sync"
	"time"

	"github.com/vovakirdan/tui-catch/internal/core"
)

// Runner drives a round in real time.
// One goroutine advances the scheduler on a single ticker; pointer input,
// field changes and snapshot reads from other goroutines are serialized
// behind the same mutex.
type Runner struct {
	mu      sync.Mutex
	sched   *Scheduler
	publish func(Snapshot)
	now     func() time.Time

	onEnd  func(Result)
	result *Result // set by the round while mu is held
}

// NewRunner creates a runner for r. publish, if non-nil, receives a snapshot
// after every frame and once more after the round ends. The round's end
// callback is taken over by the runner and fires just before that last
// snapshot. Neither is called with the runner's lock held, so both may call
// back into the runner.
func NewRunner(r *Round, publish func(Snapshot)) *Runner {
	rn := &Runner{
		sched:   NewScheduler(r),
		publish: publish,
		now:     time.Now,
		onEnd:   r.onEnd,
	}
	r.onEnd = func(res Result) { rn.result = &res }
	return rn
}

// Pointer forwards a pointer sample to the round.
func (rn *Runner) Pointer(ev core.PointerEvent) {
	rn.mu.Lock()
	rn.sched.Round().Pointer(ev)
	rn.mu.Unlock()
}

// SetField records the measured play-field size.
func (rn *Runner) SetField(f Field) {
	rn.mu.Lock()
	rn.sched.Round().SetField(f)
	rn.mu.Unlock()
}

// Snapshot returns the current round snapshot.
func (rn *Runner) Snapshot() Snapshot {
	rn.mu.Lock()
	defer rn.mu.Unlock()
	return rn.sched.Round().Snapshot(rn.sched.Now())
}

// Run starts the round if needed and drives it until the round ends or ctx
// is cancelled. All periodic activity stops when Run returns.
func (rn *Runner) Run(ctx context.Context) error {
	rn.mu.Lock()
	rn.sched.Start(rn.now())
	period := rn.sched.Round().Config().FramePeriod()
	rn.mu.Unlock()

	ticker := time.NewTicker(period)
	defer ticker.Stop()

	last := rn.now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		now := rn.now()
		rn.mu.Lock()
		playing := rn.sched.Advance(now.Sub(last))
		snap := rn.sched.Round().Snapshot(rn.sched.Now())
		ended := rn.result
		rn.result = nil
		rn.mu.Unlock()
		last = now

		if ended != nil && rn.onEnd != nil {
			rn.onEnd(*ended)
		}
		if rn.publish != nil {
			rn.publish(snap)
		}
		if !playing {
			return nil
		}
	}
}
