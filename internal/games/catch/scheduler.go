package catch

import "time"

// task identifies one periodic activity. Lower values win ties.
type task int

const (
	taskTimer task = iota
	taskSpawn
	taskMotion
	taskCollision
	numTasks
)

const minPeriod = time.Millisecond

// TickCounts reports how many times each periodic activity has fired.
type TickCounts struct {
	Timer     int `json:"timer"`
	Spawn     int `json:"spawn"`
	Motion    int `json:"motion"`
	Collision int `json:"collision"`
}

// Scheduler drives a Round on virtual time.
// Advance fires every task that falls due in time order; tasks due at the same
// instant fire timer, spawn, motion, collision. Nothing fires once the round ends.
type Scheduler struct {
	round  *Round
	origin time.Time
	now    time.Duration
	next   [numTasks]time.Duration
	counts TickCounts
	armed  bool
}

// NewScheduler creates a scheduler for r.
func NewScheduler(r *Round) *Scheduler {
	return &Scheduler{round: r}
}

// Round returns the driven round.
func (s *Scheduler) Round() *Round {
	return s.round
}

// Start starts the round and arms all tasks relative to at.
func (s *Scheduler) Start(at time.Time) bool {
	if !s.round.Start() {
		return false
	}
	s.origin = at
	s.now = 0
	s.next[taskTimer] = time.Second
	s.next[taskSpawn] = s.period(taskSpawn)
	s.next[taskMotion] = s.period(taskMotion)
	s.next[taskCollision] = s.period(taskCollision)
	s.armed = true
	return true
}

// Now returns the current virtual instant as wall-clock time.
func (s *Scheduler) Now() time.Time {
	return s.origin.Add(s.now)
}

// Elapsed returns virtual time since Start.
func (s *Scheduler) Elapsed() time.Duration {
	return s.now
}

// Counts returns the per-task fire counts.
func (s *Scheduler) Counts() TickCounts {
	return s.counts
}

// Advance moves virtual time forward by dt, firing due tasks.
// It reports whether the round is still playing.
func (s *Scheduler) Advance(dt time.Duration) bool {
	if !s.armed || dt < 0 {
		return s.playing()
	}
	target := s.now + dt
	for s.playing() {
		t, ok := s.due(target)
		if !ok {
			break
		}
		s.now = s.next[t]
		s.fire(t)
	}
	s.now = target
	return s.playing()
}

// due returns the earliest task scheduled at or before target.
func (s *Scheduler) due(target time.Duration) (task, bool) {
	best, found := task(0), false
	for t := task(0); t < numTasks; t++ {
		if s.next[t] > target {
			continue
		}
		if !found || s.next[t] < s.next[best] {
			best, found = t, true
		}
	}
	return best, found
}

func (s *Scheduler) fire(t task) {
	switch t {
	case taskTimer:
		s.counts.Timer++
		if s.round.TimerTick() {
			// Speed changed: the spawn cadence restarts from now at the new period.
			s.next[taskSpawn] = s.now + s.period(taskSpawn)
		}
	case taskSpawn:
		s.counts.Spawn++
		s.round.SpawnTick()
	case taskMotion:
		s.counts.Motion++
		s.round.FrameTick()
	case taskCollision:
		s.counts.Collision++
		s.round.CollisionTick(s.Now())
	}
	// The spawn task may already have been re-armed past now by a speed change.
	if s.next[t] <= s.now {
		s.next[t] = s.now + s.period(t)
	}
}

func (s *Scheduler) period(t task) time.Duration {
	var p time.Duration
	switch t {
	case taskTimer:
		p = time.Second
	case taskSpawn:
		p = s.round.SpawnInterval()
	case taskMotion:
		p = s.round.cfg.FramePeriod()
	case taskCollision:
		p = s.round.cfg.CollisionPeriod()
	}
	if p < minPeriod {
		return minPeriod
	}
	return p
}

func (s *Scheduler) playing() bool {
	return s.round.Phase() == PhasePlaying
}
