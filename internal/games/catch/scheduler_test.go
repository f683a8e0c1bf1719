package catch

import (
	"math/rand"
	"testing"
	"time"
)

const frame = time.Second / 60

func newTestScheduler(seed int64, onEnd func(Result)) *Scheduler {
	r := NewRound(testConfig(), rand.New(rand.NewSource(seed)), onEnd)
	r.SetField(testField)
	s := NewScheduler(r)
	s.Start(time.Unix(0, 0))
	return s
}

func TestSchedulerSpawnCadence(t *testing.T) {
	s := newTestScheduler(1, nil)

	s.Advance(10 * time.Second)
	// 700ms cadence: 700, 1400, ..., 9800.
	if got := s.Counts().Spawn; got != 14 {
		t.Errorf("spawns in first 10s = %d, expected 14", got)
	}
	if got := s.Round().SpawnInterval(); got != 650*time.Millisecond {
		t.Errorf("SpawnInterval() after 10s = %v, expected 650ms", got)
	}

	// Re-armed from the speed change at 10s.
	s.Advance(649 * time.Millisecond)
	if got := s.Counts().Spawn; got != 14 {
		t.Errorf("spawns at 10.649s = %d, expected 14", got)
	}
	s.Advance(time.Millisecond)
	if got := s.Counts().Spawn; got != 15 {
		t.Errorf("spawns at 10.65s = %d, expected 15", got)
	}
}

func TestSchedulerTermination(t *testing.T) {
	calls := 0
	var final Result
	s := newTestScheduler(5, func(res Result) {
		calls++
		final = res
	})

	for s.Advance(frame) {
	}

	if calls != 1 {
		t.Fatalf("round end callback fired %d times, expected 1", calls)
	}
	if got := s.Counts().Timer; got != 60 {
		t.Errorf("timer ticks = %d, expected 60", got)
	}
	if final.Score != s.Round().State().Score {
		t.Errorf("callback score = %d, expected %d", final.Score, s.Round().State().Score)
	}
	if s.Elapsed() < 60*time.Second || s.Elapsed() > 60*time.Second+frame {
		t.Errorf("round ended at %v, expected 60s", s.Elapsed())
	}

	before := s.Counts()
	if s.Advance(10 * time.Second) {
		t.Error("Advance() after end reported playing")
	}
	if s.Counts() != before {
		t.Errorf("ticks fired after end: %+v -> %+v", before, s.Counts())
	}
	if calls != 1 {
		t.Errorf("callback fired again after end, %d calls", calls)
	}
}

func TestSchedulerMotionBeforeCollision(t *testing.T) {
	cfg := testConfig()
	cfg.Physics.FrameRate = 50
	cfg.Physics.CollisionPeriodMs = 20
	r := NewRound(cfg, rand.New(rand.NewSource(1)), nil)
	r.SetField(testField)
	s := NewScheduler(r)
	s.Start(time.Unix(0, 0))

	// Motion and collision both fall due at 20ms. At y=399 the item is one
	// unit short of the catcher; only the moved position (401) overlaps.
	r.items = append(r.items, FallingItem{ID: 1, Kind: KindApple, X: 175, Y: 399, PointValue: 10})
	s.Advance(20 * time.Millisecond)

	if got := r.State().Score; got != 10 {
		t.Errorf("score = %d, expected the item to be caught on the shared 20ms tick", got)
	}
	if c := s.Counts(); c.Motion != 1 || c.Collision != 1 {
		t.Errorf("Counts() = %+v, expected one motion and one collision tick", c)
	}
}

func TestSchedulerInvariantsAndDeterminism(t *testing.T) {
	run := func(seed int64) (Result, TickCounts) {
		var res Result
		s := newTestScheduler(seed, func(r Result) { res = r })
		pilot := &Autopilot{MaxStep: 2}
		prevSpeed := 1.0

		for {
			snap := s.Round().Snapshot(s.Now())
			for _, ev := range pilot.Steer(snap) {
				s.Round().Pointer(ev)
			}
			playing := s.Advance(frame)

			st := s.Round().State()
			c := s.Round().Catcher()
			if st.Score < 0 || st.RemainingSeconds < 0 || st.RemainingSeconds > 60 || st.SpeedMultiplier < 1 {
				t.Fatalf("seed %d: invariant broken: %+v", seed, st)
			}
			if st.SpeedMultiplier < prevSpeed {
				t.Fatalf("seed %d: speed decreased from %v to %v", seed, prevSpeed, st.SpeedMultiplier)
			}
			prevSpeed = st.SpeedMultiplier
			if c.X < 5 || c.X > 95 || c.Y < 70 || c.Y > 95 {
				t.Fatalf("seed %d: catcher left its band: %+v", seed, c)
			}
			if st.BonusItemsSpawned > 1 {
				t.Fatalf("seed %d: %d bonus items spawned", seed, st.BonusItemsSpawned)
			}
			if !playing {
				break
			}
		}
		return res, s.Counts()
	}

	for _, seed := range []int64{1, 2, 42} {
		res1, counts1 := run(seed)
		res2, counts2 := run(seed)
		if res1 != res2 || counts1 != counts2 {
			t.Errorf("seed %d: runs differ: %+v %+v vs %+v %+v", seed, res1, counts1, res2, counts2)
		}
		if res1.Stats.GoodCaught == 0 {
			t.Errorf("seed %d: autopilot caught nothing", seed)
		}
	}
}

func TestSchedulerBeforeStartDoesNothing(t *testing.T) {
	r := NewRound(testConfig(), rand.New(rand.NewSource(1)), nil)
	r.SetField(testField)
	s := NewScheduler(r)

	if s.Advance(5 * time.Second) {
		t.Error("Advance() before Start reported playing")
	}
	if s.Counts() != (TickCounts{}) {
		t.Errorf("Counts() = %+v before Start, expected zero", s.Counts())
	}
}
