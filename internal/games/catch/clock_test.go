package catch

import "testing"

func TestClockSpeedRamp(t *testing.T) {
	c := NewClock(testConfig().Round)
	st := RoundState{RemainingSeconds: 60, SpeedMultiplier: 1}

	var changedAt []int
	prev := st.SpeedMultiplier
	endedAt := -1
	for i := 1; i <= 60; i++ {
		changed, ended := c.Tick(&st)
		if changed {
			changedAt = append(changedAt, c.Elapsed(st))
			if st.SpeedMultiplier-prev != 0.5 {
				t.Errorf("speed step at %ds = %v, expected 0.5", c.Elapsed(st), st.SpeedMultiplier-prev)
			}
		}
		if st.SpeedMultiplier < prev {
			t.Fatalf("speed decreased at tick %d", i)
		}
		prev = st.SpeedMultiplier
		if ended && endedAt < 0 {
			endedAt = i
		}
	}

	expected := []int{10, 20, 30, 40, 50}
	if len(changedAt) != len(expected) {
		t.Fatalf("speed changed at %v, expected %v", changedAt, expected)
	}
	for i := range expected {
		if changedAt[i] != expected[i] {
			t.Errorf("speed change %d at %ds, expected %ds", i, changedAt[i], expected[i])
		}
	}
	if st.SpeedMultiplier != 3.5 {
		t.Errorf("final speed = %v, expected 3.5", st.SpeedMultiplier)
	}
	if endedAt != 60 {
		t.Errorf("round ended at tick %d, expected 60", endedAt)
	}
	if st.RemainingSeconds != 0 {
		t.Errorf("RemainingSeconds = %d, expected 0", st.RemainingSeconds)
	}
}

func TestClockTickAfterExpiry(t *testing.T) {
	c := NewClock(testConfig().Round)
	st := RoundState{RemainingSeconds: 0, SpeedMultiplier: 3.5}

	changed, ended := c.Tick(&st)
	if changed || !ended {
		t.Errorf("Tick() on expired round = (%v, %v), expected (false, true)", changed, ended)
	}
	if st.RemainingSeconds != 0 {
		t.Errorf("RemainingSeconds = %d, expected 0", st.RemainingSeconds)
	}
}
