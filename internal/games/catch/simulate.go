package catch

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-catch/internal/config"
)

// SimulationResult is the outcome of a headless round.
type SimulationResult struct {
	Result Result     `json:"result"`
	Ticks  TickCounts `json:"ticks"`
	Seed   int64      `json:"seed"`
}

// Simulate plays one full round in virtual time with the autopilot steering,
// one frame at a time. The same config, seed and field always give the same
// result.
func Simulate(cfg config.CatchConfig, seed int64, field Field, pilot *Autopilot) SimulationResult {
	var res Result
	r := NewRound(cfg, rand.New(rand.NewSource(seed)), func(out Result) { res = out })
	r.SetField(field)

	s := NewScheduler(r)
	s.Start(time.Unix(0, 0))
	frame := cfg.FramePeriod()
	for {
		if pilot != nil {
			for _, ev := range pilot.Steer(r.Snapshot(s.Now())) {
				r.Pointer(ev)
			}
		}
		if !s.Advance(frame) {
			break
		}
	}
	return SimulationResult{Result: res, Ticks: s.Counts(), Seed: seed}
}
