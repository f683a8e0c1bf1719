package catch

import (
	"math"

	"github.com/vovakirdan/tui-catch/internal/core"
)

// Autopilot is a deterministic bot that steers the catcher toward the
// lowest good item. It is used for headless simulation and demos.
type Autopilot struct {
	// MaxStep bounds horizontal travel per call in field percent; 0 means unbounded.
	MaxStep float64
	engaged bool
}

// Steer returns the pointer events to send for the given snapshot.
func (a *Autopilot) Steer(snap Snapshot) []core.PointerEvent {
	if snap.Phase != PhasePlaying || !snap.Field.Ready() {
		return nil
	}
	bounds := core.NewRectF(0, 0, snap.Field.Width, snap.Field.Height)

	var events []core.PointerEvent
	if !a.engaged {
		events = append(events, core.PointerEvent{Action: core.PointerDown, Bounds: bounds})
		a.engaged = true
	}

	target, ok := lowestGood(snap.Items)
	if !ok {
		return events
	}
	goalX := (target.X + snap.ItemSize/2) / snap.Field.Width * 100
	x := snap.Catcher.X
	if a.MaxStep > 0 {
		x += math.Max(-a.MaxStep, math.Min(a.MaxStep, goalX-x))
	} else {
		x = goalX
	}
	events = append(events, core.PointerEvent{
		Action: core.PointerMove,
		X:      x / 100 * snap.Field.Width,
		Y:      snap.Catcher.Y / 100 * snap.Field.Height,
		Bounds: bounds,
	})
	return events
}

// lowestGood picks the non-hazard item closest to the bottom.
func lowestGood(items []FallingItem) (FallingItem, bool) {
	var best FallingItem
	found := false
	for _, it := range items {
		if it.IsHazard {
			continue
		}
		if !found || it.Y > best.Y {
			best, found = it, true
		}
	}
	return best, found
}
