package catch

import (
	"sync"

	"github.com/vovakirdan/tui-catch/internal/config"
	"github.com/vovakirdan/tui-catch/internal/core"
)

// CatcherState is the catcher position in field percent.
type CatcherState struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Engaged bool    `json:"engaged"`
}

// Box returns the catcher's bounding box in field units.
func (c CatcherState) Box(field Field, size float64) core.RectF {
	return core.CenteredRectF(c.X/100*field.Width, c.Y/100*field.Height, size, size)
}

// Tracker maps pointer samples to a clamped catcher position.
// It is safe to call from input goroutines while ticks read State.
type Tracker struct {
	mu    sync.Mutex
	band  config.CatcherConfig
	state CatcherState
}

// NewTracker creates a tracker at the configured start position.
func NewTracker(band config.CatcherConfig) *Tracker {
	return &Tracker{
		band:  band,
		state: CatcherState{X: band.StartX, Y: band.StartY},
	}
}

// Down starts a drag.
func (t *Tracker) Down() {
	t.mu.Lock()
	t.state.Engaged = true
	t.mu.Unlock()
}

// Move updates the position from a sample at (x, y) inside bounds.
// Samples arriving while disengaged, or against an empty bounds box, are ignored.
func (t *Tracker) Move(x, y float64, bounds core.RectF) {
	if bounds.W <= 0 || bounds.H <= 0 {
		return
	}
	px := core.ClampF((x-bounds.X)/bounds.W*100, t.band.MinX, t.band.MaxX)
	py := core.ClampF((y-bounds.Y)/bounds.H*100, t.band.MinY, t.band.MaxY)

	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.state.Engaged {
		return
	}
	t.state.X, t.state.Y = px, py
}

// Up ends the drag. The position is kept.
func (t *Tracker) Up() {
	t.mu.Lock()
	t.state.Engaged = false
	t.mu.Unlock()
}

// Handle dispatches a raw pointer event.
func (t *Tracker) Handle(ev core.PointerEvent) {
	switch ev.Action {
	case core.PointerDown:
		t.Down()
	case core.PointerMove:
		t.Move(ev.X, ev.Y, ev.Bounds)
	case core.PointerUp:
		t.Up()
	}
}

// State returns a consistent copy of the catcher state.
func (t *Tracker) State() CatcherState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}
