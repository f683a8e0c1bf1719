package core

// PointerAction is the phase of a pointer (mouse or touch) contact.
type PointerAction int

const (
	PointerDown PointerAction = iota
	PointerMove
	PointerUp
)

// String returns the wire name of the action.
func (a PointerAction) String() string {
	switch a {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	default:
		return "unknown"
	}
}

// ParsePointerAction converts a wire name back to a PointerAction.
func ParsePointerAction(s string) (PointerAction, bool) {
	switch s {
	case "down", "touchstart":
		return PointerDown, true
	case "move", "touchmove":
		return PointerMove, true
	case "up", "touchend", "leave":
		return PointerUp, true
	}
	return 0, false
}

// PointerEvent is one raw pointer sample.
// X and Y are in the same coordinate space as Bounds, which is the play-field's
// bounding box as seen by the input device (terminal cells, CSS pixels, ...).
type PointerEvent struct {
	Action PointerAction
	X, Y   float64
	Bounds RectF
}
