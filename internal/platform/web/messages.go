package web

import (
	"github.com/vovakirdan/tui-catch/internal/core"
	"github.com/vovakirdan/tui-catch/internal/games/catch"
)

// Client message types.
const (
	msgField   = "field"
	msgStart   = "start"
	msgPointer = "pointer"
)

// Server message types.
const (
	msgState = "state"
	msgEnded = "ended"
	msgError = "error"
)

// clientRect is a DOM bounding rectangle.
type clientRect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// clientMessage is any message sent by the browser.
type clientMessage struct {
	Type   string     `json:"type"`
	Width  float64    `json:"width,omitempty"`
	Height float64    `json:"height,omitempty"`
	Action string     `json:"action,omitempty"`
	X      float64    `json:"x,omitempty"`
	Y      float64    `json:"y,omitempty"`
	Rect   clientRect `json:"rect"`
}

// pointerEvent converts a pointer message. ok is false for unknown actions.
func (m clientMessage) pointerEvent() (core.PointerEvent, bool) {
	action, ok := core.ParsePointerAction(m.Action)
	if !ok {
		return core.PointerEvent{}, false
	}
	return core.PointerEvent{
		Action: action,
		X:      m.X,
		Y:      m.Y,
		Bounds: core.NewRectF(m.Rect.Left, m.Rect.Top, m.Rect.Width, m.Rect.Height),
	}, true
}

type stateMessage struct {
	Type string `json:"type"`
	catch.Snapshot
}

type endedMessage struct {
	Type    string `json:"type"`
	RoundID string `json:"roundId,omitempty"`
	catch.Result
}

type errorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
