package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Action is a platform-level intent derived from a key press.
type Action int

const (
	ActionNone Action = iota
	ActionLeft
	ActionRight
	ActionConfirm
	ActionBack
	ActionRestart
	ActionScreenshot
	ActionQuit
)

// KeyMapper translates Bubble Tea key messages to actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return ActionQuit, true
	case "a", "left", "h":
		return ActionLeft, false
	case "d", "right", "l":
		return ActionRight, false
	case "enter", " ":
		return ActionConfirm, false
	case "b", "esc":
		return ActionBack, false
	case "r":
		return ActionRestart, false
	case "ctrl+s":
		return ActionScreenshot, false
	}
	return ActionNone, false
}
