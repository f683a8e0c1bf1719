package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected Action
		quit     bool
	}{
		{"q quits", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}, ActionQuit, true},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, ActionQuit, true},
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, ActionLeft, false},
		{"a moves left", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")}, ActionLeft, false},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, ActionRight, false},
		{"d moves right", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")}, ActionRight, false},
		{"enter confirms", tea.KeyMsg{Type: tea.KeyEnter}, ActionConfirm, false},
		{"space confirms", tea.KeyMsg{Type: tea.KeySpace}, ActionConfirm, false},
		{"esc goes back", tea.KeyMsg{Type: tea.KeyEsc}, ActionBack, false},
		{"r restarts", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")}, ActionRestart, false},
		{"ctrl+s screenshot", tea.KeyMsg{Type: tea.KeyCtrlS}, ActionScreenshot, false},
		{"unbound key", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("z")}, ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, isQuit := km.MapKey(tt.msg)
			if action != tt.expected || isQuit != tt.quit {
				t.Errorf("MapKey(%q) = (%v, %v), expected (%v, %v)", tt.msg.String(), action, isQuit, tt.expected, tt.quit)
			}
		})
	}
}

func TestFormRejectsShortContact(t *testing.T) {
	f := NewFormModel(50, "ada", "123", 80, 24)

	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if f.Submitted() != nil {
		t.Fatal("a short contact should not submit")
	}
	if f.err == "" {
		t.Error("form should show a validation error")
	}
	if f.focus != fieldContact {
		t.Errorf("focus = %d, expected the contact field", f.focus)
	}
}

func TestFormRequiresName(t *testing.T) {
	f := NewFormModel(50, "   ", "ada@example.com", 80, 24)

	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if f.Submitted() != nil {
		t.Fatal("a blank name should not submit")
	}
	if f.focus != fieldName {
		t.Errorf("focus = %d, expected the name field", f.focus)
	}
}
