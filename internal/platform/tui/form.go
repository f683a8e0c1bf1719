package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-catch/internal/storage"
)

const (
	fieldName = iota
	fieldContact
	numFields
)

var (
	focusedLabel = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	boxStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)
)

// FormModel collects the name and contact for a leaderboard submission.
type FormModel struct {
	score     int
	inputs    [numFields]textinput.Model
	focus     int
	err       string
	submitted *storage.Submission
	skipped   bool
	width     int
	height    int
}

// NewFormModel creates a form for score, prefilled with name and contact.
func NewFormModel(score int, name, contact string, width, height int) FormModel {
	nameIn := textinput.New()
	nameIn.Placeholder = "Your name"
	nameIn.CharLimit = 32
	nameIn.Width = 30
	nameIn.SetValue(name)

	contactIn := textinput.New()
	contactIn.Placeholder = "Phone or email"
	contactIn.CharLimit = 64
	contactIn.Width = 30
	contactIn.SetValue(contact)

	m := FormModel{
		score:  score,
		inputs: [numFields]textinput.Model{nameIn, contactIn},
		width:  width,
		height: height,
	}
	m.inputs[fieldName].Focus()
	return m
}

// Init starts the cursor blink.
func (m FormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the form.
func (m FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.skipped = true
			return m, nil
		case "tab", "down":
			return m, m.setFocus((m.focus + 1) % numFields)
		case "shift+tab", "up":
			return m, m.setFocus((m.focus + numFields - 1) % numFields)
		case "enter":
			if m.focus < numFields-1 {
				return m, m.setFocus(m.focus + 1)
			}
			m.submit()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *FormModel) setFocus(i int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = i
	return m.inputs[m.focus].Focus()
}

// submit validates the form and records the submission if it is valid.
func (m *FormModel) submit() {
	sub := storage.Submission{
		Name:    m.inputs[fieldName].Value(),
		Contact: m.inputs[fieldContact].Value(),
		Score:   m.score,
	}
	if err := sub.Validate(); err != nil {
		m.err = strings.TrimPrefix(err.Error(), storage.ErrInvalidSubmission.Error()+": ")
		if sub.Name == "" {
			m.setFocus(fieldName)
		} else {
			m.setFocus(fieldContact)
		}
		return
	}
	m.err = ""
	m.submitted = &sub
}

// Submitted returns the validated submission, or nil.
func (m FormModel) Submitted() *storage.Submission {
	return m.submitted
}

// Skipped reports whether the player chose not to submit.
func (m FormModel) Skipped() bool {
	return m.skipped
}

// View renders the form.
func (m FormModel) View() string {
	labels := [numFields]string{"Name", "Contact"}

	var body strings.Builder
	body.WriteString(titleStyle.Render(fmt.Sprintf("You scored %d!", m.score)))
	body.WriteString("\n\n")
	body.WriteString("Join the leaderboard:\n\n")
	for i := range m.inputs {
		label := labels[i]
		if i == m.focus {
			label = focusedLabel.Render(label)
		}
		body.WriteString(label + "\n")
		body.WriteString(m.inputs[i].View() + "\n\n")
	}
	if m.err != "" {
		body.WriteString(errorStyle.Render(m.err) + "\n\n")
	}
	body.WriteString(dimStyle.Render("tab switch field   enter submit   esc skip"))

	box := boxStyle.Render(body.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
