package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-catch/internal/storage"
)

// LeaderboardKeyMap defines the key bindings for the leaderboard.
type LeaderboardKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Again key.Binding
	Quit  key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k LeaderboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Again, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k LeaderboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Again, k.Quit},
	}
}

// DefaultLeaderboardKeyMap returns default key bindings.
func DefaultLeaderboardKeyMap() LeaderboardKeyMap {
	return LeaderboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Again: key.NewBinding(
			key.WithKeys("r", "enter"),
			key.WithHelp("r", "play again"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// LeaderboardModel shows the ranked leaderboard with the current player highlighted.
type LeaderboardModel struct {
	entries  []storage.LeaderboardEntry
	rank     int    // Current player's rank, 0 if unranked
	status   string // Error or info line
	loading  bool
	table    table.Model
	help     help.Model
	keys     LeaderboardKeyMap
	width    int
	height   int
	again    bool
	quitting bool
}

// NewLeaderboardModel creates an empty leaderboard waiting for data.
func NewLeaderboardModel(width, height int) LeaderboardModel {
	h := help.New()
	h.ShowAll = false

	m := LeaderboardModel{
		loading: true,
		help:    h,
		keys:    DefaultLeaderboardKeyMap(),
		width:   width,
		height:  height,
	}
	m.table = m.createTable()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *LeaderboardModel) createTable() table.Model {
	nameWidth := m.width - 30
	if nameWidth > 32 {
		nameWidth = 32
	}
	if nameWidth < 10 {
		nameWidth = 10
	}
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Name", Width: nameWidth},
		{Title: "Score", Width: 8},
	}

	height := m.height - 10 // Leave room for title, status, help and margins
	if height < 3 {
		height = 3
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// SetEntries fills the table. The cursor starts on the current player's row.
func (m *LeaderboardModel) SetEntries(entries []storage.LeaderboardEntry, rank int) {
	m.entries = entries
	m.rank = rank
	m.loading = false

	rows := make([]table.Row, len(entries))
	cursor := 0
	for i, e := range entries {
		name := e.Name
		if e.IsCurrentUser {
			name = "▶ " + name
			cursor = i
		}
		rows[i] = table.Row{fmt.Sprintf("#%d", e.Rank), name, fmt.Sprintf("%d", e.Score)}
	}
	m.table.SetRows(rows)
	m.table.SetCursor(cursor)
}

// SetStatus sets the status line shown above the table.
func (m *LeaderboardModel) SetStatus(status string) {
	m.status = status
	if status != "" {
		m.loading = false
	}
}

// Update handles messages for the leaderboard.
func (m LeaderboardModel) Update(msg tea.Msg) (LeaderboardModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, nil
		case key.Matches(msg, m.keys.Again):
			m.again = true
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.SetEntries(m.entries, m.rank)
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the leaderboard.
func (m LeaderboardModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.MarginBottom(1).Render(centerText("LEADERBOARD", m.width)))
	b.WriteString("\n\n")

	switch {
	case m.status != "":
		b.WriteString(centerText(errorStyle.Render(m.status), m.width))
		b.WriteString("\n")
	case m.rank > 0:
		b.WriteString(centerText(bonusStyle.Render(fmt.Sprintf("Your rank: #%d", m.rank)), m.width))
		b.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, tableStyle.Render(m.renderTableContent())))

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m LeaderboardModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)
	switch {
	case m.loading:
		return emptyStyle.Render("Loading...")
	case len(m.entries) == 0:
		return emptyStyle.Render("No scores recorded yet.\nPlay a round to set a high score!")
	}
	return m.table.View()
}

// PlayAgain returns true if the player asked for another round.
func (m LeaderboardModel) PlayAgain() bool {
	return m.again
}

// IsQuitting returns true if user wants to quit entirely.
func (m LeaderboardModel) IsQuitting() bool {
	return m.quitting
}
