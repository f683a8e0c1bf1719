package tui

import (
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-catch/internal/config"
	"github.com/vovakirdan/tui-catch/internal/core"
	"github.com/vovakirdan/tui-catch/internal/games/catch"
	"github.com/vovakirdan/tui-catch/internal/storage"
)

// Screen identifies which part of the session flow is active.
type Screen int

const (
	ScreenInstructions Screen = iota
	ScreenPlaying
	ScreenGameOver
	ScreenForm
	ScreenLeaderboard
)

// Options configures an application session.
type Options struct {
	Config  config.CatchConfig
	Runtime core.RuntimeConfig
	Store   *storage.Store // nil disables the leaderboard
	Logger  *log.Logger
	Player  string // Prefills the leaderboard name, e.g. the SSH user
}

// AppModel is the top-level model for one player session:
// instructions -> playing -> game over -> leaderboard form -> leaderboard.
// It is used both for local play and for each SSH session.
type AppModel struct {
	opts      Options
	screen    Screen
	game      *GameModel
	form      FormModel
	board     LeaderboardModel
	result    catch.Result
	name      string
	contact   string
	keyMapper *KeyMapper
	width     int
	height    int
	quitting  bool
}

// NewAppModel creates a session starting at the instructions screen.
func NewAppModel(opts Options) AppModel {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return AppModel{
		opts:      opts,
		screen:    ScreenInstructions,
		name:      opts.Player,
		keyMapper: NewKeyMapper(),
		width:     opts.Runtime.ScreenW,
		height:    opts.Runtime.ScreenH,
	}
}

// Init initializes the session.
func (m AppModel) Init() tea.Cmd {
	return nil
}

// Screen returns the active screen.
func (m AppModel) Screen() Screen {
	return m.screen
}

// Update handles messages for the session.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.opts.Runtime.ScreenW, m.opts.Runtime.ScreenH = msg.Width, msg.Height

	case RoundEndedMsg:
		return m.handleRoundEnded(msg)

	case RoundSavedMsg:
		if msg.Err != nil {
			m.opts.Logger.Warn("could not record round", "error", msg.Err)
		} else {
			m.opts.Logger.Debug("round recorded", "round", msg.RoundID)
		}
		return m, nil

	case ScoreSubmittedMsg:
		return m.handleSubmitted(msg)

	case LeaderboardLoadedMsg:
		if msg.Err != nil {
			m.opts.Logger.Warn("could not load leaderboard", "error", msg.Err)
			m.board.SetStatus("Leaderboard unavailable.")
		}
		m.board.SetEntries(msg.Entries, msg.Rank)
		return m, nil
	}

	switch m.screen {
	case ScreenInstructions:
		return m.updateInstructions(msg)
	case ScreenPlaying:
		return m.updateGame(msg)
	case ScreenGameOver:
		return m.updateGameOver(msg)
	case ScreenForm:
		return m.updateForm(msg)
	case ScreenLeaderboard:
		return m.updateLeaderboard(msg)
	}
	return m, nil
}

func (m AppModel) updateInstructions(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		action, isQuit := m.keyMapper.MapKey(msg)
		if isQuit {
			m.quitting = true
			return m, tea.Quit
		}
		if action == ActionConfirm {
			return m.startRound()
		}
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			return m.startRound()
		}
	}
	return m, nil
}

// startRound creates a fresh round; rounds are never reused.
func (m AppModel) startRound() (tea.Model, tea.Cmd) {
	rt := m.opts.Runtime
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}
	// A fixed seed still varies between rounds of one session.
	m.opts.Runtime.Seed = nextSeed(m.opts.Runtime.Seed)

	game := NewGameModel(m.opts.Config, rt, m.opts.Logger)
	m.game = &game
	m.screen = ScreenPlaying
	return m, m.game.Init()
}

func nextSeed(seed int64) int64 {
	if seed == 0 {
		return 0
	}
	return seed + 1
}

func (m AppModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.game == nil {
		return m, nil
	}
	newModel, cmd := m.game.Update(msg)
	if g, ok := newModel.(GameModel); ok {
		m.game = &g
	}
	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

func (m AppModel) handleRoundEnded(msg RoundEndedMsg) (tea.Model, tea.Cmd) {
	m.result = msg.Result
	m.screen = ScreenGameOver
	if m.opts.Store == nil {
		return m, nil
	}
	return m, saveRoundCmd(m.opts.Store, msg.Result)
}

func (m AppModel) updateGameOver(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	action, isQuit := m.keyMapper.MapKey(key)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit
	case action == ActionRestart:
		return m.startRound()
	case action == ActionConfirm && m.opts.Store != nil:
		m.form = NewFormModel(m.result.Score, m.name, m.contact, m.width, m.height)
		m.screen = ScreenForm
		return m, m.form.Init()
	}
	return m, nil
}

func (m AppModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)

	if m.form.Skipped() {
		return m.showLeaderboard(loadLeaderboardCmd(m.opts.Store, m.contact))
	}
	if sub := m.form.Submitted(); sub != nil {
		m.name, m.contact = sub.Name, sub.Contact
		return m.showLeaderboard(submitScoreCmd(m.opts.Store, *sub))
	}
	return m, cmd
}

func (m AppModel) showLeaderboard(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	m.board = NewLeaderboardModel(m.width, m.height)
	m.screen = ScreenLeaderboard
	return m, cmd
}

func (m AppModel) handleSubmitted(msg ScoreSubmittedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.opts.Logger.Warn("could not submit score", "error", msg.Err)
		m.board.SetStatus(fmt.Sprintf("Could not save your score: %v", msg.Err))
	} else {
		m.opts.Logger.Info("score submitted", "name", msg.Submission.Name, "score", msg.Submission.Score, "written", msg.Written)
	}
	return m, loadLeaderboardCmd(m.opts.Store, msg.Submission.Contact)
}

func (m AppModel) updateLeaderboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.board, cmd = m.board.Update(msg)

	switch {
	case m.board.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.board.PlayAgain():
		return m.startRound()
	}
	return m, cmd
}

// View renders the active screen.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case ScreenPlaying:
		if m.game != nil {
			return m.game.View()
		}
	case ScreenGameOver:
		return m.gameOverView()
	case ScreenForm:
		return m.form.View()
	case ScreenLeaderboard:
		return m.board.View()
	}
	return instructionsView(m.opts.Config, m.width, m.height)
}

func (m AppModel) gameOverView() string {
	st := m.result.Stats
	next := "enter: join leaderboard   r: play again   q: quit"
	if m.opts.Store == nil {
		next = "r: play again   q: quit"
	}
	lines := []string{
		titleStyle.Render("TIME'S UP!"),
		"",
		bonusStyle.Render(fmt.Sprintf("Final score: %d", m.result.Score)),
		"",
		goodStyle.Render(fmt.Sprintf("Fruit caught: %d", st.GoodCaught)),
		bonusStyle.Render(fmt.Sprintf("Bonus crates: %d", st.BonusCaught)),
		badStyle.Render(fmt.Sprintf("Hazards hit:  %d", st.HazardsCaught)),
		dimStyle.Render(fmt.Sprintf("Missed:       %d", st.Missed)),
		"",
		dimStyle.Render(next),
	}
	return centerBlock(lines, m.width, m.height)
}

// Run starts a local session in the current terminal.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewAppModel(opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // Press, release and drag motion
	)

	_, err := p.Run()
	return err
}
