package tui

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-catch/internal/config"
	"github.com/vovakirdan/tui-catch/internal/core"
	"github.com/vovakirdan/tui-catch/internal/games/catch"
)

// NudgeStep is how far one arrow key press moves the catcher, in field percent.
const NudgeStep = 5.0

// RoundEndedMsg is emitted once when the round's timer runs out.
type RoundEndedMsg struct {
	Result catch.Result
}

// endSignal carries the round-end callback result out of the round.
// It is shared by all copies of a GameModel.
type endSignal struct {
	result *catch.Result
	sent   bool
}

// GameModel runs one round in the terminal.
type GameModel struct {
	cfg       config.CatchConfig
	runtime   core.RuntimeConfig
	round     *catch.Round
	sched     *catch.Scheduler
	layout    catch.Layout
	screen    *core.Screen
	end       *endSignal
	keyMapper *KeyMapper
	logger    *log.Logger
	last      time.Time
	quitting  bool
}

// NewGameModel creates a round sized to the runtime screen.
func NewGameModel(cfg config.CatchConfig, rt core.RuntimeConfig, logger *log.Logger) GameModel {
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	end := &endSignal{}
	round := catch.NewRound(cfg, rand.New(rand.NewSource(rt.Seed)), func(res catch.Result) {
		end.result = &res
	})
	layout := catch.NewLayout(rt.ScreenW, rt.ScreenH, cfg.Terminal.CellWidth, cfg.Terminal.CellHeight)
	round.SetField(layout.Field())

	return GameModel{
		cfg:       cfg,
		runtime:   rt,
		round:     round,
		sched:     catch.NewScheduler(round),
		layout:    layout,
		screen:    core.NewScreen(rt.ScreenW, rt.ScreenH),
		end:       end,
		keyMapper: NewKeyMapper(),
		logger:    logger,
	}
}

// Init starts the round and the frame loop.
func (m GameModel) Init() tea.Cmd {
	now := time.Now()
	m.sched.Start(now)
	m.logger.Info("round started", "seed", m.runtime.Seed, "field", fmt.Sprintf("%.0fx%.0f", m.layout.Field().Width, m.layout.Field().Height))
	return tickCmd(m.runtime.TickRate)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	case tea.WindowSizeMsg:
		m.runtime.ScreenW = msg.Width
		m.runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		m.layout = catch.NewLayout(msg.Width, msg.Height, m.cfg.Terminal.CellWidth, m.cfg.Terminal.CellHeight)
		m.round.SetField(m.layout.Field())
		return m, nil
	case TickMsg:
		return m.handleTick(time.Time(msg))
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case ActionLeft:
		m.nudge(-NudgeStep)
	case ActionRight:
		m.nudge(NudgeStep)
	case ActionScreenshot:
		m.saveScreenshot()
	}
	return m, nil
}

// nudge moves the catcher horizontally by synthesizing a short drag.
func (m GameModel) nudge(dx float64) {
	c := m.round.Catcher()
	f := m.layout.Field()
	bounds := m.layout.Bounds()
	move := core.PointerEvent{
		Action: core.PointerMove,
		X:      (c.X + dx) / 100 * f.Width,
		Y:      c.Y / 100 * f.Height,
		Bounds: bounds,
	}
	if c.Engaged {
		m.round.Pointer(move)
		return
	}
	m.round.Pointer(core.PointerEvent{Action: core.PointerDown, Bounds: bounds})
	m.round.Pointer(move)
	m.round.Pointer(core.PointerEvent{Action: core.PointerUp, Bounds: bounds})
}

// handleMouse maps terminal mouse events to pointer events.
// Pressing anywhere snaps the catcher there; dragging moves it.
func (m GameModel) handleMouse(msg tea.MouseMsg) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		m.round.Pointer(m.layout.PointerAt(core.PointerDown, msg.X, msg.Y))
		m.round.Pointer(m.layout.PointerAt(core.PointerMove, msg.X, msg.Y))
	case tea.MouseActionMotion:
		m.round.Pointer(m.layout.PointerAt(core.PointerMove, msg.X, msg.Y))
	case tea.MouseActionRelease:
		m.round.Pointer(m.layout.PointerAt(core.PointerUp, msg.X, msg.Y))
	}
}

// handleTick advances virtual time by the wall-clock time since the last frame.
func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.last.IsZero() {
		m.last = m.sched.Now()
	}
	if now.After(m.last) {
		m.sched.Advance(now.Sub(m.last))
		m.last = now
	}

	if m.end.result != nil && !m.end.sent {
		m.end.sent = true
		res := *m.end.result
		m.logger.Info("round ended", "score", res.Score, "caught", res.Stats.GoodCaught+res.Stats.BonusCaught, "hazards", res.Stats.HazardsCaught)
		return m, func() tea.Msg { return RoundEndedMsg{Result: res} }
	}
	if m.round.Phase() != catch.PhasePlaying {
		return m, nil
	}
	return m, tickCmd(m.runtime.TickRate)
}

// Snapshot returns the current round snapshot.
func (m GameModel) Snapshot() catch.Snapshot {
	return m.round.Snapshot(m.sched.Now())
}

// saveScreenshot saves the current screen to a file.
func (m GameModel) saveScreenshot() {
	catch.Render(m.screen, m.layout, m.Snapshot())

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".catch", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("catch_%s.txt", timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
	}
}

// View renders the round.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	catch.Render(m.screen, m.layout, m.Snapshot())
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}
