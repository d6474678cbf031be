package tui

import (
	"context"
	"errors"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// GameFactory builds a playable game for a level. Games created for a
// session must stop when ctx ends.
type GameFactory func(ctx context.Context, levelID string) (core.Game, error)

// SessionOptions configures a SessionModel.
type SessionOptions struct {
	Factory   GameFactory
	Store     *storage.Store // nil disables scores
	Logger    *log.Logger    // nil discards logs
	Player    string
	HoldTicks int
	EndDelay  time.Duration
}

// SessionModel manages the full session flow: menu -> game -> menu, with
// the scoreboard reachable from the menu. Used for SSH sessions and the
// local menu command.
type SessionModel struct {
	ctx        context.Context
	opts       SessionOptions
	config     core.RuntimeConfig
	menu       MenuModel
	scoreboard *ScoreboardModel
	gameModel  *Model
	err        string // last game creation error, shown in the menu
	quitting   bool
}

// NewSessionModel creates a new session model. ctx ends every game the
// session starts.
func NewSessionModel(ctx context.Context, cfg core.RuntimeConfig, opts SessionOptions) SessionModel {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return SessionModel{
		ctx:    ctx,
		opts:   opts,
		config: cfg,
		menu:   NewMenuModel(opts.Store, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch {
	case m.gameModel != nil:
		return m.updateGame(msg)
	case m.scoreboard != nil:
		return m.updateScoreboard(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsScoreboard() {
		sb := NewScoreboardModel(m.opts.Store, m.config.ScreenW, m.config.ScreenH)
		m.scoreboard = &sb
		m.menu.openScoreboard = false
		return m, sb.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		m.menu.selected = nil
		game, err := m.opts.Factory(m.ctx, selected.LevelID)
		if err != nil {
			m.opts.Logger.Warn("cannot create game", "level", selected.LevelID, "error", err)
			m.err = err.Error()
			return m, nil
		}
		m.err = ""

		cfg := m.config
		cfg.Seed = time.Now().UnixNano()
		gm := NewModel(game, cfg, ModelOptions{
			Store:     m.opts.Store,
			Logger:    m.opts.Logger,
			Player:    m.opts.Player,
			HoldTicks: m.opts.HoldTicks,
			EndDelay:  m.opts.EndDelay,
		})
		m.gameModel = &gm
		m.opts.Logger.Info("level started", "level", selected.LevelID, "player", m.opts.Player)
		return m, gm.Init()
	}

	return m, cmd
}

// updateScoreboard handles updates when the scoreboard is open.
func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreboard.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = &sb
	}

	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scoreboard.IsGoingBack() {
		m.scoreboard = nil
		return m, nil
	}
	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.gameModel = &gameModel
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.gameModel.BackToMenu() {
		m.gameModel = nil
		// Reload the menu so best scores include the finished run
		m.menu = NewMenuModel(m.opts.Store, m.config)
		return m, m.menu.Init()
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch {
	case m.gameModel != nil:
		return m.gameModel.View()
	case m.scoreboard != nil:
		return m.scoreboard.View()
	}

	view := m.menu.View()
	if m.err != "" {
		view += "\n" + centerText(errorStyle.Render(m.err), m.config.ScreenW) + "\n"
	}
	return view
}

// Close stops a game that is still running.
func (m SessionModel) Close() {
	if m.gameModel != nil {
		m.gameModel.finish()
	}
}

var errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

// RunSession runs the menu, scoreboard and game flow in the local terminal.
func RunSession(ctx context.Context, cfg core.RuntimeConfig, opts SessionOptions) error {
	model := NewSessionModel(ctx, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	final, err := p.Run()
	if sm, ok := final.(SessionModel); ok {
		sm.Close()
	}
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
