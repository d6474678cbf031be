package tui

import (
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// RunReporter is implemented by games that can summarize a finished run.
type RunReporter interface {
	RunRecord() storage.RunRecord
}

// closer is implemented by games that own background goroutines.
type closer interface {
	Close()
}

// ModelOptions configures a game Model.
type ModelOptions struct {
	Store      *storage.Store // nil disables run saving
	Logger     *log.Logger    // nil discards logs
	Player     string         // recorded with each run
	HoldTicks  int            // ticks one left/right press stays held
	EndDelay   time.Duration  // how long GAME OVER stays up; 0 waits for a key
	Standalone bool           // quit the program when the run ends
}

// Model is the Bubble Tea model that runs one level.
type Model struct {
	game       core.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	keys       *KeyMapper
	held       *HeldInput
	inputFrame core.InputFrame
	gameState  core.GameState
	player     string
	endTicks   int // ticks to keep GAME OVER up; 0 waits for a key
	overTicks  int
	standalone bool
	quitting   bool
	backToMenu bool
	runSaved   bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game core.Game, cfg core.RuntimeConfig, opts ModelOptions) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Player == "" {
		opts.Player = localUser()
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      opts.Store,
		logger:     opts.Logger,
		config:     cfg,
		keys:       NewKeyMapper(),
		held:       NewHeldInput(opts.HoldTicks),
		inputFrame: core.NewInputFrame(),
		player:     opts.Player,
		endTicks:   int(opts.EndDelay * time.Duration(cfg.TickRate) / time.Second),
		standalone: opts.Standalone,
	}
}

// Init starts the game and the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The world is scaled to the screen, so a resize keeps the run going
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keys.IsScreenshot(msg) {
		m.saveScreenshot()
		return m, nil
	}

	switch action := m.keys.MapKey(msg); action {
	case core.ActionQuit:
		m.finish()
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		if m.gameState.GameOver || m.gameState.Paused {
			return m.leave()
		}
	case core.ActionLeft, core.ActionRight:
		m.held.Press(action)
	case core.ActionNone:
	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	if m.gameState.Paused {
		m.held.Release()
	}
	m.held.Apply(&m.inputFrame)

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if m.gameState.GameOver {
		if !m.runSaved {
			m.saveRun()
		}
		m.overTicks++
		if m.endTicks > 0 && m.overTicks >= m.endTicks {
			return m.leave()
		}
	}

	return m, tickCmd(m.config.TickRate)
}

// leave ends the run and either quits or hands control back to the menu.
func (m Model) leave() (tea.Model, tea.Cmd) {
	m.finish()
	if m.standalone {
		m.quitting = true
		return m, tea.Quit
	}
	m.backToMenu = true
	return m, nil
}

// finish stops the game's goroutines and records the run once.
func (m *Model) finish() {
	if c, ok := m.game.(closer); ok {
		c.Close()
	}
	if !m.runSaved {
		m.saveRun()
	}
}

// saveRun stores the run summary. Runs that scored nothing are not kept.
func (m *Model) saveRun() {
	m.runSaved = true
	if m.store == nil {
		return
	}

	var run storage.RunRecord
	if r, ok := m.game.(RunReporter); ok {
		run = r.RunRecord()
	} else {
		st := m.game.State()
		run = storage.RunRecord{LevelID: m.game.ID(), Score: st.Score, Lives: st.Lives}
	}
	if run.Score <= 0 {
		return
	}
	run.Player = m.player

	if _, err := m.store.SaveRun(run); err != nil {
		m.logger.Warn("could not save run", "level", run.LevelID, "error", err)
		return
	}
	m.logger.Info("run saved", "level", run.LevelID, "player", run.Player, "score", run.Score, "reason", run.EndReason)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	// Render current state
	m.game.Render(m.screen)

	// Create screenshots directory
	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("cannot resolve screenshot directory", "error", err)
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot directory", "error", err)
		return
	}

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "path", path, "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	// Render game to screen buffer
	m.game.Render(m.screen)

	// Convert screen to string
	return RenderScreen(m.screen)
}

// IsQuitting returns true if the user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true once the run is over and the menu should return.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// GameState returns the state seen on the last tick.
func (m Model) GameState() core.GameState {
	return m.gameState
}

// localUser returns the login name recorded with local runs.
func localUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "local"
}

// Run plays one level in the terminal until the run ends or the user quits.
func Run(game core.Game, cfg core.RuntimeConfig, opts ModelOptions) error {
	opts.Standalone = true
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	if c, ok := game.(closer); ok {
		c.Close()
	}
	return err
}
