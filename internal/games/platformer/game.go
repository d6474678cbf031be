package platformer

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/assets"
	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// Game adapts a Session to the terminal platform. Each Reset starts a fresh
// session on the same level.
type Game struct {
	cfg     config.PlatformerConfig
	level   registry.Level
	sprites *assets.Set
	logger  *log.Logger
	clock   Clock
	ctx     context.Context

	session *Session
	err     error
}

// GameOptions configures a Game.
type GameOptions struct {
	Sprites *assets.Set     // nil draws plain glyphs
	Logger  *log.Logger     // nil discards logs
	Clock   Clock           // nil uses the system clock
	Context context.Context // ends every session when done; nil never does
}

// New creates a game for level. Call Reset before the first Step.
func New(cfg config.PlatformerConfig, level registry.Level, opts GameOptions) *Game {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	return &Game{
		cfg:     cfg,
		level:   level,
		sprites: opts.Sprites,
		logger:  opts.Logger,
		clock:   opts.Clock,
		ctx:     opts.Context,
	}
}

// ID returns the level ID, which keys score storage.
func (g *Game) ID() string {
	return g.level.ID
}

// Title returns the level title.
func (g *Game) Title() string {
	return g.level.Title
}

// Reset stops any running session and starts a new one.
func (g *Game) Reset(rt core.RuntimeConfig) {
	g.Close()

	s, err := NewSession(g.cfg, g.level, Options{
		Seed:   rt.Seed,
		Clock:  g.clock,
		Logger: g.logger,
	})
	if err != nil {
		g.logger.Error("cannot start session", "error", err)
		g.session, g.err = nil, err
		return
	}
	g.session, g.err = s, nil
	s.Start(g.ctx)
}

// Err returns the error from the last Reset, if any.
func (g *Game) Err() error {
	return g.err
}

// Step advances the running session by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.session == nil {
		return core.StepResult{State: core.GameState{GameOver: true}}
	}
	return g.session.Step(in)
}

// Render draws the current frame.
func (g *Game) Render(dst *core.Screen) {
	if g.session == nil {
		dst.Clear()
		msg := "Cannot start level"
		if g.err != nil {
			msg = g.err.Error()
		}
		dst.DrawTextCentered(dst.Height()/2, msg)
		return
	}
	RenderFrame(dst, g.session.Frame(), g.sprites)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{GameOver: true}
	}
	return g.session.State()
}

// Stats returns the running session's summary.
func (g *Game) Stats() Stats {
	if g.session == nil {
		return Stats{Level: g.level.ID}
	}
	return g.session.Stats()
}

// RunRecord converts the session summary into a run history row.
// The platform fills in the player name.
func (g *Game) RunRecord() storage.RunRecord {
	st := g.Stats()
	return storage.RunRecord{
		LevelID:   st.Level,
		Score:     st.Score,
		Lives:     st.Lives,
		Coins:     st.Coins,
		Stomps:    st.Stomps,
		Hits:      st.Hits,
		Falls:     st.Falls,
		Duration:  st.Duration,
		EndReason: string(st.Reason),
	}
}

// Close stops the running session and waits for its goroutines.
func (g *Game) Close() {
	if g.session != nil {
		g.session.Stop()
	}
}

var _ core.Game = (*Game)(nil)
