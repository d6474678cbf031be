// Package platformer implements a concurrent platformer: a fixed-tick main
// loop owns the player while every enemy patrols in its own goroutine, and two
// spawner goroutines keep enemies and coins coming. All of them share one
// lock-guarded world.
package platformer

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/limiter"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/world"
)

// Clock supplies the time used for invulnerability windows and run duration.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// EndReason records why a session stopped.
type EndReason string

const (
	EndNone      EndReason = ""
	EndLives     EndReason = "lives"      // lives ran out
	EndQuit      EndReason = "quit"       // player or platform stopped the session
	EndCancelled EndReason = "disconnect" // parent context ended (SSH hangup)
)

// Options customizes a session.
type Options struct {
	Seed   int64 // 0 picks a time-based seed
	Clock  Clock
	Logger *log.Logger
}

// Stats summarizes a session for the HUD and run history.
type Stats struct {
	Level    string
	Score    int
	Lives    int
	Coins    int
	Stomps   int
	Hits     int
	Falls    int
	Duration time.Duration
	Reason   EndReason
}

// counters are guarded by the world lock.
type counters struct {
	coins, stomps, hits, falls int
}

type seededEnemy struct {
	handle world.Handle
	permit *limiter.Permit
}

// Session is one play-through of a level.
type Session struct {
	cfg        config.PlatformerConfig
	level      registry.Level
	world      *world.World
	limiter    *limiter.Limiter
	difficulty *config.DifficultyManager
	clock      Clock
	logger     *log.Logger

	patrol    world.PatrolParams
	placement world.EnemyPlacement

	ctx        context.Context
	cancel     context.CancelFunc
	stopParent func() bool
	group      errgroup.Group

	active  atomic.Bool
	paused  atomic.Bool
	started atomic.Bool
	tasks   atomic.Int32
	ticks   atomic.Int64
	reason  atomic.Pointer[EndReason]

	startedAt time.Time
	endedAt   atomic.Int64 // unix nanos, 0 while active
	pausedAt  time.Time    // main loop only

	seeded []seededEnemy
	count  counters
}

// NewSession builds a session and seeds its coins and enemies.
// No goroutines run until Start.
func NewSession(cfg config.PlatformerConfig, level registry.Level, opts Options) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := level.Validate(); err != nil {
		return nil, err
	}
	if level.Platforms[level.StartPlatform].Y-cfg.Player.Height < 0 {
		return nil, fmt.Errorf("platformer: level %q start is above the world", level.ID)
	}

	if opts.Clock == nil {
		opts.Clock = systemClock{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	now := opts.Clock.Now()
	player := world.Player{
		Rect:              level.StartRect(cfg.Player.Width, cfg.Player.Height),
		Lives:             cfg.Player.Lives,
		InvulnerableUntil: now.Add(cfg.Player.SpawnInvulnerability),
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		cfg:        cfg,
		level:      level,
		world:      world.New(level.Platforms, player, rand.New(rand.NewSource(seed))),
		limiter:    limiter.New(cfg.Enemies.Max),
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		clock:      opts.Clock,
		logger:     opts.Logger.With("level", level.ID),
		patrol: world.PatrolParams{
			SupportTolerance: cfg.Enemies.SupportTolerance,
			EdgeMargin:       cfg.Enemies.EdgeMargin,
			RecoveryNudge:    cfg.Enemies.RecoveryNudge,
		},
		placement: world.EnemyPlacement{
			W:        cfg.Enemies.Width,
			H:        cfg.Enemies.Height,
			AvoidW:   cfg.Enemies.AvoidWidth,
			AvoidH:   cfg.Enemies.AvoidHeight,
			Attempts: cfg.Enemies.SpawnAttempts,
		},
		ctx:       ctx,
		cancel:    cancel,
		startedAt: now,
	}
	s.active.Store(true)

	s.world.Do(func(st *world.State) {
		for i := 0; i < cfg.Coins.Initial; i++ {
			s.addCoin(st)
		}
		for i := 0; i < cfg.Enemies.Initial; i++ {
			permit, ok := s.limiter.TryAcquire()
			if !ok {
				break
			}
			h := s.placeEnemy(st, permit)
			s.seeded = append(s.seeded, seededEnemy{handle: h, permit: permit})
		}
	})

	s.logger.Debug("session created", "seed", seed, "enemies", len(s.seeded), "coins", cfg.Coins.Initial)
	return s, nil
}

// Start launches the seeded enemy tasks and both spawners.
// When parent ends the session ends with EndCancelled.
// Calling Start more than once has no effect.
func (s *Session) Start(parent context.Context) {
	if !s.started.CompareAndSwap(false, true) {
		return
	}
	if parent != nil {
		s.stopParent = context.AfterFunc(parent, func() { s.end(EndCancelled) })
	}

	for _, e := range s.seeded {
		s.runEnemy(e.handle, e.permit)
	}
	s.seeded = nil

	s.goTask("enemy-spawner", s.enemySpawner)
	s.goTask("coin-spawner", s.coinSpawner)
}

// goTask runs fn in the session group and counts it as an active task.
func (s *Session) goTask(name string, fn func()) {
	s.tasks.Add(1)
	s.group.Go(func() error {
		defer s.tasks.Add(-1)
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("task panicked", "task", name, "panic", r)
			}
		}()
		fn()
		return nil
	})
}

// end flips the session to inactive exactly once and broadcasts shutdown.
func (s *Session) end(reason EndReason) bool {
	if !s.active.CompareAndSwap(true, false) {
		return false
	}
	s.reason.Store(&reason)
	s.endedAt.Store(s.clock.Now().UnixNano())
	s.cancel()
	s.logger.Info("session ended", "reason", reason)
	return true
}

// Stop ends the session, waits for every goroutine and frees every permit.
// Safe to call more than once and before Start.
func (s *Session) Stop() {
	s.end(EndQuit)
	if s.stopParent != nil {
		s.stopParent()
	}
	_ = s.group.Wait()

	s.world.Do(func(st *world.State) {
		for _, h := range st.Enemies.Handles() {
			st.RemoveEnemy(h)
		}
	})
}

// Done is closed once the session has ended.
func (s *Session) Done() <-chan struct{} {
	return s.ctx.Done()
}

// Active reports whether the game is still running.
func (s *Session) Active() bool {
	return s.active.Load()
}

// Paused reports whether the simulation is frozen.
func (s *Session) Paused() bool {
	return s.paused.Load()
}

// Tasks returns the number of running session goroutines.
func (s *Session) Tasks() int {
	return int(s.tasks.Load())
}

// Level returns the level being played.
func (s *Session) Level() registry.Level {
	return s.level
}

// Stats returns a summary of the session so far.
func (s *Session) Stats() Stats {
	st := Stats{Level: s.level.ID, Reason: EndNone}
	s.world.Do(func(ws *world.State) {
		st.Score = ws.Player.Score
		st.Lives = ws.Player.Lives
		st.Coins = s.count.coins
		st.Stomps = s.count.stomps
		st.Hits = s.count.hits
		st.Falls = s.count.falls
	})
	if r := s.reason.Load(); r != nil {
		st.Reason = *r
	}
	end := s.clock.Now()
	if ns := s.endedAt.Load(); ns != 0 {
		end = time.Unix(0, ns)
	}
	st.Duration = end.Sub(s.startedAt)
	return st
}
