package platformer

import (
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/levels"
	"github.com/vovakirdan/tui-platformer/internal/world"
)

// fakeClock is a manually advanced Clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// quietConfig is the default config with nothing seeded.
func quietConfig() config.PlatformerConfig {
	cfg := config.DefaultPlatformerConfig()
	cfg.Enemies.Initial = 0
	cfg.Coins.Initial = 0
	return cfg
}

// fastConfig shrinks every interval so goroutine tests finish quickly.
func fastConfig() config.PlatformerConfig {
	cfg := config.DefaultPlatformerConfig()
	cfg.Enemies.PatrolInterval = time.Millisecond
	cfg.Enemies.AcquireWait = 2 * time.Millisecond
	cfg.Enemies.Backoff = 2 * time.Millisecond
	cfg.Enemies.SpawnDelayMin = time.Millisecond
	cfg.Enemies.SpawnDelayMax = 2 * time.Millisecond
	cfg.Coins.RespawnInterval = 2 * time.Millisecond
	return cfg
}

func newTestSession(t *testing.T, cfg config.PlatformerConfig, clock Clock) *Session {
	t.Helper()
	s, err := NewSession(cfg, levels.Lab(), Options{Seed: 42, Clock: clock})
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	t.Cleanup(s.Stop)
	return s
}

// addEnemy inserts a stationary enemy holding a fresh permit.
func addEnemy(t *testing.T, s *Session, r core.Rect) world.Handle {
	t.Helper()
	permit, ok := s.limiter.TryAcquire()
	if !ok {
		t.Fatal("no free permit for test enemy")
	}
	var h world.Handle
	s.world.Do(func(st *world.State) {
		h = st.Enemies.Insert(world.NewEnemy(r, 1, permit))
	})
	return h
}

// setPlayer moves the player and sets its vertical velocity.
func setPlayer(s *Session, x, y int, velY float64) {
	s.world.Do(func(st *world.State) {
		st.Player.Rect.X = x
		st.Player.Rect.Y = y
		st.Player.VelY = velY
	})
}

func playerOf(s *Session) world.Player {
	var p world.Player
	s.world.Do(func(st *world.State) { p = st.Player })
	return p
}

func liveEnemies(s *Session) int {
	n := 0
	s.world.Do(func(st *world.State) { n = st.Enemies.Len() })
	return n
}

func coinCount(s *Session) int {
	n := 0
	s.world.Do(func(st *world.State) { n = len(st.Coins) })
	return n
}

func input(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

type cfgT = config.PlatformerConfig

// quietConfigWith applies mutate to a quiet config.
func quietConfigWith(mutate func(*cfgT)) cfgT {
	cfg := quietConfig()
	mutate(&cfg)
	return cfg
}
