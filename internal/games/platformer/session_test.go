package platformer

import (
	"context"
	"testing"
	"time"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/world"
)

func TestSessionNeverExceedsCapacity(t *testing.T) {
	s := newTestSession(t, fastConfig(), nil)
	s.Start(context.Background())

	peak := 0
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		n := liveEnemies(s)
		if n > 8 {
			t.Fatalf("live enemies = %d, exceeds 8", n)
		}
		if h := s.limiter.Held(); h > 8 {
			t.Fatalf("held permits = %d, exceeds 8", h)
		}
		if n > peak {
			peak = n
		}
		if peak == 8 {
			break
		}
		time.Sleep(time.Millisecond)
	}
	if peak != 8 {
		t.Errorf("peak live enemies = %d, expected the spawner to fill to 8", peak)
	}

	// 8 enemy tasks + 2 spawners + main loop
	waitFor(t, "every enemy task to start", func() bool { return s.Tasks() == 10 })
	if hud := s.Frame().HUD; hud.Tasks != 11 || hud.FreePermits != 0 {
		t.Errorf("HUD tasks/free = %d/%d, expected 11/0", hud.Tasks, hud.FreePermits)
	}

	s.Stop()
	if s.Tasks() != 0 {
		t.Errorf("tasks after Stop = %d, expected 0", s.Tasks())
	}
	if s.limiter.Held() != 0 {
		t.Errorf("held after Stop = %d, expected 0", s.limiter.Held())
	}
	if n := liveEnemies(s); n != 0 {
		t.Errorf("enemies after Stop = %d, expected 0", n)
	}
}

func TestCoinSpawnerRefillsToMinimum(t *testing.T) {
	cfg := fastConfig()
	cfg.Coins.Initial = 0
	cfg.Enemies.Initial = 0
	cfg.Enemies.Max = 0
	s := newTestSession(t, cfg, nil)
	s.Start(context.Background())

	waitFor(t, "coins to reach the minimum", func() bool { return coinCount(s) >= 5 })

	// Remove some and expect a refill; never above the minimum
	s.world.Do(func(st *world.State) { st.Coins = st.Coins[:2] })
	waitFor(t, "coins to refill", func() bool { return coinCount(s) >= 5 })
	time.Sleep(20 * time.Millisecond)
	if n := coinCount(s); n != 5 {
		t.Errorf("coins = %d, expected exactly 5", n)
	}
}

func TestEnemyTaskExitsAfterRemoval(t *testing.T) {
	cfg := fastConfig()
	cfg.Enemies.Max = 2
	cfg.Enemies.Initial = 2
	cfg.Enemies.Backoff = time.Hour // spawner stays parked after its first miss
	s := newTestSession(t, cfg, nil)
	s.Start(context.Background())

	if got := s.Tasks(); got != 4 {
		t.Fatalf("tasks = %d, expected 2 enemies + 2 spawners", got)
	}
	time.Sleep(50 * time.Millisecond)

	var h world.Handle
	s.world.Do(func(st *world.State) {
		h = st.Enemies.Handles()[0]
		st.RemoveEnemy(h)
	})

	waitFor(t, "enemy task to exit", func() bool { return s.Tasks() == 3 })
	if s.limiter.Held() != 1 {
		t.Errorf("held = %d, expected 1", s.limiter.Held())
	}
}

func TestStompWhileTasksRun(t *testing.T) {
	cfg := fastConfig()
	cfg.Enemies.Max = 1
	cfg.Enemies.Initial = 0
	cfg.Enemies.Backoff = time.Hour
	cfg.Enemies.PatrolInterval = 5 * time.Millisecond
	cfg.Player.SpawnInvulnerability = 0
	cfg.Coins.Initial = 0
	cfg.Coins.Min = 0
	s := newTestSession(t, cfg, nil)
	s.Start(context.Background())

	waitFor(t, "an enemy to spawn", func() bool { return liveEnemies(s) == 1 })
	time.Sleep(50 * time.Millisecond) // let the spawner park on its backoff

	// Teleport above the enemy and stomp it in the same breath
	s.world.Do(func(st *world.State) {
		e := st.Enemies.Values()[0].Rect
		st.Player.Rect.X = e.X
		st.Player.Rect.Y = e.Y + 5 - st.Player.Rect.H
		st.Player.VelY = 3
	})
	res := s.Step(core.NewInputFrame())
	if res.State.Score != 10 {
		t.Fatalf("score = %d, expected a stomp", res.State.Score)
	}

	waitFor(t, "enemy task to exit", func() bool { return s.Tasks() == 2 })
	if s.limiter.Held() != 0 {
		t.Errorf("held = %d, expected the single permit back", s.limiter.Held())
	}
}

func TestStopBeforeStartReleasesPermits(t *testing.T) {
	s := newTestSession(t, quietConfigWith(func(c *cfgT) { c.Enemies.Initial = 4 }), newFakeClock())
	if s.limiter.Held() != 4 {
		t.Fatalf("held = %d, expected 4", s.limiter.Held())
	}
	s.Stop()
	s.Stop()
	if s.limiter.Held() != 0 {
		t.Errorf("held after Stop = %d, expected 0", s.limiter.Held())
	}
	if got := s.Stats().Reason; got != EndQuit {
		t.Errorf("reason = %q, expected %q", got, EndQuit)
	}
}

func TestParentCancelEndsSession(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newTestSession(t, fastConfig(), nil)
	s.Start(ctx)
	cancel()

	select {
	case <-s.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("session did not end after parent cancel")
	}
	if got := s.Stats().Reason; got != EndCancelled {
		t.Errorf("reason = %q, expected %q", got, EndCancelled)
	}

	s.Stop()
	if s.Tasks() != 0 {
		t.Errorf("tasks after Stop = %d, expected 0", s.Tasks())
	}
}

func TestPauseFreezesEnemies(t *testing.T) {
	cfg := fastConfig()
	cfg.Enemies.Max = 1
	cfg.Enemies.Initial = 1
	s := newTestSession(t, cfg, nil)
	s.Start(context.Background())

	s.Step(input(core.ActionPause))
	time.Sleep(10 * time.Millisecond)

	snapshot := func() core.Rect {
		var r core.Rect
		s.world.Do(func(st *world.State) { r = st.Enemies.Values()[0].Rect })
		return r
	}
	before := snapshot()
	time.Sleep(30 * time.Millisecond)
	if after := snapshot(); after != before {
		t.Errorf("enemy moved while paused: %+v -> %+v", before, after)
	}

	s.Step(input(core.ActionPause))
	waitFor(t, "enemy to move after resume", func() bool { return snapshot() != before })
}

func TestStartIsIdempotent(t *testing.T) {
	cfg := fastConfig()
	cfg.Enemies.Initial = 1
	cfg.Enemies.Max = 1
	cfg.Enemies.Backoff = time.Hour
	s := newTestSession(t, cfg, nil)

	s.Start(context.Background())
	s.Start(context.Background())
	if got := s.Tasks(); got != 3 {
		t.Errorf("tasks = %d, expected 3 after double Start", got)
	}
}
