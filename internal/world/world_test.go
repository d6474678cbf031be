package world

import (
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/limiter"
)

func TestRemoveEnemyReleasesPermitOnce(t *testing.T) {
	lim := limiter.New(2)
	w := New(labPlatforms(), Player{}, rand.New(rand.NewSource(1)))

	p, _ := lim.TryAcquire()
	var h Handle
	w.Do(func(s *State) {
		h = s.Enemies.Insert(NewEnemy(core.NewRect(0, 0, 48, 48), 1, p))
	})

	var first, second bool
	w.Do(func(s *State) {
		first = s.RemoveEnemy(h)
		second = s.RemoveEnemy(h)
	})

	if !first || second {
		t.Errorf("RemoveEnemy() = %v then %v, expected true then false", first, second)
	}
	if lim.Available() != 2 {
		t.Errorf("Available() = %d, expected 2", lim.Available())
	}

	// The task's own deferred release must not free a second slot
	p.Release()
	if lim.Available() != 2 {
		t.Errorf("Available() = %d after task release, expected 2", lim.Available())
	}
}

func TestRemoveCoinsTouching(t *testing.T) {
	w := New(labPlatforms(), Player{}, rand.New(rand.NewSource(1)))
	w.Do(func(s *State) {
		s.Coins = []core.Rect{
			core.NewRect(10, 10, 28, 28),
			core.NewRect(100, 100, 28, 28),
			core.NewRect(30, 30, 28, 28),
		}
	})

	var removed int
	w.Do(func(s *State) {
		removed = s.RemoveCoinsTouching(core.NewRect(0, 0, 40, 40))
	})

	snap := w.Snapshot()
	if removed != 2 {
		t.Errorf("removed = %d, expected 2", removed)
	}
	if len(snap.Coins) != 1 || snap.Coins[0].X != 100 {
		t.Errorf("remaining coins = %+v", snap.Coins)
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	w := New(labPlatforms(), Player{Lives: 3}, rand.New(rand.NewSource(1)))
	w.Do(func(s *State) {
		s.Coins = append(s.Coins, core.NewRect(1, 1, 1, 1))
	})

	snap := w.Snapshot()
	snap.Coins[0].X = 99

	again := w.Snapshot()
	if again.Coins[0].X != 1 {
		t.Error("mutating a snapshot leaked into the world")
	}
	if again.Player.Lives != 3 {
		t.Errorf("Player.Lives = %d, expected 3", again.Player.Lives)
	}
}

func TestPlayerInvulnerable(t *testing.T) {
	now := time.Unix(100, 0)
	p := Player{InvulnerableUntil: now.Add(time.Second)}

	if !p.Invulnerable(now) {
		t.Error("expected invulnerable before deadline")
	}
	if p.Invulnerable(now.Add(time.Second)) {
		t.Error("expected vulnerable at deadline")
	}
}

func TestDoSerializesWriters(t *testing.T) {
	w := New(labPlatforms(), Player{}, rand.New(rand.NewSource(1)))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				w.Do(func(s *State) {
					s.Player.Score++
				})
			}
		}()
	}
	wg.Wait()

	if got := w.Snapshot().Player.Score; got != 1600 {
		t.Errorf("Score = %d, expected 1600", got)
	}
}
