package platformer

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-platformer/internal/limiter"
	"github.com/vovakirdan/tui-platformer/internal/world"
)

// enemySpawner keeps admitting enemies while the session is active.
// A full limiter costs one backoff before the next attempt.
func (s *Session) enemySpawner() {
	ec := s.cfg.Enemies
	for s.active.Load() {
		if s.paused.Load() {
			if !sleepCtx(s.ctx, ec.Backoff) {
				return
			}
			continue
		}

		permit, err := s.limiter.Acquire(s.ctx, ec.AcquireWait)
		if errors.Is(err, limiter.ErrBusy) {
			if !sleepCtx(s.ctx, ec.Backoff) {
				return
			}
			continue
		}
		if err != nil {
			return
		}

		var (
			h     world.Handle
			live  int
			delay time.Duration
		)
		s.world.Do(func(st *world.State) {
			h = s.placeEnemy(st, permit)
			live = st.Enemies.Len()
			lo, hi := s.difficulty.SpawnWindow(ec.SpawnDelayMin, ec.SpawnDelayMax, st.Player.Score, int(s.ticks.Load()))
			delay = randDuration(st.RNG, lo, hi)
		})
		s.runEnemy(h, permit)
		s.logger.Debug("enemy spawned", "enemy", h, "live", live, "next", delay)

		if !sleepCtx(s.ctx, delay) {
			return
		}
	}
}

// coinSpawner tops coins up by one per interval while below the minimum.
func (s *Session) coinSpawner() {
	ticker := time.NewTicker(s.cfg.Coins.RespawnInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
		}

		if s.paused.Load() {
			continue
		}
		s.world.Do(func(st *world.State) {
			if len(st.Coins) < s.cfg.Coins.Min {
				s.addCoin(st)
			}
		})
	}
}

// addCoin places one coin on a random spawnable platform. Caller holds the lock.
func (s *Session) addCoin(st *world.State) {
	plats := world.Spawnable(st.Platforms)
	p := plats[st.RNG.Intn(len(plats))]
	st.Coins = append(st.Coins, world.CoinOnPlatform(st.RNG, p, s.cfg.Coins.Size, s.cfg.Coins.Hover))
}

// randDuration returns a uniform duration in [lo, hi].
func randDuration(rng *rand.Rand, lo, hi time.Duration) time.Duration {
	if hi <= lo {
		return lo
	}
	return lo + time.Duration(rng.Int63n(int64(hi-lo)+1))
}

// sleepCtx waits for d or until ctx ends. Reports whether the full wait elapsed.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
