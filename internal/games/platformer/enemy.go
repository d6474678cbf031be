package platformer

import (
	"time"

	"github.com/vovakirdan/tui-platformer/internal/limiter"
	"github.com/vovakirdan/tui-platformer/internal/world"
)

// runEnemy starts the patrol goroutine for the enemy behind h.
// The goroutine owns permit: it is released on every exit path, after which a
// release from the stomp path is a no-op.
func (s *Session) runEnemy(h world.Handle, permit *limiter.Permit) {
	s.goTask("enemy "+h.String(), func() {
		defer permit.Release()
		s.patrolLoop(h)
	})
}

// patrolLoop moves the enemy every patrol interval until the session ends
// or the enemy is removed.
func (s *Session) patrolLoop(h world.Handle) {
	ticker := time.NewTicker(s.cfg.Enemies.PatrolInterval)
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

		alive := true
		s.world.Do(func(st *world.State) {
			e, ok := st.Enemies.Get(h)
			if !ok {
				alive = false
				return
			}
			e.Patrol(st.Platforms, s.patrol)
		})
		if !alive {
			s.logger.Debug("enemy task exiting", "enemy", h)
			return
		}
	}
}

// placeEnemy inserts a new enemy away from the player. Caller holds the lock.
func (s *Session) placeEnemy(st *world.State, permit *limiter.Permit) world.Handle {
	rect := world.SafeEnemyRect(st.RNG, st.Platforms, st.Player.Rect, s.placement)
	speeds := s.cfg.Enemies.Speeds
	vx := speeds[st.RNG.Intn(len(speeds))]
	return st.Enemies.Insert(world.NewEnemy(rect, vx, permit))
}
