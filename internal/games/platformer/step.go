package platformer

import (
	"math"
	"time"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/world"
)

// Step advances the simulation by one tick. After the session has ended it
// returns the frozen state without touching the world.
func (s *Session) Step(in core.InputFrame) core.StepResult {
	if !s.active.Load() {
		return core.StepResult{State: s.State()}
	}

	now := s.clock.Now()
	if in.Has(core.ActionPause) {
		s.togglePause(now)
	}
	if s.paused.Load() {
		return core.StepResult{State: s.State()}
	}
	s.ticks.Add(1)

	out := false
	s.world.Do(func(st *world.State) {
		out = s.advance(st, in, now)
	})
	if out {
		s.end(EndLives)
	}

	return core.StepResult{State: s.State()}
}

// advance runs one main-loop tick under the lock.
// Returns true when the player has no lives left.
func (s *Session) advance(st *world.State, in core.InputFrame, now time.Time) bool {
	ph := s.cfg.Physics
	p := &st.Player

	// Integrate
	prevBottom := p.Rect.Bottom()
	p.VelX = in.Horizontal() * ph.MoveSpeed
	p.VelY = math.Min(p.VelY+ph.Gravity, ph.MaxFallSpeed)
	p.Rect.X += p.VelX
	p.Rect.Y += int(p.VelY)

	p.Rect.X = core.Clamp(p.Rect.X, 0, s.cfg.World.Width-p.Rect.W)

	if i, ok := landingPlatform(p.Rect, p.VelY, prevBottom, st.Platforms, ph.LandingTolerance); ok {
		p.Rect.Y = st.Platforms[i].Y - p.Rect.H
		p.VelY = 0
	}

	// Fell out of the world
	if p.Rect.Y > s.cfg.World.Height+s.cfg.World.DeathMargin {
		s.count.falls++
		if s.loseLife(p, now) {
			return true
		}
		p.Rect = s.level.StartRect(p.Rect.W, p.Rect.H)
		p.VelY = 0
	}

	if n := st.RemoveCoinsTouching(p.Rect); n > 0 {
		p.Score += n * s.cfg.Coins.Value
		s.count.coins += n
	}

	if s.resolveEnemies(st, now) {
		return true
	}

	if in.Has(core.ActionJump) && touchingPlatform(p.Rect, st.Platforms, ph.JumpProbe) {
		p.VelY = ph.JumpSpeed
	}
	return false
}

// resolveEnemies applies stomps and contact damage.
// Returns true when the player has no lives left.
func (s *Session) resolveEnemies(st *world.State, now time.Time) bool {
	p := &st.Player
	if p.Invulnerable(now) {
		return false
	}

	ec := s.cfg.Enemies
	// Sampled once: a stomp rebound does not turn later contacts into hits.
	descending := p.VelY > 0
	for _, h := range st.Enemies.Handles() {
		e, ok := st.Enemies.Get(h)
		if !ok || !p.Rect.Intersects(e.Rect) {
			continue
		}

		if descending && p.Rect.Bottom()-e.Rect.Y < ec.StompThreshold {
			st.RemoveEnemy(h)
			p.Score += ec.StompScore
			p.VelY = s.cfg.Physics.JumpSpeed / s.cfg.Physics.StompRebound
			s.count.stomps++
			s.logger.Debug("enemy stomped", "enemy", h, "score", p.Score)
			continue
		}

		// One hit per tick at most
		s.count.hits++
		s.logger.Debug("player hit", "enemy", h, "lives", p.Lives-1)
		return s.loseLife(p, now)
	}
	return false
}

// loseLife costs one life and opens an invulnerability window.
// Returns true when no lives remain.
func (s *Session) loseLife(p *world.Player, now time.Time) bool {
	p.Lives--
	if p.Lives <= 0 {
		p.Lives = 0
		return true
	}
	p.InvulnerableUntil = now.Add(s.cfg.Player.HitInvulnerability)
	return false
}

// togglePause freezes or resumes the world. Time spent paused does not eat
// into an invulnerability window.
func (s *Session) togglePause(now time.Time) {
	if !s.paused.Load() {
		s.pausedAt = now
		s.paused.Store(true)
		return
	}

	gap := now.Sub(s.pausedAt)
	s.world.Do(func(st *world.State) {
		if st.Player.InvulnerableUntil.After(s.pausedAt) {
			st.Player.InvulnerableUntil = st.Player.InvulnerableUntil.Add(gap)
		}
	})
	s.paused.Store(false)
}

// landingPlatform picks the platform r lands on after moving down with
// velocity velY from prevBottom. Only platforms approached from above count:
// the previous-frame bottom must have been at or above top+tolerance.
// The platform whose top is closest to prevBottom wins; ties go to the lowest
// index.
func landingPlatform(r core.Rect, velY float64, prevBottom int, platforms []core.Rect, tolerance int) (int, bool) {
	if velY < 0 {
		return -1, false
	}

	best, bestDist := -1, 0
	for i, p := range platforms {
		if !r.Intersects(p) {
			continue
		}
		if float64(r.Bottom())-velY > float64(p.Y+tolerance) {
			continue
		}
		d := core.Abs(p.Y - prevBottom)
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, best >= 0
}

// touchingPlatform reports whether r rests on a platform, probing probe
// pixels below it.
func touchingPlatform(r core.Rect, platforms []core.Rect, probe int) bool {
	below := r.Offset(0, probe)
	for _, p := range platforms {
		if below.Intersects(p) {
			return true
		}
	}
	return false
}

// State returns the current game state.
func (s *Session) State() core.GameState {
	gs := core.GameState{
		GameOver: !s.active.Load(),
		Paused:   s.paused.Load(),
	}
	s.world.Do(func(st *world.State) {
		gs.Score = st.Player.Score
		gs.Lives = st.Player.Lives
	})
	return gs
}
