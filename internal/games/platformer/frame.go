package platformer

import (
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/world"
)

// blinkPeriodMs is the half-period of the invulnerability blink.
const blinkPeriodMs = 200

// HUD holds the scalars shown above the playfield.
type HUD struct {
	Level       string
	Lives       int
	Score       int
	Tasks       int // session goroutines plus the main loop
	Enemies     int
	FreePermits int
	Paused      bool
	GameOver    bool
}

// Frame is everything a renderer needs for one tick, copied out of the
// world so drawing never holds the lock.
type Frame struct {
	Width, Height int // world size in pixels
	Platforms     []core.Rect
	Coins         []core.Rect
	Enemies       []core.Rect
	Player        core.Rect
	Blink         bool // draw the player dimmed this frame
	HUD           HUD
}

// Frame snapshots the world for rendering.
func (s *Session) Frame() Frame {
	snap := s.world.Snapshot()
	now := s.clock.Now()

	return Frame{
		Width:     s.cfg.World.Width,
		Height:    s.cfg.World.Height,
		Platforms: snap.Platforms,
		Coins:     snap.Coins,
		Enemies:   snap.Enemies,
		Player:    snap.Player.Rect,
		Blink:     blink(snap.Player, now.UnixMilli()),
		HUD: HUD{
			Level:       s.level.Title,
			Lives:       snap.Player.Lives,
			Score:       snap.Player.Score,
			Tasks:       s.Tasks() + 1,
			Enemies:     len(snap.Enemies),
			FreePermits: s.limiter.Available(),
			Paused:      s.paused.Load(),
			GameOver:    !s.active.Load(),
		},
	}
}

func blink(p world.Player, nowMs int64) bool {
	if nowMs >= p.InvulnerableUntil.UnixMilli() {
		return false
	}
	return (nowMs/blinkPeriodMs)%2 == 0
}
