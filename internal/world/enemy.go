package world

import "github.com/vovakirdan/tui-platformer/internal/core"

// PatrolParams tunes enemy patrol movement, in pixels.
type PatrolParams struct {
	SupportTolerance int // max distance between enemy bottom and platform top
	EdgeMargin       int // distance from a platform edge that triggers a bounce
	RecoveryNudge    int // upward drift per tick when nothing supports the enemy
}

// Patrol advances the enemy one tick along its platform.
// The enemy reverses when it reaches an edge margin while moving toward that
// edge. Without a supporting platform it drifts upward, never above y=0.
func (e *Enemy) Patrol(platforms []core.Rect, pp PatrolParams) {
	e.Rect.X += e.VX

	support, ok := SupportingPlatform(e.Rect, platforms, pp.SupportTolerance)
	if !ok {
		e.Rect.Y = core.Max(0, e.Rect.Y-pp.RecoveryNudge)
		return
	}

	atLeft := e.Rect.X < support.X+pp.EdgeMargin
	atRight := e.Rect.Right() > support.Right()-pp.EdgeMargin
	if (e.VX < 0 && atLeft) || (e.VX > 0 && atRight) {
		e.VX = -e.VX
	}
}

// SupportingPlatform returns the first platform r stands on: its bottom is
// within tolerance of the platform top and its center is over the platform.
func SupportingPlatform(r core.Rect, platforms []core.Rect, tolerance int) (core.Rect, bool) {
	cx := r.CenterX()
	for _, p := range platforms {
		if core.Abs(r.Bottom()-p.Y) > tolerance {
			continue
		}
		if cx < p.X || cx > p.Right() {
			continue
		}
		return p, true
	}
	return core.Rect{}, false
}
