package world

import (
	"math/rand"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// RandBetween returns a uniform integer in [lo, hi]. If hi < lo it returns lo.
func RandBetween(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}

// Spawnable returns the platforms entities may spawn on: every platform
// except the ground, or the ground alone if it is the only one.
func Spawnable(platforms []core.Rect) []core.Rect {
	if len(platforms) <= 1 {
		return platforms
	}
	return platforms[1:]
}

// CoinOnPlatform places a size x size coin above p, hover pixels over its
// surface and at least 10 pixels from either edge.
func CoinOnPlatform(rng *rand.Rand, p core.Rect, size, hover int) core.Rect {
	x := RandBetween(rng, p.X+10, p.Right()-10-size)
	return core.NewRect(x, p.Y-size-hover, size, size)
}

// EnemyPlacement describes how enemies are placed away from the player.
type EnemyPlacement struct {
	W, H     int // enemy size
	AvoidW   int // horizontal growth of the player's keep-out box
	AvoidH   int // vertical growth of the player's keep-out box
	Attempts int // random tries before using the fallback spot
}

// SafeEnemyRect picks a resting spot on a random spawnable platform that does
// not overlap avoid inflated by the placement's keep-out margins. After
// Attempts misses it returns a fixed spot at the left of the first spawnable
// platform.
func SafeEnemyRect(rng *rand.Rand, platforms []core.Rect, avoid core.Rect, pl EnemyPlacement) core.Rect {
	candidates := Spawnable(platforms)
	if len(candidates) == 0 {
		return core.NewRect(0, 0, pl.W, pl.H)
	}

	keepOut := avoid.Inflate(pl.AvoidW, pl.AvoidH)
	for i := 0; i < pl.Attempts; i++ {
		p := candidates[rng.Intn(len(candidates))]
		x := RandBetween(rng, p.X+8, p.Right()-pl.W)
		r := core.NewRect(x, p.Y-pl.H, pl.W, pl.H)
		if !r.Intersects(keepOut) {
			return r
		}
	}

	return core.NewRect(20, candidates[0].Y-pl.H, pl.W, pl.H)
}
