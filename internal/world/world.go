// Package world holds the shared mutable state of a platformer session:
// platforms, coins, enemies and the player, guarded by a single lock.
package world

import (
	"math/rand"
	"sync"
	"time"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/limiter"
)

// Player is the single player-controlled entity.
// Only the main loop mutates it.
type Player struct {
	Rect              core.Rect
	VelX              int
	VelY              float64
	Lives             int
	Score             int
	InvulnerableUntil time.Time
}

// Invulnerable reports whether enemy contact is ignored at now.
func (p Player) Invulnerable(now time.Time) bool {
	return now.Before(p.InvulnerableUntil)
}

// Enemy is a patrolling hazard. It owns one limiter permit for its lifetime.
type Enemy struct {
	Rect   core.Rect
	VX     int
	permit *limiter.Permit
}

// NewEnemy creates an enemy that holds permit until it is removed.
func NewEnemy(rect core.Rect, vx int, permit *limiter.Permit) Enemy {
	return Enemy{Rect: rect, VX: vx, permit: permit}
}

// State is the world content. Access it only inside World.Do.
type State struct {
	Platforms []core.Rect // index 0 is the ground
	Coins     []core.Rect
	Enemies   Arena[Enemy]
	Player    Player

	// RNG drives spawn placement and timing. Guarded by the world lock.
	RNG *rand.Rand
}

// RemoveEnemy deletes the enemy behind h and frees its permit.
// Returns false if the enemy was already gone.
func (s *State) RemoveEnemy(h Handle) bool {
	e, ok := s.Enemies.Remove(h)
	if !ok {
		return false
	}
	e.permit.Release()
	return true
}

// RemoveCoinsTouching deletes every coin overlapping r and returns how many
// were removed.
func (s *State) RemoveCoinsTouching(r core.Rect) int {
	kept := s.Coins[:0]
	removed := 0
	for _, c := range s.Coins {
		if r.Intersects(c) {
			removed++
			continue
		}
		kept = append(kept, c)
	}
	s.Coins = kept
	return removed
}

// World wraps State with the one lock every task shares.
type World struct {
	mu    sync.Mutex
	state State
}

// New creates a world over a fixed set of platforms.
func New(platforms []core.Rect, player Player, rng *rand.Rand) *World {
	plats := make([]core.Rect, len(platforms))
	copy(plats, platforms)
	return &World{
		state: State{
			Platforms: plats,
			Player:    player,
			RNG:       rng,
		},
	}
}

// Do runs fn while holding the world lock.
// fn must not block or call back into the World.
func (w *World) Do(fn func(*State)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fn(&w.state)
}

// Snapshot is a lock-free copy of everything a renderer needs.
type Snapshot struct {
	Platforms []core.Rect
	Coins     []core.Rect
	Enemies   []core.Rect
	Player    Player
}

// Snapshot copies the current state under the lock.
func (w *World) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	snap := Snapshot{
		// Platforms are never mutated after New, so sharing is safe.
		Platforms: w.state.Platforms,
		Coins:     make([]core.Rect, len(w.state.Coins)),
		Enemies:   make([]core.Rect, 0, w.state.Enemies.Len()),
		Player:    w.state.Player,
	}
	copy(snap.Coins, w.state.Coins)
	for _, e := range w.state.Enemies.Values() {
		snap.Enemies = append(snap.Enemies, e.Rect)
	}
	return snap
}
