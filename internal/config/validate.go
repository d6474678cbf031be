package config

import (
	"errors"
	"fmt"
)

// Validate reports every setting that would make the simulation misbehave.
func (c PlatformerConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.World.Width > 0 && c.World.Height > 0, "world size must be positive, got %dx%d", c.World.Width, c.World.Height)
	check(c.World.DeathMargin >= 0, "world.death_margin must not be negative")

	check(c.Physics.Gravity > 0, "physics.gravity must be positive")
	check(c.Physics.MaxFallSpeed > 0, "physics.max_fall_speed must be positive")
	check(c.Physics.JumpSpeed < 0, "physics.jump_speed must be negative (up)")
	check(c.Physics.StompRebound > 0, "physics.stomp_rebound must be positive")
	check(c.Physics.JumpProbe > 0, "physics.jump_probe must be positive")

	check(c.Player.Width > 0 && c.Player.Height > 0, "player size must be positive")
	check(c.Player.Width <= c.World.Width, "player is wider than the world")
	check(c.Player.Lives > 0, "player.lives must be at least 1")
	check(c.Player.HitInvulnerability >= 0, "player.hit_invulnerability must not be negative")

	check(c.Enemies.Max >= 0, "enemies.max must not be negative")
	check(c.Enemies.Initial >= 0 && c.Enemies.Initial <= c.Enemies.Max,
		"enemies.initial (%d) must be within [0, enemies.max (%d)]", c.Enemies.Initial, c.Enemies.Max)
	check(c.Enemies.Width > 0 && c.Enemies.Height > 0, "enemy size must be positive")
	check(len(c.Enemies.Speeds) > 0, "enemies.speeds must not be empty")
	for _, v := range c.Enemies.Speeds {
		check(v != 0, "enemies.speeds must not contain 0")
	}
	check(c.Enemies.PatrolInterval > 0, "enemies.patrol_interval must be positive")
	check(c.Enemies.AcquireWait > 0, "enemies.acquire_wait must be positive")
	check(c.Enemies.Backoff >= 0, "enemies.backoff must not be negative")
	check(c.Enemies.SpawnDelayMin >= 0 && c.Enemies.SpawnDelayMin <= c.Enemies.SpawnDelayMax,
		"enemies.spawn_delay_min must be within [0, spawn_delay_max]")
	check(c.Enemies.SpawnAttempts >= 0, "enemies.spawn_attempts must not be negative")

	check(c.Coins.Initial >= 0 && c.Coins.Min >= 0, "coin counts must not be negative")
	check(c.Coins.Size > 0, "coins.size must be positive")
	check(c.Coins.RespawnInterval > 0, "coins.respawn_interval must be positive")

	check(c.Input.HoldTicks > 0, "input.hold_ticks must be positive")
	check(c.EndDelay >= 0, "end_delay must not be negative")

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}
