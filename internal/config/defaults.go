package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/platformer.yaml
var defaultPlatformerYAML []byte

// DefaultPlatformerConfig returns the default platformer configuration.
// It mirrors defaults/platformer.yaml and is used if the embedded file fails
// to parse.
func DefaultPlatformerConfig() PlatformerConfig {
	return PlatformerConfig{
		World: WorldConfig{
			Width:       1000,
			Height:      600,
			DeathMargin: 200,
		},
		Physics: PhysicsConfig{
			Gravity:          0.8,
			MaxFallSpeed:     14,
			MoveSpeed:        5,
			JumpSpeed:        -14,
			StompRebound:     1.6,
			JumpProbe:        2,
			LandingTolerance: 4,
		},
		Player: PlayerConfig{
			Width:                48,
			Height:               72,
			Lives:                3,
			SpawnInvulnerability: 2 * time.Second,
			HitInvulnerability:   1200 * time.Millisecond,
		},
		Enemies: EnemyConfig{
			Max:              8,
			Initial:          5,
			Width:            48,
			Height:           48,
			Speeds:           []int{-2, -1, 1, 2},
			PatrolInterval:   33 * time.Millisecond,
			AcquireWait:      100 * time.Millisecond,
			Backoff:          800 * time.Millisecond,
			SpawnDelayMin:    time.Second,
			SpawnDelayMax:    2500 * time.Millisecond,
			SpawnAttempts:    100,
			AvoidWidth:       140,
			AvoidHeight:      120,
			StompThreshold:   20,
			StompScore:       10,
			EdgeMargin:       8,
			SupportTolerance: 6,
			RecoveryNudge:    2,
		},
		Coins: CoinConfig{
			Initial:         6,
			Min:             5,
			Size:            28,
			Hover:           4,
			Value:           1,
			RespawnInterval: time.Second,
		},
		Input: InputConfig{
			HoldTicks: 8,
		},
		Assets: AssetConfig{
			Dir:        "assets",
			Player:     "player.png",
			Enemy:      "enemy.png",
			Coin:       "coin.png",
			Background: "background.png",
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 200,
			},
			Scaling: ScalingConfig{
				SpawnDelayReduction: 0.6,
			},
		},
		EndDelay: 2 * time.Second,
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultPlatformerYAML
}
