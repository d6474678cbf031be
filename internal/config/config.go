// Package config provides YAML-based game configuration loading and
// difficulty management for the platformer.
package config

import "time"

// PlatformerConfig contains all configuration for the platformer.
// Lengths are world pixels; speeds are pixels per tick.
type PlatformerConfig struct {
	World      WorldConfig      `yaml:"world"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Player     PlayerConfig     `yaml:"player"`
	Enemies    EnemyConfig      `yaml:"enemies"`
	Coins      CoinConfig       `yaml:"coins"`
	Input      InputConfig      `yaml:"input"`
	Assets     AssetConfig      `yaml:"assets"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	EndDelay   time.Duration    `yaml:"end_delay"` // How long GAME OVER stays up
}

// WorldConfig defines the playfield.
type WorldConfig struct {
	Width       int `yaml:"width"`
	Height      int `yaml:"height"`
	DeathMargin int `yaml:"death_margin"` // Fall distance below the world that costs a life
}

// PhysicsConfig defines player physics.
type PhysicsConfig struct {
	Gravity          float64 `yaml:"gravity"`
	MaxFallSpeed     float64 `yaml:"max_fall_speed"`
	MoveSpeed        int     `yaml:"move_speed"`
	JumpSpeed        float64 `yaml:"jump_speed"`        // Negative is up
	StompRebound     float64 `yaml:"stomp_rebound"`     // Jump speed is divided by this after a stomp
	JumpProbe        int     `yaml:"jump_probe"`        // Downward probe distance for ground checks
	LandingTolerance int     `yaml:"landing_tolerance"` // Slack when deciding a landing came from above
}

// PlayerConfig defines the player entity.
type PlayerConfig struct {
	Width                int           `yaml:"width"`
	Height               int           `yaml:"height"`
	Lives                int           `yaml:"lives"`
	SpawnInvulnerability time.Duration `yaml:"spawn_invulnerability"`
	HitInvulnerability   time.Duration `yaml:"hit_invulnerability"`
}

// EnemyConfig defines enemy admission, spawning and patrol.
type EnemyConfig struct {
	Max              int           `yaml:"max"`
	Initial          int           `yaml:"initial"`
	Width            int           `yaml:"width"`
	Height           int           `yaml:"height"`
	Speeds           []int         `yaml:"speeds"`
	PatrolInterval   time.Duration `yaml:"patrol_interval"`
	AcquireWait      time.Duration `yaml:"acquire_wait"`
	Backoff          time.Duration `yaml:"backoff"`
	SpawnDelayMin    time.Duration `yaml:"spawn_delay_min"`
	SpawnDelayMax    time.Duration `yaml:"spawn_delay_max"`
	SpawnAttempts    int           `yaml:"spawn_attempts"`
	AvoidWidth       int           `yaml:"avoid_width"`
	AvoidHeight      int           `yaml:"avoid_height"`
	StompThreshold   int           `yaml:"stomp_threshold"`
	StompScore       int           `yaml:"stomp_score"`
	EdgeMargin       int           `yaml:"edge_margin"`
	SupportTolerance int           `yaml:"support_tolerance"`
	RecoveryNudge    int           `yaml:"recovery_nudge"`
}

// CoinConfig defines coin seeding and respawn.
type CoinConfig struct {
	Initial         int           `yaml:"initial"`
	Min             int           `yaml:"min"`
	Size            int           `yaml:"size"`
	Hover           int           `yaml:"hover"`
	Value           int           `yaml:"value"`
	RespawnInterval time.Duration `yaml:"respawn_interval"`
}

// InputConfig defines how terminal key presses become held input.
type InputConfig struct {
	// HoldTicks is how long one left/right press keeps moving the player.
	// Terminals report presses and repeats, never releases.
	HoldTicks int `yaml:"hold_ticks"`
}

// AssetConfig names the sprite image files.
type AssetConfig struct {
	Dir        string `yaml:"dir"`
	Player     string `yaml:"player"`
	Enemy      string `yaml:"enemy"`
	Coin       string `yaml:"coin"`
	Background string `yaml:"background"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines how parameters scale with difficulty.
type ScalingConfig struct {
	// SpawnDelayReduction is the fraction of the spawn delay window removed
	// at full difficulty (0.0 to 1.0).
	SpawnDelayReduction float64 `yaml:"spawn_delay_reduction"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI value into a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}
