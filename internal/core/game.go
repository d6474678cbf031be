package core

// RuntimeConfig is what the platform knows when a game starts.
type RuntimeConfig struct {
	ScreenW  int   // terminal columns
	ScreenH  int   // terminal rows
	TickRate int   // main loop ticks per second
	Seed     int64 // 0 lets the platform pick a time-based seed
}

// DefaultConfig returns an 80x24 screen at 60 ticks per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState is the part of a run the platform reacts to.
type GameState struct {
	Score    int
	Lives    int
	GameOver bool // set once; a finished run never resumes
	Paused   bool
}

// StepResult is returned by Game.Step after each tick.
type StepResult struct {
	State GameState
}

// Game is the contract between a simulation and the terminal platform.
// Games contain no Bubble Tea code; the platform handles input mapping,
// timing and terminal output.
type Game interface {
	// ID keys score storage.
	ID() string

	// Title is shown in menus and the HUD.
	Title() string

	// Reset starts a fresh run, discarding any previous one.
	Reset(cfg RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in InputFrame) StepResult

	// Render draws the current frame into dst.
	Render(dst *Screen)

	// State returns the state as of the last tick.
	State() GameState
}
