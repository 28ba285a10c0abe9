package core

import "time"

// RuntimeConfig contains configuration passed to the game at initialization.
// The game uses this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// TickDuration returns the simulated time covered by one Step.
func (c RuntimeConfig) TickDuration() time.Duration {
	rate := c.TickRate
	if rate <= 0 {
		rate = 60
	}
	return time.Second / time.Duration(rate)
}

// GameState summarizes the game for the platform layer.
type GameState struct {
	Score    int  // Correct matches so far
	Mistakes int  // Incorrect selections so far
	Round    int  // 1-based round number, 0 before the game starts
	GameOver bool // Whether every target has been found
	Paused   bool // Whether the simulation is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
