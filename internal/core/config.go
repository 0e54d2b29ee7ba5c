package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and pacing.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay

	// StartLevel is the level to open first. 0 means the highest level the
	// player has reached.
	StartLevel int

	// MaxLevel is the highest level the player has opened so far.
	MaxLevel int

	// Sound reports whether sound effects are enabled.
	Sound bool
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
		MaxLevel: 1,
		Sound:    true,
	}
}

// TickSeconds returns the duration of one tick in seconds.
func (c RuntimeConfig) TickSeconds() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60
	}
	return 1.0 / float64(c.TickRate)
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Levels solved this session
	Level    int  // Level currently on screen
	GameOver bool // No more levels, or levels failed to load
	Paused   bool // In-game menu or settings open
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and anything the platform must act on.
type StepResult struct {
	State   GameState
	Intents []Intent
	Sounds  []Sound
}

// Emit appends an intent to the result.
func (r *StepResult) Emit(in Intent) {
	r.Intents = append(r.Intents, in)
}

// Play appends a sound to the result.
func (r *StepResult) Play(s Sound) {
	r.Sounds = append(r.Sounds, s)
}
