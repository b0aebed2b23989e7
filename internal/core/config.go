package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Ticks per second, drives animations (default 60)
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

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score     int    // Running score
	Heap      int    // Largest single merge so far
	Goal      int    // Current goal threshold
	GameOver  bool   // Whether the game has ended
	EndReason string // Machine-readable end reason, empty while playing
	Paused    bool   // Whether the game is paused
	Busy      bool   // An animation is in flight; input is ignored
	Session   string // Identifies the current round, changes on restart
}

// StepResult is returned by Game.Step() after each tick.
type StepResult struct {
	State GameState
}
