package core

import "time"

// RuntimeConfig is passed to the game at start. The game adapts its layout
// to the screen size and seeds its engine from Seed.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Ticks per second (default 60)
	Seed     int64 // 0 means the platform picks one from the clock
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// TicksFor converts a duration into whole ticks, at least one.
func (c RuntimeConfig) TicksFor(d time.Duration) int {
	rate := c.TickRate
	if rate <= 0 {
		rate = 60
	}
	ticks := int(d * time.Duration(rate) / time.Second)
	if ticks < 1 {
		ticks = 1
	}
	return ticks
}

// GameState is the status the platform reads after each tick.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the level has ended
	Paused   bool // Whether the game is paused
}
