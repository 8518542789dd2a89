package core

// RuntimeConfig contains the parameters a platform passes to a gameplay
// session: detected terminal size, frame rate and RNG seed.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second; 0 defers to the game config tick
	Seed     int64 // RNG seed; 0 means seed from the clock
}

// DefaultConfig returns a RuntimeConfig for a classic 80x24 terminal.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 0,
		Seed:     0,
	}
}

// TickMS converts TickRate to a frame interval in milliseconds.
// Returns 0 when TickRate defers to the game config.
func (c RuntimeConfig) TickMS() int {
	if c.TickRate <= 0 {
		return 0
	}
	return max(1, 1000/c.TickRate)
}
