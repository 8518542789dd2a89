// Package config provides YAML-based configuration loading and difficulty
// presets for the breakout engine.
package config

// BreakoutConfig contains all tunable gameplay, physics and layout values.
type BreakoutConfig struct {
	Gameplay BreakoutGameplay `yaml:"gameplay"`
	Paddle   BreakoutPaddle   `yaml:"paddle"`
	Physics  BreakoutPhysics  `yaml:"physics"`
	Layout   BreakoutLayout   `yaml:"layout"`
	Level    string           `yaml:"level"` // Built-in level ID
}

// BreakoutGameplay defines session rules and worker pacing.
type BreakoutGameplay struct {
	Lives        int  `yaml:"lives"`
	TickMS       int  `yaml:"tick_ms"`        // Frame clock interval
	InputGraceMS int  `yaml:"input_grace_ms"` // Idle time before paddle intent resets
	InputPollMS  int  `yaml:"input_poll_ms"`  // Sleep between keyboard polls
	PaddleSpeed  int  `yaml:"paddle_speed"`   // Cells per frame
	EndScreen    bool `yaml:"end_screen"`     // Show win/loss screen before returning
}

// BreakoutPaddle defines paddle geometry.
type BreakoutPaddle struct {
	Width int `yaml:"width"`
}

// BreakoutPhysics defines ball launch, bounce shaping and speed ramp.
type BreakoutPhysics struct {
	LaunchVX   float64     `yaml:"launch_vx"` // Magnitude; sign is randomized
	LaunchVY   float64     `yaml:"launch_vy"`
	MinVX      float64     `yaml:"min_vx"` // Angle floor, horizontal
	MinVY      float64     `yaml:"min_vy"` // Angle floor, vertical
	PaddleGain float64     `yaml:"paddle_gain"`
	SpeedMin   float64     `yaml:"speed_min"`
	SpeedMax   float64     `yaml:"speed_max"`
	SpeedSteps []SpeedStep `yaml:"speed_steps"`
}

// SpeedStep raises the ball speed target once the score reaches Score.
type SpeedStep struct {
	Score int     `yaml:"score"`
	Speed float64 `yaml:"speed"`
}

// BreakoutLayout defines the playfield and brick grid geometry.
type BreakoutLayout struct {
	FieldW int `yaml:"field_w"` // Outer frame width including border
	FieldH int `yaml:"field_h"` // Outer frame height including border
	Cols   int `yaml:"cols"`
	GapX   int `yaml:"gap_x"`
	GapY   int `yaml:"gap_y"`
	BrickH int `yaml:"brick_h"`
}

// Validate clamps values that would make the engine misbehave and fills
// zero values from the defaults.
func (c *BreakoutConfig) Validate() {
	d := DefaultBreakoutConfig()

	if c.Gameplay.Lives <= 0 {
		c.Gameplay.Lives = d.Gameplay.Lives
	}
	if c.Gameplay.TickMS <= 0 {
		c.Gameplay.TickMS = d.Gameplay.TickMS
	}
	c.Gameplay.TickMS = clampI(c.Gameplay.TickMS, 16, 100)
	if c.Gameplay.InputGraceMS <= 0 {
		c.Gameplay.InputGraceMS = d.Gameplay.InputGraceMS
	}
	if c.Gameplay.InputPollMS <= 0 {
		c.Gameplay.InputPollMS = d.Gameplay.InputPollMS
	}
	if c.Gameplay.PaddleSpeed <= 0 {
		c.Gameplay.PaddleSpeed = d.Gameplay.PaddleSpeed
	}
	if c.Paddle.Width <= 0 {
		c.Paddle.Width = d.Paddle.Width
	}

	p := &c.Physics
	if p.LaunchVX == 0 {
		p.LaunchVX = d.Physics.LaunchVX
	}
	if p.LaunchVY == 0 {
		p.LaunchVY = d.Physics.LaunchVY
	}
	if p.LaunchVY > 0 {
		p.LaunchVY = -p.LaunchVY
	}
	if p.MinVX <= 0 {
		p.MinVX = d.Physics.MinVX
	}
	if p.MinVY <= 0 {
		p.MinVY = d.Physics.MinVY
	}
	if p.PaddleGain <= 0 {
		p.PaddleGain = d.Physics.PaddleGain
	}
	if p.SpeedMin <= 0 {
		p.SpeedMin = d.Physics.SpeedMin
	}
	if p.SpeedMax < p.SpeedMin {
		p.SpeedMax = max(p.SpeedMin, d.Physics.SpeedMax)
	}
	// The ball may cover at most one row per frame or it can skip the
	// paddle row.
	if maxVY := max(-p.LaunchVY, p.MinVY); p.SpeedMax*maxVY > 1 {
		p.SpeedMax = 1 / maxVY
		p.SpeedMin = min(p.SpeedMin, p.SpeedMax)
	}

	l := &c.Layout
	if l.FieldW < 20 {
		l.FieldW = d.Layout.FieldW
	}
	if l.FieldH < 12 {
		l.FieldH = d.Layout.FieldH
	}
	if l.Cols <= 0 {
		l.Cols = d.Layout.Cols
	}
	if l.GapX < 0 {
		l.GapX = 0
	}
	if l.GapY < 0 {
		l.GapY = 0
	}
	if l.BrickH <= 0 {
		l.BrickH = d.Layout.BrickH
	}

	if c.Level == "" {
		c.Level = d.Level
	}
}

func clampI(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
