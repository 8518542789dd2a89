package config

import (
	_ "embed"
)

//go:embed defaults/breakout.yaml
var defaultBreakoutYAML []byte

// DefaultBreakoutConfig returns the hardcoded fallback configuration.
// It mirrors defaults/breakout.yaml.
func DefaultBreakoutConfig() BreakoutConfig {
	return BreakoutConfig{
		Gameplay: BreakoutGameplay{
			Lives:        3,
			TickMS:       48,
			InputGraceMS: 50,
			InputPollMS:  3,
			PaddleSpeed:  2,
			EndScreen:    true,
		},
		Paddle: BreakoutPaddle{
			Width: 9,
		},
		Physics: BreakoutPhysics{
			LaunchVX:   0.25,
			LaunchVY:   -0.5,
			MinVX:      0.2,
			MinVY:      0.4,
			PaddleGain: 1.2,
			SpeedMin:   0.5,
			SpeedMax:   2.0,
			SpeedSteps: []SpeedStep{
				{Score: 100, Speed: 1.2},
				{Score: 200, Speed: 1.4},
				{Score: 400, Speed: 1.6},
			},
		},
		Layout: BreakoutLayout{
			FieldW: 81,
			FieldH: 25,
			Cols:   14,
			GapX:   1,
			GapY:   1,
			BrickH: 1,
		},
		Level: "classic",
	}
}

// DefaultYAML returns the embedded default YAML, for `config` dumps.
func DefaultYAML() []byte {
	return defaultBreakoutYAML
}
