package config

import "math"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown strings yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// ApplyBreakoutPreset modifies the config based on a difficulty preset.
// Normal keeps the loaded values.
func ApplyBreakoutPreset(cfg *BreakoutConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Lives = 5
		cfg.Paddle.Width = 11
		cfg.Gameplay.TickMS = 60
	case DifficultyHard:
		cfg.Gameplay.Lives = 2
		cfg.Paddle.Width = 7
		cfg.Gameplay.TickMS = 36
	case DifficultyFixed:
		// No progression: the ball keeps its launch speed all session.
		cfg.Physics.SpeedSteps = nil
	}
}

// SpeedRamp computes the ball speed target from the score and eases the
// current speed toward it.
type SpeedRamp struct {
	steps    []SpeedStep
	min, max float64
}

// NewSpeedRamp creates a ramp from the physics config.
func NewSpeedRamp(p BreakoutPhysics) *SpeedRamp {
	return &SpeedRamp{steps: p.SpeedSteps, min: p.SpeedMin, max: p.SpeedMax}
}

// Target returns the speed the ball should approach at the given score.
// It never lowers the current speed.
func (r *SpeedRamp) Target(score int, current float64) float64 {
	target := current
	for _, s := range r.steps {
		if score >= s.Score {
			target = math.Max(target, s.Speed)
		}
	}
	return clampF(target, r.min, r.max)
}

// Next clamps the current speed and moves it 10% of the way to the target.
func (r *SpeedRamp) Next(score int, current float64) float64 {
	current = clampF(current, r.min, r.max)
	target := r.Target(score, current)
	return current + 0.10*(target-current)
}

// clampF restricts a float64 to [lo, hi].
func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
