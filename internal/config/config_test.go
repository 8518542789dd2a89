package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var fromYAML BreakoutConfig
	if err := yaml.Unmarshal(DefaultYAML(), &fromYAML); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	want := DefaultBreakoutConfig()

	if fromYAML.Gameplay != want.Gameplay {
		t.Errorf("Gameplay = %+v, expected %+v", fromYAML.Gameplay, want.Gameplay)
	}
	if fromYAML.Paddle != want.Paddle {
		t.Errorf("Paddle = %+v, expected %+v", fromYAML.Paddle, want.Paddle)
	}
	if fromYAML.Layout != want.Layout {
		t.Errorf("Layout = %+v, expected %+v", fromYAML.Layout, want.Layout)
	}
	if fromYAML.Level != want.Level {
		t.Errorf("Level = %q, expected %q", fromYAML.Level, want.Level)
	}
	if len(fromYAML.Physics.SpeedSteps) != len(want.Physics.SpeedSteps) {
		t.Errorf("len(SpeedSteps) = %d, expected %d", len(fromYAML.Physics.SpeedSteps), len(want.Physics.SpeedSteps))
	}
	if fromYAML.Physics.PaddleGain != want.Physics.PaddleGain {
		t.Errorf("PaddleGain = %v, expected %v", fromYAML.Physics.PaddleGain, want.Physics.PaddleGain)
	}
}

func TestLoadBreakoutCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("gameplay:\n  lives: 7\n  tick_ms: 30\npaddle:\n  width: 5\nlevel: pyramid\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadBreakout(path)
	if err != nil {
		t.Fatalf("LoadBreakout() error = %v", err)
	}
	if cfg.Gameplay.Lives != 7 {
		t.Errorf("Lives = %d, expected 7", cfg.Gameplay.Lives)
	}
	if cfg.Gameplay.TickMS != 30 {
		t.Errorf("TickMS = %d, expected 30", cfg.Gameplay.TickMS)
	}
	if cfg.Paddle.Width != 5 {
		t.Errorf("Paddle.Width = %d, expected 5", cfg.Paddle.Width)
	}
	if cfg.Level != "pyramid" {
		t.Errorf("Level = %q, expected %q", cfg.Level, "pyramid")
	}
	// Unset fields are filled by Validate
	if cfg.Layout.Cols != 14 {
		t.Errorf("Layout.Cols = %d, expected 14", cfg.Layout.Cols)
	}
}

func TestLoadBreakoutMissingCustomPath(t *testing.T) {
	cfg, err := LoadBreakout(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("LoadBreakout() of a missing file should return an error")
	}
	if cfg.Gameplay.Lives != 3 {
		t.Errorf("fallback Lives = %d, expected 3", cfg.Gameplay.Lives)
	}
}

func TestLoadBreakoutBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("gameplay: [not, a, map"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadBreakout(path); err == nil {
		t.Error("LoadBreakout() of malformed YAML should return an error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		mut   func(*BreakoutConfig)
		check func(BreakoutConfig) bool
	}{
		{"zero lives", func(c *BreakoutConfig) { c.Gameplay.Lives = 0 }, func(c BreakoutConfig) bool { return c.Gameplay.Lives == 3 }},
		{"tick too fast", func(c *BreakoutConfig) { c.Gameplay.TickMS = 1 }, func(c BreakoutConfig) bool { return c.Gameplay.TickMS == 16 }},
		{"tick too slow", func(c *BreakoutConfig) { c.Gameplay.TickMS = 5000 }, func(c BreakoutConfig) bool { return c.Gameplay.TickMS == 100 }},
		{"downward launch", func(c *BreakoutConfig) { c.Physics.LaunchVY = 0.5 }, func(c BreakoutConfig) bool { return c.Physics.LaunchVY == -0.5 }},
		{"negative gap", func(c *BreakoutConfig) { c.Layout.GapX = -3 }, func(c BreakoutConfig) bool { return c.Layout.GapX == 0 }},
		{"tiny field", func(c *BreakoutConfig) { c.Layout.FieldW = 4 }, func(c BreakoutConfig) bool { return c.Layout.FieldW == 81 }},
		{"speed cap", func(c *BreakoutConfig) { c.Physics.SpeedMax = 10 }, func(c BreakoutConfig) bool { return c.Physics.SpeedMax == 2 }},
		{"empty level", func(c *BreakoutConfig) { c.Level = "" }, func(c BreakoutConfig) bool { return c.Level == "classic" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultBreakoutConfig()
			tt.mut(&cfg)
			cfg.Validate()
			if !tt.check(cfg) {
				t.Errorf("Validate() left %+v", cfg)
			}
		})
	}
}

func TestValidateZeroConfig(t *testing.T) {
	var cfg BreakoutConfig
	cfg.Validate()
	d := DefaultBreakoutConfig()

	// EndScreen is a plain bool and stays false in a zero config
	want := d.Gameplay
	want.EndScreen = false
	if cfg.Gameplay != want {
		t.Errorf("Gameplay = %+v, expected %+v", cfg.Gameplay, want)
	}
	if cfg.Layout != d.Layout {
		t.Errorf("Layout = %+v, expected %+v", cfg.Layout, d.Layout)
	}
}

func TestApplyBreakoutPreset(t *testing.T) {
	tests := []struct {
		preset DifficultyPreset
		lives  int
		width  int
		tick   int
	}{
		{DifficultyEasy, 5, 11, 60},
		{DifficultyNormal, 3, 9, 48},
		{DifficultyHard, 2, 7, 36},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultBreakoutConfig()
			ApplyBreakoutPreset(&cfg, tt.preset)
			if cfg.Gameplay.Lives != tt.lives {
				t.Errorf("Lives = %d, expected %d", cfg.Gameplay.Lives, tt.lives)
			}
			if cfg.Paddle.Width != tt.width {
				t.Errorf("Paddle.Width = %d, expected %d", cfg.Paddle.Width, tt.width)
			}
			if cfg.Gameplay.TickMS != tt.tick {
				t.Errorf("TickMS = %d, expected %d", cfg.Gameplay.TickMS, tt.tick)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if ParsePreset("hard") != DifficultyHard {
		t.Errorf("ParsePreset(hard) = %q", ParsePreset("hard"))
	}
	if ParsePreset("nightmare") != "" {
		t.Errorf("ParsePreset(nightmare) = %q, expected empty", ParsePreset("nightmare"))
	}
}

func TestFixedPresetDisablesRamp(t *testing.T) {
	cfg := DefaultBreakoutConfig()
	ApplyBreakoutPreset(&cfg, DifficultyFixed)
	ramp := NewSpeedRamp(cfg.Physics)
	if got := ramp.Next(1000, 1.0); got != 1.0 {
		t.Errorf("Next() = %v, expected 1.0 with no steps", got)
	}
}

func TestSpeedRamp(t *testing.T) {
	ramp := NewSpeedRamp(DefaultBreakoutConfig().Physics)

	tests := []struct {
		score   int
		current float64
		target  float64
	}{
		{0, 1.0, 1.0},
		{99, 1.0, 1.0},
		{100, 1.0, 1.2},
		{250, 1.0, 1.4},
		{400, 1.0, 1.6},
		{400, 1.9, 1.9}, // never lowers
		{0, 5.0, 2.0},   // clamped
		{0, 0.1, 0.5},   // clamped
	}

	for _, tt := range tests {
		if got := ramp.Target(tt.score, tt.current); got != tt.target {
			t.Errorf("Target(%d, %v) = %v, expected %v", tt.score, tt.current, got, tt.target)
		}
	}
}

func TestSpeedRampConverges(t *testing.T) {
	ramp := NewSpeedRamp(DefaultBreakoutConfig().Physics)
	speed := 1.0
	for range 200 {
		speed = ramp.Next(450, speed)
	}
	if speed < 1.59 || speed > 1.6+1e-9 {
		t.Errorf("speed after many steps = %v, expected ~1.6", speed)
	}

	next := ramp.Next(450, 1.0)
	if next <= 1.0 || next >= 1.6 {
		t.Errorf("Next(450, 1.0) = %v, expected a partial step", next)
	}
}
