// Package config provides YAML-based configuration loading and difficulty
// presets for Crystal Crush.
package config

import (
	"time"

	"github.com/vovakirdan/crystal-crush/internal/games/crush/core"
)

// CrushConfig contains all tunables of the game.
type CrushConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Generation GenerationConfig `yaml:"generation"`
	Cascade    CascadeConfig    `yaml:"cascade"`
	Pacing     PacingConfig     `yaml:"pacing"`
	Lives      LivesConfig      `yaml:"lives"`
}

// BoardConfig defines the default board for levels that do not set one.
type BoardConfig struct {
	Size   int `yaml:"size"`
	Colors int `yaml:"colors"`
}

// ScoringConfig defines points per cleared element before the combo multiplier.
type ScoringConfig struct {
	Base    int `yaml:"base"`
	Special int `yaml:"special"`
	Coated  int `yaml:"coated"`
	Sealed  int `yaml:"sealed"`
}

// GenerationConfig defines board generation limits.
type GenerationConfig struct {
	MaxAttempts int `yaml:"max_attempts"`
}

// CascadeConfig defines cascade limits.
type CascadeConfig struct {
	MaxRounds int `yaml:"max_rounds"`
}

// PacingConfig defines how long each playback step stays on screen.
type PacingConfig struct {
	Swap   time.Duration `yaml:"swap"`
	Clear  time.Duration `yaml:"clear"`
	Fall   time.Duration `yaml:"fall"`
	Effect time.Duration `yaml:"effect"`
}

// LivesConfig defines the lives gate.
type LivesConfig struct {
	Max   int           `yaml:"max"`
	Regen time.Duration `yaml:"regen"`
}

// Rules converts the config into engine rules.
func (c CrushConfig) Rules() core.Rules {
	return core.Rules{
		Size:   c.Board.Size,
		Colors: c.Board.Colors,
		Scoring: core.Scoring{
			Base:    c.Scoring.Base,
			Special: c.Scoring.Special,
			Coated:  c.Scoring.Coated,
			Sealed:  c.Scoring.Sealed,
		},
		MaxAttempts:      c.Generation.MaxAttempts,
		MaxCascadeRounds: c.Cascade.MaxRounds,
	}
}

// Validate replaces unusable values with defaults and clamps the rest.
func (c *CrushConfig) Validate() {
	def := DefaultCrushConfig()

	if c.Board.Size < 3 {
		c.Board.Size = def.Board.Size
	}
	if c.Board.Colors < 3 || c.Board.Colors > int(core.ColorCount) {
		c.Board.Colors = clamp(c.Board.Colors, 3, int(core.ColorCount))
	}
	if c.Scoring.Base < 0 {
		c.Scoring.Base = def.Scoring.Base
	}
	if c.Scoring.Special < 0 {
		c.Scoring.Special = def.Scoring.Special
	}
	if c.Scoring.Coated < 0 {
		c.Scoring.Coated = def.Scoring.Coated
	}
	if c.Scoring.Sealed < 0 {
		c.Scoring.Sealed = def.Scoring.Sealed
	}
	if c.Generation.MaxAttempts <= 0 {
		c.Generation.MaxAttempts = def.Generation.MaxAttempts
	}
	if c.Cascade.MaxRounds <= 0 {
		c.Cascade.MaxRounds = def.Cascade.MaxRounds
	}
	if c.Pacing.Swap < 0 {
		c.Pacing.Swap = 0
	}
	if c.Pacing.Clear < 0 {
		c.Pacing.Clear = 0
	}
	if c.Pacing.Fall < 0 {
		c.Pacing.Fall = 0
	}
	if c.Pacing.Effect < 0 {
		c.Pacing.Effect = 0
	}
	if c.Lives.Max <= 0 {
		c.Lives.Max = def.Lives.Max
	}
	if c.Lives.Regen <= 0 {
		c.Lives.Regen = def.Lives.Regen
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
