package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/crush.yaml
var defaultCrushYAML []byte

// DefaultCrushConfig returns the default configuration.
func DefaultCrushConfig() CrushConfig {
	return CrushConfig{
		Board: BoardConfig{
			Size:   8,
			Colors: 6,
		},
		Scoring: ScoringConfig{
			Base:    10,
			Special: 50,
			Coated:  100,
			Sealed:  200,
		},
		Generation: GenerationConfig{
			MaxAttempts: 100,
		},
		Cascade: CascadeConfig{
			MaxRounds: 200,
		},
		Pacing: PacingConfig{
			Swap:   200 * time.Millisecond,
			Clear:  300 * time.Millisecond,
			Fall:   400 * time.Millisecond,
			Effect: 400 * time.Millisecond,
		},
		Lives: LivesConfig{
			Max:   5,
			Regen: 15 * time.Minute,
		},
	}
}

// DefaultYAML returns the embedded default config file.
func DefaultYAML() []byte {
	return defaultCrushYAML
}
