package config

import (
	"fmt"

	"github.com/vovakirdan/crystal-crush/internal/games/crush/core"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset parses a preset name. The empty string is normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyHard:
		return DifficultyHard, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// MovesDelta returns the moves added to every level for a preset.
func MovesDelta(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 5
	case DifficultyHard:
		return -3
	default:
		return 0
	}
}

// easyPalette is the palette size on easy when the level allows it.
const easyPalette = 5

// ApplyPreset returns lvl adjusted for the preset. Moves never drop below
// one. Easy narrows the palette unless a color objective needs the last
// color.
func ApplyPreset(lvl core.Level, preset DifficultyPreset, rules core.Rules) core.Level {
	lvl.Moves += MovesDelta(preset)
	if lvl.Moves < 1 {
		lvl.Moves = 1
	}

	if preset == DifficultyEasy {
		palette := rules.Colors
		if lvl.Colors > 0 {
			palette = lvl.Colors
		}
		if palette > easyPalette && !needsColorBeyond(lvl, easyPalette) {
			lvl.Colors = easyPalette
		}
	}
	return lvl
}

func needsColorBeyond(lvl core.Level, palette int) bool {
	for c, n := range lvl.Objectives.Colors {
		if n > 0 && int(c) >= palette {
			return true
		}
	}
	return false
}
