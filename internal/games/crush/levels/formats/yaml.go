// Package formats provides level file format parsers.
package formats

import (
	"fmt"

	"github.com/vovakirdan/crystal-crush/internal/games/crush/core"
	"gopkg.in/yaml.v3"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID         string            `yaml:"id"`
	Number     int               `yaml:"number"`
	Name       string            `yaml:"name"`
	Moves      int               `yaml:"moves"`
	Size       int               `yaml:"size,omitempty"`
	Colors     int               `yaml:"colors,omitempty"` // Palette size
	Objectives YAMLObjectives    `yaml:"objectives"`
	Stars      []int             `yaml:"stars,omitempty"`
	Layout     []string          `yaml:"layout,omitempty"`
	Metadata   map[string]string `yaml:"metadata,omitempty"`
}

// YAMLObjectives represents the win conditions.
type YAMLObjectives struct {
	Score  int            `yaml:"score,omitempty"`
	Colors map[string]int `yaml:"colors,omitempty"` // Color name to count
	Coated int            `yaml:"coated,omitempty"`
	Sealed int            `yaml:"sealed,omitempty"`
}

// Level is a parsed level file.
type Level struct {
	core.Level
	Metadata map[string]string
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yl.ID == "" {
		return Level{}, fmt.Errorf("level has no id")
	}

	lvl := core.Level{
		ID:     yl.ID,
		Number: yl.Number,
		Name:   yl.Name,
		Moves:  yl.Moves,
		Size:   yl.Size,
		Colors: yl.Colors,
		Objectives: core.Objectives{
			Score:  yl.Objectives.Score,
			Coated: yl.Objectives.Coated,
			Sealed: yl.Objectives.Sealed,
		},
	}

	if len(yl.Objectives.Colors) > 0 {
		lvl.Objectives.Colors = make(map[core.Color]int, len(yl.Objectives.Colors))
		for name, n := range yl.Objectives.Colors {
			c, ok := core.ParseColor(name)
			if !ok {
				return Level{}, fmt.Errorf("level %s: unknown color %q", yl.ID, name)
			}
			lvl.Objectives.Colors[c] = n
		}
	}

	switch len(yl.Stars) {
	case 0:
	case 3:
		copy(lvl.Stars[:], yl.Stars)
	default:
		return Level{}, fmt.Errorf("level %s: stars needs 3 thresholds, got %d", yl.ID, len(yl.Stars))
	}

	if len(yl.Layout) > 0 {
		obstacles, n, err := core.ParseLayout(yl.Layout)
		if err != nil {
			return Level{}, fmt.Errorf("level %s: %w", yl.ID, err)
		}
		if lvl.Size != 0 && lvl.Size != n {
			return Level{}, fmt.Errorf("level %s: size %d does not match %d-row layout", yl.ID, lvl.Size, n)
		}
		lvl.Size = n
		lvl.Obstacles = obstacles
	}

	return Level{Level: lvl, Metadata: yl.Metadata}, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
