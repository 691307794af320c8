package core

import (
	"fmt"
	"strings"
)

// Level is the static definition of one puzzle.
type Level struct {
	ID         string
	Number     int
	Name       string
	Moves      int
	Size       int // Board side; 0 uses the engine rules
	Colors     int // Palette size; 0 uses the engine rules
	Objectives Objectives
	Stars      [3]int // Score thresholds; zero derives them
	Obstacles  map[Pos]Obstacle
}

// Validate checks the level against a board of side n and a palette of
// the given size.
func (l Level) Validate(n, palette int) error {
	if l.Moves <= 0 {
		return levelError("NO_MOVES", fmt.Sprintf("level %q has %d moves", l.ID, l.Moves))
	}
	if n < 3 {
		return levelError("BAD_SIZE", fmt.Sprintf("level %q board side %d is below 3", l.ID, n))
	}
	if palette < 3 || palette > int(ColorCount) {
		return levelError("BAD_PALETTE", fmt.Sprintf("level %q uses %d colors", l.ID, palette))
	}
	if l.Objectives.Empty() {
		return levelError("NO_OBJECTIVES", fmt.Sprintf("level %q has no objectives", l.ID))
	}

	sealed, coated := 0, 0
	for p, o := range l.Obstacles {
		if p.Row < 0 || p.Row >= n || p.Col < 0 || p.Col >= n {
			return levelError("OBSTACLE_OUT_OF_BOUNDS", fmt.Sprintf("level %q obstacle at %s", l.ID, p))
		}
		switch o {
		case ObstacleSealed:
			sealed++
		case ObstacleCoated:
			coated++
		}
	}
	if l.Objectives.Sealed > sealed {
		return levelError("UNREACHABLE_SEALED", fmt.Sprintf("level %q wants %d sealed cells, layout has %d", l.ID, l.Objectives.Sealed, sealed))
	}
	if l.Objectives.Coated > coated {
		return levelError("UNREACHABLE_COATED", fmt.Sprintf("level %q wants %d coated cells, layout has %d", l.ID, l.Objectives.Coated, coated))
	}
	for c := range l.Objectives.Colors {
		if int(c) >= palette {
			return levelError("UNKNOWN_COLOR", fmt.Sprintf("level %q collects %s outside the palette", l.ID, c))
		}
	}
	return nil
}

// ParseLayout reads an obstacle layout, one string per row with
// space-separated cells: '.' plain, 'j' coated, 'X' sealed.
// Returns the obstacles and the board side.
func ParseLayout(rows []string) (map[Pos]Obstacle, int, error) {
	obstacles := make(map[Pos]Obstacle)
	n := len(rows)
	for r, row := range rows {
		fields := strings.Fields(row)
		if len(fields) != n {
			return nil, 0, fmt.Errorf("layout row %d has %d cells, expected %d", r, len(fields), n)
		}
		for c, f := range fields {
			switch f {
			case ".":
			case "j", "J":
				obstacles[P(r, c)] = ObstacleCoated
			case "X", "x":
				obstacles[P(r, c)] = ObstacleSealed
			default:
				return nil, 0, fmt.Errorf("layout row %d col %d: unknown cell %q", r, c, f)
			}
		}
	}
	return obstacles, n, nil
}
