package core

import (
	"fmt"
	"strings"
)

// Text boards are used for debugging, tests and the simulate command.
//
// Format: one row per line, cells separated by spaces.
//   - '.' empty, '#' sealed
//   - color letter R/G/B/Y/P/O for a plain token
//   - suffix '-' striped row, '|' striped column, '+' wrapped
//   - '@' color bomb (may follow a color letter, e.g. "R@")
//   - trailing '*' marks a coated cell, e.g. "G*" or "G|*"

// ParseGrid builds a grid from a text board. IDs come from a fixed seed so
// parsing the same text twice yields equal grids.
func ParseGrid(rows []string) (*Grid, error) {
	n := len(rows)
	g := NewGrid(n)
	tokens := tokenFactory{src: NewSource(0)}

	for r, row := range rows {
		fields := strings.Fields(row)
		if len(fields) != n {
			return nil, fmt.Errorf("row %d has %d cells, expected %d", r, len(fields), n)
		}
		for c, f := range fields {
			cell, err := parseCell(f, tokens)
			if err != nil {
				return nil, fmt.Errorf("row %d col %d: %w", r, c, err)
			}
			g.Set(P(r, c), cell)
		}
	}
	return g, nil
}

// MustParseGrid is ParseGrid for fixtures; it panics on malformed input.
func MustParseGrid(rows ...string) *Grid {
	g, err := ParseGrid(rows)
	if err != nil {
		panic(err)
	}
	return g
}

func parseCell(f string, tokens tokenFactory) (Cell, error) {
	var cell Cell
	if strings.HasSuffix(f, "*") {
		cell.Obstacle = ObstacleCoated
		f = strings.TrimSuffix(f, "*")
	}
	switch f {
	case "#":
		if cell.Coated() {
			return cell, fmt.Errorf("cell cannot be sealed and coated")
		}
		cell.Obstacle = ObstacleSealed
		return cell, nil
	case ".":
		return cell, nil
	case "@":
		cell.Token = tokens.make(ColorRed, SpecialColorBomb)
		return cell, nil
	}

	color, ok := ParseColor(f[:1])
	if !ok {
		return cell, fmt.Errorf("unknown color in %q", f)
	}
	special := SpecialNone
	switch f[1:] {
	case "":
	case "-":
		special = SpecialStripedRow
	case "|":
		special = SpecialStripedCol
	case "+":
		special = SpecialWrapped
	case "@":
		special = SpecialColorBomb
	default:
		return cell, fmt.Errorf("unknown special in %q", f)
	}
	cell.Token = tokens.make(color, special)
	return cell, nil
}

// String renders the grid in the text board format.
func (g *Grid) String() string {
	var sb strings.Builder
	for r := 0; r < g.N; r++ {
		for c := 0; c < g.N; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(cellString(g.Get(P(r, c))))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func cellString(c Cell) string {
	if c.Sealed() {
		return "#"
	}
	s := "."
	if t := c.Token; t != nil {
		s = string(t.Color.Char())
		switch t.Special {
		case SpecialStripedRow:
			s += "-"
		case SpecialStripedCol:
			s += "|"
		case SpecialWrapped:
			s += "+"
		case SpecialColorBomb:
			s += "@"
		}
	}
	if c.Coated() {
		s += "*"
	}
	return s
}
