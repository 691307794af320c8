// Package core provides the rules engine for Crystal Crush.
// This package is UI-agnostic and deterministic for a given random source.
package core

import (
	"fmt"

	"github.com/google/uuid"
)

// Color is a crystal color from the fixed palette.
type Color uint8

const (
	ColorRed Color = iota
	ColorGreen
	ColorBlue
	ColorYellow
	ColorPurple
	ColorOrange
	ColorCount // Number of colors in the palette
)

// String returns the color name.
func (c Color) String() string {
	switch c {
	case ColorRed:
		return "Red"
	case ColorGreen:
		return "Green"
	case ColorBlue:
		return "Blue"
	case ColorYellow:
		return "Yellow"
	case ColorPurple:
		return "Purple"
	case ColorOrange:
		return "Orange"
	default:
		return "Unknown"
	}
}

// Char returns the single-letter code used in text boards.
func (c Color) Char() rune {
	switch c {
	case ColorRed:
		return 'R'
	case ColorGreen:
		return 'G'
	case ColorBlue:
		return 'B'
	case ColorYellow:
		return 'Y'
	case ColorPurple:
		return 'P'
	case ColorOrange:
		return 'O'
	default:
		return '?'
	}
}

// ParseColor parses a color name or single-letter code (case-insensitive).
func ParseColor(s string) (Color, bool) {
	switch s {
	case "red", "Red", "RED", "r", "R":
		return ColorRed, true
	case "green", "Green", "GREEN", "g", "G":
		return ColorGreen, true
	case "blue", "Blue", "BLUE", "b", "B":
		return ColorBlue, true
	case "yellow", "Yellow", "YELLOW", "y", "Y":
		return ColorYellow, true
	case "purple", "Purple", "PURPLE", "p", "P":
		return ColorPurple, true
	case "orange", "Orange", "ORANGE", "o", "O":
		return ColorOrange, true
	default:
		return 0, false
	}
}

// Special is the area-of-effect ability carried by a token.
type Special uint8

const (
	SpecialNone Special = iota
	SpecialStripedRow
	SpecialStripedCol
	SpecialWrapped
	SpecialColorBomb
)

// String returns the special name.
func (s Special) String() string {
	switch s {
	case SpecialNone:
		return "None"
	case SpecialStripedRow:
		return "StripedRow"
	case SpecialStripedCol:
		return "StripedCol"
	case SpecialWrapped:
		return "Wrapped"
	case SpecialColorBomb:
		return "ColorBomb"
	default:
		return "Unknown"
	}
}

// IsStriped reports whether s is either striped orientation.
func (s Special) IsStriped() bool {
	return s == SpecialStripedRow || s == SpecialStripedCol
}

// Obstacle is a background modifier on a cell.
type Obstacle uint8

const (
	ObstacleNone   Obstacle = iota
	ObstacleSealed          // No token; broken by a clear on an orthogonal neighbor
	ObstacleCoated          // Overlay on a token; cleared with the token
)

// String returns the obstacle name.
func (o Obstacle) String() string {
	switch o {
	case ObstacleNone:
		return "None"
	case ObstacleSealed:
		return "Sealed"
	case ObstacleCoated:
		return "Coated"
	default:
		return "Unknown"
	}
}

// Token is a crystal. Tokens are never mutated after creation.
type Token struct {
	ID      uuid.UUID
	Color   Color
	Special Special
}

// IsSpecial reports whether the token carries a special.
func (t Token) IsSpecial() bool {
	return t.Special != SpecialNone
}

// Matchable reports whether the token takes part in color runs.
// Color bombs are colorless for matching.
func (t Token) Matchable() bool {
	return t.Special != SpecialColorBomb
}

// String returns a short description like "Red/Wrapped".
func (t Token) String() string {
	if t.Special == SpecialNone {
		return t.Color.String()
	}
	return fmt.Sprintf("%s/%s", t.Color, t.Special)
}

// Cell is one grid square.
type Cell struct {
	Token    *Token
	Obstacle Obstacle
}

// HasToken reports whether the cell holds a token.
func (c Cell) HasToken() bool {
	return c.Token != nil
}

// Sealed reports whether the cell is sealed.
func (c Cell) Sealed() bool {
	return c.Obstacle == ObstacleSealed
}

// Coated reports whether the cell carries a coating overlay.
func (c Cell) Coated() bool {
	return c.Obstacle == ObstacleCoated
}

// Pos addresses a cell by row and column.
type Pos struct {
	Row int
	Col int
}

// P is a convenience constructor for Pos.
func P(row, col int) Pos {
	return Pos{Row: row, Col: col}
}

// String returns a string representation like "(3,4)".
func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Add returns p offset by (dr, dc).
func (p Pos) Add(dr, dc int) Pos {
	return Pos{Row: p.Row + dr, Col: p.Col + dc}
}

// Manhattan returns the Manhattan distance to other.
func (p Pos) Manhattan(other Pos) int {
	dr := p.Row - other.Row
	dc := p.Col - other.Col
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	return dr + dc
}

// Adjacent reports whether other is an orthogonal neighbor.
func (p Pos) Adjacent(other Pos) bool {
	return p.Manhattan(other) == 1
}

// Less orders positions row-major.
func (p Pos) Less(other Pos) bool {
	if p.Row != other.Row {
		return p.Row < other.Row
	}
	return p.Col < other.Col
}

// Swap is a pair of adjacent positions.
type Swap struct {
	A Pos
	B Pos
}

// String returns a string representation like "(1,2)<->(1,3)".
func (s Swap) String() string {
	return fmt.Sprintf("%s<->%s", s.A, s.B)
}
