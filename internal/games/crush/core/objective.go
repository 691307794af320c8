package core

import (
	"fmt"
	"strings"
)

// GameState is the level outcome.
type GameState uint8

const (
	StatePlaying GameState = iota
	StateWon
	StateLost
)

// String returns the state name.
func (s GameState) String() string {
	switch s {
	case StatePlaying:
		return "Playing"
	case StateWon:
		return "Won"
	case StateLost:
		return "Lost"
	default:
		return "Unknown"
	}
}

// Objectives are a level's win conditions. Zero values mean "not configured".
type Objectives struct {
	Score  int
	Colors map[Color]int // Tokens of each color to collect
	Coated int           // Coated overlays to clear
	Sealed int           // Sealed cells to break
}

// Empty reports whether no objective is configured.
func (o Objectives) Empty() bool {
	if o.Score > 0 || o.Coated > 0 || o.Sealed > 0 {
		return false
	}
	for _, n := range o.Colors {
		if n > 0 {
			return false
		}
	}
	return true
}

// String lists the objectives, e.g. "Score 1000, Red 25, Coated 16".
func (o Objectives) String() string {
	var parts []string
	if o.Score > 0 {
		parts = append(parts, fmt.Sprintf("Score %d", o.Score))
	}
	for c := Color(0); c < ColorCount; c++ {
		if n := o.Colors[c]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", c, n))
		}
	}
	if o.Coated > 0 {
		parts = append(parts, fmt.Sprintf("Coated %d", o.Coated))
	}
	if o.Sealed > 0 {
		parts = append(parts, fmt.Sprintf("Sealed %d", o.Sealed))
	}
	return strings.Join(parts, ", ")
}

// Progress is what the player has accumulated in a level so far.
type Progress struct {
	Score  int
	Colors map[Color]int
	Coated int
	Sealed int
}

// NewProgress returns zeroed progress.
func NewProgress() Progress {
	return Progress{Colors: make(map[Color]int)}
}

// Clone returns a deep copy.
func (p Progress) Clone() Progress {
	out := p
	out.Colors = make(map[Color]int, len(p.Colors))
	for c, n := range p.Colors {
		out.Colors[c] = n
	}
	return out
}

// Met reports whether every configured objective holds.
func (o Objectives) Met(p Progress) bool {
	if p.Score < o.Score || p.Coated < o.Coated || p.Sealed < o.Sealed {
		return false
	}
	for c, n := range o.Colors {
		if p.Colors[c] < n {
			return false
		}
	}
	return true
}

// Evaluate decides the game state after a settled move. Win is checked
// before loss.
func Evaluate(o Objectives, p Progress, movesRemaining int) GameState {
	if o.Met(p) {
		return StateWon
	}
	if movesRemaining <= 0 {
		return StateLost
	}
	return StatePlaying
}

// StarThresholds returns the level's score thresholds, deriving them when
// the level does not set any.
func (l Level) StarThresholds() [3]int {
	if l.Stars[0] > 0 {
		return l.Stars
	}
	if t := l.Objectives.Score; t > 0 {
		return [3]int{t, t * 3 / 2, t * 2}
	}
	base := l.Moves * 100
	return [3]int{base, base * 2, base * 3}
}

// StarsFor grades a finished level: at least one star on a win, none on a loss.
func (l Level) StarsFor(score int, state GameState) int {
	if state != StateWon {
		return 0
	}
	stars := 0
	for _, t := range l.StarThresholds() {
		if score >= t {
			stars++
		}
	}
	if stars == 0 {
		stars = 1
	}
	return stars
}
