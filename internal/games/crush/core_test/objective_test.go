package core_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/crystal-crush/internal/games/crush/core"
)

func TestEvaluate(t *testing.T) {
	colors := core.Objectives{Colors: map[core.Color]int{core.ColorRed: 25}}

	tests := []struct {
		name  string
		obj   core.Objectives
		prog  core.Progress
		moves int
		want  core.GameState
	}{
		{"score reached with moves left", core.Objectives{Score: 1000}, core.Progress{Score: 1000}, 5, core.StateWon},
		{"score reached on last move", core.Objectives{Score: 1000}, core.Progress{Score: 1200}, 0, core.StateWon},
		{"one short with no moves", core.Objectives{Score: 1000}, core.Progress{Score: 999}, 0, core.StateLost},
		{"one short with moves", core.Objectives{Score: 1000}, core.Progress{Score: 999}, 3, core.StatePlaying},
		{"colors met", colors, core.Progress{Colors: map[core.Color]int{core.ColorRed: 25}}, 1, core.StateWon},
		{"colors short", colors, core.Progress{Colors: map[core.Color]int{core.ColorRed: 24}}, 1, core.StatePlaying},
		{
			"score without coated",
			core.Objectives{Score: 100, Coated: 4},
			core.Progress{Score: 500, Coated: 3},
			0,
			core.StateLost,
		},
		{
			"everything met",
			core.Objectives{Score: 100, Coated: 4, Sealed: 2},
			core.Progress{Score: 100, Coated: 4, Sealed: 2},
			2,
			core.StateWon,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := core.Evaluate(tt.obj, tt.prog, tt.moves); got != tt.want {
				t.Errorf("Evaluate() = %v, expected %v", got, tt.want)
			}
		})
	}
}

func TestStarsFor(t *testing.T) {
	scored := core.Level{Moves: 20, Objectives: core.Objectives{Score: 1000}}
	fixed := core.Level{Moves: 20, Objectives: core.Objectives{Coated: 4}, Stars: [3]int{500, 900, 1500}}
	derived := core.Level{Moves: 20, Objectives: core.Objectives{Coated: 4}}

	tests := []struct {
		name  string
		lvl   core.Level
		score int
		state core.GameState
		want  int
	}{
		{"loss gets none", scored, 5000, core.StateLost, 0},
		{"playing gets none", scored, 5000, core.StatePlaying, 0},
		{"target", scored, 1000, core.StateWon, 1},
		{"one and a half", scored, 1500, core.StateWon, 2},
		{"double", scored, 2000, core.StateWon, 3},
		{"fixed below first", fixed, 100, core.StateWon, 1},
		{"fixed second", fixed, 900, core.StateWon, 2},
		{"derived from moves", derived, 4000, core.StateWon, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.lvl.StarsFor(tt.score, tt.state); got != tt.want {
				t.Errorf("StarsFor(%d, %v) = %d, expected %d", tt.score, tt.state, got, tt.want)
			}
		})
	}
}

func TestParseLayout(t *testing.T) {
	obstacles, n, err := core.ParseLayout([]string{
		". j X",
		"J . x",
		". . .",
	})
	if err != nil {
		t.Fatalf("ParseLayout failed: %v", err)
	}
	if n != 3 {
		t.Errorf("side = %d, expected 3", n)
	}
	want := map[core.Pos]core.Obstacle{
		core.P(0, 1): core.ObstacleCoated,
		core.P(0, 2): core.ObstacleSealed,
		core.P(1, 0): core.ObstacleCoated,
		core.P(1, 2): core.ObstacleSealed,
	}
	if len(obstacles) != len(want) {
		t.Fatalf("got %d obstacles, expected %d", len(obstacles), len(want))
	}
	for p, o := range want {
		if obstacles[p] != o {
			t.Errorf("obstacle at %v = %v, expected %v", p, obstacles[p], o)
		}
	}

	if _, _, err := core.ParseLayout([]string{". .", ". ?"}); err == nil {
		t.Error("expected an error for an unknown cell")
	}
	if _, _, err := core.ParseLayout([]string{". . .", ". ."}); err == nil {
		t.Error("expected an error for a ragged layout")
	}
}

func TestLevelValidate(t *testing.T) {
	tests := []struct {
		name string
		lvl  core.Level
		code string
	}{
		{"ok", core.Level{ID: "a", Moves: 5, Objectives: core.Objectives{Score: 10}}, ""},
		{
			"obstacle out of bounds",
			core.Level{ID: "a", Moves: 5, Objectives: core.Objectives{Score: 10}, Obstacles: map[core.Pos]core.Obstacle{core.P(8, 0): core.ObstacleSealed}},
			"OBSTACLE_OUT_OF_BOUNDS",
		},
		{
			"unreachable sealed",
			core.Level{ID: "a", Moves: 5, Objectives: core.Objectives{Sealed: 1}},
			"UNREACHABLE_SEALED",
		},
		{
			"color outside palette",
			core.Level{ID: "a", Moves: 5, Objectives: core.Objectives{Colors: map[core.Color]int{core.ColorOrange: 5}}},
			"UNKNOWN_COLOR",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.lvl.Validate(8, 5)
			if tt.code == "" {
				if err != nil {
					t.Errorf("Validate() = %v, expected nil", err)
				}
				return
			}
			var ee core.EngineError
			if !errors.As(err, &ee) || ee.Code != tt.code {
				t.Errorf("Validate() = %v, expected code %s", err, tt.code)
			}
		})
	}
}

func TestObjectivesString(t *testing.T) {
	tests := []struct {
		name     string
		o        core.Objectives
		expected string
	}{
		{"empty", core.Objectives{}, ""},
		{"score", core.Objectives{Score: 1000}, "Score 1000"},
		{
			"colors in palette order",
			core.Objectives{Score: 2000, Colors: map[core.Color]int{core.ColorBlue: 30, core.ColorGreen: 30}},
			"Score 2000, Green 30, Blue 30",
		},
		{"obstacles", core.Objectives{Coated: 16, Sealed: 8}, "Coated 16, Sealed 8"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.o.String(); got != tt.expected {
				t.Errorf("String() = %q, expected %q", got, tt.expected)
			}
		})
	}
}
