package core_test

import (
	"reflect"
	"testing"

	"github.com/vovakirdan/crystal-crush/internal/games/crush/core"
)

func TestFindRuns(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		want int
	}{
		{
			name: "none",
			rows: []string{"R G R", "G R G", "R G R"},
			want: 0,
		},
		{
			name: "row and column",
			rows: []string{"R R R", "G B Y", "G B Y"},
			want: 1,
		},
		{
			name: "two axes",
			rows: []string{"R R R", "R B Y", "R B Y"},
			want: 2,
		},
		{
			name: "bomb breaks run",
			rows: []string{"R R @ R R", ". . . . .", ". . . . .", ". . . . .", ". . . . ."},
			want: 0,
		},
		{
			name: "sealed breaks run",
			rows: []string{"R R # R R", ". . . . .", ". . . . .", ". . . . .", ". . . . ."},
			want: 0,
		},
		{
			name: "specials match by color",
			rows: []string{"R- R+ R|", ". . .", ". . ."},
			want: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := core.MustParseGrid(tt.rows...)
			if got := len(core.FindRuns(g)); got != tt.want {
				t.Errorf("FindRuns() found %d runs, expected %d", got, tt.want)
			}
		})
	}
}

func TestFindMatchesFormations(t *testing.T) {
	tests := []struct {
		name    string
		rows    []string
		origins []core.Pos
		want    []core.Formation
	}{
		{
			name: "three makes nothing",
			rows: []string{
				"R R R . .",
				". . . . .",
				". . . . .",
				". . . . .",
				". . . . .",
			},
			want: []core.Formation{},
		},
		{
			name: "horizontal four without origin",
			rows: []string{
				"R R R R .",
				". . . . .",
				". . . . .",
				". . . . .",
				". . . . .",
			},
			want: []core.Formation{{Pos: core.P(0, 1), Special: core.SpecialStripedCol, Color: core.ColorRed}},
		},
		{
			name: "vertical four anchored at origin",
			rows: []string{
				"B . . . .",
				"B . . . .",
				"B . . . .",
				"B . . . .",
				". . . . .",
			},
			origins: []core.Pos{core.P(2, 0), core.P(2, 1)},
			want:    []core.Formation{{Pos: core.P(2, 0), Special: core.SpecialStripedRow, Color: core.ColorBlue}},
		},
		{
			name: "origin at run end uses nearest interior cell",
			rows: []string{
				"B . . . .",
				"B . . . .",
				"B . . . .",
				"B . . . .",
				". . . . .",
			},
			origins: []core.Pos{core.P(3, 0)},
			want:    []core.Formation{{Pos: core.P(2, 0), Special: core.SpecialStripedRow, Color: core.ColorBlue}},
		},
		{
			name: "five makes a bomb in the middle",
			rows: []string{
				"G G G G G",
				". . . . .",
				". . . . .",
				". . . . .",
				". . . . .",
			},
			origins: []core.Pos{core.P(0, 0)},
			want:    []core.Formation{{Pos: core.P(0, 2), Special: core.SpecialColorBomb, Color: core.ColorGreen}},
		},
		{
			name: "T shape wraps at the crossing",
			rows: []string{
				"Y Y Y . .",
				". Y . . .",
				". Y . . .",
				". . . . .",
				". . . . .",
			},
			want: []core.Formation{{Pos: core.P(0, 1), Special: core.SpecialWrapped, Color: core.ColorYellow}},
		},
		{
			name: "L shape wraps at the corner",
			rows: []string{
				"P . . . .",
				"P . . . .",
				"P P P . .",
				". . . . .",
				". . . . .",
			},
			want: []core.Formation{{Pos: core.P(2, 0), Special: core.SpecialWrapped, Color: core.ColorPurple}},
		},
		{
			name: "four crossing three wraps without stripe",
			rows: []string{
				"R R R R .",
				". . . R .",
				". . . R .",
				". . . . .",
				". . . . .",
			},
			want: []core.Formation{{Pos: core.P(0, 3), Special: core.SpecialWrapped, Color: core.ColorRed}},
		},
		{
			name: "five crossing three is a bomb only",
			rows: []string{
				"O O O O O",
				". . O . .",
				". . O . .",
				". . . . .",
				". . . . .",
			},
			want: []core.Formation{{Pos: core.P(0, 2), Special: core.SpecialColorBomb, Color: core.ColorOrange}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := core.MustParseGrid(tt.rows...)
			m := core.FindMatches(g, tt.origins...)
			if m.Empty() {
				t.Fatal("expected matches")
			}
			got := m.Formations
			if got == nil {
				got = []core.Formation{}
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Formations = %+v, expected %+v", got, tt.want)
			}
		})
	}
}

func TestFindMatchesOriginOrder(t *testing.T) {
	g := core.MustParseGrid(
		"R R R R . .",
		". . . . . .",
		". . . . . .",
		". . . . . .",
		". . . . . .",
		". . . . . .",
	)
	a, b := core.P(0, 2), core.P(1, 2)
	ab := core.FindMatches(g, a, b)
	ba := core.FindMatches(g, b, a)
	if !reflect.DeepEqual(ab.Formations, ba.Formations) {
		t.Errorf("formations depend on origin order: %+v vs %+v", ab.Formations, ba.Formations)
	}
	if ab.Formations[0].Pos != a {
		t.Errorf("stripe at %v, expected %v", ab.Formations[0].Pos, a)
	}
}

func TestMatchesCellsUnion(t *testing.T) {
	g := core.MustParseGrid(
		"Y Y Y",
		". Y .",
		". Y .",
	)
	cells := core.FindMatches(g).Cells()
	if len(cells) != 5 {
		t.Errorf("Cells() has %d positions, expected 5", len(cells))
	}
	for i := 1; i < len(cells); i++ {
		if !cells[i-1].Less(cells[i]) {
			t.Errorf("Cells() not sorted at %d: %v", i, cells)
		}
	}
}
