package core_test

import (
	"reflect"
	"testing"

	"github.com/vovakirdan/crystal-crush/internal/games/crush/core"
)

func expand(g *core.Grid, seed ...core.Pos) core.Expansion {
	return core.NewResolver(g, core.NewSource(1), 6).Expand(seed)
}

func TestExpandPlainSeed(t *testing.T) {
	g := core.MustParseGrid(
		"R R R",
		"G B Y",
		"B Y G",
	)
	seed := []core.Pos{core.P(0, 0), core.P(0, 1), core.P(0, 2)}
	exp := expand(g, seed...)

	if got := exp.ClearedPositions(); !reflect.DeepEqual(got, seed) {
		t.Errorf("cleared = %v, expected %v", got, seed)
	}
	if len(exp.Activations) != 0 {
		t.Errorf("expected no activations, got %d", len(exp.Activations))
	}
}

func TestExpandSkipsEmptyCells(t *testing.T) {
	g := core.MustParseGrid(
		"R . R",
		"G B Y",
		"B Y G",
	)
	exp := expand(g, core.P(0, 0), core.P(0, 1), core.P(0, 2))
	if exp.Cleared.Size() != 2 {
		t.Errorf("cleared %d cells, expected 2", exp.Cleared.Size())
	}
}

func TestExpandSpecialAreas(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		at   core.Pos
		want int
	}{
		{
			name: "striped row",
			rows: []string{
				"G B G B G",
				"Y P Y P Y",
				"R- B G B G",
				"Y P Y P Y",
				"G B G B G",
			},
			at:   core.P(2, 0),
			want: 5,
		},
		{
			name: "striped column",
			rows: []string{
				"G B G B G",
				"Y P Y P Y",
				"G B R| B G",
				"Y P Y P Y",
				"G B G B G",
			},
			at:   core.P(2, 2),
			want: 5,
		},
		{
			name: "wrapped",
			rows: []string{
				"G B G B G",
				"Y P Y P Y",
				"G B R+ B G",
				"Y P Y P Y",
				"G B G B G",
			},
			at:   core.P(2, 2),
			want: 9,
		},
		{
			name: "wrapped at corner is clipped",
			rows: []string{
				"R+ B G B G",
				"Y P Y P Y",
				"G B G B G",
				"Y P Y P Y",
				"G B G B G",
			},
			at:   core.P(0, 0),
			want: 4,
		},
		{
			name: "striped row skips empty cells",
			rows: []string{
				"G B G B G",
				"Y P Y P Y",
				"R- . . B G",
				"Y P Y P Y",
				"G B G B G",
			},
			at:   core.P(2, 0),
			want: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := core.MustParseGrid(tt.rows...)
			exp := expand(g, tt.at)
			if exp.Cleared.Size() != tt.want {
				t.Errorf("cleared %d cells, expected %d", exp.Cleared.Size(), tt.want)
			}
			if len(exp.Activations) != 1 {
				t.Errorf("expected 1 activation, got %d", len(exp.Activations))
			}
		})
	}
}

func TestExpandChainsBreadthFirst(t *testing.T) {
	g := core.MustParseGrid(
		"G B G B G",
		"Y P Y P Y",
		"R- B G+ B G",
		"Y P Y P Y",
		"G B G B G",
	)
	exp := expand(g, core.P(2, 0))

	// Row 2 plus the 3×3 block around (2,2).
	if exp.Cleared.Size() != 11 {
		t.Errorf("cleared %d cells, expected 11", exp.Cleared.Size())
	}
	if len(exp.Activations) != 2 {
		t.Fatalf("expected 2 activations, got %d", len(exp.Activations))
	}
	if exp.Activations[0].Pos != core.P(2, 0) || exp.Activations[1].Pos != core.P(2, 2) {
		t.Errorf("activation order = %v, %v", exp.Activations[0].Pos, exp.Activations[1].Pos)
	}
	if _, ok := exp.Activations[1].Effect.(core.WrappedBlast); !ok {
		t.Errorf("second effect = %T, expected WrappedBlast", exp.Activations[1].Effect)
	}
}

func TestExpandFiresEachSpecialOnce(t *testing.T) {
	g := core.MustParseGrid(
		"G B G B G",
		"Y P Y P Y",
		"R- B G- B G",
		"Y P Y P Y",
		"G B G B G",
	)
	exp := expand(g, core.P(2, 0))
	if len(exp.Activations) != 2 {
		t.Errorf("expected 2 activations, got %d", len(exp.Activations))
	}
	if exp.Cleared.Size() != 5 {
		t.Errorf("cleared %d cells, expected 5", exp.Cleared.Size())
	}
}

func TestExpandIdempotent(t *testing.T) {
	g := core.MustParseGrid(
		"G B G B G",
		"Y P Y P Y",
		"R- B G+ B G",
		"Y P Y P Y",
		"G B G B G",
	)
	r1 := core.NewResolver(g, core.NewSource(1), 6)
	first := r1.Expand([]core.Pos{core.P(2, 0)})

	r2 := core.NewResolver(g, core.NewSource(1), 6)
	r2.Activated = r1.Activated
	second := r2.Expand(first.ClearedPositions())

	if !reflect.DeepEqual(first.ClearedPositions(), second.ClearedPositions()) {
		t.Errorf("re-expanding changed the clear-set: %v vs %v", first.ClearedPositions(), second.ClearedPositions())
	}
	if len(second.Activations) != 0 {
		t.Errorf("expected no new activations, got %d", len(second.Activations))
	}
}

func TestExpandColorBombTargetsMostNumerous(t *testing.T) {
	rows := baseRows()
	rows[0] = "@ B G B G B G B"
	g := core.MustParseGrid(rows...)

	// Green lost a token to the bomb; Blue, Yellow and Purple tie at 16
	// and Blue comes first.
	exp := expand(g, core.P(0, 0))
	if exp.Cleared.Size() != 17 {
		t.Errorf("cleared %d cells, expected 17", exp.Cleared.Size())
	}
	arcs, ok := exp.Activations[0].Effect.(core.ColorBombArcs)
	if !ok {
		t.Fatalf("effect = %T, expected ColorBombArcs", exp.Activations[0].Effect)
	}
	if arcs.Color != core.ColorBlue {
		t.Errorf("bomb target = %v, expected Blue", arcs.Color)
	}
	for _, p := range exp.ClearedPositions() {
		if p == core.P(0, 0) {
			continue
		}
		if c := g.Token(p).Color; c != core.ColorBlue {
			t.Errorf("cleared %v of color %v", p, c)
		}
	}
}

func TestExpandColorBombWithoutPlainTokens(t *testing.T) {
	g := core.MustParseGrid(
		"@ @ @",
		"@ @ @",
		"@ @ @",
	)
	exp := expand(g, core.P(1, 1))
	if exp.Cleared.Size() != 1 {
		t.Errorf("cleared %d cells, expected only the bomb", exp.Cleared.Size())
	}
	if len(exp.Activations) != 1 || len(exp.Activations[0].Area) != 0 {
		t.Errorf("expected one activation with an empty area, got %+v", exp.Activations)
	}
}

func TestExpandSealedHits(t *testing.T) {
	g := core.MustParseGrid(
		"R # G",
		"R B #",
		"R G B",
	)
	exp := expand(g, core.P(0, 0), core.P(1, 0), core.P(2, 0))

	want := []core.Pos{core.P(0, 1)}
	if !reflect.DeepEqual(exp.SealedHits, want) {
		t.Errorf("SealedHits = %v, expected %v", exp.SealedHits, want)
	}
	if exp.Cleared.Has(core.P(0, 1)) {
		t.Error("sealed cell should not be in the clear-set")
	}
}

func TestExpandDoesNotModifyGrid(t *testing.T) {
	g := core.MustParseGrid(
		"G B G B G",
		"Y P Y P Y",
		"R- B G+ B G",
		"Y P Y P Y",
		"G B G B G",
	)
	before := g.Clone()
	expand(g, core.P(2, 0))
	if !g.Equal(before) {
		t.Error("Expand modified the grid")
	}
}
