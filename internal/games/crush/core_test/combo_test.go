package core_test

import (
	"testing"

	"github.com/vovakirdan/crystal-crush/internal/games/crush/core"
)

func TestComboFor(t *testing.T) {
	tests := []struct {
		a, b core.Special
		want core.ComboKind
	}{
		{core.SpecialColorBomb, core.SpecialColorBomb, core.ComboDoubleBomb},
		{core.SpecialColorBomb, core.SpecialStripedRow, core.ComboBombStriped},
		{core.SpecialStripedCol, core.SpecialColorBomb, core.ComboBombStriped},
		{core.SpecialWrapped, core.SpecialColorBomb, core.ComboBombWrapped},
		{core.SpecialStripedRow, core.SpecialWrapped, core.ComboStripedWrapped},
		{core.SpecialStripedRow, core.SpecialStripedCol, core.ComboDoubleStriped},
		{core.SpecialWrapped, core.SpecialWrapped, core.ComboDoubleWrapped},
		{core.SpecialColorBomb, core.SpecialNone, core.ComboNone},
		{core.SpecialNone, core.SpecialNone, core.ComboNone},
	}
	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			if got := core.ComboFor(tt.a, tt.b); got != tt.want {
				t.Errorf("ComboFor(%v, %v) = %v, expected %v", tt.a, tt.b, got, tt.want)
			}
			if got := core.ComboFor(tt.b, tt.a); got != tt.want {
				t.Errorf("ComboFor(%v, %v) = %v, expected %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

// comboBoard places two tokens at (3,3) and (3,4) of the base board.
func comboBoard(left, right string) *core.Grid {
	return core.MustParseGrid(withRows(map[int]string{
		3: "Y P Y " + left + " " + right + " P Y P",
	})...)
}

func TestComboFirstRound(t *testing.T) {
	tests := []struct {
		name        string
		left, right string
		kind        core.ComboKind
		cleared     int
	}{
		{"double bomb", "@", "@", core.ComboDoubleBomb, 64},
		{"double striped", "P-", "Y|", core.ComboDoubleStriped, 15},
		{"double wrapped", "P+", "Y+", core.ComboDoubleWrapped, 25},
		{"striped and wrapped", "P-", "Y+", core.ComboStripedWrapped, 39},
		{"bomb and plain", "@", "Y", core.ComboBombPlain, 17},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := startOn(t, testLevel(10, 1_000_000), comboBoard(tt.left, tt.right))

			out, err := e.AttemptSwap(core.P(3, 3), core.P(3, 4))
			if err != nil {
				t.Fatalf("AttemptSwap failed: %v", err)
			}
			if out.Kind != core.OutcomeResolved {
				t.Fatalf("outcome = %v, expected Resolved", out.Kind)
			}
			if out.Combo != tt.kind {
				t.Errorf("combo = %v, expected %v", out.Combo, tt.kind)
			}
			if got := len(out.Rounds[0].Cleared); got != tt.cleared {
				t.Errorf("first round cleared %d cells, expected %d", got, tt.cleared)
			}
			if got := len(out.Rounds[0].Activated); got != 0 {
				t.Errorf("participants fired again: %d activations", got)
			}
			if out.State.MovesRemaining != 9 {
				t.Errorf("moves = %d, expected 9", out.State.MovesRemaining)
			}
		})
	}
}

func TestBombPlainClearsPartnerColor(t *testing.T) {
	g := comboBoard("@", "Y")
	e := startOn(t, testLevel(10, 1_000_000), g)

	out, err := e.AttemptSwap(core.P(3, 4), core.P(3, 3))
	if err != nil {
		t.Fatalf("AttemptSwap failed: %v", err)
	}
	for _, p := range out.Rounds[0].Cleared {
		if p == core.P(3, 3) {
			continue
		}
		if c := g.Token(p).Color; c != core.ColorYellow {
			t.Errorf("cleared %v of color %v, expected Yellow only", p, c)
		}
	}
	if got := out.Rounds[0].Collected[core.ColorYellow]; got != 16 {
		t.Errorf("collected %d yellow, expected 16", got)
	}
}

func TestBombWrappedClearsBothColors(t *testing.T) {
	g := comboBoard("@", "Y+")
	e := startOn(t, testLevel(10, 1_000_000), g)

	out, err := e.AttemptSwap(core.P(3, 3), core.P(3, 4))
	if err != nil {
		t.Fatalf("AttemptSwap failed: %v", err)
	}
	cleared := posSet(out.Rounds[0].Cleared)
	for _, p := range g.Positions() {
		if tok := g.Token(p); tok != nil && tok.Color == core.ColorYellow && !cleared[p] {
			t.Errorf("yellow token at %v survived", p)
		}
	}
	blast, ok := out.Rounds[0].Effects[0].(core.ComboBlast)
	if !ok {
		t.Fatalf("effect = %T, expected ComboBlast", out.Rounds[0].Effects[0])
	}
	if len(blast.Colors) != 2 || blast.Colors[0] != core.ColorYellow || blast.Colors[1] == core.ColorYellow {
		t.Errorf("colors = %v, expected Yellow and one other", blast.Colors)
	}
}

func TestBombStripedConvertsAndFires(t *testing.T) {
	e := startOn(t, testLevel(10, 1_000_000), comboBoard("@", "Y-"))

	out, err := e.AttemptSwap(core.P(3, 3), core.P(3, 4))
	if err != nil {
		t.Fatalf("AttemptSwap failed: %v", err)
	}
	if out.Combo != core.ComboBombStriped {
		t.Fatalf("combo = %v, expected Bomb+Striped", out.Combo)
	}
	// The other fifteen yellow tokens become stripes and each fires once.
	acts := out.Rounds[0].Activated
	if len(acts) != 15 {
		t.Errorf("expected 15 activations, got %d", len(acts))
	}
	for _, a := range acts {
		if !a.Token.Special.IsStriped() || a.Token.Color != core.ColorYellow {
			t.Errorf("activation at %v was %v, expected a yellow stripe", a.Pos, a.Token)
		}
	}
}
