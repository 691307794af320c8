package core

// ComboKind identifies the effect of swapping two special tokens together.
type ComboKind uint8

const (
	ComboNone ComboKind = iota
	ComboDoubleBomb
	ComboBombStriped
	ComboBombWrapped
	ComboStripedWrapped
	ComboDoubleStriped
	ComboDoubleWrapped
	ComboBombPlain // A color bomb swapped with a plain token
)

// String returns the combo name.
func (k ComboKind) String() string {
	switch k {
	case ComboNone:
		return "None"
	case ComboDoubleBomb:
		return "Bomb+Bomb"
	case ComboBombStriped:
		return "Bomb+Striped"
	case ComboBombWrapped:
		return "Bomb+Wrapped"
	case ComboStripedWrapped:
		return "Striped+Wrapped"
	case ComboDoubleStriped:
		return "Striped+Striped"
	case ComboDoubleWrapped:
		return "Wrapped+Wrapped"
	case ComboBombPlain:
		return "Bomb"
	default:
		return "Unknown"
	}
}

// ComboFor returns the combo for a pair of specials, independent of order.
// Returns ComboNone unless both are special.
func ComboFor(a, b Special) ComboKind {
	if a == SpecialNone || b == SpecialNone {
		return ComboNone
	}
	bombs := count(a == SpecialColorBomb, b == SpecialColorBomb)
	striped := count(a.IsStriped(), b.IsStriped())
	wrapped := count(a == SpecialWrapped, b == SpecialWrapped)

	switch {
	case bombs == 2:
		return ComboDoubleBomb
	case bombs == 1 && striped == 1:
		return ComboBombStriped
	case bombs == 1 && wrapped == 1:
		return ComboBombWrapped
	case striped == 1 && wrapped == 1:
		return ComboStripedWrapped
	case striped == 2:
		return ComboDoubleStriped
	case wrapped == 2:
		return ComboDoubleWrapped
	default:
		return ComboNone
	}
}

func count(flags ...bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}

// comboPlan is the first-round seed of a combo or bomb move.
type comboPlan struct {
	kind      ComboKind
	seed      []Pos
	activated []Pos // Participants that must not fire again
	effect    Effect
}

// planCombo resolves the swap of a and b when it bypasses the detector.
// The tokens have not been exchanged on g. Conversions for the bomb and
// striped combo are written to g directly. ok is false for an ordinary swap.
func planCombo(g *Grid, src Source, tokens tokenFactory, palette int, a, b Pos) (comboPlan, bool) {
	ta, tb := g.Token(a), g.Token(b)
	if ta == nil || tb == nil {
		return comboPlan{}, false
	}

	kind := ComboFor(ta.Special, tb.Special)
	if kind == ComboNone {
		// A bomb with a plain partner strikes the partner's color.
		bomb, partner := a, b
		if tb.Special == SpecialColorBomb {
			bomb, partner = b, a
		}
		if g.Token(bomb).Special != SpecialColorBomb {
			return comboPlan{}, false
		}
		color := g.Token(partner).Color
		targets := colorCells(g, color)
		return comboPlan{
			kind:      ComboBombPlain,
			seed:      append([]Pos{bomb}, targets...),
			activated: []Pos{bomb},
			effect:    ColorBombArcs{Origin: bomb, Color: color, Targets: targets},
		}, true
	}

	plan := comboPlan{kind: kind, activated: []Pos{a, b}}
	center := a
	var cells []Pos
	var colors []Color

	switch kind {
	case ComboDoubleBomb:
		cells = g.Positions()

	case ComboBombStriped:
		stripe := ta
		if !stripe.Special.IsStriped() {
			stripe = tb
		}
		colors = []Color{stripe.Color}
		for _, p := range colorCells(g, stripe.Color) {
			if p == a || p == b {
				continue
			}
			if t := g.Token(p); t.Special == SpecialNone {
				special := SpecialStripedRow
				if src.Intn(2) == 1 {
					special = SpecialStripedCol
				}
				g.SetToken(p, tokens.make(t.Color, special))
			}
			cells = append(cells, p)
		}
		cells = append(cells, a, b)

	case ComboBombWrapped:
		wrap := ta
		if wrap.Special != SpecialWrapped {
			wrap = tb
		}
		other := otherColor(src, palette, wrap.Color)
		colors = []Color{wrap.Color, other}
		cells = append(colorCells(g, wrap.Color), colorCells(g, other)...)
		cells = append(cells, a, b)

	case ComboStripedWrapped:
		for d := -1; d <= 1; d++ {
			if g.InBounds(P(center.Row+d, 0)) {
				cells = append(cells, rowCells(g, center.Row+d)...)
			}
			if g.InBounds(P(0, center.Col+d)) {
				cells = append(cells, colCells(g, center.Col+d)...)
			}
		}

	case ComboDoubleStriped:
		cells = append(rowCells(g, center.Row), colCells(g, center.Col)...)

	case ComboDoubleWrapped:
		cells = blockCells(g, center, 2)
	}

	plan.seed = tokensIn(g, cells)
	plan.effect = ComboBlast{Kind: kind, Center: center, Colors: colors, Cells: plan.seed}
	return plan, true
}

// otherColor draws a palette color different from c.
func otherColor(src Source, palette int, c Color) Color {
	if palette <= 1 {
		return c
	}
	pick := Color(src.Intn(palette - 1))
	if pick >= c {
		pick++
	}
	return pick
}
