package core

import (
	"github.com/zyedidia/generic/mapset"
)

// Activation is one special token firing.
type Activation struct {
	Pos    Pos
	Token  Token
	Area   []Pos // Token cells hit, sorted row-major
	Effect Effect
}

// Expansion is the resolver output for one round.
type Expansion struct {
	Cleared     mapset.Set[Pos]
	Activations []Activation
	SealedHits  []Pos // Sealed cells orthogonally adjacent to the clear-set
}

// ClearedPositions returns the clear-set sorted row-major.
func (e Expansion) ClearedPositions() []Pos {
	out := make([]Pos, 0, e.Cleared.Size())
	e.Cleared.Each(func(p Pos) {
		out = append(out, p)
	})
	return sortPositions(out)
}

// Empty reports whether nothing was cleared or hit.
func (e Expansion) Empty() bool {
	return e.Cleared.Size() == 0 && len(e.SealedHits) == 0
}

// Resolver expands a seed clear-set through special activations.
type Resolver struct {
	Grid      *Grid
	Rand      Source
	Palette   int // Colors in play, used for random bomb targets
	Activated mapset.Set[Pos]
}

// NewResolver returns a resolver with an empty activated set.
func NewResolver(g *Grid, src Source, palette int) *Resolver {
	return &Resolver{
		Grid:      g,
		Rand:      src,
		Palette:   palette,
		Activated: mapset.New[Pos](),
	}
}

// Expand adds seed to the clear-set and fires every special inside it
// breadth-first. A special fires at most once per resolver.
// The grid is not modified.
func (r *Resolver) Expand(seed []Pos) Expansion {
	cleared := mapset.New[Pos]()
	var queue []Pos
	var activations []Activation

	enqueue := func(p Pos) {
		t := r.Grid.Token(p)
		if t == nil || !t.IsSpecial() || r.Activated.Has(p) {
			return
		}
		r.Activated.Put(p)
		queue = append(queue, p)
	}

	ordered := sortPositions(append([]Pos(nil), seed...))
	for _, p := range ordered {
		if r.Grid.Token(p) != nil {
			cleared.Put(p)
		}
	}
	for _, p := range ordered {
		if cleared.Has(p) {
			enqueue(p)
		}
	}

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		tok := *r.Grid.Token(p)
		area, effect := r.area(p, tok)
		for _, q := range area {
			cleared.Put(q)
			enqueue(q)
		}
		activations = append(activations, Activation{Pos: p, Token: tok, Area: area, Effect: effect})
	}

	return Expansion{
		Cleared:     cleared,
		Activations: activations,
		SealedHits:  sealedNeighbors(r.Grid, cleared),
	}
}

// area returns the token cells hit by the special at p.
func (r *Resolver) area(p Pos, t Token) ([]Pos, Effect) {
	g := r.Grid
	switch t.Special {
	case SpecialStripedRow:
		return tokensIn(g, rowCells(g, p.Row)), StripedBeam{Origin: p, Axis: AxisRow}
	case SpecialStripedCol:
		return tokensIn(g, colCells(g, p.Col)), StripedBeam{Origin: p, Axis: AxisCol}
	case SpecialWrapped:
		return tokensIn(g, blockCells(g, p, 1)), WrappedBlast{Center: p, Radius: 1}
	case SpecialColorBomb:
		color := r.bombTarget()
		targets := colorCells(g, color)
		return targets, ColorBombArcs{Origin: p, Color: color, Targets: targets}
	default:
		return nil, nil
	}
}

// bombTarget picks the most numerous plain color, ties to the lowest
// palette entry. With no plain tokens left a random color is drawn.
func (r *Resolver) bombTarget() Color {
	counts := r.Grid.ColorCounts()
	best, bestN := Color(0), 0
	for c := Color(0); c < ColorCount; c++ {
		if counts[c] > bestN {
			best, bestN = c, counts[c]
		}
	}
	if bestN > 0 {
		return best
	}
	n := r.Palette
	if n <= 0 || n > int(ColorCount) {
		n = int(ColorCount)
	}
	return Color(r.Rand.Intn(n))
}

// sealedNeighbors returns the sealed cells orthogonally adjacent to any
// cleared cell, sorted row-major.
func sealedNeighbors(g *Grid, cleared mapset.Set[Pos]) []Pos {
	hit := mapset.New[Pos]()
	cleared.Each(func(p Pos) {
		for _, q := range g.Neighbors4(p) {
			if g.Get(q).Sealed() {
				hit.Put(q)
			}
		}
	})
	out := make([]Pos, 0, hit.Size())
	hit.Each(func(p Pos) {
		out = append(out, p)
	})
	return sortPositions(out)
}

func rowCells(g *Grid, row int) []Pos {
	out := make([]Pos, 0, g.N)
	for c := 0; c < g.N; c++ {
		out = append(out, P(row, c))
	}
	return out
}

func colCells(g *Grid, col int) []Pos {
	out := make([]Pos, 0, g.N)
	for r := 0; r < g.N; r++ {
		out = append(out, P(r, col))
	}
	return out
}

// blockCells returns the square of the given radius around center, clipped.
func blockCells(g *Grid, center Pos, radius int) []Pos {
	var out []Pos
	for r := center.Row - radius; r <= center.Row+radius; r++ {
		for c := center.Col - radius; c <= center.Col+radius; c++ {
			if p := P(r, c); g.InBounds(p) {
				out = append(out, p)
			}
		}
	}
	return out
}

// colorCells returns every non-bomb token of color, row-major.
func colorCells(g *Grid, color Color) []Pos {
	var out []Pos
	for _, p := range g.Positions() {
		if t := g.Token(p); t != nil && t.Matchable() && t.Color == color {
			out = append(out, p)
		}
	}
	return out
}

// tokensIn filters ps to in-bounds cells holding a token, sorted row-major.
func tokensIn(g *Grid, ps []Pos) []Pos {
	out := make([]Pos, 0, len(ps))
	seen := make(map[Pos]bool, len(ps))
	for _, p := range ps {
		if seen[p] || g.Token(p) == nil {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return sortPositions(out)
}
