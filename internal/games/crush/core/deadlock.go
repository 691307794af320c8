package core

// LegalMoves returns every swap that would be accepted and resolve, in
// row-major order of A with B to the right of or below A.
func LegalMoves(g *Grid) []Swap {
	var moves []Swap
	forEachLegal(g, func(s Swap) bool {
		moves = append(moves, s)
		return true
	})
	return moves
}

// HasLegalMove reports whether at least one swap would resolve.
func HasLegalMove(g *Grid) bool {
	found := false
	forEachLegal(g, func(Swap) bool {
		found = true
		return false
	})
	return found
}

// forEachLegal calls fn for each legal swap until fn returns false.
func forEachLegal(g *Grid, fn func(Swap) bool) {
	scratch := g.Clone()
	for r := 0; r < g.N; r++ {
		for c := 0; c < g.N; c++ {
			a := P(r, c)
			for _, b := range []Pos{P(r, c+1), P(r+1, c)} {
				if !g.InBounds(b) {
					continue
				}
				if isLegal(scratch, a, b) && !fn(Swap{A: a, B: b}) {
					return
				}
			}
		}
	}
}

// isLegal tests one swap on scratch and leaves scratch as it was.
// Bombs and special pairs are always legal without simulation.
func isLegal(scratch *Grid, a, b Pos) bool {
	ta, tb := scratch.Token(a), scratch.Token(b)
	if ta == nil || tb == nil {
		return false
	}
	if ta.Special == SpecialColorBomb || tb.Special == SpecialColorBomb {
		return true
	}
	if ta.IsSpecial() && tb.IsSpecial() {
		return true
	}
	scratch.Swap(a, b)
	ok := runThrough(scratch, a) || runThrough(scratch, b)
	scratch.Swap(a, b)
	return ok
}

// runThrough reports whether p is part of a run of three along either axis.
func runThrough(g *Grid, p Pos) bool {
	color, ok := matchColor(g.Get(p))
	if !ok {
		return false
	}
	same := func(dr, dc int) int {
		n := 0
		for q := p.Add(dr, dc); ; q = q.Add(dr, dc) {
			qc, qok := matchColor(g.Get(q))
			if !qok || qc != color {
				return n
			}
			n++
		}
	}
	return same(0, -1)+same(0, 1) >= 2 || same(-1, 0)+same(1, 0) >= 2
}
