package core

// Axis is the direction a run extends along.
type Axis uint8

const (
	AxisRow Axis = iota // Horizontal run along a row
	AxisCol             // Vertical run along a column
)

// String returns the axis name.
func (a Axis) String() string {
	if a == AxisRow {
		return "Row"
	}
	return "Col"
}

// Run is a maximal line of three or more same-colored tokens.
type Run struct {
	Axis  Axis
	Color Color
	Cells []Pos // Ordered left-to-right or top-to-bottom
}

// Len returns the run length.
func (r Run) Len() int {
	return len(r.Cells)
}

// IndexOf returns the index of p in the run, or -1.
func (r Run) IndexOf(p Pos) int {
	for i, c := range r.Cells {
		if c == p {
			return i
		}
	}
	return -1
}

// Formation is a special token to be created at Pos instead of clearing it.
type Formation struct {
	Pos     Pos
	Special Special
	Color   Color
}

// Matches is the detector output for one grid snapshot.
type Matches struct {
	Runs       []Run
	Formations []Formation // Sorted row-major, at most one per cell
}

// Empty reports whether no runs were found.
func (m Matches) Empty() bool {
	return len(m.Runs) == 0
}

// Cells returns the union of all run cells, sorted row-major.
func (m Matches) Cells() []Pos {
	seen := make(map[Pos]bool)
	var out []Pos
	for _, r := range m.Runs {
		for _, p := range r.Cells {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	return sortPositions(out)
}

// matchColor returns the color a cell contributes to runs.
func matchColor(c Cell) (Color, bool) {
	if c.Token == nil || c.Sealed() || !c.Token.Matchable() {
		return 0, false
	}
	return c.Token.Color, true
}

// FindRuns scans rows then columns and returns every run of length >= 3.
func FindRuns(g *Grid) []Run {
	var runs []Run
	scan := func(axis Axis, at func(line, i int) Pos) {
		for line := 0; line < g.N; line++ {
			start := 0
			for start < g.N {
				color, ok := matchColor(g.Get(at(line, start)))
				end := start + 1
				if ok {
					for end < g.N {
						next, nok := matchColor(g.Get(at(line, end)))
						if !nok || next != color {
							break
						}
						end++
					}
					if end-start >= 3 {
						cells := make([]Pos, 0, end-start)
						for i := start; i < end; i++ {
							cells = append(cells, at(line, i))
						}
						runs = append(runs, Run{Axis: axis, Color: color, Cells: cells})
					}
				}
				start = end
			}
		}
	}
	scan(AxisRow, func(row, i int) Pos { return P(row, i) })
	scan(AxisCol, func(col, i int) Pos { return P(i, col) })
	return runs
}

// HasMatch reports whether g contains any run.
func HasMatch(g *Grid) bool {
	return len(FindRuns(g)) > 0
}

// formationRank orders competing formations at the same cell.
func formationRank(s Special) int {
	switch s {
	case SpecialColorBomb:
		return 3
	case SpecialWrapped:
		return 2
	case SpecialStripedRow, SpecialStripedCol:
		return 1
	default:
		return 0
	}
}

// FindMatches returns all runs in g and the special formations they produce.
// origins are the swap positions, used to anchor striped formations; the
// result does not depend on their order.
func FindMatches(g *Grid, origins ...Pos) Matches {
	runs := FindRuns(g)
	if len(runs) == 0 {
		return Matches{}
	}

	byCell := make(map[Pos]Formation)
	place := func(f Formation) {
		if cur, ok := byCell[f.Pos]; ok && formationRank(cur.Special) >= formationRank(f.Special) {
			return
		}
		byCell[f.Pos] = f
	}

	// Intersections of a horizontal and a vertical run form wrapped tokens.
	suppressed := make([]bool, len(runs))
	for i, h := range runs {
		if h.Axis != AxisRow || h.Len() >= 5 {
			continue
		}
		for j, v := range runs {
			if v.Axis != AxisCol || v.Len() >= 5 || v.Color != h.Color {
				continue
			}
			cross := P(h.Cells[0].Row, v.Cells[0].Col)
			if h.IndexOf(cross) < 0 || v.IndexOf(cross) < 0 {
				continue
			}
			place(Formation{Pos: cross, Special: SpecialWrapped, Color: h.Color})
			suppressed[i] = true
			suppressed[j] = true
		}
	}

	for i, r := range runs {
		switch {
		case r.Len() >= 5:
			place(Formation{Pos: r.Cells[2], Special: SpecialColorBomb, Color: r.Color})
		case r.Len() == 4 && !suppressed[i]:
			special := SpecialStripedCol
			if r.Axis == AxisCol {
				special = SpecialStripedRow
			}
			place(Formation{Pos: stripedAnchor(r, origins), Special: special, Color: r.Color})
		}
	}

	formations := make([]Formation, 0, len(byCell))
	for _, p := range sortPositions(keys(byCell)) {
		formations = append(formations, byCell[p])
	}
	return Matches{Runs: runs, Formations: formations}
}

// stripedAnchor picks the interior cell of a run of four nearest to a swap
// origin inside the run. Ties go to the lower index; with no origin in the
// run the second cell is used.
func stripedAnchor(r Run, origins []Pos) Pos {
	best, bestDist := -1, 0
	for _, o := range origins {
		oi := r.IndexOf(o)
		if oi < 0 {
			continue
		}
		for i := 1; i < r.Len()-1; i++ {
			d := i - oi
			if d < 0 {
				d = -d
			}
			if best < 0 || d < bestDist || (d == bestDist && i < best) {
				best, bestDist = i, d
			}
		}
	}
	if best < 0 {
		best = 1
	}
	return r.Cells[best]
}

func keys[V any](m map[Pos]V) []Pos {
	out := make([]Pos, 0, len(m))
	for p := range m {
		out = append(out, p)
	}
	return out
}
