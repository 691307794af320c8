package core

import (
	"fmt"
	"sort"
)

// Grid is the square game board.
// Cells are stored in row-major order: index = row*N + col.
type Grid struct {
	N     int    // Side length
	Cells []Cell // Flat array of cells, length N*N
}

// NewGrid creates an empty N×N grid.
func NewGrid(n int) *Grid {
	return &Grid{
		N:     n,
		Cells: make([]Cell, n*n),
	}
}

// index converts a position to a flat array index.
func (g *Grid) index(p Pos) int {
	return p.Row*g.N + p.Col
}

// InBounds returns true if the position is on the board.
func (g *Grid) InBounds(p Pos) bool {
	return p.Row >= 0 && p.Row < g.N && p.Col >= 0 && p.Col < g.N
}

// Get returns the cell at p.
// Returns the zero Cell if out of bounds.
func (g *Grid) Get(p Pos) Cell {
	if !g.InBounds(p) {
		return Cell{}
	}
	return g.Cells[g.index(p)]
}

// Set replaces the cell at p. Out-of-bounds writes are ignored.
func (g *Grid) Set(p Pos, c Cell) {
	if g.InBounds(p) {
		g.Cells[g.index(p)] = c
	}
}

// Token returns the token at p, or nil.
func (g *Grid) Token(p Pos) *Token {
	return g.Get(p).Token
}

// SetToken places t at p, keeping the cell's obstacle.
func (g *Grid) SetToken(p Pos, t *Token) {
	if g.InBounds(p) {
		g.Cells[g.index(p)].Token = t
	}
}

// SetObstacle sets the obstacle at p, keeping the cell's token.
func (g *Grid) SetObstacle(p Pos, o Obstacle) {
	if g.InBounds(p) {
		g.Cells[g.index(p)].Obstacle = o
	}
}

// Swap exchanges the tokens at a and b. Obstacles stay in place.
func (g *Grid) Swap(a, b Pos) {
	if !g.InBounds(a) || !g.InBounds(b) {
		return
	}
	ia, ib := g.index(a), g.index(b)
	g.Cells[ia].Token, g.Cells[ib].Token = g.Cells[ib].Token, g.Cells[ia].Token
}

// Neighbors4 returns the orthogonal neighbors of p that lie on the board,
// in the order up, right, down, left.
func (g *Grid) Neighbors4(p Pos) []Pos {
	out := make([]Pos, 0, 4)
	for _, d := range [4][2]int{{-1, 0}, {0, 1}, {1, 0}, {0, -1}} {
		q := p.Add(d[0], d[1])
		if g.InBounds(q) {
			out = append(out, q)
		}
	}
	return out
}

// Positions returns every position in row-major order.
func (g *Grid) Positions() []Pos {
	out := make([]Pos, 0, len(g.Cells))
	for r := 0; r < g.N; r++ {
		for c := 0; c < g.N; c++ {
			out = append(out, P(r, c))
		}
	}
	return out
}

// Clone returns a copy of the grid. Tokens are shared since they are immutable.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.Cells))
	copy(cells, g.Cells)
	return &Grid{N: g.N, Cells: cells}
}

// Equal reports whether both grids hold the same obstacles and tokens,
// comparing tokens by value including their IDs.
func (g *Grid) Equal(other *Grid) bool {
	if g.N != other.N || len(g.Cells) != len(other.Cells) {
		return false
	}
	for i := range g.Cells {
		a, b := g.Cells[i], other.Cells[i]
		if a.Obstacle != b.Obstacle {
			return false
		}
		if (a.Token == nil) != (b.Token == nil) {
			return false
		}
		if a.Token != nil && *a.Token != *b.Token {
			return false
		}
	}
	return true
}

// ColorCounts returns how many plain (non-special) tokens of each color are on the board.
func (g *Grid) ColorCounts() [ColorCount]int {
	var counts [ColorCount]int
	for _, c := range g.Cells {
		if c.Token != nil && c.Token.Special == SpecialNone && c.Token.Color < ColorCount {
			counts[c.Token.Color]++
		}
	}
	return counts
}

// TokenCount returns the number of cells holding a token.
func (g *Grid) TokenCount() int {
	n := 0
	for _, c := range g.Cells {
		if c.Token != nil {
			n++
		}
	}
	return n
}

// CountObstacles returns the number of cells carrying o.
func (g *Grid) CountObstacles(o Obstacle) int {
	n := 0
	for _, c := range g.Cells {
		if c.Obstacle == o {
			n++
		}
	}
	return n
}

// Validate checks the settled-board invariants: no Sealed cell holds a
// token and every other cell holds one.
func (g *Grid) Validate() error {
	if g.N <= 0 || len(g.Cells) != g.N*g.N {
		return invariantError("BAD_SHAPE", fmt.Sprintf("grid side %d with %d cells", g.N, len(g.Cells)))
	}
	for i, c := range g.Cells {
		p := P(i/g.N, i%g.N)
		if c.Sealed() && c.Token != nil {
			return invariantError("SEALED_TOKEN", fmt.Sprintf("sealed cell %s holds a token", p))
		}
		if !c.Sealed() && c.Token == nil {
			return invariantError("EMPTY_CELL", fmt.Sprintf("cell %s has no token", p))
		}
	}
	return nil
}

// sortPositions sorts ps row-major in place and returns it.
func sortPositions(ps []Pos) []Pos {
	sort.Slice(ps, func(i, j int) bool { return ps[i].Less(ps[j]) })
	return ps
}
