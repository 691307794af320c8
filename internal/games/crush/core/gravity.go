package core

// ApplyGravity compacts tokens downward in every column. Sealed cells split a
// column into segments that compact independently; tokens never pass a
// sealed cell. Relative order within a segment is preserved.
func ApplyGravity(g *Grid) []Fall {
	var falls []Fall
	for col := 0; col < g.N; col++ {
		write := g.N - 1
		for row := g.N - 1; row >= 0; row-- {
			p := P(row, col)
			cell := g.Get(p)
			if cell.Sealed() {
				write = row - 1
				continue
			}
			if cell.Token == nil {
				continue
			}
			if row != write {
				to := P(write, col)
				g.SetToken(to, cell.Token)
				g.SetToken(p, nil)
				falls = append(falls, Fall{From: p, To: to, Token: cell.Token})
			}
			write--
		}
	}
	return falls
}

// refill fills every empty non-sealed cell with a fresh token, column by
// column from the top.
func refill(g *Grid, tokens tokenFactory, palette int) []Spawn {
	var spawns []Spawn
	for col := 0; col < g.N; col++ {
		for row := 0; row < g.N; row++ {
			p := P(row, col)
			cell := g.Get(p)
			if cell.Sealed() || cell.Token != nil {
				continue
			}
			t := tokens.random(palette)
			g.SetToken(p, t)
			spawns = append(spawns, Spawn{Pos: p, Token: t})
		}
	}
	return spawns
}
