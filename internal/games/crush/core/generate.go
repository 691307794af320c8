package core

import "fmt"

// GenerateConfig controls board generation.
type GenerateConfig struct {
	Size        int
	Colors      int
	Obstacles   map[Pos]Obstacle
	MaxAttempts int
}

// Generate builds a stable board with at least one legal move.
// Each non-sealed cell avoids the color that would complete a run with the
// two cells to its left or the two above. Boards without a legal move are
// discarded; after MaxAttempts the result is ErrGenerationFailed.
func Generate(cfg GenerateConfig, src Source) (*Grid, int, error) {
	return generate(cfg, tokenFactory{src: src})
}

func generate(cfg GenerateConfig, tokens tokenFactory) (*Grid, int, error) {
	attempts := cfg.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}
	for attempt := 1; attempt <= attempts; attempt++ {
		g := NewGrid(cfg.Size)
		for p, o := range cfg.Obstacles {
			g.SetObstacle(p, o)
		}
		for _, p := range g.Positions() {
			if g.Get(p).Sealed() {
				continue
			}
			color, ok := pickColor(g, p, cfg.Colors, tokens.src)
			if !ok {
				break
			}
			g.SetToken(p, tokens.make(color, SpecialNone))
		}
		if g.Validate() == nil && !HasMatch(g) && HasLegalMove(g) {
			return g, attempt, nil
		}
	}
	return nil, attempts, fmt.Errorf("%w after %d attempts", ErrGenerationFailed, attempts)
}

// pickColor draws a color for p that does not complete a run with the cells
// already placed to the left and above.
func pickColor(g *Grid, p Pos, palette int, src Source) (Color, bool) {
	banned := func(c Color) bool {
		return sameTwo(g, p.Add(0, -1), p.Add(0, -2), c) || sameTwo(g, p.Add(-1, 0), p.Add(-2, 0), c)
	}
	candidates := make([]Color, 0, palette)
	for c := Color(0); int(c) < palette; c++ {
		if !banned(c) {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		return 0, false
	}
	return candidates[src.Intn(len(candidates))], true
}

func sameTwo(g *Grid, a, b Pos, c Color) bool {
	ca, oka := matchColor(g.Get(a))
	cb, okb := matchColor(g.Get(b))
	return oka && okb && ca == c && cb == c
}

// Reshuffle rearranges the tokens of a settled board that has no legal
// move, keeping obstacles in place. It first permutes the existing tokens;
// if no permutation within MaxAttempts is stable and solvable it falls back
// to fresh generation. regenerated reports the fallback.
func Reshuffle(g *Grid, cfg GenerateConfig, src Source) (out *Grid, attempts int, regenerated bool, err error) {
	return reshuffle(g, cfg, tokenFactory{src: src})
}

func reshuffle(g *Grid, cfg GenerateConfig, tokens tokenFactory) (*Grid, int, bool, error) {
	var slots []Pos
	var pool []*Token
	for _, p := range g.Positions() {
		cell := g.Get(p)
		if cell.Sealed() {
			continue
		}
		slots = append(slots, p)
		if cell.Token != nil {
			pool = append(pool, cell.Token)
		}
	}

	limit := cfg.MaxAttempts
	if limit <= 0 {
		limit = 1
	}
	if len(pool) == len(slots) {
		for attempt := 1; attempt <= limit; attempt++ {
			for i := len(pool) - 1; i > 0; i-- {
				j := tokens.src.Intn(i + 1)
				pool[i], pool[j] = pool[j], pool[i]
			}
			next := g.Clone()
			for i, p := range slots {
				next.SetToken(p, pool[i])
			}
			if !HasMatch(next) && HasLegalMove(next) {
				return next, attempt, false, nil
			}
		}
	}

	obstacles := make(map[Pos]Obstacle)
	for _, p := range g.Positions() {
		if o := g.Get(p).Obstacle; o != ObstacleNone {
			obstacles[p] = o
		}
	}
	regen := cfg
	regen.Size = g.N
	regen.Obstacles = obstacles
	next, n, err := generate(regen, tokens)
	return next, limit + n, true, err
}
