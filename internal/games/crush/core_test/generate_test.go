package core_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/crystal-crush/internal/games/crush/core"
)

func TestGenerateStableAndSolvable(t *testing.T) {
	cfg := core.GenerateConfig{Size: 8, Colors: 6, MaxAttempts: 100}
	for seed := int64(0); seed < 100; seed++ {
		g, _, err := core.Generate(cfg, core.NewSource(seed))
		if err != nil {
			t.Fatalf("seed %d: Generate failed: %v", seed, err)
		}
		if err := g.Validate(); err != nil {
			t.Errorf("seed %d: %v", seed, err)
		}
		if core.HasMatch(g) {
			t.Errorf("seed %d: board has a match", seed)
		}
		if !core.HasLegalMove(g) {
			t.Errorf("seed %d: board has no legal move", seed)
		}
	}
}

func TestGenerateKeepsObstacles(t *testing.T) {
	obstacles, n, err := core.ParseLayout([]string{
		". . X j j X . .",
		". . X j j X . .",
		"X X . . . . X X",
		"j j . . . . j j",
		"j j . . . . j j",
		"X X . . . . X X",
		". . X j j X . .",
		". . X j j X . .",
	})
	if err != nil {
		t.Fatalf("ParseLayout failed: %v", err)
	}
	g, _, err := core.Generate(core.GenerateConfig{Size: n, Colors: 6, Obstacles: obstacles, MaxAttempts: 100}, core.NewSource(3))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if got := g.CountObstacles(core.ObstacleSealed); got != 16 {
		t.Errorf("sealed = %d, expected 16", got)
	}
	if got := g.CountObstacles(core.ObstacleCoated); got != 16 {
		t.Errorf("coated = %d, expected 16", got)
	}
	for p, o := range obstacles {
		if o == core.ObstacleSealed && g.Token(p) != nil {
			t.Errorf("sealed cell %v holds a token", p)
		}
		if o == core.ObstacleCoated && g.Token(p) == nil {
			t.Errorf("coated cell %v is empty", p)
		}
	}
	if core.HasMatch(g) || !core.HasLegalMove(g) {
		t.Error("board with obstacles is not stable and solvable")
	}
}

func TestGenerateFailsOnImpossibleBoard(t *testing.T) {
	// Every cell sealed leaves no move to find.
	obstacles := make(map[core.Pos]core.Obstacle)
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			obstacles[core.P(r, c)] = core.ObstacleSealed
		}
	}
	_, attempts, err := core.Generate(core.GenerateConfig{Size: 3, Colors: 3, Obstacles: obstacles, MaxAttempts: 5}, core.NewSource(1))
	if !errors.Is(err, core.ErrGenerationFailed) {
		t.Errorf("Generate() = %v, expected ErrGenerationFailed", err)
	}
	if attempts != 5 {
		t.Errorf("attempts = %d, expected 5", attempts)
	}
}

// deadlockedBoard has color (3r+c) mod 6: rows never repeat within six
// cells and columns alternate two colors, so no swap lines up three.
func deadlockedBoard() *core.Grid {
	letters := []string{"R", "G", "B", "Y", "P", "O"}
	rows := make([]string, 8)
	for r := range rows {
		cells := make([]string, 8)
		for c := range cells {
			cells[c] = letters[(3*r+c)%6]
		}
		rows[r] = strings.Join(cells, " ")
	}
	return core.MustParseGrid(rows...)
}

func TestLegalMovesDeadlock(t *testing.T) {
	g := deadlockedBoard()
	if core.HasMatch(g) {
		t.Fatal("fixture has a match")
	}
	if moves := core.LegalMoves(g); len(moves) != 0 {
		t.Errorf("expected no legal moves, got %v", moves)
	}
}

func TestLegalMovesSpecials(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		want int
	}{
		{
			name: "bomb swaps with every neighbor",
			rows: []string{"R G B", "G @ R", "B R G"},
			want: 4,
		},
		{
			name: "two specials side by side",
			rows: []string{"R- G+ B", "G B R", "B R G"},
			want: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := core.MustParseGrid(tt.rows...)
			if got := len(core.LegalMoves(g)); got != tt.want {
				t.Errorf("LegalMoves() has %d swaps, expected %d: %v", got, tt.want, core.LegalMoves(g))
			}
		})
	}
}

func TestLegalMovesOrdering(t *testing.T) {
	g := core.MustParseGrid(
		"R R G B",
		"G B R Y",
		"B Y R G",
		"Y G B R",
	)
	moves := core.LegalMoves(g)
	if len(moves) == 0 {
		t.Fatal("expected a legal move")
	}
	for _, m := range moves {
		if !m.A.Less(m.B) || !m.A.Adjacent(m.B) {
			t.Errorf("swap %v is not (A, right or below A)", m)
		}
	}
}

func TestReshuffleDeadlock(t *testing.T) {
	g := deadlockedBoard()
	out, _, regenerated, err := core.Reshuffle(g, core.GenerateConfig{Colors: 6, MaxAttempts: 100}, core.NewSource(5))
	if err != nil {
		t.Fatalf("Reshuffle failed: %v", err)
	}
	if core.HasMatch(out) || !core.HasLegalMove(out) {
		t.Error("reshuffled board is not stable and solvable")
	}
	if err := out.Validate(); err != nil {
		t.Errorf("reshuffled board invalid: %v", err)
	}
	if !regenerated && out.ColorCounts() != g.ColorCounts() {
		t.Errorf("reshuffle changed the color mix: %v vs %v", out.ColorCounts(), g.ColorCounts())
	}
	if !g.Equal(deadlockedBoard()) {
		t.Error("input board was modified")
	}
}

func TestReshuffleKeepsSealedCells(t *testing.T) {
	g := deadlockedBoard()
	g.SetToken(core.P(0, 0), nil)
	g.SetObstacle(core.P(0, 0), core.ObstacleSealed)

	out, _, _, err := core.Reshuffle(g, core.GenerateConfig{Colors: 6, MaxAttempts: 100}, core.NewSource(5))
	if err != nil {
		t.Fatalf("Reshuffle failed: %v", err)
	}
	if !out.Get(core.P(0, 0)).Sealed() || out.Token(core.P(0, 0)) != nil {
		t.Error("sealed cell moved or gained a token")
	}
}
