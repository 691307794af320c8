package core_test

import (
	"testing"

	"github.com/vovakirdan/crystal-crush/internal/games/crush/core"
)

// Rows of the base board: two alternating row patterns with no runs.
const (
	evenRow = "G B G B G B G B"
	oddRow  = "Y P Y P Y P Y P"
)

// baseRows returns the 8×8 stable base board as text rows.
func baseRows() []string {
	rows := make([]string, 8)
	for i := range rows {
		if i%2 == 0 {
			rows[i] = evenRow
		} else {
			rows[i] = oddRow
		}
	}
	return rows
}

// withRows replaces selected rows of the base board.
func withRows(over map[int]string) []string {
	rows := baseRows()
	for i, r := range over {
		rows[i] = r
	}
	return rows
}

// fourRunBoard yields a horizontal red run of four on row 0 when (0,1) and
// (1,1) are swapped.
func fourRunBoard() *core.Grid {
	return core.MustParseGrid(withRows(map[int]string{
		0: "R G R R G B G B",
		1: "Y R Y P Y P Y P",
	})...)
}

// obstacleBoard yields an L of five reds around (2,2) when (2,2) and (1,2)
// are swapped. The run's end (2,0) is coated and (5,2), below the run's
// foot, is sealed.
func obstacleBoard() *core.Grid {
	return core.MustParseGrid(withRows(map[int]string{
		1: "Y P R P Y P Y P",
		2: "R* R G B G B G B",
		3: "Y P R P Y P Y P",
		4: "G B R B G B G B",
		5: "Y P # P Y P Y P",
	})...)
}

func testLevel(moves, score int) core.Level {
	return core.Level{
		ID:         "test",
		Number:     1,
		Moves:      moves,
		Objectives: core.Objectives{Score: score},
	}
}

// startOn starts a level on a fixed board.
func startOn(t *testing.T, lvl core.Level, g *core.Grid) *core.Engine {
	t.Helper()
	e := core.New()
	if err := e.StartLevelWithGrid(lvl, g, core.NewSource(7)); err != nil {
		t.Fatalf("StartLevelWithGrid() failed: %v", err)
	}
	return e
}

func posSet(ps []core.Pos) map[core.Pos]bool {
	out := make(map[core.Pos]bool, len(ps))
	for _, p := range ps {
		out[p] = true
	}
	return out
}
