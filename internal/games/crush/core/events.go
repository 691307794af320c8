package core

// Effect describes one visual effect of a round for the presentation layer.
// The set of variants is closed: PlainClear, StripedBeam, WrappedBlast,
// ColorBombArcs and ComboBlast.
type Effect interface {
	effect()
}

// PlainClear is the set of cells cleared directly by matched runs.
type PlainClear struct {
	Cells []Pos
}

// StripedBeam is a striped token firing along its row or column.
type StripedBeam struct {
	Origin Pos
	Axis   Axis
}

// WrappedBlast is a wrapped token exploding around Center.
type WrappedBlast struct {
	Center Pos
	Radius int
}

// ColorBombArcs is a color bomb striking every token of Color.
type ColorBombArcs struct {
	Origin  Pos
	Color   Color
	Targets []Pos
}

// ComboBlast is the combined effect of swapping two specials together.
type ComboBlast struct {
	Kind   ComboKind
	Center Pos
	Colors []Color // Colors struck, for bomb combos
	Cells  []Pos
}

func (PlainClear) effect()    {}
func (StripedBeam) effect()   {}
func (WrappedBlast) effect()  {}
func (ColorBombArcs) effect() {}
func (ComboBlast) effect()    {}

// CellPoints is the score earned by one cell in a round, for floating labels.
type CellPoints struct {
	Pos    Pos
	Points int
}

// Fall is one token moved by gravity.
type Fall struct {
	From  Pos
	To    Pos
	Token *Token
}

// Spawn is one token created by refill.
type Spawn struct {
	Pos   Pos
	Token *Token
}

// RoundEvent records one cascade round. The three grid snapshots are the
// committed board after each step and are never mutated afterwards.
type RoundEvent struct {
	Round         int
	Combo         int
	Cleared       []Pos // Token cells cleared, sorted row-major
	Effects       []Effect
	Activated     []Activation // Specials fired this round, in queue order
	Formations    []Formation  // Formations committed this round
	CoatedCleared []Pos
	SealedBroken  []Pos
	Points        []CellPoints
	ScoreDelta    int
	Collected     map[Color]int
	Falls         []Fall
	Spawns        []Spawn

	AfterClear   *Grid
	AfterGravity *Grid
	AfterRefill  *Grid
}

// ReshuffleEvent is emitted when a settled board had no legal move and was
// rearranged.
type ReshuffleEvent struct {
	Regenerated bool // True if fresh tokens replaced the old ones
	Attempts    int
	Board       *Grid
}
