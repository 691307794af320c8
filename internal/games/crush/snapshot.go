package crush

import (
	"hash/fnv"
	"strconv"
)

// Snapshot captures what the player sees, in primitive types, for
// determinism checks and debugging.
type Snapshot struct {
	Tick      uint64
	LevelID   string
	Seed      int64
	Score     int
	Moves     int
	State     string
	CursorRow int
	CursorCol int
	Picked    bool
	Playback  bool
	Overlay   int // Entries on the result overlay; 0 while playing
	Board     string
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	st := g.engine.LevelState()
	snap := Snapshot{
		Tick:      g.tick,
		LevelID:   st.LevelID,
		Seed:      g.runtime.Seed,
		Score:     st.Score,
		Moves:     st.MovesRemaining,
		State:     st.State.String(),
		CursorRow: g.cursor.Row,
		CursorCol: g.cursor.Col,
		Picked:    g.picked,
		Playback:  !g.playback.Done(),
		Overlay:   len(g.overlay),
	}
	if g.board != nil {
		snap.Board = g.board.String()
	}
	return snap
}

// Hash returns an FNV-1a hash of the snapshot.
func (snap Snapshot) Hash() uint64 {
	h := fnv.New64a()
	write := func(s string) {
		h.Write([]byte(s))
		h.Write([]byte{0})
	}
	write(strconv.FormatUint(snap.Tick, 10))
	write(snap.LevelID)
	write(strconv.FormatInt(snap.Seed, 10))
	write(strconv.Itoa(snap.Score))
	write(strconv.Itoa(snap.Moves))
	write(snap.State)
	write(strconv.Itoa(snap.CursorRow))
	write(strconv.Itoa(snap.CursorCol))
	write(strconv.FormatBool(snap.Picked))
	write(strconv.FormatBool(snap.Playback))
	write(strconv.Itoa(snap.Overlay))
	write(snap.Board)
	return h.Sum64()
}
