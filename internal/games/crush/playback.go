package crush

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/crystal-crush/internal/config"
	platformcore "github.com/vovakirdan/crystal-crush/internal/core"
	"github.com/vovakirdan/crystal-crush/internal/games/crush/core"
)

// Frame is one step of a recorded move as shown on screen.
type Frame struct {
	Board   *core.Grid
	Marks   mapset.Set[core.Pos] // Cells drawn highlighted
	Labels  []core.CellPoints    // Floating "+N" labels
	Rise    int                  // Rows the labels have floated up
	Caption string
	Ticks   int
}

// Playback steps through the frames of one move. It only reads the
// recorded boards and never touches the engine.
type Playback struct {
	frames    []Frame
	index     int
	remaining int
}

func newPlayback(frames []Frame) *Playback {
	p := &Playback{frames: frames}
	if len(frames) > 0 {
		p.remaining = frames[0].Ticks
	}
	return p
}

// Done reports whether every frame has been shown.
func (p *Playback) Done() bool {
	return p == nil || p.index >= len(p.frames)
}

// Current returns the frame on screen.
func (p *Playback) Current() Frame {
	if p.Done() {
		return Frame{}
	}
	return p.frames[p.index]
}

// Len returns the number of frames.
func (p *Playback) Len() int {
	if p == nil {
		return 0
	}
	return len(p.frames)
}

// Advance moves time forward one tick.
func (p *Playback) Advance() {
	if p.Done() {
		return
	}
	p.remaining--
	if p.remaining > 0 {
		return
	}
	p.index++
	if !p.Done() {
		p.remaining = p.frames[p.index].Ticks
	}
}

// Skip jumps to the end.
func (p *Playback) Skip() {
	if p != nil {
		p.index = len(p.frames)
	}
}

// buildPlayback turns a move outcome into frames. before is the board the
// swap was made on.
func buildPlayback(before *core.Grid, out core.MoveOutcome, pacing config.PacingConfig, rt platformcore.RuntimeConfig) *Playback {
	a, b := out.Swap.A, out.Swap.B
	// Combos fire in place, so only plain swaps show the exchange.
	swapped := before.Clone()
	if out.Combo == core.ComboNone {
		swapped.Swap(a, b)
	}

	frames := []Frame{{
		Board: swapped,
		Marks: marks(a, b),
		Ticks: rt.TicksFor(pacing.Swap),
	}}

	switch out.Kind {
	case core.OutcomeInvalid:
		frames = append(frames, Frame{
			Board:   before,
			Marks:   marks(a, b),
			Caption: "No match",
			Ticks:   rt.TicksFor(pacing.Swap),
		})

	case core.OutcomeResolved:
		if out.Combo != core.ComboNone && len(out.Rounds) > 0 {
			frames[0].Caption = out.Combo.String() + "!"
		}
		for _, r := range out.Rounds {
			clearTicks := rt.TicksFor(pacing.Clear)
			if hasSpecialEffect(r.Effects) {
				clearTicks += rt.TicksFor(pacing.Effect)
			}
			cleared := marks(r.Cleared...)
			for _, p := range r.SealedBroken {
				cleared.Put(p)
			}
			frames = append(frames,
				Frame{
					Board:   r.AfterClear,
					Marks:   cleared,
					Labels:  r.Points,
					Caption: roundCaption(r),
					Ticks:   clearTicks,
				},
				Frame{
					Board:  r.AfterGravity,
					Labels: r.Points,
					Rise:   1,
					Ticks:  rt.TicksFor(pacing.Fall),
				},
				Frame{
					Board: r.AfterRefill,
					Marks: spawnMarks(r.Spawns),
					Ticks: rt.TicksFor(pacing.Fall),
				},
			)
		}
	}

	if out.Reshuffle != nil {
		frames = append(frames, Frame{
			Board:   out.Reshuffle.Board,
			Caption: "No moves left, reshuffling",
			Ticks:   rt.TicksFor(pacing.Effect),
		})
	}
	return newPlayback(frames)
}

func marks(ps ...core.Pos) mapset.Set[core.Pos] {
	s := mapset.New[core.Pos]()
	for _, p := range ps {
		s.Put(p)
	}
	return s
}

func spawnMarks(spawns []core.Spawn) mapset.Set[core.Pos] {
	s := mapset.New[core.Pos]()
	for _, sp := range spawns {
		s.Put(sp.Pos)
	}
	return s
}

func hasSpecialEffect(effects []core.Effect) bool {
	for _, e := range effects {
		if _, plain := e.(core.PlainClear); !plain {
			return true
		}
	}
	return false
}

// roundCaption names the most notable effect of a round.
func roundCaption(r core.RoundEvent) string {
	var caption string
	rank := 0
	for _, e := range r.Effects {
		name, n := effectName(e)
		if n > rank {
			caption, rank = name, n
		}
	}
	if r.Combo > 1 {
		if caption != "" {
			caption += "  "
		}
		caption += fmt.Sprintf("Cascade x%d", r.Combo)
	}
	return caption
}

func effectName(e core.Effect) (string, int) {
	switch e := e.(type) {
	case core.ComboBlast:
		return e.Kind.String() + "!", 4
	case core.ColorBombArcs:
		return "Color bomb!", 3
	case core.WrappedBlast:
		return "Wrapped!", 2
	case core.StripedBeam:
		return "Striped!", 1
	}
	return "", 0
}
