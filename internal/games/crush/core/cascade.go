package core

import "fmt"

// Phase is the engine's resolution phase.
type Phase uint32

const (
	PhaseIdle Phase = iota
	PhaseResolving
	PhaseSettled
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseResolving:
		return "Resolving"
	case PhaseSettled:
		return "Settled"
	default:
		return "Unknown"
	}
}

// cascade runs rounds until the board is stable. The first round uses the
// combo plan when one is given, otherwise the detector result first.
func (e *Engine) cascade(plan *comboPlan, first Matches) ([]RoundEvent, error) {
	var rounds []RoundEvent
	combo := 0

	for round := 1; ; round++ {
		res := NewResolver(e.grid, e.rng, e.palette)
		var matches Matches
		var seed []Pos
		var effects []Effect

		switch {
		case round == 1 && plan != nil:
			seed = plan.seed
			for _, p := range plan.activated {
				res.Activated.Put(p)
			}
			effects = append(effects, plan.effect)
		case round == 1:
			matches = first
		default:
			matches = FindMatches(e.grid)
		}
		if !matches.Empty() {
			seed = matches.Cells()
			effects = append(effects, PlainClear{Cells: seed})
		}

		exp := res.Expand(seed)
		if exp.Empty() {
			break
		}
		if round > e.rules.MaxCascadeRounds {
			return rounds, invariantError("CASCADE_OVERFLOW",
				fmt.Sprintf("board still unstable after %d rounds", e.rules.MaxCascadeRounds))
		}

		combo++
		rounds = append(rounds, e.applyRound(round, combo, exp, matches.Formations, effects))
	}
	return rounds, nil
}

// applyRound scores and commits one expanded clear-set, then applies
// gravity and refill.
func (e *Engine) applyRound(round, combo int, exp Expansion, formations []Formation, effects []Effect) RoundEvent {
	scoring := e.rules.Scoring
	cleared := exp.ClearedPositions()

	ev := RoundEvent{
		Round:     round,
		Combo:     combo,
		Cleared:   cleared,
		Effects:   effects,
		Activated: exp.Activations,
		Collected: make(map[Color]int),
	}
	for _, a := range exp.Activations {
		ev.Effects = append(ev.Effects, a.Effect)
	}

	for _, p := range cleared {
		cell := e.grid.Get(p)
		points := scoring.Base
		if cell.Token.IsSpecial() {
			points += scoring.Special
		}
		if cell.Coated() {
			points += scoring.Coated
			ev.CoatedCleared = append(ev.CoatedCleared, p)
		}
		if cell.Token.Matchable() {
			ev.Collected[cell.Token.Color]++
		}
		points *= combo
		ev.Points = append(ev.Points, CellPoints{Pos: p, Points: points})
		ev.ScoreDelta += points
	}
	for _, p := range exp.SealedHits {
		points := scoring.Sealed * combo
		ev.SealedBroken = append(ev.SealedBroken, p)
		ev.Points = append(ev.Points, CellPoints{Pos: p, Points: points})
		ev.ScoreDelta += points
	}

	formed := make(map[Pos]Formation)
	for _, f := range formations {
		if exp.Cleared.Has(f.Pos) {
			formed[f.Pos] = f
			ev.Formations = append(ev.Formations, f)
		}
	}

	for _, p := range cleared {
		if f, ok := formed[p]; ok {
			e.grid.SetToken(p, e.tokens.make(f.Color, f.Special))
		} else {
			e.grid.SetToken(p, nil)
		}
		if e.grid.Get(p).Coated() {
			e.grid.SetObstacle(p, ObstacleNone)
		}
	}
	for _, p := range exp.SealedHits {
		e.grid.SetObstacle(p, ObstacleNone)
	}
	ev.AfterClear = e.grid.Clone()

	ev.Falls = ApplyGravity(e.grid)
	ev.AfterGravity = e.grid.Clone()

	ev.Spawns = refill(e.grid, e.tokens, e.palette)
	ev.AfterRefill = e.grid.Clone()

	e.score += ev.ScoreDelta
	e.progress.Score = e.score
	e.progress.Coated += len(ev.CoatedCleared)
	e.progress.Sealed += len(ev.SealedBroken)
	for c, n := range ev.Collected {
		e.progress.Colors[c] += n
	}
	return ev
}
