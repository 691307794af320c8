package core

import "testing"

func TestAttemptSwapWhileBusy(t *testing.T) {
	e := New()
	if _, err := e.StartLevel(Level{ID: "busy", Moves: 10, Objectives: Objectives{Score: 100}}, 1); err != nil {
		t.Fatalf("StartLevel failed: %v", err)
	}
	before := e.Grid()

	e.busy.Store(true)
	out, err := e.AttemptSwap(P(0, 0), P(0, 1))
	e.busy.Store(false)

	if err != nil {
		t.Fatalf("AttemptSwap failed: %v", err)
	}
	if out.Kind != OutcomeRejected || out.Reason != RejectBusy {
		t.Errorf("outcome = %v/%v, expected Rejected/Busy", out.Kind, out.Reason)
	}
	if !e.Grid().Equal(before) {
		t.Error("busy rejection changed the grid")
	}
	if e.LevelState().MovesRemaining != 10 {
		t.Errorf("moves = %d, expected 10", e.LevelState().MovesRemaining)
	}
	if e.SwapBack() {
		t.Error("SwapBack() should fail without an invalid swap")
	}
}

func TestStartLevelWhileBusy(t *testing.T) {
	e := New()
	e.busy.Store(true)
	defer e.busy.Store(false)

	if _, err := e.StartLevel(Level{ID: "busy", Moves: 10, Objectives: Objectives{Score: 100}}, 1); err != ErrBusy {
		t.Errorf("StartLevel() = %v, expected ErrBusy", err)
	}
}

func TestFaultIsSticky(t *testing.T) {
	e := New()
	if _, err := e.StartLevel(Level{ID: "fault", Moves: 10, Objectives: Objectives{Score: 100}}, 1); err != nil {
		t.Fatalf("StartLevel failed: %v", err)
	}
	e.fault = invariantError("TEST", "injected")

	hint, ok := e.Hint()
	if !ok {
		t.Fatal("expected a hint")
	}
	for i := 0; i < 2; i++ {
		out, err := e.AttemptSwap(hint.A, hint.B)
		if err == nil {
			t.Fatal("expected the stored fault")
		}
		if out.Reason != RejectFault {
			t.Errorf("reason = %v, expected Fault", out.Reason)
		}
	}
}

func TestTokenFactoryDeterministic(t *testing.T) {
	a := tokenFactory{src: NewSource(5)}
	b := tokenFactory{src: NewSource(5)}
	for i := 0; i < 10; i++ {
		ta, tb := a.random(6), b.random(6)
		if *ta != *tb {
			t.Fatalf("token %d differs: %v vs %v", i, ta, tb)
		}
	}
}

func TestRefillFillsFromTop(t *testing.T) {
	g := MustParseGrid(
		". . R",
		"# . G",
		"R G B",
	)
	spawns := refill(g, tokenFactory{src: NewSource(1)}, 6)

	want := []Pos{P(0, 0), P(0, 1), P(1, 1)}
	if len(spawns) != len(want) {
		t.Fatalf("got %d spawns, expected %d", len(spawns), len(want))
	}
	for i, s := range spawns {
		if s.Pos != want[i] {
			t.Errorf("spawn %d at %v, expected %v", i, s.Pos, want[i])
		}
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate() after refill = %v", err)
	}
}

func TestCascadeRoundCap(t *testing.T) {
	e := New(WithRules(Rules{
		Size:             8,
		Colors:           6,
		Scoring:          DefaultRules().Scoring,
		MaxAttempts:      100,
		MaxCascadeRounds: 1,
	}))
	// Any move that cascades past the first round overflows.
	if _, err := e.StartLevel(Level{ID: "cap", Moves: 50, Objectives: Objectives{Score: 1_000_000}}, 3); err != nil {
		t.Fatalf("StartLevel failed: %v", err)
	}
	for e.LevelState().State == StatePlaying {
		hint, _ := e.Hint()
		out, err := e.AttemptSwap(hint.A, hint.B)
		if err != nil {
			ee, ok := err.(EngineError)
			if !ok || ee.Code != "CASCADE_OVERFLOW" {
				t.Errorf("error = %v, expected CASCADE_OVERFLOW", err)
			}
			return
		}
		if len(out.Rounds) > 1 {
			t.Fatalf("resolved %d rounds with a cap of 1", len(out.Rounds))
		}
	}
}
