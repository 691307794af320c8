package core

import (
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

// ErrBusy is returned by StartLevel while a move is resolving.
var ErrBusy = errors.New("engine busy")

// Scoring holds the points per cleared element, before the combo multiplier.
type Scoring struct {
	Base    int // Any cleared token
	Special int // Bonus for a token that carried a special
	Coated  int // Bonus for clearing a coated overlay
	Sealed  int // Per sealed cell broken
}

// Rules are the engine-wide tunables.
type Rules struct {
	Size             int
	Colors           int
	Scoring          Scoring
	MaxAttempts      int // Generation and reshuffle attempts
	MaxCascadeRounds int
}

// DefaultRules returns the reference configuration.
func DefaultRules() Rules {
	return Rules{
		Size:             8,
		Colors:           int(ColorCount),
		Scoring:          Scoring{Base: 10, Special: 50, Coated: 100, Sealed: 200},
		MaxAttempts:      100,
		MaxCascadeRounds: 200,
	}
}

// OutcomeKind classifies a swap attempt.
type OutcomeKind uint8

const (
	OutcomeRejected OutcomeKind = iota // Not accepted; nothing changed
	OutcomeInvalid                     // Accepted, no match; reverted, move spent
	OutcomeResolved                    // Accepted and resolved
)

// String returns the outcome name.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeRejected:
		return "Rejected"
	case OutcomeInvalid:
		return "InvalidNoMatch"
	case OutcomeResolved:
		return "Resolved"
	default:
		return "Unknown"
	}
}

// RejectReason says why a swap was rejected.
type RejectReason uint8

const (
	RejectNone RejectReason = iota
	RejectNotAdjacent
	RejectBusy
	RejectNoToken
	RejectOutOfBounds
	RejectGameOver
	RejectNotStarted
	RejectFault
)

// String returns the reason name.
func (r RejectReason) String() string {
	switch r {
	case RejectNone:
		return "None"
	case RejectNotAdjacent:
		return "NotAdjacent"
	case RejectBusy:
		return "Busy"
	case RejectNoToken:
		return "NoToken"
	case RejectOutOfBounds:
		return "OutOfBounds"
	case RejectGameOver:
		return "GameOver"
	case RejectNotStarted:
		return "NotStarted"
	case RejectFault:
		return "Fault"
	default:
		return "Unknown"
	}
}

// MoveOutcome is the result of AttemptSwap.
type MoveOutcome struct {
	Kind       OutcomeKind
	Reason     RejectReason
	Swap       Swap
	Combo      ComboKind // Set when the swap bypassed the detector
	Rounds     []RoundEvent
	Reshuffle  *ReshuffleEvent
	ScoreDelta int
	State      LevelState
}

// LevelState is the externally visible level status.
type LevelState struct {
	LevelID        string
	Score          int
	MovesRemaining int
	Progress       Progress
	State          GameState
	Stars          int
}

// invalidSwap remembers the last no-match swap for SwapBack.
type invalidSwap struct {
	swap Swap
	move int // Move number the swap consumed
}

// Engine runs one level at a time.
type Engine struct {
	rules  Rules
	logger *log.Logger

	busy  atomic.Bool
	phase atomic.Uint32

	mu             sync.Mutex
	level          Level
	grid           *Grid
	rng            Source
	hints          Source
	tokens         tokenFactory
	palette        int
	score          int
	movesRemaining int
	moveCount      int
	progress       Progress
	state          GameState
	lastInvalid    *invalidSwap
	fault          error
}

// Option configures an Engine.
type Option func(*Engine)

// WithRules overrides the default rules.
func WithRules(r Rules) Option {
	return func(e *Engine) {
		e.rules = r
	}
}

// WithLogger sets the debug logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an engine with no level loaded.
func New(opts ...Option) *Engine {
	e := &Engine{
		rules:  DefaultRules(),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rules.MaxCascadeRounds <= 0 {
		e.rules.MaxCascadeRounds = DefaultRules().MaxCascadeRounds
	}
	return e
}

// Rules returns the engine rules.
func (e *Engine) Rules() Rules {
	return e.rules
}

// StartLevel builds a stable, solvable board for lvl from seed.
func (e *Engine) StartLevel(lvl Level, seed int64) (*Grid, error) {
	return e.StartLevelWithSource(lvl, NewSource(seed))
}

// StartLevelWithSource is StartLevel with an injected random source.
func (e *Engine) StartLevelWithSource(lvl Level, src Source) (*Grid, error) {
	if !e.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer e.busy.Store(false)
	e.mu.Lock()
	defer e.mu.Unlock()

	size, palette := e.dimensions(lvl)
	if err := lvl.Validate(size, palette); err != nil {
		return nil, err
	}

	tokens := tokenFactory{src: src}
	g, attempts, err := generate(GenerateConfig{
		Size:        size,
		Colors:      palette,
		Obstacles:   lvl.Obstacles,
		MaxAttempts: e.rules.MaxAttempts,
	}, tokens)
	if err != nil {
		e.logger.Error("board generation failed", "level", lvl.ID, "attempts", attempts)
		return nil, fmt.Errorf("level %s: %w", lvl.ID, err)
	}

	e.reset(lvl, g, src, palette)
	e.logger.Debug("level started", "level", lvl.ID, "size", size, "colors", palette, "attempts", attempts)
	return g.Clone(), nil
}

// StartLevelWithGrid starts lvl on a prepared board, used for fixtures and
// replays. The board must be settled and stable, and when lvl carries a
// layout its obstacles must match the board cell for cell. A board with no
// legal move is accepted as is; it is only reshuffled after a move resolves.
func (e *Engine) StartLevelWithGrid(lvl Level, g *Grid, src Source) error {
	if !e.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer e.busy.Store(false)
	e.mu.Lock()
	defer e.mu.Unlock()

	_, palette := e.dimensions(lvl)
	if err := lvl.Validate(g.N, palette); err != nil {
		return err
	}
	if err := g.Validate(); err != nil {
		return err
	}
	if HasMatch(g) {
		return levelError("UNSTABLE_BOARD", fmt.Sprintf("level %q board has pending matches", lvl.ID))
	}
	if len(lvl.Obstacles) > 0 {
		for _, p := range g.Positions() {
			if got, want := g.Get(p).Obstacle, lvl.Obstacles[p]; got != want {
				return levelError("LAYOUT_MISMATCH",
					fmt.Sprintf("level %q expects %s at %s, board has %s", lvl.ID, want, p, got))
			}
		}
	}
	e.reset(lvl, g.Clone(), src, palette)
	return nil
}

func (e *Engine) dimensions(lvl Level) (size, palette int) {
	size, palette = e.rules.Size, e.rules.Colors
	if lvl.Size > 0 {
		size = lvl.Size
	}
	if lvl.Colors > 0 {
		palette = lvl.Colors
	}
	return size, palette
}

func (e *Engine) reset(lvl Level, g *Grid, src Source, palette int) {
	e.level = lvl
	e.grid = g
	e.rng = src
	e.hints = NewSource(int64(src.Intn(math.MaxInt32)))
	e.tokens = tokenFactory{src: src}
	e.palette = palette
	e.score = 0
	e.movesRemaining = lvl.Moves
	e.moveCount = 0
	e.progress = NewProgress()
	e.state = StatePlaying
	e.lastInvalid = nil
	e.fault = nil
	e.phase.Store(uint32(PhaseIdle))
}

// AttemptSwap tries to swap the tokens at a and b.
// Rejections and invalid moves are reported in the outcome with a nil error.
// A non-nil error is an engine-state fault; the engine rejects every later
// swap with the same error.
func (e *Engine) AttemptSwap(a, b Pos) (MoveOutcome, error) {
	sw := Swap{A: a, B: b}
	if !e.busy.CompareAndSwap(false, true) {
		return MoveOutcome{Kind: OutcomeRejected, Reason: RejectBusy, Swap: sw}, nil
	}
	defer e.busy.Store(false)
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.fault != nil {
		return e.rejected(sw, RejectFault), e.fault
	}
	if reason := e.check(a, b); reason != RejectNone {
		return e.rejected(sw, reason), nil
	}

	e.phase.Store(uint32(PhaseResolving))
	defer e.phase.Store(uint32(PhaseIdle))

	e.movesRemaining--
	e.moveCount++
	e.lastInvalid = nil
	before := e.score

	out := MoveOutcome{Kind: OutcomeResolved, Swap: sw}
	var rounds []RoundEvent
	var err error

	if plan, ok := planCombo(e.grid, e.rng, e.tokens, e.palette, a, b); ok {
		out.Combo = plan.kind
		rounds, err = e.cascade(&plan, Matches{})
	} else {
		snapshot := e.grid.Clone()
		e.grid.Swap(a, b)
		matches := FindMatches(e.grid, a, b)
		if matches.Empty() {
			e.grid = snapshot
			e.lastInvalid = &invalidSwap{swap: sw, move: e.moveCount}
			e.state = Evaluate(e.level.Objectives, e.progress, e.movesRemaining)
			e.logger.Debug("invalid move", "swap", sw, "moves", e.movesRemaining, "state", e.state)
			out.Kind = OutcomeInvalid
			out.State = e.levelState()
			return out, nil
		}
		rounds, err = e.cascade(nil, matches)
	}
	if err == nil {
		err = e.grid.Validate()
	}
	if err != nil {
		e.fault = err
		e.logger.Error("engine fault", "swap", sw, "err", err)
		return e.rejected(sw, RejectFault), err
	}
	e.phase.Store(uint32(PhaseSettled))

	out.Rounds = rounds
	out.ScoreDelta = e.score - before
	e.state = Evaluate(e.level.Objectives, e.progress, e.movesRemaining)

	if e.state == StatePlaying && !HasLegalMove(e.grid) {
		ev, rerr := e.reshuffle()
		if rerr != nil {
			e.fault = rerr
			e.logger.Error("reshuffle failed", "err", rerr)
			return e.rejected(sw, RejectFault), rerr
		}
		out.Reshuffle = ev
	}

	out.State = e.levelState()
	e.logger.Debug("move resolved",
		"swap", sw,
		"combo", out.Combo,
		"rounds", len(rounds),
		"score", out.ScoreDelta,
		"moves", e.movesRemaining,
		"state", e.state,
	)
	return out, nil
}

// check validates a swap request without touching state.
func (e *Engine) check(a, b Pos) RejectReason {
	switch {
	case e.grid == nil:
		return RejectNotStarted
	case e.state != StatePlaying:
		return RejectGameOver
	case !e.grid.InBounds(a) || !e.grid.InBounds(b):
		return RejectOutOfBounds
	case !a.Adjacent(b):
		return RejectNotAdjacent
	case e.grid.Token(a) == nil || e.grid.Token(b) == nil:
		return RejectNoToken
	}
	return RejectNone
}

func (e *Engine) rejected(sw Swap, reason RejectReason) MoveOutcome {
	return MoveOutcome{Kind: OutcomeRejected, Reason: reason, Swap: sw, State: e.levelState()}
}

func (e *Engine) reshuffle() (*ReshuffleEvent, error) {
	g, attempts, regenerated, err := reshuffle(e.grid, GenerateConfig{
		Colors:      e.palette,
		MaxAttempts: e.rules.MaxAttempts,
	}, e.tokens)
	if err != nil {
		return nil, err
	}
	e.grid = g
	e.logger.Debug("board reshuffled", "attempts", attempts, "regenerated", regenerated)
	return &ReshuffleEvent{Regenerated: regenerated, Attempts: attempts, Board: g.Clone()}, nil
}

// SwapBack refunds the move spent on the last invalid swap, once, if no
// other move has been made since. A loss caused by that swap is undone.
func (e *Engine) SwapBack() bool {
	if e.busy.Load() {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.lastInvalid == nil || e.lastInvalid.move != e.moveCount || e.fault != nil {
		return false
	}
	e.movesRemaining++
	e.lastInvalid = nil
	if e.state == StateLost {
		e.state = Evaluate(e.level.Objectives, e.progress, e.movesRemaining)
	}
	e.logger.Debug("swap back", "moves", e.movesRemaining, "state", e.state)
	return true
}

// CanSwapBack reports whether SwapBack would succeed.
func (e *Engine) CanSwapBack() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastInvalid != nil && e.lastInvalid.move == e.moveCount && e.fault == nil
}

// Hint returns a uniformly chosen legal swap.
func (e *Engine) Hint() (Swap, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.grid == nil || e.state != StatePlaying {
		return Swap{}, false
	}
	moves := LegalMoves(e.grid)
	if len(moves) == 0 {
		return Swap{}, false
	}
	return moves[e.hints.Intn(len(moves))], true
}

// LevelState returns the current level status.
func (e *Engine) LevelState() LevelState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.levelState()
}

func (e *Engine) levelState() LevelState {
	return LevelState{
		LevelID:        e.level.ID,
		Score:          e.score,
		MovesRemaining: e.movesRemaining,
		Progress:       e.progress.Clone(),
		State:          e.state,
		Stars:          e.level.StarsFor(e.score, e.state),
	}
}

// Grid returns a snapshot of the committed board, or nil before a level starts.
func (e *Engine) Grid() *Grid {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.grid == nil {
		return nil
	}
	return e.grid.Clone()
}

// Level returns the loaded level.
func (e *Engine) Level() Level {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.level
}

// Phase returns the resolution phase. It can be read while a move resolves.
func (e *Engine) Phase() Phase {
	return Phase(e.phase.Load())
}
