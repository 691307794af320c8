// Package crush adapts the Crystal Crush engine to the terminal platform:
// cursor and selection, paced playback of resolved moves, hints, and the
// end-of-level overlay.
package crush

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/crystal-crush/internal/config"
	platformcore "github.com/vovakirdan/crystal-crush/internal/core"
	"github.com/vovakirdan/crystal-crush/internal/games/crush/core"
)

// Choice is what the player picked on the result overlay.
type Choice int

const (
	ChoiceNone Choice = iota
	ChoiceRetry
	ChoiceNext
	ChoiceMenu
)

// String returns the choice name.
func (c Choice) String() string {
	switch c {
	case ChoiceRetry:
		return "Retry"
	case ChoiceNext:
		return "Next"
	case ChoiceMenu:
		return "Menu"
	default:
		return "None"
	}
}

// Result is a finished level, ready to be recorded.
type Result struct {
	LevelID   string
	Score     int
	Stars     int
	Won       bool
	MovesLeft int
	Seed      int64
}

// StepResult is returned by Step after each tick.
type StepResult struct {
	State  platformcore.GameState
	Choice Choice
}

const (
	hudHeight    = 4
	footerHeight = 3
	cellWidth    = 3
	noticeTime   = 2 * time.Second
)

// overlayItem is one entry of the result overlay.
type overlayItem struct {
	label  string
	choice Choice
	undo   bool
}

// Game runs one level on the terminal platform.
type Game struct {
	cfg    config.CrushConfig
	engine *core.Engine
	logger *log.Logger

	runtime platformcore.RuntimeConfig
	level   core.Level
	hasNext bool

	tick     uint64
	board    *core.Grid
	cursor   core.Pos
	picked   bool
	playback *Playback
	paused   bool
	fault    error

	hint      *core.Swap
	hintUntil uint64

	notice      string
	noticeUntil uint64

	overlay       []overlayItem
	overlayCursor int
}

// Option configures a Game.
type Option func(*Game)

// WithLogger routes engine and game debug output to l.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		g.logger = l
	}
}

// New creates a game using the rules and pacing of cfg.
func New(cfg config.CrushConfig, opts ...Option) *Game {
	g := &Game{
		cfg:    cfg,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.engine = core.New(core.WithRules(cfg.Rules()), core.WithLogger(g.logger))
	return g
}

// ID returns the game identifier used for storage.
func (g *Game) ID() string {
	return "crush"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Crystal Crush"
}

// Start loads lvl and deals a board seeded from rt.Seed.
func (g *Game) Start(lvl core.Level, rt platformcore.RuntimeConfig) error {
	board, err := g.engine.StartLevel(lvl, rt.Seed)
	if err != nil {
		return fmt.Errorf("crush: cannot start %s: %w", lvl.ID, err)
	}
	g.reset(lvl, board, rt)
	return nil
}

// StartWithGrid loads lvl on a prepared board. Refills draw from rt.Seed.
func (g *Game) StartWithGrid(lvl core.Level, board *core.Grid, rt platformcore.RuntimeConfig) error {
	if err := g.engine.StartLevelWithGrid(lvl, board, core.NewSource(rt.Seed)); err != nil {
		return fmt.Errorf("crush: cannot start %s: %w", lvl.ID, err)
	}
	g.reset(lvl, g.engine.Grid(), rt)
	return nil
}

func (g *Game) reset(lvl core.Level, board *core.Grid, rt platformcore.RuntimeConfig) {
	g.runtime = rt
	g.level = lvl
	g.board = board
	g.tick = 0
	g.cursor = core.P(board.N/2, board.N/2)
	g.picked = false
	g.playback = nil
	g.paused = false
	g.fault = nil
	g.hint = nil
	g.notice = ""
	g.overlay = nil
	g.overlayCursor = 0
	g.logger.Debug("level started", "level", lvl.ID, "seed", rt.Seed)
}

// SetHasNext tells the result overlay whether a next level exists.
func (g *Game) SetHasNext(ok bool) {
	g.hasNext = ok
}

// Resize updates the screen dimensions without restarting the level.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
}

// Level returns the level being played.
func (g *Game) Level() core.Level {
	return g.level
}

// Seed returns the seed the board was dealt from.
func (g *Game) Seed() int64 {
	return g.runtime.Seed
}

// Step advances the game by one tick.
func (g *Game) Step(in platformcore.InputFrame) StepResult {
	g.tick++

	switch {
	case g.board == nil:
		if in.Has(platformcore.ActionBack) {
			return g.result(ChoiceMenu)
		}
	case g.fault != nil:
		if in.Has(platformcore.ActionBack) || in.Has(platformcore.ActionSelect) {
			return g.result(ChoiceMenu)
		}
	case !g.playback.Done():
		g.stepPlayback(in)
	case g.overlay != nil:
		return g.result(g.stepOverlay(in))
	case g.paused:
		if in.Has(platformcore.ActionPause) {
			g.paused = false
		}
		if in.Has(platformcore.ActionBack) {
			return g.result(ChoiceMenu)
		}
	default:
		g.stepPlaying(in)
	}
	return g.result(ChoiceNone)
}

func (g *Game) result(c Choice) StepResult {
	return StepResult{State: g.State(), Choice: c}
}

func (g *Game) stepPlayback(in platformcore.InputFrame) {
	if in.Any() {
		g.playback.Skip()
	} else {
		g.playback.Advance()
	}
	if g.playback.Done() {
		g.settle()
	}
}

// settle shows the committed board once playback ends.
func (g *Game) settle() {
	g.playback = nil
	g.board = g.engine.Grid()
	if g.engine.LevelState().State != core.StatePlaying {
		g.openOverlay()
	}
}

func (g *Game) stepPlaying(in platformcore.InputFrame) {
	if in.Has(platformcore.ActionPause) {
		g.paused = true
		g.picked = false
		return
	}
	if in.Has(platformcore.ActionCancel) {
		g.picked = false
	}
	if in.Has(platformcore.ActionHint) {
		g.showHint()
	}
	if in.Has(platformcore.ActionSwapBack) {
		g.swapBack()
	}

	dr, dc := direction(in)
	if dr != 0 || dc != 0 {
		if g.picked {
			g.swapToward(dr, dc)
		} else {
			g.moveCursor(dr, dc)
		}
	}

	if in.Has(platformcore.ActionSelect) {
		g.toggleSelect()
	}
}

func direction(in platformcore.InputFrame) (dr, dc int) {
	switch {
	case in.Has(platformcore.ActionUp):
		return -1, 0
	case in.Has(platformcore.ActionDown):
		return 1, 0
	case in.Has(platformcore.ActionLeft):
		return 0, -1
	case in.Has(platformcore.ActionRight):
		return 0, 1
	}
	return 0, 0
}

func (g *Game) moveCursor(dr, dc int) {
	n := g.board.N
	g.cursor = core.P(
		platformcore.Clamp(g.cursor.Row+dr, 0, n-1),
		platformcore.Clamp(g.cursor.Col+dc, 0, n-1),
	)
}

func (g *Game) toggleSelect() {
	if g.picked {
		g.picked = false
		return
	}
	if g.board.Token(g.cursor) == nil {
		g.say("Nothing to pick up here")
		return
	}
	g.picked = true
}

func (g *Game) swapToward(dr, dc int) {
	from := g.cursor
	to := from.Add(dr, dc)
	g.picked = false
	if !g.board.InBounds(to) {
		g.say("Edge of the board")
		return
	}
	g.cursor = to
	g.attempt(from, to)
}

// attempt hands the swap to the engine and starts playback of the outcome.
func (g *Game) attempt(a, b core.Pos) {
	before := g.board
	out, err := g.engine.AttemptSwap(a, b)
	if err != nil {
		g.fault = err
		g.logger.Error("move failed", "swap", out.Swap, "err", err)
		return
	}
	g.hint = nil

	switch out.Kind {
	case core.OutcomeRejected:
		g.say(rejectText(out.Reason))
	case core.OutcomeInvalid:
		g.playback = buildPlayback(before, out, g.cfg.Pacing, g.runtime)
		if g.engine.CanSwapBack() {
			g.say("No match. Press U to swap back and keep the move")
		}
	case core.OutcomeResolved:
		g.playback = buildPlayback(before, out, g.cfg.Pacing, g.runtime)
		if out.ScoreDelta > 0 {
			g.say(fmt.Sprintf("+%d", out.ScoreDelta))
		}
	}
}

func rejectText(r core.RejectReason) string {
	switch r {
	case core.RejectNotAdjacent:
		return "Crystals must be side by side"
	case core.RejectNoToken:
		return "Nothing to swap there"
	case core.RejectOutOfBounds:
		return "Edge of the board"
	case core.RejectGameOver:
		return "The level is over"
	case core.RejectBusy:
		return "Still resolving"
	default:
		return "Swap refused: " + r.String()
	}
}

func (g *Game) showHint() {
	sw, ok := g.engine.Hint()
	if !ok {
		g.say("No hint available")
		return
	}
	g.hint = &sw
	g.hintUntil = g.tick + uint64(g.runtime.TicksFor(noticeTime))
}

func (g *Game) swapBack() {
	if !g.engine.SwapBack() {
		g.say("Nothing to swap back")
		return
	}
	g.say("Move refunded")
}

func (g *Game) say(msg string) {
	g.notice = msg
	g.noticeUntil = g.tick + uint64(g.runtime.TicksFor(noticeTime))
}

// openOverlay builds the result overlay for a finished level.
func (g *Game) openOverlay() {
	st := g.engine.LevelState()
	g.overlay = nil
	if st.State == core.StateLost && g.engine.CanSwapBack() {
		g.overlay = append(g.overlay, overlayItem{label: "Undo last swap", undo: true})
	}
	g.overlay = append(g.overlay, overlayItem{label: "Retry", choice: ChoiceRetry})
	if st.State == core.StateWon && g.hasNext {
		g.overlay = append(g.overlay, overlayItem{label: "Next level", choice: ChoiceNext})
	}
	g.overlay = append(g.overlay, overlayItem{label: "Level menu", choice: ChoiceMenu})
	g.overlayCursor = 0
	g.logger.Debug("level finished", "level", st.LevelID, "state", st.State, "score", st.Score, "stars", st.Stars)
}

func (g *Game) stepOverlay(in platformcore.InputFrame) Choice {
	switch {
	case in.Has(platformcore.ActionRestart):
		return ChoiceRetry
	case in.Has(platformcore.ActionNext) && g.hasItem(ChoiceNext):
		return ChoiceNext
	case in.Has(platformcore.ActionBack):
		return ChoiceMenu
	case in.Has(platformcore.ActionSwapBack):
		g.undoLoss()
		return ChoiceNone
	case in.Has(platformcore.ActionUp), in.Has(platformcore.ActionLeft):
		if g.overlayCursor > 0 {
			g.overlayCursor--
		}
	case in.Has(platformcore.ActionDown), in.Has(platformcore.ActionRight):
		if g.overlayCursor < len(g.overlay)-1 {
			g.overlayCursor++
		}
	case in.Has(platformcore.ActionSelect):
		item := g.overlay[g.overlayCursor]
		if item.undo {
			g.undoLoss()
			return ChoiceNone
		}
		return item.choice
	}
	return ChoiceNone
}

func (g *Game) hasItem(c Choice) bool {
	for _, it := range g.overlay {
		if it.choice == c && !it.undo {
			return true
		}
	}
	return false
}

// undoLoss takes back the invalid swap that ended the level.
func (g *Game) undoLoss() {
	if g.engine.SwapBack() {
		g.overlay = nil
		g.say("Move refunded")
	}
}

// Result returns the finished level, or false while it is still playing.
func (g *Game) Result() (Result, bool) {
	if g.board == nil || g.fault != nil {
		return Result{}, false
	}
	st := g.engine.LevelState()
	if st.State == core.StatePlaying {
		return Result{}, false
	}
	return Result{
		LevelID:   st.LevelID,
		Score:     st.Score,
		Stars:     st.Stars,
		Won:       st.State == core.StateWon,
		MovesLeft: st.MovesRemaining,
		Seed:      g.runtime.Seed,
	}, true
}

// State returns the status the platform reads after each tick.
func (g *Game) State() platformcore.GameState {
	st := g.engine.LevelState()
	return platformcore.GameState{
		Score:    st.Score,
		GameOver: g.fault != nil || (g.board != nil && st.State != core.StatePlaying && g.playback.Done()),
		Paused:   g.paused,
	}
}

// Fault returns the engine error that stopped the level, if any.
func (g *Game) Fault() error {
	return g.fault
}
