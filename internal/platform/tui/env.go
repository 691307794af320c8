package tui

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/crystal-crush/internal/config"
	"github.com/vovakirdan/crystal-crush/internal/games/crush"
	crushcore "github.com/vovakirdan/crystal-crush/internal/games/crush/core"
	"github.com/vovakirdan/crystal-crush/internal/games/crush/levels"
	"github.com/vovakirdan/crystal-crush/internal/lives"
	"github.com/vovakirdan/crystal-crush/internal/storage"
)

// Env holds what a player session needs besides the game itself.
type Env struct {
	Store      *storage.Store // Optional; results are dropped without it
	Config     config.CrushConfig
	Levels     []levels.Level
	Difficulty config.DifficultyPreset
	Player     string
	Lives      *lives.Gate
	Logger     *log.Logger
}

// NewEnv creates the environment for one player. Lives are persisted in
// store when it is set.
func NewEnv(store *storage.Store, cfg config.CrushConfig, list []levels.Level, preset config.DifficultyPreset, player string, logger *log.Logger) *Env {
	if player == "" {
		player = storage.LocalPlayer
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	var opts []lives.Option
	if store != nil {
		opts = append(opts, lives.WithStore(store, player))
	}

	return &Env{
		Store:      store,
		Config:     cfg,
		Levels:     list,
		Difficulty: preset,
		Player:     player,
		Lives:      lives.New(cfg.Lives.Max, cfg.Lives.Regen, opts...),
		Logger:     logger,
	}
}

// Level returns level i with the difficulty preset applied.
func (e *Env) Level(i int) crushcore.Level {
	return config.ApplyPreset(e.Levels[i].Level, e.Difficulty, e.Config.Rules())
}

// NewGame creates a game using the environment's config and logger.
func (e *Env) NewGame() *crush.Game {
	return crush.New(e.Config, crush.WithLogger(e.Logger))
}

// Bests returns the player's best result per level.
func (e *Env) Bests() map[string]storage.Best {
	if e.Store == nil {
		return map[string]storage.Best{}
	}
	bests, err := e.Store.BestResults(e.Player)
	if err != nil {
		e.Logger.Warn("could not load results", "player", e.Player, "err", err)
		return map[string]storage.Best{}
	}
	return bests
}

// Unlocked reports which levels can be played given the player's bests.
func (e *Env) Unlocked(bests map[string]storage.Best) []bool {
	return levels.Unlocked(e.Levels, func(id string) bool {
		return bests[id].Won
	})
}

// Record saves a finished level for the player.
func (e *Env) Record(res crush.Result) {
	e.Logger.Info("level finished",
		"player", e.Player,
		"level", res.LevelID,
		"score", res.Score,
		"stars", res.Stars,
		"won", res.Won,
	)
	if e.Store == nil {
		return
	}
	_, err := e.Store.SaveResult(storage.Result{
		Player:    e.Player,
		LevelID:   res.LevelID,
		Score:     res.Score,
		Stars:     res.Stars,
		Won:       res.Won,
		MovesLeft: res.MovesLeft,
		Seed:      res.Seed,
	})
	if err != nil {
		e.Logger.Warn("could not save result", "level", res.LevelID, "err", err)
	}
}
