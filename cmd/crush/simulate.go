package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/crystal-crush/internal/config"
	"github.com/vovakirdan/crystal-crush/internal/games/crush/core"
	"github.com/vovakirdan/crystal-crush/internal/storage"
)

var (
	flagSimMaxMoves int
	flagSimSave     bool
	flagSimPlayer   string
	flagSimBoard    string
	flagSimVerbose  bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <level>",
	Short: "Let the hint system play a level headless",
	Long: `Play a level without a terminal UI: every move is the engine's hint.
Useful to check that a level can be won and to compare seeds.

A board file holds one row per line, cells separated by spaces, in the
same notation the engine prints (for example "R G| B+ #"). It replaces
the generated starting board.

Examples:
  crush simulate 1 --seed 42
  crush simulate level-05 --verbose
  crush simulate 3 --board ./start.txt --save`,
	Args: cobra.ExactArgs(1),
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimMaxMoves, "max-moves", 500, "Stop after this many swaps")
	simulateCmd.Flags().BoolVar(&flagSimSave, "save", false, "Save the result to the database")
	simulateCmd.Flags().StringVar(&flagSimPlayer, "player", "sim", "Player name for saved results")
	simulateCmd.Flags().StringVar(&flagSimBoard, "board", "", "Start from the board in this file")
	simulateCmd.Flags().BoolVarP(&flagSimVerbose, "verbose", "v", false, "Log every cascade round")
}

func runSimulate(_ *cobra.Command, args []string) {
	cfg, preset, list := loadSetup()

	i, err := findLevel(list, args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'crush levels' to see available levels.")
		os.Exit(1)
	}
	rules := cfg.Rules()
	lvl := config.ApplyPreset(list[i].Level, preset, rules)

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "simulate",
	})
	if flagSimVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	engine := core.New(core.WithRules(rules), core.WithLogger(logger))
	if flagSimBoard != "" {
		board, boardErr := readBoard(flagSimBoard)
		if boardErr == nil {
			boardErr = engine.StartLevelWithGrid(lvl, board, core.NewSource(seed))
		}
		if boardErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", boardErr)
			os.Exit(1)
		}
	} else if _, err := engine.StartLevel(lvl, seed); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger.Info("level started", "level", lvl.ID, "seed", seed, "moves", lvl.Moves, "goals", lvl.Objectives.String())

	swaps := 0
	for engine.LevelState().State == core.StatePlaying && swaps < flagSimMaxMoves {
		hint, ok := engine.Hint()
		if !ok {
			logger.Warn("no legal move")
			break
		}
		out, err := engine.AttemptSwap(hint.A, hint.B)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: engine fault: %v\n", err)
			os.Exit(1)
		}
		swaps++

		logger.Info("move",
			"n", swaps,
			"swap", out.Swap.String(),
			"outcome", out.Kind,
			"rounds", len(out.Rounds),
			"points", out.ScoreDelta,
			"score", out.State.Score,
			"left", out.State.MovesRemaining,
		)
		if out.Reshuffle != nil {
			logger.Info("board reshuffled")
		}
		for r, round := range out.Rounds {
			logger.Debug("round", "n", r+1, "combo", round.Combo, "points", round.ScoreDelta)
		}
	}

	st := engine.LevelState()
	fmt.Println()
	fmt.Print(engine.Grid().String())
	fmt.Printf("Level %d: %s\n", list[i].Number, lvl.Name)
	fmt.Printf("Result: %s  Score: %d  Stars: %d  Moves left: %d  Swaps: %d\n",
		st.State, st.Score, st.Stars, st.MovesRemaining, swaps)

	if !flagSimSave || st.State == core.StatePlaying {
		return
	}
	store := openStore()
	if store == nil {
		os.Exit(1)
	}
	defer store.Close()

	if _, err := store.SaveResult(storage.Result{
		Player:    flagSimPlayer,
		LevelID:   st.LevelID,
		Score:     st.Score,
		Stars:     st.Stars,
		Won:       st.State == core.StateWon,
		MovesLeft: st.MovesRemaining,
		Seed:      seed,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving result: %v\n", err)
		return
	}
	fmt.Println("Result saved.")
}

// readBoard parses a board file into a grid. Blank lines are skipped.
func readBoard(path string) (*core.Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read board: %w", err)
	}
	var rows []string
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			rows = append(rows, line)
		}
	}
	return core.ParseGrid(rows)
}
