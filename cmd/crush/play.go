package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/crystal-crush/internal/core"
	"github.com/vovakirdan/crystal-crush/internal/lives"
	"github.com/vovakirdan/crystal-crush/internal/platform/tui"
	"github.com/vovakirdan/crystal-crush/internal/storage"
)

var flagTheme string

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play Crystal Crush",
	Long: `Open the level menu, or start a level directly by ID or number.
Starting a level costs a life; retrying from the result screen is free.

Controls:
  Arrows/WASD/HJKL  - Move the cursor
  Space/Enter       - Pick up a crystal, then an arrow swaps it
  Esc               - Drop the crystal
  ?                 - Show a hint
  U                 - Swap back the last invalid move and get it refunded
  P                 - Pause
  R / N / B         - Retry, next level, level menu (result screen)
  Ctrl+S            - Save a screenshot
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - 5 extra moves and 5 colors when the goals allow it
  normal - Levels as designed
  hard   - 3 fewer moves

Examples:
  crush play
  crush play level-03
  crush play 2 --difficulty easy
  crush play --theme basic`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagTheme, "theme", "default", "Color theme: default, basic (16 colors)")
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg, preset, list := loadSetup()

	theme, err := tui.ThemeByName(flagTheme)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	tui.SetTheme(theme)

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	rt := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	store := openStore()
	env := tui.NewEnv(store, cfg, list, preset, storage.LocalPlayer, nil)

	start := -1
	if len(args) == 1 {
		start, err = findLevel(list, args[0])
		if err != nil {
			closeStore(store)
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			fmt.Fprintln(os.Stderr, "Run 'crush levels' to see available levels.")
			os.Exit(1)
		}
		if !env.Unlocked(env.Bests())[start] {
			closeStore(store)
			fmt.Fprintf(os.Stderr, "Error: level %s is locked; win level %d first\n", list[start].ID, list[start-1].Number)
			os.Exit(1)
		}
	}

	runErr := tui.Run(env, rt, start)
	closeStore(store)

	if runErr != nil {
		if errors.Is(runErr, lives.ErrNoLives) {
			st, _ := env.Lives.Status()
			fmt.Fprintf(os.Stderr, "Error: no lives left, next one in %s\n", st.NextLife.Round(time.Second))
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

func closeStore(store *storage.Store) {
	if store != nil {
		store.Close()
	}
}
