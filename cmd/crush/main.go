// crush is a match-3 puzzle game for the terminal.
//
// Usage:
//
//	crush levels             - List the campaign
//	crush play [level]       - Open the level menu, or play a level directly
//	crush scores <level>     - Show the best results for a level
//	crush serve              - Start SSH server for remote play
//	crush simulate <level>   - Let the hint system play a level headless
//	crush lives              - Show lives and the time to the next one
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible boards
//	--db <path>           - Set database path (default: ~/.crush/crush.db)
//	--config <path>       - Use a custom config YAML
//	--difficulty <name>   - easy, normal or hard
//	--levels <dir>        - Load levels from a directory instead of the campaign
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLevelsDir  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "crush",
	Short: "Crystal Crush - a match-3 puzzle game for your terminal",
	Long: `Crystal Crush is a match-3 puzzle game played in the terminal.
Swap neighbouring crystals to line up three or more of a color, build
striped, wrapped and color bomb crystals, and meet each level's goals
before the moves run out.

Available commands:
  levels    - List the campaign
  play      - Level menu or a level directly
  scores    - Best results for a level
  serve     - Start SSH server for remote play
  simulate  - Headless autoplay driven by hints
  lives     - Show lives

Examples:
  crush play
  crush play 3 --difficulty easy
  crush scores level-02
  crush simulate 1 --seed 42
  crush serve --ssh :2222`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.crush/crush.db", "Path to results database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "", "Directory of level files (default: built-in campaign)")

	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(livesCmd)
}
