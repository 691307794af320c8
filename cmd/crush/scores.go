package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores <level>",
	Short: "Show the best results for a level",
	Long: `Display the top results for a level, by ID or number.

Examples:
  crush scores level-01
  crush scores 4 --limit 20`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of results to show")
}

func runScores(cmd *cobra.Command, args []string) {
	_, _, list := loadSetup()

	i, err := findLevel(list, args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'crush levels' to see available levels.")
		os.Exit(1)
	}
	lvl := list[i]

	store := openStore()
	if store == nil {
		os.Exit(1)
	}
	defer store.Close()

	results, err := store.TopResults(lvl.ID, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving results: %v\n", err)
		return
	}

	fmt.Printf("Best Results - Level %d: %s\n", lvl.Number, lvl.Name)
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No results recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'crush play %s' to set the first score!\n", lvl.ID)
		return
	}

	fmt.Printf("  %-4s  %-12s  %-8s  %-5s  %-6s  %s\n", "Rank", "Player", "Score", "Stars", "Result", "Date")
	fmt.Printf("  %-4s  %-12s  %-8s  %-5s  %-6s  %s\n", "----", "------", "-----", "-----", "------", "----")

	for n, r := range results {
		outcome := "lost"
		if r.Won {
			outcome = "won"
		}
		fmt.Printf("  %-4d  %-12s  %-8d  %-5d  %-6s  %s\n",
			n+1, r.Player, r.Score, r.Stars, outcome, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetLevelStats(lvl.ID); err == nil {
		fmt.Println()
		fmt.Printf("Attempts: %d  Wins: %d  Best: %d  Average: %.0f\n",
			stats.Attempts, stats.Wins, stats.HighScore, stats.AvgScore)
	}
}
