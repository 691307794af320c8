package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/crystal-crush/internal/config"
	"github.com/vovakirdan/crystal-crush/internal/games/crush/levels"
	"github.com/vovakirdan/crystal-crush/internal/storage"
)

var flagLevelsPlayer string

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the levels",
	Long: `Shows every level with its moves, goals and your best stars.
Locked levels open once the level before them has been won.

Examples:
  crush levels
  crush levels --difficulty hard
  crush levels --levels ./my-levels`,
	Run: runLevels,
}

func init() {
	levelsCmd.Flags().StringVar(&flagLevelsPlayer, "player", storage.LocalPlayer, "Player whose results are shown")
}

func runLevels(cmd *cobra.Command, args []string) {
	cfg, preset, list := loadSetup()

	bests := map[string]storage.Best{}
	if store := openStore(); store != nil {
		if b, err := store.BestResults(flagLevelsPlayer); err == nil {
			bests = b
		}
		store.Close()
	}
	unlocked := levels.Unlocked(list, func(id string) bool {
		return bests[id].Won
	})

	fmt.Printf("Levels (%s)\n", preset)
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, lvl := range list {
		maxIDLen = max(maxIDLen, len(lvl.ID))
	}

	fmt.Printf("  %-3s  %-*s  %-18s  %-5s  %-6s  %s\n", "#", maxIDLen, "ID", "Name", "Moves", "Stars", "Goals")
	fmt.Printf("  %-3s  %-*s  %-18s  %-5s  %-6s  %s\n", "-", maxIDLen, "--", "----", "-----", "-----", "-----")

	for i, entry := range list {
		lvl := config.ApplyPreset(entry.Level, preset, cfg.Rules())

		stars := "locked"
		if unlocked[i] {
			n := bests[lvl.ID].Stars
			stars = strings.Repeat("*", n) + strings.Repeat(".", 3-n)
		}
		fmt.Printf("  %-3d  %-*s  %-18s  %-5d  %-6s  %s\n",
			lvl.Number, maxIDLen, lvl.ID, lvl.Name, lvl.Moves, stars, lvl.Objectives)
	}

	fmt.Println()
	fmt.Println("Run 'crush play <level>' to play a level.")
}
