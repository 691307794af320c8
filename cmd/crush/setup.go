package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/vovakirdan/crystal-crush/internal/config"
	"github.com/vovakirdan/crystal-crush/internal/games/crush/levels"
	"github.com/vovakirdan/crystal-crush/internal/storage"
)

// loadSetup reads the config, difficulty and levels named by the global
// flags, exiting on error.
func loadSetup() (config.CrushConfig, config.DifficultyPreset, []levels.Level) {
	cfg, err := config.LoadCrush(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	list, err := levels.Open(flagLevelsDir).LoadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		os.Exit(1)
	}
	if len(list) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no levels found")
		os.Exit(1)
	}
	return cfg, preset, list
}

// findLevel resolves a level ID or number to its index in list.
func findLevel(list []levels.Level, arg string) (int, error) {
	if i := levels.Index(list, arg); i >= 0 {
		return i, nil
	}
	if n, err := strconv.Atoi(arg); err == nil {
		for i, lvl := range list {
			if lvl.Number == n {
				return i, nil
			}
		}
	}
	return -1, fmt.Errorf("unknown level %q", arg)
}

// openStore opens the results database, warning and returning nil on
// failure so the game still works.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		return nil
	}
	return store
}
