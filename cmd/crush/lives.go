package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/crystal-crush/internal/config"
	"github.com/vovakirdan/crystal-crush/internal/lives"
	"github.com/vovakirdan/crystal-crush/internal/storage"
)

var flagLivesPlayer string

var livesCmd = &cobra.Command{
	Use:   "lives",
	Short: "Show lives and the time to the next one",
	Long: `Shows how many lives are left. One life regenerates every period
set in the config (lives.regen) while below the maximum.

Examples:
  crush lives
  crush lives --player alice`,
	Run: runLives,
}

func init() {
	livesCmd.Flags().StringVar(&flagLivesPlayer, "player", storage.LocalPlayer, "Player to show")
}

func runLives(cmd *cobra.Command, args []string) {
	cfg, err := config.LoadCrush(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening results database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	gate := lives.New(cfg.Lives.Max, cfg.Lives.Regen, lives.WithStore(store, flagLivesPlayer))
	st, err := gate.Status()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}

	hearts := strings.Repeat("♥", st.Lives) + strings.Repeat("♡", st.Max-st.Lives)
	fmt.Printf("Lives: %s  %d/%d\n", hearts, st.Lives, st.Max)
	if !st.Full() {
		fmt.Printf("Next life in %s\n", st.NextLife.Round(time.Second))
	}
}
