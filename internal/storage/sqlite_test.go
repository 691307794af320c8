package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Errorf("Close() failed: %v", err)
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}

	// Reopening runs the migrations again without error.
	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	store.Close()
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreSaveAndTopResults(t *testing.T) {
	store := openTestStore(t)

	results := []Result{
		{Player: "alice", LevelID: "level-01", Score: 1200, Stars: 2, Won: true, MovesLeft: 3, Seed: 7},
		{Player: "bob", LevelID: "level-01", Score: 3400, Stars: 3, Won: true, MovesLeft: 6, Seed: 8},
		{Player: "alice", LevelID: "level-01", Score: 1200, Stars: 1, Won: false, Seed: 9},
		{LevelID: "level-02", Score: 500},
	}
	for _, r := range results {
		id, err := store.SaveResult(r)
		if err != nil {
			t.Fatalf("SaveResult() failed: %v", err)
		}
		if id <= 0 {
			t.Errorf("SaveResult() id = %d, expected positive", id)
		}
	}

	top, err := store.TopResults("level-01", 10)
	if err != nil {
		t.Fatalf("TopResults() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("TopResults() returned %d results, expected 3", len(top))
	}
	if top[0].Player != "bob" || top[0].Score != 3400 {
		t.Errorf("top[0] = %+v, expected bob with 3400", top[0])
	}
	// Equal scores keep insertion order.
	if top[1].Seed != 7 || top[2].Seed != 9 {
		t.Errorf("tied results out of order: seeds %d, %d", top[1].Seed, top[2].Seed)
	}
	if !top[1].Won || top[2].Won {
		t.Errorf("won flags = %v, %v; expected true, false", top[1].Won, top[2].Won)
	}
	if top[0].MovesLeft != 6 || top[0].Stars != 3 {
		t.Errorf("top[0] moves/stars = %d/%d, expected 6/3", top[0].MovesLeft, top[0].Stars)
	}

	other, err := store.TopResults("level-02", 10)
	if err != nil {
		t.Fatalf("TopResults() failed: %v", err)
	}
	if len(other) != 1 || other[0].Player != LocalPlayer {
		t.Errorf("level-02 results = %+v, expected one result for %q", other, LocalPlayer)
	}
}

func TestStoreTopResultsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveResult(Result{LevelID: "level-01", Score: (i + 1) * 100})
	}

	top, err := store.TopResults("level-01", 3)
	if err != nil {
		t.Fatalf("TopResults() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 results with limit, got %d", len(top))
	}
	if top[0].Score != 500 || top[1].Score != 400 || top[2].Score != 300 {
		t.Errorf("Results not in expected order: %v", top)
	}
}

func TestStoreBestResults(t *testing.T) {
	store := openTestStore(t)

	store.SaveResult(Result{Player: "alice", LevelID: "level-01", Score: 900, Stars: 1, Won: true})
	store.SaveResult(Result{Player: "alice", LevelID: "level-01", Score: 400, Stars: 0, Won: false})
	store.SaveResult(Result{Player: "alice", LevelID: "level-02", Score: 300, Stars: 0, Won: false})
	store.SaveResult(Result{Player: "bob", LevelID: "level-03", Score: 9000, Stars: 3, Won: true})

	best, err := store.BestResults("alice")
	if err != nil {
		t.Fatalf("BestResults() failed: %v", err)
	}
	if len(best) != 2 {
		t.Fatalf("BestResults() returned %d levels, expected 2", len(best))
	}

	tests := []struct {
		level string
		want  Best
	}{
		{"level-01", Best{LevelID: "level-01", Score: 900, Stars: 1, Won: true}},
		{"level-02", Best{LevelID: "level-02", Score: 300, Stars: 0, Won: false}},
	}
	for _, tt := range tests {
		if got := best[tt.level]; got != tt.want {
			t.Errorf("BestResults()[%q] = %+v, expected %+v", tt.level, got, tt.want)
		}
	}
	if _, ok := best["level-03"]; ok {
		t.Error("BestResults() leaked another player's level")
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("level-01")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty level, got %d", high)
	}

	store.SaveResult(Result{LevelID: "level-01", Score: 100})
	store.SaveResult(Result{LevelID: "level-01", Score: 300})
	store.SaveResult(Result{LevelID: "level-01", Score: 200})

	high, err = store.HighScore("level-01")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearResults(t *testing.T) {
	store := openTestStore(t)

	store.SaveResult(Result{LevelID: "level-01", Score: 100})
	store.SaveResult(Result{LevelID: "level-01", Score: 200})
	store.SaveResult(Result{LevelID: "level-02", Score: 300})

	if err := store.ClearResults("level-01"); err != nil {
		t.Fatalf("ClearResults() failed: %v", err)
	}

	cleared, _ := store.TopResults("level-01", 10)
	if len(cleared) != 0 {
		t.Errorf("Expected 0 results after clear, got %d", len(cleared))
	}
	kept, _ := store.TopResults("level-02", 10)
	if len(kept) != 1 {
		t.Errorf("level-02 results should not be affected by clearing level-01")
	}
}

func TestStoreLevelStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetLevelStats("level-05")
	if err != nil {
		t.Fatalf("GetLevelStats() failed: %v", err)
	}
	if empty.Attempts != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("stats for unplayed level = %+v", empty)
	}

	store.SaveResult(Result{LevelID: "level-05", Score: 1000, Won: true})
	store.SaveResult(Result{LevelID: "level-05", Score: 500})
	store.SaveResult(Result{LevelID: "level-05", Score: 3000, Won: true})

	stats, err := store.GetLevelStats("level-05")
	if err != nil {
		t.Fatalf("GetLevelStats() failed: %v", err)
	}
	if stats.Attempts != 3 {
		t.Errorf("Attempts = %d, expected 3", stats.Attempts)
	}
	if stats.Wins != 2 {
		t.Errorf("Wins = %d, expected 2", stats.Wins)
	}
	if stats.HighScore != 3000 {
		t.Errorf("HighScore = %d, expected 3000", stats.HighScore)
	}
	if stats.AvgScore != 1500 {
		t.Errorf("AvgScore = %v, expected 1500", stats.AvgScore)
	}
}

func TestStoreLives(t *testing.T) {
	store := openTestStore(t)

	_, _, ok, err := store.LoadLives("alice")
	if err != nil {
		t.Fatalf("LoadLives() failed: %v", err)
	}
	if ok {
		t.Error("LoadLives() ok = true for a new player")
	}

	first := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	if err := store.SaveLives("alice", 3, first); err != nil {
		t.Fatalf("SaveLives() failed: %v", err)
	}

	// A second save replaces the record.
	second := first.Add(15 * time.Minute)
	if err := store.SaveLives("alice", 4, second); err != nil {
		t.Fatalf("SaveLives() failed: %v", err)
	}

	n, updated, ok, err := store.LoadLives("alice")
	if err != nil {
		t.Fatalf("LoadLives() failed: %v", err)
	}
	if !ok || n != 4 {
		t.Errorf("LoadLives() = %d, %v; expected 4, true", n, ok)
	}
	if !updated.Equal(second) {
		t.Errorf("updated = %v, expected %v", updated, second)
	}

	if _, _, ok, _ := store.LoadLives("bob"); ok {
		t.Error("lives leaked between players")
	}
}
