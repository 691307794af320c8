// Package storage provides SQLite-based persistence for level results and
// lives. Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/crystal-crush/internal/lives"
)

// LocalPlayer is the player name used outside SSH sessions.
const LocalPlayer = "local"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Result is one finished level attempt.
type Result struct {
	ID        int64
	Player    string
	LevelID   string
	Score     int
	Stars     int
	Won       bool
	MovesLeft int
	Seed      int64
	CreatedAt time.Time
}

// Best is a player's best outcome on a level.
type Best struct {
	LevelID string
	Score   int
	Stars   int
	Won     bool
}

// LevelStats contains aggregated statistics for a level.
type LevelStats struct {
	LevelID    string
	Attempts   int
	Wins       int
	HighScore  int
	AvgScore   float64
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT NOT NULL,
			level_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			stars INTEGER NOT NULL DEFAULT 0,
			won INTEGER NOT NULL DEFAULT 0,
			moves_left INTEGER NOT NULL DEFAULT 0,
			seed INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_level ON results(level_id, score DESC);
		CREATE INDEX IF NOT EXISTS idx_results_player ON results(player, level_id);

		CREATE TABLE IF NOT EXISTS lives (
			player TEXT PRIMARY KEY,
			lives INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveResult records a finished level. Returns the ID of the inserted record.
func (s *Store) SaveResult(r Result) (int64, error) {
	if r.Player == "" {
		r.Player = LocalPlayer
	}
	result, err := s.db.Exec(
		`INSERT INTO results (player, level_id, score, stars, won, moves_left, seed)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.Player, r.LevelID, r.Score, r.Stars, boolToInt(r.Won), r.MovesLeft, r.Seed,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopResults retrieves the top N results for a level across all players.
// Results are ordered by score descending.
func (s *Store) TopResults(levelID string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, player, level_id, score, stars, won, moves_left, seed, created_at
		 FROM results
		 WHERE level_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var out []Result
	for rows.Next() {
		var r Result
		var won int
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Player, &r.LevelID, &r.Score, &r.Stars, &won, &r.MovesLeft, &r.Seed, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Won = won != 0
		r.CreatedAt = parseTime(createdAt)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// BestResults returns the player's best score, best stars and whether the
// level was ever won, keyed by level ID.
func (s *Store) BestResults(player string) (map[string]Best, error) {
	rows, err := s.db.Query(
		`SELECT level_id, MAX(score), MAX(stars), MAX(won)
		 FROM results
		 WHERE player = ?
		 GROUP BY level_id`,
		player,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best results: %w", err)
	}
	defer rows.Close()

	best := make(map[string]Best)
	for rows.Next() {
		var b Best
		var won int
		if err := rows.Scan(&b.LevelID, &b.Score, &b.Stars, &won); err != nil {
			return nil, fmt.Errorf("storage: cannot scan best row: %w", err)
		}
		b.Won = won != 0
		best[b.LevelID] = b
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return best, nil
}

// HighScore returns the highest score for a level.
// Returns 0 if no results exist.
func (s *Store) HighScore(levelID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM results WHERE level_id = ?",
		levelID,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ClearResults deletes all results for a level.
func (s *Store) ClearResults(levelID string) error {
	if _, err := s.db.Exec("DELETE FROM results WHERE level_id = ?", levelID); err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}

// GetLevelStats retrieves aggregated statistics for a level.
func (s *Store) GetLevelStats(levelID string) (*LevelStats, error) {
	stats := &LevelStats{LevelID: levelID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(won), 0), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0)
		 FROM results WHERE level_id = ?`,
		levelID,
	).Scan(&stats.Attempts, &stats.Wins, &stats.HighScore, &stats.AvgScore)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM results WHERE level_id = ? ORDER BY created_at DESC, id DESC LIMIT 1`,
		levelID,
	).Scan(&lastPlayed)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}
	return stats, nil
}

// LoadLives returns the stored lives count and the time it was last
// updated. ok is false when the player has no record yet.
func (s *Store) LoadLives(player string) (int, time.Time, bool, error) {
	var n int
	var updated int64
	err := s.db.QueryRow(
		"SELECT lives, updated_at FROM lives WHERE player = ?",
		player,
	).Scan(&n, &updated)
	if err == sql.ErrNoRows {
		return 0, time.Time{}, false, nil
	}
	if err != nil {
		return 0, time.Time{}, false, fmt.Errorf("storage: cannot load lives: %w", err)
	}
	return n, time.UnixMilli(updated), true, nil
}

// SaveLives stores the lives count for a player.
func (s *Store) SaveLives(player string, n int, updated time.Time) error {
	_, err := s.db.Exec(
		`INSERT INTO lives (player, lives, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(player) DO UPDATE SET lives = excluded.lives, updated_at = excluded.updated_at`,
		player, n, updated.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save lives: %w", err)
	}
	return nil
}

// Ensure Store can back the lives gate.
var _ lives.Store = (*Store)(nil)

// parseTime handles created_at as either time.Time or string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
