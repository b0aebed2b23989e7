// Package storage provides SQLite-based persistence for finished games.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// AnonymousName is stored for players without a name.
const AnonymousName = "Anonymous"

// Sources a result can come from.
const (
	SourceLocal = "local"
	SourceSSH   = "ssh"
)

// Store manages the SQLite database connection for result persistence.
type Store struct {
	db *sql.DB
}

// Result is one finished game. A session that ends, is undone and ends
// again keeps a single row holding its latest outcome.
type Result struct {
	ID        int64
	SessionID string
	GameID    string
	UserID    string
	UserName  string
	Source    string
	MaxHeap   int
	MaxScore  int
	EndReason string
	CreatedAt time.Time
}

// UserStats contains aggregated statistics for one player.
type UserStats struct {
	UserName   string
	Games      int
	BestScore  int
	BestHeap   int
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

	// Create parent directories
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
		CREATE TABLE IF NOT EXISTS game_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL UNIQUE,
			game_id TEXT NOT NULL,
			user_id TEXT NOT NULL DEFAULT '',
			user_name TEXT NOT NULL,
			user_source TEXT NOT NULL,
			max_heap INTEGER NOT NULL DEFAULT 0,
			max_score INTEGER NOT NULL DEFAULT 0,
			end_reason TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_game_results_top ON game_results(game_id, max_score DESC, max_heap DESC);
		CREATE INDEX IF NOT EXISTS idx_game_results_user ON game_results(user_name);
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

// SaveResult records a finished game and returns its row ID. Saving the same
// session again replaces its heap, score and end reason. Missing session IDs
// are generated, blank names become AnonymousName and a blank source means
// SourceLocal.
func (s *Store) SaveResult(r Result) (int64, error) {
	if r.SessionID == "" {
		r.SessionID = uuid.NewString()
	}
	if strings.TrimSpace(r.UserName) == "" {
		r.UserName = AnonymousName
	}
	if r.Source == "" {
		r.Source = SourceLocal
	}

	_, err := s.db.Exec(
		`INSERT INTO game_results
		 (session_id, game_id, user_id, user_name, user_source, max_heap, max_score, end_reason)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(session_id) DO UPDATE SET
		   max_heap = excluded.max_heap,
		   max_score = excluded.max_score,
		   end_reason = excluded.end_reason,
		   created_at = CURRENT_TIMESTAMP`,
		r.SessionID, r.GameID, r.UserID, r.UserName, r.Source, r.MaxHeap, r.MaxScore, r.EndReason,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}

	var id int64
	if err := s.db.QueryRow(
		"SELECT id FROM game_results WHERE session_id = ?", r.SessionID,
	).Scan(&id); err != nil {
		return 0, fmt.Errorf("storage: cannot get saved ID: %w", err)
	}
	return id, nil
}

const resultColumns = `id, session_id, game_id, user_id, user_name, user_source,
	max_heap, max_score, end_reason, created_at`

// TopResults retrieves the best N results for the given game, ordered by
// score and then heap, both descending. An empty gameID covers all games.
func (s *Store) TopResults(gameID string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+resultColumns+`
		 FROM game_results
		 WHERE ? = '' OR game_id = ?
		 ORDER BY max_score DESC, max_heap DESC, id ASC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// UserBest returns the player's best result across all games, or nil if the
// player has none.
func (s *Store) UserBest(userName string) (*Result, error) {
	row := s.db.QueryRow(
		`SELECT `+resultColumns+`
		 FROM game_results
		 WHERE user_name = ?
		 ORDER BY max_score DESC, max_heap DESC, id ASC
		 LIMIT 1`,
		userName,
	)
	r, err := scanResult(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// UserStats retrieves aggregated statistics for one player. A player with
// no games gets zero values.
func (s *Store) UserStats(userName string) (*UserStats, error) {
	stats := &UserStats{UserName: userName}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(max_score), 0), COALESCE(MAX(max_heap), 0),
		        COALESCE(AVG(max_score), 0), MAX(created_at)
		 FROM game_results WHERE user_name = ?`,
		userName,
	).Scan(&stats.Games, &stats.BestScore, &stats.BestHeap, &stats.AvgScore, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get user stats: %w", err)
	}
	stats.LastPlayed = parseTimestamp(lastPlayed)

	return stats, nil
}

// ClearResults deletes all results for the given game. An empty gameID
// clears everything.
func (s *Store) ClearResults(gameID string) error {
	_, err := s.db.Exec("DELETE FROM game_results WHERE ? = '' OR game_id = ?", gameID, gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResult(row rowScanner) (Result, error) {
	var r Result
	var createdAt any
	err := row.Scan(
		&r.ID,
		&r.SessionID,
		&r.GameID,
		&r.UserID,
		&r.UserName,
		&r.Source,
		&r.MaxHeap,
		&r.MaxScore,
		&r.EndReason,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return r, err
	}
	if err != nil {
		return r, fmt.Errorf("storage: cannot scan row: %w", err)
	}
	r.CreatedAt = parseTimestamp(createdAt)
	return r, nil
}

// parseTimestamp handles the driver returning either time.Time or text.
func parseTimestamp(v any) time.Time {
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
