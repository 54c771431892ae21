// Package sqlite stores scores and chess outcomes in a local SQLite file.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/zriley/portfolio-arcade/internal/storage"
)

// DefaultPath is where the arcade keeps its database.
const DefaultPath = "~/.arcade/arcade.db"

const (
	timeLayout    = "2006-01-02 15:04:05"
	outcomeLayout = "2006-01-02 15:04:05.000000000"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

var _ storage.Store = (*Store)(nil)

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath == "" {
		dbPath = DefaultPath
	}
	if dbPath[0] == '~' {
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

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC);

		CREATE TABLE IF NOT EXISTS outcomes (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			result TEXT NOT NULL,
			level INTEGER NOT NULL DEFAULT 0,
			transport TEXT NOT NULL DEFAULT '',
			plies INTEGER NOT NULL DEFAULT 0,
			final_fen TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_outcomes_recent ON outcomes(game_id, created_at DESC);
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

// SaveScore records a new score for the given game.
func (s *Store) SaveScore(ctx context.Context, gameID string, score int) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO scores (game_id, score, created_at) VALUES (?, ?, ?)",
		gameID, score, time.Now().UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save score: %w", err)
	}
	return nil
}

// TopScores retrieves the top N scores for the given game, best first.
func (s *Store) TopScores(ctx context.Context, gameID string, limit int) ([]storage.ScoreEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT game_id, score, created_at
		 FROM scores
		 WHERE game_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		gameID, storage.Limit(limit, storage.DefaultScoreLimit),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []storage.ScoreEntry
	for rows.Next() {
		var e storage.ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.GameID, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// HighScore returns the highest score for the given game, or 0.
func (s *Store) HighScore(ctx context.Context, gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		"SELECT MAX(score) FROM scores WHERE game_id = ?",
		gameID,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ClearScores deletes all scores for the given game.
func (s *Store) ClearScores(ctx context.Context, gameID string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM scores WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// Stats retrieves aggregated statistics for a game.
func (s *Store) Stats(ctx context.Context, gameID string) (storage.GameStats, error) {
	stats := storage.GameStats{GameID: gameID}
	var lastPlayed any
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), MAX(created_at)
		 FROM scores WHERE game_id = ?`,
		gameID,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &lastPlayed)
	if err != nil {
		return stats, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

// SaveOutcome records a finished chess game. A missing ID or timestamp is
// filled in.
func (s *Store) SaveOutcome(ctx context.Context, o storage.Outcome) error {
	if o.ID == "" {
		o = storage.NewOutcome(o.GameID, o.Result, o.Level, o.Transport, o.Plies, o.FinalFEN)
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO outcomes (id, game_id, result, level, transport, plies, final_fen, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.GameID, o.Result, o.Level, o.Transport, o.Plies, o.FinalFEN,
		o.CreatedAt.UTC().Format(outcomeLayout),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save outcome: %w", err)
	}
	return nil
}

// RecentOutcomes lists results for a game, newest first.
func (s *Store) RecentOutcomes(ctx context.Context, gameID string, limit int) ([]storage.Outcome, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, game_id, result, level, transport, plies, final_fen, created_at
		 FROM outcomes
		 WHERE game_id = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		gameID, storage.Limit(limit, storage.DefaultOutcomeLimit),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query outcomes: %w", err)
	}
	defer rows.Close()

	var out []storage.Outcome
	for rows.Next() {
		var o storage.Outcome
		var createdAt any
		if err := rows.Scan(&o.ID, &o.GameID, &o.Result, &o.Level, &o.Transport, &o.Plies, &o.FinalFEN, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		o.CreatedAt = parseTime(createdAt)
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// Outcome fetches one result by ID.
func (s *Store) Outcome(ctx context.Context, id string) (storage.Outcome, error) {
	var o storage.Outcome
	var createdAt any
	err := s.db.QueryRowContext(ctx,
		`SELECT id, game_id, result, level, transport, plies, final_fen, created_at
		 FROM outcomes WHERE id = ?`,
		id,
	).Scan(&o.ID, &o.GameID, &o.Result, &o.Level, &o.Transport, &o.Plies, &o.FinalFEN, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return o, storage.ErrNotFound
	}
	if err != nil {
		return o, fmt.Errorf("storage: cannot query outcome: %w", err)
	}
	o.CreatedAt = parseTime(createdAt)
	return o, nil
}

// parseTime handles both time.Time and the text forms SQLite hands back.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{outcomeLayout, timeLayout, time.RFC3339Nano} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}
