// Package storage defines persistence for finished games: high scores for
// score-based games and results for chess. Backends live in the sqlite and
// redis subpackages.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("storage: not found")

// Default list sizes.
const (
	DefaultScoreLimit   = 10
	DefaultOutcomeLimit = 20
)

// Store is implemented by every backend.
type Store interface {
	SaveScore(ctx context.Context, gameID string, score int) error
	TopScores(ctx context.Context, gameID string, limit int) ([]ScoreEntry, error)
	HighScore(ctx context.Context, gameID string) (int, error)
	ClearScores(ctx context.Context, gameID string) error
	Stats(ctx context.Context, gameID string) (GameStats, error)

	SaveOutcome(ctx context.Context, o Outcome) error
	RecentOutcomes(ctx context.Context, gameID string, limit int) ([]Outcome, error)

	Close() error
}

// ScoreEntry represents a single high score record.
type ScoreEntry struct {
	GameID    string
	Score     int
	CreatedAt time.Time
}

// Outcome is the result of a finished chess game.
type Outcome struct {
	ID        string
	GameID    string
	Result    string // win, loss or draw
	Level     int
	Transport string
	Plies     int
	FinalFEN  string
	CreatedAt time.Time
}

// NewOutcome fills in an ID and timestamp.
func NewOutcome(gameID, result string, level int, transport string, plies int, fen string) Outcome {
	return Outcome{
		ID:        uuid.NewString(),
		GameID:    gameID,
		Result:    result,
		Level:     level,
		Transport: transport,
		Plies:     plies,
		FinalFEN:  fen,
		CreatedAt: time.Now().UTC(),
	}
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID     string
	GamesCount int
	HighScore  int
	AvgScore   float64
	LastPlayed time.Time
}

// Limit returns n, or def when n is not positive.
func Limit(n, def int) int {
	if n <= 0 {
		return def
	}
	return n
}
