// Package redis stores scores and chess outcomes in Redis so several
// arcade servers can share one leaderboard.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/zriley/portfolio-arcade/internal/storage"
)

// Storage is a Redis-backed implementation of storage.Store
type Storage struct {
	client *redis.Client
	cfg    Config
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

// New connects to Redis and verifies the connection
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("storage: bad redis url: %w", err)
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if cfg.MinIdleConns > 0 {
		opts.MinIdleConns = cfg.MinIdleConns
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("storage: cannot reach redis: %w", err)
	}

	return NewWithClient(client, cfg), nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	def := DefaultConfig()
	if cfg.MaxScores <= 0 {
		cfg.MaxScores = def.MaxScores
	}
	if cfg.MaxOutcomes <= 0 {
		cfg.MaxOutcomes = def.MaxOutcomes
	}
	return &Storage{client: client, cfg: cfg}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// scoreMember is the sorted-set member; the ID keeps equal scores distinct.
type scoreMember struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// Score operations

func (s *Storage) SaveScore(ctx context.Context, gameID string, score int) error {
	data, err := json.Marshal(scoreMember{ID: uuid.NewString(), CreatedAt: time.Now().UTC()})
	if err != nil {
		return err
	}

	key := scoresKey(gameID)
	pipe := s.client.TxPipeline()
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(score), Member: string(data)})
	// Drop everything below the best MaxScores entries.
	pipe.ZRemRangeByRank(ctx, key, 0, int64(-s.cfg.MaxScores-1))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("storage: cannot save score: %w", err)
	}
	return nil
}

func (s *Storage) TopScores(ctx context.Context, gameID string, limit int) ([]storage.ScoreEntry, error) {
	limit = storage.Limit(limit, storage.DefaultScoreLimit)
	zs, err := s.client.ZRevRangeWithScores(ctx, scoresKey(gameID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	return decodeScores(gameID, zs), nil
}

func decodeScores(gameID string, zs []redis.Z) []storage.ScoreEntry {
	entries := make([]storage.ScoreEntry, 0, len(zs))
	for _, z := range zs {
		e := storage.ScoreEntry{GameID: gameID, Score: int(z.Score)}
		if member, ok := z.Member.(string); ok {
			var m scoreMember
			if json.Unmarshal([]byte(member), &m) == nil {
				e.CreatedAt = m.CreatedAt
			}
		}
		entries = append(entries, e)
	}
	return entries
}

func (s *Storage) HighScore(ctx context.Context, gameID string) (int, error) {
	zs, err := s.client.ZRevRangeWithScores(ctx, scoresKey(gameID), 0, 0).Result()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if len(zs) == 0 {
		return 0, nil
	}
	return int(zs[0].Score), nil
}

func (s *Storage) ClearScores(ctx context.Context, gameID string) error {
	if err := s.client.Del(ctx, scoresKey(gameID)).Err(); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// Stats covers the retained scores only.
func (s *Storage) Stats(ctx context.Context, gameID string) (storage.GameStats, error) {
	stats := storage.GameStats{GameID: gameID}
	zs, err := s.client.ZRevRangeWithScores(ctx, scoresKey(gameID), 0, -1).Result()
	if err != nil {
		return stats, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	if len(zs) == 0 {
		return stats, nil
	}

	total := 0
	for _, e := range decodeScores(gameID, zs) {
		total += e.Score
		if e.CreatedAt.After(stats.LastPlayed) {
			stats.LastPlayed = e.CreatedAt
		}
	}
	stats.GamesCount = len(zs)
	stats.HighScore = int(zs[0].Score)
	stats.AvgScore = float64(total) / float64(len(zs))
	return stats, nil
}

// Outcome operations

func (s *Storage) SaveOutcome(ctx context.Context, o storage.Outcome) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}
	data, err := json.Marshal(o)
	if err != nil {
		return err
	}

	key := outcomesKey(o.GameID)
	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, key, data)
	pipe.LTrim(ctx, key, 0, int64(s.cfg.MaxOutcomes-1))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("storage: cannot save outcome: %w", err)
	}
	return nil
}

func (s *Storage) RecentOutcomes(ctx context.Context, gameID string, limit int) ([]storage.Outcome, error) {
	limit = storage.Limit(limit, storage.DefaultOutcomeLimit)
	items, err := s.client.LRange(ctx, outcomesKey(gameID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query outcomes: %w", err)
	}

	out := make([]storage.Outcome, 0, len(items))
	for _, item := range items {
		var o storage.Outcome
		if err := json.Unmarshal([]byte(item), &o); err != nil {
			return nil, fmt.Errorf("storage: corrupt outcome record: %w", err)
		}
		out = append(out, o)
	}
	return out, nil
}
