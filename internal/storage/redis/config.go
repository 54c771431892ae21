package redis

// Config holds Redis connection and retention settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379/0)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// Retention: only the best MaxScores scores and the newest MaxOutcomes
	// results are kept per game
	MaxScores   int
	MaxOutcomes int
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379/0",
		PoolSize:     10,
		MinIdleConns: 2,
		MaxScores:    100,
		MaxOutcomes:  200,
	}
}
