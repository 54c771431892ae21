package redis

import "fmt"

// Key prefix for all arcade data
const keyPrefix = "arcade"

// scoresKey returns the sorted set holding a game's scores
func scoresKey(gameID string) string {
	return fmt.Sprintf("%s:scores:%s", keyPrefix, gameID)
}

// outcomesKey returns the list holding a game's results, newest first
func outcomesKey(gameID string) string {
	return fmt.Sprintf("%s:outcomes:%s", keyPrefix, gameID)
}
