package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

//go:embed defaults/chess.yaml
var defaultChessYAML []byte

// DefaultSnakeConfig returns the default Snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Board: SnakeBoard{
			Width:  15,
			Height: 15,
		},
		Gameplay: SnakeGameplay{
			TickMS:      120,
			FoodReward:  10,
			InputBuffer: 2,
		},
	}
}

// DefaultTetrisConfig returns the default Tetris configuration.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Board: TetrisBoard{
			Rows:   20,
			Cols:   10,
			SpawnX: 3,
			SpawnY: 0,
		},
		Timing: TetrisTiming{
			GravityMS:        400,
			RotateCooldownMS: 150,
		},
		Scoring: TetrisScoring{
			LinePoints: 100,
		},
	}
}

// DefaultChessConfig returns the default chess configuration.
func DefaultChessConfig() ChessConfig {
	return ChessConfig{
		Level:       2,
		MoveDelayMS: 500,
		Transport:   "uci",
		Levels: []ChessLevel{
			{Depth: 1, Skill: 0},
			{Depth: 3, Skill: 5},
			{Depth: 6, Skill: 10},
			{Depth: 10, Skill: 15},
			{Depth: 15, Skill: 20},
		},
		UCI: ChessUCI{
			Path:      "stockfish",
			TimeoutMS: 10000,
			Threads:   1,
			HashMB:    16,
		},
		Cloud: ChessCloud{
			BaseURL:   "https://lichess.org/api/cloud-eval",
			TimeoutMS: 30000,
		},
		Embedded: ChessSearch{
			MaxDepth:  3,
			TimeoutMS: 10000,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "snake":
		return defaultSnakeYAML
	case "tetris":
		return defaultTetrisYAML
	case "chess":
		return defaultChessYAML
	default:
		return nil
	}
}
