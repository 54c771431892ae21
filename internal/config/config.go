// Package config provides YAML-based game configuration loading, validation
// and difficulty presets for the arcade.
package config

import "time"

// SnakeConfig contains all configuration for the Snake game.
type SnakeConfig struct {
	Board    SnakeBoard    `yaml:"board"`
	Gameplay SnakeGameplay `yaml:"gameplay"`
}

// SnakeBoard defines the playfield.
type SnakeBoard struct {
	Width  int `yaml:"width" validate:"min=5,max=60"`
	Height int `yaml:"height" validate:"min=5,max=40"`
}

// SnakeGameplay defines movement and scoring.
type SnakeGameplay struct {
	TickMS      int `yaml:"tick_ms" validate:"min=20,max=2000"`
	FoodReward  int `yaml:"food_reward" validate:"min=1"`
	InputBuffer int `yaml:"input_buffer" validate:"min=1,max=8"`
}

// TickInterval returns the movement interval.
func (c SnakeConfig) TickInterval() time.Duration {
	return time.Duration(c.Gameplay.TickMS) * time.Millisecond
}

// TetrisConfig contains all configuration for the Tetris game.
type TetrisConfig struct {
	Board   TetrisBoard   `yaml:"board"`
	Timing  TetrisTiming  `yaml:"timing"`
	Scoring TetrisScoring `yaml:"scoring"`
}

// TetrisBoard defines the well and the spawn point.
type TetrisBoard struct {
	Rows   int `yaml:"rows" validate:"min=8,max=40"`
	Cols   int `yaml:"cols" validate:"min=6,max=20"`
	SpawnX int `yaml:"spawn_x" validate:"min=0,ltfield=Cols"`
	SpawnY int `yaml:"spawn_y" validate:"min=0,ltfield=Rows"`
}

// TetrisTiming defines gravity and the rotation cooldown.
type TetrisTiming struct {
	GravityMS        int `yaml:"gravity_ms" validate:"min=20,max=5000"`
	RotateCooldownMS int `yaml:"rotate_cooldown_ms" validate:"min=0,max=2000"`
}

// TetrisScoring defines points per cleared row.
type TetrisScoring struct {
	LinePoints int `yaml:"line_points" validate:"min=1"`
}

// Gravity returns the gravity interval.
func (c TetrisConfig) Gravity() time.Duration {
	return time.Duration(c.Timing.GravityMS) * time.Millisecond
}

// RotateCooldown returns the rotation cooldown window.
func (c TetrisConfig) RotateCooldown() time.Duration {
	return time.Duration(c.Timing.RotateCooldownMS) * time.Millisecond
}

// ChessConfig contains all configuration for the chess game and its opponent.
type ChessConfig struct {
	Level       int          `yaml:"level" validate:"min=1,max=5"`
	MoveDelayMS int          `yaml:"move_delay_ms" validate:"min=0,max=10000"`
	Transport   string       `yaml:"transport" validate:"oneof=uci cloud embedded"`
	Levels      []ChessLevel `yaml:"levels" validate:"len=5,dive"`
	UCI         ChessUCI     `yaml:"uci"`
	Cloud       ChessCloud   `yaml:"cloud"`
	Embedded    ChessSearch  `yaml:"embedded"`
}

// ChessLevel maps one difficulty level to engine parameters.
type ChessLevel struct {
	Depth int `yaml:"depth" validate:"min=1,max=40"`
	Skill int `yaml:"skill" validate:"min=0,max=20"`
}

// ChessUCI configures the local line-protocol engine process.
type ChessUCI struct {
	Path      string `yaml:"path" validate:"required"`
	TimeoutMS int    `yaml:"timeout_ms" validate:"min=100"`
	Threads   int    `yaml:"threads" validate:"min=1,max=64"`
	HashMB    int    `yaml:"hash_mb" validate:"min=1,max=4096"`
}

// ChessCloud configures the remote cloud-evaluation service.
type ChessCloud struct {
	BaseURL   string `yaml:"base_url" validate:"required,url"`
	TimeoutMS int    `yaml:"timeout_ms" validate:"min=100"`
}

// ChessSearch configures the in-process searcher.
type ChessSearch struct {
	MaxDepth  int `yaml:"max_depth" validate:"min=1,max=5"`
	TimeoutMS int `yaml:"timeout_ms" validate:"min=100"`
}

// MoveDelay returns the pause before the opponent is asked for a move.
func (c ChessConfig) MoveDelay() time.Duration {
	return time.Duration(c.MoveDelayMS) * time.Millisecond
}

// LevelParams returns the engine parameters for a 1-based level, clamped
// to the configured range.
func (c ChessConfig) LevelParams(level int) ChessLevel {
	if len(c.Levels) == 0 {
		return ChessLevel{Depth: 1}
	}
	if level < 1 {
		level = 1
	}
	if level > len(c.Levels) {
		level = len(c.Levels)
	}
	return c.Levels[level-1]
}

// SuggestTimeout returns the request timeout of the selected transport.
func (c ChessConfig) SuggestTimeout() time.Duration {
	ms := c.UCI.TimeoutMS
	switch c.Transport {
	case "cloud":
		ms = c.Cloud.TimeoutMS
	case "embedded":
		ms = c.Embedded.TimeoutMS
	}
	return time.Duration(ms) * time.Millisecond
}
