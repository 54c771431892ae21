package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset validates a preset name. The empty string means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyHard:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// ApplySnakePreset adjusts the movement speed.
func ApplySnakePreset(cfg *SnakeConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.TickMS = cfg.Gameplay.TickMS * 5 / 4
	case DifficultyHard:
		cfg.Gameplay.TickMS = cfg.Gameplay.TickMS * 3 / 4
	}
}

// ApplyTetrisPreset adjusts gravity.
func ApplyTetrisPreset(cfg *TetrisConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Timing.GravityMS = cfg.Timing.GravityMS * 3 / 2
	case DifficultyHard:
		cfg.Timing.GravityMS = cfg.Timing.GravityMS * 5 / 8
	}
}

// ApplyChessPreset picks the starting opponent level.
func ApplyChessPreset(cfg *ChessConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Level = 1
	case DifficultyHard:
		cfg.Level = 4
	}
}
