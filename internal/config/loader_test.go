package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	snake, ok := decode(GetDefaultYAML("snake"), SnakeConfig{})
	require.True(t, ok, "embedded snake.yaml must decode and validate")
	assert.Equal(t, DefaultSnakeConfig(), snake)

	tetris, ok := decode(GetDefaultYAML("tetris"), TetrisConfig{})
	require.True(t, ok, "embedded tetris.yaml must decode and validate")
	assert.Equal(t, DefaultTetrisConfig(), tetris)

	chess, ok := decode(GetDefaultYAML("chess"), ChessConfig{})
	require.True(t, ok, "embedded chess.yaml must decode and validate")
	assert.Equal(t, DefaultChessConfig(), chess)
}

func TestLoadCustomPathOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snake.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gameplay:\n  tick_ms: 80\n"), 0o644))

	cfg, err := LoadSnake(path)
	require.NoError(t, err)

	assert.Equal(t, 80, cfg.Gameplay.TickMS)
	assert.Equal(t, 15, cfg.Board.Width, "keys absent from the file keep their defaults")
	assert.Equal(t, 80*time.Millisecond, cfg.TickInterval())
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadTetris(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("board: [nope"), 0o644))
	_, err = LoadTetris(bad)
	assert.Error(t, err)

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("board:\n  cols: 10\n  spawn_x: 12\n"), 0o644))
	_, err = LoadTetris(invalid)
	assert.Error(t, err, "spawn column outside the well must fail validation")
}

func TestValidateChess(t *testing.T) {
	cfg := DefaultChessConfig()
	require.NoError(t, Validate(cfg))

	cfg.Transport = "carrier-pigeon"
	assert.Error(t, Validate(cfg))

	cfg = DefaultChessConfig()
	cfg.Level = 6
	assert.Error(t, Validate(cfg))

	cfg = DefaultChessConfig()
	cfg.Levels = cfg.Levels[:3]
	assert.Error(t, Validate(cfg))
}

func TestChessLevelParams(t *testing.T) {
	cfg := DefaultChessConfig()

	assert.Equal(t, 1, cfg.LevelParams(1).Depth)
	assert.Equal(t, 15, cfg.LevelParams(5).Depth)
	assert.Equal(t, 1, cfg.LevelParams(0).Depth, "levels below 1 clamp to the first entry")
	assert.Equal(t, 15, cfg.LevelParams(9).Depth, "levels above 5 clamp to the last entry")

	assert.Equal(t, 500*time.Millisecond, cfg.MoveDelay())
	assert.Equal(t, 10*time.Second, cfg.SuggestTimeout())
	cfg.Transport = "cloud"
	assert.Equal(t, 30*time.Second, cfg.SuggestTimeout())
}

func TestPresets(t *testing.T) {
	_, err := ParsePreset("nightmare")
	assert.Error(t, err)

	p, err := ParsePreset("")
	require.NoError(t, err)
	assert.Equal(t, DifficultyNormal, p)

	snake := DefaultSnakeConfig()
	ApplySnakePreset(&snake, DifficultyHard)
	assert.Equal(t, 90, snake.Gameplay.TickMS)

	tetris := DefaultTetrisConfig()
	ApplyTetrisPreset(&tetris, DifficultyEasy)
	assert.Equal(t, 600, tetris.Timing.GravityMS)

	chess := DefaultChessConfig()
	ApplyChessPreset(&chess, DifficultyNormal)
	assert.Equal(t, 2, chess.Level)
	ApplyChessPreset(&chess, DifficultyEasy)
	assert.Equal(t, 1, chess.Level)
}

func TestLoadServerFromEnv(t *testing.T) {
	t.Setenv("ARCADE_SSH_ADDR", ":2222")
	t.Setenv("ARCADE_STORE", "redis")
	t.Setenv("ARCADE_IDLE_TIMEOUT", "5m")

	cfg, err := LoadServer("")
	require.NoError(t, err)

	assert.Equal(t, ":2222", cfg.SSHAddr)
	assert.Equal(t, "redis", cfg.Store)
	assert.Equal(t, 5*time.Minute, cfg.IdleTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadServerRejectsUnknownStore(t *testing.T) {
	t.Setenv("ARCADE_STORE", "mongo")

	_, err := LoadServer("")
	assert.Error(t, err)
}
