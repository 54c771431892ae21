package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// LoadSnake loads Snake configuration.
// Search order: customPath -> ~/.arcade/configs/snake.yaml -> ./configs/snake.yaml -> embedded default
func LoadSnake(customPath string) (SnakeConfig, error) {
	return load("snake", customPath, DefaultSnakeConfig())
}

// LoadTetris loads Tetris configuration.
// Search order: customPath -> ~/.arcade/configs/tetris.yaml -> ./configs/tetris.yaml -> embedded default
func LoadTetris(customPath string) (TetrisConfig, error) {
	return load("tetris", customPath, DefaultTetrisConfig())
}

// LoadChess loads chess configuration.
// Search order: customPath -> ~/.arcade/configs/chess.yaml -> ./configs/chess.yaml -> embedded default
func LoadChess(customPath string) (ChessConfig, error) {
	return load("chess", customPath, DefaultChessConfig())
}

// load resolves the config for one game. Files found on the search path are
// decoded over the hardcoded defaults, so partial files only override the
// keys they mention. An explicit path must exist, parse and validate; files
// discovered implicitly are skipped when broken.
func load[T any](gameID, customPath string, def T) (T, error) {
	filename := gameID + ".yaml"

	if customPath != "" {
		cfg := def
		data, err := os.ReadFile(customPath)
		if err != nil {
			return def, fmt.Errorf("config: cannot read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return def, fmt.Errorf("config: cannot parse %s: %w", customPath, err)
		}
		if err := Validate(cfg); err != nil {
			return def, fmt.Errorf("config: invalid %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{
		userConfigPath(filename),
		filepath.Join("configs", filename),
	}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, ok := decode(data, def); ok {
			return cfg, nil
		}
	}

	if cfg, ok := decode(GetDefaultYAML(gameID), def); ok {
		return cfg, nil
	}
	return def, nil // Fallback to hardcoded if embed fails
}

func decode[T any](data []byte, def T) (T, bool) {
	cfg := def
	if len(data) == 0 {
		return def, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return def, false
	}
	if err := Validate(cfg); err != nil {
		return def, false
	}
	return cfg, true
}

// Validate checks struct tag constraints on a config value.
func Validate(cfg any) error {
	return validate.Struct(cfg)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
