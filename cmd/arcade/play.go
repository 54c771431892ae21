package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/zriley/portfolio-arcade/internal/config"
	"github.com/zriley/portfolio-arcade/internal/core"
	"github.com/zriley/portfolio-arcade/internal/games/chess"
	"github.com/zriley/portfolio-arcade/internal/games/snake"
	"github.com/zriley/portfolio-arcade/internal/games/tetris"
	"github.com/zriley/portfolio-arcade/internal/platform/tui"
	"github.com/zriley/portfolio-arcade/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLevel      int
	flagEngine     string
	flagEnginePath string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Arrows/WASD  - Move (Snake, Tetris); move the cursor (Chess)
  X / Z        - Rotate clockwise / counter-clockwise (Tetris)
  C            - Hold piece (Tetris)
  Space        - Hard drop (Tetris); pick up or place a piece (Chess)
  Enter        - Pick up or place a piece (Chess)
  Esc          - Clear selection (Chess)
  E            - Ask the engine again after a failure (Chess)
  P            - Pause
  R            - Restart
  B            - Back to menu
  Q/Ctrl+C     - Quit
  Ctrl+S       - Save a text screenshot to ~/.arcade/screenshots

Difficulty presets (--difficulty):
  easy, normal, hard

Chess opponent:
  --level 1-5          opponent strength
  --engine uci         local UCI engine process (default: stockfish)
  --engine cloud       remote cloud evaluation
  --engine embedded    built-in search, no external engine needed

Without --level or --engine, chess opens a setup screen.

Examples:
  arcade play snake --difficulty hard
  arcade play tetris --config ./my-tetris.yaml
  arcade play chess --level 4 --engine uci --engine-path /usr/bin/stockfish`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	addGameFlags(playCmd)
}

// addGameFlags registers the flags shared by play and menu.
func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	cmd.Flags().IntVar(&flagLevel, "level", 0, "Chess opponent level 1-5 (default from config)")
	cmd.Flags().StringVar(&flagEngine, "engine", "", "Chess engine transport: uci, cloud, embedded")
	cmd.Flags().StringVar(&flagEnginePath, "engine-path", "", "Path to the UCI engine binary")
}

// applyGameFlags hands the game flags to the game packages.
func applyGameFlags() error {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	if flagLevel != 0 && (flagLevel < chess.MinLevel || flagLevel > chess.MaxLevel) {
		return fmt.Errorf("--level must be between %d and %d", chess.MinLevel, chess.MaxLevel)
	}
	switch flagEngine {
	case "", "uci", "cloud", "embedded":
	default:
		return fmt.Errorf("unknown --engine %q (want uci, cloud or embedded)", flagEngine)
	}

	snake.SetConfigPath(flagConfig)
	snake.SetDifficultyPreset(preset)
	tetris.SetConfigPath(flagConfig)
	tetris.SetDifficultyPreset(preset)
	chess.SetConfigPath(flagConfig)
	chess.SetDifficultyPreset(preset)
	chess.SetLevel(flagLevel)
	chess.SetTransport(flagEngine)
	chess.SetEnginePath(flagEnginePath)
	return nil
}

// chessDefaults is the setup screen's starting point: flags, then the
// chess config file, then built-in defaults.
func chessDefaults() tui.ChessSetup {
	cfg, err := config.LoadChess(flagConfig)
	if err != nil {
		logger.Warn("using default chess config", "err", err)
		cfg = config.DefaultChessConfig()
	}
	setup := tui.ChessSetup{Level: cfg.Level, Transport: cfg.Transport}
	if flagLevel != 0 {
		setup.Level = flagLevel
	}
	if flagEngine != "" {
		setup.Transport = flagEngine
	}
	return setup
}

func runtimeConfig() core.RuntimeConfig {
	cfg := core.RuntimeConfig{TickRate: flagFPS, Seed: flagSeed}
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	return cfg.WithDefaults()
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := args[0]
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'arcade list' to see available games", gameID)
	}
	if err := applyGameFlags(); err != nil {
		return err
	}

	cfg := runtimeConfig()

	var game registry.Game
	if gameID == "chess" && !cmd.Flags().Changed("level") && !cmd.Flags().Changed("engine") {
		setup, err := tui.RunChessSetup(cfg.ScreenW, cfg.ScreenH, chessDefaults())
		if err != nil {
			return err
		}
		if setup == nil {
			return nil
		}
		game = chess.New(chess.WithLevel(setup.Level), chess.WithTransport(setup.Transport))
	} else {
		var err error
		if game, err = registry.Create(gameID); err != nil {
			return err
		}
	}

	store := openStoreOrWarn()
	defer closeStore(store)

	if err := tui.Run(game, store, cfg, logger); err != nil {
		return fmt.Errorf("running %s: %w", gameID, err)
	}
	return nil
}
