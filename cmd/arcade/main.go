// arcade is a terminal arcade with Snake, Tetris and Chess against an engine.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game
//	arcade menu              - Start menu to pick games interactively
//	arcade serve             - Start SSH server for remote play
//	arcade scores <game>     - Show high scores or recent results for a game
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--store <kind>      - sqlite (default) or redis
//	--db <path>         - SQLite database path (default: ~/.arcade/arcade.db)
//	--redis-url <url>   - Redis URL when --store=redis
//	--log-file <path>   - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/zriley/portfolio-arcade/internal/games/chess"
	_ "github.com/zriley/portfolio-arcade/internal/games/snake"
	_ "github.com/zriley/portfolio-arcade/internal/games/tetris"
	"github.com/zriley/portfolio-arcade/internal/storage/sqlite"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagStore    string
	flagDBPath   string
	flagRedisURL string
	flagLogFile  string
	flagLogLevel string

	logger  = log.New(io.Discard)
	logFile *os.File
)

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Terminal arcade: Snake, Tetris and Chess",
	Long: `A terminal arcade with three games:

  snake   - classic Snake on a walled board
  tetris  - falling blocks with hold, ghost piece and wall kicks
  chess   - play white against an engine (UCI, cloud or built-in)

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores and chess results

Examples:
  arcade list
  arcade play snake
  arcade play chess --level 3 --engine embedded
  arcade menu
  arcade serve --ssh :2222
  arcade scores tetris`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagStore, "store", "sqlite", "Score storage: sqlite or redis")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", sqlite.DefaultPath, "Path to the SQLite database")
	rootCmd.PersistentFlags().StringVar(&flagRedisURL, "redis-url", "redis://localhost:6379/0", "Redis URL for --store=redis")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// setupLogging routes logs to --log-file. Interactive commands own the
// terminal, so without a file their logs are dropped.
func setupLogging(cmd *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("bad --log-level: %w", err)
	}

	var w io.Writer = io.Discard
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logFile = f
		w = f
	case cmd.Name() == "serve":
		w = os.Stderr
	}

	logger = log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "arcade",
	})
	log.SetDefault(logger)
	chess.SetLogger(logger)
	return nil
}
