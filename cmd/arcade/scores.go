package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/zriley/portfolio-arcade/internal/platform/tui"
	"github.com/zriley/portfolio-arcade/internal/registry"
	"github.com/zriley/portfolio-arcade/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
	flagScoresTUI   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores or recent chess results",
	Long: `Display the top scores of a game, or the most recent results for chess.

Without a game argument the interactive scoreboard opens.

Examples:
  arcade scores snake
  arcade scores chess --limit 50
  arcade scores tetris --clear
  arcade scores`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 0, "Number of rows (default 10 scores, 20 results)")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores of the game")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Open the interactive scoreboard")
}

func runScores(_ *cobra.Command, args []string) error {
	store, err := openStore(flagStore, flagDBPath, flagRedisURL)
	if err != nil {
		return fmt.Errorf("cannot open score storage: %w", err)
	}
	defer closeStore(store)

	if len(args) == 0 || flagScoresTUI {
		cfg := runtimeConfig()
		_, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
		return err
	}

	gameID := args[0]
	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("unknown game %q, run 'arcade list' to see available games", gameID)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if flagScoresClear {
		if err := store.ClearScores(ctx, gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared scores for %s.\n", game.Title())
		return nil
	}

	if _, ok := game.(registry.OutcomeReporter); ok {
		return printOutcomes(ctx, store, game)
	}
	return printScores(ctx, store, game)
}

func printScores(ctx context.Context, store storage.Store, game registry.Game) error {
	scores, err := store.TopScores(ctx, game.ID(), storage.Limit(flagScoresLimit, storage.DefaultScoreLimit))
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n\n", game.Title())
	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Printf("\nPlay 'arcade play %s' to set the first high score!\n", game.ID())
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  Rank\tScore\tDate")
	fmt.Fprintln(w, "  ----\t-----\t----")
	for i, e := range scores {
		fmt.Fprintf(w, "  %d\t%d\t%s\n", i+1, e.Score, e.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	stats, err := store.Stats(ctx, game.ID())
	if err == nil && stats.GamesCount > 0 {
		fmt.Printf("\nBest: %d  Games: %d  Average: %.1f\n", stats.HighScore, stats.GamesCount, stats.AvgScore)
	}
	return nil
}

func printOutcomes(ctx context.Context, store storage.Store, game registry.Game) error {
	outcomes, err := store.RecentOutcomes(ctx, game.ID(), storage.Limit(flagScoresLimit, storage.DefaultOutcomeLimit))
	if err != nil {
		return fmt.Errorf("retrieving results: %w", err)
	}

	fmt.Printf("Recent Games - %s\n\n", game.Title())
	if len(outcomes) == 0 {
		fmt.Println("No games finished yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  Result\tLevel\tEngine\tMoves\tDate")
	fmt.Fprintln(w, "  ------\t-----\t------\t-----\t----")
	for _, o := range outcomes {
		fmt.Fprintf(w, "  %s\t%d\t%s\t%d\t%s\n",
			strings.ToUpper(o.Result), o.Level, o.Transport, (o.Plies+1)/2,
			o.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	return w.Flush()
}
