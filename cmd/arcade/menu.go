package main

import (
	"github.com/spf13/cobra"

	"github.com/zriley/portfolio-arcade/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a game picker menu",
	Long: `Start the arcade in interactive menu mode.

Use the arrow keys to pick a game and Enter to start it. Chess opens a
setup screen for the opponent level and engine first. B returns to the
menu from a game, Tab opens the scoreboard.

Examples:
  arcade menu
  arcade menu --fps 30
  arcade menu --store redis --redis-url redis://localhost:6379/1`,
	RunE: runMenu,
}

func init() {
	addGameFlags(menuCmd)
}

func runMenu(_ *cobra.Command, _ []string) error {
	if err := applyGameFlags(); err != nil {
		return err
	}

	store := openStoreOrWarn()
	defer closeStore(store)

	return tui.RunSession(store, runtimeConfig(),
		tui.WithSessionLogger(logger),
		tui.WithChessDefaults(chessDefaults()),
	)
}
