package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zriley/portfolio-arcade/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows a list of all games registered in the arcade.`,
	RunE:  runList,
}

func runList(_ *cobra.Command, _ []string) error {
	games := registry.List()
	if len(games) == 0 {
		fmt.Println("No games available.")
		return nil
	}

	fmt.Println("Available games:")
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  ID\tTitle\tRecords")
	fmt.Fprintln(w, "  --\t-----\t-------")
	for _, g := range games {
		records := "high scores"
		if game, err := registry.Create(g.ID); err == nil {
			if _, ok := game.(registry.OutcomeReporter); ok {
				records = "results"
			}
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\n", g.ID, g.Title, records)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Run 'arcade play <id>' to play a game.")
	return nil
}
