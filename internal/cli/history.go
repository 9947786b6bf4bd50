package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"quotecheck/internal/model"
	"quotecheck/internal/store"
)

var (
	historyLimit int
	historyDB    string
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past verification runs",
	Long: `History lists the verification runs recorded in the local history
database, newest first.

Example:
  quotecheck history
  quotecheck history --limit 50`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum runs to list")
	historyCmd.Flags().StringVar(&historyDB, "db", "", "history database path (default: $HOME/.quotecheck/history.db)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	path := historyDB
	if path == "" {
		path = model.DefaultConfig().History.Path
	}

	s, err := store.Open(path)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer func() { _ = s.Close() }()

	runs, err := s.ListRuns(context.Background(), historyLimit)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No verification runs recorded yet.")
		return nil
	}

	if isatty.IsTerminal(os.Stdout.Fd()) {
		tw := table.NewWriter()
		tw.SetStyle(table.StyleRounded)
		tw.AppendHeader(table.Row{"ID", "When", "Subject", "Quotes", "Verified", "Index"})
		for _, run := range runs {
			tw.AppendRow(table.Row{
				run.ID,
				run.CreatedAt.Local().Format("2006-01-02 15:04"),
				run.Subject,
				run.QuoteCount,
				run.VerifiedCount,
				fmt.Sprintf("%d/100", run.ScoreIndex),
			})
		}
		fmt.Println(tw.Render())
	} else {
		for _, run := range runs {
			fmt.Printf("%d\t%s\t%s\t%d quotes\t%d verified\t%d/100\n",
				run.ID, run.CreatedAt.Format("2006-01-02 15:04"), run.Subject,
				run.QuoteCount, run.VerifiedCount, run.ScoreIndex)
		}
	}

	return nil
}
