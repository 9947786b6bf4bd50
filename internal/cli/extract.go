package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"quotecheck/internal/extract"
	"quotecheck/internal/pipeline"
)

var extractJSON bool

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <draft>",
	Short: "List the quotes detected in a draft without verifying them",
	Long: `Extract scans the draft for quotation/attribution shapes and prints the
detected quotes in order of first occurrence. Useful for checking what the
verifier will see before running a full verification.

A draft with no recognizable quotes is reported as such; it is not an error.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().BoolVar(&extractJSON, "json", false, "print quotes as JSON")
	extractCmd.Flags().IntVar(&minQuoteLen, "min-quote-length", 20, "shortest span considered a quote")
}

func runExtract(cmd *cobra.Command, args []string) error {
	loader := pipeline.NewLoader(0)
	draft, err := loader.Load(args[0])
	if err != nil {
		return fmt.Errorf("load draft: %w", err)
	}

	extractor := extract.NewQuoteExtractorWith(minQuoteLen, extract.DefaultContextWindow)
	quotes := extractor.Extract(draft)

	if len(quotes) == 0 {
		fmt.Println("No quotes detected in the draft.")
		return nil
	}

	if extractJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(quotes)
	}

	for i, q := range quotes {
		fmt.Printf("%d. %q\n   — %s (%s)\n", i+1, q.Text, q.Attribution, q.Pattern)
	}
	fmt.Printf("\n%d quotes detected\n", len(quotes))
	return nil
}
