package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"quotecheck/internal/model"
	"quotecheck/internal/pipeline"
	"quotecheck/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <manifest>",
	Short: "Verify multiple draft/transcript pairs from a manifest",
	Long: `Batch verifies many draft/transcript pairs concurrently:
- Read pairs from a manifest file (one "draft,transcript" line per pair)
- Verify pairs in parallel with a configurable worker count
- Write an individual JSON and Markdown report for each pair

Example:
  quotecheck batch pairs.txt
  quotecheck batch pairs.txt --concurrency 8 --output-dir ./reports`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent verifications")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./quotecheck-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().IntVar(&workers, "workers", 4, "concurrent per-quote matchers within one verification")
	batchCmd.Flags().Float64Var(&threshold, "threshold", 0.5, "confidence at which a quote counts as verified")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the report cache")
	batchCmd.Flags().BoolVar(&noHistory, "no-history", false, "skip recording runs in history")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	p := pipeline.NewPipeline(cfg)
	defer func() { _ = p.Close() }()

	processor := worker.NewBatchProcessor(p, concurrency)

	if verbose {
		fmt.Fprintf(os.Stderr, "Manifest: %s\n", args[0])
		fmt.Fprintf(os.Stderr, "Concurrency: %d\n\n", concurrency)
	}

	results, err := processor.ProcessManifest(ctx, args[0])
	if err != nil {
		return fmt.Errorf("batch failed: %w", err)
	}

	succeeded, failed := 0, 0
	for _, res := range results {
		name := model.SubjectFromPath(res.Pair.DraftPath)
		if res.Error != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", name, res.Error)
			continue
		}
		succeeded++

		base := filepath.Join(outputDir, sanitizeName(name))
		if err := p.RenderReport(res.Report, base+".json", base+".md", verbose); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: render: %v\n", name, err)
		}
	}

	fmt.Printf("\nBatch complete: %d succeeded, %d failed of %d pairs\n", succeeded, failed, len(results))
	return nil
}

// sanitizeName makes a subject safe as a filename
func sanitizeName(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			out = append(out, r)
		case r == ' ':
			out = append(out, '-')
		}
	}
	if len(out) == 0 {
		return "report"
	}
	return string(out)
}
