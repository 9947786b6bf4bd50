package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"quotecheck/internal/model"
	"quotecheck/internal/pipeline"
)

var (
	outJSON     string
	outMD       string
	outLLMMD    string
	timeout     time.Duration
	workers     int
	noCache     bool
	noHistory   bool
	noFooter    bool
	minQuoteLen int
	threshold   float64
	llmEnabled  bool
	llmProvider string
	llmModel    string
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <draft> <transcript>",
	Short: "Verify the quotes in a draft against its transcript",
	Long: `Verify extracts every direct quotation from the draft and locates it in
the transcript:
- Exact: found verbatim (after normalization)
- Partial: a long contiguous run of the quote's words found verbatim
- Paraphrased: weaker contiguous or scattered word evidence
- Not found: nothing above the acceptance floor

Each quote yields one verification record; a quote is verified when its
confidence reaches the verified threshold (50% by default).

Example:
  quotecheck verify draft.txt interview.txt
  quotecheck verify draft.txt interview.txt --json report.json --md report.md
  quotecheck verify draft.txt interview.txt --llm openai --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(2),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	// Output flags
	verifyCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	verifyCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	verifyCmd.Flags().StringVar(&outLLMMD, "llm-md", "", "write the LLM summary as its own Markdown file (requires --llm)")
	verifyCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// Verification flags
	verifyCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall verification timeout")
	verifyCmd.Flags().IntVar(&workers, "workers", 4, "concurrent per-quote matchers")
	verifyCmd.Flags().IntVar(&minQuoteLen, "min-quote-length", 20, "shortest span considered a quote")
	verifyCmd.Flags().Float64Var(&threshold, "threshold", 0.5, "confidence at which a quote counts as verified")
	verifyCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the report cache (force a fresh run)")
	verifyCmd.Flags().BoolVar(&noHistory, "no-history", false, "skip recording this run in history")

	// LLM flags
	verifyCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM summary generation")
	verifyCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	verifyCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runVerify(cmd *cobra.Command, args []string) error {
	draftPath, transcriptPath := args[0], args[1]

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Draft: %s\n", draftPath)
		fmt.Fprintf(os.Stderr, "Transcript: %s\n", transcriptPath)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", timeout)
		fmt.Fprintln(os.Stderr)
	}

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	p := pipeline.NewPipeline(cfg)
	defer func() { _ = p.Close() }()

	if verbose {
		fmt.Fprintf(os.Stderr, "⚙️  Verifying quotes...\n")
	}

	report, err := p.Run(ctx, draftPath, transcriptPath)
	if err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Detected %d quotes\n", len(report.Quotes))
		fmt.Fprintf(os.Stderr, "✓ Verified %d of %d\n", report.Summary.Verified, report.Summary.Total)
		fmt.Fprintf(os.Stderr, "✓ Verification index: %d/100\n", report.Score.Index)
		if report.LLM != nil && report.LLM.Enabled {
			fmt.Fprintf(os.Stderr, "✓ Generated LLM summary using %s/%s\n", report.LLM.Provider, report.LLM.Model)
		}
		fmt.Fprintln(os.Stderr)
	}

	if err := p.RenderReport(report, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	if outLLMMD != "" && report.LLM != nil && report.LLM.Enabled {
		if err := p.RenderLLMSummary(report, outLLMMD); err != nil {
			return fmt.Errorf("render LLM summary: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote LLM summary: %s\n", outLLMMD)
		}
	}

	return nil
}

// buildConfig assembles the effective configuration: built-in defaults,
// then the config file read by viper, then flags the user explicitly set
func buildConfig(cmd *cobra.Command) (*model.Config, error) {
	cfg := model.DefaultConfig()

	if err := viper.Unmarshal(cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "yaml"
	}); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("workers") {
		cfg.Verify.Workers = workers
	}
	if flags.Changed("min-quote-length") {
		cfg.Verify.MinQuoteLength = minQuoteLen
	}
	if flags.Changed("threshold") {
		cfg.Verify.VerifiedThreshold = threshold
	}
	if flags.Changed("no-cache") {
		cfg.Cache.Enabled = !noCache
	}
	if flags.Changed("no-history") {
		cfg.History.Enabled = !noHistory
	}
	if flags.Changed("no-footer") {
		cfg.Output.IncludeFooter = !noFooter
	}
	cfg.Output.Verbose = cfg.Output.Verbose || verbose

	// --llm enables the summary; the config file can also enable it by
	// setting llm.provider
	if llmEnabled {
		if flags.Changed("llm-provider") || cfg.LLM.Provider == "" {
			cfg.LLM.Provider = llmProvider
		}
		if flags.Changed("llm-model") || cfg.LLM.Model == "" {
			cfg.LLM.Model = llmModel
		}
		cfg.LLM.StrictQuotes = true // Always enforce
	}

	if cfg.LLM.Provider != "" {
		switch strings.ToLower(cfg.LLM.Provider) {
		case "openai":
			if cfg.LLM.APIKey == "" {
				cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			}
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "ollama":
			if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
				cfg.LLM.BaseURL = baseURL
			}
		}
	}

	return cfg, nil
}
