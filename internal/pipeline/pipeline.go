package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"quotecheck/internal/cache"
	"quotecheck/internal/llm"
	"quotecheck/internal/model"
	"quotecheck/internal/score"
	"quotecheck/internal/store"
	"quotecheck/internal/verify"
)

// Pipeline orchestrates a complete verification run: load the draft and
// transcript, extract and verify quotes, score the result, and render it
type Pipeline struct {
	loader     *Loader
	verifier   *verify.Verifier
	scorer     *score.Scorer
	renderer   *Renderer
	reports    cache.Cache     // nil when caching is disabled
	history    *store.Store    // nil when history is disabled
	summarizer *llm.Summarizer // nil when the LLM summary is disabled
	config     *model.Config
}

// NewPipeline creates a pipeline from configuration
func NewPipeline(cfg *model.Config) *Pipeline {
	var reports cache.Cache
	if cfg.Cache.Enabled {
		reports = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}

	var history *store.Store
	if cfg.History.Enabled {
		h, err := store.Open(cfg.History.Path)
		if err != nil {
			fmt.Printf("Warning: history disabled: %v\n", err)
		} else {
			history = h
		}
	}

	var summarizer *llm.Summarizer
	if cfg.LLM.Provider != "" {
		s, err := llm.NewSummarizer(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			fmt.Printf("Warning: failed to initialize LLM provider: %v\n", err)
		} else {
			summarizer = s
		}
	}

	return &Pipeline{
		loader:     NewLoader(cfg.Input.MaxBytes),
		verifier:   verify.NewVerifier(cfg.Verify, cfg.Match),
		scorer:     score.NewScorer(),
		renderer:   NewRenderer(cfg.Output.IncludeFooter),
		reports:    reports,
		history:    history,
		summarizer: summarizer,
		config:     cfg,
	}
}

// Close releases pipeline resources
func (p *Pipeline) Close() error {
	if p.history != nil {
		return p.history.Close()
	}
	return nil
}

// Run verifies one draft/transcript pair and returns the complete report
func (p *Pipeline) Run(ctx context.Context, draftPath, transcriptPath string) (*model.Report, error) {
	// 1. Load inputs
	draft, err := p.loader.Load(draftPath)
	if err != nil {
		return nil, fmt.Errorf("load draft: %w", err)
	}
	transcript, err := p.loader.Load(transcriptPath)
	if err != nil {
		return nil, fmt.Errorf("load transcript: %w", err)
	}

	// 2. Reuse a cached report when the inputs are unchanged
	key := cache.ReportKey(draft, transcript)
	if p.reports != nil {
		if data, found := p.reports.Get(key); found {
			var cached model.Report
			if jerr := json.Unmarshal(data, &cached); jerr == nil {
				p.recordHistory(ctx, &cached)
				return p.withSummary(ctx, &cached), nil
			}
		}
	}

	// 3. Extract and verify quotes
	result, err := p.verifier.VerifyAll(ctx, draft, transcript)
	if err != nil {
		return nil, fmt.Errorf("verify quotes: %w", err)
	}

	// 4. Score
	scoreResult := p.scorer.Calculate(result.Quotes, result.Records)

	// 5. Build report
	report := &model.Report{
		Subject:        model.SubjectFromPath(draftPath),
		DraftPath:      draftPath,
		TranscriptPath: transcriptPath,
		GeneratedAt:    time.Now().UTC(),
		Quotes:         result.Quotes,
		Records:        result.Records,
		NoQuotesFound:  result.NoQuotesFound,
		Summary: model.Summary{
			Total:      len(result.Records),
			Verified:   result.Verified,
			Unverified: result.Unverified,
		},
		Score: scoreResult,
	}

	// 6. Cache the scored report (without the LLM section)
	if p.reports != nil {
		if data, jerr := json.Marshal(report); jerr == nil {
			if cerr := p.reports.Set(key, data, 0); cerr != nil {
				fmt.Printf("Warning: report cache write failed: %v\n", cerr)
			}
		}
	}

	p.recordHistory(ctx, report)

	// 7. Generate the LLM summary if enabled (after scoring, never affects it)
	return p.withSummary(ctx, report), nil
}

// recordHistory saves the run to the history store when enabled
func (p *Pipeline) recordHistory(ctx context.Context, report *model.Report) {
	if p.history == nil {
		return
	}
	if _, err := p.history.SaveRun(ctx, report); err != nil {
		fmt.Printf("Warning: failed to save run history: %v\n", err)
	}
}

// withSummary attaches the optional LLM summary to the report
func (p *Pipeline) withSummary(ctx context.Context, report *model.Report) *model.Report {
	if p.summarizer == nil || !p.summarizer.IsEnabled() {
		return report
	}
	summary, err := p.summarizer.GenerateSummary(ctx, *report)
	if err != nil {
		// A failed summary never fails the verification run
		fmt.Printf("Warning: LLM summary generation failed: %v\n", err)
		return report
	}
	report.LLM = summary
	return report
}

// RenderReport renders the report to the requested outputs and prints the
// stdout summary
func (p *Pipeline) RenderReport(report *model.Report, jsonPath, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	p.renderer.RenderSummary(report)
	return nil
}

// RenderLLMSummary writes the LLM summary as a standalone Markdown document,
// separate from the authoritative report
func (p *Pipeline) RenderLLMSummary(report *model.Report, path string) error {
	if report.LLM == nil || !report.LLM.Enabled {
		return fmt.Errorf("report has no LLM summary")
	}
	doc := llm.RenderSeparateMarkdown(report.LLM)
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
