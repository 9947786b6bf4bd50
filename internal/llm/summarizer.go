package llm

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"quotecheck/internal/model"
)

// Summarizer produces an optional natural-language summary of a verification
// report. Summaries are generated after scoring and never influence the
// verification verdicts. Requests against the provider API are rate limited.
type Summarizer struct {
	provider Provider
	limiter  *rate.Limiter
	config   Config
}

// NewSummarizer creates a summarizer from configuration
func NewSummarizer(config Config) (*Summarizer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, fmt.Errorf("create provider: %w", err)
	}

	rpm := config.RequestsPerMinute
	if rpm <= 0 {
		rpm = 20
	}

	return &Summarizer{
		provider: provider,
		limiter:  rate.NewLimiter(rate.Limit(rpm/60), 1),
		config:   config,
	}, nil
}

// IsEnabled reports whether a provider is configured
func (s *Summarizer) IsEnabled() bool {
	return s != nil && s.provider != nil
}

// GenerateSummary produces the LLM summary for a report
func (s *Summarizer) GenerateSummary(ctx context.Context, report model.Report) (*model.LLMSummary, error) {
	if !s.IsEnabled() {
		return nil, nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	resp, err := s.provider.Summarize(ctx, SummarizeRequest{
		Report:        report,
		AllowedQuotes: allowedQuotes(report),
		Model:         s.config.Model,
		MaxTokens:     s.config.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}

	return &model.LLMSummary{
		Enabled:      true,
		Provider:     s.provider.Name(),
		Model:        resp.Model,
		StrictQuotes: s.config.StrictQuotes,
		SummaryMD:    resp.Summary,
		Warnings:     resp.Warnings,
	}, nil
}

// allowedQuotes collects every quotation and snippet the model may repeat
func allowedQuotes(report model.Report) []string {
	var allowed []string
	for _, rec := range report.Records {
		allowed = append(allowed, rec.QuotedText)
		if rec.Snippet != "" {
			allowed = append(allowed, rec.Snippet)
		}
	}
	return allowed
}
