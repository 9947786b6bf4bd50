package llm

import (
	"context"

	"quotecheck/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Summarize generates a prose summary of a verification report
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)

	// IsAvailable checks if the provider is properly configured and reachable
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest contains the input for LLM summarization
type SummarizeRequest struct {
	// Report is the verification report to summarize
	Report model.Report

	// AllowedQuotes is the strict allowlist of quote texts and snippets the
	// model may repeat. Quoting text outside this list is treated as
	// fabrication.
	AllowedQuotes []string

	// Prompt is an optional custom prompt (if empty, the default is built)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// SummarizeResponse contains the LLM's summary output
type SummarizeResponse struct {
	// Summary is the generated summary text
	Summary string

	// QuotedStrings are the quotations the model actually repeated
	QuotedStrings []string

	// Warnings carries non-fatal issues found in the summary, such as a
	// quotation outside the allowlist when strict checking is off
	Warnings []string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests, in seconds
	Timeout int

	// StrictQuotes rejects summaries that quote text not in the allowlist
	StrictQuotes bool

	// MaxTokens for response generation
	MaxTokens int

	// RequestsPerMinute caps the request rate against the provider
	RequestsPerMinute float64
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(c model.LLMConfig) Config {
	return Config{
		Provider:          c.Provider,
		Model:             c.Model,
		APIKey:            c.APIKey,
		BaseURL:           c.BaseURL,
		Timeout:           c.Timeout,
		StrictQuotes:      c.StrictQuotes,
		MaxTokens:         c.MaxTokens,
		RequestsPerMinute: c.RequestsPerMinute,
	}
}
