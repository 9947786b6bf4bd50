package model

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds the full quotecheck configuration
type Config struct {
	Verify  VerifyConfig  `yaml:"verify"`
	Match   MatchConfig   `yaml:"match"`
	Input   InputConfig   `yaml:"input"`
	Cache   CacheConfig   `yaml:"cache"`
	History HistoryConfig `yaml:"history"`
	Output  OutputConfig  `yaml:"output"`
	LLM     LLMConfig     `yaml:"llm"`
}

// VerifyConfig controls quote extraction and verification
type VerifyConfig struct {
	Workers           int     `yaml:"workers"`            // Concurrent per-quote matchers
	MinQuoteLength    int     `yaml:"min_quote_length"`   // Shorter spans are not considered quotes
	ContextWindow     int     `yaml:"context_window"`     // Draft characters kept around each quote
	VerifiedThreshold float64 `yaml:"verified_threshold"` // Confidence at which a record is verified
}

// InputConfig controls how draft and transcript files are loaded
type InputConfig struct {
	MaxBytes int64 `yaml:"max_bytes"` // Largest input file accepted
}

// CacheConfig controls the verification report cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// HistoryConfig controls the verification run history store
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"` // SQLite database file
}

// OutputConfig controls rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose"`
	IncludeFooter bool `yaml:"include_footer"`
}

// LLMConfig holds LLM summarizer configuration
type LLMConfig struct {
	Provider          string  `yaml:"provider"` // "openai", "ollama", "" (disabled)
	Model             string  `yaml:"model"`
	APIKey            string  `yaml:"api_key,omitempty"`
	BaseURL           string  `yaml:"base_url,omitempty"`
	Timeout           int     `yaml:"timeout"` // seconds
	StrictQuotes      bool    `yaml:"strict_quotes"`
	MaxTokens         int     `yaml:"max_tokens"`
	RequestsPerMinute float64 `yaml:"requests_per_minute"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	base := filepath.Join(home, ".quotecheck")

	return &Config{
		Verify: VerifyConfig{
			Workers:           4,
			MinQuoteLength:    20,
			ContextWindow:     150,
			VerifiedThreshold: 0.50,
		},
		Match: DefaultMatchConfig(),
		Input: InputConfig{
			MaxBytes: 10_000_000,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       filepath.Join(base, "cache"),
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    filepath.Join(base, "history.db"),
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
		LLM: LLMConfig{
			Provider:          "",
			Model:             "",
			Timeout:           30,
			StrictQuotes:      true,
			MaxTokens:         1000,
			RequestsPerMinute: 20,
		},
	}
}
