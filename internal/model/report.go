package model

import (
	"path/filepath"
	"strings"
	"time"
)

// Report represents a complete quote verification report for one
// draft/transcript pair
type Report struct {
	Subject        string    `json:"subject"`         // Derived from the draft filename
	DraftPath      string    `json:"draft_path"`      // Draft file that was verified
	TranscriptPath string    `json:"transcript_path"` // Transcript it was checked against
	GeneratedAt    time.Time `json:"generated_at"`

	Quotes  []Quote              `json:"quotes"`  // Quotes detected in the draft
	Records []VerificationRecord `json:"records"` // One verification record per quote

	// NoQuotesFound marks a draft in which no quotation was detected.
	// This is a distinct, reportable state, not an empty verification.
	NoQuotesFound bool `json:"no_quotes_found"`

	Summary Summary `json:"summary"`
	Score   Score   `json:"score"`

	LLM *LLMSummary `json:"llm,omitempty"` // Optional LLM summary (separate, never affects the score)
}

// Summary holds the aggregate verification counts
type Summary struct {
	Total      int `json:"total"`
	Verified   int `json:"verified"`
	Unverified int `json:"unverified"`
}

// Score represents the transparent scoring breakdown for a report
type Score struct {
	Index      int      `json:"index"`      // Overall verification index (0-100)
	Confidence string   `json:"confidence"` // "low", "medium", "high"
	Signals    []Signal `json:"signals"`    // Diagnostic signals with transparent data
}

// Signal represents a diagnostic signal with transparent scoring data
type Signal struct {
	Type        SignalType             `json:"type"`
	Severity    SignalSeverity         `json:"severity"`
	Description string                 `json:"description"`
	Data        map[string]interface{} `json:"data,omitempty"` // Inputs and formulas behind the number
}

// SignalType classifies the type of diagnostic signal
type SignalType string

const (
	SignalVerificationCoverage SignalType = "verification_coverage" // Verified-to-total ratio
	SignalMatchStrength        SignalType = "match_strength"        // Mean match confidence
	SignalAttributionCoverage  SignalType = "attribution_coverage"  // Quotes with a known speaker
	SignalParaphraseHeavy      SignalType = "paraphrase_heavy"      // Most quotes only matched loosely
	SignalNoQuotes             SignalType = "no_quotes"             // Draft contained no detectable quotes
)

// SignalSeverity indicates the importance of the signal
type SignalSeverity string

const (
	SeverityInfo     SignalSeverity = "info"
	SeverityWarning  SignalSeverity = "warning"
	SeverityCritical SignalSeverity = "critical"
)

// LLMSummary contains an optional LLM-generated summary of the report.
// It never affects verification results or scoring.
type LLMSummary struct {
	Enabled      bool     `json:"enabled"`
	Provider     string   `json:"provider,omitempty"`
	Model        string   `json:"model,omitempty"`
	StrictQuotes bool     `json:"strict_quotes"` // Whether fabricated-quote enforcement was enabled
	SummaryMD    string   `json:"summary_md,omitempty"`
	Warnings     []string `json:"warnings,omitempty"`
}

// SubjectFromPath derives a human-readable subject from a draft file path
func SubjectFromPath(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.ReplaceAll(base, "_", " ")
	base = strings.ReplaceAll(base, "-", " ")
	return base
}
