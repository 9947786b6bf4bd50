package model

// AttributionUnknown is the sentinel attribution used when no attribution
// pattern matched near a quote.
const AttributionUnknown = "Unknown"

// Quote represents a quoted span found in the draft
type Quote struct {
	Text        string `json:"text"`                  // The quoted content, trimmed
	Attribution string `json:"attribution"`           // Nearest attribution phrase, or "Unknown"
	Context     string `json:"context,omitempty"`     // Surrounding draft text, for diagnostics
	Pattern     string `json:"pattern,omitempty"`     // Which extraction pattern matched (e.g., "quote-then-speaker")
}
