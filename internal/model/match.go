package model

// MatchKind classifies how strongly a quote matched the transcript
type MatchKind string

const (
	MatchExact       MatchKind = "exact"       // Found verbatim (after normalization) as a contiguous substring
	MatchPartial     MatchKind = "partial"     // A long contiguous word-run found verbatim (>= 70% of the quote)
	MatchParaphrased MatchKind = "paraphrased" // Weaker evidence via contiguous or scattered word matches
	MatchNotFound    MatchKind = "not_found"   // Nothing above the acceptance floor
)

// MatchResult is the outcome of searching the transcript for one quote
type MatchResult struct {
	Kind        MatchKind `json:"kind"`
	Confidence  float64   `json:"confidence"`             // 0..1 textual overlap strength
	Snippet     string    `json:"snippet,omitempty"`      // Matched transcript text; scattered segments joined by "..."
	StartOffset *int      `json:"start_offset,omitempty"` // Byte offsets into the original transcript,
	EndOffset   *int      `json:"end_offset,omitempty"`   // nil when nothing was located
}

// MatchConfig holds the tunable matching thresholds.
// The defaults mirror the behavior editors were calibrated against; whether
// the floors should scale with quote length is an open tuning question, so
// they are exposed as plain knobs instead.
type MatchConfig struct {
	AcceptFloor       float64 `yaml:"accept_floor"`         // Minimum confidence for a non-exact match to count
	PartialThreshold  float64 `yaml:"partial_threshold"`    // Confidence at which a match is "partial" rather than "paraphrased"
	ScatterTrigger    float64 `yaml:"scatter_trigger"`      // Word-scatter fallback engages below this windowed confidence
	ScatterPenalty    float64 `yaml:"scatter_penalty"`      // Cap factor applied to scattered matches
	MaxWindowWords    int     `yaml:"max_window_words"`     // Largest word window tried
	MinWindowWords    int     `yaml:"min_window_words"`     // Smallest word window tried
	MinScatterWordLen int     `yaml:"min_scatter_word_len"` // Shortest word considered by the scatter fallback
}

// DefaultMatchConfig returns the standard matching thresholds
func DefaultMatchConfig() MatchConfig {
	return MatchConfig{
		AcceptFloor:       0.30,
		PartialThreshold:  0.70,
		ScatterTrigger:    0.50,
		ScatterPenalty:    0.80,
		MaxWindowWords:    8,
		MinWindowWords:    3,
		MinScatterWordLen: 4,
	}
}
