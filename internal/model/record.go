package model

// VerificationRecord is the persisted unit of output, one per detected quote.
// Verified is derived from a single confidence threshold and is deliberately
// independent of the match kind and of whether the attribution is known.
type VerificationRecord struct {
	ID          string    `json:"id"` // Unique per run
	QuotedText  string    `json:"quoted_text"`
	Attribution string    `json:"attribution"`
	Verified    bool      `json:"verified"` // confidence >= the verified threshold
	Kind        MatchKind `json:"kind"`
	Confidence  float64   `json:"confidence"`
	Snippet     string    `json:"snippet,omitempty"`
	StartOffset *int      `json:"start_offset,omitempty"`
	EndOffset   *int      `json:"end_offset,omitempty"`
}
