package score

import (
	"fmt"

	"quotecheck/internal/model"
)

// Scorer calculates the verification index and generates diagnostic signals.
// The index is a convenience aggregate for triage; the per-record verdicts
// are the source of truth and are never altered by scoring.
type Scorer struct{}

// NewScorer creates a new scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// Calculate computes the verification index (0-100) and its signals
func (s *Scorer) Calculate(quotes []model.Quote, records []model.VerificationRecord) model.Score {
	if len(records) == 0 {
		return model.Score{
			Index:      0,
			Confidence: "low",
			Signals: []model.Signal{{
				Type:        model.SignalNoQuotes,
				Severity:    model.SeverityCritical,
				Description: "No quotes detected in the draft",
				Data: map[string]interface{}{
					"quotes": len(quotes),
				},
			}},
		}
	}

	var signals []model.Signal

	// 1. Verification coverage (0-60 points)
	coverageScore, coverageSignal := s.calculateCoverage(records)
	signals = append(signals, coverageSignal)

	// 2. Match strength (0-25 points)
	strengthScore, strengthSignal := s.calculateStrength(records)
	signals = append(signals, strengthSignal)

	// 3. Attribution coverage (0-15 points)
	attributionScore, attributionSignal := s.calculateAttribution(records)
	signals = append(signals, attributionSignal)

	// 4. Paraphrase-heavy drafts (diagnostic only, no points)
	if paraphraseSignal, flagged := s.detectParaphraseHeavy(records); flagged {
		signals = append(signals, paraphraseSignal)
	}

	total := coverageScore + strengthScore + attributionScore

	return model.Score{
		Index:      total,
		Confidence: s.determineConfidence(total, len(records)),
		Signals:    signals,
	}
}

// calculateCoverage scores the verified-to-total ratio (0-60 points)
func (s *Scorer) calculateCoverage(records []model.VerificationRecord) (int, model.Signal) {
	verified := 0
	for _, r := range records {
		if r.Verified {
			verified++
		}
	}

	ratio := float64(verified) / float64(len(records))
	points := int(ratio * 60)

	severity := model.SeverityInfo
	if ratio < 0.5 {
		severity = model.SeverityCritical
	} else if ratio < 0.8 {
		severity = model.SeverityWarning
	}

	return points, model.Signal{
		Type:        model.SignalVerificationCoverage,
		Severity:    severity,
		Description: fmt.Sprintf("Verified %d of %d quotes (%.0f%%)", verified, len(records), ratio*100),
		Data: map[string]interface{}{
			"verified": verified,
			"total":    len(records),
			"ratio":    ratio,
			"score":    points,
			"formula":  "verified / total * 60",
		},
	}
}

// calculateStrength scores the mean match confidence (0-25 points)
func (s *Scorer) calculateStrength(records []model.VerificationRecord) (int, model.Signal) {
	var sum float64
	for _, r := range records {
		sum += r.Confidence
	}
	mean := sum / float64(len(records))
	points := int(mean * 25)

	severity := model.SeverityInfo
	if mean < 0.3 {
		severity = model.SeverityCritical
	} else if mean < 0.7 {
		severity = model.SeverityWarning
	}

	return points, model.Signal{
		Type:        model.SignalMatchStrength,
		Severity:    severity,
		Description: fmt.Sprintf("Mean match confidence: %.0f%%", mean*100),
		Data: map[string]interface{}{
			"mean_confidence": mean,
			"samples":         len(records),
			"score":           points,
			"formula":         "mean(confidence) * 25",
		},
	}
}

// calculateAttribution scores the share of quotes with a known speaker
// (0-15 points). Attribution never affects the verified flag; unattributed
// quotes are only a review signal.
func (s *Scorer) calculateAttribution(records []model.VerificationRecord) (int, model.Signal) {
	attributed := 0
	for _, r := range records {
		if r.Attribution != model.AttributionUnknown {
			attributed++
		}
	}

	ratio := float64(attributed) / float64(len(records))
	points := int(ratio * 15)

	severity := model.SeverityInfo
	if ratio < 0.5 {
		severity = model.SeverityWarning
	}

	return points, model.Signal{
		Type:        model.SignalAttributionCoverage,
		Severity:    severity,
		Description: fmt.Sprintf("Attribution known for %d of %d quotes", attributed, len(records)),
		Data: map[string]interface{}{
			"attributed": attributed,
			"total":      len(records),
			"ratio":      ratio,
			"score":      points,
			"formula":    "attributed / total * 15",
		},
	}
}

// detectParaphraseHeavy flags drafts where most quotes only matched loosely
func (s *Scorer) detectParaphraseHeavy(records []model.VerificationRecord) (model.Signal, bool) {
	paraphrased := 0
	for _, r := range records {
		if r.Kind == model.MatchParaphrased {
			paraphrased++
		}
	}

	if paraphrased*2 <= len(records) {
		return model.Signal{}, false
	}

	return model.Signal{
		Type:        model.SignalParaphraseHeavy,
		Severity:    model.SeverityWarning,
		Description: fmt.Sprintf("%d of %d quotes only matched as paraphrases; wording may have drifted from the transcript", paraphrased, len(records)),
		Data: map[string]interface{}{
			"paraphrased": paraphrased,
			"total":       len(records),
		},
	}, true
}

// determineConfidence maps the index to a confidence level
func (s *Scorer) determineConfidence(index int, recordCount int) string {
	if recordCount < 2 {
		return "low"
	}
	if index >= 80 {
		return "high"
	}
	if index >= 60 {
		return "medium"
	}
	return "low"
}
