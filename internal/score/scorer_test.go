package score

import (
	"testing"

	"quotecheck/internal/model"
)

func record(verified bool, kind model.MatchKind, confidence float64, attribution string) model.VerificationRecord {
	return model.VerificationRecord{
		ID:          "test",
		QuotedText:  "some quoted text used by the scorer tests",
		Attribution: attribution,
		Verified:    verified,
		Kind:        kind,
		Confidence:  confidence,
	}
}

func TestScorer_NoRecords(t *testing.T) {
	scorer := NewScorer()

	score := scorer.Calculate(nil, nil)

	if score.Index != 0 {
		t.Errorf("Expected index 0, got %d", score.Index)
	}
	if score.Confidence != "low" {
		t.Errorf("Expected low confidence, got %s", score.Confidence)
	}
	if len(score.Signals) != 1 {
		t.Fatalf("Expected 1 signal, got %d", len(score.Signals))
	}
	if score.Signals[0].Type != model.SignalNoQuotes {
		t.Errorf("Expected no_quotes signal, got %s", score.Signals[0].Type)
	}
	if score.Signals[0].Severity != model.SeverityCritical {
		t.Errorf("Expected critical severity, got %s", score.Signals[0].Severity)
	}
}

func TestScorer_PerfectReport(t *testing.T) {
	scorer := NewScorer()

	records := []model.VerificationRecord{
		record(true, model.MatchExact, 1.0, "the CEO"),
		record(true, model.MatchExact, 1.0, "the CTO"),
	}

	score := scorer.Calculate(nil, records)

	// 60 coverage + 25 strength + 15 attribution
	if score.Index != 100 {
		t.Errorf("Expected index 100, got %d", score.Index)
	}
	if score.Confidence != "high" {
		t.Errorf("Expected high confidence, got %s", score.Confidence)
	}
	if len(score.Signals) != 3 {
		t.Errorf("Expected 3 signals, got %d", len(score.Signals))
	}
}

func TestScorer_MixedReport(t *testing.T) {
	scorer := NewScorer()

	records := []model.VerificationRecord{
		record(true, model.MatchExact, 1.0, "the CEO"),
		record(false, model.MatchNotFound, 0.0, model.AttributionUnknown),
	}

	score := scorer.Calculate(nil, records)

	// coverage 30 + strength 12 + attribution 7
	if score.Index != 49 {
		t.Errorf("Expected index 49, got %d", score.Index)
	}
	if score.Confidence != "low" {
		t.Errorf("Expected low confidence, got %s", score.Confidence)
	}
}

func TestScorer_SingleRecordAlwaysLowConfidence(t *testing.T) {
	scorer := NewScorer()

	records := []model.VerificationRecord{
		record(true, model.MatchExact, 1.0, "the CEO"),
	}

	score := scorer.Calculate(nil, records)

	if score.Index != 100 {
		t.Errorf("Expected index 100, got %d", score.Index)
	}
	if score.Confidence != "low" {
		t.Errorf("One record is too small a sample for confidence, got %s", score.Confidence)
	}
}

func TestScorer_ParaphraseHeavySignal(t *testing.T) {
	scorer := NewScorer()

	records := []model.VerificationRecord{
		record(true, model.MatchParaphrased, 0.55, "the CEO"),
		record(true, model.MatchParaphrased, 0.60, "the CTO"),
		record(true, model.MatchExact, 1.0, "the CFO"),
	}

	score := scorer.Calculate(nil, records)

	found := false
	for _, sig := range score.Signals {
		if sig.Type == model.SignalParaphraseHeavy {
			found = true
			if sig.Severity != model.SeverityWarning {
				t.Errorf("Expected warning severity, got %s", sig.Severity)
			}
		}
	}
	if !found {
		t.Error("Expected paraphrase_heavy signal when most quotes matched loosely")
	}
}

func TestScorer_NoParaphraseSignalAtHalf(t *testing.T) {
	scorer := NewScorer()

	records := []model.VerificationRecord{
		record(true, model.MatchParaphrased, 0.55, "the CEO"),
		record(true, model.MatchExact, 1.0, "the CTO"),
	}

	score := scorer.Calculate(nil, records)

	for _, sig := range score.Signals {
		if sig.Type == model.SignalParaphraseHeavy {
			t.Error("Exactly half paraphrased should not flag paraphrase_heavy")
		}
	}
}

func TestScorer_CoverageSeverity(t *testing.T) {
	scorer := NewScorer()

	cases := []struct {
		name     string
		verified int
		total    int
		want     model.SignalSeverity
	}{
		{"all verified", 4, 4, model.SeverityInfo},
		{"most verified", 3, 4, model.SeverityWarning},
		{"few verified", 1, 4, model.SeverityCritical},
	}

	for _, c := range cases {
		var records []model.VerificationRecord
		for i := 0; i < c.total; i++ {
			records = append(records, record(i < c.verified, model.MatchExact, 1.0, "speaker"))
		}

		score := scorer.Calculate(nil, records)
		for _, sig := range score.Signals {
			if sig.Type == model.SignalVerificationCoverage && sig.Severity != c.want {
				t.Errorf("%s: expected %s severity, got %s", c.name, c.want, sig.Severity)
			}
		}
	}
}

func TestScorer_SignalDataIsTransparent(t *testing.T) {
	scorer := NewScorer()

	records := []model.VerificationRecord{
		record(true, model.MatchExact, 1.0, "the CEO"),
		record(false, model.MatchNotFound, 0.0, model.AttributionUnknown),
	}

	score := scorer.Calculate(nil, records)

	for _, sig := range score.Signals {
		if sig.Data == nil {
			t.Errorf("Signal %s carries no data", sig.Type)
			continue
		}
		if _, ok := sig.Data["formula"]; !ok {
			t.Errorf("Signal %s does not expose its formula", sig.Type)
		}
	}
}
