package extract

import (
	"strings"
	"testing"

	"quotecheck/internal/model"
)

func TestQuoteExtractor_QuoteThenSpeaker(t *testing.T) {
	extractor := NewQuoteExtractor()

	draft := `"We doubled our revenue in the last quarter," the chief executive said.`
	quotes := extractor.Extract(draft)

	if len(quotes) != 1 {
		t.Fatalf("Expected 1 quote, got %d", len(quotes))
	}
	if quotes[0].Text != "We doubled our revenue in the last quarter" {
		t.Errorf("Unexpected quote text: '%s'", quotes[0].Text)
	}
	if quotes[0].Attribution != "the chief executive" {
		t.Errorf("Unexpected attribution: '%s'", quotes[0].Attribution)
	}
	if quotes[0].Pattern != "quote-then-speaker" {
		t.Errorf("Unexpected pattern: '%s'", quotes[0].Pattern)
	}
}

func TestQuoteExtractor_TrailingCommaInsideQuotes(t *testing.T) {
	extractor := NewQuoteExtractor()

	// American style keeps the comma inside the closing quote mark; it must
	// not survive into the quote text
	draft := `"Our process needs a complete overhaul this year," she explained.`
	quotes := extractor.Extract(draft)

	if len(quotes) != 1 {
		t.Fatalf("Expected 1 quote, got %d", len(quotes))
	}
	if strings.HasSuffix(quotes[0].Text, ",") {
		t.Errorf("Trailing comma should be trimmed: '%s'", quotes[0].Text)
	}
	if quotes[0].Text != "Our process needs a complete overhaul this year" {
		t.Errorf("Unexpected quote text: '%s'", quotes[0].Text)
	}
}

func TestQuoteExtractor_SpeakerThenQuote(t *testing.T) {
	extractor := NewQuoteExtractor()

	draft := `The manager explained: "Our process needs a complete overhaul this year."`
	quotes := extractor.Extract(draft)

	if len(quotes) != 1 {
		t.Fatalf("Expected 1 quote, got %d", len(quotes))
	}
	if quotes[0].Text != "Our process needs a complete overhaul this year" {
		t.Errorf("Unexpected quote text: '%s'", quotes[0].Text)
	}
	if quotes[0].Attribution != "The manager" {
		t.Errorf("Unexpected attribution: '%s'", quotes[0].Attribution)
	}
	if quotes[0].Pattern != "speaker-then-quote" {
		t.Errorf("Unexpected pattern: '%s'", quotes[0].Pattern)
	}
}

func TestQuoteExtractor_QuoteDashSpeaker(t *testing.T) {
	extractor := NewQuoteExtractor()

	draft := `"Quality is never an accident in any project" - Sarah Chen`
	quotes := extractor.Extract(draft)

	if len(quotes) != 1 {
		t.Fatalf("Expected 1 quote, got %d", len(quotes))
	}
	if quotes[0].Attribution != "Sarah Chen" {
		t.Errorf("Unexpected attribution: '%s'", quotes[0].Attribution)
	}
	if quotes[0].Pattern != "quote-dash-speaker" {
		t.Errorf("Unexpected pattern: '%s'", quotes[0].Pattern)
	}
}

func TestQuoteExtractor_AccordingTo(t *testing.T) {
	extractor := NewQuoteExtractor()

	draft := `According to the spokesperson, "the merger closed a few weeks ahead of schedule".`
	quotes := extractor.Extract(draft)

	if len(quotes) != 1 {
		t.Fatalf("Expected 1 quote, got %d", len(quotes))
	}
	if quotes[0].Text != "the merger closed a few weeks ahead of schedule" {
		t.Errorf("Unexpected quote text: '%s'", quotes[0].Text)
	}
	if quotes[0].Attribution != "the spokesperson" {
		t.Errorf("Unexpected attribution: '%s'", quotes[0].Attribution)
	}
	if quotes[0].Pattern != "according-to" {
		t.Errorf("Unexpected pattern: '%s'", quotes[0].Pattern)
	}
}

func TestQuoteExtractor_BareQuote(t *testing.T) {
	extractor := NewQuoteExtractor()

	draft := `He radiated confidence. "Everything is going to plan for the launch". Then he left.`
	quotes := extractor.Extract(draft)

	if len(quotes) != 1 {
		t.Fatalf("Expected 1 quote, got %d", len(quotes))
	}
	if quotes[0].Attribution != model.AttributionUnknown {
		t.Errorf("Expected unknown attribution, got '%s'", quotes[0].Attribution)
	}
	if quotes[0].Pattern != "bare-quote" {
		t.Errorf("Unexpected pattern: '%s'", quotes[0].Pattern)
	}
}

func TestQuoteExtractor_CurlyQuoteMarks(t *testing.T) {
	extractor := NewQuoteExtractor()

	draft := `“We doubled our revenue in the last quarter,” the founder said.`
	quotes := extractor.Extract(draft)

	if len(quotes) != 1 {
		t.Fatalf("Expected 1 quote from curly-quoted draft, got %d", len(quotes))
	}
	if quotes[0].Text != "We doubled our revenue in the last quarter" {
		t.Errorf("Unexpected quote text: '%s'", quotes[0].Text)
	}
	if quotes[0].Attribution != "the founder" {
		t.Errorf("Unexpected attribution: '%s'", quotes[0].Attribution)
	}
}

func TestQuoteExtractor_MinimumLength(t *testing.T) {
	extractor := NewQuoteExtractor()

	draft := `"Too short," she said. And then: "this one is comfortably above the length floor," he added.`
	quotes := extractor.Extract(draft)

	if len(quotes) != 1 {
		t.Fatalf("Expected only the long quote, got %d", len(quotes))
	}
	if quotes[0].Text != "this one is comfortably above the length floor" {
		t.Errorf("Unexpected quote text: '%s'", quotes[0].Text)
	}
}

func TestQuoteExtractor_AttributedWinsOverBare(t *testing.T) {
	extractor := NewQuoteExtractor()

	// The attributed pattern and the bare-quote fallback both match the
	// same span; only the attributed hit may survive
	draft := `"We doubled our revenue in the last quarter," the chief executive said.`
	quotes := extractor.Extract(draft)

	if len(quotes) != 1 {
		t.Fatalf("Expected 1 quote after dedupe, got %d", len(quotes))
	}
	if quotes[0].Attribution == model.AttributionUnknown {
		t.Error("Attributed quote should not be replaced by the bare-quote hit")
	}
}

func TestQuoteExtractor_DedupeRepeatedQuote(t *testing.T) {
	extractor := NewQuoteExtractor()

	draft := `"We doubled our revenue in the last quarter," the chief executive said. ` +
		`Later she repeated it: "We doubled our revenue in the last quarter," the chief executive said.`
	quotes := extractor.Extract(draft)

	if len(quotes) != 1 {
		t.Fatalf("Expected 1 unique quote, got %d", len(quotes))
	}
}

func TestQuoteExtractor_SameTextDifferentSpeakers(t *testing.T) {
	extractor := NewQuoteExtractor()

	draft := `"We doubled our revenue in the last quarter," the chief executive said. ` +
		`"We doubled our revenue in the last quarter," the board chair added.`
	quotes := extractor.Extract(draft)

	if len(quotes) != 2 {
		t.Fatalf("Expected 2 quotes for distinct speakers, got %d", len(quotes))
	}
}

func TestQuoteExtractor_OrderOfFirstOccurrence(t *testing.T) {
	extractor := NewQuoteExtractor()

	draft := `The manager explained: "Our process needs a complete overhaul this year." ` +
		`"We doubled our revenue in the last quarter," the chief executive said.`
	quotes := extractor.Extract(draft)

	if len(quotes) != 2 {
		t.Fatalf("Expected 2 quotes, got %d", len(quotes))
	}
	if !strings.HasPrefix(quotes[0].Text, "Our process") {
		t.Errorf("Expected the first-occurring quote first, got '%s'", quotes[0].Text)
	}
	if !strings.HasPrefix(quotes[1].Text, "We doubled") {
		t.Errorf("Expected the later quote second, got '%s'", quotes[1].Text)
	}
}

func TestQuoteExtractor_ContextWindow(t *testing.T) {
	extractor := NewQuoteExtractorWith(20, 30)

	draft := strings.Repeat("lead-in text ", 10) +
		`"We doubled our revenue in the last quarter," the chief executive said.` +
		strings.Repeat(" trailing text", 10)
	quotes := extractor.Extract(draft)

	if len(quotes) != 1 {
		t.Fatalf("Expected 1 quote, got %d", len(quotes))
	}
	ctx := quotes[0].Context
	if !strings.Contains(ctx, "We doubled our revenue") {
		t.Errorf("Context should contain the quote, got '%s'", ctx)
	}
	if !strings.Contains(ctx, "lead-in") {
		t.Errorf("Context should include text before the quote, got '%s'", ctx)
	}
	if len(ctx) >= len(draft) {
		t.Error("Context should be a window, not the whole draft")
	}
}

func TestQuoteExtractor_EmptyDraft(t *testing.T) {
	extractor := NewQuoteExtractor()

	for _, draft := range []string{"", "   \n\t  "} {
		if quotes := extractor.Extract(draft); len(quotes) != 0 {
			t.Errorf("Expected no quotes for %q, got %d", draft, len(quotes))
		}
	}
}

func TestQuoteExtractor_NoQuotesInProse(t *testing.T) {
	extractor := NewQuoteExtractor()

	draft := `The company had a strong quarter. Revenue grew and churn fell. Everyone was pleased with the results.`
	if quotes := extractor.Extract(draft); len(quotes) != 0 {
		t.Errorf("Expected no quotes in plain prose, got %d", len(quotes))
	}
}

func TestQuoteExtractor_AllAttributionVerbs(t *testing.T) {
	extractor := NewQuoteExtractor()

	verbs := []string{
		"said", "explained", "noted", "shared", "mentioned", "stated",
		"told", "expressed", "revealed", "admitted", "emphasized",
		"clarified", "added", "continued", "concluded",
	}

	for _, verb := range verbs {
		draft := `"The migration finished two weeks ahead of schedule," the engineer ` + verb + `.`
		quotes := extractor.Extract(draft)
		if len(quotes) != 1 {
			t.Errorf("Expected 1 quote for verb '%s', got %d", verb, len(quotes))
			continue
		}
		if quotes[0].Attribution != "the engineer" {
			t.Errorf("Verb '%s': unexpected attribution '%s'", verb, quotes[0].Attribution)
		}
	}
}

func TestTrimQuoteText(t *testing.T) {
	cases := []struct{ in, want string }{
		{`  We grew fast,  `, "We grew fast"},
		{`"Quoted inside."`, "Quoted inside"},
		{"plain text", "plain text"},
		{"ends with period.", "ends with period"},
	}
	for _, c := range cases {
		if got := trimQuoteText(c.in); got != c.want {
			t.Errorf("trimQuoteText(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestTrimAttribution(t *testing.T) {
	cases := []struct{ in, want string }{
		{" the CEO, ", "the CEO"},
		{`"Sarah Chen"`, "Sarah Chen"},
		{"- the founder -", "the founder"},
	}
	for _, c := range cases {
		if got := trimAttribution(c.in); got != c.want {
			t.Errorf("trimAttribution(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
