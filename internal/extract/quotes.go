package extract

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"quotecheck/internal/model"
)

// Default extraction settings
const (
	DefaultMinQuoteLength = 20  // Shorter spans are not considered quotes
	DefaultContextWindow  = 150 // Draft characters kept on each side of a match
)

// attributionVerbs are the speech verbs recognized next to a quotation
const attributionVerbs = `said|explained|noted|shared|mentioned|stated|told|expressed|revealed|admitted|emphasized|clarified|added|continued|concluded`

// pattern is one quotation/attribution shape tried against the draft
type pattern struct {
	name     string
	re       *regexp.Regexp
	quoteIdx int
	attrIdx  int
	// tieBreak marks shapes where it is ambiguous which fragment is the
	// quote; the longer fragment is then taken as the quote text. This is
	// a heuristic tie-break, not a parser guarantee.
	tieBreak bool
}

// QuoteExtractor finds quoted spans and their attributions in a draft
type QuoteExtractor struct {
	minLength     int
	contextWindow int
	patterns      []pattern
	bare          *regexp.Regexp
}

// NewQuoteExtractor creates an extractor with the default settings
func NewQuoteExtractor() *QuoteExtractor {
	return NewQuoteExtractorWith(DefaultMinQuoteLength, DefaultContextWindow)
}

// NewQuoteExtractorWith creates an extractor with an explicit minimum quote
// length and context window
func NewQuoteExtractorWith(minLength, contextWindow int) *QuoteExtractor {
	if minLength <= 0 {
		minLength = DefaultMinQuoteLength
	}
	if contextWindow <= 0 {
		contextWindow = DefaultContextWindow
	}

	return &QuoteExtractor{
		minLength:     minLength,
		contextWindow: contextWindow,
		patterns: []pattern{
			{
				// "<quote>," <attribution> said ...
				name:     "quote-then-speaker",
				re:       regexp.MustCompile(`(?i)"([^"]+)"\s*,?\s*([^".!?\n]+?)\s+(?:` + attributionVerbs + `)\b`),
				quoteIdx: 1,
				attrIdx:  2,
				tieBreak: true,
			},
			{
				// <attribution> said: "<quote>"
				name:     "speaker-then-quote",
				re:       regexp.MustCompile(`(?i)([^".!?\n]{1,80}?)\s+(?:` + attributionVerbs + `)\s*[,:]?\s*"([^"]+)"`),
				quoteIdx: 2,
				attrIdx:  1,
			},
			{
				// "<quote>" - <attribution>
				name:     "quote-dash-speaker",
				re:       regexp.MustCompile(`"([^"]+)"\s*[-\x{2013}\x{2014}]\s*([^".!?\n]+)`),
				quoteIdx: 1,
				attrIdx:  2,
			},
			{
				// according to <attribution>, "<quote>"
				name:     "according-to",
				re:       regexp.MustCompile(`(?i)(?:according to|as)\s+([^",.!?\n]+?),\s*"([^"]+)"`),
				quoteIdx: 2,
				attrIdx:  1,
			},
		},
		bare: regexp.MustCompile(`"([^"]{20,})"`),
	}
}

// Extract finds every quoted span in the draft, in order of first occurrence,
// deduplicated. A draft with no recognizable quotes yields an empty list;
// that is a reportable state for the caller, never an error.
func (e *QuoteExtractor) Extract(draft string) []model.Quote {
	if strings.TrimSpace(draft) == "" {
		return nil
	}

	// Curly quote marks fold to straight ones so a single set of patterns
	// covers both typographies.
	text := foldQuoteMarks(draft)

	var hits []hit

	for _, p := range e.patterns {
		for _, m := range p.re.FindAllStringSubmatchIndex(text, -1) {
			quote := text[m[2*p.quoteIdx]:m[2*p.quoteIdx+1]]
			attr := text[m[2*p.attrIdx]:m[2*p.attrIdx+1]]
			if p.tieBreak && utf8.RuneCountInString(attr) > utf8.RuneCountInString(quote) {
				quote, attr = attr, quote
			}

			quote = trimQuoteText(quote)
			attr = trimAttribution(attr)
			if utf8.RuneCountInString(quote) < e.minLength {
				continue
			}
			if attr == "" {
				attr = model.AttributionUnknown
			}

			hits = append(hits, hit{
				quote: model.Quote{
					Text:        quote,
					Attribution: attr,
					Context:     contextAround(text, m[0], m[1], e.contextWindow),
					Pattern:     p.name,
				},
				pos: m[2*p.quoteIdx],
			})
		}
	}

	// Bare quotations with no recognizable attribution nearby
	for _, m := range e.bare.FindAllStringSubmatchIndex(text, -1) {
		quote := trimQuoteText(text[m[2]:m[3]])
		if utf8.RuneCountInString(quote) < e.minLength {
			continue
		}
		hits = append(hits, hit{
			quote: model.Quote{
				Text:        quote,
				Attribution: model.AttributionUnknown,
				Context:     contextAround(text, m[0], m[1], e.contextWindow),
				Pattern:     "bare-quote",
			},
			pos: m[2],
		})
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })

	return dedupeQuotes(hits)
}

// hit is a quote candidate paired with its position in the draft
type hit struct {
	quote model.Quote
	pos   int
}

// dedupeQuotes removes duplicates arising from overlapping pattern matches.
// Duplicates are keyed on (normalized text, attribution); an unattributed
// candidate is also dropped when the same text appeared with a known speaker.
func dedupeQuotes(hits []hit) []model.Quote {
	known := make(map[string]bool) // texts seen with a known attribution
	for _, h := range hits {
		if h.quote.Attribution != model.AttributionUnknown {
			known[textKey(h.quote.Text)] = true
		}
	}

	seen := make(map[string]bool)
	var out []model.Quote
	for _, h := range hits {
		tk := textKey(h.quote.Text)
		if h.quote.Attribution == model.AttributionUnknown && known[tk] {
			continue
		}
		key := tk + "\x00" + strings.ToLower(h.quote.Attribution)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, h.quote)
	}
	return out
}

func textKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func foldQuoteMarks(s string) string {
	return quoteMarkFolder.Replace(s)
}

var quoteMarkFolder = strings.NewReplacer(
	"“", `"`, // left double quotation mark
	"”", `"`, // right double quotation mark
	"‘", "'",
	"’", "'",
)

// trimQuoteText strips surrounding whitespace, quote marks, and trailing
// sentence punctuation carried inside the quotation
func trimQuoteText(s string) string {
	s = strings.Trim(s, " \t\n\"'")
	s = strings.TrimRight(s, ",.")
	return strings.TrimSpace(s)
}

// trimAttribution cleans an attribution phrase
func trimAttribution(s string) string {
	return strings.Trim(s, " \t\n\"',.:;-")
}

// contextAround returns the draft text around [start,end), clamped to rune
// boundaries
func contextAround(text string, start, end, window int) string {
	lo := start - window
	if lo < 0 {
		lo = 0
	}
	hi := end + window
	if hi > len(text) {
		hi = len(text)
	}
	for lo > 0 && !utf8.RuneStart(text[lo]) {
		lo--
	}
	for hi < len(text) && !utf8.RuneStart(text[hi]) {
		hi++
	}
	return text[lo:hi]
}
