package match

import (
	"sort"
	"strings"

	"quotecheck/internal/model"
)

// Matcher locates the best correspondence between a quote and a transcript.
// Three tiers are tried as independent functions (exact containment, sliding
// word window, scattered word lookup); a fixed confidence rule picks the
// strongest candidate, so no match state is shared across tiers.
type Matcher struct {
	cfg model.MatchConfig
}

// NewMatcher creates a matcher with the given thresholds
func NewMatcher(cfg model.MatchConfig) *Matcher {
	if cfg.MinWindowWords <= 0 {
		cfg = model.DefaultMatchConfig()
	}
	return &Matcher{cfg: cfg}
}

// candidate is one tier's proposed match. Offsets are byte positions in the
// original transcript.
type candidate struct {
	confidence float64
	snippet    string
	start      int
	end        int
}

// Match searches the transcript for the quote and returns the strongest
// evidence found. An empty quote or transcript yields a not-found result
// with zero confidence rather than an error.
func (m *Matcher) Match(quote, transcript string) model.MatchResult {
	nq := Normalize(quote)
	nt := Normalize(transcript)
	if nq.Text == "" || nt.Text == "" {
		return model.MatchResult{Kind: model.MatchNotFound}
	}

	if c, ok := tryExact(nq, nt, transcript); ok {
		return m.classify(c)
	}

	best, found := m.tryPartialWindow(nq, nt, transcript)

	// The scatter fallback only engages when the windowed search produced
	// weak or no evidence; it replaces the windowed result if stronger.
	if !found || best.confidence < m.cfg.ScatterTrigger {
		if sc, ok := m.tryWordScatter(nq, nt, transcript); ok && (!found || sc.confidence > best.confidence) {
			best, found = sc, true
		}
	}

	if !found || best.confidence < m.cfg.AcceptFloor {
		var conf float64
		if found {
			conf = best.confidence
		}
		return model.MatchResult{Kind: model.MatchNotFound, Confidence: conf}
	}
	return m.classify(best)
}

// classify applies the single kind rule: confidence alone decides the kind,
// regardless of which tier produced the candidate.
func (m *Matcher) classify(c candidate) model.MatchResult {
	kind := model.MatchParaphrased
	switch {
	case c.confidence >= 1.0:
		kind = model.MatchExact
	case c.confidence >= m.cfg.PartialThreshold:
		kind = model.MatchPartial
	}

	start, end := c.start, c.end
	return model.MatchResult{
		Kind:        kind,
		Confidence:  c.confidence,
		Snippet:     c.snippet,
		StartOffset: &start,
		EndOffset:   &end,
	}
}

// tryExact reports the quote as an exact match if the normalized transcript
// contains the normalized quote as a contiguous substring.
func tryExact(nq, nt *Normalized, transcript string) (candidate, bool) {
	idx := strings.Index(nt.Text, nq.Text)
	if idx < 0 {
		return candidate{}, false
	}
	start, end := nt.OriginalSpan(idx, idx+len(nq.Text))
	return candidate{
		confidence: 1.0,
		snippet:    transcript[start:end],
		start:      start,
		end:        end,
	}, true
}

// tryPartialWindow searches for the longest contiguous run of the quote's
// words appearing verbatim in the transcript. Window sizes descend from
// min(quote words, max window) to the minimum window, so the first hit is
// the best one. Confidence is windowSize / quoteWordCount.
func (m *Matcher) tryPartialWindow(nq, nt *Normalized, transcript string) (candidate, bool) {
	words := strings.Fields(nq.Text)
	total := len(words)

	maxWin := m.cfg.MaxWindowWords
	if total < maxWin {
		maxWin = total
	}

	for size := maxWin; size >= m.cfg.MinWindowWords; size-- {
		for start := 0; start+size <= total; start++ {
			phrase := strings.Join(words[start:start+size], " ")
			idx := strings.Index(nt.Text, phrase)
			if idx < 0 {
				continue
			}
			os, oe := nt.OriginalSpan(idx, idx+len(phrase))
			return candidate{
				confidence: float64(size) / float64(total),
				snippet:    transcript[os:oe],
				start:      os,
				end:        oe,
			}, true
		}
	}
	return candidate{}, false
}

// tryWordScatter looks up each sufficiently long quote word independently
// (first occurrence each) and treats the found positions as discrete
// segments. Confidence is foundWords / totalWords scaled by the scatter
// penalty, since scattered words cannot guarantee one coherent quotation.
func (m *Matcher) tryWordScatter(nq, nt *Normalized, transcript string) (candidate, bool) {
	words := strings.Fields(nq.Text)
	if len(words) == 0 {
		return candidate{}, false
	}

	type segment struct{ start, end int } // normalized byte offsets
	var segs []segment
	found := 0
	for _, w := range words {
		if len(w) < m.cfg.MinScatterWordLen {
			continue
		}
		idx := strings.Index(nt.Text, w)
		if idx < 0 {
			continue
		}
		found++
		segs = append(segs, segment{idx, idx + len(w)})
	}
	if found == 0 {
		return candidate{}, false
	}

	sort.Slice(segs, func(i, j int) bool { return segs[i].start < segs[j].start })

	// Merge overlapping segments so the snippet reads cleanly
	merged := segs[:1]
	for _, s := range segs[1:] {
		last := &merged[len(merged)-1]
		if s.start <= last.end {
			if s.end > last.end {
				last.end = s.end
			}
			continue
		}
		merged = append(merged, s)
	}

	parts := make([]string, 0, len(merged))
	for _, s := range merged {
		os, oe := nt.OriginalSpan(s.start, s.end)
		parts = append(parts, transcript[os:oe])
	}

	firstStart, _ := nt.OriginalSpan(merged[0].start, merged[0].end)
	_, lastEnd := nt.OriginalSpan(merged[len(merged)-1].start, merged[len(merged)-1].end)

	return candidate{
		confidence: float64(found) / float64(len(words)) * m.cfg.ScatterPenalty,
		snippet:    strings.Join(parts, "..."),
		start:      firstStart,
		end:        lastEnd,
	}, true
}
