package verify

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"quotecheck/internal/extract"
	"quotecheck/internal/match"
	"quotecheck/internal/model"
)

// Verifier checks every quote in a draft against a transcript. Each quote is
// matched independently; no state is shared between quotes except the result
// list, so the per-quote loop runs concurrently.
type Verifier struct {
	extractor *extract.QuoteExtractor
	matcher   *match.Matcher
	threshold float64
	workers   int
}

// NewVerifier creates a verifier from configuration
func NewVerifier(cfg model.VerifyConfig, matchCfg model.MatchConfig) *Verifier {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 4
	}
	threshold := cfg.VerifiedThreshold
	if threshold <= 0 {
		threshold = 0.50
	}

	return &Verifier{
		extractor: extract.NewQuoteExtractorWith(cfg.MinQuoteLength, cfg.ContextWindow),
		matcher:   match.NewMatcher(matchCfg),
		threshold: threshold,
		workers:   workers,
	}
}

// Result is the outcome of one verification pass
type Result struct {
	Quotes  []model.Quote
	Records []model.VerificationRecord

	// NoQuotesFound distinguishes "the draft had no quotes" from
	// "quotes were checked and none verified"
	NoQuotesFound bool

	Verified   int
	Unverified int
}

// ExtractQuotes returns the quoted spans detected in the draft
func (v *Verifier) ExtractQuotes(draft string) []model.Quote {
	return v.extractor.Extract(draft)
}

// VerifyQuote matches a single quote against the transcript
func (v *Verifier) VerifyQuote(quote model.Quote, transcript string) model.MatchResult {
	return v.matcher.Match(quote.Text, transcript)
}

// VerifyAll extracts quotes from the draft and verifies each against the
// transcript. On cancellation the records produced so far are returned in
// input order together with the context error; they remain valid.
func (v *Verifier) VerifyAll(ctx context.Context, draft, transcript string) (*Result, error) {
	quotes := v.extractor.Extract(draft)
	res, err := v.VerifyQuotes(ctx, quotes, transcript)
	if res != nil {
		res.Quotes = quotes
	}
	return res, err
}

// VerifyQuotes verifies an already-extracted quote list against the
// transcript, preserving input order in the returned records
func (v *Verifier) VerifyQuotes(ctx context.Context, quotes []model.Quote, transcript string) (*Result, error) {
	if len(quotes) == 0 {
		return &Result{NoQuotesFound: true}, nil
	}

	records := make([]*model.VerificationRecord, len(quotes))
	semaphore := make(chan struct{}, v.workers)
	var wg sync.WaitGroup

	for i, q := range quotes {
		wg.Add(1)
		go func(idx int, quote model.Quote) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				// Leave this slot empty; completed records stay valid
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			rec := v.buildRecord(quote, v.matcher.Match(quote.Text, transcript))
			records[idx] = &rec
		}(i, q)
	}
	wg.Wait()

	result := &Result{}
	for _, rec := range records {
		if rec == nil {
			continue
		}
		result.Records = append(result.Records, *rec)
		if rec.Verified {
			result.Verified++
		} else {
			result.Unverified++
		}
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}

// buildRecord assembles the persisted record for one quote. The verified
// flag applies the confidence threshold uniformly; the match kind is never
// special-cased.
func (v *Verifier) buildRecord(quote model.Quote, res model.MatchResult) model.VerificationRecord {
	return model.VerificationRecord{
		ID:          uuid.NewString(),
		QuotedText:  quote.Text,
		Attribution: quote.Attribution,
		Verified:    res.Confidence >= v.threshold,
		Kind:        res.Kind,
		Confidence:  res.Confidence,
		Snippet:     res.Snippet,
		StartOffset: res.StartOffset,
		EndOffset:   res.EndOffset,
	}
}
