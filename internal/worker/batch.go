package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"quotecheck/internal/model"
)

// Runner verifies one draft/transcript pair
type Runner interface {
	Run(ctx context.Context, draftPath, transcriptPath string) (*model.Report, error)
}

// Pair names one draft and the transcript it is checked against
type Pair struct {
	DraftPath      string
	TranscriptPath string
}

// VerifyJob verifies a single pair
type VerifyJob struct {
	Pair   Pair
	Runner Runner
}

// Execute runs the verification for this job's pair
func (j *VerifyJob) Execute(ctx context.Context) Result {
	report, err := j.Runner.Run(ctx, j.Pair.DraftPath, j.Pair.TranscriptPath)
	return &VerifyResult{
		Pair:   j.Pair,
		Report: report,
		Error:  err,
	}
}

// VerifyResult is the outcome of one batch entry
type VerifyResult struct {
	Pair   Pair
	Report *model.Report
	Error  error
}

// GetError returns the error from the result
func (r *VerifyResult) GetError() error {
	return r.Error
}

// BatchProcessor verifies multiple draft/transcript pairs concurrently
type BatchProcessor struct {
	runner      Runner
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(runner Runner, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		runner:      runner,
		concurrency: concurrency,
	}
}

// ProcessPairs verifies the pairs concurrently
func (b *BatchProcessor) ProcessPairs(ctx context.Context, pairs []Pair) []*VerifyResult {
	if len(pairs) == 0 {
		return []*VerifyResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	// Submit from a separate goroutine so results drain while the queue
	// fills; Submit blocks once the bounded queue is full.
	go func() {
		for _, pair := range pairs {
			pool.Submit(&VerifyJob{Pair: pair, Runner: b.runner})
		}
		pool.Close()
	}()

	results := pool.Wait()

	verifyResults := make([]*VerifyResult, len(results))
	for i, result := range results {
		verifyResults[i] = result.(*VerifyResult)
	}
	return verifyResults
}

// ProcessManifest reads pairs from a manifest file and verifies them
func (b *BatchProcessor) ProcessManifest(ctx context.Context, path string) ([]*VerifyResult, error) {
	pairs, err := ReadManifest(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return b.ProcessPairs(ctx, pairs), nil
}

// ReadManifest reads draft/transcript pairs from a file. Each line holds
// two paths separated by a comma or a tab; blank lines and # comments are
// skipped, and duplicate pairs are dropped.
func ReadManifest(path string) ([]Pair, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer func() { _ = file.Close() }()

	var pairs []Pair
	seen := make(map[Pair]bool)

	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		sep := ","
		if !strings.Contains(line, ",") {
			sep = "\t"
		}
		fields := strings.SplitN(line, sep, 2)
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: expected \"draft%stranscript\", got %q", lineNo, sep, line)
		}

		pair := Pair{
			DraftPath:      strings.TrimSpace(fields[0]),
			TranscriptPath: strings.TrimSpace(fields[1]),
		}
		if pair.DraftPath == "" || pair.TranscriptPath == "" {
			return nil, fmt.Errorf("line %d: empty path in %q", lineNo, line)
		}
		if !seen[pair] {
			seen[pair] = true
			pairs = append(pairs, pair)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan manifest: %w", err)
	}

	return pairs, nil
}
