package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"quotecheck/internal/model"
)

func testReport(subject string, verified, total int) *model.Report {
	return &model.Report{
		Subject:        subject,
		DraftPath:      "draft.txt",
		TranscriptPath: "transcript.txt",
		GeneratedAt:    time.Now().UTC(),
		Records: []model.VerificationRecord{
			{ID: "r1", QuotedText: "We doubled our revenue in the last quarter", Attribution: "the CEO", Verified: true, Kind: model.MatchExact, Confidence: 1.0},
		},
		Summary: model.Summary{Total: total, Verified: verified, Unverified: total - verified},
		Score:   model.Score{Index: 85, Confidence: "high"},
	}
}

func TestStore_SaveAndList(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer func() { _ = s.Close() }()

	ctx := context.Background()

	id1, err := s.SaveRun(ctx, testReport("first draft", 2, 3))
	if err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}
	id2, err := s.SaveRun(ctx, testReport("second draft", 1, 1))
	if err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}
	if id2 <= id1 {
		t.Errorf("Expected increasing run IDs, got %d then %d", id1, id2)
	}

	runs, err := s.ListRuns(ctx, 10)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(runs))
	}

	// Newest first
	if runs[0].Subject != "second draft" {
		t.Errorf("Expected newest run first, got '%s'", runs[0].Subject)
	}
	if runs[1].Subject != "first draft" {
		t.Errorf("Expected oldest run last, got '%s'", runs[1].Subject)
	}

	if runs[1].QuoteCount != 3 || runs[1].VerifiedCount != 2 || runs[1].Unverified != 1 {
		t.Errorf("Unexpected counts: %d/%d/%d", runs[1].QuoteCount, runs[1].VerifiedCount, runs[1].Unverified)
	}
	if runs[0].CreatedAt.IsZero() {
		t.Error("Expected a parsed creation time")
	}
}

func TestStore_ListLimit(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer func() { _ = s.Close() }()

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if _, err := s.SaveRun(ctx, testReport("draft", 1, 1)); err != nil {
			t.Fatalf("SaveRun failed: %v", err)
		}
	}

	runs, err := s.ListRuns(ctx, 3)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 3 {
		t.Errorf("Expected 3 runs with limit 3, got %d", len(runs))
	}
}

func TestStore_GetRunRoundTrip(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer func() { _ = s.Close() }()

	ctx := context.Background()
	saved := testReport("round trip", 1, 1)

	id, err := s.SaveRun(ctx, saved)
	if err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	loaded, err := s.GetRun(ctx, id)
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}

	if loaded.Subject != saved.Subject {
		t.Errorf("Subject mismatch: '%s' vs '%s'", loaded.Subject, saved.Subject)
	}
	if len(loaded.Records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(loaded.Records))
	}
	if loaded.Records[0].QuotedText != saved.Records[0].QuotedText {
		t.Errorf("Record text mismatch: '%s'", loaded.Records[0].QuotedText)
	}
	if loaded.Score.Index != 85 {
		t.Errorf("Expected score index 85, got %d", loaded.Score.Index)
	}
}

func TestStore_GetRunNotFound(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer func() { _ = s.Close() }()

	if _, err := s.GetRun(context.Background(), 12345); err == nil {
		t.Error("Expected an error for a missing run")
	}
}

func TestStore_CreatesNestedDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "history.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed to create parent dirs: %v", err)
	}
	_ = s.Close()
}

func TestStore_CloseNil(t *testing.T) {
	var s *Store
	if err := s.Close(); err != nil {
		t.Errorf("Closing a nil store should be a no-op, got %v", err)
	}
}
