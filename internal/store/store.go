package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"quotecheck/internal/model"
)

// Store persists verification run history in SQLite. Each run keeps a
// summary row for listing plus the full report as JSON.
type Store struct {
	db   *sql.DB
	path string
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at TEXT NOT NULL,
    subject TEXT NOT NULL,
    draft_path TEXT NOT NULL,
    transcript_path TEXT NOT NULL,
    quote_count INTEGER NOT NULL,
    verified_count INTEGER NOT NULL,
    unverified_count INTEGER NOT NULL,
    score_index INTEGER NOT NULL,
    report_json TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`

// Open initializes or connects to the history database at path
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database connection
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// RunSummary is one row of run history
type RunSummary struct {
	ID             int64     `json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	Subject        string    `json:"subject"`
	DraftPath      string    `json:"draft_path"`
	TranscriptPath string    `json:"transcript_path"`
	QuoteCount     int       `json:"quote_count"`
	VerifiedCount  int       `json:"verified_count"`
	Unverified     int       `json:"unverified_count"`
	ScoreIndex     int       `json:"score_index"`
}

// SaveRun records a completed verification run
func (s *Store) SaveRun(ctx context.Context, report *model.Report) (int64, error) {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return 0, fmt.Errorf("marshal report: %w", err)
	}

	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO runs (
            created_at, subject, draft_path, transcript_path,
            quote_count, verified_count, unverified_count, score_index, report_json
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		report.GeneratedAt.UTC().Format(time.RFC3339Nano),
		report.Subject,
		report.DraftPath,
		report.TranscriptPath,
		report.Summary.Total,
		report.Summary.Verified,
		report.Summary.Unverified,
		report.Score.Index,
		string(reportJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

// ListRuns returns the most recent runs, newest first
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, created_at, subject, draft_path, transcript_path,
                quote_count, verified_count, unverified_count, score_index
         FROM runs ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []RunSummary
	for rows.Next() {
		var run RunSummary
		var createdAt string
		if err := rows.Scan(
			&run.ID, &createdAt, &run.Subject, &run.DraftPath, &run.TranscriptPath,
			&run.QuoteCount, &run.VerifiedCount, &run.Unverified, &run.ScoreIndex,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if t, perr := time.Parse(time.RFC3339Nano, createdAt); perr == nil {
			run.CreatedAt = t
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	return runs, nil
}

// GetRun loads the full report for one run
func (s *Store) GetRun(ctx context.Context, id int64) (*model.Report, error) {
	var reportJSON string
	err := s.db.QueryRowContext(ctx, `SELECT report_json FROM runs WHERE id = ?`, id).Scan(&reportJSON)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("query run: %w", err)
	}

	var report model.Report
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("unmarshal report: %w", err)
	}
	return &report, nil
}
