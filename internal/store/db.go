// Package store keeps a history of report runs in a sqlite database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	apperrors "exoradio/internal/errors"
)

// Run statuses
const (
	StatusRunning = "running"
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// ErrRunNotFound is returned when a run ID has no record
var ErrRunNotFound = errors.New("run not found")

// Run is one invocation of a report mode
type Run struct {
	ID           string
	Mode         string
	InputPath    string
	TotalRows    int
	SelectedRows int
	Pages        int
	CSVPath      string
	PDFPath      string
	XLSXPath     string
	Status       string
	StartedAt    time.Time
	FinishedAt   time.Time // zero while running
}

// RunError is a stage failure recorded against a run
type RunError struct {
	ID        int64
	RunID     string
	Stage     string
	Message   string
	CreatedAt time.Time
}

// HistoryStore persists runs and their errors
type HistoryStore struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	mode TEXT NOT NULL,
	input_path TEXT NOT NULL,
	total_rows INTEGER NOT NULL DEFAULT 0,
	selected_rows INTEGER NOT NULL DEFAULT 0,
	pages INTEGER NOT NULL DEFAULT 0,
	csv_path TEXT NOT NULL DEFAULT '',
	pdf_path TEXT NOT NULL DEFAULT '',
	xlsx_path TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL,
	started_at TEXT NOT NULL,
	finished_at TEXT
);
CREATE TABLE IF NOT EXISTS run_errors (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT NOT NULL REFERENCES runs(id),
	stage TEXT NOT NULL,
	message TEXT NOT NULL,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
`

// Open opens or creates the database at path and ensures the schema exists
func Open(ctx context.Context, path string) (*HistoryStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, apperrors.NewStorageError("create history directory", err).WithContext("path", path)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, apperrors.NewStorageError("open history database", err).WithContext("path", path)
	}
	// One writer; sqlite serializes anyway
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, apperrors.NewStorageError("create history schema", err).WithContext("path", path)
	}

	return &HistoryStore{db: db}, nil
}

// Close closes the database
func (s *HistoryStore) Close() error {
	return s.db.Close()
}

// SaveRun stores a new run
func (s *HistoryStore) SaveRun(ctx context.Context, run Run) error {
	if run.Status == "" {
		run.Status = StatusRunning
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `INSERT INTO runs
		(id, mode, input_path, total_rows, selected_rows, pages, csv_path, pdf_path, xlsx_path, status, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Mode, run.InputPath, run.TotalRows, run.SelectedRows, run.Pages,
		run.CSVPath, run.PDFPath, run.XLSXPath, run.Status,
		formatTime(run.StartedAt), nullTime(run.FinishedAt))
	if err != nil {
		return apperrors.NewStorageError("save run", err).WithContext("run_id", run.ID)
	}
	return nil
}

// FinishRun records the outcome of a run. FinishedAt defaults to now.
func (s *HistoryStore) FinishRun(ctx context.Context, run Run) error {
	if run.FinishedAt.IsZero() {
		run.FinishedAt = time.Now()
	}

	res, err := s.db.ExecContext(ctx, `UPDATE runs SET
		total_rows = ?, selected_rows = ?, pages = ?, csv_path = ?, pdf_path = ?, xlsx_path = ?,
		status = ?, finished_at = ?
		WHERE id = ?`,
		run.TotalRows, run.SelectedRows, run.Pages, run.CSVPath, run.PDFPath, run.XLSXPath,
		run.Status, formatTime(run.FinishedAt), run.ID)
	if err != nil {
		return apperrors.NewStorageError("finish run", err).WithContext("run_id", run.ID)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperrors.NewStorageError("finish run", ErrRunNotFound).WithContext("run_id", run.ID)
	}
	return nil
}

// SaveRunError records a stage failure for a run
func (s *HistoryStore) SaveRunError(ctx context.Context, runID, stage string, cause error) error {
	if cause == nil {
		return nil
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO run_errors (run_id, stage, message, created_at) VALUES (?, ?, ?, ?)`,
		runID, stage, cause.Error(), formatTime(time.Now()))
	if err != nil {
		return apperrors.NewStorageError("save run error", err).WithContext("run_id", runID)
	}
	return nil
}

// ListRuns returns up to limit runs, newest first. A limit <= 0 returns all.
func (s *HistoryStore) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `SELECT
		id, mode, input_path, total_rows, selected_rows, pages, csv_path, pdf_path, xlsx_path,
		status, started_at, finished_at
		FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, apperrors.NewStorageError("list runs", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, apperrors.NewStorageError("scan run", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("list runs", err)
	}
	return runs, nil
}

// GetRun fetches one run by ID
func (s *HistoryStore) GetRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT
		id, mode, input_path, total_rows, selected_rows, pages, csv_path, pdf_path, xlsx_path,
		status, started_at, finished_at
		FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, apperrors.NewStorageError("get run", ErrRunNotFound).WithContext("run_id", id)
	}
	if err != nil {
		return Run{}, apperrors.NewStorageError("get run", err).WithContext("run_id", id)
	}
	return run, nil
}

// ListRunErrors returns the errors recorded for a run in insertion order
func (s *HistoryStore) ListRunErrors(ctx context.Context, runID string) ([]RunError, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, run_id, stage, message, created_at FROM run_errors WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, apperrors.NewStorageError("list run errors", err)
	}
	defer rows.Close()

	var out []RunError
	for rows.Next() {
		var e RunError
		var created string
		if err := rows.Scan(&e.ID, &e.RunID, &e.Stage, &e.Message, &created); err != nil {
			return nil, apperrors.NewStorageError("scan run error", err)
		}
		if e.CreatedAt, err = parseTime(created); err != nil {
			return nil, apperrors.NewStorageError("scan run error", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var r Run
	var started string
	var finished sql.NullString
	if err := sc.Scan(&r.ID, &r.Mode, &r.InputPath, &r.TotalRows, &r.SelectedRows, &r.Pages,
		&r.CSVPath, &r.PDFPath, &r.XLSXPath, &r.Status, &started, &finished); err != nil {
		return Run{}, err
	}

	var err error
	if r.StartedAt, err = parseTime(started); err != nil {
		return Run{}, err
	}
	if finished.Valid {
		if r.FinishedAt, err = parseTime(finished.String); err != nil {
			return Run{}, err
		}
	}
	return r, nil
}

// timeLayout is fixed width so stored timestamps sort lexically
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func nullTime(t time.Time) sql.NullString {
	if t.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: formatTime(t), Valid: true}
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}
