// Package history persists completed audit runs in SQLite so past
// reports stay queryable after the batch that produced them is gone.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/om13rajpal/expense-tracker/internal/report"
)

// ErrNotFound is returned when no saved run matches the requested ID.
var ErrNotFound = errors.New("run not found")

// RunSummary is the list view of one saved run.
type RunSummary struct {
	ID           string
	Source       string
	GeneratedAt  time.Time
	Period       string
	Transactions int
	TotalCredits string
	TotalDebits  string
	NetChange    string
	IssueCount   int
	AnomalyCount int
}

// Store is a SQLite-backed archive of audit runs.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at dbPath and
// migrates its schema.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save archives one report under its run ID. The full report is stored
// as JSON; headline numbers are broken out into columns for listing
// without decoding every blob.
func (s *Store) Save(ctx context.Context, r *report.Report) error {
	blob, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (
			id, source, generated_at, period, total_transactions,
			total_credits, total_debits, net_change, issue_count,
			anomaly_count, report
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Source, r.GeneratedAt.Format(time.RFC3339),
		r.Summary.Period, r.Summary.Transactions,
		r.Summary.TotalCredits.String(), r.Summary.TotalDebits.String(),
		r.Summary.NetChange.String(),
		len(r.VerificationIssues), len(r.Anomalies), string(blob))
	if err != nil {
		return fmt.Errorf("inserting run %s: %w", r.RunID, err)
	}
	return nil
}

// List returns saved runs, newest first.
func (s *Store) List(ctx context.Context) ([]RunSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source, generated_at, period, total_transactions,
		       total_credits, total_debits, net_change, issue_count,
		       anomaly_count
		FROM runs ORDER BY generated_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var run RunSummary
		var generatedAt string
		if err := rows.Scan(
			&run.ID, &run.Source, &generatedAt, &run.Period,
			&run.Transactions, &run.TotalCredits, &run.TotalDebits,
			&run.NetChange, &run.IssueCount, &run.AnomalyCount,
		); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		run.GeneratedAt, err = time.Parse(time.RFC3339, generatedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing generated_at for %s: %w", run.ID, err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Get decodes the full saved report for one run ID.
func (s *Store) Get(ctx context.Context, id string) (*report.Report, error) {
	var blob string
	err := s.db.QueryRowContext(ctx, `SELECT report FROM runs WHERE id = ?`, id).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("loading run %s: %w", id, err)
	}

	var r report.Report
	if err := json.Unmarshal([]byte(blob), &r); err != nil {
		return nil, fmt.Errorf("decoding run %s: %w", id, err)
	}
	return &r, nil
}
