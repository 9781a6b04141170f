// Package storage records reconciliation run history in SQLite. The
// history is informational - it never influences matching - but it
// makes "what happened to this receipt last week" answerable without
// digging through result files.
package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Storage provides database access for run history.
type Storage struct {
	db *sql.DB
}

// NewStorage opens (and if needed migrates) the SQLite database at
// dbPath.
func NewStorage(dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &Storage{db: db}
	if err := s.runMigrations(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *Storage) Close() error {
	return s.db.Close()
}

// RunRecord is one completed reconciliation run.
type RunRecord struct {
	ID         int64
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time
	LedgerRows int
	Documents  int
	Assigned   int
	Unassigned int
	Status     string
}

// MatchRecord is one confirmed document-to-ledger assignment within a
// run.
type MatchRecord struct {
	ID          int64
	RunID       string
	Document    string
	ReceiptID   string
	LedgerIndex int
	Signals     []string
	ByHint      bool
}

// SaveRun persists a completed run.
func (s *Storage) SaveRun(run *RunRecord) error {
	result, err := s.db.Exec(`
	INSERT INTO reconcile_runs
	(run_id, started_at, finished_at, ledger_rows, documents, assigned, unassigned, status)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.RunID,
		run.StartedAt,
		run.FinishedAt,
		run.LedgerRows,
		run.Documents,
		run.Assigned,
		run.Unassigned,
		run.Status,
	)
	if err != nil {
		return fmt.Errorf("save run %s: %w", run.RunID, err)
	}
	run.ID, _ = result.LastInsertId()
	return nil
}

// SaveMatch persists one confirmed assignment.
func (s *Storage) SaveMatch(match *MatchRecord) error {
	result, err := s.db.Exec(`
	INSERT INTO match_records
	(run_id, document, receipt_id, ledger_index, signals, by_hint)
	VALUES (?, ?, ?, ?, ?, ?)
	`,
		match.RunID,
		match.Document,
		match.ReceiptID,
		match.LedgerIndex,
		strings.Join(match.Signals, ","),
		match.ByHint,
	)
	if err != nil {
		return fmt.Errorf("save match for %s: %w", match.Document, err)
	}
	match.ID, _ = result.LastInsertId()
	return nil
}

// MatchesForRun returns the assignments recorded for one run, in
// insertion order.
func (s *Storage) MatchesForRun(runID string) ([]MatchRecord, error) {
	rows, err := s.db.Query(`
	SELECT id, run_id, document, receipt_id, ledger_index, signals, by_hint
	FROM match_records WHERE run_id = ? ORDER BY id
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []MatchRecord
	for rows.Next() {
		var m MatchRecord
		var signals string
		if err := rows.Scan(&m.ID, &m.RunID, &m.Document, &m.ReceiptID, &m.LedgerIndex, &signals, &m.ByHint); err != nil {
			return nil, err
		}
		if signals != "" {
			m.Signals = strings.Split(signals, ",")
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// RecentRuns returns the latest runs, newest first.
func (s *Storage) RecentRuns(limit int) ([]RunRecord, error) {
	rows, err := s.db.Query(`
	SELECT id, run_id, started_at, finished_at, ledger_rows, documents, assigned, unassigned, status
	FROM reconcile_runs ORDER BY started_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(&r.ID, &r.RunID, &r.StartedAt, &r.FinishedAt,
			&r.LedgerRows, &r.Documents, &r.Assigned, &r.Unassigned, &r.Status); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Stats aggregates all-time run history.
type Stats struct {
	TotalRuns       int
	TotalDocuments  int
	TotalAssigned   int
	TotalUnassigned int
}

// GetStats returns all-time totals across recorded runs.
func (s *Storage) GetStats() (*Stats, error) {
	stats := &Stats{}
	err := s.db.QueryRow(`
	SELECT COUNT(*), COALESCE(SUM(documents), 0), COALESCE(SUM(assigned), 0), COALESCE(SUM(unassigned), 0)
	FROM reconcile_runs
	`).Scan(&stats.TotalRuns, &stats.TotalDocuments, &stats.TotalAssigned, &stats.TotalUnassigned)
	if err != nil {
		return nil, err
	}
	return stats, nil
}
