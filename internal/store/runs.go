// Package store keeps a small ledger of pipeline runs in an embedded
// sqlite database: one row per invocation with its terminal status and
// the stage it reached. Telemetry and check results stay in the log
// stream; the ledger records outcomes only.
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Run is one recorded pipeline invocation.
type Run struct {
	ID         string
	Status     string
	Stage      string
	Error      string
	StartedAt  time.Time
	FinishedAt time.Time // zero while the run is in flight
}

// Run statuses.
const (
	StatusRunning   = "running"
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// RunStore persists the run ledger.
type RunStore struct {
	db *sql.DB
}

// Open opens (and if needed initializes) the ledger at dbPath.
func Open(dbPath string) (*RunStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open run ledger %s: %w", dbPath, err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		status TEXT NOT NULL,
		stage TEXT,
		error TEXT,
		started_at DATETIME NOT NULL,
		finished_at DATETIME
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init run ledger: %w", err)
	}

	return &RunStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *RunStore) Close() error {
	return s.db.Close()
}

// Begin records the start of a run.
func (s *RunStore) Begin(runID string) error {
	_, err := s.db.Exec(
		`INSERT INTO runs (id, status, started_at) VALUES (?, ?, ?)`,
		runID, StatusRunning, time.Now().UTC())
	return err
}

// Finish records a run's terminal status, the stage it reached and any
// error text.
func (s *RunStore) Finish(runID, status, stage, errText string) error {
	_, err := s.db.Exec(
		`UPDATE runs SET status = ?, stage = ?, error = ?, finished_at = ? WHERE id = ?`,
		status, stage, errText, time.Now().UTC(), runID)
	return err
}

// Get returns one run by id.
func (s *RunStore) Get(runID string) (*Run, error) {
	row := s.db.QueryRow(
		`SELECT id, status, stage, error, started_at, finished_at FROM runs WHERE id = ?`, runID)
	return scanRun(row.Scan)
}

// List returns all runs, newest first.
func (s *RunStore) List() ([]Run, error) {
	rows, err := s.db.Query(
		`SELECT id, status, stage, error, started_at, finished_at FROM runs ORDER BY started_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows.Scan)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *r)
	}
	return runs, rows.Err()
}

func scanRun(scan func(dest ...interface{}) error) (*Run, error) {
	var r Run
	var stage, errText sql.NullString
	var finished sql.NullTime
	if err := scan(&r.ID, &r.Status, &stage, &errText, &r.StartedAt, &finished); err != nil {
		return nil, err
	}
	r.Stage = stage.String
	r.Error = errText.String
	if finished.Valid {
		r.FinishedAt = finished.Time
	}
	return &r, nil
}
