// Package store persists score rows in DuckDB so runs can be queried and
// compared afterwards.
package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"os"
	"path/filepath"
	"time"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/lbarbosa/codonstat/internal/score"
)

// Store manages a DuckDB connection for score results.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path. Use an empty
// string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// ensureSchema creates the results table if it doesn't exist. The table is
// an append-only log; the run column separates invocations.
func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS score_results (
		run VARCHAR,
		name VARCHAR,
		icu_score DOUBLE,
		cc_score DOUBLE,
		cai_score DOUBLE,
		hidden_stops BIGINT,
		gc_content DOUBLE,
		gc3_content DOUBLE,
		excluseq BIGINT,
		repeat_count BIGINT,
		created_at TIMESTAMP
	)`)
	return err
}

// WriteResults batch-inserts score rows under the given run label using the
// Appender API.
func (s *Store) WriteResults(run string, results []*score.Result) error {
	if len(results) == 0 {
		return nil
	}

	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", "score_results")
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}
	defer appender.Close()

	now := time.Now()
	for _, r := range results {
		if err := appender.AppendRow(
			run, r.Name,
			r.ICU, r.CC, r.CAI,
			int64(r.HiddenStops), r.GC, r.GC3,
			int64(r.Exclusion), int64(r.Repeats),
			now,
		); err != nil {
			return fmt.Errorf("append score row: %w", err)
		}
	}

	return appender.Flush()
}

// LookupResults returns the score rows of a run in insertion order.
func (s *Store) LookupResults(run string) ([]*score.Result, error) {
	rows, err := s.db.Query(`SELECT
		name, icu_score, cc_score, cai_score,
		hidden_stops, gc_content, gc3_content, excluseq, repeat_count
		FROM score_results WHERE run = ? ORDER BY rowid`, run)
	if err != nil {
		return nil, fmt.Errorf("query score results: %w", err)
	}
	defer rows.Close()

	var results []*score.Result
	for rows.Next() {
		var r score.Result
		var hidden, excl, rep int64
		if err := rows.Scan(&r.Name, &r.ICU, &r.CC, &r.CAI,
			&hidden, &r.GC, &r.GC3, &excl, &rep); err != nil {
			return nil, fmt.Errorf("scan score row: %w", err)
		}
		r.HiddenStops = int(hidden)
		r.Exclusion = int(excl)
		r.Repeats = int(rep)
		results = append(results, &r)
	}
	return results, rows.Err()
}

// CountResults returns the number of stored rows across all runs.
func (s *Store) CountResults() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM score_results`).Scan(&n)
	return n, err
}

// ClearResults removes all stored score rows.
func (s *Store) ClearResults() error {
	_, err := s.db.Exec(`DELETE FROM score_results`)
	return err
}
