package db

import (
	"database/sql"
	"fmt"

	"querybench/internal/benchmark"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore implements Store using SQLite
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store and applies migrations
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS reports (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			created_unix INTEGER NOT NULL,
			executions INTEGER NOT NULL,
			content TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_reports_created ON reports(created_unix DESC);`,
	}
	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveReport stores a report
func (s *SQLiteStore) SaveReport(r benchmark.Report) (int64, error) {
	content, err := encodeReport(r)
	if err != nil {
		return 0, err
	}
	res, err := s.db.Exec(`INSERT INTO reports (created_unix, executions, content) VALUES (?, ?, ?)`,
		r.Timestamp.UnixNano(), r.Executions, content)
	if err != nil {
		return 0, fmt.Errorf("failed to save report: %w", err)
	}
	return res.LastInsertId()
}

// ListReports retrieves the most recent reports
func (s *SQLiteStore) ListReports(limit int) ([]StoredReport, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.db.Query(`SELECT id, content FROM reports ORDER BY created_unix DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReports(rows)
}
