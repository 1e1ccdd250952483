package db

import (
	"database/sql"
	"fmt"
	"log/slog"

	"querybench/internal/benchmark"

	_ "github.com/lib/pq"
)

// PostgresStore implements Store using PostgreSQL
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new Postgres store and applies migrations
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

func (s *PostgresStore) migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS reports (
			id BIGSERIAL PRIMARY KEY,
			created_unix BIGINT NOT NULL,
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
	slog.Debug("postgres migrations applied")
	return nil
}

// Close closes the database connection
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// SaveReport stores a report
func (s *PostgresStore) SaveReport(r benchmark.Report) (int64, error) {
	content, err := encodeReport(r)
	if err != nil {
		return 0, err
	}
	var id int64
	err = s.db.QueryRow(`INSERT INTO reports (created_unix, executions, content) VALUES ($1, $2, $3) RETURNING id`,
		r.Timestamp.UnixNano(), r.Executions, content).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to save report: %w", err)
	}
	return id, nil
}

// ListReports retrieves the most recent reports
func (s *PostgresStore) ListReports(limit int) ([]StoredReport, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if limit > 0 {
		rows, err = s.db.Query(`SELECT id, content FROM reports ORDER BY created_unix DESC, id DESC LIMIT $1`, limit)
	} else {
		rows, err = s.db.Query(`SELECT id, content FROM reports ORDER BY created_unix DESC, id DESC`)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReports(rows)
}
