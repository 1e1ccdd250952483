package db

import (
	"encoding/json"
	"fmt"

	"querybench/internal/benchmark"
)

// StoredReport is a report persisted in the history.
type StoredReport struct {
	ID     int64
	Report benchmark.Report
}

// Store interface defines the methods for persistent report history
type Store interface {
	Close() error
	// SaveReport appends a report and returns its ID.
	SaveReport(r benchmark.Report) (int64, error)
	// ListReports returns the most recent reports, newest first.
	// A non-positive limit returns everything.
	ListReports(limit int) ([]StoredReport, error)
}

func encodeReport(r benchmark.Report) (string, error) {
	data, err := json.Marshal(r.Document())
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}
	return string(data), nil
}

func decodeReport(content string) (benchmark.Report, error) {
	var doc benchmark.Document
	if err := json.Unmarshal([]byte(content), &doc); err != nil {
		return benchmark.Report{}, fmt.Errorf("failed to decode report: %w", err)
	}
	return doc.Report(), nil
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanReports(rows rowScanner) ([]StoredReport, error) {
	var results []StoredReport
	for rows.Next() {
		var (
			id      int64
			content string
		)
		if err := rows.Scan(&id, &content); err != nil {
			return nil, err
		}
		r, err := decodeReport(content)
		if err != nil {
			return nil, fmt.Errorf("report %d: %w", id, err)
		}
		results = append(results, StoredReport{ID: id, Report: r})
	}
	return results, rows.Err()
}
