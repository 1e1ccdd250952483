package db

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"querybench/internal/benchmark"
)

type fileEntry struct {
	ID       int64              `json:"id"`
	Document benchmark.Document `json:"report"`
}

// FileStore implements Store using a JSON file.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore returns a store backed by the JSON file at path.
func NewFileStore(path string) (*FileStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return &FileStore{path: path}, nil
}

// Close is a no-op; every call reads and writes the file directly.
func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) SaveReport(r benchmark.Report) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return 0, err
	}

	var id int64 = 1
	for _, e := range entries {
		if e.ID >= id {
			id = e.ID + 1
		}
	}
	entries = append(entries, fileEntry{ID: id, Document: r.Document()})

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("failed to marshal reports: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", s.path, err)
	}
	return id, nil
}

func (s *FileStore) ListReports(limit int) ([]StoredReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return nil, err
	}

	// Newest first
	sort.SliceStable(entries, func(i, j int) bool {
		ti, tj := entries[i].Document.Timestamp, entries[j].Document.Timestamp
		if ti.Equal(tj) {
			return entries[i].ID > entries[j].ID
		}
		return ti.After(tj)
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	results := make([]StoredReport, 0, len(entries))
	for _, e := range entries {
		results = append(results, StoredReport{ID: e.ID, Report: e.Document.Report()})
	}
	return results, nil
}

func (s *FileStore) load() ([]fileEntry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}

	var entries []fileEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal reports: %w", err)
	}
	return entries, nil
}
