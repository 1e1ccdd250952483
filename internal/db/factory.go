package db

import (
	"fmt"
	"strings"
)

// DefaultSQLitePath is used when the sqlite backend has no DSN.
const DefaultSQLitePath = ".querybench.db"

// DefaultFilePath is used when the file backend has no DSN.
const DefaultFilePath = ".querybench/history.json"

// StoreConfig holds configuration for the storage backend
type StoreConfig struct {
	Type             string // "sqlite", "postgres" or "file"
	ConnectionString string // File path for SQLite and file, DSN for Postgres
}

// NewStore creates a new Store instance based on the provided configuration
func NewStore(config StoreConfig) (Store, error) {
	switch strings.ToLower(config.Type) {
	case "postgres", "postgresql":
		if config.ConnectionString == "" {
			return nil, fmt.Errorf("postgres connection string is required")
		}
		return NewPostgresStore(config.ConnectionString)
	case "sqlite", "sqlite3", "":
		if config.ConnectionString == "" {
			config.ConnectionString = DefaultSQLitePath
		}
		return NewSQLiteStore(config.ConnectionString)
	case "file":
		if config.ConnectionString == "" {
			config.ConnectionString = DefaultFilePath
		}
		return NewFileStore(config.ConnectionString)
	default:
		return nil, fmt.Errorf("unsupported store type: %s", config.Type)
	}
}
