package config

import (
	"fmt"
	"strings"
)

var (
	storeTypes = []string{"", "sqlite", "sqlite3", "postgres", "postgresql", "file"}
	logFormats = []string{"json", "text"}
)

// Validate validates configuration values and returns an error if any are invalid.
func Validate(cfg Config) error {
	var errors []string

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		errors = append(errors, fmt.Sprintf("server.port must be between 1 and 65535, got: %d", cfg.Server.Port))
	}

	if cfg.Report.Trials < 1 {
		errors = append(errors, fmt.Sprintf("report.trials must be positive, got: %d", cfg.Report.Trials))
	}

	if cfg.Report.Delay < 0 {
		errors = append(errors, fmt.Sprintf("report.delay must not be negative, got: %v", cfg.Report.Delay))
	}

	if strings.TrimSpace(cfg.Output.JSON) == "" {
		errors = append(errors, "output.json must not be empty")
	}

	if strings.TrimSpace(cfg.Output.Markdown) == "" {
		errors = append(errors, "output.markdown must not be empty")
	}

	if !contains(storeTypes, strings.ToLower(cfg.Store.Type)) {
		errors = append(errors, fmt.Sprintf("store.type must be one of sqlite, postgres, file, got: %s", cfg.Store.Type))
	}

	if strings.HasPrefix(strings.ToLower(cfg.Store.Type), "postgres") && cfg.Store.DSN == "" {
		errors = append(errors, "store.dsn is required for postgres")
	}

	if !contains(logFormats, strings.ToLower(cfg.Log.Format)) {
		errors = append(errors, fmt.Sprintf("log.format must be json or text, got: %s", cfg.Log.Format))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  %s", strings.Join(errors, "\n  "))
	}

	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
