package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() Config {
	return Config{
		Log:    LogConfig{Format: "json"},
		Output: OutputConfig{JSON: "report.json", Markdown: "RESULTS.md"},
		Report: ReportConfig{Delay: 500 * time.Millisecond, Trials: 5},
		Server: ServerConfig{Host: "0.0.0.0", Port: 5000},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantError bool
		errMsg    string
	}{
		{
			name:   "Valid Configuration",
			mutate: func(c *Config) {},
		},
		{
			name:   "Valid Postgres Store",
			mutate: func(c *Config) { c.Store = StoreConfig{Type: "postgres", DSN: "postgres://localhost/bench"} },
		},
		{
			name:      "Invalid Port",
			mutate:    func(c *Config) { c.Server.Port = 70000 },
			wantError: true,
			errMsg:    "server.port must be between 1 and 65535",
		},
		{
			name:      "Invalid Trials",
			mutate:    func(c *Config) { c.Report.Trials = 0 },
			wantError: true,
			errMsg:    "report.trials must be positive",
		},
		{
			name:      "Negative Delay",
			mutate:    func(c *Config) { c.Report.Delay = -time.Second },
			wantError: true,
			errMsg:    "report.delay must not be negative",
		},
		{
			name:      "Empty Output",
			mutate:    func(c *Config) { c.Output.Markdown = " " },
			wantError: true,
			errMsg:    "output.markdown must not be empty",
		},
		{
			name:      "Unknown Store",
			mutate:    func(c *Config) { c.Store.Type = "mongo" },
			wantError: true,
			errMsg:    "store.type must be one of",
		},
		{
			name:      "Postgres Without DSN",
			mutate:    func(c *Config) { c.Store.Type = "postgres" },
			wantError: true,
			errMsg:    "store.dsn is required",
		},
		{
			name:      "Unknown Log Format",
			mutate:    func(c *Config) { c.Log.Format = "xml" },
			wantError: true,
			errMsg:    "log.format must be json or text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := Validate(cfg)
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.errMsg)
			}
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = 0
	cfg.Report.Trials = -1

	err := Validate(cfg)
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "server.port")
		assert.Contains(t, err.Error(), "report.trials")
	}
}
