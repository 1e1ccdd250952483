package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock handler to inspect log records
type mockHandler struct {
	mu       sync.Mutex
	records  []slog.Record
	attrs    []slog.Attr
	group    string
	enabled  bool
	handleFn func(slog.Record) error // Optional custom handle logic
}

func (h *mockHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.enabled
}

func (h *mockHandler) Handle(ctx context.Context, record slog.Record) error {
	if h.handleFn != nil {
		return h.handleFn(record)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, record)
	return nil
}

func (h *mockHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h.mu.Lock()
	defer h.mu.Unlock()
	newHandler := *h
	newHandler.attrs = append(h.attrs, attrs...)
	return &newHandler
}

func (h *mockHandler) WithGroup(name string) slog.Handler {
	h.mu.Lock()
	defer h.mu.Unlock()
	newHandler := *h
	if newHandler.group == "" {
		newHandler.group = name
	} else {
		newHandler.group = newHandler.group + "." + name
	}
	return &newHandler
}

func (h *mockHandler) getRecords() []slog.Record {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.records
}

func TestMultiHandler(t *testing.T) {
	h1 := &mockHandler{enabled: true}
	h2 := &mockHandler{enabled: true}

	multi := &multiHandler{handlers: []slog.Handler{h1, h2}}

	t.Run("Enabled", func(t *testing.T) {
		assert.True(t, multi.Enabled(context.Background(), slog.LevelInfo))

		h1.enabled = false
		assert.True(t, multi.Enabled(context.Background(), slog.LevelInfo))

		h2.enabled = false
		assert.False(t, multi.Enabled(context.Background(), slog.LevelInfo))
	})

	t.Run("Handle skips disabled handlers", func(t *testing.T) {
		h1.enabled = true
		h2.enabled = false

		record := slog.NewRecord(time.Now(), slog.LevelInfo, "test message", 0)
		err := multi.Handle(context.Background(), record)
		assert.NoError(t, err)
		assert.Len(t, h1.getRecords(), 1)
		assert.Empty(t, h2.getRecords())
		assert.Equal(t, "test message", h1.getRecords()[0].Message)
	})

	t.Run("WithAttrs", func(t *testing.T) {
		attrs := []slog.Attr{slog.String("key", "value")}
		newMulti, ok := multi.WithAttrs(attrs).(*multiHandler)
		require.True(t, ok, "WithAttrs should return a *multiHandler")

		for _, h := range newMulti.handlers {
			mockH, ok := h.(*mockHandler)
			require.True(t, ok)
			assert.Equal(t, attrs, mockH.attrs)
		}
	})

	t.Run("WithGroup", func(t *testing.T) {
		newMulti, ok := multi.WithGroup("my-group").(*multiHandler)
		require.True(t, ok, "WithGroup should return a *multiHandler")

		for _, h := range newMulti.handlers {
			mockH, ok := h.(*mockHandler)
			require.True(t, ok)
			assert.Equal(t, "my-group", mockH.group)
		}
	})
}

func TestNewLogger(t *testing.T) {
	t.Run("Debug level", func(t *testing.T) {
		var buf bytes.Buffer
		logger, closer := NewLogger(LoggerOptions{Debug: true, Writer: &buf})
		defer closer.Close()

		logger.Debug("debug message")
		assert.Contains(t, buf.String(), "debug message")
	})

	t.Run("Info level drops debug", func(t *testing.T) {
		var buf bytes.Buffer
		logger, _ := NewLogger(LoggerOptions{Writer: &buf})

		logger.Debug("hidden")
		assert.Empty(t, buf.String())
	})

	t.Run("Text format", func(t *testing.T) {
		var buf bytes.Buffer
		logger, _ := NewLogger(LoggerOptions{Format: "text", Writer: &buf})

		logger.Info("plain", "k", "v")
		assert.Contains(t, buf.String(), "msg=plain")
		assert.Contains(t, buf.String(), "k=v")
	})

	t.Run("File and console", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test.log")
		var buf bytes.Buffer

		logger, closer := NewLogger(LoggerOptions{File: path, Writer: &buf})
		logger.Info("file message")
		require.NoError(t, closer.Close())

		f, err := os.Open(path)
		require.NoError(t, err)
		defer f.Close()
		content, err := io.ReadAll(f)
		require.NoError(t, err)

		assert.Contains(t, string(content), "file message")
		assert.Contains(t, buf.String(), "file message")
	})

	t.Run("Quiet without file discards", func(t *testing.T) {
		logger, closer := NewLogger(LoggerOptions{Quiet: true})
		assert.NotNil(t, logger)
		assert.NoError(t, closer.Close())
		logger.Info("this goes to dev/null")
	})
}

func TestInitLogger(t *testing.T) {
	originalLogger := slog.Default()
	defer slog.SetDefault(originalLogger)

	var buf bytes.Buffer
	closer := InitLogger(LoggerOptions{Writer: &buf})
	defer closer.Close()

	Component("web").Info("hello")

	var logOutput map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logOutput))
	assert.Equal(t, "hello", logOutput["msg"])
	assert.Equal(t, "web", logOutput["component"])
}

func TestNewLogger_FileError(t *testing.T) {
	originalLogger := slog.Default()
	defer slog.SetDefault(originalLogger)

	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))

	invalidPath := filepath.Join(t.TempDir(), "nonexistent/test.log")
	logger, closer := NewLogger(LoggerOptions{File: invalidPath, Quiet: true})
	assert.NotNil(t, logger)
	assert.NoError(t, closer.Close())

	output := buf.String()
	assert.True(t, strings.Contains(output, "Failed to open log file"), "Expected log file error message, got: "+output)
}

func TestLogHelpers(t *testing.T) {
	originalLogger := slog.Default()
	defer slog.SetDefault(originalLogger)
	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})))

	LogDebug("hidden")
	LogInfo("report saved", "id", 3)
	LogError("write failed", errors.New("disk full"), "path", "report.json")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var info map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &info))
	assert.Equal(t, "report saved", info["msg"])
	assert.Equal(t, "INFO", info["level"])
	assert.Equal(t, 3.0, info["id"])

	var errLine map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &errLine))
	assert.Equal(t, "ERROR", errLine["level"])
	assert.Equal(t, "disk full", errLine["error"])
	assert.Equal(t, "report.json", errLine["path"])
}
