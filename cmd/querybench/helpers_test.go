package main

import (
	"bytes"
	"context"
	"log/slog"
	"sort"
	"sync"
	"testing"
	"time"

	"querybench/internal/benchmark"
	"querybench/internal/config"
	"querybench/internal/db"
	"querybench/internal/simulate"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var fixedNow = time.Date(2025, 5, 1, 12, 30, 0, 0, time.UTC)

// setupCmdTest isolates a command test in a temp dir with instant delays
// and a fixed clock.
func setupCmdTest(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())

	oldSleep, oldNow := sleepFunc, nowFunc
	oldStore, oldSampler := newStoreFunc, newSamplerFunc
	oldTUI := runCollectTUI
	t.Cleanup(func() {
		sleepFunc, nowFunc = oldSleep, oldNow
		newStoreFunc, newSamplerFunc = oldStore, oldSampler
		runCollectTUI = oldTUI
		viper.Reset()
	})

	sleepFunc = func(ctx context.Context, d time.Duration) error { return nil }
	nowFunc = func() time.Time { return fixedNow }
	viper.Set("no_color", true)
}

func executeCmd(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// captureLogs routes the default slog logger into a buffer for the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	old := slog.Default()
	t.Cleanup(func() { slog.SetDefault(old) })
	buf := new(bytes.Buffer)
	slog.SetDefault(slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo})))
	return buf
}

type mockStore struct {
	mu      sync.Mutex
	reports []db.StoredReport
	closed  bool
}

func (m *mockStore) Close() error {
	m.closed = true
	return nil
}

func (m *mockStore) SaveReport(r benchmark.Report) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := int64(len(m.reports) + 1)
	m.reports = append(m.reports, db.StoredReport{ID: id, Report: r})
	return id, nil
}

func (m *mockStore) ListReports(limit int) ([]db.StoredReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := append([]db.StoredReport(nil), m.reports...)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Report.Timestamp.After(out[j].Report.Timestamp)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func useMockStore(m *mockStore) {
	newStoreFunc = func(cfg config.StoreConfig) (db.Store, error) { return m, nil }
}

type stubSampler struct {
	trial benchmark.Trial
}

func (s stubSampler) Sample(ctx context.Context) (benchmark.Trial, error) {
	out := make(benchmark.Trial, len(s.trial))
	for k, v := range s.trial {
		out[k] = v
	}
	return out, nil
}

func useStubSampler(trial benchmark.Trial) {
	newSamplerFunc = func() (simulate.Sampler, error) { return stubSampler{trial: trial}, nil }
}
