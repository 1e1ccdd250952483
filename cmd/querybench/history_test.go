package main

import (
	"errors"
	"testing"
	"time"

	"querybench/internal/benchmark"
	"querybench/internal/config"
	"querybench/internal/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryCmd(t *testing.T) {
	setupCmdTest(t)
	store := &mockStore{}
	useMockStore(store)

	b := benchmark.NewBuilder()
	b.Now = func() time.Time { return fixedNow }
	first, err := b.Build(benchmark.SampleTrials())
	require.NoError(t, err)

	b.Now = func() time.Time { return fixedNow.Add(24 * time.Hour) }
	second, err := b.Build(benchmark.TrialSet{
		{benchmark.Web3JS: 2540, benchmark.TheGraph: 157, benchmark.MongoDB: 70},
	})
	require.NoError(t, err)

	_, _ = store.SaveReport(first)
	_, _ = store.SaveReport(second)

	out, err := executeCmd(t, newHistoryCmd())
	require.NoError(t, err)

	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "EXECUTIONS")
	assert.Contains(t, out, "The Graph")
	assert.Contains(t, out, "02/05/2025 12:30:00")
	assert.Contains(t, out, "68.6ms")
	assert.Contains(t, out, "Comparison with run of 01/05/2025 12:30:00")
	assert.Contains(t, out, "thegraph: 314.0ms -> 157.0ms (-50.00%)")
	assert.True(t, store.closed)

	out, err = executeCmd(t, newHistoryCmd(), "--limit", "1")
	require.NoError(t, err)
	assert.NotContains(t, out, "Comparison with run of")
}

func TestHistoryCmd_Empty(t *testing.T) {
	setupCmdTest(t)
	useMockStore(&mockStore{})

	out, err := executeCmd(t, newHistoryCmd())
	require.NoError(t, err)
	assert.Contains(t, out, "No saved reports.")
}

func TestHistoryCmd_StoreError(t *testing.T) {
	setupCmdTest(t)
	newStoreFunc = func(cfg config.StoreConfig) (db.Store, error) {
		return nil, errors.New("connection refused")
	}

	_, err := executeCmd(t, newHistoryCmd())
	assert.ErrorContains(t, err, "failed to open history store: connection refused")
}

func TestHistoryCmd_SQLite(t *testing.T) {
	setupCmdTest(t)

	// report persists through the real store when store.type is configured
	t.Setenv("QUERYBENCH_STORE_TYPE", "sqlite")
	require.NoError(t, config.Load(""))

	out, err := executeCmd(t, newReportCmd())
	require.NoError(t, err)
	assert.Contains(t, out, "Saved report #1 to history")
	assert.FileExists(t, db.DefaultSQLitePath)

	out, err = executeCmd(t, newHistoryCmd())
	require.NoError(t, err)
	assert.Contains(t, out, "2540.0ms")
}
