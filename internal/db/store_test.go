package db

import (
	"path/filepath"
	"testing"
	"time"

	"querybench/internal/benchmark"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reportAt(t *testing.T, ts time.Time, trials benchmark.TrialSet) benchmark.Report {
	t.Helper()
	b := benchmark.NewBuilder()
	b.Now = func() time.Time { return ts }
	r, err := b.Build(trials)
	require.NoError(t, err)
	return r
}

func testStoreContract(t *testing.T, store Store) {
	t.Helper()

	// Empty history
	reports, err := store.ListReports(10)
	require.NoError(t, err)
	assert.Empty(t, reports)

	base := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	older := reportAt(t, base, benchmark.SampleTrials())
	newer := reportAt(t, base.Add(time.Hour), benchmark.TrialSet{
		{benchmark.Web3JS: 2000, benchmark.TheGraph: 250, benchmark.MongoDB: 40},
	})

	// Save newest first to prove ordering is by timestamp, not insertion.
	idNewer, err := store.SaveReport(newer)
	require.NoError(t, err)
	idOlder, err := store.SaveReport(older)
	require.NoError(t, err)
	assert.NotEqual(t, idNewer, idOlder)

	reports, err = store.ListReports(0)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, idNewer, reports[0].ID)
	assert.Equal(t, 1, reports[0].Report.Executions)
	assert.Equal(t, idOlder, reports[1].ID)
	assert.InDelta(t, 68.6, reports[1].Report.Averages[benchmark.MongoDB], 1e-9)
	assert.True(t, reports[1].Report.Timestamp.Equal(base))
	assert.Equal(t, benchmark.DefaultMethods, reports[1].Report.Methods)

	reports, err = store.ListReports(1)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, idNewer, reports[0].ID)
}

func TestSQLiteStore(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer store.Close()

	testStoreContract(t, store)
}

func TestSQLiteStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	_, err = store.SaveReport(reportAt(t, time.Now(), benchmark.SampleTrials()))
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = NewSQLiteStore(path)
	require.NoError(t, err)
	defer store.Close()

	reports, err := store.ListReports(5)
	require.NoError(t, err)
	assert.Len(t, reports, 1)
}

func TestFileStore(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "nested", "history.json"))
	require.NoError(t, err)
	defer store.Close()

	testStoreContract(t, store)
}
