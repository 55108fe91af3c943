package db

import (
	"path/filepath"
	"testing"

	"benchdata/internal/benchmark"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEntry(id string, date int64, size, build float64) benchmark.Entry {
	return benchmark.Entry{
		Commit: benchmark.Commit{
			ID:       id,
			Author:   benchmark.User{Name: "Nicolas Pequeux", Username: "npequeux"},
			Distinct: true,
			Message:  "perf: faster builds\n\nbody",
		},
		Date: date,
		Tool: benchmark.ToolCustomSmallerIsBetter,
		Benches: []benchmark.Bench{
			{Name: "Binary Size (bytes)", Value: size, Unit: "bytes"},
			{Name: "Build Time", Value: build, Unit: "seconds", Extra: "release"},
		},
	}
}

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore(t *testing.T) {
	store := newTestSQLite(t)

	ok, err := store.SaveEntry("Performance Metrics", testEntry("aaa", 100, 3409752, 55.21))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.SaveEntry("Performance Metrics", testEntry("bbb", 200, 3409752, 0))
	require.NoError(t, err)
	assert.True(t, ok)

	// Saving the same commit again is a no-op
	ok, err = store.SaveEntry("Performance Metrics", testEntry("aaa", 300, 1, 1))
	require.NoError(t, err)
	assert.False(t, ok)

	entries, err := store.ListEntries("Performance Metrics", 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, testEntry("aaa", 100, 3409752, 55.21), entries[0])
	assert.Equal(t, "bbb", entries[1].Commit.ID)

	latest, err := store.ListEntries("Performance Metrics", 1)
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.Equal(t, "bbb", latest[0].Commit.ID)

	points, err := store.Series("Performance Metrics", "Build Time")
	require.NoError(t, err)
	assert.Equal(t, []benchmark.Point{
		{Date: 100, CommitID: "aaa", Value: 55.21, Unit: "seconds"},
		{Date: 200, CommitID: "bbb", Value: 0, Unit: "seconds"},
	}, points)
}

func TestSQLiteStore_ListSuites(t *testing.T) {
	store := newTestSQLite(t)

	_, err := store.SaveEntry("Later", testEntry("x", 500, 1, 1))
	require.NoError(t, err)
	_, err = store.SaveEntry("Earlier", testEntry("x", 100, 1, 1))
	require.NoError(t, err)
	_, err = store.SaveEntry("Earlier", testEntry("y", 900, 1, 1))
	require.NoError(t, err)

	suites, err := store.ListSuites()
	require.NoError(t, err)
	assert.Equal(t, []SuiteSummary{
		{Name: "Earlier", Entries: 2, LastDate: 900},
		{Name: "Later", Entries: 1, LastDate: 500},
	}, suites)

	entries, err := store.ListEntries("missing", 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSync(t *testing.T) {
	store := newTestSQLite(t)

	d := benchmark.New("https://github.com/npequeux/rtop")
	require.NoError(t, d.Append("Performance Metrics", testEntry("aaa", 100, 1, 2), benchmark.AppendOptions{}))
	require.NoError(t, d.Append("Performance Metrics", testEntry("bbb", 200, 1, 2), benchmark.AppendOptions{}))

	n, err := Sync(store, d)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// Second sync finds nothing new
	n, err = Sync(store, d)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
