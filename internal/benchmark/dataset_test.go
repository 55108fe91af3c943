package benchmark

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(id string, date int64, benches ...Bench) Entry {
	if len(benches) == 0 {
		benches = []Bench{{Name: "Binary Size (bytes)", Value: 100, Unit: "bytes"}}
	}
	return Entry{
		Commit:  Commit{ID: id, Distinct: true},
		Date:    date,
		Tool:    ToolCustomSmallerIsBetter,
		Benches: benches,
	}
}

func fixedClock(ms int64) func() time.Time {
	return func() time.Time { return time.UnixMilli(ms) }
}

func TestAppend(t *testing.T) {
	d := New("https://github.com/example/repo")

	require.NoError(t, d.Append("Performance Metrics", entry("a", 1000), AppendOptions{Now: fixedClock(1500)}))
	require.NoError(t, d.Append("Performance Metrics", entry("b", 0), AppendOptions{Now: fixedClock(2000)}))

	entries, err := d.Suite("Performance Metrics")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(1000), entries[0].Date)
	assert.Equal(t, int64(2000), entries[1].Date, "zero date is stamped with the clock")
	assert.Equal(t, int64(2000), d.LastUpdate)

	latest, err := d.Latest("Performance Metrics")
	require.NoError(t, err)
	assert.Equal(t, "b", latest.Commit.ID)

	prev, err := d.Previous("Performance Metrics")
	require.NoError(t, err)
	assert.Equal(t, "a", prev.Commit.ID)
}

func TestAppend_LastUpdateNeverBehindEntry(t *testing.T) {
	d := New("")
	require.NoError(t, d.Append("s", entry("a", 5000), AppendOptions{Now: fixedClock(1000)}))
	assert.Equal(t, int64(5000), d.LastUpdate)
}

func TestAppend_LastUpdateNeverMovesBackwards(t *testing.T) {
	d := New("")
	require.NoError(t, d.Append("A", entry("a", 0), AppendOptions{Now: fixedClock(5000)}))
	// A runner with a lagging clock writes to another suite.
	require.NoError(t, d.Append("B", entry("b", 0), AppendOptions{Now: fixedClock(3000)}))

	assert.Equal(t, int64(5000), d.LastUpdate)
	assert.NoError(t, Validate(d))
}

func TestAppend_Rejects(t *testing.T) {
	base := func() *Dataset {
		d := New("")
		require.NoError(t, d.Append("s", entry("a", 1000), AppendOptions{Now: fixedClock(1000)}))
		return d
	}

	tests := []struct {
		name  string
		suite string
		e     Entry
		opts  AppendOptions
		want  error
	}{
		{"out of order", "s", entry("b", 999), AppendOptions{}, ErrOutOfOrder},
		{"duplicate commit", "s", entry("a", 2000), AppendOptions{}, ErrDuplicateCommit},
		{"duplicate bench", "s", entry("b", 2000, Bench{Name: "x"}, Bench{Name: "x"}), AppendOptions{}, ErrDuplicateBench},
		{"missing commit", "s", entry("", 2000), AppendOptions{}, ErrMissingCommit},
		{"no benches", "s", Entry{Commit: Commit{ID: "b"}, Tool: ToolGo}, AppendOptions{}, ErrNoBenches},
		{"unknown tool", "s", Entry{Commit: Commit{ID: "b"}, Tool: "nope", Benches: []Bench{{Name: "x"}}}, AppendOptions{}, ErrUnknownTool},
		{"empty suite", "", entry("b", 2000), AppendOptions{}, ErrUnknownSuite},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := base()
			before := d.LastUpdate
			err := d.Append(tc.suite, tc.e, tc.opts)
			assert.ErrorIs(t, err, tc.want)

			entries, _ := d.Suite("s")
			assert.Len(t, entries, 1, "rejected entries must not be recorded")
			assert.Equal(t, before, d.LastUpdate)
		})
	}
}

func TestAppend_MaxItemsDropsOldest(t *testing.T) {
	d := New("")
	opts := AppendOptions{MaxItems: 2, Now: fixedClock(10)}
	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, d.Append("s", entry(id, int64(i+1)), opts))
	}

	entries, err := d.Suite("s")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "b", entries[0].Commit.ID)
	assert.Equal(t, "c", entries[1].Commit.ID)
}

func TestAppend_DoesNotMutateExistingSlice(t *testing.T) {
	d := New("")
	require.NoError(t, d.Append("s", entry("a", 1), AppendOptions{}))
	held, _ := d.Suite("s")

	require.NoError(t, d.Append("s", entry("b", 2), AppendOptions{}))
	assert.Len(t, held, 1)
}

func TestAppend_NewSuitesGoLast(t *testing.T) {
	d := New("")
	require.NoError(t, d.Append("second", entry("a", 1), AppendOptions{}))
	require.NoError(t, d.Append("first", entry("a", 1), AppendOptions{}))
	require.NoError(t, d.Append("second", entry("b", 2), AppendOptions{}))
	assert.Equal(t, []string{"second", "first"}, d.Suites())
}

func TestQueries(t *testing.T) {
	d := New("")
	require.NoError(t, d.Append("s", entry("1bb6b5495ca49bfbf0ae", 1,
		Bench{Name: "Build Time", Value: 55.21, Unit: "seconds"}), AppendOptions{}))
	require.NoError(t, d.Append("s", entry("90414c91773873000dd5", 2,
		Bench{Name: "Binary Size (bytes)", Value: 10, Unit: "bytes"},
		Bench{Name: "Build Time", Value: 0, Unit: "seconds"}), AppendOptions{}))

	points, err := d.Series("s", "Build Time")
	require.NoError(t, err)
	assert.Equal(t, []Point{
		{Date: 1, CommitID: "1bb6b5495ca49bfbf0ae", Value: 55.21, Unit: "seconds"},
		{Date: 2, CommitID: "90414c91773873000dd5", Value: 0, Unit: "seconds"},
	}, points)

	e, err := d.FindCommit("s", "90414c9")
	require.NoError(t, err)
	assert.Equal(t, int64(2), e.Date)

	_, err = d.FindCommit("s", "9041")
	assert.ErrorIs(t, err, ErrUnknownCommit, "short prefixes are ambiguous")

	_, err = d.Suite("missing")
	assert.ErrorIs(t, err, ErrUnknownSuite)

	prev, err := New("").Previous("missing")
	assert.Nil(t, prev)
	assert.ErrorIs(t, err, ErrUnknownSuite)
}
