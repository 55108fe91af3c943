package benchmark

import (
	"fmt"
	"time"
)

// AppendOptions controls how an entry is added to a suite.
type AppendOptions struct {
	// MaxItems caps the number of entries kept per suite. Zero keeps all.
	MaxItems int
	// Now overrides the clock, mainly for tests.
	Now func() time.Time
}

func (o AppendOptions) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// New returns an empty dataset for repoURL.
func New(repoURL string) *Dataset {
	return &Dataset{RepoURL: repoURL}
}

// Suites returns the suite names in the order they were first recorded.
func (d *Dataset) Suites() []string {
	return d.Entries.Names()
}

// Suite returns the entries of a suite, oldest first.
func (d *Dataset) Suite(name string) ([]Entry, error) {
	entries, ok := d.Entries.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSuite, name)
	}
	return entries, nil
}

// Latest returns the newest entry of a suite.
func (d *Dataset) Latest(suite string) (*Entry, error) {
	entries, err := d.Suite(suite)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	e := entries[len(entries)-1]
	return &e, nil
}

// Previous returns the entry before the newest one, or nil when the suite has
// fewer than two entries.
func (d *Dataset) Previous(suite string) (*Entry, error) {
	entries, err := d.Suite(suite)
	if err != nil {
		return nil, err
	}
	if len(entries) < 2 {
		return nil, nil
	}
	e := entries[len(entries)-2]
	return &e, nil
}

// FindCommit returns the entry recorded for a commit. Prefixes of at least
// seven characters match.
func (d *Dataset) FindCommit(suite, id string) (*Entry, error) {
	entries, err := d.Suite(suite)
	if err != nil {
		return nil, err
	}
	for i := len(entries) - 1; i >= 0; i-- {
		cid := entries[i].Commit.ID
		if cid == id || (len(id) >= 7 && len(cid) > len(id) && cid[:len(id)] == id) {
			e := entries[i]
			return &e, nil
		}
	}
	return nil, fmt.Errorf("%w: %s in suite %q", ErrUnknownCommit, id, suite)
}

// Series returns every recorded value of one bench across a suite.
func (d *Dataset) Series(suite, bench string) ([]Point, error) {
	entries, err := d.Suite(suite)
	if err != nil {
		return nil, err
	}
	var points []Point
	for _, e := range entries {
		b, ok := e.Bench(bench)
		if !ok {
			continue
		}
		points = append(points, Point{
			Date:     e.Date,
			CommitID: e.Commit.ID,
			Value:    b.Value,
			Unit:     b.Unit,
		})
	}
	return points, nil
}

// Append adds e at the tail of suite. Existing entries are never modified;
// when MaxItems is set the oldest entries are dropped from the head.
func (d *Dataset) Append(suite string, e Entry, opts AppendOptions) error {
	if suite == "" {
		return fmt.Errorf("%w: empty suite name", ErrUnknownSuite)
	}
	if opts.MaxItems < 0 {
		return fmt.Errorf("max items must not be negative, got %d", opts.MaxItems)
	}
	if err := checkEntry(e); err != nil {
		return err
	}

	now := opts.now().UnixMilli()
	if e.Date == 0 {
		e.Date = now
	}

	existing, _ := d.Entries.Get(suite)
	if n := len(existing); n > 0 && e.Date < existing[n-1].Date {
		return fmt.Errorf("%w: %d < %d", ErrOutOfOrder, e.Date, existing[n-1].Date)
	}
	for _, prev := range existing {
		if prev.Commit.ID == e.Commit.ID {
			return fmt.Errorf("%w: %s in %q", ErrDuplicateCommit, e.Commit.ID, suite)
		}
	}

	// Copy so callers holding the old slice never observe the change.
	next := make([]Entry, 0, len(existing)+1)
	next = append(next, existing...)
	next = append(next, e)
	if opts.MaxItems > 0 && len(next) > opts.MaxItems {
		next = next[len(next)-opts.MaxItems:]
	}
	d.Entries.set(suite, next)

	// Never move backwards: another suite may hold newer dates than this
	// runner's clock.
	d.LastUpdate = max(d.LastUpdate, now, e.Date)
	return nil
}

// checkEntry holds the per-entry rules shared by Append and Validate.
func checkEntry(e Entry) error {
	if e.Commit.ID == "" {
		return ErrMissingCommit
	}
	if !e.Tool.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownTool, e.Tool)
	}
	if len(e.Benches) == 0 {
		return ErrNoBenches
	}
	return checkBenches(e.Benches)
}
