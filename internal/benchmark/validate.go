package benchmark

import (
	"fmt"
	"math"

	"github.com/hashicorp/go-multierror"
)

// Validate checks every suite of d and reports all violations together.
func Validate(d *Dataset) error {
	var result *multierror.Error

	if d.LastUpdate < 0 {
		result = multierror.Append(result, fmt.Errorf("lastUpdate is negative: %d", d.LastUpdate))
	}

	var newest int64
	for _, suite := range d.Suites() {
		entries, _ := d.Entries.Get(suite)
		seen := make(map[string]int, len(entries))
		for i, e := range entries {
			at := fmt.Sprintf("%s[%d]", suite, i)

			if e.Commit.ID == "" {
				result = multierror.Append(result, fmt.Errorf("%s: %w", at, ErrMissingCommit))
			} else if j, dup := seen[e.Commit.ID]; dup {
				result = multierror.Append(result, fmt.Errorf("%s: %w: %s also at index %d", at, ErrDuplicateCommit, e.Commit.ID, j))
			} else {
				seen[e.Commit.ID] = i
			}

			if !e.Tool.Valid() {
				result = multierror.Append(result, fmt.Errorf("%s: %w: %q", at, ErrUnknownTool, e.Tool))
			}
			if i > 0 && e.Date < entries[i-1].Date {
				result = multierror.Append(result, fmt.Errorf("%s: %w: %d < %d", at, ErrOutOfOrder, e.Date, entries[i-1].Date))
			}
			if len(e.Benches) == 0 {
				result = multierror.Append(result, fmt.Errorf("%s: %w", at, ErrNoBenches))
			}
			for _, err := range benchProblems(e.Benches) {
				result = multierror.Append(result, fmt.Errorf("%s: %w", at, err))
			}
			if e.Date > newest {
				newest = e.Date
			}
		}
	}

	if d.LastUpdate != 0 && d.LastUpdate < newest {
		result = multierror.Append(result, fmt.Errorf("lastUpdate %d is older than newest entry date %d", d.LastUpdate, newest))
	}

	return result.ErrorOrNil()
}

func checkBenches(benches []Bench) error {
	if problems := benchProblems(benches); len(problems) > 0 {
		return problems[0]
	}
	return nil
}

func benchProblems(benches []Bench) []error {
	var problems []error
	names := make(map[string]struct{}, len(benches))
	for i, b := range benches {
		if b.Name == "" {
			problems = append(problems, fmt.Errorf("bench %d has no name", i))
			continue
		}
		if _, dup := names[b.Name]; dup {
			problems = append(problems, fmt.Errorf("%w: %q", ErrDuplicateBench, b.Name))
		}
		names[b.Name] = struct{}{}
		if math.IsNaN(b.Value) || math.IsInf(b.Value, 0) {
			problems = append(problems, fmt.Errorf("bench %q has non-finite value", b.Name))
		}
	}
	return problems
}
