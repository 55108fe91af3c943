package db

import (
	"fmt"

	"benchdata/internal/benchmark"
)

// Sync mirrors every entry of d into store and returns how many were new.
func Sync(store Store, d *benchmark.Dataset) (int, error) {
	written := 0
	for _, suite := range d.Suites() {
		entries, _ := d.Entries.Get(suite)
		for _, e := range entries {
			ok, err := store.SaveEntry(suite, e)
			if err != nil {
				return written, fmt.Errorf("suite %q: %w", suite, err)
			}
			if ok {
				written++
			}
		}
	}
	return written, nil
}
