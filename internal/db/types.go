package db

import "benchdata/internal/benchmark"

// SuiteSummary describes one suite mirrored in the database.
type SuiteSummary struct {
	Name     string `json:"name"`
	Entries  int    `json:"entries"`
	LastDate int64  `json:"last_date"`
}

// Store interface defines the methods for the queryable dataset mirror
type Store interface {
	Close() error
	// SaveEntry records an entry. It reports false when the suite already
	// holds the commit, in which case nothing is written.
	SaveEntry(suite string, e benchmark.Entry) (bool, error)
	ListSuites() ([]SuiteSummary, error)
	// ListEntries returns entries oldest first; limit > 0 keeps the newest.
	ListEntries(suite string, limit int) ([]benchmark.Entry, error)
	Series(suite, bench string) ([]benchmark.Point, error)
}
