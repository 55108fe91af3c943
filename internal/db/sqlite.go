package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore implements Store using SQLite
type SQLiteStore struct {
	sqlStore
}

// NewSQLiteStore creates a new SQLite store and applies migrations
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single writer avoids SQLITE_BUSY between our own connections.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLiteStore{sqlStore{db: db}}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS entries (
			suite TEXT NOT NULL,
			commit_id TEXT NOT NULL,
			date INTEGER NOT NULL,
			tool TEXT NOT NULL,
			commit_json TEXT NOT NULL,
			PRIMARY KEY (suite, commit_id)
		);`,
		`CREATE TABLE IF NOT EXISTS benches (
			suite TEXT NOT NULL,
			commit_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			value REAL NOT NULL,
			unit TEXT NOT NULL DEFAULT '',
			range_text TEXT NOT NULL DEFAULT '',
			extra TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (suite, commit_id, name)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_entries_suite_date ON entries(suite, date);`,
		`CREATE INDEX IF NOT EXISTS idx_benches_suite_name ON benches(suite, name);`,
	}
	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return err
		}
	}
	return nil
}
