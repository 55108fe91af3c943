package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// PostgresStore implements Store using PostgreSQL
type PostgresStore struct {
	sqlStore
}

// NewPostgresStore creates a new Postgres store and applies migrations
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := newPostgresStore(db)
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

func newPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{sqlStore{db: db, dollarPH: true}}
}

func (s *PostgresStore) migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS entries (
			suite TEXT NOT NULL,
			commit_id TEXT NOT NULL,
			date BIGINT NOT NULL,
			tool TEXT NOT NULL,
			commit_json TEXT NOT NULL,
			PRIMARY KEY (suite, commit_id)
		);`,
		`CREATE TABLE IF NOT EXISTS benches (
			suite TEXT NOT NULL,
			commit_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			value DOUBLE PRECISION NOT NULL,
			unit TEXT NOT NULL DEFAULT '',
			range_text TEXT NOT NULL DEFAULT '',
			extra TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (suite, commit_id, name),
			FOREIGN KEY (suite, commit_id) REFERENCES entries (suite, commit_id) ON DELETE CASCADE
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
