package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"benchdata/internal/benchmark"
)

// sqlStore holds the queries shared by the SQLite and Postgres stores. The
// only dialect difference is the placeholder syntax.
type sqlStore struct {
	db       *sql.DB
	dollarPH bool
}

// bind rewrites ? placeholders to $n for Postgres.
func (s *sqlStore) bind(query string) string {
	if !s.dollarPH {
		return query
	}
	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&sb, "$%d", n)
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Close closes the database connection
func (s *sqlStore) Close() error {
	return s.db.Close()
}

func (s *sqlStore) SaveEntry(suite string, e benchmark.Entry) (bool, error) {
	commit, err := json.Marshal(e.Commit)
	if err != nil {
		return false, fmt.Errorf("failed to marshal commit: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(s.bind(`INSERT INTO entries (suite, commit_id, date, tool, commit_json) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (suite, commit_id) DO NOTHING`),
		suite, e.Commit.ID, e.Date, string(e.Tool), string(commit))
	if err != nil {
		return false, fmt.Errorf("failed to insert entry %s: %w", e.Commit.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return false, nil
	}

	for i, b := range e.Benches {
		_, err := tx.Exec(s.bind(`INSERT INTO benches (suite, commit_id, position, name, value, unit, range_text, extra) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`),
			suite, e.Commit.ID, i, b.Name, b.Value, b.Unit, b.Range, b.Extra)
		if err != nil {
			return false, fmt.Errorf("failed to insert bench %q: %w", b.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

func (s *sqlStore) ListSuites() ([]SuiteSummary, error) {
	rows, err := s.db.Query(`SELECT suite, COUNT(*), MAX(date) FROM entries GROUP BY suite ORDER BY MIN(date), suite`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var suites []SuiteSummary
	for rows.Next() {
		var sum SuiteSummary
		if err := rows.Scan(&sum.Name, &sum.Entries, &sum.LastDate); err != nil {
			return nil, err
		}
		suites = append(suites, sum)
	}
	return suites, rows.Err()
}

func (s *sqlStore) ListEntries(suite string, limit int) ([]benchmark.Entry, error) {
	query := `SELECT commit_id, date, tool, commit_json FROM entries WHERE suite = ? ORDER BY date DESC, commit_id DESC`
	args := []any{suite}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(s.bind(query), args...)
	if err != nil {
		return nil, err
	}

	var entries []benchmark.Entry
	for rows.Next() {
		var (
			e          benchmark.Entry
			id, tool   string
			commitJSON string
		)
		if err := rows.Scan(&id, &e.Date, &tool, &commitJSON); err != nil {
			rows.Close()
			return nil, err
		}
		if err := json.Unmarshal([]byte(commitJSON), &e.Commit); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to decode commit %s: %w", id, err)
		}
		e.Commit.ID = id
		e.Tool = benchmark.Tool(tool)
		entries = append(entries, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Rows come newest first so LIMIT keeps the newest; flip back to
	// chronological order.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}

	for i := range entries {
		benches, err := s.benches(suite, entries[i].Commit.ID)
		if err != nil {
			return nil, err
		}
		entries[i].Benches = benches
	}
	return entries, nil
}

func (s *sqlStore) benches(suite, commitID string) ([]benchmark.Bench, error) {
	rows, err := s.db.Query(s.bind(`SELECT name, value, unit, range_text, extra FROM benches WHERE suite = ? AND commit_id = ? ORDER BY position`),
		suite, commitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var benches []benchmark.Bench
	for rows.Next() {
		var b benchmark.Bench
		if err := rows.Scan(&b.Name, &b.Value, &b.Unit, &b.Range, &b.Extra); err != nil {
			return nil, err
		}
		benches = append(benches, b)
	}
	return benches, rows.Err()
}

func (s *sqlStore) Series(suite, bench string) ([]benchmark.Point, error) {
	rows, err := s.db.Query(s.bind(`SELECT e.date, e.commit_id, b.value, b.unit FROM benches b
		JOIN entries e ON e.suite = b.suite AND e.commit_id = b.commit_id
		WHERE b.suite = ? AND b.name = ? ORDER BY e.date, e.commit_id`), suite, bench)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []benchmark.Point
	for rows.Next() {
		var p benchmark.Point
		if err := rows.Scan(&p.Date, &p.CommitID, &p.Value, &p.Unit); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}
