// Package export writes suite history in formats other tools can ingest.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"benchdata/internal/benchmark"
)

// Format is an export output format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ParseFormat accepts a format name case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatCSV:
		return f, nil
	}
	return "", fmt.Errorf("unsupported export format %q (want json or csv)", s)
}

// CSVHeader is the first row written by CSV.
var CSVHeader = []string{"date", "commit", "timestamp", "tool", "name", "value", "unit"}

type suiteExport struct {
	Suite   string            `json:"suite"`
	Entries []benchmark.Entry `json:"entries"`
}

// Write dispatches to JSON or CSV.
func Write(w io.Writer, f Format, suite string, entries []benchmark.Entry) error {
	switch f {
	case FormatJSON:
		return JSON(w, suite, entries)
	case FormatCSV:
		return CSV(w, entries)
	}
	return fmt.Errorf("unsupported export format %q", f)
}

// JSON writes the entries of one suite as an indented document.
func JSON(w io.Writer, suite string, entries []benchmark.Entry) error {
	if entries == nil {
		entries = []benchmark.Entry{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(suiteExport{Suite: suite, Entries: entries}); err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	return nil
}

// CSV writes one row per bench of every entry. Dates are RFC 3339 in UTC.
func CSV(w io.Writer, entries []benchmark.Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, e := range entries {
		date := time.UnixMilli(e.Date).UTC().Format(time.RFC3339)
		for _, b := range e.Benches {
			row := []string{
				date,
				e.Commit.ID,
				e.Commit.Timestamp,
				string(e.Tool),
				b.Name,
				strconv.FormatFloat(b.Value, 'f', -1, 64),
				b.Unit,
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
