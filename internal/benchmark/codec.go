package benchmark

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// JSPrefix is the assignment the dashboard page expects at the top of data.js.
const JSPrefix = "window.BENCHMARK_DATA = "

// Decode reads a dataset either in data.js form or as bare JSON.
func Decode(r io.Reader) (*Dataset, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read benchmark data: %w", err)
	}

	body := bytes.TrimSpace(bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf")))
	if bytes.HasPrefix(body, []byte("window.BENCHMARK_DATA")) {
		eq := bytes.IndexByte(body, '=')
		if eq < 0 {
			return nil, fmt.Errorf("%w: missing '=' after window.BENCHMARK_DATA", ErrMalformed)
		}
		body = bytes.TrimSpace(body[eq+1:])
	}
	body = bytes.TrimSpace(bytes.TrimSuffix(body, []byte(";")))

	if len(body) == 0 {
		return &Dataset{}, nil
	}

	var d Dataset
	if err := json.Unmarshal(body, &d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return &d, nil
}

// Encode writes d in data.js form with two-space indentation.
func Encode(w io.Writer, d *Dataset) error {
	if _, err := io.WriteString(w, JSPrefix); err != nil {
		return err
	}
	return EncodeJSON(w, d)
}

// EncodeJSON writes d as indented JSON without the JavaScript assignment.
func EncodeJSON(w io.Writer, d *Dataset) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("failed to encode benchmark data: %w", err)
	}
	return nil
}
