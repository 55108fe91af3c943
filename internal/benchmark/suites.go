package benchmark

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Suites maps suite names to their entries while keeping the order in which
// suites were first recorded. The dashboard renders suites in that order.
type Suites struct {
	order   []string
	entries map[string][]Entry
}

// Names returns the suite names in insertion order.
func (s *Suites) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Get returns the entries recorded for a suite.
func (s *Suites) Get(name string) ([]Entry, bool) {
	e, ok := s.entries[name]
	return e, ok
}

// Len returns the number of suites.
func (s *Suites) Len() int {
	return len(s.order)
}

func (s *Suites) set(name string, entries []Entry) {
	if s.entries == nil {
		s.entries = make(map[string][]Entry)
	}
	if _, ok := s.entries[name]; !ok {
		s.order = append(s.order, name)
	}
	s.entries[name] = entries
}

func (s Suites) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range s.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalNoEscape(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		entries := s.entries[name]
		if entries == nil {
			entries = []Entry{}
		}
		val, err := marshalNoEscape(entries)
		if err != nil {
			return nil, fmt.Errorf("suite %q: %w", name, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (s *Suites) UnmarshalJSON(data []byte) error {
	*s = Suites{}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("%w: entries must be an object", ErrMalformed)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("%w: suite name must be a string", ErrMalformed)
		}
		var entries []Entry
		if err := dec.Decode(&entries); err != nil {
			return fmt.Errorf("suite %q: %w", name, err)
		}
		s.set(name, entries)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// marshalNoEscape encodes v the way JSON.stringify does, leaving <, > and &
// as is.
func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
