package benchmark

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store defines the interface for loading and persisting a dataset.
type Store interface {
	Load() (*Dataset, error)
	Save(d *Dataset) error
	Append(suite string, e Entry, opts AppendOptions) (*Dataset, error)
}

// FileStore keeps the dataset in a data.js file.
type FileStore struct {
	path    string
	repoURL string
	mu      sync.Mutex
}

// NewFileStore returns a store for path. repoURL seeds a dataset when the
// file does not exist yet. Directories are created on the first save.
func NewFileStore(path, repoURL string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("data file path is empty")
	}
	return &FileStore{path: path, repoURL: repoURL}, nil
}

// Path returns the file backing the store.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Load() (*Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *FileStore) load() (*Dataset, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(s.repoURL), nil
		}
		return nil, err
	}
	defer f.Close()

	d, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	if d.RepoURL == "" {
		d.RepoURL = s.repoURL
	}
	return d, nil
}

func (s *FileStore) Save(d *Dataset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(d)
}

// save writes to a temporary file in the same directory and renames it over
// the target so readers never see a partial file.
func (s *FileStore) save(d *Dataset) error {
	var buf bytes.Buffer
	if err := Encode(&buf, d); err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".benchdata-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	return nil
}

// Append loads the dataset, appends e to suite and saves the result.
func (s *FileStore) Append(suite string, e Entry, opts AppendOptions) (*Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.load()
	if err != nil {
		return nil, err
	}
	if err := d.Append(suite, e, opts); err != nil {
		return nil, err
	}
	if err := s.save(d); err != nil {
		return nil, err
	}
	return d, nil
}
