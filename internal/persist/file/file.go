// Package file persists each logical key as one JSON document on disk.
// It is the local single-user backend, playing the role browser storage did
// in the original workflow.
package file

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// Store writes one <key>.json file per logical key under Dir.
type Store struct {
	dir string
}

// Open ensures the data directory exists and returns a Store over it.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Load returns the stored document, or nil when the key was never saved.
func (s *Store) Load(_ context.Context, key string) ([]byte, error) {
	b, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Save writes the document atomically via a temp file rename.
func (s *Store) Save(_ context.Context, key string, data []byte) error {
	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return err
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return err
	}
	return os.Rename(name, s.path(key))
}
