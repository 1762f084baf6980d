// Package file implements storage.Storage on top of a state directory, one
// file per key. Writes go through a temp file and rename so a crash mid-write
// never leaves a half-written entry behind.
package file

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-faster/errors"

	"github.com/patioshop/storefront/internal/storage"
)

var _ storage.Storage = (*Store)(nil)

// Store persists each key as a file under dir.
type Store struct {
	dir string
}

// New creates the state directory if needed and returns a Store over it.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create state dir")
	}
	return &Store{dir: dir}, nil
}

// path maps a key to a file name, replacing separators so keys cannot
// escape the state directory.
func (s *Store) path(key string) string {
	safe := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(key)
	return filepath.Join(s.dir, safe+".json")
}

// Get reads the entry for key. A missing file reports ok=false, nil error.
func (s *Store) Get(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, errors.Wrapf(err, "read %s", key)
	}
	return data, true, nil
}

// Put atomically replaces the entry for key.
func (s *Store) Put(key string, data []byte) error {
	target := s.path(key)
	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "write %s", key)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "close %s", key)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return errors.Wrapf(err, "rename %s", key)
	}
	return nil
}

// Delete removes the entry for key. Deleting an absent key is a no-op.
func (s *Store) Delete(key string) error {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "delete %s", key)
	}
	return nil
}
