// Package memory implements storage.Storage in a plain map, for tests and
// ephemeral sessions.
package memory

import "github.com/patioshop/storefront/internal/storage"

var _ storage.Storage = (*Store)(nil)

// Store is an in-memory Storage. The zero value is not usable; call New.
type Store struct {
	entries map[string][]byte
}

// New returns an empty in-memory store.
func New() *Store {
	return &Store{entries: make(map[string][]byte)}
}

func (s *Store) Get(key string) ([]byte, bool, error) {
	data, ok := s.entries[key]
	return data, ok, nil
}

func (s *Store) Put(key string, data []byte) error {
	buf := make([]byte, len(data))
	copy(buf, data)
	s.entries[key] = buf
	return nil
}

func (s *Store) Delete(key string) error {
	delete(s.entries, key)
	return nil
}
