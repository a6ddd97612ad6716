// Package state holds the two persisted client stores: the auth
// session and the UI layout flags. Each store is a JSON object file
// with an explicit allow-list of persisted keys; values outside the
// allow-list are never written to disk.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store is the shared file-backed key/value primitive. Mutations
// rewrite the whole file atomically (write temp, rename). Deleting
// keys never deletes the file itself.
type Store struct {
	path    string
	allowed map[string]struct{}

	mu     sync.Mutex
	values map[string]json.RawMessage
}

// NewStore opens or creates the store file at path. Keys found on
// disk that are not in the allow-list are dropped on load.
func NewStore(path string, allowedKeys []string) (*Store, error) {
	allowed := make(map[string]struct{}, len(allowedKeys))
	for _, k := range allowedKeys {
		allowed[k] = struct{}{}
	}

	s := &Store{
		path:    path,
		allowed: allowed,
		values:  make(map[string]json.RawMessage),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read store file: %w", err)
	}

	var loaded map[string]json.RawMessage
	if err := json.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("parse store file: %w", err)
	}
	for k, v := range loaded {
		if _, ok := allowed[k]; ok {
			s.values[k] = v
		}
	}
	return s, nil
}

// Set persists a value under an allow-listed key.
func (s *Store) Set(key string, value interface{}) error {
	if _, ok := s.allowed[key]; !ok {
		return fmt.Errorf("key %q is not in the persistence allow-list", key)
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal value for %q: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = raw
	return s.flushLocked()
}

// Get unmarshals the value under key into out. The second return is
// false when the key is absent.
func (s *Store) Get(key string, out interface{}) (bool, error) {
	s.mu.Lock()
	raw, ok := s.values[key]
	s.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("unmarshal value for %q: %w", key, err)
	}
	return true, nil
}

// Delete removes a key and rewrites the file. The file itself is kept
// even when the last key is removed.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[key]; !ok {
		return nil
	}
	delete(s.values, key)
	return s.flushLocked()
}

// Has reports whether key is present.
func (s *Store) Has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.values[key]
	return ok
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) flushLocked() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("write store file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace store file: %w", err)
	}
	return nil
}
