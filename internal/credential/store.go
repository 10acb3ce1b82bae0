// Package credential holds the single-slot bearer token: one value in memory,
// mirrored to one file on disk. This is the whole extent of client-side
// persistence.
package credential

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"sync"
)

type Store struct {
	mu    sync.Mutex
	path  string
	token string
}

// NewStore opens the slot backed by path, loading any previously saved token.
func NewStore(path string) *Store {
	s := &Store{path: path}
	raw, err := os.ReadFile(path)
	if err == nil {
		s.token = strings.TrimSpace(string(raw))
	}
	return s
}

// Token returns the current credential, or "" when the slot is empty.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Set stores the credential and persists it.
func (s *Store) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return os.WriteFile(s.path, []byte(token), 0o600)
}

// Clear empties the slot and removes the backing file. A missing file is not
// an error; the slot was already empty on disk.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
