package tokenstore

import (
	"os"
	"strings"
	"sync"
)

// FileStore persists the session token in a single local file so the session
// survives process restarts. Operations are synchronous; the file holds the
// opaque token and nothing else.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore builds a store at the supplied path. The file is created on
// first Set.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Get returns the persisted token, or false when none is stored.
func (s *FileStore) Get() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", false
	}
	return token, true
}

// Set writes the token, readable by the owner only.
func (s *FileStore) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return os.WriteFile(s.path, []byte(token), 0o600)
}

// Clear removes the persisted token. Clearing an absent token is not an error.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
