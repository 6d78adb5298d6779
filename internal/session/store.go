// Package session keeps the bearer token between garenne runs.
//
// The token lives in a single TOML file under a fixed key. At most one token is
// stored at a time; holding one says nothing about whether the server still
// accepts it.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
)

// Store reads and writes the session token. Implementations must be safe for
// concurrent use.
type Store interface {
	Token() (string, bool)
	SetToken(token string) error
	ClearToken() error
}

// Ensure the stores implement Store at compile time.
var (
	_ Store = (*FileStore)(nil)
	_ Store = (*MemoryStore)(nil)
)

// FileStore persists the token in a TOML file.
type FileStore struct {
	mu   sync.Mutex
	path string
}

type fileContents struct {
	Token string `toml:"token"`
}

// NewFileStore returns a store backed by path. The file is created on the
// first SetToken.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file location.
func (s *FileStore) Path() string {
	return s.path
}

// Token returns the stored token. Unreadable or malformed files count as no
// token.
func (s *FileStore) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}
	var contents fileContents
	if err := toml.Unmarshal(data, &contents); err != nil {
		return "", false
	}
	token := strings.TrimSpace(contents.Token)
	return token, token != ""
}

// SetToken replaces the stored token.
func (s *FileStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	data, err := toml.Marshal(fileContents{Token: token})
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// ClearToken removes the session file. Clearing an absent token is a no-op.
func (s *FileStore) ClearToken() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

// MemoryStore keeps the token in memory. Useful for tests and one-shot
// commands.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

// NewMemoryStore returns a store preloaded with token (may be empty).
func NewMemoryStore(token string) *MemoryStore {
	return &MemoryStore{token: token}
}

func (s *MemoryStore) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

func (s *MemoryStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryStore) ClearToken() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
