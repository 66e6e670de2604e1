// Package store persists exactly one tree per caller-supplied tree
// identifier, behind a key-value storage port. Every mutation rewrites the
// full serialized root under the tree's key (snapshot model; tree sizes
// are UI-scale, not filesystem-scale).
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrNoState reports that no persisted state exists under a key. Callers
// recover by initializing a fresh default tree.
var ErrNoState = errors.New("no persisted state")

// Storage is the key-value persistence port. Implementations must make
// Save durable before returning; Load returns ErrNoState (possibly
// wrapped) when the key has never been written.
type Storage interface {
	Load(key string) ([]byte, error)
	Save(key string, data []byte) error
}

// MemoryStorage is an in-memory Storage, used in tests and for ephemeral
// sessions.
type MemoryStorage struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryStorage returns an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{blobs: make(map[string][]byte)}
}

// Load implements Storage.
func (s *MemoryStorage) Load(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.blobs[key]
	if !ok {
		return nil, fmt.Errorf("%q: %w", key, ErrNoState)
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Save implements Storage.
func (s *MemoryStorage) Save(key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	blob := make([]byte, len(data))
	copy(blob, data)
	s.blobs[key] = blob
	return nil
}

// Keys returns the stored keys. Test helper.
func (s *MemoryStorage) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.blobs))
	for k := range s.blobs {
		keys = append(keys, k)
	}
	return keys
}

// FileStorage keeps one JSON file per key under a state directory
// (.fern/<key>.json by default). The directory is created on first save.
type FileStorage struct {
	dir string
}

// NewFileStorage returns a file-backed storage rooted at dir.
func NewFileStorage(dir string) *FileStorage {
	return &FileStorage{dir: dir}
}

// Dir returns the state directory.
func (s *FileStorage) Dir() string {
	return s.dir
}

func (s *FileStorage) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Load implements Storage.
func (s *FileStorage) Load(key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%q: %w", key, ErrNoState)
		}
		return nil, fmt.Errorf("read state %q: %w", key, err)
	}
	return data, nil
}

// Save implements Storage.
func (s *FileStorage) Save(key string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create state directory %s: %w", s.dir, err)
	}
	if err := os.WriteFile(s.path(key), data, 0644); err != nil {
		return fmt.Errorf("write state %q: %w", key, err)
	}
	return nil
}

// Delete removes the persisted blob for a key. Missing keys are not an error.
func (s *FileStorage) Delete(key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
