package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store persists the opaque state blob between loads
type Store interface {
	// Load returns the stored blob, empty when nothing was stored
	Load() (string, error)
	// Save replaces the stored blob
	Save(blob string) error
}

// MemoryStore keeps the blob in memory
type MemoryStore struct {
	mu   sync.Mutex
	blob string
}

func (m *MemoryStore) Load() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.blob, nil
}

func (m *MemoryStore) Save(blob string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blob = blob
	return nil
}

// FileStore keeps the blob in a file
type FileStore struct {
	path string
}

// NewFileStore creates a store writing to path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Load() (string, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read state file: %w", err)
	}
	return string(data), nil
}

// Save writes through a temporary file so readers never see a partial blob
func (f *FileStore) Save(blob string) error {
	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".state-*")
	if err != nil {
		return fmt.Errorf("failed to create state file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(blob); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}
