// Package state provides the small durable key-value stores chartfit keeps
// its last seen width in.
package state

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Store is a synchronous, durable string key-value store.
type Store interface {
	// Get returns the stored value and whether the key was present.
	Get(key string) (string, bool)
	// Set stores value under key and persists it before returning.
	Set(key, value string) error
	// Close releases any resources.
	Close() error
}

// DefaultPath returns ~/.config/chartfit/state.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "chartfit", "state.json"), nil
}

// DefaultDBPath returns ~/.config/chartfit/state.db.
func DefaultDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "chartfit", "state.db"), nil
}

// FileStore keeps every value in one JSON object on disk.
type FileStore struct {
	path string

	mu     sync.RWMutex
	values map[string]string
}

// OpenFile loads the store at path. A missing file is an empty store.
func OpenFile(path string) (*FileStore, error) {
	s := &FileStore{path: path}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Load reads state from disk, replacing what is in memory.
func (s *FileStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values = make(map[string]string)

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil // no state file yet
	}
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}

	values, err := decodeValues(data)
	if err != nil {
		// Unreadable state counts as absent. The next Set rewrites the file.
		slog.Warn("ignoring unreadable state file", "path", s.path, "err", err)
		return nil
	}
	s.values = values
	return nil
}

// decodeValues parses a JSON object of strings. Non-string scalars such as
// a hand-edited 500 are kept as their JSON text.
func decodeValues(data []byte) (map[string]string, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, errors.New("state file is not a JSON object")
	}

	values := make(map[string]string, len(raw))
	for k, v := range raw {
		var str string
		if err := json.Unmarshal(v, &str); err == nil {
			values[k] = str
			continue
		}
		values[k] = string(bytes.TrimSpace(v))
	}
	return values, nil
}

// Get implements Store.
func (s *FileStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Set implements Store.
func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	s.values[key] = value
	s.mu.Unlock()
	return s.Save()
}

// Save writes state to disk.
func (s *FileStore) Save() error {
	// Exclusive so concurrent writers never interleave in the file.
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0644)
}

// Path returns the backing file.
func (s *FileStore) Path() string {
	return s.path
}

// Close implements Store. FileStore holds no open handles.
func (s *FileStore) Close() error {
	return nil
}

// MemoryStore is a Store that lives only as long as the process.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory returns an empty MemoryStore.
func NewMemory() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Get implements Store.
func (m *MemoryStore) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

// Set implements Store.
func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	return nil
}
