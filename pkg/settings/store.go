// Package settings persists the user's provider choice, API keys and model
// selection in a flat, string-keyed JSON file.
//
// [Store] is the raw key-value layer with get/set/save semantics. [Load] and
// [Save] read and write the typed [Settings] on top of any [KV].
package settings

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"sync"
)

// KV is the flat key-value contract the rest of the module depends on.
// Writes become durable only after Save. Last write wins.
type KV interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Save() error
}

var _ KV = (*Store)(nil)

// Store is a KV backed by a JSON file.
type Store struct {
	mu       sync.RWMutex
	values   map[string]string
	filePath string
}

// Open creates a Store backed by the given file. Existing data is loaded
// immediately; a missing or empty file yields an empty store.
func Open(filePath string) (*Store, error) {
	abs, err := filepath.Abs(filePath)
	if err != nil {
		return nil, fmt.Errorf("settings: resolve path: %w", err)
	}

	s := &Store{
		values:   make(map[string]string),
		filePath: abs,
	}

	if err := s.load(); err != nil {
		return nil, err
	}

	return s, nil
}

var (
	sharedOnce  sync.Once
	sharedStore *Store
	sharedErr   error
)

// Shared returns the process-wide Store. The first call opens filePath;
// later calls return the same handle (or the same error) regardless of the
// path they pass.
func Shared(filePath string) (*Store, error) {
	sharedOnce.Do(func() {
		sharedStore, sharedErr = Open(filePath)
	})

	return sharedStore, sharedErr
}

// Path returns the absolute path of the backing file.
func (s *Store) Path() string { return s.filePath }

// Get returns the value stored under key.
func (s *Store) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]

	return v, ok
}

// Set stores value under key in memory.
func (s *Store) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
}

// Save writes the current values to disk atomically.
func (s *Store) Save() error {
	s.mu.RLock()
	snap := maps.Clone(s.values)
	s.mu.RUnlock()

	return s.persistSnapshot(snap)
}

// --- persistence ---

func (s *Store) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return fmt.Errorf("settings: read file: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}

	var raw map[string]any
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return fmt.Errorf("settings: parse file: %w", err)
	}

	// Non-string values are ignored and dropped by the next Save.
	for k, v := range raw {
		if str, ok := v.(string); ok {
			s.values[k] = str
		}
	}

	return nil
}

// persistSnapshot writes the given snapshot to disk. It must be called
// outside the lock so that blocking I/O does not hold the mutex.
func (s *Store) persistSnapshot(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("settings: marshal: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.filePath), 0o750); err != nil {
		return fmt.Errorf("settings: create dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.filePath), ".settings-*.tmp")
	if err != nil {
		return fmt.Errorf("settings: create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName) //nolint:gosec // tmpName comes from os.CreateTemp in a known directory
		return fmt.Errorf("settings: write temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName) //nolint:gosec // tmpName comes from os.CreateTemp in a known directory
		return fmt.Errorf("settings: close temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.filePath); err != nil { //nolint:gosec // tmpName comes from os.CreateTemp in a known directory
		_ = os.Remove(tmpName) //nolint:gosec // tmpName comes from os.CreateTemp in a known directory
		return fmt.Errorf("settings: rename temp file: %w", err)
	}

	return nil
}
