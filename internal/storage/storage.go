// Package storage provides the key-value capability the simulation persists
// through: a best-effort file-backed store for local play and an in-memory
// store used as the fallback (and for ephemeral SSH sessions).
//
// The simulation never depends on storage working. Any read or write failure
// degrades to in-memory defaults; nothing here is fatal.
package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Store is a minimal get/set key-value capability.
type Store interface {
	// Get returns the stored value and true, or "" and false when the key
	// is absent or the backing medium is unavailable.
	Get(key string) (string, bool)
	// Set stores the value. Failures are reported but callers are expected
	// to treat them as non-fatal.
	Set(key, value string) error
}

// Memory is a Store backed by a plain map. The zero value is not usable;
// call NewMemory.
type Memory struct {
	values map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Get implements Store.
func (m *Memory) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Set implements Store.
func (m *Memory) Set(key, value string) error {
	m.values[key] = value
	return nil
}

// File is a Store persisted as a single JSON object on disk. Every Set
// rewrites the file; the data set is a handful of small keys so this stays
// cheap. Reads after a load never touch the disk again.
type File struct {
	path   string
	values map[string]string
}

// DefaultPath returns the state file location under the user config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "oranges", "state.json"), nil
}

// OpenFile loads (or initializes) a file store at path. A missing file is
// not an error; a corrupt one is reported and starts empty.
func OpenFile(path string) (*File, error) {
	f := &File{path: path, values: make(map[string]string)}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return f, err
	}
	if err := json.Unmarshal(data, &f.values); err != nil {
		f.values = make(map[string]string)
		return f, err
	}
	return f, nil
}

// Get implements Store.
func (f *File) Get(key string) (string, bool) {
	v, ok := f.values[key]
	return v, ok
}

// Set implements Store.
func (f *File) Set(key, value string) error {
	f.values[key] = value

	data, err := json.MarshalIndent(f.values, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(f.path, data, 0o644)
}
