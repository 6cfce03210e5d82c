// Package cache memoizes model responses keyed by the exact prompt text.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Backends accepted by the configuration.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

const (
	JSONFile   = "llm_cache.json"
	SQLiteFile = "llm_cache.db"
)

// Store maps a prompt to a previously returned response. Get reports a miss
// for any read problem; callers treat Put failures as non-fatal.
type Store interface {
	Get(prompt string) (json.RawMessage, bool)
	Put(prompt string, value any) error
}

// Open returns the store for backend inside dir. Disabled caching yields Nop.
func Open(dir, backend string, enabled bool) (Store, error) {
	if !enabled {
		return Nop{}, nil
	}
	switch backend {
	case "", BackendJSON:
		return NewJSONStore(filepath.Join(dir, JSONFile)), nil
	case BackendSQLite:
		return NewSQLiteStore(filepath.Join(dir, SQLiteFile))
	default:
		return nil, fmt.Errorf("unknown cache backend %q", backend)
	}
}

// Close releases the store if it holds resources.
func Close(s Store) error {
	if c, ok := s.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// Clear removes every backend's file from dir and returns the paths removed.
func Clear(dir string) ([]string, error) {
	var removed []string
	for _, name := range []string{JSONFile, SQLiteFile} {
		path := filepath.Join(dir, name)
		err := os.Remove(path)
		switch {
		case err == nil:
			removed = append(removed, path)
		case errors.Is(err, os.ErrNotExist):
		default:
			return removed, fmt.Errorf("removing %s: %w", path, err)
		}
	}
	return removed, nil
}

// Nop never hits and discards writes.
type Nop struct{}

func (Nop) Get(string) (json.RawMessage, bool) { return nil, false }
func (Nop) Put(string, any) error              { return nil }
