package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jorge-barreto/code2tutorial/internal/state"
)

// JSONStore keeps every entry in one JSON object on disk. Each Get reads
// the whole document and each Put rewrites it. There is no locking; a
// single run is the only writer.
type JSONStore struct {
	path string
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) Path() string { return s.path }

func (s *JSONStore) Get(prompt string) (json.RawMessage, bool) {
	doc := s.load()
	v, ok := doc[prompt]
	return v, ok
}

func (s *JSONStore) Put(prompt string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}
	doc := s.load()
	doc[prompt] = raw
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding cache: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}
	if err := state.WriteFileAtomic(s.path, data, 0644); err != nil {
		return fmt.Errorf("writing cache: %w", err)
	}
	return nil
}

// load treats a missing or corrupt document as empty.
func (s *JSONStore) load() map[string]json.RawMessage {
	doc := map[string]json.RawMessage{}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return doc
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return map[string]json.RawMessage{}
	}
	return doc
}
