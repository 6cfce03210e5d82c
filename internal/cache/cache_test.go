package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".code2tutorial", JSONFile)
	s := NewJSONStore(path)

	_, ok := s.Get("prompt")
	assert.False(t, ok)

	require.NoError(t, s.Put("prompt", "chapter text"))
	require.NoError(t, s.Put("other", []int{2, 0, 1}))

	raw, ok := s.Get("prompt")
	require.True(t, ok)
	var text string
	require.NoError(t, json.Unmarshal(raw, &text))
	assert.Equal(t, "chapter text", text)

	_, ok = s.Get("prompt ")
	assert.False(t, ok, "a one-character change must miss")

	// A fresh store on the same file sees both entries.
	reopened := NewJSONStore(path)
	raw, ok = reopened.Get("other")
	require.True(t, ok)
	assert.JSONEq(t, `[2,0,1]`, string(raw))
}

func TestJSONStore_CorruptDocumentIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), JSONFile)
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))

	s := NewJSONStore(path)
	_, ok := s.Get("anything")
	assert.False(t, ok)

	require.NoError(t, s.Put("k", "v"))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"k":"v"}`, string(data))
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	s, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer s.Close()

	_, ok := s.Get("p")
	assert.False(t, ok)

	require.NoError(t, s.Put("p", map[string]any{"summary": "s"}))
	require.NoError(t, s.Put("p", map[string]any{"summary": "t"}))

	raw, ok := s.Get("p")
	require.True(t, ok)
	assert.JSONEq(t, `{"summary":"t"}`, string(raw))
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir, BackendJSON, false)
	require.NoError(t, err)
	assert.IsType(t, Nop{}, s)

	s, err = Open(dir, "", true)
	require.NoError(t, err)
	assert.IsType(t, &JSONStore{}, s)

	s, err = Open(dir, BackendSQLite, true)
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)
	require.NoError(t, Close(s))

	_, err = Open(dir, "redis", true)
	assert.Error(t, err)
}

func TestClear(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, NewJSONStore(filepath.Join(dir, JSONFile)).Put("k", "v"))

	removed, err := Clear(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, JSONFile)}, removed)

	removed, err = Clear(dir)
	require.NoError(t, err)
	assert.Empty(t, removed)
}

func TestNop(t *testing.T) {
	var s Store = Nop{}
	require.NoError(t, s.Put("k", "v"))
	_, ok := s.Get("k")
	assert.False(t, ok)
}
