package scaffold

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jorge-barreto/code2tutorial/internal/config"
	"github.com/jorge-barreto/code2tutorial/internal/ux"
)

func quiet(t *testing.T) {
	t.Helper()
	old := ux.Out
	ux.Out = &bytes.Buffer{}
	t.Cleanup(func() { ux.Out = old })
}

func TestInit_CreatesFiles(t *testing.T) {
	quiet(t)
	dir := t.TempDir()
	if err := Init(dir, false); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	for _, path := range []string{
		filepath.Join(".code2tutorial", "config.yaml"),
		filepath.Join(".code2tutorial", ".gitignore"),
	} {
		info, err := os.Stat(filepath.Join(dir, path))
		if err != nil {
			t.Fatalf("%s not created: %v", path, err)
		}
		if info.Size() == 0 {
			t.Fatalf("%s is empty", path)
		}
	}
	ignore, _ := os.ReadFile(filepath.Join(dir, ".code2tutorial", ".gitignore"))
	if !strings.Contains(string(ignore), "llm_cache.json") {
		t.Fatalf(".gitignore = %q", ignore)
	}
}

func TestInit_GeneratedConfigIsValid(t *testing.T) {
	quiet(t)
	dir := t.TempDir()
	if err := Init(dir, false); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	cfg, err := config.Load(config.Path(dir))
	if err != nil {
		t.Fatalf("config.Load failed on generated config: %v", err)
	}
	if cfg.LLMProvider != "gemini" || cfg.OutputFormat != "html" || !cfg.UseCache {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	data, _ := os.ReadFile(config.Path(dir))
	if !strings.HasPrefix(string(data), "# code2tutorial configuration.") {
		t.Fatal("config should start with the explanatory header")
	}
}

func TestInit_ExistingConfig(t *testing.T) {
	quiet(t)
	dir := t.TempDir()
	path := config.Path(dir)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("llmProvider: openai\n"), 0644); err != nil {
		t.Fatal(err)
	}

	err := Init(dir, false)
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected 'already exists', got %v", err)
	}

	if err := Init(dir, true); err != nil {
		t.Fatalf("forced Init failed: %v", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LLMProvider != "gemini" {
		t.Fatalf("forced Init should rewrite defaults, got %s", cfg.LLMProvider)
	}
}
