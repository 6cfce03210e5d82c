package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jorge-barreto/code2tutorial/internal/crawl"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := Path(dir)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func noEnv(string) (string, bool) { return "", false }

func TestLoad_MergesOverDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
llmProvider: openai
model: gpt-4o
retry:
  attempts: 5
useCache: false
includePatterns: ["**/*.go"]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LLMProvider != "openai" || cfg.Model != "gpt-4o" {
		t.Fatalf("provider/model = %s/%s", cfg.LLMProvider, cfg.Model)
	}
	if cfg.Retry.Attempts != 5 || cfg.Retry.Delay != DefaultRetryDelayMS {
		t.Fatalf("retry = %+v", cfg.Retry)
	}
	if cfg.UseCache {
		t.Fatal("useCache should be false")
	}
	if len(cfg.IncludePatterns) != 1 || cfg.MaxTokens != DefaultMaxTokens {
		t.Fatalf("cfg = %+v", cfg)
	}
	if len(cfg.ExcludePatterns) == 0 {
		t.Fatal("exclude patterns should keep their defaults")
	}
}

func TestLoad_Invalid(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "outputFormat: docx\n")
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "outputFormat") {
		t.Fatalf("got %v", err)
	}

	path = writeConfig(t, t.TempDir(), "retry: [1, 2\n")
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "config: parsing") {
		t.Fatalf("got %v", err)
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("got %v", err)
	}
}

func TestLoadOrInit(t *testing.T) {
	dir := t.TempDir()
	cfg, created, err := LoadOrInit(dir)
	if err != nil {
		t.Fatal(err)
	}
	if !created || cfg.LLMProvider != "gemini" {
		t.Fatalf("created=%v cfg=%+v", created, cfg)
	}
	if _, err := os.Stat(Path(dir)); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	again, created, err := LoadOrInit(dir)
	if err != nil {
		t.Fatal(err)
	}
	if created {
		t.Fatal("second call should load the existing file")
	}
	if again.MaxAbstractions != DefaultMaxAbstractions || len(again.IncludePatterns) != len(cfg.IncludePatterns) {
		t.Fatalf("round trip mismatch: %+v", again)
	}
}

func TestResolveAPIKey(t *testing.T) {
	env := map[string]string{"GEMINI_API_KEY": "g-123", "PREFIX": "sk"}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	tests := []struct{ ref, want string }{
		{"GEMINI_API_KEY", "g-123"},
		{"${PREFIX}-abc", "sk-abc"},
		{"$PREFIX", "sk"},
		{"literal-key", "literal-key"},
		{"OPENAI_API_KEY", "OPENAI_API_KEY"},
	}
	for _, tt := range tests {
		if got := ResolveAPIKey(tt.ref, lookup); got != tt.want {
			t.Errorf("ResolveAPIKey(%q) = %q, want %q", tt.ref, got, tt.want)
		}
	}
}

func TestLooksLikeEnvName(t *testing.T) {
	if !LooksLikeEnvName("OPENAI_API_KEY") {
		t.Fatal("expected env-like name")
	}
	if LooksLikeEnvName("sk-abc123") || LooksLikeEnvName("") {
		t.Fatal("literal keys are not env names")
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	if path, err := LoadEnv(dir); err != nil || path != "" {
		t.Fatalf("no env file: path=%q err=%v", path, err)
	}

	os.WriteFile(filepath.Join(dir, ".env.local"), []byte("C2T_TEST_KEY=from-file\n"), 0644)
	t.Setenv("C2T_TEST_KEY", "")
	os.Unsetenv("C2T_TEST_KEY")

	path, err := LoadEnv(dir)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != ".env.local" {
		t.Fatalf("path = %q", path)
	}
	if got := os.Getenv("C2T_TEST_KEY"); got != "from-file" {
		t.Fatalf("C2T_TEST_KEY = %q", got)
	}
}

func TestSettings_Overrides(t *testing.T) {
	src := t.TempDir()
	cfg := Default()
	s, err := Settings(cfg, Overrides{
		Dir:             src,
		Include:         []string{"*.py"},
		MaxSize:         500,
		MaxAbstractions: 4,
		Provider:        "openai",
		Format:          "markdown",
		Cache:           true,
	}, noEnv)
	if err != nil {
		t.Fatal(err)
	}
	if s.ProjectName != strings.ToUpper(filepath.Base(src)[:1])+filepath.Base(src)[1:] {
		t.Fatalf("project = %q", s.ProjectName)
	}
	if s.OutputDir != "output" || s.OutputFormat != "markdown" {
		t.Fatalf("output = %s (%s)", s.OutputDir, s.OutputFormat)
	}
	if s.Provider != "openai" || s.Model != "gpt-4o-mini" {
		t.Fatalf("provider/model = %s/%s", s.Provider, s.Model)
	}
	if s.MaxFileSize != 500 || s.MaxAbstractions != 4 || s.IncludePatterns[0] != "*.py" {
		t.Fatalf("settings = %+v", s)
	}
	if s.RetryDelay != time.Second || s.RetryAttempts != 3 {
		t.Fatalf("retry = %d x %s", s.RetryAttempts, s.RetryDelay)
	}
	if !s.UseCache || s.APIKey != "GEMINI_API_KEY" {
		t.Fatalf("cache=%v key=%q", s.UseCache, s.APIKey)
	}
}

func TestSettings_NameAndCache(t *testing.T) {
	cfg := Default()
	s, err := Settings(cfg, Overrides{Dir: t.TempDir(), Name: "widgets", Cache: false}, noEnv)
	if err != nil {
		t.Fatal(err)
	}
	if s.ProjectName != "Widgets" {
		t.Fatalf("project = %q", s.ProjectName)
	}
	if s.UseCache {
		t.Fatal("--cache=false must disable the cache")
	}

	cfg.UseCache = false
	s, _ = Settings(cfg, Overrides{Dir: t.TempDir(), Cache: true}, noEnv)
	if s.UseCache {
		t.Fatal("useCache: false must disable the cache")
	}
}

func TestSettings_BadDirectory(t *testing.T) {
	_, err := Settings(Default(), Overrides{Dir: filepath.Join(t.TempDir(), "missing")}, noEnv)
	if !errors.Is(err, crawl.ErrDirNotFound) {
		t.Fatalf("got %v", err)
	}

	file := filepath.Join(t.TempDir(), "f.txt")
	os.WriteFile(file, []byte("x"), 0644)
	_, err = Settings(Default(), Overrides{Dir: file}, noEnv)
	if !errors.Is(err, crawl.ErrNotDirectory) {
		t.Fatalf("got %v", err)
	}
}

func TestSettings_InvalidOverride(t *testing.T) {
	_, err := Settings(Default(), Overrides{Dir: t.TempDir(), Format: "docx"}, noEnv)
	if err == nil || !strings.Contains(err.Error(), "config: invalid outputFormat") {
		t.Fatalf("got %v", err)
	}
}
