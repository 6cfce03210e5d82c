package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_VerboseEnablesDebug(t *testing.T) {
	var quiet, loud bytes.Buffer
	New(&quiet, false).Debug("prompt", "len", 10)
	New(&loud, true).Debug("prompt", "len", 10)
	if quiet.Len() != 0 {
		t.Fatalf("debug should be suppressed: %q", quiet.String())
	}
	if !strings.Contains(loud.String(), "msg=prompt") {
		t.Fatalf("debug missing: %q", loud.String())
	}
}

func TestOpen_TeesToJSONFile(t *testing.T) {
	var console bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "run.jsonl")
	lg, err := Open(&console, false, path)
	if err != nil {
		t.Fatal(err)
	}
	lg.Info("Fetched files", "count", 3)
	lg.Debug("only in file")
	if err := lg.Close(); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(console.String(), "Fetched files") {
		t.Fatalf("console = %q", console.String())
	}
	if strings.Contains(console.String(), "only in file") {
		t.Fatal("debug record leaked to non-verbose console")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("file lines = %d: %q", len(lines), data)
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatal(err)
	}
	if rec["msg"] != "Fetched files" || rec["count"] != float64(3) {
		t.Fatalf("record = %v", rec)
	}
}

func TestRedaction(t *testing.T) {
	var buf bytes.Buffer
	lg := New(&buf, false)
	lg.Warn("call failed",
		"error", errors.New(`Post "https://x/v1beta/models/m:generateContent?key=supersecret1234": EOF`),
		"api_key", "sk-abcdefgh")
	out := buf.String()
	if strings.Contains(out, "supersecret") || strings.Contains(out, "sk-abcd") {
		t.Fatalf("secret leaked: %q", out)
	}
	if !strings.Contains(out, "key=****1234") || !strings.Contains(out, "****efgh") {
		t.Fatalf("unexpected redaction: %q", out)
	}
}

func TestRedactValue(t *testing.T) {
	tests := map[string]string{
		"":                   "",
		"abc":                "****",
		"Bearer sk-12345678": "Bearer ****5678",
	}
	for in, want := range tests {
		if got := RedactValue(in); got != want {
			t.Errorf("RedactValue(%q) = %q, want %q", in, got, want)
		}
	}
}
