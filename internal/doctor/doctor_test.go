package doctor

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jorge-barreto/code2tutorial/internal/config"
	"github.com/jorge-barreto/code2tutorial/internal/state"
	"github.com/jorge-barreto/code2tutorial/internal/ux"
)

func env(dir string, vars map[string]string) Env {
	return Env{
		WorkDir: dir,
		Lookup: func(k string) (string, bool) {
			v, ok := vars[k]
			return v, ok
		},
		LookPath: func(string) (string, error) { return "", errors.New("not found") },
	}
}

func find(t *testing.T, checks []Check, name string) Check {
	t.Helper()
	for _, c := range checks {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("no %q check in %+v", name, checks)
	return Check{}
}

func TestChecks_FreshDirectory(t *testing.T) {
	dir := t.TempDir()
	checks := Checks(env(dir, map[string]string{"GEMINI_API_KEY": "g-secret-1234"}), "")

	if c := find(t, checks, "config"); c.Level != Warn || !strings.Contains(c.Detail, "not found") {
		t.Fatalf("config = %+v", c)
	}
	c := find(t, checks, "credential")
	if c.Level != Pass || strings.Contains(c.Detail, "secret") || !strings.Contains(c.Detail, "1234") {
		t.Fatalf("credential = %+v", c)
	}
	if c := find(t, checks, "last run"); c.Level != Pass || c.Detail != "no runs yet" {
		t.Fatalf("last run = %+v", c)
	}
	for _, c := range checks {
		if c.Name == "pdf browser" {
			t.Fatal("browser is only checked for pdf output")
		}
	}
}

func TestChecks_MissingCredential(t *testing.T) {
	checks := Checks(env(t.TempDir(), nil), "")
	c := find(t, checks, "credential")
	if c.Level != Fail || !strings.Contains(c.Detail, "GEMINI_API_KEY is not set") {
		t.Fatalf("credential = %+v", c)
	}
}

func TestChecks_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := config.Path(dir)
	os.MkdirAll(filepath.Dir(path), 0755)
	os.WriteFile(path, []byte("llmProvider: google\n"), 0644)

	c := find(t, Checks(env(dir, nil), ""), "config")
	if c.Level != Fail || !strings.Contains(c.Detail, `invalid llmProvider "google"`) {
		t.Fatalf("config = %+v", c)
	}
}

func TestChecks_PDFNeedsBrowser(t *testing.T) {
	e := env(t.TempDir(), map[string]string{"GEMINI_API_KEY": "k"})
	c := find(t, Checks(e, "pdf"), "pdf browser")
	if c.Level != Fail || !strings.Contains(c.Detail, "chromium") {
		t.Fatalf("browser = %+v", c)
	}

	e.LookPath = func(name string) (string, error) { return "/usr/bin/" + name, nil }
	c = find(t, Checks(e, "pdf"), "pdf browser")
	if c.Level != Pass || c.Detail != "/usr/bin/chromium" {
		t.Fatalf("browser = %+v", c)
	}
}

func TestChecks_FailedLastRun(t *testing.T) {
	dir := t.TempDir()
	sdir := state.Dir(dir)
	if err := state.EnsureDir(sdir); err != nil {
		t.Fatal(err)
	}
	st := state.NewRun("Demo")
	st.Enter(2, "analyze")
	st.Fail(errors.New("GET https://x/v1?key=abcdefgh12345678 failed"))
	if err := st.Save(sdir); err != nil {
		t.Fatal(err)
	}

	c := find(t, Checks(env(dir, nil), ""), "last run")
	if c.Level != Warn || !strings.Contains(c.Detail, "failed at stage 3 (analyze)") {
		t.Fatalf("last run = %+v", c)
	}
	if strings.Contains(c.Detail, "abcdefgh") {
		t.Fatalf("key not redacted: %s", c.Detail)
	}
}

func TestRun_ReportsFailures(t *testing.T) {
	var out bytes.Buffer
	old := ux.Out
	ux.Out = &out
	defer func() { ux.Out = old }()

	err := Run(env(t.TempDir(), nil), "")
	if err == nil || !strings.Contains(err.Error(), "1 check(s) failed") {
		t.Fatalf("got %v", err)
	}
	if !strings.Contains(out.String(), "✗") || !strings.Contains(out.String(), "credential") {
		t.Fatalf("output = %s", out.String())
	}
}
