// Package doctor checks that a working directory is ready for a run and
// reports on the last run.
package doctor

import (
	"errors"
	"fmt"
	"os"

	"github.com/jorge-barreto/code2tutorial/internal/cache"
	"github.com/jorge-barreto/code2tutorial/internal/config"
	"github.com/jorge-barreto/code2tutorial/internal/logging"
	"github.com/jorge-barreto/code2tutorial/internal/render"
	"github.com/jorge-barreto/code2tutorial/internal/state"
	"github.com/jorge-barreto/code2tutorial/internal/ux"
)

// Level grades a single check.
type Level int

const (
	Pass Level = iota
	Warn
	Fail
)

type Check struct {
	Name   string
	Level  Level
	Detail string
}

// Env holds the lookups the checks use. Nil fields fall back to the
// process environment and PATH.
type Env struct {
	WorkDir  string
	Lookup   func(string) (string, bool)
	LookPath func(string) (string, error)
}

// Checks runs every check against env.WorkDir. A format override ("" for
// none) replaces the configured output format for the browser check.
func Checks(env Env, format string) []Check {
	if env.Lookup == nil {
		env.Lookup = os.LookupEnv
	}
	var checks []Check

	cfg, c := checkConfig(env.WorkDir)
	checks = append(checks, c)
	if format == "" {
		format = cfg.OutputFormat
	}

	checks = append(checks, checkCredential(cfg, env.Lookup))
	checks = append(checks, checkCache(env.WorkDir, cfg))
	if format == render.FormatPDF {
		checks = append(checks, checkBrowser(env.LookPath))
	}
	checks = append(checks, checkLastRun(env.WorkDir))
	return checks
}

// Run prints the checks and fails when any of them failed.
func Run(env Env, format string) error {
	checks := Checks(env, format)
	fmt.Fprintf(ux.Out, "\n%s%s══ Doctor ══%s\n\n", ux.Bold, ux.Cyan, ux.Reset)
	failed := 0
	for _, c := range checks {
		switch c.Level {
		case Pass:
			fmt.Fprintf(ux.Out, "  %s✓%s %s: %s\n", ux.Green, ux.Reset, c.Name, c.Detail)
		case Warn:
			fmt.Fprintf(ux.Out, "  %s⚠%s %s: %s\n", ux.Yellow, ux.Reset, c.Name, c.Detail)
		case Fail:
			failed++
			fmt.Fprintf(ux.Out, "  %s✗%s %s: %s\n", ux.Red, ux.Reset, c.Name, c.Detail)
		}
	}
	fmt.Fprintln(ux.Out)
	if failed > 0 {
		return fmt.Errorf("doctor: %d check(s) failed", failed)
	}
	return nil
}

func checkConfig(workDir string) (*config.Config, Check) {
	path := config.Path(workDir)
	cfg, err := config.Load(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return config.Default(), Check{"config", Warn, fmt.Sprintf("%s not found; defaults will be written on the first run", path)}
	case err != nil:
		return config.Default(), Check{"config", Fail, err.Error()}
	}
	return cfg, Check{"config", Pass, fmt.Sprintf("%s (%s, %s, %s output)", path, cfg.LLMProvider, cfg.Model, cfg.OutputFormat)}
}

func checkCredential(cfg *config.Config, lookup func(string) (string, bool)) Check {
	key := config.ResolveAPIKey(cfg.APIKey, lookup)
	switch {
	case key == "":
		return Check{"credential", Fail, "apiKey is empty"}
	case key == cfg.APIKey && config.LooksLikeEnvName(key):
		return Check{"credential", Fail, fmt.Sprintf("environment variable %s is not set", key)}
	}
	return Check{"credential", Pass, fmt.Sprintf("%s key %s", cfg.LLMProvider, logging.RedactValue(key))}
}

func checkCache(workDir string, cfg *config.Config) Check {
	if !cfg.UseCache {
		return Check{"cache", Pass, "disabled"}
	}
	store, err := cache.Open(state.Dir(workDir), cfg.CacheBackend, true)
	if err != nil {
		return Check{"cache", Fail, err.Error()}
	}
	defer cache.Close(store)
	if _, ok := store.Get(""); ok {
		return Check{"cache", Warn, "cache holds an entry for an empty prompt"}
	}
	return Check{"cache", Pass, fmt.Sprintf("%s backend readable", cfg.CacheBackend)}
}

func checkBrowser(lookPath func(string) (string, error)) Check {
	path, err := render.FindBrowser(lookPath)
	if err != nil {
		return Check{"pdf browser", Fail, err.Error()}
	}
	return Check{"pdf browser", Pass, path}
}

func checkLastRun(workDir string) Check {
	st, err := state.Load(state.Dir(workDir))
	switch {
	case err != nil:
		return Check{"last run", Warn, err.Error()}
	case st.RunID == "":
		return Check{"last run", Pass, "no runs yet"}
	case st.Status == state.StatusFailed:
		return Check{"last run", Warn, fmt.Sprintf("%s failed at stage %d (%s): %s",
			st.Project, st.StageIndex+1, st.Stage, logging.RedactText(st.Error))}
	case st.Status == state.StatusInterrupted:
		return Check{"last run", Warn, fmt.Sprintf("%s was interrupted at stage %d (%s)", st.Project, st.StageIndex+1, st.Stage)}
	}
	return Check{"last run", Pass, fmt.Sprintf("%s %s", st.Project, st.Status)}
}
