package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// EnvFiles are tried in order; the first one found is loaded.
var EnvFiles = []string{".env", ".env.local"}

// LoadEnv loads the first env file present in dir. Variables already set in
// the process environment are not overwritten. It returns the loaded path,
// or "" when there was none.
func LoadEnv(dir string) (string, error) {
	for _, name := range EnvFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return "", err
		}
		return path, nil
	}
	return "", nil
}

// ResolveAPIKey turns the configured apiKey into the credential. A value
// containing "$" is expanded (${VAR} or $VAR); a bare name of a set
// environment variable is replaced by its value; anything else is used as
// given.
func ResolveAPIKey(ref string, lookup func(string) (string, bool)) string {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if strings.Contains(ref, "$") {
		return os.Expand(ref, func(key string) string {
			v, _ := lookup(key)
			return v
		})
	}
	if v, ok := lookup(ref); ok && v != "" {
		return v
	}
	return ref
}

// LooksLikeEnvName reports whether an unresolved apiKey is probably the
// name of an unset variable rather than a literal key.
func LooksLikeEnvName(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if !(c == '_' || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')) {
			return false
		}
	}
	return true
}
