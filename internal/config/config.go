// Package config loads the run configuration from
// .code2tutorial/config.yaml and applies command-line overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/jorge-barreto/code2tutorial/internal/state"
)

// FileName is the config file inside the state directory.
const FileName = "config.yaml"

type Retry struct {
	Attempts int `yaml:"attempts"`
	// Delay is the initial backoff in milliseconds.
	Delay int `yaml:"delay"`
}

type Config struct {
	LLMProvider     string   `yaml:"llmProvider"`
	APIKey          string   `yaml:"apiKey"`
	Model           string   `yaml:"model"`
	MaxTokens       int      `yaml:"maxTokens"`
	Retry           Retry    `yaml:"retry"`
	OutputFormat    string   `yaml:"outputFormat"`
	UseCache        bool     `yaml:"useCache"`
	CacheBackend    string   `yaml:"cacheBackend"`
	MaxAbstractions int      `yaml:"maxAbstractions"`
	MaxFileSize     int64    `yaml:"maxFileSize"`
	IncludePatterns []string `yaml:"includePatterns"`
	ExcludePatterns []string `yaml:"excludePatterns"`
}

// Path returns the config file location for a working directory.
func Path(workDir string) string {
	return filepath.Join(state.Dir(workDir), FileName)
}

// Load reads the YAML file at path over the defaults and validates the
// result. Keys missing from the file keep their default values. A missing
// file yields an error satisfying errors.Is(err, os.ErrNotExist).
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrInit loads the config for workDir, writing the defaults first when
// no file exists yet. created reports whether the file was just written.
func LoadOrInit(workDir string) (cfg *Config, created bool, err error) {
	path := Path(workDir)
	cfg, err = Load(path)
	if err == nil {
		return cfg, false, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, false, err
	}
	cfg = Default()
	if err := Save(path, cfg); err != nil {
		return nil, false, err
	}
	return cfg, true, nil
}

const header = `# code2tutorial configuration.
# apiKey is the name of an environment variable holding the key, a ${VAR}
# template, or the key itself. retry.delay is in milliseconds.
`

// Save writes cfg as YAML, creating the parent directory.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	data = append([]byte(header), data...)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return state.WriteFileAtomic(path, data, 0644)
}
