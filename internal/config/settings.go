package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jorge-barreto/code2tutorial/internal/crawl"
	"github.com/jorge-barreto/code2tutorial/internal/llm"
	"github.com/jorge-barreto/code2tutorial/internal/tutorial"
)

// Overrides are the command-line values that take precedence over the file.
// Zero values mean "not given".
type Overrides struct {
	Dir             string
	Name            string
	Output          string
	Include         []string
	Exclude         []string
	MaxSize         int64
	MaxAbstractions int
	Provider        string
	Format          string
	// Cache is ANDed with useCache; false disables caching for the run.
	Cache bool
}

// Settings merges the overrides into cfg and resolves the credential. The
// source directory must exist.
func Settings(cfg *Config, o Overrides, lookup func(string) (string, bool)) (tutorial.Settings, error) {
	merged := *cfg
	if len(o.Include) > 0 {
		merged.IncludePatterns = o.Include
	}
	if len(o.Exclude) > 0 {
		merged.ExcludePatterns = o.Exclude
	}
	if o.MaxSize != 0 {
		merged.MaxFileSize = o.MaxSize
	}
	if o.MaxAbstractions != 0 {
		merged.MaxAbstractions = o.MaxAbstractions
	}
	if o.Format != "" {
		merged.OutputFormat = o.Format
	}
	if o.Provider != "" && o.Provider != cfg.LLMProvider {
		merged.LLMProvider = o.Provider
		merged.Model = llm.DefaultModel(o.Provider)
	}
	if merged.Model == "" {
		merged.Model = llm.DefaultModel(merged.LLMProvider)
	}
	if err := Validate(&merged); err != nil {
		return tutorial.Settings{}, err
	}

	dir := o.Dir
	if dir == "" {
		dir = "."
	}
	root, err := filepath.Abs(dir)
	if err != nil {
		return tutorial.Settings{}, fmt.Errorf("config: resolving %s: %w", dir, err)
	}
	info, err := os.Stat(root)
	switch {
	case err != nil:
		return tutorial.Settings{}, fmt.Errorf("config: %w: %s", crawl.ErrDirNotFound, root)
	case !info.IsDir():
		return tutorial.Settings{}, fmt.Errorf("config: %w: %s", crawl.ErrNotDirectory, root)
	}

	name := o.Name
	if name == "" {
		name = filepath.Base(root)
	}
	output := o.Output
	if output == "" {
		output = "output"
	}

	return tutorial.Settings{
		ProjectName:     tutorial.Capitalize(name),
		RootDir:         root,
		OutputDir:       output,
		OutputFormat:    merged.OutputFormat,
		IncludePatterns: merged.IncludePatterns,
		ExcludePatterns: merged.ExcludePatterns,
		MaxFileSize:     merged.MaxFileSize,
		Provider:        merged.LLMProvider,
		Model:           merged.Model,
		APIKey:          ResolveAPIKey(merged.APIKey, lookup),
		MaxTokens:       merged.MaxTokens,
		RetryAttempts:   merged.Retry.Attempts,
		RetryDelay:      time.Duration(merged.Retry.Delay) * time.Millisecond,
		UseCache:        o.Cache && merged.UseCache,
		CacheBackend:    merged.CacheBackend,
		MaxAbstractions: merged.MaxAbstractions,
	}, nil
}
