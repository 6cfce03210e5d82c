package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jorge-barreto/code2tutorial/internal/cache"
	"github.com/jorge-barreto/code2tutorial/internal/llm"
	"github.com/jorge-barreto/code2tutorial/internal/render"
)

var cacheBackends = []string{cache.BackendJSON, cache.BackendSQLite}

// Validate checks enums and numeric limits. Messages name the offending key.
func Validate(cfg *Config) error {
	if err := oneOf("llmProvider", cfg.LLMProvider, llm.Names()); err != nil {
		return err
	}
	if err := oneOf("outputFormat", cfg.OutputFormat, render.Formats); err != nil {
		return err
	}
	if err := oneOf("cacheBackend", cfg.CacheBackend, cacheBackends); err != nil {
		return err
	}
	if cfg.MaxFileSize <= 0 {
		return fmt.Errorf("config: maxFileSize must be positive, got %d", cfg.MaxFileSize)
	}
	if cfg.MaxTokens <= 0 {
		return fmt.Errorf("config: maxTokens must be positive, got %d", cfg.MaxTokens)
	}
	if cfg.MaxAbstractions <= 0 {
		return fmt.Errorf("config: maxAbstractions must be positive, got %d", cfg.MaxAbstractions)
	}
	if cfg.Retry.Attempts <= 0 {
		return fmt.Errorf("config: retry.attempts must be positive, got %d", cfg.Retry.Attempts)
	}
	if cfg.Retry.Delay < 0 {
		return fmt.Errorf("config: retry.delay must be non-negative, got %d", cfg.Retry.Delay)
	}
	for _, p := range cfg.IncludePatterns {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("config: 'includePatterns' entries must be non-empty")
		}
	}
	for _, p := range cfg.ExcludePatterns {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("config: 'excludePatterns' entries must be non-empty")
		}
	}
	return nil
}

func oneOf(key, value string, allowed []string) error {
	if slices.Contains(allowed, value) {
		return nil
	}
	return fmt.Errorf("config: invalid %s %q: must be one of %s", key, value, strings.Join(allowed, ", "))
}
