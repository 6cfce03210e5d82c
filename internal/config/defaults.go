package config

import "github.com/jorge-barreto/code2tutorial/internal/llm"

const (
	DefaultMaxTokens       = 8000
	DefaultRetryAttempts   = 3
	DefaultRetryDelayMS    = 1000
	DefaultOutputFormat    = "html"
	DefaultCacheBackend    = "json"
	DefaultMaxAbstractions = 25
	DefaultMaxFileSize     = 100000
)

// Default returns the configuration written on first run.
func Default() *Config {
	return &Config{
		LLMProvider:     llm.Gemini,
		APIKey:          "GEMINI_API_KEY",
		Model:           llm.DefaultModel(llm.Gemini),
		MaxTokens:       DefaultMaxTokens,
		Retry:           Retry{Attempts: DefaultRetryAttempts, Delay: DefaultRetryDelayMS},
		OutputFormat:    DefaultOutputFormat,
		UseCache:        true,
		CacheBackend:    DefaultCacheBackend,
		MaxAbstractions: DefaultMaxAbstractions,
		MaxFileSize:     DefaultMaxFileSize,
		IncludePatterns: append([]string(nil), defaultInclude...),
		ExcludePatterns: append([]string(nil), defaultExclude...),
	}
}

var defaultInclude = []string{
	"**/*.js", "**/*.jsx", "**/*.ts", "**/*.tsx", "**/*.py", "**/*.java",
	"**/*.c", "**/*.cpp", "**/*.h", "**/*.hpp", "**/*.cs", "**/*.go",
	"**/*.rs", "**/*.swift", "**/*.kt", "**/*.php", "**/*.rb", "**/*.dart",
	"**/*.scala", "**/*.hs", "**/*.ex", "**/*.exs", "**/*.erl", "**/*.ml",
	"**/*.m", "**/*.jl", "**/*.lua", "**/*.pl", "**/*.r", "**/*.nim",
	"**/*.zig", "**/*.v", "**/*.asm", "**/*.ahk",
}

var defaultExclude = []string{
	// version control and dependencies
	".git", ".svn", ".hg", ".bzr", "node_modules", "vendor", "packages",
	"bower_components", "jspm_packages",
	// build output
	"dist", "build", "target", "bin", "obj", ".next", ".nuxt", ".output", "public/build",
	// editors and OS litter
	".vscode", ".idea", ".vs", "*.swp", "*.swo", "*~", ".DS_Store", "Thumbs.db",
	"desktop.ini", ".Trashes",
	// logs and caches
	"*.log", "logs", "log", "npm-debug.log*", "yarn-debug.log*", "yarn-error.log*",
	".cache", "__pycache__", ".pytest_cache", ".mypy_cache", ".tox", ".coverage",
	".nyc_output", "coverage", ".eslintcache", ".stylelintcache", ".sass-cache",
	"tmp", "temp", ".tmp", ".temp",
	// archives and backups
	"*.zip", "*.tar.gz", "*.tar.bz2", "*.tar", "*.rar", "*.7z", "*.bak", "*.backup",
	// secrets and CI
	".env", ".env.local", ".env.*", ".github/workflows", ".gitlab-ci.yml",
	".travis.yml", "Jenkinsfile", "Dockerfile.*",
	// tests
	"tests", "test", "__tests__", "*.test.*", "*cest*", "*.spec.*", "e2e", "*.e2e.*",
	".code2tutorial",
}
