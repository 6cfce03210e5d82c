package docs

var topics = []Topic{
	{
		Name:    "quickstart",
		Title:   "Quick Start",
		Summary: "Generating a first tutorial",
		Content: topicQuickstart,
	},
	{
		Name:    "config",
		Title:   "Configuration Reference",
		Summary: "Config file keys, defaults, and command-line overrides",
		Content: topicConfig,
	},
	{
		Name:    "providers",
		Title:   "Model Providers",
		Summary: "OpenAI, Gemini and Anthropic setup, credentials and retries",
		Content: topicProviders,
	},
	{
		Name:    "cache",
		Title:   "Response Cache",
		Summary: "How model responses are cached and how to clear them",
		Content: topicCache,
	},
	{
		Name:    "formats",
		Title:   "Output Formats",
		Summary: "Markdown, HTML and PDF output layout",
		Content: topicFormats,
	},
}

const topicQuickstart = `Quick Start
===========

1. Initialize the working directory:

    code2tutorial init

   This creates .code2tutorial/config.yaml with the defaults.

2. Pick a provider and credential in .code2tutorial/config.yaml, or keep
   the defaults and export GEMINI_API_KEY. A .env or .env.local file in
   the working directory is loaded too.

3. Check the setup:

    code2tutorial doctor

4. Preview what will run:

    code2tutorial --dir ./path/to/project --dry-run

5. Generate the tutorial:

    code2tutorial --dir ./path/to/project

   The run goes through six stages: fetch, identify, analyze, order,
   write and combine. The result is written to output/<format>/.

6. Inspect the last run:

    code2tutorial status
`

const topicConfig = `Configuration Reference
=======================

The config lives at .code2tutorial/config.yaml in the working directory.
It is written with the defaults on the first run when missing. Keys left
out of the file keep their defaults.

  llmProvider      openai | gemini | anthropic            (gemini)
  apiKey           env var name, ${VAR} template, or key  (GEMINI_API_KEY)
  model            provider model name                     (gemini-2.0-flash)
  maxTokens        completion token limit, > 0             (8000)
  retry.attempts   calls per prompt before giving up, > 0  (3)
  retry.delay      first backoff in milliseconds, >= 0     (1000)
  outputFormat     markdown | html | pdf                   (html)
  useCache         cache model responses                   (true)
  cacheBackend     json | sqlite                           (json)
  maxAbstractions  most abstractions to identify, > 0      (25)
  maxFileSize      largest file crawled in bytes, > 0      (100000)
  includePatterns  gitignore-style globs of files to read
  excludePatterns  gitignore-style globs of files and directories to skip

Command-line flags override the file:

  --dir, -d            source directory (default: current directory)
  --name, -n           project name (default: directory name)
  --output, -o         output root (default: output)
  --include, -i        include pattern, repeatable
  --exclude, -e        exclude pattern, repeatable
  --max-size, -s       maxFileSize
  --max-abstractions   maxAbstractions
  --llm-provider       llmProvider; the model falls back to the provider default
  --format             outputFormat
  --cache              set to false to bypass the cache for this run
  --verbose, -v        debug logging, including every prompt
  --log-file           also write JSON logs to this file
  --metrics-file       write Prometheus metrics in text format when the run ends
  --dry-run            print the stages and resolved settings, then exit
`

const topicProviders = `Model Providers
===============

openai      Chat Completions API. Default model gpt-4o-mini. Structured
            stages use JSON schema response formats.
gemini      generateContent API. Default model gemini-2.0-flash.
anthropic   Messages API. Default model claude-3-5-haiku-latest.

Gemini and Anthropic answers to the structured stages are read from the
fenced yaml (or json) block in the reply.

Credentials
-----------

apiKey names an environment variable (GEMINI_API_KEY), a template
(${OPENAI_KEY}), or holds the key itself. Keys never appear in logs;
errors that echo a key in a URL are masked to the last four characters.

Retries
-------

Each prompt is attempted retry.attempts times. Rate limits, server errors,
network failures and rejected credentials are retried with exponential
backoff starting at retry.delay (1s, 2s, 4s, ...). Malformed structured
output and out-of-range indices are never retried and fail the run.
`

const topicCache = `Response Cache
==============

With useCache enabled every successful model response is stored under the
exact prompt text. A rerun with identical prompts makes no model calls
for the stages that already succeeded. Any change to a prompt, even a
single character, misses.

  json     .code2tutorial/llm_cache.json, one JSON document (default)
  sqlite   .code2tutorial/llm_cache.db, one row per prompt

A cache that cannot be read is treated as empty; a failed write is logged
and the run continues.

Clear the cache:

    code2tutorial cache clear

Bypass it for one run:

    code2tutorial --cache=false
`

const topicFormats = `Output Formats
==============

Every format clears and recreates output/<format>/ before writing.

markdown
  index.md, one NN_name.md per chapter, and manifest.yaml listing each
  file with a content fingerprint.

html
  index.html and one NN_name.html per chapter. Pages have sidebar
  navigation and previous/next links. Mermaid diagrams render in the
  browser and links between chapters point at the .html pages.

pdf
  output/pdf/<Project>.pdf, printed from one combined document by a
  headless Chromium. Characters outside A-Z, a-z and 0-9 in the project
  name become underscores in the file name. One of chromium, chromium-browser or google-chrome
  must be on PATH; 'code2tutorial doctor' checks this.
`
