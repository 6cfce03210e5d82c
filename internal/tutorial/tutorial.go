package tutorial

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// ErrContract marks a model response that violates the expected output
// contract. Such errors are fatal and never retried.
var ErrContract = errors.New("contract violation")

// Contractf returns an error wrapping ErrContract.
func Contractf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrContract, fmt.Sprintf(format, args...))
}

// Attribution closes the index page and every chapter.
const Attribution = "Generated by [Code2Tutorial](https://github.com/sarfraznawaz2005/code2tut)"

// FileEntry is one crawled source file. Its position in the inventory is the
// only identifier later stages use.
type FileEntry struct {
	Path    string
	Content string
}

type Abstraction struct {
	Name        string
	Description string
	Files       []int
}

type Relationship struct {
	From  int
	To    int
	Label string
}

type RelationshipGraph struct {
	Summary string
	Edges   []Relationship
}

// ChapterRef points at a neighbouring chapter of a batch item.
type ChapterRef struct {
	Number   int
	Name     string
	Filename string
}

type Chapter struct {
	AbstractionIndex int
	Number           int
	Title            string
	Filename         string
	Content          string
}

// Tutorial is the combined output handed to the renderers.
type Tutorial struct {
	Index    string
	Chapters []Chapter
}

// Settings is the run configuration. It is fixed for the run's duration.
type Settings struct {
	ProjectName     string
	RootDir         string
	OutputDir       string
	OutputFormat    string
	IncludePatterns []string
	ExcludePatterns []string
	MaxFileSize     int64
	Provider        string
	Model           string
	APIKey          string
	MaxTokens       int
	RetryAttempts   int
	RetryDelay      time.Duration
	UseCache        bool
	CacheBackend    string
	MaxAbstractions int
}

// Context is the single mutable record threaded through the stages. Each
// field group below Settings is written by exactly one stage's Commit.
type Context struct {
	Settings Settings

	Files        []FileEntry       // fetch
	Abstractions []Abstraction     // identify
	Graph        RelationshipGraph // analyze
	Order        []int             // order
	Chapters     []Chapter         // write
	Tutorial     Tutorial          // combine
}

// New returns a Context for one run.
func New(s Settings) *Context {
	return &Context{Settings: s}
}

// IndexedContent is a file's content labelled as "idx # path".
type IndexedContent struct {
	Label   string
	Path    string
	Content string
}

// ContentFor returns the content of the given file indices in the order
// requested. Out-of-range indices are skipped.
func (c *Context) ContentFor(indices []int) []IndexedContent {
	var out []IndexedContent
	for _, idx := range indices {
		if idx < 0 || idx >= len(c.Files) {
			continue
		}
		f := c.Files[idx]
		out = append(out, IndexedContent{
			Label:   fmt.Sprintf("%d # %s", idx, f.Path),
			Path:    f.Path,
			Content: f.Content,
		})
	}
	return out
}

// Capitalize upper-cases the first rune of s.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// SafeName replaces every rune outside [A-Za-z0-9] with an underscore.
func SafeName(name string) string {
	var b strings.Builder
	for _, c := range name {
		if ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') {
			b.WriteRune(c)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

// ChapterFilename derives the file name for chapter n from the sanitized,
// lower-cased name.
func ChapterFilename(n int, name string) string {
	return fmt.Sprintf("%02d_%s.md", n, strings.ToLower(SafeName(Capitalize(name))))
}
