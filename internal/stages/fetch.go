package stages

import (
	"context"
	"log/slog"
	"sort"

	"github.com/jorge-barreto/code2tutorial/internal/crawl"
	"github.com/jorge-barreto/code2tutorial/internal/tutorial"
	"github.com/jorge-barreto/code2tutorial/internal/ux"
)

type FetchInput struct {
	Root    string
	Include []string
	Exclude []string
	MaxSize int64
}

// Fetch crawls the source directory into the file inventory.
type Fetch struct {
	// Crawl defaults to crawl.Crawl.
	Crawl  func(root string, include, exclude []string, maxSize int64) (map[string]string, error)
	Logger *slog.Logger
}

func (f *Fetch) Name() string        { return "fetch" }
func (f *Fetch) Description() string { return "Crawl source files" }

func (f *Fetch) Prepare(tc *tutorial.Context) (FetchInput, error) {
	s := tc.Settings
	return FetchInput{
		Root:    s.RootDir,
		Include: s.IncludePatterns,
		Exclude: s.ExcludePatterns,
		MaxSize: s.MaxFileSize,
	}, nil
}

func (f *Fetch) Execute(_ context.Context, in FetchInput) ([]tutorial.FileEntry, error) {
	crawlFn := f.Crawl
	if crawlFn == nil {
		crawlFn = crawl.Crawl
	}
	files, err := crawlFn(in.Root, in.Include, in.Exclude, in.MaxSize)
	if err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	out := make([]tutorial.FileEntry, len(paths))
	for i, p := range paths {
		out[i] = tutorial.FileEntry{Path: p, Content: files[p]}
	}
	orNop(f.Logger).Info("Fetched files", "count", len(out))
	if len(out) == 0 {
		ux.Warn("no files matched the include patterns under %s", in.Root)
	}
	return out, nil
}

func (f *Fetch) Commit(tc *tutorial.Context, _ FetchInput, out []tutorial.FileEntry) {
	tc.Files = out
}
