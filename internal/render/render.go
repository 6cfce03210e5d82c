// Package render writes a combined tutorial to disk as markdown, a static
// HTML site, or a single PDF.
package render

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jorge-barreto/code2tutorial/internal/logging"
	"github.com/jorge-barreto/code2tutorial/internal/tutorial"
)

// Output formats.
const (
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
	FormatPDF      = "pdf"
)

// Formats lists the supported output formats.
var Formats = []string{FormatMarkdown, FormatHTML, FormatPDF}

// ErrInvalidInput is returned when the tutorial or project name is unusable.
var ErrInvalidInput = errors.New("render: invalid input")

// Renderer writes a tutorial under its own subdirectory of the output root.
type Renderer interface {
	Render(t tutorial.Tutorial, project string) error
}

// New returns the renderer for format, writing below outDir.
func New(format, outDir string, log *slog.Logger) (Renderer, error) {
	if log == nil {
		log = logging.Nop()
	}
	switch format {
	case FormatMarkdown:
		return &Markdown{OutDir: outDir, Logger: log}, nil
	case FormatHTML:
		return &HTML{OutDir: outDir, Logger: log}, nil
	case FormatPDF:
		return &PDF{OutDir: outDir, Logger: log}, nil
	}
	return nil, fmt.Errorf("render: unknown format %q", format)
}

func validate(t tutorial.Tutorial, project string) error {
	switch {
	case strings.TrimSpace(t.Index) == "":
		return fmt.Errorf("%w: index content is empty", ErrInvalidInput)
	case t.Chapters == nil:
		return fmt.Errorf("%w: chapters are missing", ErrInvalidInput)
	case strings.TrimSpace(project) == "":
		return fmt.Errorf("%w: project name is empty", ErrInvalidInput)
	}
	return nil
}

// resetDir empties dir so no stale files from an earlier run survive.
func resetDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("clearing %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	return nil
}

func writeFile(log *slog.Logger, dir, name string, data []byte) error {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	log.Info("Wrote file", "path", path)
	return nil
}

func orNop(l *slog.Logger) *slog.Logger {
	if l == nil {
		return logging.Nop()
	}
	return l
}
