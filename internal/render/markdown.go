package render

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/inful/mdfp"
	"gopkg.in/yaml.v3"

	"github.com/jorge-barreto/code2tutorial/internal/tutorial"
)

// ManifestFile lists every written page with its content fingerprint.
const ManifestFile = "manifest.yaml"

// Manifest is the markdown output's table of contents.
type Manifest struct {
	Project string          `yaml:"project"`
	Files   []ManifestEntry `yaml:"files"`
}

type ManifestEntry struct {
	Path        string `yaml:"path"`
	Title       string `yaml:"title,omitempty"`
	Fingerprint string `yaml:"fingerprint"`
}

// Markdown writes index.md and one file per chapter to <OutDir>/markdown.
type Markdown struct {
	OutDir string
	Logger *slog.Logger
}

func (m *Markdown) Dir() string { return filepath.Join(m.OutDir, FormatMarkdown) }

func (m *Markdown) Render(t tutorial.Tutorial, project string) error {
	if err := validate(t, project); err != nil {
		return err
	}
	dir := m.Dir()
	if err := resetDir(dir); err != nil {
		return err
	}
	log := orNop(m.Logger)

	manifest := Manifest{Project: project}
	if err := writeFile(log, dir, "index.md", []byte(t.Index)); err != nil {
		return err
	}
	manifest.Files = append(manifest.Files, ManifestEntry{Path: "index.md", Fingerprint: fingerprint(t.Index)})

	for _, ch := range t.Chapters {
		if ch.Content == "" {
			log.Warn("skipping chapter with no content", "file", ch.Filename)
			continue
		}
		if err := writeFile(log, dir, ch.Filename, []byte(ch.Content)); err != nil {
			return err
		}
		manifest.Files = append(manifest.Files, ManifestEntry{
			Path:        ch.Filename,
			Title:       ch.Title,
			Fingerprint: fingerprint(ch.Content),
		})
	}

	data, err := yaml.Marshal(manifest)
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	return writeFile(log, dir, ManifestFile, data)
}

func fingerprint(body string) string {
	return mdfp.CalculateFingerprintFromParts("", body)
}
