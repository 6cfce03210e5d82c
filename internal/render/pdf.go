package render

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jorge-barreto/code2tutorial/internal/tutorial"
)

// Browsers are the headless Chromium binaries tried, in order.
var Browsers = []string{"chromium", "chromium-browser", "google-chrome"}

// PDF prints the whole tutorial as one document, <OutDir>/pdf/<Project>.pdf.
type PDF struct {
	OutDir string
	Logger *slog.Logger
	// LookPath and Exec default to exec.LookPath and running the command.
	LookPath func(file string) (string, error)
	Exec     func(name string, args ...string) error
}

func (p *PDF) Dir() string { return filepath.Join(p.OutDir, FormatPDF) }

// FindBrowser returns the first available browser from Browsers.
func FindBrowser(lookPath func(string) (string, error)) (string, error) {
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	for _, b := range Browsers {
		if path, err := lookPath(b); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("render: no headless browser found in PATH (tried %s)", strings.Join(Browsers, ", "))
}

func (p *PDF) Render(t tutorial.Tutorial, project string) error {
	if err := validate(t, project); err != nil {
		return err
	}
	browser, err := FindBrowser(p.LookPath)
	if err != nil {
		return err
	}
	dir := p.Dir()
	if err := resetDir(dir); err != nil {
		return err
	}
	log := orNop(p.Logger)

	doc, err := printDocument(t, tutorial.Capitalize(project))
	if err != nil {
		return err
	}
	tmp, err := os.MkdirTemp("", "code2tutorial-pdf-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmp)
	src := filepath.Join(tmp, "tutorial.html")
	if err := os.WriteFile(src, doc, 0644); err != nil {
		return err
	}

	out := filepath.Join(dir, pdfName(project))
	run := p.Exec
	if run == nil {
		run = runCommand
	}
	args := []string{
		"--headless",
		"--disable-gpu",
		"--no-sandbox",
		"--no-pdf-header-footer",
		"--virtual-time-budget=10000",
		"--print-to-pdf=" + out,
		"file://" + filepath.ToSlash(src),
	}
	log.Debug("printing pdf", "browser", browser, "source", src)
	if err := run(browser, args...); err != nil {
		return fmt.Errorf("render: printing pdf: %w", err)
	}
	log.Info("Wrote file", "path", out)
	return nil
}

// pdfName keeps the output file inside the pdf directory whatever the
// project name contains.
func pdfName(project string) string {
	name := tutorial.SafeName(project)
	if strings.Trim(name, "_") == "" {
		name = "tutorial"
	}
	return name + ".pdf"
}

func runCommand(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return err
	}
	msg := strings.TrimSpace(stderr.String())
	if msg == "" {
		return fmt.Errorf("%s exited with status %d", filepath.Base(name), exitErr.ExitCode())
	}
	return fmt.Errorf("%s exited with status %d: %s", filepath.Base(name), exitErr.ExitCode(), msg)
}

type printChapter struct {
	ID    string
	Title string
	Body  template.HTML
}

// printDocument lays out the index followed by every chapter, each on a new
// page, with a contents list built from the chapters' first headings.
func printDocument(t tutorial.Tutorial, project string) ([]byte, error) {
	index, err := toHTML(t.Index)
	if err != nil {
		return nil, fmt.Errorf("index: %w", err)
	}
	var chapters []printChapter
	for _, ch := range t.Chapters {
		if ch.Content == "" {
			continue
		}
		body, err := toHTML(ch.Content)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ch.Filename, err)
		}
		title := firstHeading(body)
		if title == "" {
			title = navTitle(ch.Filename)
		}
		chapters = append(chapters, printChapter{
			ID:    strings.TrimSuffix(ch.Filename, ".md"),
			Title: title,
			Body:  template.HTML(retarget(body)),
		})
	}

	var buf bytes.Buffer
	err = printTemplate.Execute(&buf, struct {
		Project  string
		Index    template.HTML
		Chapters []printChapter
	}{project, template.HTML(retarget(index)), chapters})
	if err != nil {
		return nil, fmt.Errorf("rendering pdf document: %w", err)
	}
	return buf.Bytes(), nil
}

var chapterHref = regexp.MustCompile(`href="(\d+_[^"#/]*)\.html"`)

// retarget points chapter page links at in-document anchors.
func retarget(fragment string) string {
	return chapterHref.ReplaceAllString(fragment, `href="#$1"`)
}

var printTemplate = template.Must(template.New("print").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Tutorial: {{.Project}}</title>
<style>
body { font-family: system-ui, sans-serif; line-height: 1.55; color: #222; }
section.chapter { page-break-before: always; }
h1 { margin-top: 2.5rem; }
pre { background: #f6f8fa; padding: .75rem; white-space: pre-wrap; word-break: break-word; }
.mermaid { page-break-inside: avoid; text-align: center; margin: 1.5rem 0; }
.toc li { margin: .25rem 0; }
</style>
<script src="https://cdn.jsdelivr.net/npm/mermaid@10.5.0/dist/mermaid.min.js"></script>
</head>
<body>
<section class="index">
{{.Index}}
<h2>Contents</h2>
<ol class="toc">
{{- range .Chapters}}
<li><a href="#{{.ID}}">{{.Title}}</a></li>
{{- end}}
</ol>
</section>
{{- range .Chapters}}
<section class="chapter" id="{{.ID}}">
{{.Body}}
</section>
{{- end}}
<script>mermaid.initialize({ startOnLoad: true });</script>
</body>
</html>
`))
