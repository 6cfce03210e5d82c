package render

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"path/filepath"

	"github.com/jorge-barreto/code2tutorial/internal/tutorial"
)

// HTML writes a static site to <OutDir>/html: index.html plus one page per
// chapter, each with sidebar navigation and previous/next links.
type HTML struct {
	OutDir string
	Logger *slog.Logger
}

type navLink struct {
	Href   string
	Title  string
	Active bool
}

type page struct {
	Title   string
	Project string
	Nav     []navLink
	Body    template.HTML
	Prev    navLink
	Next    navLink
}

func (h *HTML) Dir() string { return filepath.Join(h.OutDir, FormatHTML) }

func (h *HTML) Render(t tutorial.Tutorial, project string) error {
	if err := validate(t, project); err != nil {
		return err
	}
	dir := h.Dir()
	if err := resetDir(dir); err != nil {
		return err
	}
	log := orNop(h.Logger)
	project = tutorial.Capitalize(project)

	var chapters []tutorial.Chapter
	for _, ch := range t.Chapters {
		if ch.Content == "" {
			log.Warn("skipping chapter with no content", "file", ch.Filename)
			continue
		}
		chapters = append(chapters, ch)
	}

	body, err := toHTML(t.Index)
	if err != nil {
		return fmt.Errorf("index: %w", err)
	}
	index := page{
		Title:   "Tutorial: " + project,
		Project: project,
		Nav:     navFor(chapters, -1),
		Body:    template.HTML(body),
		Prev:    navLink{Href: "index.html", Title: "← Home"},
	}
	if len(chapters) > 0 {
		index.Next = navLink{Href: pageName(chapters[0].Filename), Title: "Next: " + navTitle(chapters[0].Filename)}
	}
	if err := h.writePage(log, dir, "index.html", index); err != nil {
		return err
	}

	for i, ch := range chapters {
		body, err := toHTML(ch.Content)
		if err != nil {
			return fmt.Errorf("%s: %w", ch.Filename, err)
		}
		p := page{
			Title:   navTitle(ch.Filename) + " - " + project,
			Project: project,
			Nav:     navFor(chapters, i),
			Body:    template.HTML(body),
			Prev:    navLink{Href: "index.html", Title: "← Home"},
			Next:    navLink{Href: "index.html", Title: "Back to Home"},
		}
		if i > 0 {
			p.Prev = navLink{Href: pageName(chapters[i-1].Filename), Title: "← Previous"}
		}
		if i < len(chapters)-1 {
			p.Next = navLink{Href: pageName(chapters[i+1].Filename), Title: "Next →"}
		}
		if err := h.writePage(log, dir, pageName(ch.Filename), p); err != nil {
			return err
		}
	}
	return nil
}

func (h *HTML) writePage(log *slog.Logger, dir, name string, p page) error {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, p); err != nil {
		return fmt.Errorf("rendering %s: %w", name, err)
	}
	return writeFile(log, dir, name, buf.Bytes())
}

func navFor(chapters []tutorial.Chapter, active int) []navLink {
	out := make([]navLink, len(chapters))
	for i, ch := range chapters {
		out[i] = navLink{Href: pageName(ch.Filename), Title: navTitle(ch.Filename), Active: i == active}
	}
	return out
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body { margin: 0; font-family: system-ui, sans-serif; line-height: 1.6; color: #222; }
header { position: sticky; top: 0; background: #fff; border-bottom: 1px solid #ddd; padding: .75rem 1.5rem; font-weight: 600; }
.sidebar { position: fixed; top: 3.2rem; bottom: 0; width: 280px; overflow-y: auto; border-right: 1px solid #eee; padding: 1rem; }
.sidebar a { display: block; padding: .3rem .5rem; color: #333; text-decoration: none; border-radius: 4px; }
.sidebar a.active, .sidebar a:hover { background: #eef3ff; color: #1a4fd8; }
main { margin-left: 312px; padding: 1.5rem 2rem; max-width: 900px; }
pre { background: #f6f8fa; padding: 1rem; overflow-x: auto; border-radius: 6px; }
code { font-family: ui-monospace, monospace; font-size: .92em; }
.mermaid { margin: 1.5rem 0; text-align: center; }
.chapter-nav { display: flex; justify-content: space-between; margin: 3rem 0 1rem; }
.chapter-nav a { padding: .5rem 1rem; border-radius: 4px; background: #1a4fd8; color: #fff; text-decoration: none; }
footer { margin-left: 312px; padding: 1rem 2rem; color: #777; font-size: .9em; }
</style>
<script src="https://cdn.jsdelivr.net/npm/mermaid@10.5.0/dist/mermaid.min.js"></script>
</head>
<body>
<header>{{.Title}}</header>
<nav class="sidebar">
<a href="index.html">Home</a>
{{- range .Nav}}
<a href="{{.Href}}"{{if .Active}} class="active"{{end}}>{{.Title}}</a>
{{- end}}
</nav>
<main>
{{.Body}}
<div class="chapter-nav">
<a href="{{.Prev.Href}}">{{.Prev.Title}}</a>
{{- if .Next.Href}}
<a href="{{.Next.Href}}">{{.Next.Title}}</a>
{{- end}}
</div>
</main>
<footer>Generated by <a href="https://github.com/sarfraznawaz2005/code2tut">Code2Tutorial</a></footer>
<script>mermaid.initialize({ startOnLoad: true });</script>
</body>
</html>
`))
