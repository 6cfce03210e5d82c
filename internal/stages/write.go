package stages

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jorge-barreto/code2tutorial/internal/tutorial"
	"github.com/jorge-barreto/code2tutorial/internal/ux"
)

// WriteItem is one chapter to write. Prev and Next are nil at the ends.
type WriteItem struct {
	Number           int
	AbstractionIndex int
	Name             string
	Description      string
	Filename         string
	Files            []tutorial.IndexedContent
	Prev             *tutorial.ChapterRef
	Next             *tutorial.ChapterRef
}

type WriteInput struct {
	Project string
	TOC     string
	// LinkExt is the extension used for the next-chapter link in prompts.
	LinkExt string
	Items   []WriteItem
}

// Write produces the chapters one at a time, in order. Each prompt carries
// the full text of every chapter written before it in this batch.
type Write struct {
	Model  Model
	Logger *slog.Logger
}

func (s *Write) Name() string        { return "write" }
func (s *Write) Description() string { return "Write chapters" }

func (s *Write) Prepare(tc *tutorial.Context) (WriteInput, error) {
	refs := make([]tutorial.ChapterRef, len(tc.Order))
	toc := make([]string, len(tc.Order))
	for i, absIdx := range tc.Order {
		if absIdx < 0 || absIdx >= len(tc.Abstractions) {
			return WriteInput{}, tutorial.Contractf("chapter order refers to abstraction %d of %d", absIdx, len(tc.Abstractions))
		}
		name := tutorial.Capitalize(tc.Abstractions[absIdx].Name)
		refs[i] = tutorial.ChapterRef{Number: i + 1, Name: name, Filename: tutorial.ChapterFilename(i+1, name)}
		toc[i] = fmt.Sprintf("%d. [%s](%s)", i+1, name, refs[i].Filename)
	}

	items := make([]WriteItem, len(tc.Order))
	for i, absIdx := range tc.Order {
		a := tc.Abstractions[absIdx]
		item := WriteItem{
			Number:           i + 1,
			AbstractionIndex: absIdx,
			Name:             refs[i].Name,
			Description:      a.Description,
			Filename:         refs[i].Filename,
			Files:            tc.ContentFor(a.Files),
		}
		if i > 0 {
			prev := refs[i-1]
			item.Prev = &prev
		}
		if i < len(refs)-1 {
			next := refs[i+1]
			item.Next = &next
		}
		items[i] = item
	}

	ext := ".html"
	if tc.Settings.OutputFormat == "markdown" {
		ext = ".md"
	}
	return WriteInput{
		Project: tc.Settings.ProjectName,
		TOC:     strings.Join(toc, "\n"),
		LinkExt: ext,
		Items:   items,
	}, nil
}

func (s *Write) Execute(ctx context.Context, in WriteInput) ([]tutorial.Chapter, error) {
	log := orNop(s.Logger)
	log.Info("Preparing to write chapters", "count", len(in.Items))
	progress := ux.NewProgress("Writing chapters", len(in.Items))

	// written is the rolling context; it lives only for this batch.
	var written []string
	chapters := make([]tutorial.Chapter, 0, len(in.Items))
	for _, item := range in.Items {
		log.Info("Writing chapter", "number", item.Number, "name", item.Name)
		prompt := writePrompt(writeRequest{
			project:     in.Project,
			number:      item.Number,
			name:        item.Name,
			description: item.Description,
			toc:         in.TOC,
			previous:    strings.Join(written, "\n---\n"),
			snippets:    snippetText(item.Files),
			prev:        link(item.Prev, ".md"),
			next:        link(item.Next, in.LinkExt),
		})
		text, err := s.Model.Text(ctx, prompt)
		if err != nil {
			return nil, fmt.Errorf("chapter %d (%s): %w", item.Number, item.Name, err)
		}
		content := fixHeading(text, item.Number, item.Name)
		written = append(written, content)
		chapters = append(chapters, tutorial.Chapter{
			AbstractionIndex: item.AbstractionIndex,
			Number:           item.Number,
			Title:            item.Name,
			Filename:         item.Filename,
			Content:          content,
		})
		progress.Step()
	}
	return chapters, nil
}

func (s *Write) Commit(tc *tutorial.Context, _ WriteInput, out []tutorial.Chapter) {
	tc.Chapters = out
}

// fixHeading makes sure the chapter opens with "# Chapter N: Name".
func fixHeading(text string, n int, name string) string {
	heading := fmt.Sprintf("# Chapter %d: %s", n, name)
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, fmt.Sprintf("# Chapter %d", n)) {
		return text
	}
	lines := strings.Split(trimmed, "\n")
	if strings.HasPrefix(strings.TrimSpace(lines[0]), "#") {
		lines[0] = heading
		return strings.Join(lines, "\n")
	}
	return heading + "\n\n" + text
}

func snippetText(files []tutorial.IndexedContent) string {
	parts := make([]string, len(files))
	for i, f := range files {
		parts[i] = fmt.Sprintf("--- File: %s ---\n%s", f.Path, f.Content)
	}
	return strings.Join(parts, "\n\n")
}

func link(ref *tutorial.ChapterRef, ext string) string {
	if ref == nil {
		return ""
	}
	return fmt.Sprintf("[%s](%s%s)", ref.Name, strings.TrimSuffix(ref.Filename, ".md"), ext)
}
