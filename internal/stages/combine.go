package stages

import (
	"context"
	"fmt"
	"strings"

	"github.com/jorge-barreto/code2tutorial/internal/tutorial"
)

type CombineInput struct {
	Project      string
	Summary      string
	RootDir      string
	Abstractions []tutorial.Abstraction
	Edges        []tutorial.Relationship
	Chapters     []tutorial.Chapter
}

// Combine assembles the index page and stamps each chapter. It makes no
// model calls.
type Combine struct{}

func (Combine) Name() string        { return "combine" }
func (Combine) Description() string { return "Combine tutorial" }

func (Combine) Prepare(tc *tutorial.Context) (CombineInput, error) {
	if len(tc.Chapters) == 0 {
		return CombineInput{}, tutorial.Contractf("combine: no chapters were written")
	}
	if strings.TrimSpace(tc.Graph.Summary) == "" {
		return CombineInput{}, tutorial.Contractf("combine: project summary is empty")
	}
	return CombineInput{
		Project:      tc.Settings.ProjectName,
		Summary:      tc.Graph.Summary,
		RootDir:      tc.Settings.RootDir,
		Abstractions: tc.Abstractions,
		Edges:        tc.Graph.Edges,
		Chapters:     tc.Chapters,
	}, nil
}

func (Combine) Execute(_ context.Context, in CombineInput) (tutorial.Tutorial, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "# Tutorial: %s\n\n", in.Project)
	fmt.Fprintf(&b, "%s\n\n", in.Summary)
	fmt.Fprintf(&b, "**Source Directory:** `%s`\n\n", in.RootDir)
	b.WriteString("```mermaid\n")
	b.WriteString(flowchart(in.Abstractions, in.Edges))
	b.WriteString("```\n\n")
	b.WriteString("## Chapters\n\n")
	for _, ch := range in.Chapters {
		fmt.Fprintf(&b, "%d. [%s](%s)\n", ch.Number, ch.Title, ch.Filename)
	}
	b.WriteString("\n---\n\n" + tutorial.Attribution + "\n")

	chapters := make([]tutorial.Chapter, len(in.Chapters))
	for i, ch := range in.Chapters {
		ch.Content = strings.TrimRight(ch.Content, "\n") + "\n\n---\n\n" + tutorial.Attribution + "\n"
		chapters[i] = ch
	}
	return tutorial.Tutorial{Index: b.String(), Chapters: chapters}, nil
}

func (Combine) Commit(tc *tutorial.Context, _ CombineInput, out tutorial.Tutorial) {
	tc.Tutorial = out
}

// flowchart renders the abstraction graph as a mermaid flowchart body.
func flowchart(abs []tutorial.Abstraction, edges []tutorial.Relationship) string {
	var b strings.Builder
	b.WriteString("flowchart TD\n")
	for i, a := range abs {
		fmt.Fprintf(&b, "    A%d[\"%s\"]\n", i, mermaidText(a.Name))
	}
	for _, e := range edges {
		fmt.Fprintf(&b, "    A%d -- \"%s\" --> A%d\n", e.From, mermaidText(e.Label), e.To)
	}
	return b.String()
}

func mermaidText(s string) string {
	s = strings.ReplaceAll(s, "\"", "")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}
