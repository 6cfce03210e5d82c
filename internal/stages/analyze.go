package stages

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jorge-barreto/code2tutorial/internal/indices"
	"github.com/jorge-barreto/code2tutorial/internal/llm"
	"github.com/jorge-barreto/code2tutorial/internal/tutorial"
)

type AnalyzeInput struct {
	Prompt          string
	NumAbstractions int
}

// Analyze asks for a project summary and the edges between abstractions.
// Any malformed edge fails the stage.
type Analyze struct {
	Model  Model
	Logger *slog.Logger
}

func (s *Analyze) Name() string        { return "analyze" }
func (s *Analyze) Description() string { return "Analyze relationships" }

func (s *Analyze) Prepare(tc *tutorial.Context) (AnalyzeInput, error) {
	var ctxText, listing strings.Builder
	ctxText.WriteString("Identified Abstractions:\n")

	var all []int
	for i, a := range tc.Abstractions {
		ids := make([]string, len(a.Files))
		for j, f := range a.Files {
			ids[j] = fmt.Sprint(f)
		}
		fmt.Fprintf(&ctxText, "- Index %d: %s (Relevant file indices: [%s])\n  Description: %s\n", i, a.Name, strings.Join(ids, ", "), a.Description)
		if i > 0 {
			listing.WriteByte('\n')
		}
		fmt.Fprintf(&listing, "%d # %s", i, a.Name)
		all = append(all, a.Files...)
	}

	ctxText.WriteString("\nRelevant File Snippets (Referenced by Index and Path):\n")
	snippets := tc.ContentFor(indices.Dedupe(all))
	for i, c := range snippets {
		if i > 0 {
			ctxText.WriteString("\n\n")
		}
		fmt.Fprintf(&ctxText, "--- File: %s ---\n%s", c.Label, c.Content)
	}

	return AnalyzeInput{
		Prompt:          analyzePrompt(tc.Settings.ProjectName, listing.String(), ctxText.String()),
		NumAbstractions: len(tc.Abstractions),
	}, nil
}

func (s *Analyze) Execute(ctx context.Context, in AnalyzeInput) (tutorial.RelationshipGraph, error) {
	v, err := s.Model.Structured(ctx, in.Prompt, analyzeSchema)
	if err != nil {
		return tutorial.RelationshipGraph{}, err
	}
	g, err := validateGraph(v, in.NumAbstractions)
	if err != nil {
		return tutorial.RelationshipGraph{}, err
	}
	log := orNop(s.Logger)
	if missing := indices.Uncovered(g.Edges, in.NumAbstractions); len(missing) > 0 {
		log.Debug("abstractions without relationships", "indices", fmt.Sprint(missing))
	}
	log.Info("Generated project summary and relationships", "edges", len(g.Edges))
	return g, nil
}

func (s *Analyze) Commit(tc *tutorial.Context, _ AnalyzeInput, out tutorial.RelationshipGraph) {
	tc.Graph = out
}

func validateGraph(v any, n int) (tutorial.RelationshipGraph, error) {
	var g tutorial.RelationshipGraph
	doc, ok := asMap(v)
	if !ok {
		return g, tutorial.Contractf("analyze: expected a mapping with 'summary' and 'relationships', got %s", typeName(v))
	}
	rawSummary, hasSummary := doc["summary"]
	rawRels, hasRels := doc["relationships"]
	if !hasSummary || !hasRels {
		return g, tutorial.Contractf("analyze: output is missing required keys ('summary', 'relationships')")
	}
	summary, ok := rawSummary.(string)
	if !ok {
		return g, tutorial.Contractf("analyze: summary is not a string")
	}
	rels, ok := rawRels.([]any)
	if !ok {
		return g, tutorial.Contractf("analyze: relationships is not a list")
	}

	g.Summary = strings.TrimSpace(summary)
	for _, raw := range rels {
		rel, ok := asMap(raw)
		if !ok {
			return g, tutorial.Contractf("analyze: relationship item is not a mapping: %v", raw)
		}
		from, hasFrom := rel["from_abstraction"]
		to, hasTo := rel["to_abstraction"]
		rawLabel, hasLabel := rel["label"]
		if !hasFrom || !hasTo || !hasLabel {
			return g, tutorial.Contractf("analyze: missing keys (expected from_abstraction, to_abstraction, label) in relationship item: %v", raw)
		}
		label, ok := rawLabel.(string)
		if !ok {
			return g, tutorial.Contractf("analyze: relationship label is not a string: %v", raw)
		}
		fromIdx, err := indices.Parse(from)
		if err != nil {
			return g, tutorial.Contractf("analyze: %v", err)
		}
		toIdx, err := indices.Parse(to)
		if err != nil {
			return g, tutorial.Contractf("analyze: %v", err)
		}
		if err := indices.CheckRange(fromIdx, n, "relationship from index"); err != nil {
			return g, err
		}
		if err := indices.CheckRange(toIdx, n, "relationship to index"); err != nil {
			return g, err
		}
		g.Edges = append(g.Edges, tutorial.Relationship{From: fromIdx, To: toIdx, Label: label})
	}
	return g, nil
}

var analyzeSchema = llm.Schema{
	Name: "relationships",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{"type": "string"},
			"relationships": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"from_abstraction": map[string]any{"type": []string{"integer", "string"}},
						"to_abstraction":   map[string]any{"type": []string{"integer", "string"}},
						"label":            map[string]any{"type": "string"},
					},
					"required": []string{"from_abstraction", "to_abstraction", "label"},
				},
			},
		},
		"required": []string{"summary", "relationships"},
	},
}
