package stages

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/jorge-barreto/code2tutorial/internal/indices"
	"github.com/jorge-barreto/code2tutorial/internal/llm"
	"github.com/jorge-barreto/code2tutorial/internal/tutorial"
)

type IdentifyInput struct {
	Prompt    string
	FileCount int
	Max       int
}

// Identify asks the model for the project's core abstractions. Malformed
// items and bad file indices are dropped with a warning.
type Identify struct {
	Model  Model
	Logger *slog.Logger
}

func (s *Identify) Name() string        { return "identify" }
func (s *Identify) Description() string { return "Identify core abstractions" }

func (s *Identify) Prepare(tc *tutorial.Context) (IdentifyInput, error) {
	var ctxText, listing strings.Builder
	n := min(MaxFilesToProcess, len(tc.Files))
	for i := 0; i < n; i++ {
		f := tc.Files[i]
		fmt.Fprintf(&ctxText, "--- File Index %d: %s ---\n%s\n\n", i, f.Path, truncate(f.Content, MaxContentLength))
		if i > 0 {
			listing.WriteByte('\n')
		}
		fmt.Fprintf(&listing, "%d # %s", i, f.Path)
	}
	limit := tc.Settings.MaxAbstractions
	return IdentifyInput{
		Prompt:    identifyPrompt(tc.Settings.ProjectName, ctxText.String(), listing.String(), limit),
		FileCount: len(tc.Files),
		Max:       limit,
	}, nil
}

func (s *Identify) Execute(ctx context.Context, in IdentifyInput) ([]tutorial.Abstraction, error) {
	v, err := s.Model.Structured(ctx, in.Prompt, identifySchema)
	if err != nil {
		return nil, err
	}
	out, err := validateAbstractions(v, in.FileCount, in.Max, orNop(s.Logger))
	if err != nil {
		return nil, err
	}
	names := make([]string, len(out))
	for i, a := range out {
		names[i] = a.Name
	}
	orNop(s.Logger).Info("Identified abstractions", "count", len(out), "names", strings.Join(names, ", "))
	return out, nil
}

func (s *Identify) Commit(tc *tutorial.Context, _ IdentifyInput, out []tutorial.Abstraction) {
	tc.Abstractions = out
}

func validateAbstractions(v any, fileCount, limit int, log *slog.Logger) ([]tutorial.Abstraction, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, tutorial.Contractf("identify: expected a list of abstractions, got %s", typeName(v))
	}

	var out []tutorial.Abstraction
	for _, raw := range items {
		item, ok := asMap(raw)
		if !ok {
			log.Warn("skipping invalid abstraction item", "item", fmt.Sprint(raw))
			continue
		}
		name, nameOK := item["name"].(string)
		desc, descOK := item["description"].(string)
		fileList, filesOK := item["file_indices"].([]any)
		if !nameOK || !descOK || !filesOK {
			log.Warn("skipping abstraction with missing or mistyped fields", "item", fmt.Sprint(raw))
			continue
		}
		name = strings.TrimSpace(name)

		var files []int
		for _, entry := range fileList {
			idx, err := indices.Parse(entry)
			if err != nil {
				log.Warn("dropping file index", "abstraction", name, "error", err)
				continue
			}
			if err := indices.CheckRange(idx, fileCount, "file indices for "+name); err != nil {
				log.Warn("dropping file index", "abstraction", name, "error", err)
				continue
			}
			files = append(files, idx)
		}
		out = append(out, tutorial.Abstraction{
			Name:        name,
			Description: strings.TrimSpace(desc),
			Files:       indices.Dedupe(files),
		})
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// truncate cuts s to n runes and marks the cut with "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "..."
}

var identifySchema = llm.Schema{
	Name: "abstractions",
	Definition: map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name":        map[string]any{"type": "string"},
				"description": map[string]any{"type": "string"},
				"file_indices": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": []string{"integer", "string"}},
				},
			},
			"required": []string{"name", "description", "file_indices"},
		},
	},
}
