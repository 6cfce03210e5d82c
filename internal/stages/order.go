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

type OrderInput struct {
	Prompt          string
	NumAbstractions int
}

// Order asks for the teaching order of the abstractions. The result is
// always a permutation: omissions are appended, anything else fails.
type Order struct {
	Model  Model
	Logger *slog.Logger
}

func (s *Order) Name() string        { return "order" }
func (s *Order) Description() string { return "Order chapters" }

func (s *Order) Prepare(tc *tutorial.Context) (OrderInput, error) {
	var listing, relContext strings.Builder
	for i, a := range tc.Abstractions {
		if i > 0 {
			listing.WriteByte('\n')
		}
		fmt.Fprintf(&listing, "%d # %s", i, a.Name)
	}

	fmt.Fprintf(&relContext, "Project Summary:\n%s\n\n", tc.Graph.Summary)
	relContext.WriteString("Relationships (Indices refer to abstractions above):\n")
	for _, e := range tc.Graph.Edges {
		for _, idx := range []int{e.From, e.To} {
			if err := indices.CheckRange(idx, len(tc.Abstractions), "relationship"); err != nil {
				return OrderInput{}, err
			}
		}
		fmt.Fprintf(&relContext, "- From %d (%s) to %d (%s): %s\n",
			e.From, tc.Abstractions[e.From].Name, e.To, tc.Abstractions[e.To].Name, e.Label)
	}

	return OrderInput{
		Prompt:          orderPrompt(tc.Settings.ProjectName, listing.String(), relContext.String()),
		NumAbstractions: len(tc.Abstractions),
	}, nil
}

func (s *Order) Execute(ctx context.Context, in OrderInput) ([]int, error) {
	v, err := s.Model.Structured(ctx, in.Prompt, orderSchema)
	if err != nil {
		return nil, err
	}
	order, missing, err := validateOrder(v, in.NumAbstractions)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		orNop(s.Logger).Warn("model did not include all abstractions in order; appending missing indices",
			"missing", fmt.Sprint(missing))
	}
	return order, nil
}

func (s *Order) Commit(tc *tutorial.Context, _ OrderInput, out []int) {
	tc.Order = out
}

// validateOrder parses and checks the entries, then backfills omissions.
func validateOrder(v any, n int) (order, missing []int, err error) {
	entries, ok := v.([]any)
	if !ok {
		return nil, nil, tutorial.Contractf("order: expected a list of indices, got %s", typeName(v))
	}
	for _, entry := range entries {
		idx, err := indices.Parse(entry)
		if err != nil {
			return nil, nil, tutorial.Contractf("Could not parse index from entry: %v", entry)
		}
		if err := indices.CheckRange(idx, n, "ordered list"); err != nil {
			return nil, nil, err
		}
		order = append(order, idx)
	}
	if err := indices.CheckDuplicates(order, "ordered list"); err != nil {
		return nil, nil, err
	}
	order, missing = indices.Backfill(order, n)
	return order, missing, nil
}

var orderSchema = llm.Schema{
	Name: "chapter_order",
	Definition: map[string]any{
		"type":  "array",
		"items": map[string]any{"type": []string{"integer", "string"}},
	},
}
