// Package stages implements the tutorial pipeline: fetch, identify, analyze,
// order, write and combine. Each stage follows the runner's
// Prepare/Execute/Commit contract and writes one field group of the
// tutorial.Context.
package stages

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jorge-barreto/code2tutorial/internal/llm"
	"github.com/jorge-barreto/code2tutorial/internal/logging"
	"github.com/jorge-barreto/code2tutorial/internal/runner"
	"github.com/jorge-barreto/code2tutorial/internal/tutorial"
)

// Limits on the Identify prompt's code context.
const (
	MaxFilesToProcess = 10
	MaxContentLength  = 2000
)

// Model is the invocation surface the stages need. *invoke.Invoker
// satisfies it.
type Model interface {
	Text(ctx context.Context, prompt string) (string, error)
	Structured(ctx context.Context, prompt string, schema llm.Schema) (any, error)
}

// Pipeline returns the six stages in run order.
func Pipeline(m Model, log *slog.Logger) []runner.Step {
	if log == nil {
		log = logging.Nop()
	}
	return []runner.Step{
		runner.Bind[FetchInput, []tutorial.FileEntry](&Fetch{Logger: log}),
		runner.Bind[IdentifyInput, []tutorial.Abstraction](&Identify{Model: m, Logger: log}),
		runner.Bind[AnalyzeInput, tutorial.RelationshipGraph](&Analyze{Model: m, Logger: log}),
		runner.Bind[OrderInput, []int](&Order{Model: m, Logger: log}),
		runner.Bind[WriteInput, []tutorial.Chapter](&Write{Model: m, Logger: log}),
		runner.Bind[CombineInput, tutorial.Tutorial](&Combine{}),
	}
}

// Names lists the stage names in run order.
func Names() []string {
	return []string{"fetch", "identify", "analyze", "order", "write", "combine"}
}

// asMap accepts both decoder shapes for a mapping.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[ks] = val
		}
		return out, true
	}
	return nil, false
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "nothing"
	case []any:
		return "list"
	case map[string]any, map[any]any:
		return "mapping"
	case string:
		return "string"
	}
	return fmt.Sprintf("%T", v)
}

func orNop(l *slog.Logger) *slog.Logger {
	if l == nil {
		return logging.Nop()
	}
	return l
}
