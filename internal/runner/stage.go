package runner

import (
	"context"
	"fmt"

	"github.com/jorge-barreto/code2tutorial/internal/tutorial"
)

// Stage is one unit of the pipeline. Prepare reads the context and builds
// the input without side effects, Execute does the work (and is the only
// phase that may call the model), Commit writes the stage's own fields.
type Stage[In, Out any] interface {
	Name() string
	Prepare(tc *tutorial.Context) (In, error)
	Execute(ctx context.Context, in In) (Out, error)
	Commit(tc *tutorial.Context, in In, out Out)
}

// Step is a stage with its type parameters erased.
type Step interface {
	Name() string
	Description() string
	Run(ctx context.Context, tc *tutorial.Context) error
}

// Bind adapts a Stage to a Step.
func Bind[In, Out any](s Stage[In, Out]) Step {
	return bound[In, Out]{s: s}
}

type bound[In, Out any] struct {
	s Stage[In, Out]
}

func (b bound[In, Out]) Name() string { return b.s.Name() }

func (b bound[In, Out]) Description() string {
	if d, ok := b.s.(interface{ Description() string }); ok {
		return d.Description()
	}
	return ""
}

func (b bound[In, Out]) Run(ctx context.Context, tc *tutorial.Context) error {
	in, err := b.s.Prepare(tc)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	out, err := b.s.Execute(ctx, in)
	if err != nil {
		return err
	}
	b.s.Commit(tc, in, out)
	return nil
}

// StageError identifies the stage that stopped a run.
type StageError struct {
	Stage string
	Index int
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %d (%s): %v", e.Index+1, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
