package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jorge-barreto/code2tutorial/internal/logging"
	"github.com/jorge-barreto/code2tutorial/internal/metrics"
	"github.com/jorge-barreto/code2tutorial/internal/state"
	"github.com/jorge-barreto/code2tutorial/internal/tutorial"
	"github.com/jorge-barreto/code2tutorial/internal/ux"
)

// Runner executes the steps in order against one Context and keeps the
// run record in Dir up to date.
type Runner struct {
	Steps   []Step
	State   *state.State
	Timing  *state.Timing
	Dir     string
	Logger  *slog.Logger
	Metrics metrics.Recorder
}

// failAndHint records the final status, saves state and timing (warning on
// error), prints a rerun hint and returns err.
func (r *Runner) failAndHint(tc *tutorial.Context, status string, err error) error {
	if status == state.StatusInterrupted {
		r.State.Interrupt()
	} else {
		r.State.Fail(err)
	}
	r.finish(status)
	ux.RerunHint(tc.Settings.UseCache)
	return err
}

func (r *Runner) finish(outcome string) {
	if err := r.State.Save(r.Dir); err != nil {
		r.logger().Warn("failed to save state", "error", err)
	}
	if err := r.Timing.Flush(r.Dir); err != nil {
		r.logger().Warn("failed to flush timing", "error", err)
	}
	rec := r.recorder()
	rec.IncRunOutcome(outcome)
	rec.ObserveRunDuration(time.Since(r.State.StartedAt))
}

// Run executes every step. It stops at the first failure and returns a
// *StageError wrapping the cause.
func (r *Runner) Run(ctx context.Context, tc *tutorial.Context) error {
	if err := state.EnsureDir(r.Dir); err != nil {
		return err
	}
	if r.State == nil {
		r.State = state.NewRun(tc.Settings.ProjectName)
	}
	if r.Timing == nil {
		r.Timing = state.NewTiming(r.State.RunID)
	}
	log := r.logger()
	rec := r.recorder()
	total := len(r.Steps)

	for i, step := range r.Steps {
		name := step.Name()
		if ctx.Err() != nil {
			return r.failAndHint(tc, state.StatusInterrupted, &StageError{Stage: name, Index: i, Err: ctx.Err()})
		}

		r.State.Enter(i, name)
		if err := r.State.Save(r.Dir); err != nil {
			return fmt.Errorf("saving state: %w", err)
		}
		ux.StageHeader(i, total, name, step.Description())
		r.Timing.AddStart(name)
		log.Debug("stage start", "stage", name, "index", i)

		start := time.Now()
		err := step.Run(ctx, tc)
		duration := r.Timing.AddEnd(name)
		rec.ObserveStageDuration(name, time.Since(start))

		if ctx.Err() != nil {
			rec.IncStageResult(name, metrics.ResultCanceled)
			ux.StageFail(i, name, ctx.Err().Error())
			return r.failAndHint(tc, state.StatusInterrupted, &StageError{Stage: name, Index: i, Err: ctx.Err()})
		}
		if err != nil {
			rec.IncStageResult(name, metrics.ResultFatal)
			ux.StageFail(i, name, logging.RedactText(err.Error()))
			log.Error("stage failed", "stage", name, "error", err)
			return r.failAndHint(tc, state.StatusFailed, &StageError{Stage: name, Index: i, Err: err})
		}

		rec.IncStageResult(name, metrics.ResultSuccess)
		if err := r.Timing.Flush(r.Dir); err != nil {
			log.Warn("failed to flush timing", "error", err)
		}
		ux.StageComplete(i, duration)
	}

	r.State.StageIndex = total
	r.State.Stage = ""
	r.State.Complete()
	if err := r.State.Save(r.Dir); err != nil {
		return fmt.Errorf("saving final state: %w", err)
	}
	r.finish(state.StatusCompleted)
	ux.Success(total, "")
	return nil
}

// DryRunPrint lists the steps and the resolved settings without running
// anything.
func (r *Runner) DryRunPrint(s tutorial.Settings) {
	total := len(r.Steps)
	fmt.Fprintf(ux.Out, "\n%sDry run — %d stages:%s\n\n", ux.Bold, total, ux.Reset)
	for i, step := range r.Steps {
		fmt.Fprintf(ux.Out, "  %s%d.%s %s%s%s", ux.Cyan, i+1, ux.Reset, ux.Bold, step.Name(), ux.Reset)
		if d := step.Description(); d != "" {
			fmt.Fprintf(ux.Out, " — %s", d)
		}
		fmt.Fprintln(ux.Out)
	}
	fmt.Fprintf(ux.Out, "\n  project:   %s\n", s.ProjectName)
	fmt.Fprintf(ux.Out, "  source:    %s\n", s.RootDir)
	fmt.Fprintf(ux.Out, "  output:    %s (%s)\n", s.OutputDir, s.OutputFormat)
	fmt.Fprintf(ux.Out, "  provider:  %s, model: %s, max tokens: %d\n", s.Provider, s.Model, s.MaxTokens)
	fmt.Fprintf(ux.Out, "  retry:     %d attempts, %s initial delay\n", s.RetryAttempts, s.RetryDelay)
	fmt.Fprintf(ux.Out, "  cache:     %t (%s)\n", s.UseCache, s.CacheBackend)
	fmt.Fprintf(ux.Out, "  include:   %v\n", s.IncludePatterns)
	fmt.Fprintf(ux.Out, "  exclude:   %v\n", s.ExcludePatterns)
	fmt.Fprintf(ux.Out, "  max size:  %d bytes, max abstractions: %d\n\n", s.MaxFileSize, s.MaxAbstractions)
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return logging.Nop()
	}
	return r.Logger
}

func (r *Runner) recorder() metrics.Recorder {
	if r.Metrics == nil {
		return metrics.NoopRecorder{}
	}
	return r.Metrics
}
