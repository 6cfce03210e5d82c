package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	cli "github.com/urfave/cli/v3"

	"github.com/jorge-barreto/code2tutorial/internal/cache"
	"github.com/jorge-barreto/code2tutorial/internal/config"
	"github.com/jorge-barreto/code2tutorial/internal/invoke"
	"github.com/jorge-barreto/code2tutorial/internal/llm"
	"github.com/jorge-barreto/code2tutorial/internal/llm/anthropic"
	"github.com/jorge-barreto/code2tutorial/internal/llm/gemini"
	"github.com/jorge-barreto/code2tutorial/internal/llm/openai"
	"github.com/jorge-barreto/code2tutorial/internal/logging"
	"github.com/jorge-barreto/code2tutorial/internal/metrics"
	"github.com/jorge-barreto/code2tutorial/internal/render"
	"github.com/jorge-barreto/code2tutorial/internal/retry"
	"github.com/jorge-barreto/code2tutorial/internal/runner"
	"github.com/jorge-barreto/code2tutorial/internal/stages"
	"github.com/jorge-barreto/code2tutorial/internal/state"
	"github.com/jorge-barreto/code2tutorial/internal/tutorial"
	"github.com/jorge-barreto/code2tutorial/internal/ux"
)

func runFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "dir", Aliases: []string{"d"}, Usage: "Path to the source directory", Value: "."},
		&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Project name (default: directory name)"},
		&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Output directory", Value: "output"},
		&cli.StringSliceFlag{Name: "include", Aliases: []string{"i"}, Usage: "Include file pattern (repeatable)"},
		&cli.StringSliceFlag{Name: "exclude", Aliases: []string{"e"}, Usage: "Exclude file pattern (repeatable)"},
		&cli.Int64Flag{Name: "max-size", Aliases: []string{"s"}, Usage: "Max file size in bytes"},
		&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "Debug logging, including prompts"},
		&cli.BoolFlag{Name: "cache", Usage: "Use the response cache", Value: true},
		&cli.IntFlag{Name: "max-abstractions", Usage: "Max abstractions to identify"},
		&cli.StringFlag{Name: "llm-provider", Usage: "LLM provider: openai, gemini, anthropic"},
		&cli.StringFlag{Name: "format", Usage: "Output format: markdown, html, pdf"},
		&cli.StringFlag{Name: "metrics-file", Usage: "Write Prometheus metrics to this file when the run ends"},
		&cli.StringFlag{Name: "log-file", Usage: "Also write JSON logs to this file"},
		&cli.BoolFlag{Name: "dry-run", Usage: "Print the stages and settings without running"},
	}
}

func runAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Present() {
		return fmt.Errorf("unexpected argument %q (see --help)", cmd.Args().First())
	}
	workDir, err := os.Getwd()
	if err != nil {
		return err
	}
	envFile, err := config.LoadEnv(workDir)
	if err != nil {
		return fmt.Errorf("loading env file: %w", err)
	}

	logger, err := logging.Open(os.Stderr, cmd.Bool("verbose"), cmd.String("log-file"))
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logger.Close()
	if envFile != "" {
		logger.Debug("loaded environment", "file", envFile)
	}

	cfg, created, err := config.LoadOrInit(workDir)
	if err != nil {
		return err
	}
	if created {
		ux.Info("Created default config at %s. Edit it to set your AI provider and API key.", config.Path(workDir))
	}

	s, err := config.Settings(cfg, config.Overrides{
		Dir:             cmd.String("dir"),
		Name:            cmd.String("name"),
		Output:          cmd.String("output"),
		Include:         cmd.StringSlice("include"),
		Exclude:         cmd.StringSlice("exclude"),
		MaxSize:         cmd.Int64("max-size"),
		MaxAbstractions: cmd.Int("max-abstractions"),
		Provider:        cmd.String("llm-provider"),
		Format:          cmd.String("format"),
		Cache:           cmd.Bool("cache"),
	}, nil)
	if err != nil {
		return err
	}

	if cmd.Bool("dry-run") {
		r := &runner.Runner{Steps: stages.Pipeline(nil, nil)}
		r.DryRunPrint(s)
		return nil
	}

	provider, err := newProvider(s)
	if err != nil {
		return err
	}
	renderer, err := render.New(s.OutputFormat, s.OutputDir, logger.Logger)
	if err != nil {
		return err
	}

	dir := state.Dir(workDir)
	if err := state.EnsureDir(dir); err != nil {
		return err
	}
	store, err := cache.Open(dir, s.CacheBackend, s.UseCache)
	if err != nil {
		return err
	}
	defer cache.Close(store)

	var rec metrics.Recorder = metrics.NoopRecorder{}
	if path := cmd.String("metrics-file"); path != "" {
		prom := metrics.NewPrometheusRecorder(nil)
		rec = prom
		defer func() {
			if err := prom.WriteTextfile(path); err != nil {
				logger.Warn("failed to write metrics", "path", path, "error", err)
			}
		}()
	}

	st := state.NewRun(s.ProjectName)
	log := logger.With("run_id", st.RunID, "project", s.ProjectName)

	inv := &invoke.Invoker{
		Provider: provider,
		Cache:    store,
		Policy:   retry.NewPolicy(s.RetryAttempts, s.RetryDelay),
		Logger:   log,
		Metrics:  rec,
	}
	r := &runner.Runner{
		Steps:   stages.Pipeline(inv, log),
		State:   st,
		Dir:     dir,
		Logger:  log,
		Metrics: rec,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	tc := tutorial.New(s)
	if err := r.Run(ctx, tc); err != nil {
		return err
	}

	if err := renderer.Render(tc.Tutorial, s.ProjectName); err != nil {
		return fmt.Errorf("rendering %s output: %w", s.OutputFormat, err)
	}
	ux.Info("Tutorial written to %s", filepath.Join(s.OutputDir, s.OutputFormat))
	return nil
}

func newProvider(s tutorial.Settings) (llm.Provider, error) {
	opts := llm.Options{APIKey: s.APIKey, Model: s.Model, MaxTokens: s.MaxTokens}
	switch s.Provider {
	case llm.OpenAI:
		return openai.NewClient(opts), nil
	case llm.Gemini:
		return gemini.NewClient(opts), nil
	case llm.Anthropic:
		return anthropic.NewClient(opts), nil
	}
	return nil, fmt.Errorf("config: invalid llmProvider %q", s.Provider)
}
