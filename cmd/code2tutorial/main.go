package main

import (
	"context"
	"fmt"
	"os"

	cli "github.com/urfave/cli/v3"

	"github.com/jorge-barreto/code2tutorial/internal/cache"
	"github.com/jorge-barreto/code2tutorial/internal/config"
	"github.com/jorge-barreto/code2tutorial/internal/docs"
	"github.com/jorge-barreto/code2tutorial/internal/doctor"
	"github.com/jorge-barreto/code2tutorial/internal/logging"
	"github.com/jorge-barreto/code2tutorial/internal/scaffold"
	"github.com/jorge-barreto/code2tutorial/internal/stages"
	"github.com/jorge-barreto/code2tutorial/internal/state"
	"github.com/jorge-barreto/code2tutorial/internal/ux"
)

func main() {
	app := &cli.Command{
		Name:        "code2tutorial",
		Usage:       "Turn a source directory into a beginner-friendly tutorial",
		Description: "Run 'code2tutorial docs' for documentation on configuration, providers, caching and output formats.",
		Flags:       runFlags(),
		Action:      runAction,
		Commands: []*cli.Command{
			initCmd(),
			statusCmd(),
			doctorCmd(),
			docsCmd(),
			cacheCmd(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%serror:%s %s\n", ux.Red, ux.Reset, logging.RedactText(err.Error()))
		os.Exit(1)
	}
}

func initCmd() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Write the default .code2tutorial/config.yaml",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "force", Usage: "Overwrite an existing config"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir, err := os.Getwd()
			if err != nil {
				return err
			}
			return scaffold.Init(dir, cmd.Bool("force"))
		},
	}
}

func statusCmd() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show the last run's status and stage timings",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir, err := os.Getwd()
			if err != nil {
				return err
			}
			sdir := state.Dir(dir)
			st, err := state.Load(sdir)
			if err != nil {
				return fmt.Errorf("loading state: %w", err)
			}
			timing, err := state.LoadTiming(sdir)
			if err != nil {
				return fmt.Errorf("loading timing: %w", err)
			}
			ux.RenderStatus(st, timing, stages.Names())
			return nil
		},
	}
}

func doctorCmd() *cli.Command {
	return &cli.Command{
		Name:  "doctor",
		Usage: "Check configuration, credentials, cache and PDF prerequisites",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "format", Usage: "Check for this output format instead of the configured one"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir, err := os.Getwd()
			if err != nil {
				return err
			}
			if _, err := config.LoadEnv(dir); err != nil {
				return fmt.Errorf("loading env file: %w", err)
			}
			return doctor.Run(doctor.Env{WorkDir: dir}, cmd.String("format"))
		},
	}
}

func docsCmd() *cli.Command {
	return &cli.Command{
		Name:      "docs",
		Usage:     "Show documentation",
		ArgsUsage: "[topic]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				fmt.Print("\nAvailable topics:\n\n")
				for _, t := range docs.All() {
					fmt.Printf("  %-12s %s\n", t.Name, t.Summary)
				}
				fmt.Println("\nRun 'code2tutorial docs <topic>' to read a topic.")
				return nil
			}
			t, err := docs.Get(name)
			if err != nil {
				return err
			}
			fmt.Print(t.Content)
			return nil
		},
	}
}

func cacheCmd() *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Manage the response cache",
		Commands: []*cli.Command{
			{
				Name:  "clear",
				Usage: "Delete cached model responses",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					dir, err := os.Getwd()
					if err != nil {
						return err
					}
					removed, err := cache.Clear(state.Dir(dir))
					if err != nil {
						return err
					}
					if len(removed) == 0 {
						ux.Info("No cache to clear.")
						return nil
					}
					for _, p := range removed {
						ux.Info("Removed %s", p)
					}
					return nil
				},
			},
		},
	}
}
