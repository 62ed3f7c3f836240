package cli

import (
	"context"
	"os"

	"github.com/fjglira/issuebench/internal/compiler"
	"github.com/fjglira/issuebench/internal/config"
	"github.com/fjglira/issuebench/internal/domain"
	"github.com/fjglira/issuebench/internal/engine"
	"github.com/fjglira/issuebench/internal/event"
	"github.com/fjglira/issuebench/internal/executor"
	"github.com/fjglira/issuebench/internal/github"
	"github.com/fjglira/issuebench/internal/parser"
	"github.com/fjglira/issuebench/internal/pipeline"
	"github.com/fjglira/issuebench/internal/provision"
	"github.com/fjglira/issuebench/internal/report"
	"github.com/fjglira/issuebench/internal/runner"
)

// newCompiler builds the compiler selected by the config.
func newCompiler(cfg *config.Config) (*compiler.DefaultCompiler, error) {
	strategy, err := compiler.NewStrategy(cfg.Compiler.DependencyStrategy)
	if err != nil {
		return nil, err
	}
	return compiler.NewCompiler(domain.SetupScope(cfg.Compiler.SetupScope), strategy), nil
}

// newPipeline wires all components from the config and environment.
func newPipeline(cfg *config.Config, env config.Env) (*pipeline.Pipeline, error) {
	comp, err := newCompiler(cfg)
	if err != nil {
		return nil, err
	}

	var installer provision.Installer = provision.NopInstaller{Log: log}
	if !cfg.Dependencies.SkipInstall {
		// Install output is worth seeing; benchmark output is not.
		installRunner := runner.NewShellRunner(cfg.Runner.Dir, cfg.Runner.BlockedPatterns, os.Stderr)
		installer, err = provision.NewCommandInstaller(cfg.Dependencies.InstallCommand, installRunner, log)
		if err != nil {
			return nil, err
		}
	}

	benchRunner := runner.NewShellRunner(cfg.Runner.Dir, cfg.Runner.BlockedPatterns, nil)
	exec := executor.NewExecutor(benchRunner, engine.Options{
		DefaultTime: cfg.BenchTime(),
		Timeout:     cfg.TestTimeout(),
		ChartImages: cfg.Benchmark.ChartImages,
	}, log)

	renderer, err := report.NewRenderer(cfg.Report.TemplateDir, cfg.Report.Template)
	if err != nil {
		return nil, err
	}

	deps := pipeline.Deps{
		Events: func() (*event.Issue, error) {
			return event.Load(env.Event, env.EventPath)
		},
		Registry:  parser.NewDefaultRegistry(),
		Compiler:  comp,
		Installer: installer,
		Executor:  exec,
		Renderer:  renderer,
		Publisher: newPublisherFactory(cfg, env),
		Summary:   os.Stderr,
	}
	return pipeline.New(deps, pipeline.Reactions{
		Progress: cfg.GitHub.ProgressReaction,
		Done:     cfg.GitHub.DoneReaction,
	}, log), nil
}

func newPublisherFactory(cfg *config.Config, env config.Env) pipeline.PublisherFactory {
	return func(ctx context.Context, issue *event.Issue) (github.Publisher, error) {
		if dryRun || env.Act || cfg.GitHub.DryRun {
			var preview func(string) (string, error)
			if cfg.Report.Preview {
				preview = report.Preview
			}
			return github.NewConsolePublisher(os.Stdout, log, preview), nil
		}
		return github.NewClient(ctx,
			github.Target{Owner: issue.Owner, Repo: issue.Repo, Number: issue.Number},
			github.Options{Token: env.Token, BotLogin: cfg.GitHub.BotLogin, BaseURL: cfg.GitHub.BaseURL},
			log)
	}
}
