package pipeline

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fjglira/issuebench/internal/compiler"
	"github.com/fjglira/issuebench/internal/domain"
	"github.com/fjglira/issuebench/internal/event"
	"github.com/fjglira/issuebench/internal/executor"
	"github.com/fjglira/issuebench/internal/github"
	"github.com/fjglira/issuebench/internal/parser"
	"github.com/fjglira/issuebench/internal/provision"
	"github.com/fjglira/issuebench/internal/report"
)

// issueExtension selects the parser for issue bodies.
const issueExtension = ".md"

// EventLoader returns the issue that triggered the run.
type EventLoader func() (*event.Issue, error)

// PublisherFactory builds the publisher for an issue.
type PublisherFactory func(ctx context.Context, issue *event.Issue) (github.Publisher, error)

// Deps are the collaborators a Pipeline wires together.
type Deps struct {
	Events    EventLoader
	Registry  parser.ParserRegistry
	Compiler  compiler.Compiler
	Installer provision.Installer
	Executor  executor.Executor
	Renderer  report.Renderer
	Publisher PublisherFactory
	// Facts describes the runner; defaults to report.CollectFacts.
	Facts func(time.Time) domain.RunnerFacts
	Now   func() time.Time
	// Summary, when set, receives a console table of each fresh result.
	Summary io.Writer
}

// Reactions names the reactions used to signal progress on the issue.
type Reactions struct {
	Progress string
	Done     string
}

// Pipeline is the top-level orchestrator.
type Pipeline struct {
	deps      Deps
	reactions Reactions
	log       *logrus.Logger
}

// New creates a Pipeline.
func New(deps Deps, reactions Reactions, log *logrus.Logger) *Pipeline {
	if deps.Facts == nil {
		deps.Facts = report.CollectFacts
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Pipeline{deps: deps, reactions: reactions, log: log}
}

// RunOptions selects the files a run reads and writes.
type RunOptions struct {
	// PlanFile, when set, is a plan written by Prepare. The issue is then
	// neither recompiled nor provisioned again.
	PlanFile string
	// ResultFile, when set, receives the raw result JSON.
	ResultFile string
}

// Run benchmarks the issue and publishes the report as a comment. Nothing
// is published before the report has been rendered.
func (p *Pipeline) Run(ctx context.Context, opts RunOptions) error {
	var (
		issue *event.Issue
		plan  *domain.Plan
		err   error
	)
	if opts.PlanFile != "" {
		issue, plan, err = p.loadPlan(opts.PlanFile)
	} else {
		issue, plan, err = p.prepare(ctx)
	}
	if err != nil {
		return err
	}

	pub, err := p.deps.Publisher(ctx, issue)
	if err != nil {
		return domain.NewError("publish", issue.Source(), 0, "failed to create publisher", err)
	}

	progress, err := pub.AddReaction(ctx, p.reactions.Progress)
	if err != nil {
		return domain.NewError("publish", issue.Source(), 0, "failed to add progress reaction", err)
	}

	result, err := p.deps.Executor.Execute(ctx, plan)
	if err != nil {
		return err
	}
	if p.deps.Summary != nil {
		report.Summary(p.deps.Summary, result)
	}

	if opts.ResultFile != "" {
		if err := writeJSON(opts.ResultFile, result); err != nil {
			return domain.NewError("execute", opts.ResultFile, 0, "failed to write result file", err)
		}
		p.log.Infof("Wrote result to %s", opts.ResultFile)
	}

	return p.publish(ctx, pub, issue, result, progress)
}

// Prepare compiles the issue, installs its dependencies and writes the plan
// to planFile for a later run.
func (p *Pipeline) Prepare(ctx context.Context, planFile string) error {
	_, plan, err := p.prepare(ctx)
	if err != nil {
		return err
	}
	if err := writeJSON(planFile, plan); err != nil {
		return domain.NewError("compile", planFile, 0, "failed to write plan file", err)
	}
	p.log.Infof("Wrote plan with %d suite(s) to %s", len(plan.Suites), planFile)
	return nil
}

// Report publishes a result produced by an earlier run.
func (p *Pipeline) Report(ctx context.Context, resultFile string) error {
	issue, err := p.deps.Events()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(resultFile)
	if err != nil {
		return domain.NewErrorWithSuggestion("render", resultFile, 0,
			"failed to read result file",
			"run `issuebench run --result-file` first",
			err)
	}
	var result domain.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return domain.NewError("render", resultFile, 0, "failed to decode result file", err)
	}

	pub, err := p.deps.Publisher(ctx, issue)
	if err != nil {
		return domain.NewError("publish", issue.Source(), 0, "failed to create publisher", err)
	}
	return p.publish(ctx, pub, issue, &result, 0)
}

// loadPlan loads the issue and the plan Prepare wrote for it.
func (p *Pipeline) loadPlan(planFile string) (*event.Issue, *domain.Plan, error) {
	issue, err := p.deps.Events()
	if err != nil {
		return nil, nil, err
	}

	data, err := os.ReadFile(planFile)
	if err != nil {
		return nil, nil, domain.NewErrorWithSuggestion("compile", planFile, 0,
			"failed to read plan file",
			"run `issuebench prepare --plan-file` first",
			err)
	}
	var plan domain.Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, nil, domain.NewError("compile", planFile, 0, "failed to decode plan file", err)
	}
	p.log.Infof("Loaded plan with %d suite(s) from %s", len(plan.Suites), planFile)
	return issue, &plan, nil
}

// prepare loads, parses, compiles and provisions the issue.
func (p *Pipeline) prepare(ctx context.Context) (*event.Issue, *domain.Plan, error) {
	issue, err := p.deps.Events()
	if err != nil {
		return nil, nil, err
	}
	p.log.Infof("Benchmarking issue %s", issue.Source())

	plan, err := p.Compile(issue.Source(), issueExtension, []byte(issue.Body))
	if err != nil {
		return nil, nil, err
	}
	plan.Title = issue.RunTitle()

	if err := p.deps.Installer.Install(ctx, plan.Dependencies); err != nil {
		return nil, nil, err
	}
	return issue, plan, nil
}

// Compile parses content with the parser registered for ext and compiles it.
// Structural warnings are logged, not returned.
func (p *Pipeline) Compile(source, ext string, content []byte) (*domain.Plan, error) {
	ps, err := p.deps.Registry.ParserFor(ext)
	if err != nil {
		return nil, domain.NewError("parse", source, 0, "no parser available", err)
	}
	doc, err := ps.Parse(source, content)
	if err != nil {
		return nil, err
	}
	p.log.Debugf("Parsed %d node(s) from %s", len(doc.Nodes), source)

	plan, _ := p.deps.Compiler.Compile(doc)
	for _, w := range plan.Warnings {
		p.log.Warnf("%s:%d: %s", source, w.Line, w.Message)
	}
	if len(plan.Suites) == 0 {
		p.log.Warn("No benchmark suites found")
	}
	p.log.Infof("Compiled %d suite(s), %d test(s), %d dependency(ies)",
		len(plan.Suites), plan.TestCount(), len(plan.Dependencies))
	return plan, nil
}

// publish renders the result and writes it to the issue. A non-zero
// progress reaction is removed once the comment is saved.
func (p *Pipeline) publish(ctx context.Context, pub github.Publisher, issue *event.Issue, result *domain.Result, progress int64) error {
	body, err := p.deps.Renderer.Render(result, p.deps.Facts(p.deps.Now()))
	if err != nil {
		return err
	}

	if _, err := pub.SaveComment(ctx, body); err != nil {
		return domain.NewError("publish", issue.Source(), 0, "failed to save report comment", err)
	}
	if progress != 0 {
		if err := pub.DeleteReaction(ctx, progress); err != nil {
			return domain.NewError("publish", issue.Source(), 0, "failed to remove progress reaction", err)
		}
	}
	if _, err := pub.AddReaction(ctx, p.reactions.Done); err != nil {
		return domain.NewError("publish", issue.Source(), 0, "failed to add done reaction", err)
	}

	p.log.Info("Report published")
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
