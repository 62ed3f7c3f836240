package executor

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/fjglira/issuebench/internal/domain"
	"github.com/fjglira/issuebench/internal/engine"
	"github.com/fjglira/issuebench/internal/runner"
)

// Executor hands a compiled plan to the benchmark engine.
type Executor interface {
	Execute(ctx context.Context, plan *domain.Plan) (*domain.Result, error)
}

// DefaultExecutor implements Executor on top of a SnippetRunner.
type DefaultExecutor struct {
	runner runner.SnippetRunner
	opts   engine.Options
	log    *logrus.Logger
}

// NewExecutor creates a new DefaultExecutor.
func NewExecutor(r runner.SnippetRunner, opts engine.Options, log *logrus.Logger) *DefaultExecutor {
	return &DefaultExecutor{runner: r, opts: opts, log: log}
}

// Execute runs every suite of the plan. All snippets share one context.
// Each suite's setup phase is the plan-wide setup followed by the suite's own
// setup, and its teardown phase is built the same way.
func (x *DefaultExecutor) Execute(ctx context.Context, plan *domain.Plan) (*domain.Result, error) {
	sc, err := x.runner.NewContext()
	if err != nil {
		return nil, domain.NewError("execute", "", 0, "failed to create shared context", err)
	}

	suites := make([]*engine.Suite, 0, len(plan.Suites))
	for _, s := range plan.Suites {
		es := &engine.Suite{
			Name:     s.Name,
			Setup:    x.phase(sc, s.Name+"/setup", append(append([]string{}, plan.Setup...), s.Setup...)),
			Teardown: x.phase(sc, s.Name+"/teardown", append(append([]string{}, plan.Teardown...), s.Teardown...)),
		}
		for _, tc := range s.Tests {
			es.Tests = append(es.Tests, x.test(sc, s.Name, tc))
		}
		suites = append(suites, es)
	}

	x.log.Infof("Running %d suite(s) with %d test(s)", len(suites), plan.TestCount())
	return engine.New(plan.Title, x.opts, x.log).Run(ctx, suites), nil
}

func (x *DefaultExecutor) test(sc *runner.SharedContext, suite string, tc domain.TestCase) engine.Test {
	snippet, err := x.runner.Compile(suite+"/"+tc.Name, tc.Code)
	if err != nil {
		x.log.Warnf("Test %q in suite %q cannot run: %v", tc.Name, suite, err)
		return engine.Test{Name: tc.Name, Err: err}
	}
	return engine.Test{
		Name: tc.Name,
		Fn: func(ctx context.Context) error {
			return sc.Run(ctx, snippet)
		},
	}
}

// phase compiles a list of snippets into one function running them in
// order. It returns nil when there is nothing to run.
func (x *DefaultExecutor) phase(sc *runner.SharedContext, name string, codes []string) engine.Func {
	if len(codes) == 0 {
		return nil
	}
	snippets := make([]*runner.Snippet, 0, len(codes))
	for i, code := range codes {
		s, err := x.runner.Compile(fmt.Sprintf("%s#%d", name, i+1), code)
		if err != nil {
			return func(context.Context) error { return err }
		}
		snippets = append(snippets, s)
	}
	return func(ctx context.Context) error {
		for _, s := range snippets {
			if err := sc.Run(ctx, s); err != nil {
				return err
			}
		}
		return nil
	}
}
