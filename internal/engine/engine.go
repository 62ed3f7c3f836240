package engine

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/sirupsen/logrus"

	"github.com/fjglira/issuebench/internal/domain"
)

// Func is one invocation of benchmarked, setup or teardown code.
type Func func(ctx context.Context) error

// Test is a benchmark case. A test whose Err is already set (for example a
// snippet that failed to compile) is reported without being run.
type Test struct {
	Name string
	Fn   Func
	Err  error
}

// Suite is a group of tests measured against each other.
type Suite struct {
	Name     string
	Time     time.Duration // measurement budget per test
	Setup    Func
	Teardown Func
	Tests    []Test
}

// Options tunes an Engine.
type Options struct {
	// DefaultTime is used for suites without their own Time.
	DefaultTime time.Duration
	// Timeout bounds a single invocation of a test function. Zero disables it.
	Timeout time.Duration
	// ChartImages enables chart URLs on suite results.
	ChartImages bool
}

// Engine runs suites sequentially and aggregates timing statistics.
type Engine struct {
	name string
	opts Options
	log  logrus.FieldLogger
}

// New creates an Engine for a run called name.
func New(name string, opts Options, log logrus.FieldLogger) *Engine {
	if opts.DefaultTime <= 0 {
		opts.DefaultTime = time.Second
	}
	return &Engine{name: name, opts: opts, log: log}
}

// Run executes every suite to completion. Failures are recorded on the
// failing test; they never stop sibling tests or later suites.
func (e *Engine) Run(ctx context.Context, suites []*Suite) *domain.Result {
	result := &domain.Result{Name: e.name}
	for _, s := range suites {
		result.Suites = append(result.Suites, e.runSuite(ctx, s))
	}
	return result
}

func (e *Engine) runSuite(ctx context.Context, s *Suite) domain.SuiteResult {
	log := e.log.WithField("suite", s.Name)
	sr := domain.SuiteResult{Name: s.Name}

	budget := s.Time
	if budget <= 0 {
		budget = e.opts.DefaultTime
	}

	var setupErr error
	if s.Setup != nil {
		log.Debug("Running setup")
		setupErr = s.Setup(ctx)
		if setupErr != nil {
			log.Warnf("Setup failed: %v", setupErr)
		}
	}

	for _, t := range s.Tests {
		tr := domain.TestResult{Name: t.Name}
		switch {
		case setupErr != nil:
			tr.Error = fmt.Sprintf("setup failed: %v", setupErr)
		case t.Err != nil:
			tr.Error = t.Err.Error()
		default:
			log.Debugf("Measuring %q", t.Name)
			stat, err := e.measure(ctx, t.Fn, budget)
			if err != nil {
				log.Warnf("Test %q failed: %v", t.Name, err)
				tr.Error = err.Error()
			} else {
				tr.Stat = stat
			}
		}
		sr.Tests = append(sr.Tests, tr)
	}

	if s.Teardown != nil {
		log.Debug("Running teardown")
		if err := s.Teardown(ctx); err != nil {
			log.Warnf("Teardown failed: %v", err)
		}
	}

	markFastest(sr.Tests)
	if e.opts.ChartImages {
		sr.ChartImage = ChartURL(s.Name, sr.Tests)
	}
	return sr
}

// measure calls fn once to warm up and then repeatedly until budget is
// spent. At least one measured call is always made.
func (e *Engine) measure(ctx context.Context, fn Func, budget time.Duration) (domain.Stat, error) {
	if err := e.call(ctx, fn); err != nil {
		return domain.Stat{}, err
	}

	var samples []float64
	start := time.Now()
	for len(samples) == 0 || time.Since(start) < budget {
		if err := ctx.Err(); err != nil {
			return domain.Stat{}, err
		}
		t0 := time.Now()
		if err := e.call(ctx, fn); err != nil {
			return domain.Stat{}, err
		}
		samples = append(samples, time.Since(t0).Seconds())
	}

	avg, err := stats.Mean(samples)
	if err != nil {
		return domain.Stat{}, err
	}
	stat := domain.Stat{Count: len(samples), Avg: domain.Float(avg)}
	if avg > 0 {
		stat.RPS = domain.Float(1 / avg)
	}
	return stat, nil
}

func (e *Engine) call(ctx context.Context, fn Func) error {
	if e.opts.Timeout <= 0 {
		return fn(ctx)
	}
	callCtx, cancel := context.WithTimeout(ctx, e.opts.Timeout)
	defer cancel()
	if err := fn(callCtx); err != nil {
		if callCtx.Err() == context.DeadlineExceeded && ctx.Err() == nil {
			return fmt.Errorf("timed out after %s", e.opts.Timeout)
		}
		return err
	}
	return nil
}

// markFastest flags the test with the highest rate and sets every measured
// test's percent difference relative to it (0 for the fastest, negative
// for slower tests).
func markFastest(tests []domain.TestResult) {
	fastest := -1
	for i, t := range tests {
		if t.Error != "" || t.Stat.RPS == nil {
			continue
		}
		if fastest < 0 || *t.Stat.RPS > *tests[fastest].Stat.RPS {
			fastest = i
		}
	}
	if fastest < 0 {
		return
	}
	tests[fastest].Fastest = true
	best := *tests[fastest].Stat.RPS
	for i := range tests {
		if tests[i].Stat.RPS == nil {
			continue
		}
		tests[i].Stat.Percent = domain.Float(*tests[i].Stat.RPS/best*100 - 100)
	}
}

// Version reports the version of the running binary's main module.
func Version() string {
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Version == "" {
		return "devel"
	}
	return info.Main.Version
}
