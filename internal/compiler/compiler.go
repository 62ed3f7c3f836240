package compiler

import (
	"fmt"

	"github.com/fjglira/issuebench/internal/domain"
)

// Compiler turns a parsed document into a benchmark plan.
type Compiler interface {
	Compile(doc *domain.Document) (*domain.Plan, State)
}

// State is the accumulator carried through the walk over the document.
type State struct {
	Suite   *domain.Suite
	Section Section
}

// DefaultCompiler implements Compiler.
type DefaultCompiler struct {
	scope    domain.SetupScope
	strategy DependencyStrategy
}

// NewCompiler creates a DefaultCompiler. An empty scope means global and a
// nil strategy means ListStrategy.
func NewCompiler(scope domain.SetupScope, strategy DependencyStrategy) *DefaultCompiler {
	if scope == "" {
		scope = domain.ScopeGlobal
	}
	if strategy == nil {
		strategy = ListStrategy{}
	}
	return &DefaultCompiler{scope: scope, strategy: strategy}
}

// Compile walks the document nodes once, left to right. It never fails:
// code blocks that cannot be attached anywhere are skipped and reported as
// plan warnings.
func (c *DefaultCompiler) Compile(doc *domain.Document) (*domain.Plan, State) {
	plan := &domain.Plan{SetupScope: c.scope}
	var st State
	for _, n := range doc.Nodes {
		st = c.step(plan, st, n)
	}
	return plan, st
}

func (c *DefaultCompiler) step(plan *domain.Plan, st State, n domain.Node) State {
	switch node := n.(type) {
	case *domain.Heading:
		switch node.Depth {
		case 1:
			suite := &domain.Suite{Name: node.Text}
			plan.Suites = append(plan.Suites, suite)
			return State{Suite: suite}
		case 2:
			st.Section = Classify(node.Text)
		}

	case *domain.CodeBlock:
		c.attachCode(plan, st, node)

	case *domain.List:
		if st.Section.Kind == SectionDependencies {
			plan.Dependencies = append(plan.Dependencies, c.strategy.FromList(node.Items)...)
		}
	}
	return st
}

func (c *DefaultCompiler) attachCode(plan *domain.Plan, st State, block *domain.CodeBlock) {
	warn := func(format string, args ...any) {
		plan.Warnings = append(plan.Warnings, domain.Warning{
			Line:    block.Line,
			Message: fmt.Sprintf(format, args...),
		})
	}

	switch st.Section.Kind {
	case SectionSetup:
		if c.scope == domain.ScopeGlobal {
			plan.Setup = append(plan.Setup, block.Content)
		} else if st.Suite == nil {
			warn("setup code block appears before any suite heading")
			return
		} else {
			st.Suite.Setup = append(st.Suite.Setup, block.Content)
		}
		// Only setup code that will run contributes dependencies.
		plan.Dependencies = append(plan.Dependencies, c.strategy.FromSetup(block.Content)...)

	case SectionTeardown:
		if c.scope == domain.ScopeGlobal {
			plan.Teardown = append(plan.Teardown, block.Content)
			return
		}
		if st.Suite == nil {
			warn("teardown code block appears before any suite heading")
			return
		}
		st.Suite.Teardown = append(st.Suite.Teardown, block.Content)

	case SectionTest:
		if st.Suite == nil {
			warn("code block for test %q appears before any suite heading", st.Section.Name)
			return
		}
		st.Suite.AddTest(st.Section.Name, block.Content)

	default:
		warn("unknown code block: not under a test, setup or teardown heading")
	}
}
