package domain

import "time"

// NodeKind tags the block-level node variants of a parsed document.
type NodeKind int

const (
	NodeHeading NodeKind = iota + 1
	NodeCodeBlock
	NodeList
)

func (k NodeKind) String() string {
	switch k {
	case NodeHeading:
		return "heading"
	case NodeCodeBlock:
		return "code"
	case NodeList:
		return "list"
	}
	return "unknown"
}

// Node is a block-level element of a Document, in document order.
type Node interface {
	Kind() NodeKind
	SourceLine() int
}

// Heading is a document heading. Depth 1 is the top level.
type Heading struct {
	Depth int
	Text  string
	Line  int
}

func (h *Heading) Kind() NodeKind  { return NodeHeading }
func (h *Heading) SourceLine() int { return h.Line }

// CodeBlock is a fenced or indented code block.
type CodeBlock struct {
	Lang    string
	Content string
	Line    int
}

func (c *CodeBlock) Kind() NodeKind  { return NodeCodeBlock }
func (c *CodeBlock) SourceLine() int { return c.Line }

// List holds the first inline text of every item of a list.
type List struct {
	Items []string
	Line  int
}

func (l *List) Kind() NodeKind  { return NodeList }
func (l *List) SourceLine() int { return l.Line }

// Document is the ordered sequence of block nodes produced by a parser.
type Document struct {
	Source string // file path or "issue #N"
	Format string // "markdown", "asciidoc"
	Nodes  []Node
}

// SetupScope selects where setup and teardown snippets are collected.
type SetupScope string

const (
	// ScopeGlobal collects every setup/teardown snippet into one plan-wide list.
	ScopeGlobal SetupScope = "global"
	// ScopeSuite collects snippets on the suite that was active when they appeared.
	ScopeSuite SetupScope = "suite"
)

// TestCase is a named benchmark body.
type TestCase struct {
	Name string `json:"name" yaml:"name"`
	Code string `json:"code" yaml:"code"`
}

// Suite is a named group of test cases sharing setup and teardown.
type Suite struct {
	Name     string     `json:"name" yaml:"name"`
	Tests    []TestCase `json:"tests" yaml:"tests"`
	Setup    []string   `json:"setup,omitempty" yaml:"setup,omitempty"`
	Teardown []string   `json:"teardown,omitempty" yaml:"teardown,omitempty"`
}

// AddTest registers a test case. A test with the same name is replaced in place.
func (s *Suite) AddTest(name, code string) {
	for i := range s.Tests {
		if s.Tests[i].Name == name {
			s.Tests[i].Code = code
			return
		}
	}
	s.Tests = append(s.Tests, TestCase{Name: name, Code: code})
}

// Warning is a non-fatal structural problem found while compiling.
type Warning struct {
	Line    int    `json:"line" yaml:"line"`
	Message string `json:"message" yaml:"message"`
}

// Plan is the compiled benchmark plan.
type Plan struct {
	Title        string     `json:"title" yaml:"title"`
	SetupScope   SetupScope `json:"setup_scope" yaml:"setup_scope"`
	Suites       []*Suite   `json:"suites" yaml:"suites"`
	Setup        []string   `json:"setup,omitempty" yaml:"setup,omitempty"`
	Teardown     []string   `json:"teardown,omitempty" yaml:"teardown,omitempty"`
	Dependencies []string   `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	Warnings     []Warning  `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// TestCount returns the number of test cases across all suites.
func (p *Plan) TestCount() int {
	n := 0
	for _, s := range p.Suites {
		n += len(s.Tests)
	}
	return n
}

// Stat holds timing statistics of one test. Fields are nil when the test
// failed before producing timing data.
type Stat struct {
	Count   int      `json:"count,omitempty"`
	Avg     *float64 `json:"avg,omitempty"` // seconds per call
	Percent *float64 `json:"percent,omitempty"`
	RPS     *float64 `json:"rps,omitempty"`
}

// TestResult is the outcome of one benchmarked test case.
type TestResult struct {
	Name    string `json:"name"`
	Stat    Stat   `json:"stat"`
	Error   string `json:"error,omitempty"`
	Fastest bool   `json:"fastest"`
}

// SuiteResult groups the results of one suite.
type SuiteResult struct {
	Name       string       `json:"name"`
	ChartImage string       `json:"chartImage,omitempty"`
	Tests      []TestResult `json:"tests"`
}

// Result is the output of a benchmark run.
type Result struct {
	Name   string        `json:"name"`
	Suites []SuiteResult `json:"suites"`
}

// RunnerFacts describes the machine and toolchain that produced a Result.
type RunnerFacts struct {
	GoVersion     string
	ShellVersion  string
	OS            string
	Release       string
	Arch          string
	CPUModel      string
	CPUCores      int
	Date          time.Time
	EngineVersion string
}

// Float returns a pointer to v, for optional Stat fields.
func Float(v float64) *float64 {
	return &v
}
