package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// SnippetRunner compiles snippet text taken from a document and runs it.
// It is the only place where untrusted document content is executed.
type SnippetRunner interface {
	Compile(name, code string) (*Snippet, error)
	NewContext() (*SharedContext, error)
}

// Snippet is a parsed, policy-checked piece of code ready to run.
type Snippet struct {
	Name string
	Code string
	prog *syntax.File
}

// SharedContext is one interpreter whose variables and functions are visible
// to every snippet run in it, so setup state reaches tests and teardown.
type SharedContext struct {
	runner *interp.Runner
	stdout io.Writer
	stderr bytes.Buffer
}

// Run executes the snippet in the shared context. A non-zero exit status or
// an interpreter failure is returned as an error that includes the last
// line written to stderr.
func (sc *SharedContext) Run(ctx context.Context, s *Snippet) error {
	sc.stderr.Reset()
	err := sc.runner.Run(ctx, s.prog)
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%s: %w", s.Name, ctxErr)
	}
	msg := lastLine(sc.stderr.String())
	var status interp.ExitStatus
	if errors.As(err, &status) && msg != "" {
		return fmt.Errorf("%s: exit status %d: %s", s.Name, int(status), msg)
	}
	if msg != "" {
		return fmt.Errorf("%s: %w: %s", s.Name, err, msg)
	}
	return fmt.Errorf("%s: %w", s.Name, err)
}

// ShellRunner runs snippets as POSIX shell code with the mvdan/sh interpreter.
type ShellRunner struct {
	dir     string
	blocked []string
	stdout  io.Writer
}

// NewShellRunner creates a ShellRunner. Snippets run in dir (the current
// directory when empty) and any snippet containing a blocked pattern is
// rejected at compile time. Snippet stdout goes to out, or is discarded
// when out is nil.
func NewShellRunner(dir string, blocked []string, out io.Writer) *ShellRunner {
	if out == nil {
		out = io.Discard
	}
	return &ShellRunner{dir: dir, blocked: blocked, stdout: out}
}

// Compile validates and parses a snippet.
func (r *ShellRunner) Compile(name, code string) (*Snippet, error) {
	if err := ValidateSnippet(code, r.blocked); err != nil {
		return nil, err
	}
	prog, err := syntax.NewParser().Parse(strings.NewReader(code), name)
	if err != nil {
		return nil, fmt.Errorf("snippet syntax error: %w", err)
	}
	return &Snippet{Name: name, Code: code, prog: prog}, nil
}

// NewContext creates a fresh interpreter inheriting the process environment.
func (r *ShellRunner) NewContext() (*SharedContext, error) {
	dir := r.dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve working directory: %w", err)
		}
		dir = wd
	}

	sc := &SharedContext{stdout: r.stdout}
	runner, err := interp.New(
		interp.Dir(dir),
		interp.Env(expand.ListEnviron(os.Environ()...)),
		interp.StdIO(nil, sc.stdout, &sc.stderr),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create interpreter: %w", err)
	}
	sc.runner = runner
	return sc, nil
}

// Version reports the mvdan/sh module version linked into the binary.
func Version() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, dep := range info.Deps {
		if dep.Path == "mvdan.cc/sh/v3" {
			return dep.Version
		}
	}
	return "unknown"
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[i+1:])
	}
	return s
}
