package compiler

import (
	"fmt"
	"regexp"
)

// Strategy names accepted by NewStrategy.
const (
	StrategyList    = "list"
	StrategyRequire = "require"
)

// DependencyStrategy decides where dependency identifiers come from. Only one
// strategy is active for a compilation.
type DependencyStrategy interface {
	// FromList receives the items of a list found under a Dependencies heading.
	FromList(items []string) []string
	// FromSetup receives the text of a setup snippet.
	FromSetup(code string) []string
}

// NewStrategy returns the strategy registered under name.
func NewStrategy(name string) (DependencyStrategy, error) {
	switch name {
	case StrategyList, "":
		return ListStrategy{}, nil
	case StrategyRequire:
		return RequireStrategy{}, nil
	}
	return nil, fmt.Errorf("unknown dependency strategy %q (expected %q or %q)", name, StrategyList, StrategyRequire)
}

// ListStrategy takes dependencies from explicit "## Dependencies" lists.
type ListStrategy struct{}

func (ListStrategy) FromList(items []string) []string {
	var deps []string
	for _, item := range items {
		if item != "" {
			deps = append(deps, item)
		}
	}
	return deps
}

func (ListStrategy) FromSetup(string) []string { return nil }

// requireRe matches require("x") or require('x'). The quotes must pair up and
// a name never spans quotes or parentheses.
var requireRe = regexp.MustCompile(`require\((?:"([^"'()]+)"|'([^"'()]+)')\)`)

// RequireStrategy scrapes require("name") references out of setup code.
// Names are kept verbatim, in order of appearance, duplicates included.
type RequireStrategy struct{}

func (RequireStrategy) FromList([]string) []string { return nil }

func (RequireStrategy) FromSetup(code string) []string {
	var deps []string
	for _, m := range requireRe.FindAllStringSubmatch(code, -1) {
		if m[1] != "" {
			deps = append(deps, m[1])
		} else {
			deps = append(deps, m[2])
		}
	}
	return deps
}
