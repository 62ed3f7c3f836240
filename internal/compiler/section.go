package compiler

import "strings"

// SectionKind is the classification of the most recent depth-2 heading.
type SectionKind int

const (
	SectionNone SectionKind = iota
	SectionTest
	SectionSetup
	SectionTeardown
	SectionDependencies
)

func (k SectionKind) String() string {
	switch k {
	case SectionTest:
		return "test"
	case SectionSetup:
		return "setup"
	case SectionTeardown:
		return "teardown"
	case SectionDependencies:
		return "dependencies"
	}
	return "none"
}

// Section is the current classification. Name is only set for tests.
type Section struct {
	Kind SectionKind
	Name string
}

// Classify maps a depth-2 heading to a section. Matching is done on the
// trimmed, lower-cased text; a test keeps the heading text as written.
func Classify(heading string) Section {
	name := strings.ToLower(strings.TrimSpace(heading))
	switch {
	case strings.HasPrefix(name, "dependenc"):
		return Section{Kind: SectionDependencies}
	case strings.HasPrefix(name, "setup"), strings.HasPrefix(name, "set up"):
		return Section{Kind: SectionSetup}
	case strings.HasPrefix(name, "teardown"), strings.HasPrefix(name, "tear down"):
		return Section{Kind: SectionTeardown}
	}
	return Section{Kind: SectionTest, Name: heading}
}
