package compiler_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fjglira/issuebench/internal/compiler"
	"github.com/fjglira/issuebench/internal/domain"
	"github.com/fjglira/issuebench/internal/parser"
)

func parse(md string) *domain.Document {
	doc, err := parser.NewMarkdownParser().Parse("test.md", []byte(md))
	Expect(err).ToNot(HaveOccurred())
	return doc
}

var _ = Describe("Compiler", func() {
	var c *compiler.DefaultCompiler

	BeforeEach(func() {
		c = compiler.NewCompiler(domain.ScopeGlobal, compiler.ListStrategy{})
	})

	It("should compile the basic setup and test scenario", func() {
		plan, _ := c.Compile(parse("# A\n## Setup\n```\nx=1\n```\n## t1\n```\nbench(x)\n```"))
		Expect(plan.Suites).To(HaveLen(1))
		Expect(plan.Suites[0].Name).To(Equal("A"))
		Expect(plan.Setup).To(Equal([]string{"x=1"}))
		Expect(plan.Suites[0].Tests).To(Equal([]domain.TestCase{{Name: "t1", Code: "bench(x)"}}))
		Expect(plan.Warnings).To(BeEmpty())
	})

	It("should yield no suites for a document without depth-1 headings", func() {
		plan, st := c.Compile(parse("## t1\n\nsome text\n\n## t2\n"))
		Expect(plan.Suites).To(BeEmpty())
		Expect(plan.TestCount()).To(BeZero())
		Expect(st.Suite).To(BeNil())
	})

	It("should keep one entry per test name with the last code block winning", func() {
		plan, _ := c.Compile(parse("# A\n## t1\n```\nfirst\n```\n## t2\n```\nother\n```\n## t1\n```\nsecond\n```\n```\nthird\n```"))
		Expect(plan.Suites[0].Tests).To(Equal([]domain.TestCase{
			{Name: "t1", Code: "third"},
			{Name: "t2", Code: "other"},
		}))
	})

	It("should warn and skip a code block before any heading", func() {
		plan, _ := c.Compile(parse("```\norphan\n```\n# A\n## t1\n```\nok\n```"))
		Expect(plan.Warnings).To(HaveLen(1))
		Expect(plan.Warnings[0].Line).To(Equal(2))
		Expect(plan.Warnings[0].Message).To(ContainSubstring("unknown code block"))
		Expect(plan.Suites).To(HaveLen(1))
		Expect(plan.Suites[0].Tests).To(HaveLen(1))
	})

	It("should warn for a test code block with no active suite", func() {
		plan, _ := c.Compile(parse("## t1\n```\nx\n```"))
		Expect(plan.Suites).To(BeEmpty())
		Expect(plan.Warnings).To(HaveLen(1))
		Expect(plan.Warnings[0].Message).To(ContainSubstring(`"t1"`))
	})

	It("should reset the section when a new suite starts", func() {
		plan, st := c.Compile(parse("# A\n## t1\n```\na\n```\n# B\n```\nb\n```"))
		Expect(plan.Suites).To(HaveLen(2))
		Expect(plan.Suites[1].Tests).To(BeEmpty())
		Expect(plan.Warnings).To(HaveLen(1))
		Expect(st.Suite.Name).To(Equal("B"))
		Expect(st.Section.Kind).To(Equal(compiler.SectionNone))
	})

	It("should classify by the nearest preceding depth-2 heading", func() {
		plan, _ := c.Compile(parse("# A\n## t1\n```\ntest\n```\n## Teardown\n```\ncleanup\n```\n### detail\n```\nmore cleanup\n```"))
		Expect(plan.Suites[0].Tests).To(HaveLen(1))
		Expect(plan.Teardown).To(Equal([]string{"cleanup", "more cleanup"}))
	})

	It("should bind test names from the untrimmed heading text", func() {
		plan, _ := c.Compile(parse("# A\n## Set Operations\n```\nx\n```"))
		// "set operations" does not start with "setup" or "set up"
		Expect(plan.Suites[0].Tests[0].Name).To(Equal("Set Operations"))
	})

	Describe("setup scope", func() {
		const md = "## Setup\n```\ng=1\n```\n# A\n## Setup\n```\na=1\n```\n## t\n```\nx\n```\n## Tear down\n```\nunset a\n```"

		It("should collect setup globally by default", func() {
			plan, _ := c.Compile(parse(md))
			Expect(plan.SetupScope).To(Equal(domain.ScopeGlobal))
			Expect(plan.Setup).To(Equal([]string{"g=1", "a=1"}))
			Expect(plan.Teardown).To(Equal([]string{"unset a"}))
			Expect(plan.Suites[0].Setup).To(BeEmpty())
		})

		It("should collect setup per suite in suite scope", func() {
			c = compiler.NewCompiler(domain.ScopeSuite, nil)
			plan, _ := c.Compile(parse(md))
			Expect(plan.Setup).To(BeEmpty())
			Expect(plan.Suites[0].Setup).To(Equal([]string{"a=1"}))
			Expect(plan.Suites[0].Teardown).To(Equal([]string{"unset a"}))
			Expect(plan.Warnings).To(HaveLen(1))
			Expect(plan.Warnings[0].Message).To(ContainSubstring("setup"))
		})
	})

	Describe("dependencies", func() {
		const md = "## Dependencies\n\n- jq\n- bc\n\n# A\n## Setup\n```\nrequire(\"lodash\"); require('chalk'); require(\"lodash\")\n```\n## t\n\n- not a dependency\n"

		It("should take dependencies from lists with the list strategy", func() {
			plan, _ := c.Compile(parse(md))
			Expect(plan.Dependencies).To(Equal([]string{"jq", "bc"}))
		})

		It("should scrape require calls from setup code with the require strategy", func() {
			c = compiler.NewCompiler(domain.ScopeGlobal, compiler.RequireStrategy{})
			plan, _ := c.Compile(parse(md))
			Expect(plan.Dependencies).To(Equal([]string{"lodash", "chalk", "lodash"}))
		})

		It("should ignore require calls in setup code that is skipped", func() {
			c = compiler.NewCompiler(domain.ScopeSuite, compiler.RequireStrategy{})
			plan, _ := c.Compile(parse("## Setup\n```\nrequire(\"lodash\")\n```\n# A\n## Setup\n```\nrequire('chalk')\n```\n"))
			Expect(plan.Warnings).To(HaveLen(1))
			Expect(plan.Warnings[0].Message).To(ContainSubstring("setup code block appears before any suite heading"))
			Expect(plan.Suites[0].Setup).To(Equal([]string{"require('chalk')"}))
			Expect(plan.Dependencies).To(Equal([]string{"chalk"}))
		})

		It("should only accept require calls with matching quotes", func() {
			deps := compiler.RequireStrategy{}.FromSetup(`require("a') + require('b") + require("c") + require('d')`)
			Expect(deps).To(Equal([]string{"c", "d"}))
		})
	})

	It("should compile the issue.md fixture", func() {
		content, err := os.ReadFile(filepath.Join("..", "..", "testdata", "markdown", "issue.md"))
		Expect(err).ToNot(HaveOccurred())
		doc, err := parser.NewMarkdownParser().Parse("issue.md", content)
		Expect(err).ToNot(HaveOccurred())

		plan, _ := c.Compile(doc)
		Expect(plan.Suites).To(HaveLen(2))
		Expect(plan.Suites[0].Name).To(Equal("String concat"))
		Expect(plan.Suites[0].Tests).To(HaveLen(2))
		Expect(plan.Suites[0].Tests[1].Name).To(Equal("printf"))
		Expect(plan.Suites[1].Tests[0].Name).To(Equal("Increment | expr"))
		Expect(plan.Setup).To(HaveLen(1))
		Expect(plan.Teardown).To(Equal([]string{"unset base"}))
		Expect(plan.Dependencies).To(Equal([]string{"jq", "yq"}))
		Expect(plan.Warnings).To(BeEmpty())
	})

	It("should tolerate the malformed.md fixture", func() {
		content, err := os.ReadFile(filepath.Join("..", "..", "testdata", "markdown", "malformed.md"))
		Expect(err).ToNot(HaveOccurred())
		doc, err := parser.NewMarkdownParser().Parse("malformed.md", content)
		Expect(err).ToNot(HaveOccurred())

		plan, _ := c.Compile(doc)
		Expect(plan.Warnings).To(HaveLen(2))
		Expect(plan.Suites).To(HaveLen(1))
		Expect(plan.Suites[0].Tests).To(Equal([]domain.TestCase{{Name: "t1", Code: "echo second"}}))
	})
})
