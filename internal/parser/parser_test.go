package parser_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fjglira/issuebench/internal/parser"
)

var _ = Describe("DefaultRegistry", func() {
	It("should resolve parsers by extension", func() {
		r := parser.NewDefaultRegistry()
		p, err := r.ParserFor(".adoc")
		Expect(err).ToNot(HaveOccurred())
		Expect(p).To(BeAssignableToTypeOf(&parser.AsciiDocParser{}))

		p, err = r.ParserFor("MD")
		Expect(err).ToNot(HaveOccurred())
		Expect(p).To(BeAssignableToTypeOf(&parser.MarkdownParser{}))
	})

	It("should fall back to markdown for unknown extensions", func() {
		r := parser.NewDefaultRegistry()
		p, err := r.ParserFor(".txt")
		Expect(err).ToNot(HaveOccurred())
		Expect(p).To(BeAssignableToTypeOf(&parser.MarkdownParser{}))
	})

	It("should fail without a fallback", func() {
		r := parser.NewRegistry()
		r.Register(parser.NewAsciiDocParser())
		_, err := r.ParserFor(".md")
		Expect(err).To(HaveOccurred())
	})
})
