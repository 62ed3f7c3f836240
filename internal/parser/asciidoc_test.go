package parser_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fjglira/issuebench/internal/domain"
	"github.com/fjglira/issuebench/internal/parser"
)

var _ = Describe("AsciiDocParser", func() {
	var p *parser.AsciiDocParser

	BeforeEach(func() {
		p = parser.NewAsciiDocParser()
	})

	Describe("SupportedExtensions", func() {
		It("should support .adoc and .asciidoc", func() {
			exts := p.SupportedExtensions()
			Expect(exts).To(ContainElements(".adoc", ".asciidoc"))
		})
	})

	Describe("Parse issue.adoc", func() {
		var doc *domain.Document

		BeforeEach(func() {
			content, err := os.ReadFile(filepath.Join("..", "..", "testdata", "asciidoc", "issue.adoc"))
			Expect(err).ToNot(HaveOccurred())
			doc, err = p.Parse("issue.adoc", content)
			Expect(err).ToNot(HaveOccurred())
		})

		It("should set format to asciidoc", func() {
			Expect(doc.Format).To(Equal("asciidoc"))
		})

		It("should map equal signs to heading depth", func() {
			h := doc.Nodes[0].(*domain.Heading)
			Expect(h.Depth).To(Equal(1))
			Expect(h.Text).To(Equal("Loops"))
			h = doc.Nodes[1].(*domain.Heading)
			Expect(h.Depth).To(Equal(2))
			Expect(h.Text).To(Equal("Setup"))
		})

		It("should extract source blocks with and without a directive", func() {
			var blocks []*domain.CodeBlock
			for _, n := range doc.Nodes {
				if c, ok := n.(*domain.CodeBlock); ok {
					blocks = append(blocks, c)
				}
			}
			Expect(blocks).To(HaveLen(3))
			Expect(blocks[0].Lang).To(Equal("sh"))
			Expect(blocks[0].Content).To(Equal("n=3"))
			Expect(blocks[2].Lang).To(BeEmpty())
			Expect(blocks[2].Content).To(ContainSubstring("while"))
		})

		It("should group consecutive list items", func() {
			last := doc.Nodes[len(doc.Nodes)-1]
			l, ok := last.(*domain.List)
			Expect(ok).To(BeTrue())
			Expect(l.Items).To(Equal([]string{"coreutils", "bc"}))
		})
	})
})
