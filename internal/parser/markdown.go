package parser

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/fjglira/issuebench/internal/domain"
)

// MarkdownParser parses Markdown documents using goldmark.
type MarkdownParser struct {
	md goldmark.Markdown
}

// NewMarkdownParser creates a new MarkdownParser.
func NewMarkdownParser() *MarkdownParser {
	return &MarkdownParser{md: goldmark.New()}
}

// SupportedExtensions returns the file extensions this parser handles.
func (p *MarkdownParser) SupportedExtensions() []string {
	return []string{".md", ".markdown"}
}

// Parse parses a Markdown document into its top-level headings, code blocks
// and lists. Paragraphs, quotes and other blocks carry no meaning for the
// compiler and are dropped.
func (p *MarkdownParser) Parse(source string, content []byte) (*domain.Document, error) {
	// Issue bodies edited in the browser arrive with CRLF line endings.
	content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))

	root := p.md.Parser().Parse(text.NewReader(content))
	if root == nil {
		return nil, domain.NewError("parse", source, 0, "markdown parser returned no document", nil)
	}

	doc := &domain.Document{
		Source: source,
		Format: "markdown",
	}

	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			doc.Nodes = append(doc.Nodes, &domain.Heading{
				Depth: node.Level,
				Text:  inlineText(node, content),
				Line:  headingLine(node, content),
			})

		case *ast.FencedCodeBlock:
			doc.Nodes = append(doc.Nodes, &domain.CodeBlock{
				Lang:    string(node.Language(content)),
				Content: blockContent(node, content),
				Line:    firstLine(node, content),
			})

		case *ast.CodeBlock:
			doc.Nodes = append(doc.Nodes, &domain.CodeBlock{
				Content: blockContent(node, content),
				Line:    firstLine(node, content),
			})

		case *ast.List:
			list := &domain.List{}
			for item := node.FirstChild(); item != nil; item = item.NextSibling() {
				if list.Line == 0 {
					list.Line = firstLine(item.FirstChild(), content)
				}
				first := item.FirstChild()
				if first == nil {
					continue
				}
				if s := strings.TrimSpace(inlineText(first, content)); s != "" {
					list.Items = append(list.Items, s)
				}
			}
			doc.Nodes = append(doc.Nodes, list)
		}
	}

	return doc, nil
}

// blockContent joins the raw lines of a code block without the trailing newline.
func blockContent(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(source))
	}
	return strings.TrimRight(buf.String(), "\n")
}

// inlineText collects the text of all inline descendants of n.
func inlineText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	var walk func(ast.Node)
	walk = func(node ast.Node) {
		for child := node.FirstChild(); child != nil; child = child.NextSibling() {
			switch t := child.(type) {
			case *ast.Text:
				buf.Write(t.Segment.Value(source))
				if t.SoftLineBreak() || t.HardLineBreak() {
					buf.WriteByte(' ')
				}
			case *ast.String:
				buf.Write(t.Value)
			default:
				walk(child)
			}
		}
	}
	walk(n)
	return buf.String()
}

// headingLine finds the source line of a heading. ATX headings may have no
// line segments, in which case the first text child is used.
func headingLine(h *ast.Heading, source []byte) int {
	if h.Lines().Len() > 0 {
		return lineNumber(source, h.Lines().At(0).Start)
	}
	if first, ok := h.FirstChild().(*ast.Text); ok {
		return lineNumber(source, first.Segment.Start)
	}
	return 0
}

func firstLine(n ast.Node, source []byte) int {
	if n == nil || n.Lines().Len() == 0 {
		return 0
	}
	return lineNumber(source, n.Lines().At(0).Start)
}

// lineNumber calculates the 1-based line number for a byte offset.
func lineNumber(content []byte, offset int) int {
	if offset > len(content) {
		offset = len(content)
	}
	return bytes.Count(content[:offset], []byte("\n")) + 1
}
