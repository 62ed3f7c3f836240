package parser

import (
	"regexp"
	"strings"

	"github.com/fjglira/issuebench/internal/domain"
)

// AsciiDocParser parses AsciiDoc documents using regex patterns.
type AsciiDocParser struct{}

// NewAsciiDocParser creates a new AsciiDocParser.
func NewAsciiDocParser() *AsciiDocParser {
	return &AsciiDocParser{}
}

// SupportedExtensions returns the file extensions this parser handles.
func (p *AsciiDocParser) SupportedExtensions() []string {
	return []string{".adoc", ".asciidoc"}
}

var (
	// Matches [source,lang] or [source,lang,attr=val]
	asciidocSourceRe = regexp.MustCompile(`^\[source(?:,\s*([^,\]]+))?(?:,.*)?\]\s*$`)
	// Matches ---- delimiter
	asciidocDelimRe = regexp.MustCompile(`^----+\s*$`)
	// Matches = Title, == Section, etc.
	asciidocHeadingRe = regexp.MustCompile(`^(={1,6})\s+(.+)$`)
	// Matches "* item", "- item" and ". item"
	asciidocListItemRe = regexp.MustCompile(`^\s*[*.\-]+\s+(.+)$`)
)

// Parse parses an AsciiDoc document. A heading with N equal signs has depth N,
// so "= Suite" maps to a depth-1 heading like "# Suite" in markdown.
func (p *AsciiDocParser) Parse(source string, content []byte) (*domain.Document, error) {
	lines := strings.Split(strings.ReplaceAll(string(content), "\r\n", "\n"), "\n")

	doc := &domain.Document{
		Source: source,
		Format: "asciidoc",
	}

	var list *domain.List
	flushList := func() {
		if list != nil {
			doc.Nodes = append(doc.Nodes, list)
			list = nil
		}
	}

	for i := 0; i < len(lines); i++ {
		line := lines[i]

		if m := asciidocListItemRe.FindStringSubmatch(line); m != nil && !asciidocDelimRe.MatchString(line) {
			if list == nil {
				list = &domain.List{Line: i + 1}
			}
			list.Items = append(list.Items, strings.TrimSpace(m[1]))
			continue
		}
		flushList()

		if m := asciidocHeadingRe.FindStringSubmatch(line); m != nil {
			doc.Nodes = append(doc.Nodes, &domain.Heading{
				Depth: len(m[1]),
				Text:  strings.TrimSpace(m[2]),
				Line:  i + 1,
			})
			continue
		}

		var lang string
		if m := asciidocSourceRe.FindStringSubmatch(line); m != nil {
			lang = strings.TrimSpace(m[1])
			// Expect ---- delimiter on next line
			i++
			if i >= len(lines) {
				break
			}
			if !asciidocDelimRe.MatchString(lines[i]) {
				i--
				continue
			}
		} else if !asciidocDelimRe.MatchString(line) {
			continue
		}

		// Read content until closing ----
		i++
		var contentLines []string
		contentStartLine := i + 1
		for i < len(lines) && !asciidocDelimRe.MatchString(lines[i]) {
			contentLines = append(contentLines, lines[i])
			i++
		}

		doc.Nodes = append(doc.Nodes, &domain.CodeBlock{
			Lang:    lang,
			Content: strings.Join(contentLines, "\n"),
			Line:    contentStartLine,
		})
	}
	flushList()

	return doc, nil
}
