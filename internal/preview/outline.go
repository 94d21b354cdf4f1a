package preview

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// OutlineItem is one heading in a composed document.
type OutlineItem struct {
	Level int
	Text  string
	Line  int
}

// Outline walks a Markdown document and collects its headings, used for the
// document outline shown alongside previews.
func Outline(markdown string) []OutlineItem {
	source := []byte(markdown)

	parser := goldmark.DefaultParser()
	reader := text.NewReader(source)
	root := parser.Parse(reader)

	var items []OutlineItem

	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		line := 0
		if lines := heading.Lines(); lines != nil && lines.Len() > 0 {
			segment := lines.At(0)
			line = 1 + strings.Count(string(source[:segment.Start]), "\n")
		}

		items = append(items, OutlineItem{
			Level: heading.Level,
			Text:  strings.TrimSpace(string(heading.Text(source))),
			Line:  line,
		})
		return ast.WalkContinue, nil
	})

	return items
}
