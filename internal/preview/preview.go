// Package preview composes a view into a single Markdown document and
// renders it for the terminal.
package preview

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/filestack/filestack/internal/document"
)

const defaultWrap = 100

// ContentLookup fetches the current text of a referenced file, normally
// backed by the file-state store through the session.
type ContentLookup func(file string) string

// Compose flattens projected nodes into one Markdown document: prose stays
// prose, code blocks are inlined as fenced blocks with their current store
// content.
func Compose(title string, nodes []document.Node, lookup ContentLookup) string {
	var b strings.Builder

	// Dialect documents usually open with their own H1; only add the view
	// title when they don't.
	if title != "" && !startsWithTopHeading(nodes) {
		b.WriteString("# " + title + "\n\n")
	}

	for _, n := range nodes {
		switch n.Kind {
		case document.KindHeading:
			b.WriteString(strings.Repeat("#", n.Level) + " " + n.Text + "\n\n")
		case document.KindParagraph:
			b.WriteString(n.Text + "\n\n")
		case document.KindList:
			for _, item := range n.Items {
				b.WriteString("- " + item + "\n")
			}
			b.WriteString("\n")
		case document.KindCode:
			b.WriteString(fmt.Sprintf("**%s**\n\n", n.Title))
			b.WriteString("```" + n.Language + "\n")
			text := lookup(n.File)
			b.WriteString(strings.TrimRight(text, "\n") + "\n")
			b.WriteString("```\n\n")
		default:
			b.WriteString("_" + document.UnknownPlaceholder + "_\n\n")
		}
	}

	return b.String()
}

func startsWithTopHeading(nodes []document.Node) bool {
	return len(nodes) > 0 && nodes[0].Kind == document.KindHeading && nodes[0].Level == 1
}

// Render styles a Markdown document for the terminal using the configured
// glamour theme, wrapping to the terminal width when it is narrower than
// the default.
func Render(markdown, theme string) (string, error) {
	wrap := defaultWrap
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && w < wrap {
		wrap = w
	}

	opts := []glamour.TermRendererOption{
		glamour.WithWordWrap(wrap),
		glamour.WithColorProfile(termenv.ColorProfile()),
	}
	if theme == "auto" || theme == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(theme))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("failed to build renderer: %w", err)
	}

	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}
