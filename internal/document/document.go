// Package document projects structured content into the flat node form
// consumed by rendering surfaces, and back.
package document

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/filestack/filestack/internal/content"
)

// Node kinds understood by rendering surfaces.
const (
	KindHeading   = "heading"
	KindParagraph = "paragraph"
	KindList      = "list"
	KindCode      = "code"
	KindUnknown   = "unknown"
)

// UnknownPlaceholder is what surfaces show for content they cannot
// interpret; favoring partial degradation over a failed load.
const UnknownPlaceholder = "Unknown content type"

// Node is one renderable block. Code nodes are atomic: they carry file,
// language, and title attributes only, and the surface fetches the file's
// text out-of-band through the file-state store.
type Node struct {
	Kind     string
	Level    int
	Text     string
	Items    []string
	File     string
	Language string
	Title    string
}

// ToNodes maps content items to renderable nodes, one to one.
func ToNodes(items []content.Item) []Node {
	nodes := make([]Node, 0, len(items))
	for _, it := range items {
		switch v := it.(type) {
		case content.Heading:
			nodes = append(nodes, Node{Kind: KindHeading, Level: v.Level, Text: v.Text})
		case content.Paragraph:
			nodes = append(nodes, Node{Kind: KindParagraph, Text: v.Text})
		case content.List:
			nodes = append(nodes, Node{Kind: KindList, Items: v.Items})
		case content.CodeRef:
			nodes = append(nodes, Node{
				Kind:     KindCode,
				File:     v.File,
				Language: v.Language,
				Title:    v.Title,
			})
		case content.Unknown:
			nodes = append(nodes, Node{Kind: KindUnknown, Text: UnknownPlaceholder})
		}
	}
	return nodes
}

// FromNodes is the inverse of ToNodes, used when serializing edits back to
// content for the dialect codec. Code nodes map straight back to CodeRefs
// from their carried attributes; file text never travels through here.
func FromNodes(nodes []Node) []content.Item {
	items := make([]content.Item, 0, len(nodes))
	for _, n := range nodes {
		switch n.Kind {
		case KindHeading:
			items = append(items, content.Heading{Level: n.Level, Text: n.Text})
		case KindParagraph:
			items = append(items, content.Paragraph{Text: n.Text})
		case KindList:
			items = append(items, content.List{Items: n.Items})
		case KindCode:
			items = append(items, content.CodeRef{
				File:     n.File,
				Language: n.Language,
				Title:    n.Title,
			})
		default:
			items = append(items, content.Unknown{Kind: n.Kind})
		}
	}
	return items
}

// FallbackFromFiles synthesizes nodes for a view that has only a bare file
// list (legacy manifest entries), deterministically in file-list order.
func FallbackFromFiles(files []string, title string) []Node {
	nodes := []Node{
		{Kind: KindHeading, Level: 1, Text: title},
		{Kind: KindParagraph, Text: fmt.Sprintf("Stacked view of %d file(s).", len(files))},
	}
	for _, file := range files {
		nodes = append(nodes, Node{
			Kind:     KindCode,
			File:     file,
			Language: languageForFile(file),
			Title:    file + " Editor",
		})
	}
	return nodes
}

var extLanguages = map[string]string{
	".c":    "c",
	".cpp":  "cpp",
	".css":  "css",
	".go":   "go",
	".h":    "c",
	".html": "html",
	".java": "java",
	".js":   "javascript",
	".json": "json",
	".jsx":  "javascript",
	".md":   "markdown",
	".py":   "python",
	".rs":   "rust",
	".sh":   "bash",
	".sql":  "sql",
	".ts":   "typescript",
	".tsx":  "typescript",
	".yaml": "yaml",
	".yml":  "yaml",
}

func languageForFile(file string) string {
	if lang, ok := extLanguages[strings.ToLower(filepath.Ext(file))]; ok {
		return lang
	}
	return "text"
}
