// Package dialect converts between the textual front-matter+Markdown format
// backing a view and its structured content.
package dialect

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/filestack/filestack/internal/content"
)

const delimiter = "---"

var (
	headingRe = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	listRe    = regexp.MustCompile(`^[-*+]\s+(.+)$`)
)

// Document is the parsed form of one dialect file. Files is always derived
// from the CodeRefs in Content, never taken from the front matter.
type Document struct {
	Title   string
	Files   []string
	Content []content.Item
}

// ParseError reports a dialect file that parsed but failed structural
// validation.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("dialect: %s: %v", e.Reason, e.Err)
	}
	return "dialect: " + e.Reason
}

func (e *ParseError) Unwrap() error { return e.Err }

type frontMatter struct {
	title string
	files []string
}

// Parse reads a dialect file into a Document. Missing front matter is
// tolerated; the whole input is then treated as body.
func Parse(src string) (*Document, error) {
	lines := strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n")

	fm, body := splitFrontMatter(lines)

	items, err := parseBody(body)
	if err != nil {
		return nil, err
	}

	if err := content.ValidateAll(items); err != nil {
		return nil, &ParseError{Reason: "content failed validation", Err: err}
	}

	return &Document{
		Title:   fm.title,
		Files:   content.FilesOf(items),
		Content: items,
	}, nil
}

// splitFrontMatter peels the block between the first two `---` lines off the
// input. Unrecognized keys are ignored.
func splitFrontMatter(lines []string) (frontMatter, []string) {
	var fm frontMatter

	if len(lines) == 0 || strings.TrimSpace(lines[0]) != delimiter {
		return fm, lines
	}

	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == delimiter {
			for _, raw := range lines[1:i] {
				key, value, ok := strings.Cut(raw, ":")
				if !ok {
					continue
				}
				switch strings.TrimSpace(key) {
				case "title":
					fm.title = strings.TrimSpace(value)
				case "files":
					fm.files = parseFilesValue(strings.TrimSpace(value))
				}
			}
			return fm, lines[i+1:]
		}
	}

	// Opening delimiter with no close: treat everything as body.
	return frontMatter{}, lines
}

// parseFilesValue decodes the informational front-matter file list: JSON
// first, comma-split with quote stripping as the fallback.
func parseFilesValue(value string) []string {
	var files []string
	if err := json.Unmarshal([]byte(value), &files); err == nil {
		return files
	}

	trimmed := strings.Trim(value, "[]")
	if strings.TrimSpace(trimmed) == "" {
		return nil
	}
	for _, part := range strings.Split(trimmed, ",") {
		part = strings.TrimSpace(part)
		part = strings.Trim(part, `"'`)
		if part != "" {
			files = append(files, part)
		}
	}
	return files
}

func parseBody(lines []string) ([]content.Item, error) {
	var items []content.Item
	var pendingList []string

	flushList := func() {
		if len(pendingList) > 0 {
			items = append(items, content.List{Items: pendingList})
			pendingList = nil
		}
	}

	inCodeRef := false
	var codeLang, codeFile string

	for _, line := range lines {
		if inCodeRef {
			if strings.TrimSpace(line) == "```" {
				items = append(items, codeRefItem(codeLang, codeFile))
				inCodeRef = false
			}
			// Inner lines exist only for human readability of the raw
			// file; the referenced file holds the real content.
			continue
		}

		if lang, file, ok := parseFenceOpener(line); ok {
			flushList()
			inCodeRef = true
			codeLang, codeFile = lang, file
			continue
		}

		if m := headingRe.FindStringSubmatch(line); m != nil {
			flushList()
			items = append(items, content.Heading{
				Level: len(m[1]),
				Text:  strings.TrimSpace(m[2]),
			})
			continue
		}

		if m := listRe.FindStringSubmatch(line); m != nil {
			pendingList = append(pendingList, strings.TrimSpace(m[1]))
			continue
		}

		if strings.TrimSpace(line) == "" {
			flushList()
			continue
		}

		flushList()
		items = append(items, content.Paragraph{Text: strings.TrimSpace(line)})
	}

	if inCodeRef {
		// Unterminated fence at EOF still yields its reference.
		items = append(items, codeRefItem(codeLang, codeFile))
	}
	flushList()

	return items, nil
}

// parseFenceOpener matches ```<language>:<filepath> with exactly one colon.
func parseFenceOpener(line string) (lang, file string, ok bool) {
	rest, found := strings.CutPrefix(strings.TrimSpace(line), "```")
	if !found || rest == "" {
		return "", "", false
	}
	if strings.Count(rest, ":") != 1 {
		return "", "", false
	}
	lang, file, _ = strings.Cut(rest, ":")
	if lang == "" || file == "" {
		return "", "", false
	}
	return lang, file, true
}

func codeRefItem(lang, file string) content.CodeRef {
	return content.CodeRef{
		File:     file,
		Language: lang,
		Title:    file + " Editor",
	}
}

// Serialize renders a body back to the textual format. The front-matter
// files value is recomputed from the CodeRefs in items.
func Serialize(title string, items []content.Item) string {
	var b strings.Builder

	files := content.FilesOf(items)
	if files == nil {
		files = []string{}
	}
	encoded, _ := json.Marshal(files)

	b.WriteString(delimiter + "\n")
	b.WriteString("title: " + title + "\n")
	b.WriteString("files: " + string(encoded) + "\n")
	b.WriteString(delimiter + "\n")

	for _, it := range items {
		switch v := it.(type) {
		case content.Heading:
			b.WriteString(strings.Repeat("#", v.Level) + " " + v.Text + "\n")
		case content.Paragraph:
			b.WriteString(v.Text + "\n")
		case content.List:
			for _, item := range v.Items {
				b.WriteString("- " + item + "\n")
			}
		case content.CodeRef:
			b.WriteString("```" + v.Language + ":" + v.File + "\n")
			b.WriteString("// " + v.Title + "\n")
			b.WriteString("```\n")
		case content.Unknown:
			b.WriteString("Unknown content type\n")
		}
		b.WriteString("\n")
	}

	return b.String()
}
