package dialect

import (
	"reflect"
	"strings"
	"testing"

	"github.com/filestack/filestack/internal/content"
)

func TestParseFrontMatter(t *testing.T) {
	src := strings.Join([]string{
		"---",
		"title: User Service",
		`files: ["user/user.ts","api/routes.ts"]`,
		"author: someone",
		"---",
		"# Overview",
	}, "\n")

	doc, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if doc.Title != "User Service" {
		t.Errorf("expected title %q, got %q", "User Service", doc.Title)
	}
	if len(doc.Content) != 1 {
		t.Fatalf("expected 1 content item, got %d", len(doc.Content))
	}
	if h, ok := doc.Content[0].(content.Heading); !ok || h.Level != 1 || h.Text != "Overview" {
		t.Errorf("unexpected first item: %#v", doc.Content[0])
	}
}

func TestParseWithoutFrontMatter(t *testing.T) {
	doc, err := Parse("just a paragraph\n")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if doc.Title != "" {
		t.Errorf("expected empty title, got %q", doc.Title)
	}
	want := []content.Item{content.Paragraph{Text: "just a paragraph"}}
	if !reflect.DeepEqual(doc.Content, want) {
		t.Errorf("expected %#v, got %#v", want, doc.Content)
	}
}

func TestParseUnclosedFrontMatterIsBody(t *testing.T) {
	doc, err := Parse("---\ntitle: lost\nstill body\n")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if doc.Title != "" {
		t.Errorf("expected no title from unclosed front matter, got %q", doc.Title)
	}
	// Everything, including the stray delimiter lines, parses as paragraphs.
	if len(doc.Content) != 3 {
		t.Fatalf("expected 3 paragraphs, got %#v", doc.Content)
	}
}

func TestParseFilesValueFallback(t *testing.T) {
	cases := []struct {
		name  string
		value string
		want  []string
	}{
		{"json array", `["a.ts","b.ts"]`, []string{"a.ts", "b.ts"}},
		{"comma fallback", `[a.ts, "b.ts", 'c.ts']`, []string{"a.ts", "b.ts", "c.ts"}},
		{"empty", `[]`, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := parseFilesValue(tc.value)
			if len(got) == 0 && len(tc.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestParseCodeRefBlock(t *testing.T) {
	src := "```typescript:user/user.ts\n// comment\n```\n"

	doc, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	want := []content.Item{content.CodeRef{
		File:     "user/user.ts",
		Language: "typescript",
		Title:    "user/user.ts Editor",
	}}
	if !reflect.DeepEqual(doc.Content, want) {
		t.Fatalf("expected %#v, got %#v", want, doc.Content)
	}

	// The inner comment line must not survive anywhere in the model.
	for _, it := range doc.Content {
		if p, ok := it.(content.Paragraph); ok && strings.Contains(p.Text, "comment") {
			t.Fatalf("inner fence line leaked into the model: %#v", p)
		}
	}

	if !reflect.DeepEqual(doc.Files, []string{"user/user.ts"}) {
		t.Fatalf("expected derived files, got %v", doc.Files)
	}
}

func TestParseFenceOpenerRequiresSingleColon(t *testing.T) {
	cases := []struct {
		line string
		ok   bool
	}{
		{"```typescript:user/user.ts", true},
		{"```go", false},
		{"```", false},
		{"```a:b:c", false},
		{"```:file.ts", false},
		{"```go:", false},
	}

	for _, tc := range cases {
		if _, _, ok := parseFenceOpener(tc.line); ok != tc.ok {
			t.Errorf("parseFenceOpener(%q) ok=%v, want %v", tc.line, ok, tc.ok)
		}
	}
}

func TestParseListAccumulation(t *testing.T) {
	src := strings.Join([]string{
		"- one",
		"* two",
		"+ three",
		"",
		"- second list",
		"# After",
	}, "\n")

	doc, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	want := []content.Item{
		content.List{Items: []string{"one", "two", "three"}},
		content.List{Items: []string{"second list"}},
		content.Heading{Level: 1, Text: "After"},
	}
	if !reflect.DeepEqual(doc.Content, want) {
		t.Fatalf("expected %#v, got %#v", want, doc.Content)
	}
}

func TestParseListFlushedAtEOF(t *testing.T) {
	doc, err := Parse("- tail item")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	want := []content.Item{content.List{Items: []string{"tail item"}}}
	if !reflect.DeepEqual(doc.Content, want) {
		t.Fatalf("expected %#v, got %#v", want, doc.Content)
	}
}

func TestRoundTrip(t *testing.T) {
	items := []content.Item{
		content.Heading{Level: 1, Text: "A"},
		content.Paragraph{Text: "b"},
		content.List{Items: []string{"one", "two"}},
		content.CodeRef{File: "svc/main.go", Language: "go", Title: "svc/main.go Editor"},
		content.Heading{Level: 3, Text: "Deep"},
	}

	out := Serialize("Round Trip", items)
	doc, err := Parse(out)
	if err != nil {
		t.Fatalf("Parse of serialized output failed: %v", err)
	}

	if doc.Title != "Round Trip" {
		t.Errorf("title did not survive: %q", doc.Title)
	}
	if !reflect.DeepEqual(doc.Content, items) {
		t.Errorf("content did not round-trip:\nwant %#v\ngot  %#v", items, doc.Content)
	}
}

func TestSerializeRecomputesFiles(t *testing.T) {
	items := []content.Item{
		content.CodeRef{File: "a.go", Language: "go", Title: "a.go Editor"},
		content.CodeRef{File: "b.go", Language: "go", Title: "b.go Editor"},
		content.CodeRef{File: "a.go", Language: "go", Title: "a.go Editor"},
	}

	out := Serialize("t", items)
	if !strings.Contains(out, `files: ["a.go","b.go"]`) {
		t.Fatalf("front matter files not recomputed from content:\n%s", out)
	}
}

func TestSerializeEmptyContent(t *testing.T) {
	out := Serialize("Empty", nil)
	if !strings.Contains(out, "files: []") {
		t.Fatalf("expected empty files array, got:\n%s", out)
	}
	doc, err := Parse(out)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if doc.Title != "Empty" || len(doc.Content) != 0 {
		t.Fatalf("unexpected round-trip of empty document: %#v", doc)
	}
}
