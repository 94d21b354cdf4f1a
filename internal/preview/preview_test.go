package preview

import (
	"strings"
	"testing"

	"github.com/filestack/filestack/internal/document"
)

func staticLookup(files map[string]string) ContentLookup {
	return func(file string) string { return files[file] }
}

func TestComposeInlinesFileContent(t *testing.T) {
	nodes := []document.Node{
		{Kind: document.KindHeading, Level: 2, Text: "Model"},
		{Kind: document.KindParagraph, Text: "The user model."},
		{Kind: document.KindList, Items: []string{"create", "delete"}},
		{Kind: document.KindCode, File: "user.ts", Language: "typescript", Title: "user.ts Editor"},
	}

	out := Compose("User Service", nodes, staticLookup(map[string]string{
		"user.ts": "export class User {}\n",
	}))

	for _, want := range []string{
		"# User Service",
		"## Model",
		"The user model.",
		"- create",
		"**user.ts Editor**",
		"```typescript\nexport class User {}\n```",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("composed document missing %q:\n%s", want, out)
		}
	}
}

func TestComposeSkipsTitleWhenDocumentHasOwnHeading(t *testing.T) {
	nodes := []document.Node{
		{Kind: document.KindHeading, Level: 1, Text: "User Service"},
		{Kind: document.KindParagraph, Text: "The user model."},
	}

	out := Compose("User Service", nodes, staticLookup(nil))
	if got := strings.Count(out, "# User Service"); got != 1 {
		t.Fatalf("expected exactly one top heading, got %d:\n%s", got, out)
	}
}

func TestComposeUnknownNode(t *testing.T) {
	out := Compose("", []document.Node{{Kind: "wat"}}, staticLookup(nil))
	if !strings.Contains(out, document.UnknownPlaceholder) {
		t.Fatalf("expected visible placeholder, got:\n%s", out)
	}
}

func TestOutline(t *testing.T) {
	md := strings.Join([]string{
		"# Top",
		"",
		"prose",
		"",
		"## Section",
		"",
		"### Deep",
	}, "\n")

	items := Outline(md)
	if len(items) != 3 {
		t.Fatalf("expected 3 headings, got %#v", items)
	}
	if items[0].Level != 1 || items[0].Text != "Top" || items[0].Line != 1 {
		t.Errorf("unexpected first item: %#v", items[0])
	}
	if items[1].Level != 2 || items[1].Text != "Section" {
		t.Errorf("unexpected second item: %#v", items[1])
	}
	if items[2].Level != 3 || items[2].Line != 7 {
		t.Errorf("unexpected third item: %#v", items[2])
	}
}

func TestOutlineEmptyDocument(t *testing.T) {
	if items := Outline(""); len(items) != 0 {
		t.Fatalf("expected no headings, got %#v", items)
	}
}
