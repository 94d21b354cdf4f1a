// Package content defines the structured items a view's body is made of.
package content

import "fmt"

// Item is the closed set of content variants. Each variant is a value type;
// the unexported marker keeps the set closed so switches stay exhaustive.
type Item interface {
	item()
}

// Heading is a section heading with a level between 1 and 6.
type Heading struct {
	Level int
	Text  string
}

// Paragraph is a single line of narrative prose.
type Paragraph struct {
	Text string
}

// CodeRef points at a real file on disk. The referenced file's text is never
// stored on the item; it lives in the file-state store keyed by File.
type CodeRef struct {
	File     string
	Language string
	Title    string
}

// List is an ordered bulleted list.
type List struct {
	Items []string
}

// Unknown preserves an unrecognized discriminant so foreign content renders
// as a visible placeholder instead of failing or vanishing.
type Unknown struct {
	Kind string
}

func (Heading) item()   {}
func (Paragraph) item() {}
func (CodeRef) item()   {}
func (List) item()      {}
func (Unknown) item()   {}

// InvalidItemError reports a structural validation failure on one item.
type InvalidItemError struct {
	Reason string
}

func (e *InvalidItemError) Error() string {
	return "invalid content item: " + e.Reason
}

// Validate checks the structural invariants of a single item. Failures are
// reported, never coerced.
func Validate(it Item) error {
	switch v := it.(type) {
	case Heading:
		if v.Level < 1 || v.Level > 6 {
			return &InvalidItemError{Reason: fmt.Sprintf("heading level %d outside 1..6", v.Level)}
		}
		if v.Text == "" {
			return &InvalidItemError{Reason: "heading text is empty"}
		}
	case Paragraph:
		// Empty paragraphs are legal; blank separators are lossy anyway.
	case CodeRef:
		if v.File == "" {
			return &InvalidItemError{Reason: "code reference has no file"}
		}
		if v.Language == "" {
			return &InvalidItemError{Reason: fmt.Sprintf("code reference %s has no language", v.File)}
		}
		if v.Title == "" {
			return &InvalidItemError{Reason: fmt.Sprintf("code reference %s has no title", v.File)}
		}
	case List:
		if len(v.Items) == 0 {
			return &InvalidItemError{Reason: "list has no items"}
		}
	case Unknown:
		// Deliberately valid; it exists to be rendered as a placeholder.
	}
	return nil
}

// ValidateAll validates a whole body and returns the first failure.
func ValidateAll(items []Item) error {
	for _, it := range items {
		if err := Validate(it); err != nil {
			return err
		}
	}
	return nil
}

// FilesOf returns every CodeRef file in first-appearance order, de-duplicated.
// This is the single source of truth for a view's derived file list.
func FilesOf(items []Item) []string {
	var files []string
	seen := make(map[string]bool)
	for _, it := range items {
		ref, ok := it.(CodeRef)
		if !ok {
			continue
		}
		if seen[ref.File] {
			continue
		}
		seen[ref.File] = true
		files = append(files, ref.File)
	}
	return files
}
