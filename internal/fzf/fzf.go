// Package fzf provides fuzzy selection over the workspace's views with a
// styled preview of each view's dialect file.
package fzf

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/muesli/termenv"

	"github.com/filestack/filestack/internal/pathutil"
	"github.com/filestack/filestack/internal/registry"
	"github.com/filestack/filestack/internal/workspace"
)

// ViewFinder encapsulates fuzzy selection over a workspace's views.
type ViewFinder struct {
	ws     *workspace.Workspace
	Header string
	views  []registry.View
}

func NewViewFinder(ws *workspace.Workspace, header string) *ViewFinder {
	return &ViewFinder{ws: ws, Header: header}
}

// Pick runs the finder and returns the selected view.
func (f *ViewFinder) Pick() (registry.View, error) {
	f.views = f.ws.Views()
	if len(f.views) == 0 {
		return registry.View{}, fmt.Errorf("workspace has no views")
	}

	options := []fuzzyfinder.Option{
		fuzzyfinder.WithPreviewWindow(f.renderPreview),
	}
	if f.Header != "" {
		options = append(options, fuzzyfinder.WithHeader(f.Header))
	}

	labels := make([]string, len(f.views))
	for i, v := range f.views {
		labels[i] = f.label(v)
	}

	idx, err := fuzzyfinder.Find(f.views, func(i int) string {
		return labels[i]
	}, options...)
	if err != nil {
		return registry.View{}, err
	}

	return f.views[idx], nil
}

func (f *ViewFinder) label(v registry.View) string {
	if v.Path != "" {
		return fmt.Sprintf("%s (%s)", v.Title, pathutil.WorkspaceRelative(f.ws.Root, v.Path))
	}
	return fmt.Sprintf("%s [%d file(s)]", v.Title, len(v.Files))
}

func (f *ViewFinder) renderPreview(i, w, h int) string {
	if i == -1 {
		return ""
	}

	view := f.views[i]
	if view.Path == "" {
		out := "Legacy view, no dialect file.\n\nFiles:\n"
		for _, file := range view.Files {
			out += "  - " + pathutil.WorkspaceRelative(f.ws.Root, file) + "\n"
		}
		return out
	}

	content, err := os.ReadFile(view.Path)
	if err != nil {
		return "Error reading view file"
	}

	r, _ := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dracula"),
		glamour.WithWordWrap(100),
		glamour.WithColorProfile(termenv.ANSI256),
	)

	markdown, err := r.Render(string(content))
	if err != nil {
		return "Error rendering markdown"
	}

	return markdown
}

// IsAbort reports whether the user backed out of the finder.
func IsAbort(err error) bool {
	return err == fuzzyfinder.ErrAbort
}
