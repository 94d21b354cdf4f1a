package workspace

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/filestack/filestack/internal/registry"
)

func TestOpenKeepsWorkspaceOnValidationFailure(t *testing.T) {
	root := t.TempDir()
	manifest := filepath.Join(root, registry.ManifestName)
	if err := os.WriteFile(manifest, []byte(`{"views": [{"path": "x.md"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	ws, err := Open(root, nil)

	var verrs registry.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}
	if ws == nil {
		t.Fatal("workspace must remain open alongside validation errors")
	}
	if len(ws.Views()) != 0 {
		t.Fatalf("expected zero views, got %d", len(ws.Views()))
	}
}

func TestFindViewPreservesManifestOrder(t *testing.T) {
	ws := newTestWorkspace(t)

	views := ws.Views()
	if len(views) != 2 {
		t.Fatalf("expected 2 views, got %d", len(views))
	}
	if views[0].Title != "User Service" || views[1].Title != "Legacy" {
		t.Fatalf("manifest order not preserved: %#v", views)
	}

	if _, ok := ws.FindView("User Service"); !ok {
		t.Error("expected to find existing view")
	}
	if _, ok := ws.FindView("Nope"); ok {
		t.Error("unexpected view found")
	}
}

func TestOnContentChangedRoutesToStore(t *testing.T) {
	ws := newTestWorkspace(t)

	path := filepath.Join(ws.Root, "user/user.ts")
	ws.OnContentChanged(path, "changed")

	if got, _ := ws.Store.GetContent(path); got != "changed" {
		t.Fatalf("edit not routed into store, got %q", got)
	}
	if !ws.Store.Dirty(path) {
		t.Fatal("path must be dirty after routed edit")
	}
}
