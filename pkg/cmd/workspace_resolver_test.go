package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/filestack/filestack/internal/registry"
	"github.com/filestack/filestack/internal/workspace"
)

func writeManifest(t *testing.T, dir, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, registry.ManifestName), []byte(body), 0o644); err != nil {
		t.Fatalf("write manifest failed: %v", err)
	}
}

func TestResolveWorkspaceRootExplicitOverride(t *testing.T) {
	root := t.TempDir()

	got, err := ResolveWorkspaceRoot(root)
	if err != nil {
		t.Fatalf("ResolveWorkspaceRoot returned error: %v", err)
	}
	if got != root {
		t.Fatalf("expected %q, got %q", root, got)
	}

	if _, err := ResolveWorkspaceRoot(filepath.Join(root, "missing")); err == nil {
		t.Fatal("expected error for nonexistent override")
	}
}

func TestResolveWorkspaceRootWalksUpToManifest(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, `{"views": []}`)

	nested := filepath.Join(root, "src", "user")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}

	restore, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd failed: %v", err)
	}
	t.Cleanup(func() { os.Chdir(restore) })
	if err := os.Chdir(nested); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}

	got, err := ResolveWorkspaceRoot("")
	if err != nil {
		t.Fatalf("ResolveWorkspaceRoot returned error: %v", err)
	}
	// TempDir may sit behind a symlink on some platforms; compare resolved.
	wantResolved, _ := filepath.EvalSymlinks(root)
	gotResolved, _ := filepath.EvalSymlinks(got)
	if gotResolved != wantResolved {
		t.Fatalf("expected %q, got %q", wantResolved, gotResolved)
	}
}

func TestResolveViewArg(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, `{
		"views": [
			{"title": "User Service", "files": ["a.ts"]},
			{"title": "User Sessions", "files": ["b.ts"]},
			{"title": "Billing", "files": ["c.ts"]}
		]
	}`)
	for _, name := range []string{"a.ts", "b.ts", "c.ts"} {
		if err := os.WriteFile(filepath.Join(root, name), []byte("export {}\n"), 0o644); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}

	ws, err := workspace.Open(root, nil)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}

	if view, err := ResolveViewArg(ws, "Billing"); err != nil || view.Title != "Billing" {
		t.Fatalf("exact match failed: %v", err)
	}
	if view, err := ResolveViewArg(ws, "bill"); err != nil || view.Title != "Billing" {
		t.Fatalf("prefix match failed: %v", err)
	}
	if _, err := ResolveViewArg(ws, "user s"); err == nil {
		t.Fatal("expected ambiguity error")
	}
	if _, err := ResolveViewArg(ws, "payments"); err == nil {
		t.Fatal("expected no-match error")
	}
}
