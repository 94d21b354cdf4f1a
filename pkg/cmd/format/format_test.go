package format

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFormatOneCanonicalizesAndIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "user.md")

	// Non-canonical: no front matter, no blank lines between blocks.
	src := strings.Join([]string{
		"# User Service",
		"The user model.",
		"```typescript:user.ts",
		"// stale inner line",
		"```",
	}, "\n")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	changed, err := formatOne(path, false)
	if err != nil {
		t.Fatalf("formatOne returned error: %v", err)
	}
	if !changed {
		t.Fatal("expected first pass to rewrite the file")
	}

	out, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !strings.Contains(string(out), `files: ["user.ts"]`) {
		t.Fatalf("canonical form missing recomputed files list:\n%s", out)
	}
	if strings.Contains(string(out), "stale inner line") {
		t.Fatalf("inner fence line should not survive canonicalization:\n%s", out)
	}

	changed, err = formatOne(path, false)
	if err != nil {
		t.Fatalf("second formatOne returned error: %v", err)
	}
	if changed {
		t.Fatal("canonical file should not change on a second pass")
	}
}

func TestFormatOneCheckDoesNotWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "user.md")
	src := "# Title\nprose\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	changed, err := formatOne(path, true)
	if err != nil {
		t.Fatalf("formatOne returned error: %v", err)
	}
	if !changed {
		t.Fatal("expected check to report a difference")
	}

	out, _ := os.ReadFile(path)
	if string(out) != src {
		t.Fatalf("check mode rewrote the file:\n%s", out)
	}
}
