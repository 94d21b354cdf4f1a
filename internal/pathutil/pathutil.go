package pathutil

import (
	"path/filepath"
	"strings"
)

// NormalizePath converts Windows-style separators to the current platform's separator
// and cleans the resulting path.
func NormalizePath(p string) string {
	if p == "" {
		return ""
	}

	// Replace Windows separators and collapse redundant separators/segments.
	replaced := strings.ReplaceAll(p, "\\", "/")
	return filepath.Clean(filepath.FromSlash(replaced))
}

// Resolve applies the file reference resolution rule used everywhere a path
// appears (manifest entries and in-content code references):
//
//   - a leading "/" means the path is already absolute and is used verbatim
//   - "./" or "../" resolve relative to the directory of the referencing
//     file (baseDir)
//   - anything else resolves relative to the workspace root
func Resolve(ref, baseDir, root string) string {
	switch {
	case strings.HasPrefix(ref, "/"):
		return filepath.Clean(ref)
	case strings.HasPrefix(ref, "./") || strings.HasPrefix(ref, "../"):
		return filepath.Clean(filepath.Join(baseDir, ref))
	default:
		return filepath.Clean(filepath.Join(root, ref))
	}
}

// WorkspaceRelative returns the path to target relative to the workspace root.
// The returned path always uses forward slashes to simplify downstream processing
// and ensure platform agnosticism. Targets outside the root are returned as-is.
func WorkspaceRelative(root, target string) string {
	rel, err := filepath.Rel(NormalizePath(root), NormalizePath(target))
	if err != nil || strings.HasPrefix(rel, "..") {
		return target
	}
	return filepath.ToSlash(rel)
}
