// Package scan walks a workspace for files a view could stack, and checks
// that the files views already reference are actually on disk.
package scan

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/filestack/filestack/internal/content"
	"github.com/filestack/filestack/internal/dialect"
	"github.com/filestack/filestack/internal/pathutil"
	"github.com/filestack/filestack/internal/registry"
)

var skipDirs = []string{".git", "node_modules", "vendor", ".filestack"}

type Scanner struct {
	root    string
	allowed map[string]struct{}
}

func NewScanner(root string, allowedExtensions []string) *Scanner {
	allowed := make(map[string]struct{}, len(allowedExtensions))
	for _, ext := range allowedExtensions {
		allowed[strings.ToLower(ext)] = struct{}{}
	}
	return &Scanner{root: root, allowed: allowed}
}

// WalkFiles lists every stackable file under the workspace root, relative to
// the root, in walk order.
func (s *Scanner) WalkFiles() ([]string, error) {
	var files []string

	err := filepath.Walk(
		s.root,
		func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if info.IsDir() {
				for _, skip := range skipDirs {
					if info.Name() == skip {
						return filepath.SkipDir
					}
				}
				return nil
			}

			if _, ok := s.allowed[strings.ToLower(filepath.Ext(path))]; !ok {
				return nil
			}

			rel, err := filepath.Rel(s.root, path)
			if err != nil {
				return err
			}
			files = append(files, filepath.ToSlash(rel))
			return nil
		},
	)
	if err != nil {
		return nil, err
	}

	return files, nil
}

// Missing describes a view reference with no file behind it.
type Missing struct {
	View string
	File string
}

// ReferencedFiles resolves every code file a view stacks: the legacy list
// as-is, or the code references parsed out of the dialect file against its
// directory. An unreadable or unparseable dialect file yields nothing; the
// file itself is checked by MissingFiles.
func ReferencedFiles(root string, view registry.View) []string {
	if view.Path == "" {
		return view.Files
	}

	data, err := os.ReadFile(view.Path)
	if err != nil {
		return nil
	}
	doc, err := dialect.Parse(string(data))
	if err != nil {
		return nil
	}

	base := view.Dir(root)
	var files []string
	for _, ref := range content.FilesOf(doc.Content) {
		files = append(files, pathutil.Resolve(ref, base, root))
	}
	return files
}

// MissingFiles checks every file the given views reference and reports the
// ones absent from disk. For dialect-backed views both the dialect file and
// the files its code blocks reference are checked.
func MissingFiles(root string, views []registry.View) []Missing {
	var missing []Missing

	for _, view := range views {
		if view.Path != "" {
			if _, err := os.Stat(view.Path); err != nil {
				missing = append(missing, Missing{View: view.Title, File: view.Path})
				continue
			}
		}
		for _, file := range ReferencedFiles(root, view) {
			if _, err := os.Stat(file); err != nil {
				missing = append(missing, Missing{View: view.Title, File: file})
			}
		}
	}

	return missing
}
