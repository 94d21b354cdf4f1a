// Package registry loads and validates the workspace manifest that
// enumerates views, and resolves every file reference it names.
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/filestack/filestack/internal/pathutil"
)

// ManifestName is the workspace-level manifest file.
const ManifestName = "filestack.json"

// DefaultMaxFilesPerView caps how many files a single view may stack.
const DefaultMaxFilesPerView = 50

// DefaultAllowedExtensions is the code file allow-list applied to manifest
// file entries.
var DefaultAllowedExtensions = []string{
	".c", ".cpp", ".css", ".go", ".h", ".html", ".java", ".js", ".json",
	".jsx", ".md", ".py", ".rs", ".sh", ".sql", ".ts", ".tsx", ".txt",
	".yaml", ".yml",
}

// View is one resolved manifest entry. Path points at the dialect file for
// modern entries; legacy entries carry a bare Files list instead and Path is
// empty. All paths are resolved to absolute form.
type View struct {
	Title string
	Path  string
	Files []string
}

// Dir returns the directory in-content references resolve against: the
// dialect file's directory when there is one, else the workspace root.
func (v View) Dir(root string) string {
	if v.Path == "" {
		return root
	}
	return filepath.Dir(v.Path)
}

// Manifest is the fully validated set of views in manifest order.
type Manifest struct {
	Root  string
	Path  string
	Views []View
}

// ConfigError describes one discrete problem with the manifest.
type ConfigError struct {
	View   string
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.View == "" {
		return fmt.Sprintf("manifest: %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("manifest: view %q: %s: %s", e.View, e.Field, e.Reason)
}

// ValidationErrors collects every problem found in one pass. The registry
// never returns a partially valid manifest alongside errors.
type ValidationErrors []*ConfigError

func (ve ValidationErrors) Error() string {
	reasons := make([]string, len(ve))
	for i, e := range ve {
		reasons[i] = e.Error()
	}
	return fmt.Sprintf("%d manifest problem(s): %s", len(ve), strings.Join(reasons, "; "))
}

// Options tunes validation limits. Zero values fall back to the defaults.
type Options struct {
	MaxFilesPerView   int
	AllowedExtensions []string
}

type Registry struct {
	root     string
	maxFiles int
	allowed  map[string]bool
}

func NewRegistry(root string, opts Options) *Registry {
	maxFiles := opts.MaxFilesPerView
	if maxFiles <= 0 {
		maxFiles = DefaultMaxFilesPerView
	}

	exts := opts.AllowedExtensions
	if len(exts) == 0 {
		exts = DefaultAllowedExtensions
	}
	allowed := make(map[string]bool, len(exts))
	for _, ext := range exts {
		allowed[strings.ToLower(ext)] = true
	}

	return &Registry{root: root, maxFiles: maxFiles, allowed: allowed}
}

// Load reads and validates the manifest. It returns either a fully valid
// Manifest or the collected ValidationErrors, never both.
func (r *Registry) Load() (*Manifest, error) {
	manifestPath := filepath.Join(r.root, ManifestName)

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, ValidationErrors{{Field: "manifest", Reason: fmt.Sprintf("cannot read %s: %v", manifestPath, err)}}
	}

	return r.Parse(data, manifestPath)
}

// Parse validates raw manifest JSON. Split from Load so tests and the
// validate command can run it against arbitrary bytes.
func (r *Registry) Parse(data []byte, manifestPath string) (*Manifest, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, ValidationErrors{{Field: "manifest", Reason: fmt.Sprintf("malformed JSON: %v", err)}}
	}

	top, ok := raw.(map[string]any)
	if !ok {
		return nil, ValidationErrors{{Field: "manifest", Reason: "top level is not an object"}}
	}

	viewsRaw, present := top["views"]
	if !present {
		return nil, ValidationErrors{{Field: "views", Reason: "missing required field"}}
	}

	viewList, ok := viewsRaw.([]any)
	if !ok {
		return nil, ValidationErrors{{Field: "views", Reason: "must be an array"}}
	}

	manifestDir := filepath.Dir(manifestPath)
	var errs ValidationErrors
	var views []View

	for i, entryRaw := range viewList {
		view, entryErrs := r.parseEntry(i, entryRaw, manifestDir)
		if len(entryErrs) > 0 {
			errs = append(errs, entryErrs...)
			continue
		}
		views = append(views, view)
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return &Manifest{Root: r.root, Path: manifestPath, Views: views}, nil
}

func (r *Registry) parseEntry(index int, entryRaw any, manifestDir string) (View, ValidationErrors) {
	label := fmt.Sprintf("views[%d]", index)

	entry, ok := entryRaw.(map[string]any)
	if !ok {
		return View{}, ValidationErrors{{Field: label, Reason: "entry is not an object"}}
	}

	var errs ValidationErrors

	title, ok := entry["title"].(string)
	if !ok || title == "" {
		errs = append(errs, &ConfigError{Field: label + ".title", Reason: "missing required field"})
	} else {
		label = title
	}

	pathRaw, hasPath := entry["path"]
	filesRaw, hasFiles := entry["files"]

	if hasPath && hasFiles {
		errs = append(errs, &ConfigError{View: label, Field: "path", Reason: "entry cannot have both path and files"})
		return View{}, errs
	}

	switch {
	case hasPath:
		path, ok := pathRaw.(string)
		if !ok || path == "" {
			errs = append(errs, &ConfigError{View: label, Field: "path", Reason: "must be a non-empty string"})
			break
		}
		if len(errs) == 0 {
			return View{Title: title, Path: pathutil.Resolve(path, manifestDir, r.root)}, nil
		}

	case hasFiles:
		files, fileErrs := r.parseFiles(label, filesRaw, manifestDir)
		errs = append(errs, fileErrs...)
		if len(errs) == 0 {
			return View{Title: title, Files: files}, nil
		}

	default:
		errs = append(errs, &ConfigError{View: label, Field: "path", Reason: "entry needs either path or files"})
	}

	return View{}, errs
}

func (r *Registry) parseFiles(view string, filesRaw any, manifestDir string) ([]string, ValidationErrors) {
	list, ok := filesRaw.([]any)
	if !ok {
		return nil, ValidationErrors{{View: view, Field: "files", Reason: "must be an array"}}
	}

	var errs ValidationErrors

	if len(list) == 0 {
		errs = append(errs, &ConfigError{View: view, Field: "files", Reason: "must name at least one file"})
	}
	if len(list) > r.maxFiles {
		errs = append(errs, &ConfigError{
			View:   view,
			Field:  "files",
			Reason: fmt.Sprintf("%d files exceeds the maximum of %d per view", len(list), r.maxFiles),
		})
	}

	seen := make(map[string]bool)
	var files []string

	for i, raw := range list {
		field := fmt.Sprintf("files[%d]", i)

		path, ok := raw.(string)
		if !ok || path == "" {
			errs = append(errs, &ConfigError{View: view, Field: field, Reason: "must be a non-empty string"})
			continue
		}

		if ext := strings.ToLower(filepath.Ext(path)); !r.allowed[ext] {
			errs = append(errs, &ConfigError{
				View:   view,
				Field:  field,
				Reason: fmt.Sprintf("unsupported file extension %q", ext),
			})
			continue
		}

		resolved := pathutil.Resolve(path, manifestDir, r.root)
		if seen[resolved] {
			errs = append(errs, &ConfigError{View: view, Field: field, Reason: fmt.Sprintf("duplicate file path %q", path)})
			continue
		}
		seen[resolved] = true
		files = append(files, resolved)
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return files, nil
}
