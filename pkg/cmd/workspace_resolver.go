package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/filestack/filestack/internal/config"
	"github.com/filestack/filestack/internal/registry"
	"github.com/filestack/filestack/internal/workspace"
)

// ResolveWorkspaceRoot locates the workspace a command operates on. An
// explicit override is used as-is; otherwise the search walks up from the
// working directory until it finds a manifest, like git does for .git.
func ResolveWorkspaceRoot(override string) (string, error) {
	if override != "" {
		abs, err := filepath.Abs(override)
		if err != nil {
			return "", fmt.Errorf("failed to resolve workspace path %q: %w", override, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return "", fmt.Errorf("workspace %q: %w", override, err)
		}
		if !info.IsDir() {
			return "", fmt.Errorf("workspace %q is not a directory", override)
		}
		return abs, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := cwd
	for {
		if _, err := os.Stat(filepath.Join(dir, registry.ManifestName)); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf(
		"no %s found in %s or any parent; run `filestack init` or pass --workspace",
		registry.ManifestName, cwd,
	)
}

// OpenWorkspace resolves the root from the --workspace flag and opens it. A
// manifest with problems still opens (with zero views); the validation error
// is returned alongside so commands can decide how loudly to report it.
func OpenWorkspace(cfg *config.Config) (*workspace.Workspace, error) {
	root, err := ResolveWorkspaceRoot(viper.GetString("workspace"))
	if err != nil {
		return nil, err
	}

	ws, err := workspace.Open(root, cfg)
	if ws != nil && cfg != nil {
		// Recent-workspace tracking is best effort.
		_ = cfg.Save()
	}
	return ws, err
}

// ResolveViewArg matches a command argument against view titles,
// case-insensitively, preferring exact matches over prefixes.
func ResolveViewArg(ws *workspace.Workspace, arg string) (registry.View, error) {
	if view, ok := ws.FindView(arg); ok {
		return view, nil
	}

	lowered := strings.ToLower(arg)
	var matches []registry.View
	for _, view := range ws.Views() {
		if strings.HasPrefix(strings.ToLower(view.Title), lowered) {
			matches = append(matches, view)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return registry.View{}, fmt.Errorf("no view matches %q", arg)
	default:
		titles := make([]string, len(matches))
		for i, view := range matches {
			titles[i] = view.Title
		}
		return registry.View{}, fmt.Errorf(
			"%q is ambiguous: matches %s", arg, strings.Join(titles, ", "),
		)
	}
}
