// Package workspace ties the registry, the dialect codec, and the
// file-state store together for one open workspace.
package workspace

import (
	"fmt"
	"path/filepath"

	"github.com/filestack/filestack/internal/config"
	"github.com/filestack/filestack/internal/filestate"
	"github.com/filestack/filestack/internal/registry"
)

// Workspace owns the file-state store for as long as the workspace is open.
// Components reach file content through the store, never private copies.
type Workspace struct {
	Root     string
	Config   *config.Config
	Manifest *registry.Manifest
	Store    *filestate.Store
	FS       filestate.FS
}

// Open resolves root, loads the manifest, and builds the workspace. On
// manifest validation failure the workspace is still returned, with zero
// views, alongside the collected errors; the caller decides how to surface
// them.
func Open(root string, cfg *config.Config) (*Workspace, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve workspace root %s: %w", root, err)
	}

	fsys := filestate.DiskFS{}
	ws := &Workspace{
		Root:   abs,
		Config: cfg,
		Store:  filestate.NewStore(fsys),
		FS:     fsys,
	}

	opts := registry.Options{}
	if cfg != nil {
		opts.MaxFilesPerView = cfg.MaxFilesPerView
		opts.AllowedExtensions = cfg.AllowedExtensions
	}

	manifest, err := registry.NewRegistry(abs, opts).Load()
	if err != nil {
		ws.Manifest = &registry.Manifest{
			Root: abs,
			Path: filepath.Join(abs, registry.ManifestName),
		}
		return ws, err
	}
	ws.Manifest = manifest

	if cfg != nil {
		cfg.RememberWorkspace(abs)
	}

	return ws, nil
}

// Views returns the manifest's views in manifest order.
func (ws *Workspace) Views() []registry.View {
	return ws.Manifest.Views
}

// FindView locates a view by its manifest title.
func (ws *Workspace) FindView(title string) (registry.View, bool) {
	for _, v := range ws.Manifest.Views {
		if v.Title == title {
			return v, true
		}
	}
	return registry.View{}, false
}

// OnContentChanged is the callback contract for editing surfaces: every
// user edit to prose or a code block routes here as an unsaved change.
func (ws *Workspace) OnContentChanged(path, newText string) {
	ws.Store.RecordEdit(path, newText)
}
