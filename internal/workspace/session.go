package workspace

import (
	"context"
	"errors"
	"fmt"

	"github.com/filestack/filestack/internal/content"
	"github.com/filestack/filestack/internal/dialect"
	"github.com/filestack/filestack/internal/document"
	"github.com/filestack/filestack/internal/filestate"
	"github.com/filestack/filestack/internal/pathutil"
	"github.com/filestack/filestack/internal/registry"
)

// State is the per-view lifecycle.
type State int

const (
	StateUnloaded State = iota
	StateLoading
	StateLoaded
	StateSaving
	StateError
)

func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateSaving:
		return "saving"
	case StateError:
		return "error"
	}
	return "unknown"
}

// SurfaceState is the attach handshake with the editing surface. Change
// tracking is enabled by an explicit ready event from the surface, never by
// waiting a fixed duration.
type SurfaceState int

const (
	SurfaceAwaitingAttach SurfaceState = iota
	SurfaceReady
)

// Session is one opened view: its projected nodes, its lifecycle state, and
// the per-file load problems that degraded but did not fail the load.
type Session struct {
	ws      *Workspace
	view    registry.View
	title   string
	state   State
	surface SurfaceState
	nodes   []document.Node
	items   []content.Item
	loadErr error
	fileErr map[string]error
}

// OpenView loads a view into a session. Codec and validation failures land
// the session in StateError (terminal for this attempt; reopening retries).
// Unreadable referenced files degrade to placeholders instead.
func (ws *Workspace) OpenView(ctx context.Context, view registry.View) *Session {
	sess := &Session{
		ws:      ws,
		view:    view,
		title:   view.Title,
		state:   StateLoading,
		surface: SurfaceAwaitingAttach,
		fileErr: make(map[string]error),
	}

	if view.Path != "" {
		text, err := ws.Store.Load(ctx, view.Path)
		if err != nil {
			sess.fail(err)
			return sess
		}

		doc, err := dialect.Parse(text)
		if err != nil {
			sess.fail(fmt.Errorf("failed to load view %q: %w", view.Title, err))
			return sess
		}

		if doc.Title != "" {
			sess.title = doc.Title
		}
		sess.items = doc.Content
		sess.nodes = document.ToNodes(doc.Content)
	} else {
		display := make([]string, len(view.Files))
		for i, f := range view.Files {
			display[i] = pathutil.WorkspaceRelative(ws.Root, f)
		}
		sess.nodes = document.FallbackFromFiles(display, view.Title)
		sess.items = document.FromNodes(sess.nodes)
	}

	// Prefetch every referenced file so the surface renders from the store.
	for _, node := range sess.nodes {
		if node.Kind != document.KindCode {
			continue
		}
		resolved := sess.ResolveFile(node.File)
		if _, err := ws.Store.Load(ctx, resolved); err != nil {
			sess.fileErr[resolved] = err
		}
	}

	sess.state = StateLoaded
	return sess
}

func (s *Session) fail(err error) {
	s.state = StateError
	s.loadErr = err
}

func (s *Session) Title() string         { return s.title }
func (s *Session) View() registry.View   { return s.view }
func (s *Session) State() State          { return s.state }
func (s *Session) Surface() SurfaceState { return s.surface }
func (s *Session) Err() error            { return s.loadErr }

// Nodes returns the current projection for rendering.
func (s *Session) Nodes() []document.Node {
	nodes := make([]document.Node, len(s.nodes))
	copy(nodes, s.nodes)
	return nodes
}

// SetNodes replaces the projection after the surface edited prose
// structure. Ignored until the surface has attached.
func (s *Session) SetNodes(nodes []document.Node) {
	if s.surface != SurfaceReady {
		return
	}
	s.nodes = make([]document.Node, len(nodes))
	copy(s.nodes, nodes)
}

// StageDialect serializes the current nodes and records the dialect file as
// edited, so prose changes show up as unsaved work before any save. Legacy
// views have no dialect file and nothing to stage.
func (s *Session) StageDialect() {
	if s.surface != SurfaceReady || s.view.Path == "" {
		return
	}
	text := dialect.Serialize(s.title, document.FromNodes(s.nodes))
	s.ws.Store.RecordEdit(s.view.Path, text)
}

// AttachSurface is the surface-ready event; it moves the handshake to
// SurfaceReady and enables change tracking.
func (s *Session) AttachSurface() {
	s.surface = SurfaceReady
}

// RecordFileEdit routes a code-block edit into the store, gated on the
// attach handshake so a surface still laying itself out cannot emit
// phantom edits.
func (s *Session) RecordFileEdit(ref, newText string) {
	if s.surface != SurfaceReady {
		return
	}
	s.ws.OnContentChanged(s.ResolveFile(ref), newText)
}

// ResolveFile resolves an in-content file reference against the dialect
// file's directory (or the workspace root for legacy views).
func (s *Session) ResolveFile(ref string) string {
	return pathutil.Resolve(ref, s.view.Dir(s.ws.Root), s.ws.Root)
}

// FileContent returns the store's view of a referenced file, or an inline
// placeholder when the initial read failed. The view keeps rendering minus
// that one block's content.
func (s *Session) FileContent(ref string) string {
	resolved := s.ResolveFile(ref)
	if text, ok := s.ws.Store.GetContent(resolved); ok {
		return text
	}
	if err, ok := s.fileErr[resolved]; ok {
		return fmt.Sprintf("// unable to read %s: %v", ref, err)
	}
	return ""
}

// FileLoadError reports the read failure for a reference, if any.
func (s *Session) FileLoadError(ref string) error {
	return s.fileErr[s.ResolveFile(ref)]
}

// Dirty reports whether anything in the session's workspace store is
// pending a save.
func (s *Session) Dirty() bool {
	return len(s.ws.Store.DirtyPaths()) > 0
}

// Save serializes the session's current nodes back through the codec,
// stages the dialect file, and saves every dirty file. Per-path results are
// reported; a failed path stays dirty and can be retried.
func (s *Session) Save(ctx context.Context) ([]filestate.SaveResult, error) {
	if s.state != StateLoaded {
		return nil, fmt.Errorf("cannot save view in state %s", s.state)
	}

	s.state = StateSaving
	defer func() { s.state = StateLoaded }()

	items := document.FromNodes(s.nodes)
	if err := content.ValidateAll(items); err != nil {
		return nil, err
	}

	if s.view.Path != "" {
		text := dialect.Serialize(s.title, items)
		s.ws.Store.RecordEdit(s.view.Path, text)
	}

	results := s.ws.Store.SaveAll(ctx)

	var errs []error
	for _, res := range results {
		if res.Err != nil {
			errs = append(errs, res.Err)
		}
	}
	if len(errs) > 0 {
		return results, errors.Join(errs...)
	}

	// Content is replaced wholesale only once every write landed.
	s.items = items
	return results, nil
}
