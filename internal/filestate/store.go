// Package filestate is the single source of truth for file content during a
// session: last-known saved content, pending unsaved content, and the dirty
// flag per path.
package filestate

import (
	"context"
	"fmt"
	"sync"
)

// FileRecord is the tracked state for one path. A record is created the
// first time a file is read or saved and never deleted during a session.
type FileRecord struct {
	Path    string
	Saved   *string
	Unsaved *string
}

// Dirty reports whether the record has unsaved edits pending.
func (r *FileRecord) Dirty() bool { return r.Unsaved != nil }

// SaveResult is the outcome of one save attempt inside SaveAll.
type SaveResult struct {
	Path string
	Err  error
}

// Store owns all FileRecords for an open workspace. It is constructed
// explicitly and handed to whoever needs it; there is no ambient instance.
// The mutex exists only because the TUI program and CLI share the value;
// logically there is a single mutator at a time.
type Store struct {
	mu      sync.Mutex
	fs      FS
	records map[string]*FileRecord
	order   []string
}

func NewStore(fsys FS) *Store {
	return &Store{
		fs:      fsys,
		records: make(map[string]*FileRecord),
	}
}

func (s *Store) record(path string) *FileRecord {
	rec, ok := s.records[path]
	if !ok {
		rec = &FileRecord{Path: path}
		s.records[path] = rec
		s.order = append(s.order, path)
	}
	return rec
}

// GetContent returns the unsaved content when present, else the saved
// content. The second result is false when the path has never been loaded.
func (s *Store) GetContent(path string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[path]
	if !ok {
		return "", false
	}
	if rec.Unsaved != nil {
		return *rec.Unsaved, true
	}
	if rec.Saved != nil {
		return *rec.Saved, true
	}
	return "", false
}

// Dirty reports whether the path has unsaved edits.
func (s *Store) Dirty(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[path]
	return ok && rec.Dirty()
}

// DirtyPaths returns every dirty path in first-touch order.
func (s *Store) DirtyPaths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var paths []string
	for _, path := range s.order {
		if s.records[path].Dirty() {
			paths = append(paths, path)
		}
	}
	return paths
}

// SetLoadedContent records content freshly read from disk. It never
// clobbers pending unsaved edits.
func (s *Store) SetLoadedContent(path, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.record(path)
	rec.Saved = &content
}

// RecordEdit stages new unsaved content for the path. Recording content
// equal to the saved content still marks the record dirty; save decides
// what actually reaches disk.
func (s *Store) RecordEdit(path, newContent string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.record(path)
	rec.Unsaved = &newContent
}

// Load returns the tracked content for path, reading it through the FS
// collaborator on first access and recording it as saved.
func (s *Store) Load(ctx context.Context, path string) (string, error) {
	if text, ok := s.GetContent(path); ok {
		return text, nil
	}

	text, err := s.fs.ReadFile(ctx, path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	s.SetLoadedContent(path, text)
	return text, nil
}

// SaveOne writes the pending unsaved content for path, folding it into the
// saved content on success. On failure the record is left unchanged. Paths
// with nothing pending succeed as a no-op.
func (s *Store) SaveOne(ctx context.Context, path string) error {
	s.mu.Lock()
	rec, ok := s.records[path]
	if !ok || rec.Unsaved == nil {
		s.mu.Unlock()
		return nil
	}
	pending := *rec.Unsaved
	s.mu.Unlock()

	if err := s.fs.WriteFile(ctx, path, pending); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec.Saved = &pending
	// An edit recorded while the write was in flight stays dirty; the save
	// completed against the content it captured at start.
	if rec.Unsaved != nil && *rec.Unsaved == pending {
		rec.Unsaved = nil
	}
	return nil
}

// SaveAll attempts SaveOne for every currently dirty path. A failure on one
// path never blocks the others; results are reported per path in
// first-touch order.
func (s *Store) SaveAll(ctx context.Context) []SaveResult {
	var results []SaveResult
	for _, path := range s.DirtyPaths() {
		results = append(results, SaveResult{Path: path, Err: s.SaveOne(ctx, path)})
	}
	return results
}
