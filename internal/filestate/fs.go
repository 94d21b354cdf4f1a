package filestate

import (
	"context"
	"os"
	"path/filepath"
)

// FS is the file-system collaborator the store writes through. Completion is
// never assumed to be synchronous by callers, hence the contexts.
type FS interface {
	ReadFile(ctx context.Context, path string) (string, error)
	WriteFile(ctx context.Context, path, content string) error
}

// DiskFS is the production FS backed by the operating system.
type DiskFS struct{}

func (DiskFS) ReadFile(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (DiskFS) WriteFile(ctx context.Context, path, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}
