package recorder

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// TakeStore is the byte store take payloads are persisted to. It is
// path-addressable by bare filename; the store owns the directory layout.
type TakeStore interface {
	// Save writes the whole payload under name, overwriting any prior file
	Save(ctx context.Context, name string, data []byte) (string, error)
	// Read returns the whole payload stored under name
	Read(ctx context.Context, name string) ([]byte, error)
	// Delete removes the file stored under name
	Delete(ctx context.Context, name string) error
	// List returns the bare filenames matching a glob pattern
	List(ctx context.Context, pattern string) ([]string, error)
	// Root returns the directory backing the store
	Root() string
}

// FilesystemStore implements TakeStore on a local directory
type FilesystemStore struct {
	root string
}

// NewFilesystemStore creates a filesystem-backed take store
func NewFilesystemStore(root string) (*FilesystemStore, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create samples directory: %w", err)
	}

	return &FilesystemStore{
		root: root,
	}, nil
}

// Save writes data to root/name
func (fs *FilesystemStore) Save(ctx context.Context, name string, data []byte) (string, error) {
	// Re-create the directory in case an operator wiped it while running
	if err := os.MkdirAll(fs.root, 0755); err != nil {
		return "", fmt.Errorf("failed to create samples directory: %w", err)
	}

	fullPath := filepath.Join(fs.root, filepath.Base(name))
	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return fullPath, nil
}

// Read loads the whole file stored under name
func (fs *FilesystemStore) Read(ctx context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(fs.root, filepath.Base(name)))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

// Delete removes the file stored under name
func (fs *FilesystemStore) Delete(ctx context.Context, name string) error {
	if err := os.Remove(filepath.Join(fs.root, filepath.Base(name))); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// List returns the bare filenames under the root matching pattern
func (fs *FilesystemStore) List(ctx context.Context, pattern string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(fs.root, pattern))
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, filepath.Base(m))
	}
	return names, nil
}

// Root returns the directory backing the store
func (fs *FilesystemStore) Root() string {
	return fs.root
}
