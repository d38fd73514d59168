// Package storage keeps uploaded files (documents, avatars, member
// attachments) on disk and hands out opaque references that remain
// valid across renames of the original file.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("file not found")

// FileStore stores blobs under a single directory, one file per
// reference. References are uuid-named with the original extension
// preserved so type sniffing by name keeps working.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating storage directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Save writes the content and returns its reference.
func (fs *FileStore) Save(fileName string, content io.Reader) (string, error) {
	ref := uuid.New().String() + filepath.Ext(fileName)
	f, err := os.Create(filepath.Join(fs.dir, ref))
	if err != nil {
		return "", fmt.Errorf("creating stored file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("writing stored file: %w", err)
	}
	return ref, nil
}

// Open returns the stored content for a reference.
func (fs *FileStore) Open(ref string) (io.ReadCloser, error) {
	f, err := os.Open(fs.path(ref))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("opening stored file: %w", err)
	}
	return f, nil
}

// Path returns the retrievable on-disk location for a reference.
func (fs *FileStore) Path(ref string) string {
	return fs.path(ref)
}

// Delete removes a stored file. Unknown references are a no-op.
func (fs *FileStore) Delete(ref string) error {
	err := os.Remove(fs.path(ref))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("deleting stored file: %w", err)
	}
	return nil
}

// path confines refs to the storage directory.
func (fs *FileStore) path(ref string) string {
	return filepath.Join(fs.dir, filepath.Base(ref))
}
