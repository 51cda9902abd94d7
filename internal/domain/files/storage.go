package files

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DiskStore persists raw blobs under a single root directory. It knows
// nothing about metadata; keeping blob and record consistent is the
// service's job.
type DiskStore struct {
	root string
}

// NewDiskStore ensures the root directory exists and returns the store.
func NewDiskStore(root string) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &DiskStore{root: root}, nil
}

// Save writes src to a uniquely named file under the root and returns the
// path relative to the root. The bytes land in a temp file first and become
// visible via rename, so a concurrent reader never sees a partial blob.
func (s *DiskStore) Save(src io.Reader, originalName string) (string, error) {
	name := fmt.Sprintf("%s_%s", uuid.New().String(), sanitizeName(originalName))
	absPath := filepath.Join(s.root, name)

	tmp, err := os.CreateTemp(s.root, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), absPath); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to place file: %w", err)
	}

	return name, nil
}

// Exists reports whether the blob is present on disk.
func (s *DiskStore) Exists(relPath string) bool {
	_, err := os.Stat(s.Abs(relPath))
	return err == nil
}

// Open opens the blob for reading.
func (s *DiskStore) Open(relPath string) (*os.File, error) {
	return os.Open(s.Abs(relPath))
}

// Remove deletes the blob. A missing blob is not an error: it reports
// removed=false and leaves the caller to decide whether that matters.
func (s *DiskStore) Remove(relPath string) (bool, error) {
	err := os.Remove(s.Abs(relPath))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to remove file: %w", err)
}

// Abs resolves a stored relative path against the root.
func (s *DiskStore) Abs(relPath string) string {
	return filepath.Join(s.root, relPath)
}

func sanitizeName(name string) string {
	name = filepath.Base(name)
	if name == "." || name == ".." || name == "/" {
		name = ""
	}
	ext := filepath.Ext(name)
	name = strings.TrimSuffix(name, ext)
	name = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return '_'
	}, name)
	if len(name) > 40 {
		name = name[:40]
	}
	if strings.Trim(name, "_") == "" {
		name = "file"
	}
	return name + ext
}
