package archive

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"tbo-go/internal/tbo"
)

// FileSystemArchive stores each snapshot as a file directly under root.
type FileSystemArchive struct {
	root string
}

// NewFileSystemArchive creates root if needed.
func NewFileSystemArchive(root string) (*FileSystemArchive, error) {
	if err := os.MkdirAll(root, 0700); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}
	return &FileSystemArchive{root: root}, nil
}

// PutSnapshot writes through a temp file and renames it into place, so a
// reader never sees a partial snapshot.
func (a *FileSystemArchive) PutSnapshot(name string, r io.Reader, size int64) error {
	if err := checkName(name); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(a.root, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpPath)
		}
	}()

	written, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if written != size {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", size, written)
	}

	if err := os.Rename(tmpPath, filepath.Join(a.root, name)); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	committed = true
	return nil
}

func (a *FileSystemArchive) GetSnapshot(name string, w io.Writer) error {
	if err := checkName(name); err != nil {
		return err
	}

	f, err := os.Open(filepath.Join(a.root, name))
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: snapshot %s", tbo.ErrNotFound, name)
	}
	if err != nil {
		return fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("failed to read snapshot: %w", err)
	}
	return nil
}

func (a *FileSystemArchive) ListSnapshots() ([]string, error) {
	entries, err := os.ReadDir(a.root)
	if err != nil {
		return nil, fmt.Errorf("failed to list archive: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// ValidateSetup verifies that the archive root exists and is a directory.
func (a *FileSystemArchive) ValidateSetup() error {
	info, err := os.Stat(a.root)
	if err != nil {
		return fmt.Errorf("archive root not accessible: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("archive root is not a directory: %s", a.root)
	}
	return nil
}

var _ tbo.Archive = (*FileSystemArchive)(nil)
