package archive

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"sync"

	"tbo-go/internal/tbo"
)

// MemoryArchive keeps snapshots in a map. Used for tests and the memory
// database type.
type MemoryArchive struct {
	mu        sync.RWMutex
	snapshots map[string][]byte
}

func NewMemoryArchive() *MemoryArchive {
	return &MemoryArchive{snapshots: make(map[string][]byte)}
}

func (a *MemoryArchive) PutSnapshot(name string, r io.Reader, size int64) error {
	if err := checkName(name); err != nil {
		return err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read snapshot: %w", err)
	}
	if int64(len(data)) != size {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", size, len(data))
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.snapshots[name] = data
	return nil
}

func (a *MemoryArchive) GetSnapshot(name string, w io.Writer) error {
	a.mu.RLock()
	data, ok := a.snapshots[name]
	a.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%w: snapshot %s", tbo.ErrNotFound, name)
	}
	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

func (a *MemoryArchive) ListSnapshots() ([]string, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	names := make([]string, 0, len(a.snapshots))
	for name := range a.snapshots {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (a *MemoryArchive) ValidateSetup() error {
	return nil
}

var _ tbo.Archive = (*MemoryArchive)(nil)
