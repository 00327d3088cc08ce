package tbo

import "io"

// Archive stores exported snapshots so destructive operations can be undone.
type Archive interface {
	// PutSnapshot stores a snapshot under name. size is the number of bytes
	// that will be read from r. Storing the same name twice replaces it.
	PutSnapshot(name string, r io.Reader, size int64) error

	// GetSnapshot writes the named snapshot to w.
	GetSnapshot(name string, w io.Writer) error

	// ListSnapshots returns stored snapshot names, oldest first.
	ListSnapshots() ([]string, error)

	// ValidateSetup verifies that the archive is accessible.
	ValidateSetup() error
}
