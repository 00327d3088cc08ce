// Package archive keeps exported snapshots taken before destructive operations.
package archive

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

const timeLayout = "20060102T150405.000Z"

// SnapshotName builds the archive name for a snapshot taken before op at t.
// Names sort chronologically. Encrypted snapshots get an .age suffix.
func SnapshotName(op string, t time.Time, encrypted bool) string {
	name := fmt.Sprintf("%s-%s.json", t.UTC().Format(timeLayout), op)
	if encrypted {
		name += ".age"
	}
	return name
}

// IsEncrypted reports whether name was produced for an encrypted snapshot.
func IsEncrypted(name string) bool {
	return strings.HasSuffix(name, ".age")
}

// checkName rejects names that would escape the archive root.
func checkName(name string) error {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return fmt.Errorf("invalid snapshot name %q", name)
	}
	return nil
}
