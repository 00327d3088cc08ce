package archive

import (
	"fmt"

	"tbo-go/internal/config"
	"tbo-go/internal/tbo"
)

// NewArchiveFromConfig creates an Archive implementation based on the archive config type.
func NewArchiveFromConfig(cfg config.ArchiveConfig) (tbo.Archive, error) {
	switch cfg.Type {
	case "memory":
		return NewMemoryArchive(), nil
	case "filesystem":
		if cfg.Root == "" {
			return nil, fmt.Errorf("filesystem archive requires root to be set")
		}
		a, err := NewFileSystemArchive(cfg.Root)
		if err != nil {
			return nil, err
		}
		return a, nil
	default:
		return nil, fmt.Errorf("unknown archive type: %s", cfg.Type)
	}
}
