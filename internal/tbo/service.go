package tbo

import (
	"fmt"
	"sync/atomic"

	"tbo-go/internal/model"
)

// SchemaVersion is the database schema version and the export format version.
const SchemaVersion = 1

// Defaults applied to records that omit them.
const (
	DefaultFolderName  = "Uncategorized"
	DefaultFolderColor = "#888888"
	FolderColor        = "#3B82F6"
	TagColor           = "#10B981"
)

// TBOService is the store: it owns bookmarks, folders and tags and every
// invariant between them. UI surfaces reach it through the dispatch package.
//
// The service is designed for a single logical writer. Multi-record operations
// (folder deletion, import, clear) are atomic in the underlying Database, but
// callers issuing overlapping single-record writes must sequence them.
type TBOService struct {
	database    Database
	logger      Logger
	clock       Clock
	idgen       IDGenerator
	initialized atomic.Bool
}

// NewTBOService creates a TBOService with the provided dependencies.
// The service rejects every operation with ErrUninitialized until Init succeeds.
func NewTBOService(database Database, logger Logger, clock Clock, idgen IDGenerator) *TBOService {
	return &TBOService{
		database: database,
		logger:   logger,
		clock:    clock,
		idgen:    idgen,
	}
}

// Init opens the schema, creating it and the default folder on first use.
// Calling Init on an initialized store is a no-op.
func (s *TBOService) Init() error {
	if s.initialized.Load() {
		return nil
	}
	if err := s.database.Migrate(); err != nil {
		return fmt.Errorf("initializing store: %w", ensureKind("migrating schema", err))
	}
	s.initialized.Store(true)
	s.logger.Debug("store initialized", "schema_version", SchemaVersion)
	return nil
}

// Initialized reports whether Init has completed.
func (s *TBOService) Initialized() bool {
	return s.initialized.Load()
}

func (s *TBOService) ready() error {
	if !s.initialized.Load() {
		return ErrUninitialized
	}
	return nil
}

func (s *TBOService) now() int64 {
	return model.Millis(s.clock.Now())
}

// defaultFolder returns the sentinel folder record stamped with the current time.
func (s *TBOService) defaultFolder() model.Folder {
	return model.Folder{
		ID:        model.DefaultFolderID,
		Name:      DefaultFolderName,
		ParentID:  nil,
		Color:     DefaultFolderColor,
		CreatedAt: s.now(),
	}
}
