package tbo

import (
	"context"
	"fmt"

	"tbo-go/internal/model"
)

// ExportToJSON returns every bookmark, folder and tag as one snapshot read
// from a single transaction, so no write is observed half-applied.
func (s *TBOService) ExportToJSON(ctx context.Context) (*model.Snapshot, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	contents, err := s.database.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("exporting: %w", ensureKind("reading all collections", err))
	}

	snapshot := &model.Snapshot{
		Version:    SchemaVersion,
		ExportDate: s.clock.Now().UTC(),
		Bookmarks:  nonNil(contents.Bookmarks),
		Folders:    nonNil(contents.Folders),
		Tags:       nonNil(contents.Tags),
	}
	s.logger.Info("exported snapshot",
		"bookmarks", len(snapshot.Bookmarks),
		"folders", len(snapshot.Folders),
		"tags", len(snapshot.Tags))
	return snapshot, nil
}

// ImportFromJSON replaces the whole store with the snapshot's contents.
//
// Records get the same defaults as SaveBookmark, CreateFolder and CreateTag.
// A snapshot without the default folder gets one. The replace runs in one
// transaction: if any record is rejected (for example a tag name repeated
// inside the snapshot) nothing changes.
func (s *TBOService) ImportFromJSON(ctx context.Context, snapshot *model.Snapshot) error {
	if err := s.ready(); err != nil {
		return err
	}
	if snapshot == nil {
		return fmt.Errorf("importing: %w: snapshot is required", ErrInvalidInput)
	}
	if snapshot.Version > SchemaVersion {
		return fmt.Errorf("importing: %w: snapshot version %d is newer than supported version %d",
			ErrInvalidInput, snapshot.Version, SchemaVersion)
	}

	contents := &model.Contents{
		Folders:   make([]model.Folder, 0, len(snapshot.Folders)+1),
		Tags:      make([]model.Tag, 0, len(snapshot.Tags)),
		Bookmarks: make([]model.Bookmark, 0, len(snapshot.Bookmarks)),
	}

	hasDefault := false
	for i, input := range snapshot.Folders {
		f := s.materializeFolder(input)
		if err := validateFolder(&f); err != nil {
			return fmt.Errorf("importing folder %d: %w", i, err)
		}
		if f.ID == model.DefaultFolderID {
			hasDefault = true
		}
		contents.Folders = append(contents.Folders, f)
	}
	if !hasDefault {
		contents.Folders = append([]model.Folder{s.defaultFolder()}, contents.Folders...)
	}

	for i, input := range snapshot.Tags {
		t := s.materializeTag(input)
		if err := validateTag(&t); err != nil {
			return fmt.Errorf("importing tag %d: %w", i, err)
		}
		contents.Tags = append(contents.Tags, t)
	}

	for i, input := range snapshot.Bookmarks {
		b := s.materializeBookmark(input)
		if err := validateBookmark(&b); err != nil {
			return fmt.Errorf("importing bookmark %d: %w", i, err)
		}
		contents.Bookmarks = append(contents.Bookmarks, b)
	}

	if err := s.database.ReplaceAll(ctx, contents); err != nil {
		return fmt.Errorf("importing: %w", ensureKind("replacing all collections", err))
	}

	s.logger.Info("imported snapshot",
		"bookmarks", len(contents.Bookmarks),
		"folders", len(contents.Folders),
		"tags", len(contents.Tags),
		"default_folder_synthesized", !hasDefault)
	return nil
}

// ClearAll empties every collection and re-creates the default folder.
func (s *TBOService) ClearAll(ctx context.Context) error {
	if err := s.ready(); err != nil {
		return err
	}
	contents := &model.Contents{Folders: []model.Folder{s.defaultFolder()}}
	if err := s.database.ReplaceAll(ctx, contents); err != nil {
		return fmt.Errorf("clearing store: %w", ensureKind("replacing all collections", err))
	}
	s.logger.Info("store cleared")
	return nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
