package tbo

import (
	"context"
	"fmt"

	"tbo-go/internal/model"
)

// CreateFolder inserts a new folder. Names are not required to be unique;
// ids are, so creating a folder with an existing id fails with
// ErrConstraintViolation.
func (s *TBOService) CreateFolder(ctx context.Context, input model.Folder) (*model.Folder, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	f := s.materializeFolder(input)
	if err := validateFolder(&f); err != nil {
		return nil, fmt.Errorf("creating folder: %w", err)
	}

	if err := s.database.InsertFolder(ctx, &f); err != nil {
		return nil, fmt.Errorf("creating folder: %w", ensureKind("inserting folder", err))
	}

	s.logger.Info("folder created", "id", f.ID, "name", f.Name)
	return &f, nil
}

func (s *TBOService) materializeFolder(input model.Folder) model.Folder {
	f := input
	if f.ID == "" {
		f.ID = s.idgen.New()
	}
	if f.ParentID != nil && *f.ParentID == "" {
		f.ParentID = nil
	}
	if f.ParentID != nil {
		parent := *f.ParentID
		f.ParentID = &parent
	}
	if f.Color == "" {
		f.Color = FolderColor
	}
	if f.CreatedAt == 0 {
		f.CreatedAt = s.now()
	}
	return f
}

// GetAllFolders returns every folder, including the default folder.
func (s *TBOService) GetAllFolders(ctx context.Context) ([]model.Folder, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	folders, err := s.database.ListFolders(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing folders: %w", ensureKind("listing folders", err))
	}
	return folders, nil
}

// UpdateFolder replaces the folder with the same id. Unknown ids fail with
// ErrNotFound rather than creating a folder. Omitted color and createdAt keep
// their stored values.
func (s *TBOService) UpdateFolder(ctx context.Context, input model.Folder) (*model.Folder, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if input.ID == "" {
		return nil, fmt.Errorf("updating folder: %w: id is required", ErrInvalidInput)
	}

	existing, err := s.database.FindFolder(ctx, input.ID)
	if err != nil {
		return nil, fmt.Errorf("updating folder %s: %w", input.ID, ensureKind("finding folder", err))
	}
	if existing == nil {
		return nil, fmt.Errorf("updating folder %s: %w", input.ID, ErrNotFound)
	}

	f := input
	if f.Color == "" {
		f.Color = existing.Color
	}
	if f.CreatedAt == 0 {
		f.CreatedAt = existing.CreatedAt
	}
	f = s.materializeFolder(f)
	if err := validateFolder(&f); err != nil {
		return nil, fmt.Errorf("updating folder %s: %w", f.ID, err)
	}

	ok, err := s.database.UpdateFolder(ctx, &f)
	if err != nil {
		return nil, fmt.Errorf("updating folder %s: %w", f.ID, ensureKind("updating folder", err))
	}
	if !ok {
		return nil, fmt.Errorf("updating folder %s: %w", f.ID, ErrNotFound)
	}

	s.logger.Info("folder updated", "id", f.ID, "name", f.Name)
	return &f, nil
}

// DeleteFolder moves the folder's bookmarks to the default folder and removes
// it, atomically. The default folder itself cannot be deleted.
func (s *TBOService) DeleteFolder(ctx context.Context, id string) error {
	if err := s.ready(); err != nil {
		return err
	}
	if id == model.DefaultFolderID {
		return fmt.Errorf("deleting folder: %w: the default folder cannot be deleted", ErrInvalidOperation)
	}

	moved, err := s.database.DeleteFolder(ctx, id, model.DefaultFolderID)
	if err != nil {
		return fmt.Errorf("deleting folder %s: %w", id, ensureKind("deleting folder", err))
	}

	s.logger.Info("folder deleted", "id", id, "bookmarks_moved", moved)
	return nil
}
