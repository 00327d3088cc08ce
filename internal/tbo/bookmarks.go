package tbo

import (
	"context"
	"fmt"

	"tbo-go/internal/model"
)

// SaveBookmark inserts a bookmark, or replaces the stored record entirely when
// input.ID names an existing one. Omitted fields get their defaults and the
// stored record is returned.
//
// A tweet id already held by a bookmark with a different id fails with
// ErrConstraintViolation. Re-saving the same id is always allowed.
func (s *TBOService) SaveBookmark(ctx context.Context, input model.Bookmark) (*model.Bookmark, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	b := s.materializeBookmark(input)
	if err := validateBookmark(&b); err != nil {
		return nil, fmt.Errorf("saving bookmark: %w", err)
	}

	if err := s.database.UpsertBookmark(ctx, &b); err != nil {
		return nil, fmt.Errorf("saving bookmark: %w", ensureKind("upserting bookmark", err))
	}

	s.logger.Debug("bookmark saved", "id", b.ID, "tweet_id", b.TweetID, "folder_id", b.FolderID)
	return &b, nil
}

// materializeBookmark applies field defaults and copies slices so the stored
// record never aliases caller memory.
func (s *TBOService) materializeBookmark(input model.Bookmark) model.Bookmark {
	b := input
	if b.ID == "" {
		b.ID = s.idgen.New()
	}
	if b.CreatedAt == 0 {
		b.CreatedAt = s.now()
	}
	if b.FolderID == "" {
		b.FolderID = model.DefaultFolderID
	}

	b.Media = make([]model.Media, len(input.Media))
	copy(b.Media, input.Media)

	b.Tags = uniqueTags(input.Tags)
	return b
}

// uniqueTags drops repeated names while keeping first-seen order. Tags are a
// set; they are stored as a sequence.
func uniqueTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// GetAllBookmarks returns every bookmark, unordered.
func (s *TBOService) GetAllBookmarks(ctx context.Context) ([]model.Bookmark, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	bookmarks, err := s.database.ListBookmarks(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing bookmarks: %w", ensureKind("listing bookmarks", err))
	}
	return bookmarks, nil
}

// GetBookmarksByFolder returns the bookmarks filed under folderID. An empty
// folderID means the default folder.
func (s *TBOService) GetBookmarksByFolder(ctx context.Context, folderID string) ([]model.Bookmark, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if folderID == "" {
		folderID = model.DefaultFolderID
	}
	bookmarks, err := s.database.ListBookmarksByFolder(ctx, folderID)
	if err != nil {
		return nil, fmt.Errorf("listing bookmarks in folder %s: %w", folderID, ensureKind("listing bookmarks by folder", err))
	}
	return bookmarks, nil
}

// DeleteBookmark removes a bookmark. A missing id is not an error.
func (s *TBOService) DeleteBookmark(ctx context.Context, id string) error {
	if err := s.ready(); err != nil {
		return err
	}
	if err := s.database.DeleteBookmark(ctx, id); err != nil {
		return fmt.Errorf("deleting bookmark %s: %w", id, ensureKind("deleting bookmark", err))
	}
	s.logger.Debug("bookmark deleted", "id", id)
	return nil
}
