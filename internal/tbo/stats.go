package tbo

import (
	"context"
	"fmt"
	"sort"

	"tbo-go/internal/model"
)

// RecentLimit is the number of bookmarks reported in Stats.RecentBookmarks.
const RecentLimit = 5

// Stats summarizes the store for the popup.
type Stats struct {
	TotalBookmarks  int              `json:"totalBookmarks"`
	TotalFolders    int              `json:"totalFolders"` // Excludes the default folder
	TotalTags       int              `json:"totalTags"`
	FolderCounts    map[string]int   `json:"folderCounts"`
	RecentBookmarks []model.Bookmark `json:"recentBookmarks"`
}

// GetStats counts records and lists the newest bookmarks.
func (s *TBOService) GetStats(ctx context.Context) (*Stats, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	contents, err := s.database.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("computing stats: %w", ensureKind("reading all collections", err))
	}

	stats := &Stats{
		TotalBookmarks: len(contents.Bookmarks),
		TotalTags:      len(contents.Tags),
		FolderCounts:   make(map[string]int),
	}
	for _, f := range contents.Folders {
		if f.ID != model.DefaultFolderID {
			stats.TotalFolders++
		}
	}
	for _, b := range contents.Bookmarks {
		stats.FolderCounts[b.FolderID]++
	}

	recent := SortByRecent(contents.Bookmarks)
	if len(recent) > RecentLimit {
		recent = recent[:RecentLimit]
	}
	stats.RecentBookmarks = recent
	return stats, nil
}

// SortByRecent returns a copy of bookmarks ordered newest first. Ties are
// broken by id so the order is stable across calls.
func SortByRecent(bookmarks []model.Bookmark) []model.Bookmark {
	out := make([]model.Bookmark, len(bookmarks))
	copy(out, bookmarks)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt > out[j].CreatedAt
		}
		return out[i].ID < out[j].ID
	})
	return out
}
