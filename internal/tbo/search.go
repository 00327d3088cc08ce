package tbo

import (
	"context"
	"fmt"
	"strings"

	"tbo-go/internal/model"
)

// SearchBookmarks returns bookmarks whose content, author, notes or any tag
// contains query, ignoring case. An empty query matches every bookmark.
func (s *TBOService) SearchBookmarks(ctx context.Context, query string) ([]model.Bookmark, error) {
	bookmarks, err := s.GetAllBookmarks(ctx)
	if err != nil {
		return nil, fmt.Errorf("searching bookmarks: %w", err)
	}
	return FilterBookmarks(bookmarks, query), nil
}

// FilterBookmarks keeps the bookmarks matching query. Order is preserved.
func FilterBookmarks(bookmarks []model.Bookmark, query string) []model.Bookmark {
	needle := strings.ToLower(query)
	out := make([]model.Bookmark, 0, len(bookmarks))
	for _, b := range bookmarks {
		if matches(&b, needle) {
			out = append(out, b)
		}
	}
	return out
}

// matches expects needle to be lowercased already.
func matches(b *model.Bookmark, needle string) bool {
	if needle == "" {
		return true
	}
	if containsFold(b.Content, needle) || containsFold(b.Author, needle) || containsFold(b.Notes, needle) {
		return true
	}
	for _, tag := range b.Tags {
		if containsFold(tag, needle) {
			return true
		}
	}
	return false
}

func containsFold(field, needle string) bool {
	return strings.Contains(strings.ToLower(field), needle)
}
