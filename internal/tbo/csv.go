package tbo

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"tbo-go/internal/model"
)

var csvHeader = []string{"ID", "Tweet ID", "Author", "Content", "URL", "Created At", "Folder", "Tags", "Notes"}

// ExportCSV writes every bookmark as CSV.
func (s *TBOService) ExportCSV(ctx context.Context, w io.Writer) error {
	bookmarks, err := s.GetAllBookmarks(ctx)
	if err != nil {
		return fmt.Errorf("exporting csv: %w", err)
	}
	return WriteCSV(w, SortByRecent(bookmarks))
}

// WriteCSV writes a header row and one row per bookmark. Every data field is
// wrapped in double quotes with embedded quotes doubled; tags are joined
// with "; ".
func WriteCSV(w io.Writer, bookmarks []model.Bookmark) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(strings.Join(csvHeader, ",")); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, b := range bookmarks {
		row := []string{
			b.ID,
			b.TweetID,
			b.Author,
			b.Content,
			b.URL,
			FormatISO(model.Time(b.CreatedAt)),
			b.FolderID,
			strings.Join(b.Tags, "; "),
			b.Notes,
		}
		for i, field := range row {
			row[i] = quoteCSV(field)
		}
		if _, err := bw.WriteString("\n" + strings.Join(row, ",")); err != nil {
			return fmt.Errorf("writing csv row %s: %w", b.ID, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	return nil
}

func quoteCSV(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// FormatISO renders t as an ISO-8601 UTC timestamp with millisecond precision.
func FormatISO(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

// ExportFileName returns the dated download name for an export, e.g.
// "twitter-bookmarks-2024-01-15.json".
func ExportFileName(format string, t time.Time) string {
	return fmt.Sprintf("twitter-bookmarks-%s.%s", t.UTC().Format("2006-01-02"), format)
}
