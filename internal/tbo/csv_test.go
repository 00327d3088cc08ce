package tbo_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"tbo-go/internal/model"
	"tbo-go/internal/tbo"
	"tbo-go/internal/testutil"
)

func TestWriteCSV(t *testing.T) {
	bookmarks := []model.Bookmark{{
		ID:        "b1",
		TweetID:   "123",
		Author:    "@alice",
		Content:   `she said "hi", then left`,
		URL:       "https://x.com/alice/status/123",
		CreatedAt: time.Date(2024, 1, 15, 10, 30, 0, 5_000_000, time.UTC).UnixMilli(),
		FolderID:  "default",
		Tags:      []string{"go", "db"},
		Notes:     "line1\nline2",
	}}

	var buf bytes.Buffer
	if err := tbo.WriteCSV(&buf, bookmarks); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	want := "ID,Tweet ID,Author,Content,URL,Created At,Folder,Tags,Notes\n" +
		`"b1","123","@alice","she said ""hi"", then left","https://x.com/alice/status/123",` +
		`"2024-01-15T10:30:00.005Z","default","go; db","line1` + "\n" + `line2"`
	if buf.String() != want {
		t.Errorf("WriteCSV() =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestWriteCSV_HeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	if err := tbo.WriteCSV(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "ID,Tweet ID,Author,Content,URL,Created At,Folder,Tags,Notes" {
		t.Errorf("WriteCSV(nil) = %q", buf.String())
	}
}

func TestTBOService_ExportCSV(t *testing.T) {
	ctx := context.Background()
	svc, _ := testutil.NewTestService(t)

	for _, b := range []model.Bookmark{{ID: "old", CreatedAt: 1}, {ID: "new", CreatedAt: 2}} {
		if _, err := svc.SaveBookmark(ctx, b); err != nil {
			t.Fatal(err)
		}
	}

	var buf bytes.Buffer
	if err := svc.ExportCSV(ctx, &buf); err != nil {
		t.Fatalf("ExportCSV() error = %v", err)
	}
	lines := strings.Split(buf.String(), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if !strings.HasPrefix(lines[1], `"new"`) || !strings.HasPrefix(lines[2], `"old"`) {
		t.Errorf("rows not newest first: %v", lines[1:])
	}
}

func TestExportFileName(t *testing.T) {
	at := time.Date(2024, 1, 15, 23, 0, 0, 0, time.UTC)
	if got := tbo.ExportFileName("json", at); got != "twitter-bookmarks-2024-01-15.json" {
		t.Errorf("ExportFileName(json) = %q", got)
	}
	if got := tbo.ExportFileName("csv", at); got != "twitter-bookmarks-2024-01-15.csv" {
		t.Errorf("ExportFileName(csv) = %q", got)
	}
}
