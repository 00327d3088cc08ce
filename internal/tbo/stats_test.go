package tbo_test

import (
	"context"
	"fmt"
	"testing"

	"tbo-go/internal/model"
	"tbo-go/internal/tbo"
	"tbo-go/internal/testutil"
)

func TestTBOService_GetStats(t *testing.T) {
	ctx := context.Background()
	svc, _ := testutil.NewTestService(t)

	work, err := svc.CreateFolder(ctx, model.Folder{Name: "Work"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CreateTag(ctx, model.Tag{Name: "go"}); err != nil {
		t.Fatal(err)
	}
	for i := 1; i <= 7; i++ {
		b := model.Bookmark{ID: fmt.Sprintf("b%d", i), CreatedAt: int64(i * 1000)}
		if i%2 == 0 {
			b.FolderID = work.ID
		}
		if _, err := svc.SaveBookmark(ctx, b); err != nil {
			t.Fatal(err)
		}
	}

	stats, err := svc.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats() error = %v", err)
	}

	if stats.TotalBookmarks != 7 {
		t.Errorf("TotalBookmarks = %d, want 7", stats.TotalBookmarks)
	}
	if stats.TotalFolders != 1 {
		t.Errorf("TotalFolders = %d, want 1 (default excluded)", stats.TotalFolders)
	}
	if stats.TotalTags != 1 {
		t.Errorf("TotalTags = %d, want 1", stats.TotalTags)
	}
	if stats.FolderCounts[work.ID] != 3 || stats.FolderCounts[model.DefaultFolderID] != 4 {
		t.Errorf("FolderCounts = %v", stats.FolderCounts)
	}
	if len(stats.RecentBookmarks) != tbo.RecentLimit {
		t.Fatalf("len(RecentBookmarks) = %d, want %d", len(stats.RecentBookmarks), tbo.RecentLimit)
	}
	for i, want := range []string{"b7", "b6", "b5", "b4", "b3"} {
		if stats.RecentBookmarks[i].ID != want {
			t.Errorf("RecentBookmarks[%d] = %s, want %s", i, stats.RecentBookmarks[i].ID, want)
		}
	}
}

func TestSortByRecent(t *testing.T) {
	in := []model.Bookmark{
		{ID: "b", CreatedAt: 1},
		{ID: "a", CreatedAt: 1},
		{ID: "c", CreatedAt: 2},
	}
	got := tbo.SortByRecent(in)

	want := []string{"c", "a", "b"}
	for i := range want {
		if got[i].ID != want[i] {
			t.Errorf("got[%d] = %s, want %s", i, got[i].ID, want[i])
		}
	}
	if in[0].ID != "b" {
		t.Error("SortByRecent() modified its input")
	}
}
