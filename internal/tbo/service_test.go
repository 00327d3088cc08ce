package tbo_test

import (
	"context"
	"errors"
	"testing"

	"tbo-go/internal/model"
	"tbo-go/internal/tbo"
	"tbo-go/internal/testutil"
)

func TestTBOService_Init(t *testing.T) {
	t.Run("seeds the default folder", func(t *testing.T) {
		svc, _ := testutil.NewTestService(t)

		folders, err := svc.GetAllFolders(context.Background())
		if err != nil {
			t.Fatalf("GetAllFolders() error = %v", err)
		}
		if len(folders) != 1 {
			t.Fatalf("len(folders) = %d, want 1", len(folders))
		}
		f := folders[0]
		if f.ID != model.DefaultFolderID || f.Name != tbo.DefaultFolderName || f.Color != tbo.DefaultFolderColor || f.ParentID != nil {
			t.Errorf("default folder = %+v", f)
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		svc, _ := testutil.NewTestService(t)
		if err := svc.Init(); err != nil {
			t.Fatalf("second Init() error = %v", err)
		}
		if !svc.Initialized() {
			t.Error("Initialized() = false after Init")
		}

		folders, _ := svc.GetAllFolders(context.Background())
		if len(folders) != 1 {
			t.Errorf("len(folders) = %d after second Init, want 1", len(folders))
		}
	})

	t.Run("reinitializing over an existing database keeps data", func(t *testing.T) {
		ctx := context.Background()
		db := testutil.NewTestDatabase(t)

		first := tbo.NewTBOService(db, tbo.NewNopLogger(), testutil.FixedClock(), testutil.NewStubIDGenerator())
		if err := first.Init(); err != nil {
			t.Fatal(err)
		}
		if _, err := first.SaveBookmark(ctx, model.Bookmark{TweetID: "1"}); err != nil {
			t.Fatal(err)
		}

		second := tbo.NewTBOService(db, tbo.NewNopLogger(), testutil.FixedClock(), testutil.NewPrefixedIDGenerator("other"))
		if err := second.Init(); err != nil {
			t.Fatalf("Init() on existing database error = %v", err)
		}
		bookmarks, err := second.GetAllBookmarks(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(bookmarks) != 1 {
			t.Errorf("len(bookmarks) = %d, want 1", len(bookmarks))
		}
		folders, _ := second.GetAllFolders(ctx)
		if len(folders) != 1 {
			t.Errorf("len(folders) = %d, want 1", len(folders))
		}
	})
}

func TestTBOService_Uninitialized(t *testing.T) {
	ctx := context.Background()
	svc := tbo.NewTBOService(testutil.NewTestDatabase(t), tbo.NewNopLogger(), testutil.FixedClock(), testutil.NewStubIDGenerator())

	ops := map[string]func() error{
		"SaveBookmark":    func() error { _, err := svc.SaveBookmark(ctx, model.Bookmark{}); return err },
		"GetAllBookmarks": func() error { _, err := svc.GetAllBookmarks(ctx); return err },
		"GetBookmarksByFolder": func() error {
			_, err := svc.GetBookmarksByFolder(ctx, "default")
			return err
		},
		"DeleteBookmark":  func() error { return svc.DeleteBookmark(ctx, "x") },
		"CreateFolder":    func() error { _, err := svc.CreateFolder(ctx, model.Folder{Name: "A"}); return err },
		"GetAllFolders":   func() error { _, err := svc.GetAllFolders(ctx); return err },
		"UpdateFolder":    func() error { _, err := svc.UpdateFolder(ctx, model.Folder{ID: "x", Name: "A"}); return err },
		"DeleteFolder":    func() error { return svc.DeleteFolder(ctx, "x") },
		"CreateTag":       func() error { _, err := svc.CreateTag(ctx, model.Tag{Name: "go"}); return err },
		"GetAllTags":      func() error { _, err := svc.GetAllTags(ctx); return err },
		"SearchBookmarks": func() error { _, err := svc.SearchBookmarks(ctx, "x"); return err },
		"ExportToJSON":    func() error { _, err := svc.ExportToJSON(ctx); return err },
		"ImportFromJSON":  func() error { return svc.ImportFromJSON(ctx, &model.Snapshot{Version: 1}) },
		"ClearAll":        func() error { return svc.ClearAll(ctx) },
		"GetStats":        func() error { _, err := svc.GetStats(ctx); return err },
		"GetHistory":      func() error { _, err := svc.GetHistory(ctx, 10); return err },
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			if err := op(); !errors.Is(err, tbo.ErrUninitialized) {
				t.Errorf("%s() error = %v, want ErrUninitialized", name, err)
			}
		})
	}
}

func TestTBOService_StorageEngineFailure(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDatabase(t)
	svc := tbo.NewTBOService(db, tbo.NewNopLogger(), testutil.FixedClock(), testutil.NewStubIDGenerator())
	if err := svc.Init(); err != nil {
		t.Fatal(err)
	}
	db.Close()

	_, err := svc.GetAllBookmarks(ctx)
	if tbo.KindOf(err) != tbo.ErrStorageEngineFailure {
		t.Errorf("GetAllBookmarks() on closed database error = %v, want ErrStorageEngineFailure", err)
	}
}

func TestKindOf(t *testing.T) {
	if tbo.KindOf(errors.New("plain")) != nil {
		t.Error("KindOf(plain error) should be nil")
	}
	wrapped := tbo.StorageFailure("reading", errors.New("disk I/O error"))
	if tbo.KindOf(wrapped) != tbo.ErrStorageEngineFailure {
		t.Errorf("KindOf(StorageFailure) = %v", tbo.KindOf(wrapped))
	}
	if got := wrapped.Error(); got != "storage engine failure: reading: disk I/O error" {
		t.Errorf("StorageFailure message = %q", got)
	}
}
