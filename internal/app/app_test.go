package app

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"tbo-go/internal/archive"
	"tbo-go/internal/config"
	"tbo-go/internal/model"
	"tbo-go/internal/tbo"
	"tbo-go/internal/testutil"
)

func newTestApp(t *testing.T, encrypt bool) (*TBOApp, *testutil.StubClock) {
	t.Helper()

	cfg := &config.Config{
		InstanceID: "test",
		LogDir:     t.TempDir(),
		Database:   config.DatabaseConfig{Type: "memory"},
		Archive:    config.ArchiveConfig{Type: "memory", Encrypt: encrypt},
		Encryption: config.EncryptionConfig{Type: "test"},
	}
	clock := testutil.FixedClock()

	a, err := NewTBOApp(cfg, "test", Options{Clock: clock})
	if err != nil {
		t.Fatalf("NewTBOApp() error = %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a, clock
}

func saveBookmark(t *testing.T, a *TBOApp, content string) *model.Bookmark {
	t.Helper()
	b, err := a.Service().SaveBookmark(context.Background(), model.Bookmark{
		Author:  "alice",
		Content: content,
		URL:     "https://x.com/alice/status/1",
	})
	if err != nil {
		t.Fatalf("SaveBookmark() error = %v", err)
	}
	return b
}

func TestNewTBOApp_InitializesStore(t *testing.T) {
	a, _ := newTestApp(t, false)

	if !a.Service().Initialized() {
		t.Fatal("service not initialized")
	}
	folders, err := a.Service().GetAllFolders(context.Background())
	if err != nil {
		t.Fatalf("GetAllFolders() error = %v", err)
	}
	if len(folders) != 1 || folders[0].ID != model.DefaultFolderID {
		t.Errorf("folders = %+v, want only the default folder", folders)
	}
}

func TestNewTBOApp_BadConfig(t *testing.T) {
	cfg := &config.Config{
		LogDir:     t.TempDir(),
		Database:   config.DatabaseConfig{Type: "postgres"},
		Archive:    config.ArchiveConfig{Type: "memory"},
		Encryption: config.EncryptionConfig{Type: "test"},
	}
	if _, err := NewTBOApp(cfg, "test", Options{}); err == nil {
		t.Fatal("expected error for unknown database type")
	}
}

func TestExport_Formats(t *testing.T) {
	a, _ := newTestApp(t, false)
	saveBookmark(t, a, "hello export")
	ctx := context.Background()

	var js bytes.Buffer
	if err := a.Export(ctx, "json", &js); err != nil {
		t.Fatalf("Export(json) error = %v", err)
	}
	snapshot, err := DecodeSnapshot(&js)
	if err != nil {
		t.Fatalf("DecodeSnapshot() error = %v", err)
	}
	if len(snapshot.Bookmarks) != 1 || snapshot.Bookmarks[0].Content != "hello export" {
		t.Errorf("bookmarks = %+v", snapshot.Bookmarks)
	}

	var csv bytes.Buffer
	if err := a.Export(ctx, "csv", &csv); err != nil {
		t.Fatalf("Export(csv) error = %v", err)
	}
	if !strings.Contains(csv.String(), "hello export") {
		t.Errorf("csv output missing bookmark:\n%s", csv.String())
	}

	err = a.Export(ctx, "xml", &bytes.Buffer{})
	if !errors.Is(err, tbo.ErrInvalidInput) {
		t.Errorf("Export(xml) error = %v, want ErrInvalidInput", err)
	}
}

func TestImportFile_ArchivesPreviousContents(t *testing.T) {
	a, _ := newTestApp(t, false)
	saveBookmark(t, a, "before import")
	ctx := context.Background()

	input := `{"version":1,"bookmarks":[{"id":"b1","author":"bob","content":"imported","url":"https://x.com/bob/status/2"}],"folders":[],"tags":[]}`
	snapshot, err := a.ImportFile(ctx, strings.NewReader(input), "bookmarks.json")
	if err != nil {
		t.Fatalf("ImportFile() error = %v", err)
	}
	if len(snapshot.Bookmarks) != 1 {
		t.Errorf("returned snapshot has %d bookmarks, want 1", len(snapshot.Bookmarks))
	}

	bookmarks, _ := a.Service().GetAllBookmarks(ctx)
	if len(bookmarks) != 1 || bookmarks[0].Content != "imported" {
		t.Errorf("bookmarks after import = %+v", bookmarks)
	}

	names, err := a.ListArchives()
	if err != nil {
		t.Fatalf("ListArchives() error = %v", err)
	}
	if len(names) != 1 || !strings.HasSuffix(names[0], "-import.json") {
		t.Fatalf("archives = %v, want one import snapshot", names)
	}

	var stored bytes.Buffer
	if err := a.archive.GetSnapshot(names[0], &stored); err != nil {
		t.Fatalf("GetSnapshot() error = %v", err)
	}
	if !strings.Contains(stored.String(), "before import") {
		t.Error("archived snapshot does not hold the pre-import contents")
	}
}

func TestImportFile_MalformedJSON(t *testing.T) {
	a, _ := newTestApp(t, false)
	saveBookmark(t, a, "survives")
	ctx := context.Background()

	_, err := a.ImportFile(ctx, strings.NewReader("{not json"), "broken.json")
	if !errors.Is(err, tbo.ErrInvalidInput) {
		t.Fatalf("ImportFile() error = %v, want ErrInvalidInput", err)
	}
	if a.op.Status != StatusError {
		t.Errorf("op status = %q, want %q", a.op.Status, StatusError)
	}

	bookmarks, _ := a.Service().GetAllBookmarks(ctx)
	if len(bookmarks) != 1 {
		t.Errorf("store changed after failed import: %d bookmarks", len(bookmarks))
	}
	if names, _ := a.ListArchives(); len(names) != 0 {
		t.Errorf("archives = %v, want none", names)
	}
}

func TestClear(t *testing.T) {
	a, _ := newTestApp(t, false)
	saveBookmark(t, a, "to be cleared")
	ctx := context.Background()

	name, err := a.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if !strings.HasSuffix(name, "-clear.json") {
		t.Errorf("archive name = %q", name)
	}

	bookmarks, _ := a.Service().GetAllBookmarks(ctx)
	if len(bookmarks) != 0 {
		t.Errorf("bookmarks after clear = %d, want 0", len(bookmarks))
	}
}

func TestRestoreArchive_RoundTrip(t *testing.T) {
	a, clock := newTestApp(t, false)
	saveBookmark(t, a, "restore me")
	ctx := context.Background()

	name, err := a.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	clock.Advance(time.Second)
	if err := a.RestoreArchive(ctx, name, nil); err != nil {
		t.Fatalf("RestoreArchive() error = %v", err)
	}

	bookmarks, _ := a.Service().GetAllBookmarks(ctx)
	if len(bookmarks) != 1 || bookmarks[0].Content != "restore me" {
		t.Errorf("bookmarks after restore = %+v", bookmarks)
	}

	names, _ := a.ListArchives()
	if len(names) != 2 {
		t.Errorf("archives = %v, want the clear and restore snapshots", names)
	}
}

func TestRestoreArchive_Missing(t *testing.T) {
	a, _ := newTestApp(t, false)

	err := a.RestoreArchive(context.Background(), "20240101T000000.000Z-clear.json", nil)
	if !errors.Is(err, tbo.ErrNotFound) {
		t.Errorf("RestoreArchive() error = %v, want ErrNotFound", err)
	}
}

func TestEncryptedArchive(t *testing.T) {
	a, _ := newTestApp(t, true)
	saveBookmark(t, a, "secret")
	ctx := context.Background()

	name, err := a.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if !archive.IsEncrypted(name) {
		t.Fatalf("archive name = %q, want .age suffix", name)
	}

	if err := a.RestoreArchive(ctx, name, nil); err == nil {
		t.Error("restoring an encrypted snapshot without a passphrase source should fail")
	}
	if err := a.RestoreArchive(ctx, name, func() (string, error) { return "wrong", nil }); err == nil {
		t.Error("restoring with a wrong passphrase should fail")
	}

	if err := a.RestoreArchive(ctx, name, func() (string, error) { return "right", nil }); err != nil {
		t.Fatalf("RestoreArchive() error = %v", err)
	}
	bookmarks, _ := a.Service().GetAllBookmarks(ctx)
	if len(bookmarks) != 1 || bookmarks[0].Content != "secret" {
		t.Errorf("bookmarks after restore = %+v", bookmarks)
	}
}

func TestClose_FinishesPersistedOperation(t *testing.T) {
	cfg := &config.Config{
		LogDir:     t.TempDir(),
		Database:   config.DatabaseConfig{Type: "sqlite", DataDir: t.TempDir()},
		Archive:    config.ArchiveConfig{Type: "memory"},
		Encryption: config.EncryptionConfig{Type: "test"},
	}
	clock := testutil.FixedClock()

	a, err := NewTBOApp(cfg, "clear", Options{Clock: clock})
	if err != nil {
		t.Fatalf("NewTBOApp() error = %v", err)
	}
	if _, err := a.Clear(context.Background()); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	b, err := NewTBOApp(cfg, "history", Options{Clock: clock})
	if err != nil {
		t.Fatalf("NewTBOApp() error = %v", err)
	}
	defer b.Close()

	ops, err := b.History(context.Background(), 10)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(ops) != 1 {
		t.Fatalf("History() returned %d operations, want 1", len(ops))
	}
	if ops[0].Operation != "clear" || ops[0].Status != StatusSuccess || ops[0].FinishedAt == nil {
		t.Errorf("operation = %+v", ops[0])
	}
}

func TestReadOnlyCommandsLeaveNoHistory(t *testing.T) {
	a, _ := newTestApp(t, false)
	ctx := context.Background()

	if err := a.Export(ctx, "json", &bytes.Buffer{}); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	ops, err := a.History(ctx, 10)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(ops) != 0 {
		t.Errorf("History() = %+v, want empty", ops)
	}
}
