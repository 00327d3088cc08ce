package archive

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"tbo-go/internal/config"
	"tbo-go/internal/tbo"
)

func backends(t *testing.T) map[string]tbo.Archive {
	t.Helper()
	fs, err := NewFileSystemArchive(filepath.Join(t.TempDir(), "archive"))
	if err != nil {
		t.Fatalf("NewFileSystemArchive() error = %v", err)
	}
	return map[string]tbo.Archive{
		"filesystem": fs,
		"memory":     NewMemoryArchive(),
	}
}

func TestArchive_PutGet(t *testing.T) {
	for name, a := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := a.ValidateSetup(); err != nil {
				t.Fatalf("ValidateSetup() error = %v", err)
			}

			data := `{"version":1}`
			if err := a.PutSnapshot("snap.json", strings.NewReader(data), int64(len(data))); err != nil {
				t.Fatalf("PutSnapshot() error = %v", err)
			}

			var buf bytes.Buffer
			if err := a.GetSnapshot("snap.json", &buf); err != nil {
				t.Fatalf("GetSnapshot() error = %v", err)
			}
			if buf.String() != data {
				t.Errorf("snapshot = %q, want %q", buf.String(), data)
			}

			replaced := `{"version":1,"bookmarks":[]}`
			if err := a.PutSnapshot("snap.json", strings.NewReader(replaced), int64(len(replaced))); err != nil {
				t.Fatalf("second PutSnapshot() error = %v", err)
			}
			buf.Reset()
			if err := a.GetSnapshot("snap.json", &buf); err != nil {
				t.Fatalf("GetSnapshot() error = %v", err)
			}
			if buf.String() != replaced {
				t.Errorf("snapshot = %q, want %q", buf.String(), replaced)
			}
		})
	}
}

func TestArchive_Errors(t *testing.T) {
	for name, a := range backends(t) {
		t.Run(name, func(t *testing.T) {
			err := a.GetSnapshot("missing.json", &bytes.Buffer{})
			if !errors.Is(err, tbo.ErrNotFound) {
				t.Errorf("GetSnapshot(missing) error = %v, want ErrNotFound", err)
			}

			if err := a.PutSnapshot("short.json", strings.NewReader("abc"), 10); err == nil {
				t.Error("PutSnapshot() expected size mismatch error")
			}

			for _, bad := range []string{"", "../escape.json", "dir/file.json", ".hidden"} {
				if err := a.PutSnapshot(bad, strings.NewReader(""), 0); err == nil {
					t.Errorf("PutSnapshot(%q) expected error", bad)
				}
			}

			names, err := a.ListSnapshots()
			if err != nil {
				t.Fatalf("ListSnapshots() error = %v", err)
			}
			if len(names) != 0 {
				t.Errorf("ListSnapshots() = %v, want none after failed writes", names)
			}
		})
	}
}

func TestArchive_ListSnapshotsChronological(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	want := []string{
		SnapshotName("import", base, false),
		SnapshotName("clear", base.Add(time.Second), true),
		SnapshotName("restore", base.Add(time.Hour), false),
	}

	for name, a := range backends(t) {
		t.Run(name, func(t *testing.T) {
			for i := len(want) - 1; i >= 0; i-- {
				if err := a.PutSnapshot(want[i], strings.NewReader("x"), 1); err != nil {
					t.Fatalf("PutSnapshot(%s) error = %v", want[i], err)
				}
			}

			got, err := a.ListSnapshots()
			if err != nil {
				t.Fatalf("ListSnapshots() error = %v", err)
			}
			if !sort.StringsAreSorted(got) || len(got) != len(want) {
				t.Fatalf("ListSnapshots() = %v", got)
			}
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("got[%d] = %s, want %s", i, got[i], want[i])
				}
			}
		})
	}
}

func TestSnapshotName(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 30, 45, 123_000_000, time.UTC)

	if got := SnapshotName("import", at, false); got != "20240301T123045.123Z-import.json" {
		t.Errorf("SnapshotName() = %q", got)
	}
	enc := SnapshotName("clear", at, true)
	if !IsEncrypted(enc) {
		t.Errorf("IsEncrypted(%q) = false", enc)
	}
	if IsEncrypted("x.json") {
		t.Error("IsEncrypted(x.json) = true")
	}
}

func TestFileSystemArchive_LeavesNoTempFiles(t *testing.T) {
	root := t.TempDir()
	a, err := NewFileSystemArchive(root)
	if err != nil {
		t.Fatal(err)
	}

	_ = a.PutSnapshot("bad.json", strings.NewReader("abc"), 99)
	if err := a.PutSnapshot("good.json", strings.NewReader("abc"), 3); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "good.json" {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("archive root contains %v, want [good.json]", names)
	}
}

func TestNewArchiveFromConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.ArchiveConfig
		wantErr bool
	}{
		{"memory", config.ArchiveConfig{Type: "memory"}, false},
		{"filesystem", config.ArchiveConfig{Type: "filesystem", Root: t.TempDir()}, false},
		{"filesystem without root", config.ArchiveConfig{Type: "filesystem"}, true},
		{"unknown", config.ArchiveConfig{Type: "s3"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewArchiveFromConfig(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewArchiveFromConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if got != nil {
					t.Error("NewArchiveFromConfig() should return nil on error")
				}
				return
			}
			if err := got.ValidateSetup(); err != nil {
				t.Errorf("ValidateSetup() error = %v", err)
			}
		})
	}
}
