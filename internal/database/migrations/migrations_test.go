package migrations

import (
	"database/sql"
	"errors"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func TestMigrateUp_FreshDatabase(t *testing.T) {
	db := openTestDB(t)

	if err := MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp() failed: %v", err)
	}

	tables := []string{"bookmarks", "folders", "tags", "operations", "schema_migrations"}
	for _, table := range tables {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s was not created: %v", table, err)
		}
	}
}

func TestMigrateUp_SeedsDefaultFolder(t *testing.T) {
	db := openTestDB(t)
	if err := MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp() failed: %v", err)
	}

	var name, color string
	var createdAt int64
	err := db.QueryRow("SELECT name, color, created_at FROM folders WHERE id = 'default'").Scan(&name, &color, &createdAt)
	if err != nil {
		t.Fatalf("default folder missing: %v", err)
	}
	if name != "Uncategorized" {
		t.Errorf("name = %q, want Uncategorized", name)
	}
	if color != "#888888" {
		t.Errorf("color = %q, want #888888", color)
	}
	if createdAt <= 0 {
		t.Errorf("created_at = %d, want positive milliseconds", createdAt)
	}
}

func TestCheckDBMigrationStatus_FreshDatabase(t *testing.T) {
	db := openTestDB(t)

	err := CheckDBMigrationStatus(db)
	if !errors.Is(err, ErrNoVersion) {
		t.Errorf("CheckDBMigrationStatus() error = %v, want ErrNoVersion", err)
	}
}

func TestCheckDBMigrationStatus_AfterMigration(t *testing.T) {
	db := openTestDB(t)

	if err := MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp() failed: %v", err)
	}
	if err := CheckDBMigrationStatus(db); err != nil {
		t.Errorf("CheckDBMigrationStatus() after migration returned error: %v", err)
	}

	latest, err := LatestVersion()
	if err != nil {
		t.Fatalf("LatestVersion() error = %v", err)
	}
	current, err := Version(db)
	if err != nil {
		t.Fatalf("Version() error = %v", err)
	}
	if current != latest {
		t.Errorf("Version() = %d, want %d", current, latest)
	}
}

func TestMigrateUp_Idempotent(t *testing.T) {
	db := openTestDB(t)

	if err := MigrateUp(db); err != nil {
		t.Fatalf("first MigrateUp() failed: %v", err)
	}
	if err := MigrateUp(db); err != nil {
		t.Errorf("second MigrateUp() failed: %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM folders WHERE id = 'default'").Scan(&count); err != nil {
		t.Fatalf("counting default folders: %v", err)
	}
	if count != 1 {
		t.Errorf("default folder count = %d, want 1", count)
	}
}

func TestSchema_TagNameUnique(t *testing.T) {
	db := openTestDB(t)
	if err := MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp() failed: %v", err)
	}

	if _, err := db.Exec("INSERT INTO tags (id, name, color) VALUES ('t1', 'go', '#10B981')"); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}
	if _, err := db.Exec("INSERT INTO tags (id, name, color) VALUES ('t2', 'go', '#10B981')"); err == nil {
		t.Error("expected unique constraint violation for duplicate tag name")
	}
}

func TestSchema_TweetIDUniqueButNullable(t *testing.T) {
	db := openTestDB(t)
	if err := MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp() failed: %v", err)
	}

	insert := `INSERT INTO bookmarks (id, tweet_id, author, content, url, created_at, media, folder_id, tags, notes)
		VALUES (?, ?, '', '', '', 0, '[]', 'default', '[]', '')`

	if _, err := db.Exec(insert, "b1", nil); err != nil {
		t.Fatalf("insert b1: %v", err)
	}
	if _, err := db.Exec(insert, "b2", nil); err != nil {
		t.Errorf("second NULL tweet_id rejected: %v", err)
	}
	if _, err := db.Exec(insert, "b3", "123"); err != nil {
		t.Fatalf("insert b3: %v", err)
	}
	if _, err := db.Exec(insert, "b4", "123"); err == nil {
		t.Error("expected unique constraint violation for duplicate tweet_id")
	}
}

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	return db
}
