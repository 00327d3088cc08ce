package testutil

import (
	"testing"

	"tbo-go/internal/database"
	"tbo-go/internal/tbo"
)

// NewTestDatabase creates a new in-memory SQLite database. Migrations are not
// applied; TBOService.Init does that. The database is closed when the test completes.
func NewTestDatabase(t *testing.T) tbo.Database {
	t.Helper()

	db, err := database.NewSQLiteDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}
