package tbo

import (
	"context"
	"time"

	"tbo-go/internal/model"
)

// Database is the storage engine behind TBOService. Implementations own
// transactions: every method is atomic on its own.
//
// Errors returned from Database methods wrap ErrConstraintViolation for
// unique-key collisions and ErrStorageEngineFailure for everything else.
type Database interface {
	// Migrate brings the schema to the latest version. On first creation this
	// also seeds the default folder. Calling it again is a no-op.
	Migrate() error

	// Bookmark operations

	// UpsertBookmark inserts the bookmark, or fully replaces the row with the same id.
	UpsertBookmark(ctx context.Context, b *model.Bookmark) error

	// ListBookmarks returns every bookmark. Folder ids that no longer resolve
	// are reported as the default folder.
	ListBookmarks(ctx context.Context) ([]model.Bookmark, error)

	// ListBookmarksByFolder returns bookmarks in one folder. Asking for the
	// default folder also returns bookmarks whose folder no longer exists.
	ListBookmarksByFolder(ctx context.Context, folderID string) ([]model.Bookmark, error)

	// DeleteBookmark removes a bookmark. Deleting a missing id is not an error.
	DeleteBookmark(ctx context.Context, id string) error

	// Folder operations

	InsertFolder(ctx context.Context, f *model.Folder) error

	// FindFolder returns nil when no folder has the id.
	FindFolder(ctx context.Context, id string) (*model.Folder, error)

	ListFolders(ctx context.Context) ([]model.Folder, error)

	// UpdateFolder replaces a folder row. It reports false when no row matched.
	UpdateFolder(ctx context.Context, f *model.Folder) (bool, error)

	// DeleteFolder atomically moves the folder's bookmarks to fallbackID,
	// reparents its child folders to its own parent, then removes it.
	// Returns the number of bookmarks moved.
	DeleteFolder(ctx context.Context, id string, fallbackID string) (int64, error)

	// Tag operations

	InsertTag(ctx context.Context, t *model.Tag) error
	ListTags(ctx context.Context) ([]model.Tag, error)

	// Bulk operations

	// ReadAll returns all three collections from a single read transaction.
	ReadAll(ctx context.Context) (*model.Contents, error)

	// ReplaceAll empties all three collections and inserts the given records,
	// folders first, then tags, then bookmarks, in one transaction.
	ReplaceAll(ctx context.Context, contents *model.Contents) error

	// Operation history

	CreateOperation(ctx context.Context, operation, parameters string, startedAt time.Time) (*Operation, error)
	FinishOperation(ctx context.Context, id int64, status string, finishedAt time.Time) error
	ListOperations(ctx context.Context, limit int) ([]*Operation, error)

	// Close closes the database connection.
	Close() error
}
