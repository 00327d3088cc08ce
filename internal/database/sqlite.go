package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"tbo-go/internal/database/migrations"
	"tbo-go/internal/database/sqlc"
	"tbo-go/internal/model"
	"tbo-go/internal/tbo"
)

// SQLiteDatabase implements the tbo.Database interface using SQLite.
type SQLiteDatabase struct {
	db      *sql.DB
	queries *sqlc.Queries
	path    string
}

// NewSQLiteDatabase creates a new SQLite database connection.
// path can be a file path or ":memory:" for in-memory database.
// The schema is not touched until Migrate is called.
func NewSQLiteDatabase(path string) (*SQLiteDatabase, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}

	return &SQLiteDatabase{
		db:      db,
		queries: sqlc.New(db),
		path:    path,
	}, nil
}

// NewSQLiteDatabaseFromDB wraps an existing database connection.
// The caller is responsible for ensuring the connection is properly configured.
func NewSQLiteDatabaseFromDB(db *sql.DB) *SQLiteDatabase {
	return &SQLiteDatabase{
		db:      db,
		queries: sqlc.New(db),
		path:    "",
	}
}

// OpenConnection opens and configures a SQLite database connection with appropriate PRAGMAs.
// This is exported for use in tools and tests that need a properly configured SQLite connection.
// path can be a file path or ":memory:" for in-memory database.
//
// The pool is limited to one connection: the store has a single logical
// writer, and an in-memory database only exists on the connection that made it.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	return db, nil
}

// Migrate applies pending migrations and verifies the resulting version.
func (s *SQLiteDatabase) Migrate() error {
	if err := migrations.MigrateUp(s.db); err != nil {
		return tbo.StorageFailure("migrating schema", err)
	}
	if err := migrations.CheckDBMigrationStatus(s.db); err != nil {
		return tbo.StorageFailure("checking schema version", err)
	}
	return nil
}

// Bookmark operations

func (s *SQLiteDatabase) UpsertBookmark(ctx context.Context, b *model.Bookmark) error {
	if err := upsertBookmark(ctx, s.queries, b); err != nil {
		return classify("upserting bookmark", err)
	}
	return nil
}

func upsertBookmark(ctx context.Context, q *sqlc.Queries, b *model.Bookmark) error {
	media, err := json.Marshal(b.Media)
	if err != nil {
		return fmt.Errorf("encoding media for %s: %w", b.ID, err)
	}
	tags, err := json.Marshal(b.Tags)
	if err != nil {
		return fmt.Errorf("encoding tags for %s: %w", b.ID, err)
	}

	err = q.UpsertBookmark(ctx, sqlc.UpsertBookmarkParams{
		ID:        b.ID,
		TweetID:   nullString(b.TweetID),
		Author:    b.Author,
		Content:   b.Content,
		Url:       b.URL,
		CreatedAt: b.CreatedAt,
		Media:     string(media),
		FolderID:  b.FolderID,
		Tags:      string(tags),
		Notes:     b.Notes,
	})
	if err != nil {
		return fmt.Errorf("writing bookmark %s: %w", b.ID, err)
	}
	return nil
}

func (s *SQLiteDatabase) ListBookmarks(ctx context.Context) ([]model.Bookmark, error) {
	bookmarks, err := listBookmarks(ctx, s.queries)
	if err != nil {
		return nil, classify("listing bookmarks", err)
	}
	return bookmarks, nil
}

func listBookmarks(ctx context.Context, q *sqlc.Queries) ([]model.Bookmark, error) {
	rows, err := q.ListBookmarks(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]model.Bookmark, len(rows))
	for i, row := range rows {
		b, err := toBookmark(sqlc.Bookmark(row))
		if err != nil {
			return nil, err
		}
		result[i] = b
	}
	return result, nil
}

func (s *SQLiteDatabase) ListBookmarksByFolder(ctx context.Context, folderID string) ([]model.Bookmark, error) {
	rows, err := s.queries.ListBookmarksByFolder(ctx, folderID)
	if err != nil {
		return nil, classify("listing bookmarks by folder", err)
	}
	result := make([]model.Bookmark, len(rows))
	for i, row := range rows {
		b, err := toBookmark(sqlc.Bookmark(row))
		if err != nil {
			return nil, classify("listing bookmarks by folder", err)
		}
		result[i] = b
	}
	return result, nil
}

func (s *SQLiteDatabase) DeleteBookmark(ctx context.Context, id string) error {
	if err := s.queries.DeleteBookmark(ctx, id); err != nil {
		return classify("deleting bookmark", err)
	}
	return nil
}

// Folder operations

func (s *SQLiteDatabase) InsertFolder(ctx context.Context, f *model.Folder) error {
	if err := insertFolder(ctx, s.queries, f); err != nil {
		return classify("inserting folder", err)
	}
	return nil
}

func insertFolder(ctx context.Context, q *sqlc.Queries, f *model.Folder) error {
	err := q.InsertFolder(ctx, sqlc.InsertFolderParams{
		ID:        f.ID,
		Name:      f.Name,
		ParentID:  nullStringPtr(f.ParentID),
		Color:     f.Color,
		CreatedAt: f.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("writing folder %s: %w", f.ID, err)
	}
	return nil
}

func (s *SQLiteDatabase) FindFolder(ctx context.Context, id string) (*model.Folder, error) {
	row, err := s.queries.GetFolder(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, classify("finding folder", err)
	}
	f := toFolder(row)
	return &f, nil
}

func (s *SQLiteDatabase) ListFolders(ctx context.Context) ([]model.Folder, error) {
	folders, err := listFolders(ctx, s.queries)
	if err != nil {
		return nil, classify("listing folders", err)
	}
	return folders, nil
}

func listFolders(ctx context.Context, q *sqlc.Queries) ([]model.Folder, error) {
	rows, err := q.ListFolders(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]model.Folder, len(rows))
	for i, row := range rows {
		result[i] = toFolder(row)
	}
	return result, nil
}

func (s *SQLiteDatabase) UpdateFolder(ctx context.Context, f *model.Folder) (bool, error) {
	n, err := s.queries.UpdateFolder(ctx, sqlc.UpdateFolderParams{
		Name:      f.Name,
		ParentID:  nullStringPtr(f.ParentID),
		Color:     f.Color,
		CreatedAt: f.CreatedAt,
		ID:        f.ID,
	})
	if err != nil {
		return false, classify("updating folder", err)
	}
	return n > 0, nil
}

// DeleteFolder moves bookmarks out of the folder, hands its children to its
// parent and deletes it, all in one transaction. A folder that no longer
// exists still has stray bookmarks moved.
func (s *SQLiteDatabase) DeleteFolder(ctx context.Context, id string, fallbackID string) (int64, error) {
	var moved int64
	err := s.withTx(ctx, func(qtx *sqlc.Queries) error {
		var parentID sql.NullString
		folder, err := qtx.GetFolder(ctx, id)
		switch {
		case err == nil:
			parentID = folder.ParentID
		case errors.Is(err, sql.ErrNoRows):
		default:
			return fmt.Errorf("loading folder %s: %w", id, err)
		}

		moved, err = qtx.ReassignBookmarksFolder(ctx, sqlc.ReassignBookmarksFolderParams{
			ToFolderID:   fallbackID,
			FromFolderID: id,
		})
		if err != nil {
			return fmt.Errorf("reassigning bookmarks from %s: %w", id, err)
		}

		err = qtx.ReparentFolders(ctx, sqlc.ReparentFoldersParams{
			NewParentID: parentID,
			OldParentID: nullString(id),
		})
		if err != nil {
			return fmt.Errorf("reparenting children of %s: %w", id, err)
		}

		if err := qtx.DeleteFolder(ctx, id); err != nil {
			return fmt.Errorf("deleting folder %s: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return 0, classify("deleting folder", err)
	}
	return moved, nil
}

// Tag operations

func (s *SQLiteDatabase) InsertTag(ctx context.Context, t *model.Tag) error {
	if err := insertTag(ctx, s.queries, t); err != nil {
		return classify("inserting tag", err)
	}
	return nil
}

func insertTag(ctx context.Context, q *sqlc.Queries, t *model.Tag) error {
	err := q.InsertTag(ctx, sqlc.InsertTagParams{
		ID:    t.ID,
		Name:  t.Name,
		Color: t.Color,
	})
	if err != nil {
		return fmt.Errorf("writing tag %q: %w", t.Name, err)
	}
	return nil
}

func (s *SQLiteDatabase) ListTags(ctx context.Context) ([]model.Tag, error) {
	tags, err := listTags(ctx, s.queries)
	if err != nil {
		return nil, classify("listing tags", err)
	}
	return tags, nil
}

func listTags(ctx context.Context, q *sqlc.Queries) ([]model.Tag, error) {
	rows, err := q.ListTags(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]model.Tag, len(rows))
	for i, row := range rows {
		result[i] = model.Tag{ID: row.ID, Name: row.Name, Color: row.Color}
	}
	return result, nil
}

// Bulk operations

// ReadAll reads the three collections inside one transaction so the result
// is a consistent point-in-time view.
func (s *SQLiteDatabase) ReadAll(ctx context.Context) (*model.Contents, error) {
	contents := &model.Contents{}
	err := s.withTx(ctx, func(qtx *sqlc.Queries) error {
		var err error
		if contents.Bookmarks, err = listBookmarks(ctx, qtx); err != nil {
			return fmt.Errorf("reading bookmarks: %w", err)
		}
		if contents.Folders, err = listFolders(ctx, qtx); err != nil {
			return fmt.Errorf("reading folders: %w", err)
		}
		if contents.Tags, err = listTags(ctx, qtx); err != nil {
			return fmt.Errorf("reading tags: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, classify("reading all collections", err)
	}
	return contents, nil
}

// ReplaceAll clears every collection and repopulates it in one transaction.
// Any failure rolls the store back to its previous contents.
func (s *SQLiteDatabase) ReplaceAll(ctx context.Context, contents *model.Contents) error {
	err := s.withTx(ctx, func(qtx *sqlc.Queries) error {
		if err := qtx.DeleteAllBookmarks(ctx); err != nil {
			return fmt.Errorf("clearing bookmarks: %w", err)
		}
		if err := qtx.DeleteAllTags(ctx); err != nil {
			return fmt.Errorf("clearing tags: %w", err)
		}
		if err := qtx.DeleteAllFolders(ctx); err != nil {
			return fmt.Errorf("clearing folders: %w", err)
		}

		for i := range contents.Folders {
			if err := insertFolder(ctx, qtx, &contents.Folders[i]); err != nil {
				return err
			}
		}
		for i := range contents.Tags {
			if err := insertTag(ctx, qtx, &contents.Tags[i]); err != nil {
				return err
			}
		}
		for i := range contents.Bookmarks {
			if err := upsertBookmark(ctx, qtx, &contents.Bookmarks[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return classify("replacing all collections", err)
	}
	return nil
}

// Operation history

func (s *SQLiteDatabase) CreateOperation(ctx context.Context, operation, parameters string, startedAt time.Time) (*tbo.Operation, error) {
	row, err := s.queries.InsertOperation(ctx, sqlc.InsertOperationParams{
		StartedAt:  model.Millis(startedAt),
		Operation:  operation,
		Parameters: parameters,
	})
	if err != nil {
		return nil, classify("creating operation", err)
	}
	return toOperation(row), nil
}

func (s *SQLiteDatabase) FinishOperation(ctx context.Context, id int64, status string, finishedAt time.Time) error {
	err := s.queries.FinishOperation(ctx, sqlc.FinishOperationParams{
		FinishedAt: sql.NullInt64{Int64: model.Millis(finishedAt), Valid: true},
		Status:     status,
		ID:         id,
	})
	if err != nil {
		return classify("finishing operation", err)
	}
	return nil
}

func (s *SQLiteDatabase) ListOperations(ctx context.Context, limit int) ([]*tbo.Operation, error) {
	rows, err := s.queries.ListOperations(ctx, int64(limit))
	if err != nil {
		return nil, classify("listing operations", err)
	}
	result := make([]*tbo.Operation, len(rows))
	for i, row := range rows {
		result[i] = toOperation(row)
	}
	return result, nil
}

// Path returns the database file path (or ":memory:" for in-memory databases).
func (s *SQLiteDatabase) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteDatabase) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// withTx runs fn inside a transaction, committing only if fn succeeds.
func (s *SQLiteDatabase) withTx(ctx context.Context, fn func(qtx *sqlc.Queries) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(s.queries.WithTx(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// classify maps SQLite errors onto the store's error kinds. Unique and
// primary-key collisions are constraint violations; everything else is an
// engine failure carrying the driver's message.
func classify(op string, err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) &&
		(sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique || sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey) {
		return fmt.Errorf("%w: %s: %w", tbo.ErrConstraintViolation, op, err)
	}
	return tbo.StorageFailure(op, err)
}

// Compile-time check that SQLiteDatabase implements tbo.Database interface
var _ tbo.Database = (*SQLiteDatabase)(nil)
