// Package dispatch routes named actions from the extension UI to the store
// and wraps every outcome in a {success, data?, error?} envelope.
package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"tbo-go/internal/model"
	"tbo-go/internal/tbo"
)

// Action names accepted on the wire.
const (
	ActionSaveBookmark         = "saveBookmark"
	ActionGetBookmarks         = "getBookmarks"
	ActionGetBookmarksByFolder = "getBookmarksByFolder"
	ActionDeleteBookmark       = "deleteBookmark"
	ActionCreateFolder         = "createFolder"
	ActionGetFolders           = "getFolders"
	ActionUpdateFolder         = "updateFolder"
	ActionDeleteFolder         = "deleteFolder"
	ActionCreateTag            = "createTag"
	ActionGetTags              = "getTags"
	ActionSearchBookmarks      = "searchBookmarks"
	ActionExportData           = "exportData"
	ActionImportData           = "importData"
	ActionGetStats             = "getStats"
)

// ErrUnknownAction is returned by Decode for an action outside the set above.
var ErrUnknownAction = errors.New("unknown action")

// Store is the subset of tbo.TBOService the router calls.
type Store interface {
	SaveBookmark(ctx context.Context, b model.Bookmark) (*model.Bookmark, error)
	GetAllBookmarks(ctx context.Context) ([]model.Bookmark, error)
	GetBookmarksByFolder(ctx context.Context, folderID string) ([]model.Bookmark, error)
	DeleteBookmark(ctx context.Context, id string) error
	SearchBookmarks(ctx context.Context, query string) ([]model.Bookmark, error)
	CreateFolder(ctx context.Context, f model.Folder) (*model.Folder, error)
	GetAllFolders(ctx context.Context) ([]model.Folder, error)
	UpdateFolder(ctx context.Context, f model.Folder) (*model.Folder, error)
	DeleteFolder(ctx context.Context, id string) error
	CreateTag(ctx context.Context, t model.Tag) (*model.Tag, error)
	GetAllTags(ctx context.Context) ([]model.Tag, error)
	ExportToJSON(ctx context.Context) (*model.Snapshot, error)
	ImportFromJSON(ctx context.Context, snapshot *model.Snapshot) error
	GetStats(ctx context.Context) (*tbo.Stats, error)
}

var _ Store = (*tbo.TBOService)(nil)

// Request is one routed action. The set of implementations is closed: each
// maps to exactly one store operation.
type Request interface {
	Action() string
	run(ctx context.Context, s Store) (any, error)
}

type SaveBookmark struct{ Bookmark model.Bookmark }

type GetBookmarks struct{}

type GetBookmarksByFolder struct{ FolderID string }

type DeleteBookmark struct{ ID string }

type CreateFolder struct{ Folder model.Folder }

type GetFolders struct{}

type UpdateFolder struct{ Folder model.Folder }

type DeleteFolder struct{ ID string }

type CreateTag struct{ Tag model.Tag }

type GetTags struct{}

type SearchBookmarks struct{ Query string }

type ExportData struct{}

type ImportData struct{ Snapshot *model.Snapshot }

type GetStats struct{}

func (SaveBookmark) Action() string         { return ActionSaveBookmark }
func (GetBookmarks) Action() string         { return ActionGetBookmarks }
func (GetBookmarksByFolder) Action() string { return ActionGetBookmarksByFolder }
func (DeleteBookmark) Action() string       { return ActionDeleteBookmark }
func (CreateFolder) Action() string         { return ActionCreateFolder }
func (GetFolders) Action() string           { return ActionGetFolders }
func (UpdateFolder) Action() string         { return ActionUpdateFolder }
func (DeleteFolder) Action() string         { return ActionDeleteFolder }
func (CreateTag) Action() string            { return ActionCreateTag }
func (GetTags) Action() string              { return ActionGetTags }
func (SearchBookmarks) Action() string      { return ActionSearchBookmarks }
func (ExportData) Action() string           { return ActionExportData }
func (ImportData) Action() string           { return ActionImportData }
func (GetStats) Action() string             { return ActionGetStats }

func (r SaveBookmark) run(ctx context.Context, s Store) (any, error) {
	return s.SaveBookmark(ctx, r.Bookmark)
}

func (GetBookmarks) run(ctx context.Context, s Store) (any, error) {
	return list(s.GetAllBookmarks(ctx))
}

func (r GetBookmarksByFolder) run(ctx context.Context, s Store) (any, error) {
	return list(s.GetBookmarksByFolder(ctx, r.FolderID))
}

func (r DeleteBookmark) run(ctx context.Context, s Store) (any, error) {
	return nil, s.DeleteBookmark(ctx, r.ID)
}

func (r CreateFolder) run(ctx context.Context, s Store) (any, error) {
	return s.CreateFolder(ctx, r.Folder)
}

func (GetFolders) run(ctx context.Context, s Store) (any, error) {
	return list(s.GetAllFolders(ctx))
}

func (r UpdateFolder) run(ctx context.Context, s Store) (any, error) {
	return s.UpdateFolder(ctx, r.Folder)
}

func (r DeleteFolder) run(ctx context.Context, s Store) (any, error) {
	return nil, s.DeleteFolder(ctx, r.ID)
}

func (r CreateTag) run(ctx context.Context, s Store) (any, error) {
	return s.CreateTag(ctx, r.Tag)
}

func (GetTags) run(ctx context.Context, s Store) (any, error) {
	return list(s.GetAllTags(ctx))
}

func (r SearchBookmarks) run(ctx context.Context, s Store) (any, error) {
	return list(s.SearchBookmarks(ctx, r.Query))
}

func (ExportData) run(ctx context.Context, s Store) (any, error) {
	return s.ExportToJSON(ctx)
}

func (r ImportData) run(ctx context.Context, s Store) (any, error) {
	return nil, s.ImportFromJSON(ctx, r.Snapshot)
}

func (GetStats) run(ctx context.Context, s Store) (any, error) {
	return s.GetStats(ctx)
}

// list keeps empty collections encoding as [] rather than null.
func list[T any](items []T, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// message is the wire shape sent by the extension.
type message struct {
	Action   string          `json:"action"`
	Data     json.RawMessage `json:"data,omitempty"`
	ID       string          `json:"id,omitempty"`
	FolderID string          `json:"folderId,omitempty"`
	Query    string          `json:"query,omitempty"`
}

// Decode parses a wire message into its Request. An unrecognized action
// yields ErrUnknownAction; a malformed payload wraps tbo.ErrInvalidInput.
func Decode(raw []byte) (Request, error) {
	var msg message
	if err := json.Unmarshal(raw, &msg); err != nil {
		return nil, fmt.Errorf("%w: malformed message: %w", tbo.ErrInvalidInput, err)
	}

	switch msg.Action {
	case ActionSaveBookmark:
		var r SaveBookmark
		if err := decodeData(msg, &r.Bookmark); err != nil {
			return nil, err
		}
		return r, nil
	case ActionGetBookmarks:
		return GetBookmarks{}, nil
	case ActionGetBookmarksByFolder:
		return GetBookmarksByFolder{FolderID: msg.FolderID}, nil
	case ActionDeleteBookmark:
		return DeleteBookmark{ID: msg.ID}, nil
	case ActionCreateFolder:
		var r CreateFolder
		if err := decodeData(msg, &r.Folder); err != nil {
			return nil, err
		}
		return r, nil
	case ActionGetFolders:
		return GetFolders{}, nil
	case ActionUpdateFolder:
		var r UpdateFolder
		if err := decodeData(msg, &r.Folder); err != nil {
			return nil, err
		}
		return r, nil
	case ActionDeleteFolder:
		return DeleteFolder{ID: msg.ID}, nil
	case ActionCreateTag:
		var r CreateTag
		if err := decodeData(msg, &r.Tag); err != nil {
			return nil, err
		}
		return r, nil
	case ActionGetTags:
		return GetTags{}, nil
	case ActionSearchBookmarks:
		return SearchBookmarks{Query: msg.Query}, nil
	case ActionExportData:
		return ExportData{}, nil
	case ActionImportData:
		var snapshot model.Snapshot
		if err := decodeData(msg, &snapshot); err != nil {
			return nil, err
		}
		return ImportData{Snapshot: &snapshot}, nil
	case ActionGetStats:
		return GetStats{}, nil
	default:
		return nil, ErrUnknownAction
	}
}

func decodeData(msg message, dst any) error {
	if len(msg.Data) == 0 || string(msg.Data) == "null" {
		return fmt.Errorf("%w: %s requires data", tbo.ErrInvalidInput, msg.Action)
	}
	if err := json.Unmarshal(msg.Data, dst); err != nil {
		return fmt.Errorf("%w: %s data: %w", tbo.ErrInvalidInput, msg.Action, err)
	}
	return nil
}
