package database

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"tbo-go/internal/database/sqlc"
	"tbo-go/internal/model"
	"tbo-go/internal/tbo"
)

func toBookmark(row sqlc.Bookmark) (model.Bookmark, error) {
	b := model.Bookmark{
		ID:        row.ID,
		TweetID:   row.TweetID.String,
		Author:    row.Author,
		Content:   row.Content,
		URL:       row.Url,
		CreatedAt: row.CreatedAt,
		FolderID:  row.FolderID,
		Notes:     row.Notes,
	}
	if err := json.Unmarshal([]byte(row.Media), &b.Media); err != nil {
		return model.Bookmark{}, fmt.Errorf("decoding media for %s: %w", row.ID, err)
	}
	if err := json.Unmarshal([]byte(row.Tags), &b.Tags); err != nil {
		return model.Bookmark{}, fmt.Errorf("decoding tags for %s: %w", row.ID, err)
	}
	if b.Media == nil {
		b.Media = []model.Media{}
	}
	if b.Tags == nil {
		b.Tags = []string{}
	}
	return b, nil
}

func toFolder(row sqlc.Folder) model.Folder {
	f := model.Folder{
		ID:        row.ID,
		Name:      row.Name,
		Color:     row.Color,
		CreatedAt: row.CreatedAt,
	}
	if row.ParentID.Valid {
		parent := row.ParentID.String
		f.ParentID = &parent
	}
	return f
}

func toOperation(row sqlc.Operation) *tbo.Operation {
	op := &tbo.Operation{
		ID:         row.ID,
		Operation:  row.Operation,
		Parameters: row.Parameters,
		Status:     row.Status,
		StartedAt:  model.Time(row.StartedAt),
	}
	if row.FinishedAt.Valid {
		finished := model.Time(row.FinishedAt.Int64)
		op.FinishedAt = &finished
	}
	return op
}

// nullString stores empty strings as NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullStringPtr(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return nullString(*s)
}
