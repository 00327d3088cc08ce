package model

import "time"

// DefaultFolderID identifies the folder that always exists and receives
// bookmarks whose folder is deleted or unset.
const DefaultFolderID = "default"

// Media is an attachment captured with a post.
type Media struct {
	Type string `json:"type"` // "image", "video", "gif"
	URL  string `json:"url"`
}

// Bookmark is a captured social-media post plus its organizational metadata.
type Bookmark struct {
	ID        string   `json:"id"`
	TweetID   string   `json:"tweetId"` // External identity, unique when non-empty
	Author    string   `json:"author"`
	Content   string   `json:"content"`
	URL       string   `json:"url"`
	CreatedAt int64    `json:"createdAt"` // Unix milliseconds
	Media     []Media  `json:"media"`
	FolderID  string   `json:"folderId"`
	Tags      []string `json:"tags"` // Tag names; not required to resolve to a Tag record
	Notes     string   `json:"notes"`
}

// Folder is a grouping bucket for bookmarks.
type Folder struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	ParentID  *string `json:"parentId"`
	Color     string  `json:"color"`
	CreatedAt int64   `json:"createdAt"` // Unix milliseconds
}

// Tag is a cataloged label. Bookmarks reference tags by name.
type Tag struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Snapshot is the full export payload. It is also the persisted export file format.
type Snapshot struct {
	Version    int        `json:"version"`
	ExportDate time.Time  `json:"exportDate"`
	Bookmarks  []Bookmark `json:"bookmarks"`
	Folders    []Folder   `json:"folders"`
	Tags       []Tag      `json:"tags"`
}

// Contents groups the three collections without export metadata.
type Contents struct {
	Bookmarks []Bookmark
	Folders   []Folder
	Tags      []Tag
}

// Millis converts a time to the unix-millisecond form used by records.
func Millis(t time.Time) int64 {
	return t.UnixMilli()
}

// Time converts a unix-millisecond record timestamp back to a UTC time.
func Time(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
