package domain

import (
	"slices"
	"time"
)

// VideoType identifies the platform hosting a video bookmark.
type VideoType string

// Supported video platforms.
const (
	VideoTypeYouTube   VideoType = "youtube"
	VideoTypeInstagram VideoType = "instagram"
)

// Valid reports whether v is a known video platform.
func (v VideoType) Valid() bool {
	return v == VideoTypeYouTube || v == VideoTypeInstagram
}

// MetadataStatus tracks where a bookmark is in the metadata extraction lifecycle.
type MetadataStatus string

// Metadata lifecycle states.
const (
	MetadataPending    MetadataStatus = "pending"
	MetadataProcessing MetadataStatus = "processing"
	MetadataCompleted  MetadataStatus = "completed"
	MetadataFailed     MetadataStatus = "failed"
)

// Valid reports whether s is a known metadata status.
func (s MetadataStatus) Valid() bool {
	switch s {
	case MetadataPending, MetadataProcessing, MetadataCompleted, MetadataFailed:
		return true
	}
	return false
}

// Bookmark is a saved URL with cached page metadata and organizational links.
// Optional string fields are empty when absent and are omitted from JSON.
type Bookmark struct {
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	ID             string         `json:"id"`
	UserID         string         `json:"user_id"`
	URL            string         `json:"url"`
	Title          string         `json:"title,omitempty"`
	Description    string         `json:"description,omitempty"`
	ImageURL       string         `json:"image_url,omitempty"`
	FaviconURL     string         `json:"favicon_url,omitempty"`
	VideoType      VideoType      `json:"video_type,omitempty"`
	TranscriptID   string         `json:"transcript_id,omitempty"`
	CollectionID   string         `json:"collection_id,omitempty"` // Empty means "no collection"
	MetadataStatus MetadataStatus `json:"metadata_status"`
	TagIDs         []string       `json:"tag_ids"` // Cache of the bookmark_tags relation
	Order          int            `json:"order"`   // Manual sort key within CollectionID
	IsVideo        bool           `json:"is_video"`
}

// Touch updates the UpdatedAt timestamp.
func (b *Bookmark) Touch() {
	b.UpdatedAt = time.Now()
}

// OwnedBy reports whether the bookmark belongs to userID.
func (b *Bookmark) OwnedBy(userID string) bool {
	return userID != "" && b.UserID == userID
}

// HasTag reports whether tagID is present in the cached tag list.
func (b *Bookmark) HasTag(tagID string) bool {
	return slices.Contains(b.TagIDs, tagID)
}

// RemoveTagID strips tagID from the cached tag list.
// Returns true if the list changed.
func (b *Bookmark) RemoveTagID(tagID string) bool {
	before := len(b.TagIDs)
	b.TagIDs = slices.DeleteFunc(b.TagIDs, func(id string) bool { return id == tagID })
	return len(b.TagIDs) != before
}

// NextOrder returns the manual sort key for a new item appended to a scope
// holding the given orders: max(0, orders...) + 1. An empty scope yields 1.
func NextOrder(orders []int) int {
	highest := 0
	for _, o := range orders {
		highest = max(highest, o)
	}
	return highest + 1
}
