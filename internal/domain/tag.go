package domain

import "time"

// Tag is a user-defined label. Names are unique per user.
type Tag struct {
	CreatedAt time.Time `json:"created_at"`
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Color     string    `json:"color,omitempty"`
}

// OwnedBy reports whether the tag belongs to userID.
func (t *Tag) OwnedBy(userID string) bool {
	return userID != "" && t.UserID == userID
}

// TagWithCount pairs a tag with the number of bookmarks carrying it.
type TagWithCount struct {
	Tag
	BookmarkCount int `json:"bookmark_count"`
}

// BookmarkTag is one row of the many-to-many relation between bookmarks and tags.
// The relation is authoritative; Bookmark.TagIDs is a cache of it.
type BookmarkTag struct {
	CreatedAt  time.Time `json:"created_at"`
	BookmarkID string    `json:"bookmark_id"`
	TagID      string    `json:"tag_id"`
	UserID     string    `json:"user_id"`
}
