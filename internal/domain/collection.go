package domain

import "time"

// Collection is a folder-like grouping of bookmarks. Collections nest through
// ParentID; an empty ParentID places the collection at the root.
type Collection struct {
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color,omitempty"`
	Icon        string    `json:"icon,omitempty"`
	ParentID    string    `json:"parent_id,omitempty"`
	Order       int       `json:"order"` // Manual sort key among siblings
}

// Touch updates the UpdatedAt timestamp.
func (c *Collection) Touch() {
	c.UpdatedAt = time.Now()
}

// IsRoot reports whether the collection has no parent.
func (c *Collection) IsRoot() bool {
	return c.ParentID == ""
}

// OwnedBy reports whether the collection belongs to userID.
func (c *Collection) OwnedBy(userID string) bool {
	return userID != "" && c.UserID == userID
}

// CollectionWithCount pairs a collection with the number of bookmarks it holds.
type CollectionWithCount struct {
	Collection
	BookmarkCount int `json:"bookmark_count"`
}
