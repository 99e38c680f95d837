// Package store defines the persistence interfaces for the LinkStash server.
//
// Backends provide raw keyed storage only: get by ID, insert, replace,
// delete, and indexed scans scoped by owner. Ownership checks, uniqueness
// rules and cascades live in the service layer.
package store

import (
	"context"

	"github.com/listenupapp/linkstash/internal/domain"
)

// Store is the complete persistence surface implemented by each backend.
type Store interface {
	BookmarkStore
	CollectionStore
	TagStore
	BookmarkTagStore
	TranscriptStore
	TodoStore

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error
	// Close releases the backend.
	Close() error
}

// BookmarkStore persists bookmarks.
type BookmarkStore interface {
	CreateBookmark(ctx context.Context, b *domain.Bookmark) error
	GetBookmark(ctx context.Context, id string) (*domain.Bookmark, error)
	UpdateBookmark(ctx context.Context, b *domain.Bookmark) error
	DeleteBookmark(ctx context.Context, id string) error

	// FindBookmarksByURL returns every bookmark of userID saved with url.
	// More than one result is possible when concurrent creates raced.
	FindBookmarksByURL(ctx context.Context, userID, url string) ([]*domain.Bookmark, error)
	// ListBookmarks returns all bookmarks of userID, newest first.
	ListBookmarks(ctx context.Context, userID string) ([]*domain.Bookmark, error)
	// ListBookmarksInCollection returns the bookmarks of userID whose
	// CollectionID equals collectionID, newest first. An empty collectionID
	// selects bookmarks in no collection.
	ListBookmarksInCollection(ctx context.Context, userID, collectionID string) ([]*domain.Bookmark, error)
}

// CollectionStore persists collections.
type CollectionStore interface {
	CreateCollection(ctx context.Context, c *domain.Collection) error
	GetCollection(ctx context.Context, id string) (*domain.Collection, error)
	UpdateCollection(ctx context.Context, c *domain.Collection) error
	DeleteCollection(ctx context.Context, id string) error

	// ListCollections returns all collections of userID, newest first.
	ListCollections(ctx context.Context, userID string) ([]*domain.Collection, error)
	// ListChildCollections returns the direct children of parentID for userID.
	// An empty parentID selects root collections.
	ListChildCollections(ctx context.Context, userID, parentID string) ([]*domain.Collection, error)
}

// TagStore persists tags.
type TagStore interface {
	CreateTag(ctx context.Context, t *domain.Tag) error
	GetTag(ctx context.Context, id string) (*domain.Tag, error)
	UpdateTag(ctx context.Context, t *domain.Tag) error
	DeleteTag(ctx context.Context, id string) error

	// FindTagsByName returns the tags of userID named name.
	FindTagsByName(ctx context.Context, userID, name string) ([]*domain.Tag, error)
	// ListTags returns all tags of userID, newest first.
	ListTags(ctx context.Context, userID string) ([]*domain.Tag, error)
}

// BookmarkTagStore persists the bookmark/tag relation.
type BookmarkTagStore interface {
	// AddBookmarkTag inserts a relation row. Adding an existing pair is a no-op.
	AddBookmarkTag(ctx context.Context, rel *domain.BookmarkTag) error
	// RemoveBookmarkTag deletes a relation row. Removing a missing pair is a no-op.
	RemoveBookmarkTag(ctx context.Context, bookmarkID, tagID string) error
	// SetBookmarkTags atomically replaces every relation row of a bookmark.
	SetBookmarkTags(ctx context.Context, userID, bookmarkID string, tagIDs []string) error
	// DeleteBookmarkTagsForBookmark removes every relation row of a bookmark.
	DeleteBookmarkTagsForBookmark(ctx context.Context, bookmarkID string) error

	ListBookmarkTagsForBookmark(ctx context.Context, bookmarkID string) ([]*domain.BookmarkTag, error)
	ListBookmarkTagsForTag(ctx context.Context, tagID string) ([]*domain.BookmarkTag, error)
}

// TranscriptStore persists transcripts.
type TranscriptStore interface {
	CreateTranscript(ctx context.Context, t *domain.Transcript) error
	GetTranscript(ctx context.Context, id string) (*domain.Transcript, error)
	UpdateTranscript(ctx context.Context, t *domain.Transcript) error
	DeleteTranscript(ctx context.Context, id string) error

	// GetTranscriptForBookmark returns the transcript attached to bookmarkID.
	GetTranscriptForBookmark(ctx context.Context, bookmarkID string) (*domain.Transcript, error)
}

// TodoStore persists todo items.
type TodoStore interface {
	CreateTodo(ctx context.Context, t *domain.Todo) error
	GetTodo(ctx context.Context, id string) (*domain.Todo, error)
	UpdateTodo(ctx context.Context, t *domain.Todo) error
	DeleteTodo(ctx context.Context, id string) error

	// ListTodos returns all todos of userID, newest first.
	ListTodos(ctx context.Context, userID string) ([]*domain.Todo, error)
}
