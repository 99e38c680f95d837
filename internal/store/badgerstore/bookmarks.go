package badgerstore

import (
	"context"
	"time"

	"github.com/listenupapp/linkstash/internal/domain"
)

func bookmarkCreated(b *domain.Bookmark) time.Time { return b.CreatedAt }
func bookmarkID(b *domain.Bookmark) string { return b.ID }

// CreateBookmark inserts a new bookmark.
func (s *Store) CreateBookmark(ctx context.Context, b *domain.Bookmark) error {
	return s.bookmarks.Create(ctx, b.ID, b)
}

// GetBookmark retrieves a bookmark by ID.
func (s *Store) GetBookmark(ctx context.Context, id string) (*domain.Bookmark, error) {
	return s.bookmarks.Get(ctx, id)
}

// UpdateBookmark replaces an existing bookmark.
func (s *Store) UpdateBookmark(ctx context.Context, b *domain.Bookmark) error {
	return s.bookmarks.Update(ctx, b.ID, b)
}

// DeleteBookmark removes a bookmark. Deleting a missing bookmark is a no-op.
func (s *Store) DeleteBookmark(ctx context.Context, id string) error {
	return s.bookmarks.Delete(ctx, id)
}

// FindBookmarksByURL returns the bookmarks of userID saved with url.
func (s *Store) FindBookmarksByURL(ctx context.Context, userID, url string) ([]*domain.Bookmark, error) {
	return s.bookmarks.ListByIndex(ctx, "url", indexValue(userID, url))
}

// ListBookmarks returns every bookmark of userID, newest first.
func (s *Store) ListBookmarks(ctx context.Context, userID string) ([]*domain.Bookmark, error) {
	out, err := s.bookmarks.ListByIndex(ctx, "user", indexValue(userID))
	if err != nil {
		return nil, err
	}
	newestFirst(out, bookmarkCreated, bookmarkID)
	return out, nil
}

// ListBookmarksInCollection returns the bookmarks of userID in collectionID, newest first.
func (s *Store) ListBookmarksInCollection(ctx context.Context, userID, collectionID string) ([]*domain.Bookmark, error) {
	out, err := s.bookmarks.ListByIndex(ctx, "collection", indexValue(userID, collectionID))
	if err != nil {
		return nil, err
	}
	newestFirst(out, bookmarkCreated, bookmarkID)
	return out, nil
}
