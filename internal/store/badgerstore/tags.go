package badgerstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/listenupapp/linkstash/internal/domain"
	"github.com/listenupapp/linkstash/internal/store"
)

func tagCreated(t *domain.Tag) time.Time { return t.CreatedAt }
func tagID(t *domain.Tag) string { return t.ID }

// CreateTag inserts a new tag.
func (s *Store) CreateTag(ctx context.Context, t *domain.Tag) error {
	return s.tags.Create(ctx, t.ID, t)
}

// GetTag retrieves a tag by ID.
func (s *Store) GetTag(ctx context.Context, id string) (*domain.Tag, error) {
	return s.tags.Get(ctx, id)
}

// UpdateTag replaces an existing tag.
func (s *Store) UpdateTag(ctx context.Context, t *domain.Tag) error {
	return s.tags.Update(ctx, t.ID, t)
}

// DeleteTag removes a tag.
func (s *Store) DeleteTag(ctx context.Context, id string) error {
	return s.tags.Delete(ctx, id)
}

// FindTagsByName returns the tags of userID named name.
func (s *Store) FindTagsByName(ctx context.Context, userID, name string) ([]*domain.Tag, error) {
	return s.tags.ListByIndex(ctx, "name", indexValue(userID, name))
}

// ListTags returns every tag of userID, newest first.
func (s *Store) ListTags(ctx context.Context, userID string) ([]*domain.Tag, error) {
	out, err := s.tags.ListByIndex(ctx, "user", indexValue(userID))
	if err != nil {
		return nil, err
	}
	newestFirst(out, tagCreated, tagID)
	return out, nil
}

// Bookmark/tag relation rows are keyed by "<bookmarkID>:<tagID>".
func bookmarkTagKey(bookmarkID, tagID string) string {
	return bookmarkID + ":" + tagID
}

// AddBookmarkTag inserts a relation row. Adding an existing pair is a no-op.
func (s *Store) AddBookmarkTag(ctx context.Context, rel *domain.BookmarkTag) error {
	err := s.bookmarkTags.Create(ctx, bookmarkTagKey(rel.BookmarkID, rel.TagID), rel)
	if errors.Is(err, store.ErrAlreadyExists) {
		return nil
	}
	return err
}

// RemoveBookmarkTag deletes a relation row.
func (s *Store) RemoveBookmarkTag(ctx context.Context, bookmarkID, tagID string) error {
	return s.bookmarkTags.Delete(ctx, bookmarkTagKey(bookmarkID, tagID))
}

// SetBookmarkTags replaces every relation row of bookmarkID in a single transaction.
func (s *Store) SetBookmarkTags(ctx context.Context, userID, bookmarkID string, tagIDs []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	now := time.Now()
	err := s.db.Update(func(txn *badger.Txn) error {
		existing, err := s.bookmarkTags.indexIDsTxn(ctx, txn, "bookmark", indexValue(bookmarkID))
		if err != nil {
			return err
		}
		for _, key := range existing {
			if err := s.bookmarkTags.deleteTxn(txn, key); err != nil {
				return err
			}
		}

		seen := make(map[string]struct{}, len(tagIDs))
		for _, tagID := range tagIDs {
			if _, dup := seen[tagID]; dup {
				continue
			}
			seen[tagID] = struct{}{}

			rel := &domain.BookmarkTag{
				CreatedAt:  now,
				BookmarkID: bookmarkID,
				TagID:      tagID,
				UserID:     userID,
			}
			if err := s.bookmarkTags.createTxn(txn, bookmarkTagKey(bookmarkID, tagID), rel); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("set bookmark tags: %w", err)
	}
	return nil
}

// DeleteBookmarkTagsForBookmark removes every relation row of bookmarkID.
func (s *Store) DeleteBookmarkTagsForBookmark(ctx context.Context, bookmarkID string) error {
	return s.SetBookmarkTags(ctx, "", bookmarkID, nil)
}

// ListBookmarkTagsForBookmark returns the relation rows of bookmarkID.
func (s *Store) ListBookmarkTagsForBookmark(ctx context.Context, bookmarkID string) ([]*domain.BookmarkTag, error) {
	return s.bookmarkTags.ListByIndex(ctx, "bookmark", indexValue(bookmarkID))
}

// ListBookmarkTagsForTag returns the relation rows of tagID.
func (s *Store) ListBookmarkTagsForTag(ctx context.Context, tagID string) ([]*domain.BookmarkTag, error) {
	return s.bookmarkTags.ListByIndex(ctx, "tag", indexValue(tagID))
}
