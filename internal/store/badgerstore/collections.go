package badgerstore

import (
	"context"
	"time"

	"github.com/listenupapp/linkstash/internal/domain"
)

func collectionCreated(c *domain.Collection) time.Time { return c.CreatedAt }
func collectionID(c *domain.Collection) string { return c.ID }

// CreateCollection inserts a new collection.
func (s *Store) CreateCollection(ctx context.Context, c *domain.Collection) error {
	return s.collections.Create(ctx, c.ID, c)
}

// GetCollection retrieves a collection by ID.
func (s *Store) GetCollection(ctx context.Context, id string) (*domain.Collection, error) {
	return s.collections.Get(ctx, id)
}

// UpdateCollection replaces an existing collection.
func (s *Store) UpdateCollection(ctx context.Context, c *domain.Collection) error {
	return s.collections.Update(ctx, c.ID, c)
}

// DeleteCollection removes a collection.
func (s *Store) DeleteCollection(ctx context.Context, id string) error {
	return s.collections.Delete(ctx, id)
}

// ListCollections returns every collection of userID, newest first.
func (s *Store) ListCollections(ctx context.Context, userID string) ([]*domain.Collection, error) {
	out, err := s.collections.ListByIndex(ctx, "user", indexValue(userID))
	if err != nil {
		return nil, err
	}
	newestFirst(out, collectionCreated, collectionID)
	return out, nil
}

// ListChildCollections returns the direct children of parentID, newest first.
func (s *Store) ListChildCollections(ctx context.Context, userID, parentID string) ([]*domain.Collection, error) {
	out, err := s.collections.ListByIndex(ctx, "parent", indexValue(userID, parentID))
	if err != nil {
		return nil, err
	}
	newestFirst(out, collectionCreated, collectionID)
	return out, nil
}
