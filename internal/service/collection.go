package service

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/listenupapp/linkstash/internal/domain"
	domainerrors "github.com/listenupapp/linkstash/internal/errors"
	"github.com/listenupapp/linkstash/internal/id"
	"github.com/listenupapp/linkstash/internal/normalize"
	"github.com/listenupapp/linkstash/internal/store"
	"github.com/listenupapp/linkstash/internal/validation"
)

// CreateCollectionRequest holds the fields accepted when creating a collection.
type CreateCollectionRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description,omitempty" validate:"max=2000"`
	Color       string `json:"color,omitempty" validate:"omitempty,hexcolor"`
	Icon        string `json:"icon,omitempty" validate:"max=64"`
	ParentID    string `json:"parent_id,omitempty"`
}

// UpdateCollectionRequest is a patch: nil fields are kept, an empty string clears.
// The parent is changed through MoveToParent.
type UpdateCollectionRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Color       *string `json:"color,omitempty" validate:"omitempty,hexcolor"`
	Icon        *string `json:"icon,omitempty" validate:"omitempty,max=64"`
}

// CollectionService manages the collection hierarchy.
type CollectionService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewCollectionService creates a new collection service.
func NewCollectionService(store store.Store, validator *validation.Validator, logger *slog.Logger) *CollectionService {
	return &CollectionService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// Create creates a collection for the caller, appended after its siblings.
func (s *CollectionService) Create(ctx context.Context, req CreateCollectionRequest) (*domain.Collection, error) {
	userID, err := requireSubject(ctx)
	if err != nil {
		return nil, err
	}

	req.Name = normalize.Text(req.Name)
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if req.ParentID != "" {
		if _, err := loadOwned(ctx, userID, "collection", req.ParentID, s.store.GetCollection); err != nil {
			return nil, err
		}
	}

	order, err := s.nextOrder(ctx, userID, req.ParentID, "")
	if err != nil {
		return nil, err
	}

	collectionID, err := id.Generate(id.Collection)
	if err != nil {
		return nil, fmt.Errorf("generate collection ID: %w", err)
	}

	now := time.Now()
	c := &domain.Collection{
		ID:          collectionID,
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Icon:        req.Icon,
		ParentID:    req.ParentID,
		Order:       order,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.CreateCollection(ctx, c); err != nil {
		return nil, translate(err, "create collection")
	}

	s.logger.Info("collection created",
		"collection_id", c.ID,
		"user_id", userID,
		"parent_id", c.ParentID,
		"name", c.Name,
	)

	return c, nil
}

// Get returns one of the caller's collections.
func (s *CollectionService) Get(ctx context.Context, collectionID string) (*domain.Collection, error) {
	userID, err := requireSubject(ctx)
	if err != nil {
		return nil, domainerrors.NotFound("collection not found")
	}
	return loadOwned(ctx, userID, "collection", collectionID, s.store.GetCollection)
}

// GetWithCount returns a collection with the number of bookmarks directly in it.
func (s *CollectionService) GetWithCount(ctx context.Context, collectionID string) (*domain.CollectionWithCount, error) {
	c, err := s.Get(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	bookmarks, err := s.store.ListBookmarksInCollection(ctx, c.UserID, c.ID)
	if err != nil {
		return nil, fmt.Errorf("count bookmarks: %w", err)
	}
	return &domain.CollectionWithCount{Collection: *c, BookmarkCount: len(bookmarks)}, nil
}

// List returns the children of parentID (roots when empty), sorted by Order.
func (s *CollectionService) List(ctx context.Context, parentID string) ([]*domain.Collection, error) {
	userID, err := requireSubject(ctx)
	if err != nil {
		return []*domain.Collection{}, nil
	}

	out, err := s.store.ListChildCollections(ctx, userID, parentID)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	slices.SortStableFunc(out, func(a, b *domain.Collection) int {
		if c := cmp.Compare(a.Order, b.Order); c != 0 {
			return c
		}
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	if out == nil {
		out = []*domain.Collection{}
	}
	return out, nil
}

// ListAll returns every collection of the caller, newest first.
func (s *CollectionService) ListAll(ctx context.Context) ([]*domain.Collection, error) {
	userID, err := requireSubject(ctx)
	if err != nil {
		return []*domain.Collection{}, nil
	}
	out, err := s.store.ListCollections(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	if out == nil {
		out = []*domain.Collection{}
	}
	return out, nil
}

// Update patches a collection's name, description, color and icon.
func (s *CollectionService) Update(ctx context.Context, collectionID string, req UpdateCollectionRequest) (*domain.Collection, error) {
	userID, err := requireSubject(ctx)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		name := normalize.Text(*req.Name)
		req.Name = &name
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	c, err := loadOwned(ctx, userID, "collection", collectionID, s.store.GetCollection)
	if err != nil {
		return nil, err
	}

	patch(&c.Name, req.Name)
	patch(&c.Description, req.Description)
	patch(&c.Color, req.Color)
	patch(&c.Icon, req.Icon)
	c.Touch()

	if err := s.store.UpdateCollection(ctx, c); err != nil {
		return nil, translate(err, "update collection")
	}
	return c, nil
}

// Remove deletes a collection. Its bookmarks become unfiled and its direct
// children become roots; nothing else is deleted.
func (s *CollectionService) Remove(ctx context.Context, collectionID string) error {
	userID, err := requireSubject(ctx)
	if err != nil {
		return err
	}

	c, err := loadOwned(ctx, userID, "collection", collectionID, s.store.GetCollection)
	if err != nil {
		return err
	}

	bookmarks, err := s.store.ListBookmarksInCollection(ctx, userID, c.ID)
	if err != nil {
		return fmt.Errorf("list collection bookmarks: %w", err)
	}
	for _, b := range bookmarks {
		b.CollectionID = ""
		b.Touch()
		if err := s.store.UpdateBookmark(ctx, b); err != nil {
			return fmt.Errorf("unassign bookmark %s: %w", b.ID, err)
		}
	}

	children, err := s.store.ListChildCollections(ctx, userID, c.ID)
	if err != nil {
		return fmt.Errorf("list child collections: %w", err)
	}
	for _, child := range children {
		child.ParentID = ""
		child.Touch()
		if err := s.store.UpdateCollection(ctx, child); err != nil {
			return fmt.Errorf("promote collection %s: %w", child.ID, err)
		}
	}

	if err := s.store.DeleteCollection(ctx, c.ID); err != nil {
		return fmt.Errorf("delete collection: %w", err)
	}

	s.logger.Info("collection deleted",
		"collection_id", c.ID,
		"user_id", userID,
		"unassigned_bookmarks", len(bookmarks),
		"promoted_children", len(children),
	)
	return nil
}

// MoveToParent re-parents a collection, or makes it a root when parentID is
// empty. Self-parenting and cycles are rejected without changing anything.
func (s *CollectionService) MoveToParent(ctx context.Context, collectionID, parentID string) (*domain.Collection, error) {
	userID, err := requireSubject(ctx)
	if err != nil {
		return nil, err
	}

	c, err := loadOwned(ctx, userID, "collection", collectionID, s.store.GetCollection)
	if err != nil {
		return nil, err
	}
	if parentID != "" && parentID != c.ID {
		if _, err := loadOwned(ctx, userID, "collection", parentID, s.store.GetCollection); err != nil {
			return nil, err
		}
	}

	err = domain.CheckReparent(ctx, parentLookup{store: s.store}, c.ID, parentID)
	switch {
	case errors.Is(err, domain.ErrSelfParent):
		return nil, domainerrors.InvalidRelationship("a collection cannot be its own parent")
	case errors.Is(err, domain.ErrCycle):
		return nil, domainerrors.InvalidRelationship("cannot move a collection into its own descendant")
	case err != nil:
		return nil, fmt.Errorf("check hierarchy: %w", err)
	}

	if c.ParentID == parentID {
		return c, nil
	}

	order, err := s.nextOrder(ctx, userID, parentID, c.ID)
	if err != nil {
		return nil, err
	}

	c.ParentID = parentID
	c.Order = order
	c.Touch()
	if err := s.store.UpdateCollection(ctx, c); err != nil {
		return nil, translate(err, "move collection")
	}
	return c, nil
}

// Reorder sets a collection's manual sort key among its siblings.
func (s *CollectionService) Reorder(ctx context.Context, collectionID string, order int) (*domain.Collection, error) {
	userID, err := requireSubject(ctx)
	if err != nil {
		return nil, err
	}
	if order < 0 {
		return nil, domainerrors.Validation("order must not be negative")
	}

	c, err := loadOwned(ctx, userID, "collection", collectionID, s.store.GetCollection)
	if err != nil {
		return nil, err
	}

	c.Order = order
	c.Touch()
	if err := s.store.UpdateCollection(ctx, c); err != nil {
		return nil, translate(err, "reorder collection")
	}
	return c, nil
}

func (s *CollectionService) nextOrder(ctx context.Context, userID, parentID, excludeID string) (int, error) {
	siblings, err := s.store.ListChildCollections(ctx, userID, parentID)
	if err != nil {
		return 0, fmt.Errorf("list sibling collections: %w", err)
	}
	orders := make([]int, 0, len(siblings))
	for _, c := range siblings {
		if c.ID != excludeID {
			orders = append(orders, c.Order)
		}
	}
	return domain.NextOrder(orders), nil
}

// parentLookup adapts the collection store to domain.ParentLookup.
type parentLookup struct {
	store store.CollectionStore
}

func (l parentLookup) ParentOf(ctx context.Context, collectionID string) (string, bool, error) {
	c, err := l.store.GetCollection(ctx, collectionID)
	if errors.Is(err, store.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return c.ParentID, true, nil
}
