package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tagcolor "github.com/listenupapp/linkstash/internal/color"
	"github.com/listenupapp/linkstash/internal/domain"
	domainerrors "github.com/listenupapp/linkstash/internal/errors"
	"github.com/listenupapp/linkstash/internal/id"
	"github.com/listenupapp/linkstash/internal/normalize"
	"github.com/listenupapp/linkstash/internal/store"
	"github.com/listenupapp/linkstash/internal/validation"
)

// CreateTagRequest holds the fields accepted when creating a tag.
type CreateTagRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Color string `json:"color,omitempty" validate:"omitempty,hexcolor"`
}

// UpdateTagRequest is a patch: nil fields are kept.
type UpdateTagRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Color *string `json:"color,omitempty" validate:"omitempty,hexcolor"`
}

// TagService manages per-user tags and the bookmark/tag relation.
type TagService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewTagService creates a new tag service.
func NewTagService(store store.Store, validator *validation.Validator, logger *slog.Logger) *TagService {
	return &TagService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// Create creates a tag. Names are unique per user after normalization.
func (s *TagService) Create(ctx context.Context, req CreateTagRequest) (*domain.Tag, error) {
	userID, err := requireSubject(ctx)
	if err != nil {
		return nil, err
	}

	req.Name = normalize.TagName(req.Name)
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	existing, err := s.store.FindTagsByName(ctx, userID, req.Name)
	if err != nil {
		return nil, fmt.Errorf("check duplicate tag: %w", err)
	}
	if len(existing) > 0 {
		return nil, domainerrors.AlreadyExistsf("tag %q already exists", req.Name)
	}

	return s.create(ctx, userID, req.Name, req.Color)
}

// FindOrCreate returns the caller's tag named req.Name, creating it with
// req.Color if needed. An existing tag keeps its color.
// created reports whether a new tag was made.
func (s *TagService) FindOrCreate(ctx context.Context, req CreateTagRequest) (tag *domain.Tag, created bool, err error) {
	userID, err := requireSubject(ctx)
	if err != nil {
		return nil, false, err
	}

	name := normalize.TagName(req.Name)
	if err := s.validator.Validate(CreateTagRequest{Name: name, Color: req.Color}); err != nil {
		return nil, false, err
	}

	existing, err := s.store.FindTagsByName(ctx, userID, name)
	if err != nil {
		return nil, false, fmt.Errorf("find tag: %w", err)
	}
	if len(existing) > 0 {
		return existing[0], false, nil
	}

	tag, err = s.create(ctx, userID, name, req.Color)
	if err != nil {
		return nil, false, err
	}
	return tag, true, nil
}

func (s *TagService) create(ctx context.Context, userID, name, color string) (*domain.Tag, error) {
	tagID, err := id.Generate(id.Tag)
	if err != nil {
		return nil, fmt.Errorf("generate tag ID: %w", err)
	}

	if color == "" {
		color = tagcolor.ForName(name)
	}

	t := &domain.Tag{
		CreatedAt: time.Now(),
		ID:        tagID,
		UserID:    userID,
		Name:      name,
		Color:     color,
	}
	if err := s.store.CreateTag(ctx, t); err != nil {
		return nil, translate(err, "create tag")
	}

	s.logger.Info("tag created", "tag_id", t.ID, "user_id", userID, "name", t.Name)
	return t, nil
}

// Get returns one of the caller's tags.
func (s *TagService) Get(ctx context.Context, tagID string) (*domain.Tag, error) {
	userID, err := requireSubject(ctx)
	if err != nil {
		return nil, domainerrors.NotFound("tag not found")
	}
	return loadOwned(ctx, userID, "tag", tagID, s.store.GetTag)
}

// GetWithCount returns a tag with the number of bookmarks carrying it.
func (s *TagService) GetWithCount(ctx context.Context, tagID string) (*domain.TagWithCount, error) {
	t, err := s.Get(ctx, tagID)
	if err != nil {
		return nil, err
	}
	rels, err := s.store.ListBookmarkTagsForTag(ctx, t.ID)
	if err != nil {
		return nil, fmt.Errorf("count tagged bookmarks: %w", err)
	}
	return &domain.TagWithCount{Tag: *t, BookmarkCount: len(rels)}, nil
}

// List returns the caller's tags, newest first.
func (s *TagService) List(ctx context.Context) ([]*domain.Tag, error) {
	userID, err := requireSubject(ctx)
	if err != nil {
		return []*domain.Tag{}, nil
	}
	out, err := s.store.ListTags(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	if out == nil {
		out = []*domain.Tag{}
	}
	return out, nil
}

// GetForBookmark returns the tags attached to one of the caller's bookmarks.
func (s *TagService) GetForBookmark(ctx context.Context, bookmarkID string) ([]*domain.Tag, error) {
	userID, err := requireSubject(ctx)
	if err != nil {
		return []*domain.Tag{}, nil
	}

	b, err := loadOwned(ctx, userID, "bookmark", bookmarkID, s.store.GetBookmark)
	if err != nil {
		return nil, err
	}

	rels, err := s.store.ListBookmarkTagsForBookmark(ctx, b.ID)
	if err != nil {
		return nil, fmt.Errorf("list bookmark tags: %w", err)
	}

	out := make([]*domain.Tag, 0, len(rels))
	for _, rel := range rels {
		t, err := s.store.GetTag(ctx, rel.TagID)
		if err != nil {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

// Update patches a tag. The duplicate-name check runs only when the name changes.
func (s *TagService) Update(ctx context.Context, tagID string, req UpdateTagRequest) (*domain.Tag, error) {
	userID, err := requireSubject(ctx)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		name := normalize.TagName(*req.Name)
		req.Name = &name
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	t, err := loadOwned(ctx, userID, "tag", tagID, s.store.GetTag)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != t.Name {
		existing, err := s.store.FindTagsByName(ctx, userID, *req.Name)
		if err != nil {
			return nil, fmt.Errorf("check duplicate tag: %w", err)
		}
		if len(existing) > 0 {
			return nil, domainerrors.AlreadyExistsf("tag %q already exists", *req.Name)
		}
	}

	patch(&t.Name, req.Name)
	patch(&t.Color, req.Color)

	if err := s.store.UpdateTag(ctx, t); err != nil {
		return nil, translate(err, "update tag")
	}
	return t, nil
}

// Remove deletes a tag, its relation rows, and its id from every affected
// bookmark's cached tag list.
func (s *TagService) Remove(ctx context.Context, tagID string) error {
	userID, err := requireSubject(ctx)
	if err != nil {
		return err
	}

	t, err := loadOwned(ctx, userID, "tag", tagID, s.store.GetTag)
	if err != nil {
		return err
	}

	rels, err := s.store.ListBookmarkTagsForTag(ctx, t.ID)
	if err != nil {
		return fmt.Errorf("list tagged bookmarks: %w", err)
	}

	for _, rel := range rels {
		b, err := s.store.GetBookmark(ctx, rel.BookmarkID)
		if err == nil && b.RemoveTagID(t.ID) {
			b.Touch()
			if err := s.store.UpdateBookmark(ctx, b); err != nil {
				return fmt.Errorf("untag bookmark %s: %w", b.ID, err)
			}
		}
		if err := s.store.RemoveBookmarkTag(ctx, rel.BookmarkID, t.ID); err != nil {
			return fmt.Errorf("remove bookmark tag: %w", err)
		}
	}

	if err := s.store.DeleteTag(ctx, t.ID); err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}

	s.logger.Info("tag deleted", "tag_id", t.ID, "user_id", userID, "bookmarks", len(rels))
	return nil
}
