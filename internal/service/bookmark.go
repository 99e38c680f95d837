package service

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/listenupapp/linkstash/internal/domain"
	domainerrors "github.com/listenupapp/linkstash/internal/errors"
	"github.com/listenupapp/linkstash/internal/id"
	"github.com/listenupapp/linkstash/internal/metadata/video"
	"github.com/listenupapp/linkstash/internal/store"
	"github.com/listenupapp/linkstash/internal/validation"
)

// CreateBookmarkRequest holds the fields accepted when saving a bookmark.
type CreateBookmarkRequest struct {
	URL          string   `json:"url" validate:"required,max=4096"`
	Title        string   `json:"title,omitempty" validate:"max=1000"`
	Description  string   `json:"description,omitempty" validate:"max=10000"`
	ImageURL     string   `json:"image_url,omitempty" validate:"max=4096"`
	FaviconURL   string   `json:"favicon_url,omitempty" validate:"max=4096"`
	CollectionID string   `json:"collection_id,omitempty"`
	TagIDs       []string `json:"tag_ids,omitempty" validate:"dive,required"`
}

// UpdateBookmarkRequest is a patch: nil fields are kept, an empty string clears.
// A non-nil TagIDs replaces the whole tag set.
type UpdateBookmarkRequest struct {
	Title       *string   `json:"title,omitempty" validate:"omitempty,max=1000"`
	Description *string   `json:"description,omitempty" validate:"omitempty,max=10000"`
	ImageURL    *string   `json:"image_url,omitempty" validate:"omitempty,max=4096"`
	FaviconURL  *string   `json:"favicon_url,omitempty" validate:"omitempty,max=4096"`
	TagIDs      *[]string `json:"tag_ids,omitempty" validate:"omitempty,dive,required"`
}

// MetadataFields carries extracted page metadata; nil fields are left untouched.
type MetadataFields struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
	FaviconURL  *string `json:"favicon_url,omitempty"`
}

// ListBookmarksFilter selects a bookmark view. CollectionID (or NoCollection)
// and TagID are mutually exclusive.
type ListBookmarksFilter struct {
	CollectionID string
	TagID        string
	NoCollection bool
}

// BookmarkService manages bookmarks and keeps their relations consistent.
type BookmarkService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewBookmarkService creates a new bookmark service.
func NewBookmarkService(store store.Store, validator *validation.Validator, logger *slog.Logger) *BookmarkService {
	return &BookmarkService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// Create saves a new bookmark for the caller.
// The URL must not already be saved by the same user. The referenced
// collection and tags must belong to the caller.
func (s *BookmarkService) Create(ctx context.Context, req CreateBookmarkRequest) (*domain.Bookmark, error) {
	userID, err := requireSubject(ctx)
	if err != nil {
		return nil, err
	}

	req.URL = strings.TrimSpace(req.URL)
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if req.CollectionID != "" {
		if _, err := loadOwned(ctx, userID, "collection", req.CollectionID, s.store.GetCollection); err != nil {
			return nil, err
		}
	}

	tagIDs := dedupe(req.TagIDs)
	if err := s.checkTagsOwned(ctx, userID, tagIDs); err != nil {
		return nil, err
	}

	existing, err := s.store.FindBookmarksByURL(ctx, userID, req.URL)
	if err != nil {
		return nil, fmt.Errorf("check duplicate url: %w", err)
	}
	if len(existing) > 0 {
		return nil, domainerrors.AlreadyExists("bookmark with this URL already exists")
	}

	order, err := s.nextOrder(ctx, userID, req.CollectionID, "")
	if err != nil {
		return nil, err
	}

	bookmarkID, err := id.Generate(id.Bookmark)
	if err != nil {
		return nil, fmt.Errorf("generate bookmark ID: %w", err)
	}

	status := domain.MetadataPending
	if req.Title != "" {
		status = domain.MetadataCompleted
	}

	videoType, isVideo := video.Classify(req.URL)

	now := time.Now()
	b := &domain.Bookmark{
		CreatedAt:      now,
		UpdatedAt:      now,
		ID:             bookmarkID,
		UserID:         userID,
		URL:            req.URL,
		Title:          req.Title,
		Description:    req.Description,
		ImageURL:       req.ImageURL,
		FaviconURL:     req.FaviconURL,
		VideoType:      videoType,
		CollectionID:   req.CollectionID,
		MetadataStatus: status,
		TagIDs:         tagIDs,
		Order:          order,
		IsVideo:        isVideo,
	}

	if err := s.store.CreateBookmark(ctx, b); err != nil {
		return nil, translate(err, "create bookmark")
	}

	if len(tagIDs) > 0 {
		if err := s.store.SetBookmarkTags(ctx, userID, b.ID, tagIDs); err != nil {
			return nil, fmt.Errorf("tag bookmark: %w", err)
		}
	}

	s.logger.Info("bookmark created",
		"bookmark_id", b.ID,
		"user_id", userID,
		"collection_id", b.CollectionID,
		"is_video", b.IsVideo,
	)

	return b, nil
}

// Get returns one of the caller's bookmarks.
func (s *BookmarkService) Get(ctx context.Context, bookmarkID string) (*domain.Bookmark, error) {
	userID, err := requireSubject(ctx)
	if err != nil {
		return nil, domainerrors.NotFound("bookmark not found")
	}
	return loadOwned(ctx, userID, "bookmark", bookmarkID, s.store.GetBookmark)
}

// Update patches a bookmark's descriptive fields and optionally replaces its tags.
func (s *BookmarkService) Update(ctx context.Context, bookmarkID string, req UpdateBookmarkRequest) (*domain.Bookmark, error) {
	userID, err := requireSubject(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	b, err := loadOwned(ctx, userID, "bookmark", bookmarkID, s.store.GetBookmark)
	if err != nil {
		return nil, err
	}

	patch(&b.Title, req.Title)
	patch(&b.Description, req.Description)
	patch(&b.ImageURL, req.ImageURL)
	patch(&b.FaviconURL, req.FaviconURL)

	if req.TagIDs != nil {
		tagIDs := dedupe(*req.TagIDs)
		if err := s.checkTagsOwned(ctx, userID, tagIDs); err != nil {
			return nil, err
		}
		if err := s.store.SetBookmarkTags(ctx, userID, b.ID, tagIDs); err != nil {
			return nil, fmt.Errorf("replace bookmark tags: %w", err)
		}
		b.TagIDs = tagIDs
	}

	b.Touch()
	if err := s.store.UpdateBookmark(ctx, b); err != nil {
		return nil, translate(err, "update bookmark")
	}
	return b, nil
}

// Remove deletes a bookmark together with its tag relations and transcript.
func (s *BookmarkService) Remove(ctx context.Context, bookmarkID string) error {
	userID, err := requireSubject(ctx)
	if err != nil {
		return err
	}

	b, err := loadOwned(ctx, userID, "bookmark", bookmarkID, s.store.GetBookmark)
	if err != nil {
		return err
	}

	if err := s.store.DeleteBookmarkTagsForBookmark(ctx, b.ID); err != nil {
		return fmt.Errorf("delete bookmark tags: %w", err)
	}

	transcriptID := b.TranscriptID
	if transcriptID == "" {
		if tr, err := s.store.GetTranscriptForBookmark(ctx, b.ID); err == nil {
			transcriptID = tr.ID
		}
	}
	if transcriptID != "" {
		if err := s.store.DeleteTranscript(ctx, transcriptID); err != nil {
			return fmt.Errorf("delete transcript: %w", err)
		}
	}

	if err := s.store.DeleteBookmark(ctx, b.ID); err != nil {
		return fmt.Errorf("delete bookmark: %w", err)
	}

	s.logger.Info("bookmark deleted", "bookmark_id", b.ID, "user_id", userID)
	return nil
}

// List returns the caller's bookmarks for the selected view.
// A specific collection is ordered by Order ascending, ties newest first;
// every other view is newest first.
func (s *BookmarkService) List(ctx context.Context, filter ListBookmarksFilter) ([]*domain.Bookmark, error) {
	byCollection := filter.CollectionID != "" || filter.NoCollection
	if byCollection && filter.TagID != "" {
		return nil, domainerrors.Validation("filter by collection or by tag, not both")
	}
	if filter.CollectionID != "" && filter.NoCollection {
		return nil, domainerrors.Validation("collection_id and no_collection are mutually exclusive")
	}

	userID, err := requireSubject(ctx)
	if err != nil {
		return []*domain.Bookmark{}, nil
	}

	var out []*domain.Bookmark
	switch {
	case filter.TagID != "":
		out, err = s.listByTag(ctx, userID, filter.TagID)
	case filter.NoCollection:
		out, err = s.store.ListBookmarksInCollection(ctx, userID, "")
	case filter.CollectionID != "":
		out, err = s.store.ListBookmarksInCollection(ctx, userID, filter.CollectionID)
		if err == nil {
			sortByOrder(out)
		}
	default:
		out, err = s.store.ListBookmarks(ctx, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	if out == nil {
		out = []*domain.Bookmark{}
	}
	return out, nil
}

func (s *BookmarkService) listByTag(ctx context.Context, userID, tagID string) ([]*domain.Bookmark, error) {
	rels, err := s.store.ListBookmarkTagsForTag(ctx, tagID)
	if err != nil {
		return nil, err
	}

	out := make([]*domain.Bookmark, 0, len(rels))
	for _, rel := range rels {
		b, err := s.store.GetBookmark(ctx, rel.BookmarkID)
		if err != nil {
			// Dangling relation rows are skipped.
			continue
		}
		if b.OwnedBy(userID) {
			out = append(out, b)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

// MoveToCollection moves a bookmark into collectionID, or out of any
// collection when collectionID is empty. The bookmark is appended at the
// end of the target collection's order.
func (s *BookmarkService) MoveToCollection(ctx context.Context, bookmarkID, collectionID string) (*domain.Bookmark, error) {
	userID, err := requireSubject(ctx)
	if err != nil {
		return nil, err
	}

	b, err := loadOwned(ctx, userID, "bookmark", bookmarkID, s.store.GetBookmark)
	if err != nil {
		return nil, err
	}
	if collectionID != "" {
		if _, err := loadOwned(ctx, userID, "collection", collectionID, s.store.GetCollection); err != nil {
			return nil, err
		}
	}
	if b.CollectionID == collectionID {
		return b, nil
	}

	order, err := s.nextOrder(ctx, userID, collectionID, b.ID)
	if err != nil {
		return nil, err
	}

	b.CollectionID = collectionID
	b.Order = order
	b.Touch()
	if err := s.store.UpdateBookmark(ctx, b); err != nil {
		return nil, translate(err, "move bookmark")
	}
	return b, nil
}

// Reorder sets a bookmark's manual sort key.
func (s *BookmarkService) Reorder(ctx context.Context, bookmarkID string, order int) (*domain.Bookmark, error) {
	userID, err := requireSubject(ctx)
	if err != nil {
		return nil, err
	}
	if order < 0 {
		return nil, domainerrors.Validation("order must not be negative")
	}

	b, err := loadOwned(ctx, userID, "bookmark", bookmarkID, s.store.GetBookmark)
	if err != nil {
		return nil, err
	}

	b.Order = order
	b.Touch()
	if err := s.store.UpdateBookmark(ctx, b); err != nil {
		return nil, translate(err, "reorder bookmark")
	}
	return b, nil
}

// UpdateMetadataStatus records the progress of a metadata refresh and
// patches whichever extracted fields are present.
func (s *BookmarkService) UpdateMetadataStatus(ctx context.Context, bookmarkID string, status domain.MetadataStatus, fields *MetadataFields) (*domain.Bookmark, error) {
	userID, err := requireSubject(ctx)
	if err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, domainerrors.Validationf("unknown metadata status %q", status)
	}

	b, err := loadOwned(ctx, userID, "bookmark", bookmarkID, s.store.GetBookmark)
	if err != nil {
		return nil, err
	}

	b.MetadataStatus = status
	if fields != nil {
		patch(&b.Title, fields.Title)
		patch(&b.Description, fields.Description)
		patch(&b.ImageURL, fields.ImageURL)
		patch(&b.FaviconURL, fields.FaviconURL)
	}
	b.Touch()

	if err := s.store.UpdateBookmark(ctx, b); err != nil {
		return nil, translate(err, "update metadata status")
	}
	return b, nil
}

func (s *BookmarkService) checkTagsOwned(ctx context.Context, userID string, tagIDs []string) error {
	for _, tagID := range tagIDs {
		if _, err := loadOwned(ctx, userID, "tag", tagID, s.store.GetTag); err != nil {
			return err
		}
	}
	return nil
}

// nextOrder computes max+1 over the bookmarks in a collection scope,
// ignoring excludeID. Not transactional: concurrent creates may share a value.
func (s *BookmarkService) nextOrder(ctx context.Context, userID, collectionID, excludeID string) (int, error) {
	siblings, err := s.store.ListBookmarksInCollection(ctx, userID, collectionID)
	if err != nil {
		return 0, fmt.Errorf("list collection bookmarks: %w", err)
	}
	orders := make([]int, 0, len(siblings))
	for _, b := range siblings {
		if b.ID != excludeID {
			orders = append(orders, b.Order)
		}
	}
	return domain.NextOrder(orders), nil
}

func sortByOrder(items []*domain.Bookmark) {
	slices.SortStableFunc(items, func(a, b *domain.Bookmark) int {
		if c := cmp.Compare(a.Order, b.Order); c != 0 {
			return c
		}
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}

func sortNewestFirst(items []*domain.Bookmark) {
	slices.SortStableFunc(items, func(a, b *domain.Bookmark) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}
