package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/listenupapp/linkstash/internal/domain"
)

const bookmarkColumns = `id, user_id, url, title, description, image_url, favicon_url,
	video_type, transcript_id, collection_id, metadata_status, tag_ids,
	sort_order, is_video, created_at, updated_at`

// bookmarkRow is the storage shape of domain.Bookmark.
type bookmarkRow struct {
	ID             string `db:"id"`
	UserID         string `db:"user_id"`
	URL            string `db:"url"`
	Title          string `db:"title"`
	Description    string `db:"description"`
	ImageURL       string `db:"image_url"`
	FaviconURL     string `db:"favicon_url"`
	VideoType      string `db:"video_type"`
	TranscriptID   string `db:"transcript_id"`
	CollectionID   string `db:"collection_id"`
	MetadataStatus string `db:"metadata_status"`
	TagIDs         string `db:"tag_ids"`
	CreatedAt      string `db:"created_at"`
	UpdatedAt      string `db:"updated_at"`
	Order          int    `db:"sort_order"`
	IsVideo        bool   `db:"is_video"`
}

func toBookmarkRow(b *domain.Bookmark) (*bookmarkRow, error) {
	tagIDs := b.TagIDs
	if tagIDs == nil {
		tagIDs = []string{}
	}
	tags, err := json.Marshal(tagIDs)
	if err != nil {
		return nil, fmt.Errorf("marshal tag ids: %w", err)
	}
	return &bookmarkRow{
		ID:             b.ID,
		UserID:         b.UserID,
		URL:            b.URL,
		Title:          b.Title,
		Description:    b.Description,
		ImageURL:       b.ImageURL,
		FaviconURL:     b.FaviconURL,
		VideoType:      string(b.VideoType),
		TranscriptID:   b.TranscriptID,
		CollectionID:   b.CollectionID,
		MetadataStatus: string(b.MetadataStatus),
		TagIDs:         string(tags),
		CreatedAt:      formatTime(b.CreatedAt),
		UpdatedAt:      formatTime(b.UpdatedAt),
		Order:          b.Order,
		IsVideo:        b.IsVideo,
	}, nil
}

func (r *bookmarkRow) toDomain() (*domain.Bookmark, error) {
	b := &domain.Bookmark{
		ID:             r.ID,
		UserID:         r.UserID,
		URL:            r.URL,
		Title:          r.Title,
		Description:    r.Description,
		ImageURL:       r.ImageURL,
		FaviconURL:     r.FaviconURL,
		VideoType:      domain.VideoType(r.VideoType),
		TranscriptID:   r.TranscriptID,
		CollectionID:   r.CollectionID,
		MetadataStatus: domain.MetadataStatus(r.MetadataStatus),
		Order:          r.Order,
		IsVideo:        r.IsVideo,
	}
	if err := json.Unmarshal([]byte(r.TagIDs), &b.TagIDs); err != nil {
		return nil, fmt.Errorf("unmarshal tag ids: %w", err)
	}
	var err error
	if b.CreatedAt, err = parseTime(r.CreatedAt); err != nil {
		return nil, err
	}
	if b.UpdatedAt, err = parseTime(r.UpdatedAt); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Store) selectBookmarks(ctx context.Context, query string, args ...any) ([]*domain.Bookmark, error) {
	var rows []bookmarkRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	out := make([]*domain.Bookmark, 0, len(rows))
	for i := range rows {
		b, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

// CreateBookmark inserts a new bookmark.
// Returns store.ErrAlreadyExists on a duplicate ID.
func (s *Store) CreateBookmark(ctx context.Context, b *domain.Bookmark) error {
	row, err := toBookmarkRow(b)
	if err != nil {
		return err
	}
	return s.insert(ctx, `
		INSERT INTO bookmarks (`+bookmarkColumns+`)
		VALUES (:id, :user_id, :url, :title, :description, :image_url, :favicon_url,
			:video_type, :transcript_id, :collection_id, :metadata_status, :tag_ids,
			:sort_order, :is_video, :created_at, :updated_at)`, row)
}

// GetBookmark retrieves a bookmark by ID.
// Returns store.ErrNotFound if the bookmark does not exist.
func (s *Store) GetBookmark(ctx context.Context, id string) (*domain.Bookmark, error) {
	var row bookmarkRow
	if err := s.getOne(ctx, &row, `SELECT `+bookmarkColumns+` FROM bookmarks WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return row.toDomain()
}

// UpdateBookmark replaces an existing bookmark.
// Returns store.ErrNotFound if the bookmark does not exist.
func (s *Store) UpdateBookmark(ctx context.Context, b *domain.Bookmark) error {
	row, err := toBookmarkRow(b)
	if err != nil {
		return err
	}
	return s.execOne(ctx, `
		UPDATE bookmarks SET
			user_id = :user_id, url = :url, title = :title, description = :description,
			image_url = :image_url, favicon_url = :favicon_url, video_type = :video_type,
			transcript_id = :transcript_id, collection_id = :collection_id,
			metadata_status = :metadata_status, tag_ids = :tag_ids, sort_order = :sort_order,
			is_video = :is_video, created_at = :created_at, updated_at = :updated_at
		WHERE id = :id`, row)
}

// DeleteBookmark removes a bookmark. Deleting a missing bookmark is a no-op.
func (s *Store) DeleteBookmark(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM bookmarks WHERE id = ?`, id)
	return err
}

// FindBookmarksByURL returns the bookmarks of userID saved with url.
func (s *Store) FindBookmarksByURL(ctx context.Context, userID, url string) ([]*domain.Bookmark, error) {
	return s.selectBookmarks(ctx,
		`SELECT `+bookmarkColumns+` FROM bookmarks WHERE user_id = ? AND url = ? ORDER BY created_at DESC, id ASC`,
		userID, url)
}

// ListBookmarks returns every bookmark of userID, newest first.
func (s *Store) ListBookmarks(ctx context.Context, userID string) ([]*domain.Bookmark, error) {
	return s.selectBookmarks(ctx,
		`SELECT `+bookmarkColumns+` FROM bookmarks WHERE user_id = ? ORDER BY created_at DESC, id ASC`,
		userID)
}

// ListBookmarksInCollection returns the bookmarks of userID in collectionID, newest first.
func (s *Store) ListBookmarksInCollection(ctx context.Context, userID, collectionID string) ([]*domain.Bookmark, error) {
	return s.selectBookmarks(ctx,
		`SELECT `+bookmarkColumns+` FROM bookmarks WHERE user_id = ? AND collection_id = ? ORDER BY created_at DESC, id ASC`,
		userID, collectionID)
}
