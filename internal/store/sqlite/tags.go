package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/listenupapp/linkstash/internal/domain"
)

const tagColumns = `id, user_id, name, color, created_at`

type tagRow struct {
	ID        string `db:"id"`
	UserID    string `db:"user_id"`
	Name      string `db:"name"`
	Color     string `db:"color"`
	CreatedAt string `db:"created_at"`
}

func toTagRow(t *domain.Tag) *tagRow {
	return &tagRow{
		ID:        t.ID,
		UserID:    t.UserID,
		Name:      t.Name,
		Color:     t.Color,
		CreatedAt: formatTime(t.CreatedAt),
	}
}

func (r *tagRow) toDomain() (*domain.Tag, error) {
	created, err := parseTime(r.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &domain.Tag{
		CreatedAt: created,
		ID:        r.ID,
		UserID:    r.UserID,
		Name:      r.Name,
		Color:     r.Color,
	}, nil
}

func (s *Store) selectTags(ctx context.Context, query string, args ...any) ([]*domain.Tag, error) {
	var rows []tagRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	out := make([]*domain.Tag, 0, len(rows))
	for i := range rows {
		t, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// CreateTag inserts a new tag.
func (s *Store) CreateTag(ctx context.Context, t *domain.Tag) error {
	return s.insert(ctx, `
		INSERT INTO tags (`+tagColumns+`)
		VALUES (:id, :user_id, :name, :color, :created_at)`, toTagRow(t))
}

// GetTag retrieves a tag by ID.
func (s *Store) GetTag(ctx context.Context, id string) (*domain.Tag, error) {
	var row tagRow
	if err := s.getOne(ctx, &row, `SELECT `+tagColumns+` FROM tags WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return row.toDomain()
}

// UpdateTag replaces an existing tag.
func (s *Store) UpdateTag(ctx context.Context, t *domain.Tag) error {
	return s.execOne(ctx, `
		UPDATE tags SET user_id = :user_id, name = :name, color = :color, created_at = :created_at
		WHERE id = :id`, toTagRow(t))
}

// DeleteTag removes a tag.
func (s *Store) DeleteTag(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM tags WHERE id = ?`, id)
	return err
}

// FindTagsByName returns the tags of userID named name.
func (s *Store) FindTagsByName(ctx context.Context, userID, name string) ([]*domain.Tag, error) {
	return s.selectTags(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE user_id = ? AND name = ? ORDER BY created_at ASC, id ASC`,
		userID, name)
}

// ListTags returns every tag of userID, newest first.
func (s *Store) ListTags(ctx context.Context, userID string) ([]*domain.Tag, error) {
	return s.selectTags(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE user_id = ? ORDER BY created_at DESC, id ASC`,
		userID)
}

const bookmarkTagColumns = `bookmark_id, tag_id, user_id, created_at`

type bookmarkTagRow struct {
	BookmarkID string `db:"bookmark_id"`
	TagID      string `db:"tag_id"`
	UserID     string `db:"user_id"`
	CreatedAt  string `db:"created_at"`
}

func (s *Store) selectBookmarkTags(ctx context.Context, query string, args ...any) ([]*domain.BookmarkTag, error) {
	var rows []bookmarkTagRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	out := make([]*domain.BookmarkTag, 0, len(rows))
	for _, r := range rows {
		created, err := parseTime(r.CreatedAt)
		if err != nil {
			return nil, err
		}
		out = append(out, &domain.BookmarkTag{
			CreatedAt:  created,
			BookmarkID: r.BookmarkID,
			TagID:      r.TagID,
			UserID:     r.UserID,
		})
	}
	return out, nil
}

// AddBookmarkTag inserts a relation row. Adding an existing pair is a no-op.
func (s *Store) AddBookmarkTag(ctx context.Context, rel *domain.BookmarkTag) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO bookmark_tags (`+bookmarkTagColumns+`)
		VALUES (?, ?, ?, ?)`,
		rel.BookmarkID, rel.TagID, rel.UserID, formatTime(rel.CreatedAt))
	return err
}

// RemoveBookmarkTag deletes a relation row.
func (s *Store) RemoveBookmarkTag(ctx context.Context, bookmarkID, tagID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM bookmark_tags WHERE bookmark_id = ? AND tag_id = ?`, bookmarkID, tagID)
	return err
}

// SetBookmarkTags replaces all relation rows of a bookmark in a single transaction.
func (s *Store) SetBookmarkTags(ctx context.Context, userID, bookmarkID string, tagIDs []string) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM bookmark_tags WHERE bookmark_id = ?`, bookmarkID); err != nil {
			return fmt.Errorf("delete bookmark_tags: %w", err)
		}

		now := formatTime(time.Now())
		for _, tagID := range tagIDs {
			_, err := tx.ExecContext(ctx, `
				INSERT OR IGNORE INTO bookmark_tags (`+bookmarkTagColumns+`)
				VALUES (?, ?, ?, ?)`,
				bookmarkID, tagID, userID, now)
			if err != nil {
				return fmt.Errorf("insert bookmark_tag: %w", err)
			}
		}
		return nil
	})
}

// DeleteBookmarkTagsForBookmark removes every relation row of bookmarkID.
func (s *Store) DeleteBookmarkTagsForBookmark(ctx context.Context, bookmarkID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM bookmark_tags WHERE bookmark_id = ?`, bookmarkID)
	return err
}

// ListBookmarkTagsForBookmark returns the relation rows of bookmarkID.
func (s *Store) ListBookmarkTagsForBookmark(ctx context.Context, bookmarkID string) ([]*domain.BookmarkTag, error) {
	return s.selectBookmarkTags(ctx,
		`SELECT `+bookmarkTagColumns+` FROM bookmark_tags WHERE bookmark_id = ? ORDER BY tag_id`, bookmarkID)
}

// ListBookmarkTagsForTag returns the relation rows of tagID.
func (s *Store) ListBookmarkTagsForTag(ctx context.Context, tagID string) ([]*domain.BookmarkTag, error) {
	return s.selectBookmarkTags(ctx,
		`SELECT `+bookmarkTagColumns+` FROM bookmark_tags WHERE tag_id = ? ORDER BY bookmark_id`, tagID)
}
