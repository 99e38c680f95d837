package sqlite

import (
	"context"

	"github.com/listenupapp/linkstash/internal/domain"
)

const collectionColumns = `id, user_id, name, description, color, icon, parent_id, sort_order, created_at, updated_at`

type collectionRow struct {
	ID          string `db:"id"`
	UserID      string `db:"user_id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	Color       string `db:"color"`
	Icon        string `db:"icon"`
	ParentID    string `db:"parent_id"`
	CreatedAt   string `db:"created_at"`
	UpdatedAt   string `db:"updated_at"`
	Order       int    `db:"sort_order"`
}

func toCollectionRow(c *domain.Collection) *collectionRow {
	return &collectionRow{
		ID:          c.ID,
		UserID:      c.UserID,
		Name:        c.Name,
		Description: c.Description,
		Color:       c.Color,
		Icon:        c.Icon,
		ParentID:    c.ParentID,
		CreatedAt:   formatTime(c.CreatedAt),
		UpdatedAt:   formatTime(c.UpdatedAt),
		Order:       c.Order,
	}
}

func (r *collectionRow) toDomain() (*domain.Collection, error) {
	c := &domain.Collection{
		ID:          r.ID,
		UserID:      r.UserID,
		Name:        r.Name,
		Description: r.Description,
		Color:       r.Color,
		Icon:        r.Icon,
		ParentID:    r.ParentID,
		Order:       r.Order,
	}
	var err error
	if c.CreatedAt, err = parseTime(r.CreatedAt); err != nil {
		return nil, err
	}
	if c.UpdatedAt, err = parseTime(r.UpdatedAt); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Store) selectCollections(ctx context.Context, query string, args ...any) ([]*domain.Collection, error) {
	var rows []collectionRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	out := make([]*domain.Collection, 0, len(rows))
	for i := range rows {
		c, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// CreateCollection inserts a new collection.
func (s *Store) CreateCollection(ctx context.Context, c *domain.Collection) error {
	return s.insert(ctx, `
		INSERT INTO collections (`+collectionColumns+`)
		VALUES (:id, :user_id, :name, :description, :color, :icon, :parent_id, :sort_order, :created_at, :updated_at)`,
		toCollectionRow(c))
}

// GetCollection retrieves a collection by ID.
func (s *Store) GetCollection(ctx context.Context, id string) (*domain.Collection, error) {
	var row collectionRow
	if err := s.getOne(ctx, &row, `SELECT `+collectionColumns+` FROM collections WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return row.toDomain()
}

// UpdateCollection replaces an existing collection.
func (s *Store) UpdateCollection(ctx context.Context, c *domain.Collection) error {
	return s.execOne(ctx, `
		UPDATE collections SET
			user_id = :user_id, name = :name, description = :description, color = :color,
			icon = :icon, parent_id = :parent_id, sort_order = :sort_order,
			created_at = :created_at, updated_at = :updated_at
		WHERE id = :id`, toCollectionRow(c))
}

// DeleteCollection removes a collection.
func (s *Store) DeleteCollection(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM collections WHERE id = ?`, id)
	return err
}

// ListCollections returns every collection of userID, newest first.
func (s *Store) ListCollections(ctx context.Context, userID string) ([]*domain.Collection, error) {
	return s.selectCollections(ctx,
		`SELECT `+collectionColumns+` FROM collections WHERE user_id = ? ORDER BY created_at DESC, id ASC`,
		userID)
}

// ListChildCollections returns the direct children of parentID, newest first.
func (s *Store) ListChildCollections(ctx context.Context, userID, parentID string) ([]*domain.Collection, error) {
	return s.selectCollections(ctx,
		`SELECT `+collectionColumns+` FROM collections WHERE user_id = ? AND parent_id = ? ORDER BY created_at DESC, id ASC`,
		userID, parentID)
}
