package sqlite

import (
	"context"
	"database/sql"

	"github.com/listenupapp/linkstash/internal/domain"
)

const todoColumns = `id, user_id, title, description, status, completed_at, created_at`

type todoRow struct {
	CompletedAt sql.NullString `db:"completed_at"`
	ID          string         `db:"id"`
	UserID      string         `db:"user_id"`
	Title       string         `db:"title"`
	Description string         `db:"description"`
	Status      string         `db:"status"`
	CreatedAt   string         `db:"created_at"`
}

func toTodoRow(t *domain.Todo) *todoRow {
	return &todoRow{
		CompletedAt: formatNullableTime(t.CompletedAt),
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		CreatedAt:   formatTime(t.CreatedAt),
	}
}

func (r *todoRow) toDomain() (*domain.Todo, error) {
	t := &domain.Todo{
		ID:          r.ID,
		UserID:      r.UserID,
		Title:       r.Title,
		Description: r.Description,
		Status:      domain.TodoStatus(r.Status),
	}
	var err error
	if t.CreatedAt, err = parseTime(r.CreatedAt); err != nil {
		return nil, err
	}
	if t.CompletedAt, err = parseNullableTime(r.CompletedAt); err != nil {
		return nil, err
	}
	return t, nil
}

// CreateTodo inserts a new todo.
func (s *Store) CreateTodo(ctx context.Context, t *domain.Todo) error {
	return s.insert(ctx, `
		INSERT INTO todos (`+todoColumns+`)
		VALUES (:id, :user_id, :title, :description, :status, :completed_at, :created_at)`,
		toTodoRow(t))
}

// GetTodo retrieves a todo by ID.
func (s *Store) GetTodo(ctx context.Context, id string) (*domain.Todo, error) {
	var row todoRow
	if err := s.getOne(ctx, &row, `SELECT `+todoColumns+` FROM todos WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return row.toDomain()
}

// UpdateTodo replaces an existing todo.
func (s *Store) UpdateTodo(ctx context.Context, t *domain.Todo) error {
	return s.execOne(ctx, `
		UPDATE todos SET
			user_id = :user_id, title = :title, description = :description,
			status = :status, completed_at = :completed_at, created_at = :created_at
		WHERE id = :id`, toTodoRow(t))
}

// DeleteTodo removes a todo.
func (s *Store) DeleteTodo(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	return err
}

// ListTodos returns every todo of userID, newest first.
func (s *Store) ListTodos(ctx context.Context, userID string) ([]*domain.Todo, error) {
	var rows []todoRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT `+todoColumns+` FROM todos WHERE user_id = ? ORDER BY created_at DESC, id ASC`, userID)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Todo, 0, len(rows))
	for i := range rows {
		t, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
