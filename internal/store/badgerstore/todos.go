package badgerstore

import (
	"context"
	"time"

	"github.com/listenupapp/linkstash/internal/domain"
)

func todoCreated(t *domain.Todo) time.Time { return t.CreatedAt }
func todoID(t *domain.Todo) string { return t.ID }

// CreateTodo inserts a new todo.
func (s *Store) CreateTodo(ctx context.Context, t *domain.Todo) error {
	return s.todos.Create(ctx, t.ID, t)
}

// GetTodo retrieves a todo by ID.
func (s *Store) GetTodo(ctx context.Context, id string) (*domain.Todo, error) {
	return s.todos.Get(ctx, id)
}

// UpdateTodo replaces an existing todo.
func (s *Store) UpdateTodo(ctx context.Context, t *domain.Todo) error {
	return s.todos.Update(ctx, t.ID, t)
}

// DeleteTodo removes a todo.
func (s *Store) DeleteTodo(ctx context.Context, id string) error {
	return s.todos.Delete(ctx, id)
}

// ListTodos returns every todo of userID, newest first.
func (s *Store) ListTodos(ctx context.Context, userID string) ([]*domain.Todo, error) {
	out, err := s.todos.ListByIndex(ctx, "user", indexValue(userID))
	if err != nil {
		return nil, err
	}
	newestFirst(out, todoCreated, todoID)
	return out, nil
}
