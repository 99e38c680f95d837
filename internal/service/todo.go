package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/listenupapp/linkstash/internal/domain"
	domainerrors "github.com/listenupapp/linkstash/internal/errors"
	"github.com/listenupapp/linkstash/internal/id"
	"github.com/listenupapp/linkstash/internal/normalize"
	"github.com/listenupapp/linkstash/internal/store"
	"github.com/listenupapp/linkstash/internal/validation"
)

// CreateTodoRequest holds the fields accepted when creating a todo.
type CreateTodoRequest struct {
	Title       string `json:"title" validate:"required,max=500"`
	Description string `json:"description,omitempty" validate:"max=5000"`
}

// UpdateTodoRequest is a patch: nil fields are kept, an empty description clears.
type UpdateTodoRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1,max=500"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=5000"`
}

// TodoService manages the caller's todo list.
type TodoService struct {
	store     store.TodoStore
	validator *validation.Validator
	logger    *slog.Logger
}

// NewTodoService creates a new todo service.
func NewTodoService(store store.TodoStore, validator *validation.Validator, logger *slog.Logger) *TodoService {
	return &TodoService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// List returns the caller's todos, newest first. A non-empty status keeps
// only todos in that status.
func (s *TodoService) List(ctx context.Context, status domain.TodoStatus) ([]*domain.Todo, error) {
	if status != "" && !status.Valid() {
		return nil, domainerrors.Validationf("unknown todo status %q", status)
	}

	userID, err := requireSubject(ctx)
	if err != nil {
		return []*domain.Todo{}, nil
	}

	all, err := s.store.ListTodos(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}

	out := make([]*domain.Todo, 0, len(all))
	for _, t := range all {
		if status == "" || t.Status == status {
			out = append(out, t)
		}
	}
	return out, nil
}

// Create adds a pending todo.
func (s *TodoService) Create(ctx context.Context, req CreateTodoRequest) (*domain.Todo, error) {
	userID, err := requireSubject(ctx)
	if err != nil {
		return nil, err
	}

	req.Title = normalize.Text(req.Title)
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	todoID, err := id.Generate(id.Todo)
	if err != nil {
		return nil, fmt.Errorf("generate todo ID: %w", err)
	}

	t := &domain.Todo{
		CreatedAt:   time.Now(),
		ID:          todoID,
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TodoPending,
	}
	if err := s.store.CreateTodo(ctx, t); err != nil {
		return nil, translate(err, "create todo")
	}

	s.logger.Debug("todo created", "todo_id", t.ID, "user_id", userID)
	return t, nil
}

// ToggleComplete flips a todo between pending and completed.
func (s *TodoService) ToggleComplete(ctx context.Context, todoID string) (*domain.Todo, error) {
	userID, err := requireSubject(ctx)
	if err != nil {
		return nil, err
	}

	t, err := loadOwned(ctx, userID, "todo", todoID, s.store.GetTodo)
	if err != nil {
		return nil, err
	}

	t.Toggle(time.Now())
	if err := s.store.UpdateTodo(ctx, t); err != nil {
		return nil, translate(err, "toggle todo")
	}
	return t, nil
}

// Update patches a todo's title and description.
func (s *TodoService) Update(ctx context.Context, todoID string, req UpdateTodoRequest) (*domain.Todo, error) {
	userID, err := requireSubject(ctx)
	if err != nil {
		return nil, err
	}
	if req.Title != nil {
		title := normalize.Text(*req.Title)
		req.Title = &title
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	t, err := loadOwned(ctx, userID, "todo", todoID, s.store.GetTodo)
	if err != nil {
		return nil, err
	}

	patch(&t.Title, req.Title)
	patch(&t.Description, req.Description)

	if err := s.store.UpdateTodo(ctx, t); err != nil {
		return nil, translate(err, "update todo")
	}
	return t, nil
}

// Remove deletes a todo.
func (s *TodoService) Remove(ctx context.Context, todoID string) error {
	userID, err := requireSubject(ctx)
	if err != nil {
		return err
	}

	t, err := loadOwned(ctx, userID, "todo", todoID, s.store.GetTodo)
	if err != nil {
		return err
	}

	if err := s.store.DeleteTodo(ctx, t.ID); err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	return nil
}
