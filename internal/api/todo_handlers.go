package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/linkstash/internal/domain"
	"github.com/listenupapp/linkstash/internal/service"
)

func (s *Server) registerTodoRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listTodos",
		Method:      http.MethodGet,
		Path:        "/api/v1/todos",
		Summary:     "List todos",
		Tags:        []string{"Todos"},
		Security:    bearer,
	}, s.handleListTodos)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createTodo",
		Method:        http.MethodPost,
		Path:          "/api/v1/todos",
		Summary:       "Create todo",
		Tags:          []string{"Todos"},
		Security:      bearer,
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateTodo)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateTodo",
		Method:      http.MethodPatch,
		Path:        "/api/v1/todos/{id}",
		Summary:     "Update todo",
		Tags:        []string{"Todos"},
		Security:    bearer,
	}, s.handleUpdateTodo)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteTodo",
		Method:      http.MethodDelete,
		Path:        "/api/v1/todos/{id}",
		Summary:     "Delete todo",
		Tags:        []string{"Todos"},
		Security:    bearer,
	}, s.handleDeleteTodo)

	huma.Register(s.api, huma.Operation{
		OperationID: "toggleTodo",
		Method:      http.MethodPost,
		Path:        "/api/v1/todos/{id}/toggle",
		Summary:     "Toggle todo",
		Description: "Flips a todo between pending and completed",
		Tags:        []string{"Todos"},
		Security:    bearer,
	}, s.handleToggleTodo)
}

// === DTOs ===

// ListTodosInput contains parameters for listing todos.
type ListTodosInput struct {
	Status string `query:"status" enum:"pending,completed" doc:"Only todos in this status"`
}

// ListTodosResponse contains a list of todos.
type ListTodosResponse struct {
	Todos []*domain.Todo `json:"todos" doc:"Todos, newest first"`
}

// ListTodosOutput wraps the list todos response for Huma.
type ListTodosOutput struct {
	Body ListTodosResponse
}

// CreateTodoInput wraps the create todo request for Huma.
type CreateTodoInput struct {
	Body service.CreateTodoRequest
}

// TodoOutput wraps a todo for Huma.
type TodoOutput struct {
	Body *domain.Todo
}

// TodoIDInput identifies a todo.
type TodoIDInput struct {
	ID string `path:"id" doc:"Todo ID"`
}

// UpdateTodoInput wraps the update todo request for Huma.
type UpdateTodoInput struct {
	ID   string `path:"id" doc:"Todo ID"`
	Body service.UpdateTodoRequest
}

// === Handlers ===

func (s *Server) handleListTodos(ctx context.Context, input *ListTodosInput) (*ListTodosOutput, error) {
	todos, err := s.services.Todo.List(ctx, domain.TodoStatus(input.Status))
	if err != nil {
		return nil, err
	}
	return &ListTodosOutput{Body: ListTodosResponse{Todos: todos}}, nil
}

func (s *Server) handleCreateTodo(ctx context.Context, input *CreateTodoInput) (*TodoOutput, error) {
	t, err := s.services.Todo.Create(ctx, input.Body)
	if err != nil {
		return nil, err
	}
	return &TodoOutput{Body: t}, nil
}

func (s *Server) handleUpdateTodo(ctx context.Context, input *UpdateTodoInput) (*TodoOutput, error) {
	t, err := s.services.Todo.Update(ctx, input.ID, input.Body)
	if err != nil {
		return nil, err
	}
	return &TodoOutput{Body: t}, nil
}

func (s *Server) handleDeleteTodo(ctx context.Context, input *TodoIDInput) (*MessageOutput, error) {
	if err := s.services.Todo.Remove(ctx, input.ID); err != nil {
		return nil, err
	}
	return message("Todo deleted"), nil
}

func (s *Server) handleToggleTodo(ctx context.Context, input *TodoIDInput) (*TodoOutput, error) {
	t, err := s.services.Todo.ToggleComplete(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &TodoOutput{Body: t}, nil
}
