package domain

import "time"

// TodoStatus is the completion state of a todo item.
type TodoStatus string

// Todo states.
const (
	TodoPending   TodoStatus = "pending"
	TodoCompleted TodoStatus = "completed"
)

// Valid reports whether s is a known todo status.
func (s TodoStatus) Valid() bool {
	return s == TodoPending || s == TodoCompleted
}

// Todo is an item on the user's task list.
type Todo struct {
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      TodoStatus `json:"status"`
}

// OwnedBy reports whether the todo belongs to userID.
func (t *Todo) OwnedBy(userID string) bool {
	return userID != "" && t.UserID == userID
}

// Toggle flips the todo between pending and completed.
func (t *Todo) Toggle(now time.Time) {
	if t.Status == TodoCompleted {
		t.Status = TodoPending
		t.CompletedAt = nil
		return
	}
	t.Status = TodoCompleted
	t.CompletedAt = &now
}
