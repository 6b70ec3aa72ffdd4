package domain

import "time"

// Note is a free-form text entity, independent of tasks and columns.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Notification is a transient user-facing message. Notifications are capped,
// excluded from undo history and never persisted.
type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	TaskID    string    `json:"taskId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
