package ws

import "taskdeck/internal/domain"

const (
	EventTaskCreated    = "task_created"
	EventTaskUpdated    = "task_updated"
	EventTaskDeleted    = "task_deleted"
	EventProjectCreated = "project_created"
	EventProjectUpdated = "project_updated"
	EventProjectDeleted = "project_deleted"
)

// Event is a change notification pushed to a user's open connections.
// Deletions carry only the record id.
type Event struct {
	Type    string          `json:"type"`
	ID      int64           `json:"id,omitempty"`
	Task    *domain.Task    `json:"task,omitempty"`
	Project *domain.Project `json:"project,omitempty"`
}
