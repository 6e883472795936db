package api

import (
	"time"

	"github.com/satoqz/basti/internal/task"
)

// TaskDTO is the wire shape of a task: the flat union of its key fields
// (state, id) and value fields, per spec.md §6. duration and remaining
// are encoded as integer milliseconds — chosen over the seconds/nanos
// object alternative spec.md allows because pkg/client, the only other
// consumer of this encoding, is built against the same choice.
type TaskDTO struct {
	ID        string    `json:"id"`
	State     string    `json:"state"`
	Duration  int64     `json:"duration"`
	Remaining int64     `json:"remaining"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Priority  uint8     `json:"priority"`
	Assignee  string    `json:"assignee,omitempty"`
}

func taskToDTO(t task.Task) TaskDTO {
	return TaskDTO{
		ID:        t.ID.String(),
		State:     t.State.String(),
		Duration:  t.Duration.Milliseconds(),
		Remaining: t.Remaining.Milliseconds(),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
		Priority:  t.Priority,
		Assignee:  string(t.Assignee),
	}
}

// CreateTaskRequest is the POST /api/tasks request body.
type CreateTaskRequest struct {
	Duration int64 `json:"duration"`
	Priority uint8 `json:"priority"`
}
