package task

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Task is the full (key, value) tuple described in spec.md §3.
type Task struct {
	ID        uuid.UUID
	State     State
	Duration  time.Duration
	Remaining time.Duration
	CreatedAt time.Time
	UpdatedAt time.Time
	Priority  uint8
	Assignee  WorkerName // set iff State == Running
}

// New creates a fresh queued task with a random UUIDv4 id, per spec.md §3
// lifecycle: "created in queued (by submit)".
func New(duration time.Duration, priority uint8) Task {
	now := time.Now().UTC()
	return Task{
		ID:        uuid.New(),
		State:     Queued,
		Duration:  duration,
		Remaining: duration,
		CreatedAt: now,
		UpdatedAt: now,
		Priority:  priority,
	}
}

// Key returns the task's current (state, id) key.
func (t Task) Key() Key {
	return Key{State: t.State, ID: t.ID}
}

// Validate checks invariants 3 and 4 of spec.md §3 that apply to a single
// task snapshot in isolation (cross-transaction invariants like "at most
// one row per id" are enforced by internal/ops, not here).
func (t Task) Validate() error {
	if t.Remaining < 0 || t.Remaining > t.Duration {
		return fmt.Errorf("%w: remaining %s out of range [0, %s]", ErrDecode, t.Remaining, t.Duration)
	}
	switch t.State {
	case Running:
		if t.Assignee == "" {
			return fmt.Errorf("%w: running task %s has no assignee", ErrDecode, t.ID)
		}
		if err := t.Assignee.Validate(); err != nil {
			return err
		}
	case Queued:
		if t.Assignee != "" {
			return fmt.Errorf("%w: queued task %s has an assignee", ErrDecode, t.ID)
		}
	default:
		return fmt.Errorf("%w: task %s has invalid state %v", ErrDecode, t.ID, t.State)
	}
	return nil
}
