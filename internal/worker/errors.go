package worker

import (
	"errors"

	"github.com/google/uuid"
)

// TaskError exposes the id of the task an activity failed to advance,
// generalizing the teacher library's TaskMetaError from a slice index to
// the UUID that actually identifies a task in this system.
type TaskError interface {
	error
	Unwrap() error
	TaskID() uuid.UUID
}

type taskTaggedError struct {
	err error
	id  uuid.UUID
}

func taggedError(err error, id uuid.UUID) error {
	if err == nil {
		return nil
	}
	return &taskTaggedError{err: err, id: id}
}

func (e *taskTaggedError) Error() string     { return e.err.Error() }
func (e *taskTaggedError) Unwrap() error     { return e.err }
func (e *taskTaggedError) TaskID() uuid.UUID { return e.id }

// TaskIDFromError extracts the task id tagged onto err, if any.
func TaskIDFromError(err error) (uuid.UUID, bool) {
	var te TaskError
	if errors.As(err, &te) {
		return te.TaskID(), true
	}
	return uuid.Nil, false
}
