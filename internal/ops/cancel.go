package ops

import (
	"context"

	"github.com/google/uuid"

	"github.com/satoqz/basti/internal/store"
	"github.com/satoqz/basti/internal/task"
)

// Cancel removes a task regardless of its current state, along with its
// priority-index row if it was still queued. It is idempotent: cancelling
// an id that no longer exists returns a nil task and no error, the same
// shape FindByID reports for "not found", so the HTTP handler can map
// both to 404 without distinguishing them.
//
// The delete is unconditional once the task is located — there is no
// revision for a caller to have raced Cancel against, since cancelling
// has no prior read step in the API surface spec.md §6 exposes.
func (o *Ops) Cancel(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	found, err := o.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, nil
	}

	ops := []store.Op{{Kind: store.OpDelete, Key: found.Task.Key().Encode()}}
	if found.Task.State == task.Queued {
		ops = append(ops, store.Op{Kind: store.OpDelete, Key: task.PriorityKeyOf(found.Task).Encode()})
	}

	if _, _, err := o.store.Txn(ctx, nil, ops); err != nil {
		return nil, err
	}
	return &found.Task, nil
}
