package ops

import (
	"context"

	"github.com/satoqz/basti/internal/store"
	"github.com/satoqz/basti/internal/task"
)

// Acquire claims a queued task for name: deletes its queued row and
// priority-index row, and inserts it back as running, all conditioned on
// rev still matching the queued row's revision. A nil result means
// another worker (or a requeue) already moved the task out from under
// this CAS.
func (o *Ops) Acquire(ctx context.Context, t task.Task, rev store.Revision, name task.WorkerName) (*Result, error) {
	oldKey := t.Key()

	updated := t
	updated.State = task.Running
	updated.Assignee = name
	updated.UpdatedAt = now()

	put, err := putTask(updated)
	if err != nil {
		return nil, err
	}

	mutations := []store.Op{
		{Kind: store.OpDelete, Key: oldKey.Encode()},
		{Kind: store.OpDelete, Key: task.PriorityKeyOf(t).Encode()},
		put,
	}
	return o.updateWithRevision(ctx, oldKey, rev, updated, mutations)
}
