package ops

import (
	"context"

	"github.com/satoqz/basti/internal/store"
	"github.com/satoqz/basti/internal/task"
)

// Requeue moves a running task back to queued, clearing its assignee and
// reinstating its priority-index row, conditioned on rev still matching
// the running row. The Requeuer activity calls this once a worker misses
// its feedback deadline (spec.md §5); a nil result means the worker
// finished or progressed the task before the requeue could land.
func (o *Ops) Requeue(ctx context.Context, t task.Task, rev store.Revision) (*Result, error) {
	oldKey := t.Key()

	updated := t
	updated.State = task.Queued
	updated.Assignee = ""
	updated.UpdatedAt = now()

	put, err := putTask(updated)
	if err != nil {
		return nil, err
	}

	mutations := []store.Op{
		{Kind: store.OpDelete, Key: oldKey.Encode()},
		put,
		{Kind: store.OpPut, Key: task.PriorityKeyOf(updated).Encode()},
	}
	return o.updateWithRevision(ctx, oldKey, rev, updated, mutations)
}
