package ops

import (
	"context"
	"time"

	"github.com/satoqz/basti/internal/store"
	"github.com/satoqz/basti/internal/task"
)

// Create inserts a new queued task and its priority-index row in a single
// transaction. There is nothing to compare against — a fresh UUIDv4 never
// collides in practice — so Create never reports a CAS miss.
func (o *Ops) Create(ctx context.Context, duration time.Duration, priority uint8) (task.Task, error) {
	t := task.New(duration, priority)

	taskPut, err := putTask(t)
	if err != nil {
		return task.Task{}, err
	}
	priorityPut := store.Op{Kind: store.OpPut, Key: task.PriorityKeyOf(t).Encode()}

	// No compares: an unconditional Txn cannot report a CAS miss.
	if _, _, err := o.store.Txn(ctx, nil, []store.Op{taskPut, priorityPut}); err != nil {
		return task.Task{}, err
	}
	return t, nil
}
