package ops

import (
	"context"

	"github.com/satoqz/basti/internal/store"
	"github.com/satoqz/basti/internal/task"
)

// List scans the task rows, optionally restricted to a single state, in
// key order (state, then id). A row that fails to decode is skipped
// rather than failing the whole scan (spec.md §7: "skip the offender in
// list loops to preserve progress").
func (o *Ops) List(ctx context.Context, state *task.State, limit int) ([]Result, error) {
	prefix := task.TaskPrefix()
	if state != nil {
		prefix = task.TaskStatePrefix(*state)
	}

	kvs, err := o.store.Range(ctx, prefix, limit, store.OrderKeyAscend)
	if err != nil {
		return nil, err
	}

	out := make([]Result, 0, len(kvs))
	for _, kv := range kvs {
		t, err := decodeRow(kv)
		if err != nil {
			continue
		}
		out = append(out, Result{Task: t, Revision: kv.ModRevision})
	}
	return out, nil
}

// ListPriorities scans the priority index in (priority, id) order,
// returning priority-index keys rather than full task rows — callers follow up with
// FindByID for whichever entry they act on, the same split the worker
// pool's Finder activity relies on.
func (o *Ops) ListPriorities(ctx context.Context, limit int) ([]task.PriorityKey, error) {
	kvs, err := o.store.Range(ctx, task.PriorityPrefix(), limit, store.OrderKeyAscend)
	if err != nil {
		return nil, err
	}

	out := make([]task.PriorityKey, 0, len(kvs))
	for _, kv := range kvs {
		pk, err := task.DecodePriorityKey(kv.Key)
		if err != nil {
			continue
		}
		out = append(out, pk)
	}
	return out, nil
}
