package ops

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/satoqz/basti/internal/store"
	"github.com/satoqz/basti/internal/task"
)

// FindByID looks a task up by id, trying each of states in turn (both
// queued and running if states is empty) inside a single transaction so
// the read is a consistent snapshot. A nil result with no error means no
// row was found in any of the tried states. Finding the id present under
// more than one state is invariant 1 of spec.md §3 broken, and is
// reported as store.ErrInconsistent rather than silently picking one.
func (o *Ops) FindByID(ctx context.Context, id uuid.UUID, states ...task.State) (*Result, error) {
	if len(states) == 0 {
		states = []task.State{task.Queued, task.Running}
	}

	keys := make([]task.Key, len(states))
	gets := make([]store.Op, len(states))
	for i, s := range states {
		keys[i] = task.Key{State: s, ID: id}
		gets[i] = store.Op{Kind: store.OpGet, Key: keys[i].Encode()}
	}

	_, results, err := o.store.Txn(ctx, nil, gets)
	if err != nil {
		return nil, err
	}

	var found *Result
	for _, r := range results {
		if len(r.KVs) == 0 {
			continue
		}
		if found != nil {
			return nil, fmt.Errorf("%w: task %s present under more than one state", store.ErrInconsistent, id)
		}
		t, err := decodeRow(r.KVs[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", task.ErrDecode, err)
		}
		found = &Result{Task: t, Revision: r.KVs[0].ModRevision}
	}
	return found, nil
}
