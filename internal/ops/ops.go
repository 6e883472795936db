// Package ops implements the transactional protocol of spec.md §4.1: the
// nine operations (Create, List, ListPriorities, FindByID, Acquire,
// Progress, Requeue, Finish, Cancel) that move a task between states
// without losing or duplicating work, built entirely on the narrow
// internal/store.Client contract via mod-revision compare-and-swap.
//
// Propagation policy (spec.md §7): a failed CAS predicate is never an
// error — Acquire, Progress, Requeue, and Finish return a nil *Result (or
// false) to mean "another actor changed this task". Every other failure,
// including an invariant-1 breach observed by FindByID, propagates as an
// error.
package ops

import (
	"context"
	"fmt"
	"time"

	"github.com/satoqz/basti/internal/store"
	"github.com/satoqz/basti/internal/task"
)

// Ops wraps a store.Client with the task lifecycle protocol.
type Ops struct {
	store store.Client
}

// New constructs an Ops against the given store backend.
func New(c store.Client) *Ops {
	return &Ops{store: c}
}

// Result pairs a task with the revision of the row that produced it, the
// shape Acquire, Progress, Requeue, FindByID, and List hand back for the
// caller's next CAS.
type Result struct {
	Task     task.Task
	Revision store.Revision
}

func now() time.Time { return time.Now().UTC() }

// putTask builds the put op for a task row, encoding its value.
func putTask(t task.Task) (store.Op, error) {
	value, err := t.MarshalValue()
	if err != nil {
		return store.Op{}, fmt.Errorf("ops: encode task %s: %w", t.ID, err)
	}
	return store.Op{Kind: store.OpPut, Key: t.Key().Encode(), Value: value}, nil
}

// updateWithRevision runs the common shape shared by Acquire, Progress,
// and Requeue: a single CAS compare against oldKey's revision, an ordered
// list of mutations, and a trailing get of newKey to learn its fresh
// revision. It returns nil if the compare failed.
func (o *Ops) updateWithRevision(
	ctx context.Context, oldKey task.Key, rev store.Revision, newTask task.Task, mutations []store.Op,
) (*Result, error) {
	newKey := newTask.Key()
	mutations = append(mutations, store.Op{Kind: store.OpGet, Key: newKey.Encode()})

	succeeded, results, err := o.store.Txn(ctx,
		[]store.Compare{{Key: oldKey.Encode(), Revision: rev}},
		mutations,
	)
	if err != nil {
		return nil, err
	}
	if !succeeded {
		return nil, nil
	}

	trailing := results[len(results)-1]
	if len(trailing.KVs) == 0 {
		return nil, fmt.Errorf("%w: update of task %s committed but trailing get found no row", store.ErrInconsistent, newTask.ID)
	}

	return &Result{Task: newTask, Revision: trailing.KVs[0].ModRevision}, nil
}

// decodeRow decodes a single stored (key, value) pair into a Task,
// tolerating nothing: callers that can tolerate a Decode error (list
// loops, per spec.md §7) call this and skip on error themselves.
func decodeRow(kv store.KeyValue) (task.Task, error) {
	key, err := task.DecodeKey(kv.Key)
	if err != nil {
		return task.Task{}, err
	}
	return task.DecodeValue(key, kv.Value)
}
