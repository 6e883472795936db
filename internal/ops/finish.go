package ops

import (
	"context"

	"github.com/satoqz/basti/internal/store"
	"github.com/satoqz/basti/internal/task"
)

// Finish removes a completed running task outright: no further state to
// move to. finished is false if rev no longer matches — the task was
// requeued out from under the worker, most likely by the Requeuer after
// a missed feedback deadline, and the worker's completed result must be
// discarded rather than trusted (spec.md §5).
func (o *Ops) Finish(ctx context.Context, key task.Key, rev store.Revision) (finished bool, err error) {
	finished, _, err = o.store.Txn(ctx,
		[]store.Compare{{Key: key.Encode(), Revision: rev}},
		[]store.Op{{Kind: store.OpDelete, Key: key.Encode()}},
	)
	return finished, err
}
