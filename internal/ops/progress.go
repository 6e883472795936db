package ops

import (
	"context"
	"time"

	"github.com/satoqz/basti/internal/store"
	"github.com/satoqz/basti/internal/task"
)

// Progress checkpoints the work done since the task's last known
// revision, shrinking Remaining by delta and bumping UpdatedAt. The
// task's key (state, id) never changes here, so Remaining can't cross a
// state boundary — reaching zero is Finish's job, not Progress's. A nil
// result means rev is stale: the task was requeued, finished, or
// cancelled since the caller last observed it.
func (o *Ops) Progress(ctx context.Context, t task.Task, rev store.Revision, delta time.Duration) (*Result, error) {
	key := t.Key()

	updated := t
	updated.Remaining -= delta
	if updated.Remaining < 0 {
		updated.Remaining = 0
	}
	updated.UpdatedAt = now()

	put, err := putTask(updated)
	if err != nil {
		return nil, err
	}

	return o.updateWithRevision(ctx, key, rev, updated, []store.Op{put})
}
