package worker

import (
	"context"

	"github.com/satoqz/basti/internal/task"
)

// runFinder is the sole producer onto work: it waits for executor demand,
// then repeatedly walks the priority index trying to acquire the
// highest-priority queued task, handing the first one it wins to
// whichever executor is waiting. Mirrors worker.rs's find_work loop.
func (n *Node) runFinder(ctx context.Context, work chan<- workItem, workRequest <-chan struct{}) {
	select {
	case <-ctx.Done():
		return
	case <-workRequest:
	}

	for {
		if ctx.Err() != nil {
			return
		}

		item, err := n.findWork(ctx)
		switch {
		case err != nil:
			n.log.WithError(err).WithField("event", "find_failed").Warn("backing off")
			if !sleepCtx(ctx, n.cfg.BackoffInterval) {
				return
			}
		case item == nil:
			if !sleepCtx(ctx, n.cfg.FindInterval) {
				return
			}
		default:
			select {
			case <-ctx.Done():
				return
			case work <- *item:
			}
			select {
			case <-ctx.Done():
				return
			case <-workRequest:
			}
		}
	}
}

// findWork walks the priority index in priority order, trying to acquire
// the first still-queued task it finds. A row stolen between the list
// and the acquire is skipped, not retried — the next priority entry (or
// the next findWork call) gets a turn instead.
func (n *Node) findWork(ctx context.Context) (*workItem, error) {
	priorities, err := n.ops.ListPriorities(ctx, n.cfg.FindBatchSize)
	if err != nil {
		return nil, err
	}

	for _, p := range priorities {
		found, err := n.ops.FindByID(ctx, p.ID, task.Queued)
		if err != nil {
			return nil, err
		}
		if found == nil {
			continue
		}

		acquired, err := n.ops.Acquire(ctx, found.Task, found.Revision, n.cfg.Name)
		if err != nil {
			return nil, err
		}
		if acquired == nil {
			n.log.WithField("id", p.ID).WithField("event", "stolen").Info("task stolen before acquire")
			continue
		}

		n.cfg.Metrics.TasksAcquired().Add(1)
		n.log.WithField("id", acquired.Task.ID).WithField("event", "acquired").Info("task acquired")
		return &workItem{task: acquired.Task, revision: acquired.Revision}, nil
	}

	return nil, nil
}
