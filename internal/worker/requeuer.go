package worker

import (
	"context"
	"time"

	"github.com/satoqz/basti/internal/task"
)

// runRequeuer periodically sweeps running tasks and requeues any whose
// last checkpoint is older than the configured work timeout — the only
// mechanism by which a task recovers from its worker dying mid-work.
// Mirrors worker.rs's requeue_tasks loop.
func (n *Node) runRequeuer(ctx context.Context) {
	for {
		if err := n.requeueStaleTasks(ctx); err != nil {
			n.log.WithError(err).WithField("event", "requeue_sweep_failed").Warn("backing off")
			if !sleepCtx(ctx, n.cfg.BackoffInterval) {
				return
			}
			continue
		}
		if !sleepCtx(ctx, n.cfg.RequeueInterval) {
			return
		}
	}
}

func (n *Node) requeueStaleTasks(ctx context.Context) error {
	running := task.Running
	rows, err := n.ops.List(ctx, &running, n.cfg.RequeueBatchSize)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	for _, r := range rows {
		if now.Sub(r.Task.UpdatedAt) < n.cfg.WorkTimeout {
			continue
		}

		id := r.Task.ID
		result, err := n.ops.Requeue(ctx, r.Task, r.Revision)
		if err != nil {
			return err
		}
		if result == nil {
			n.log.WithField("id", id).WithField("event", "stolen").Info("task checkpointed before requeue")
			continue
		}

		n.cfg.Metrics.TasksRequeued().Add(1)
		n.log.WithField("id", id).WithField("event", "requeued").Info("task requeued")
	}
	return nil
}
