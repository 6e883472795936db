package worker

import (
	"context"
	"time"

	"github.com/satoqz/basti/internal/store"
	"github.com/satoqz/basti/internal/task"
)

// runExecutor is one executor activity: repeatedly announce readiness on
// workRequest, wait for the finder to hand over a task on work, then work
// it to completion or until it's stolen out from under it. Mirrors
// worker.rs's per-worker loop: request, receive, work, backoff on error,
// repeat.
func (n *Node) runExecutor(ctx context.Context, work <-chan workItem, workRequest chan<- struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case workRequest <- struct{}{}:
		}

		select {
		case <-ctx.Done():
			return
		case item := <-work:
			if err := n.workOnTask(ctx, item.task, item.revision); err != nil {
				n.log.WithError(err).WithField("event", "work_failed").Warn("backing off")
				if !sleepCtx(ctx, n.cfg.BackoffInterval) {
					return
				}
			}
		}
	}
}

// workOnTask drives a single acquired task to completion, checkpointing
// progress every feedback interval so the requeuer never mistakes live
// work for a dead worker (spec.md §5's liveness contract).
func (n *Node) workOnTask(ctx context.Context, t task.Task, rev store.Revision) error {
	id := t.ID
	inflight := n.cfg.Metrics.TasksInflight()
	inflight.Add(1)
	defer inflight.Add(-1)

	for t.Remaining > 0 {
		workDuration := n.cfg.FeedbackInterval
		if t.Remaining < workDuration {
			workDuration = t.Remaining
		}

		n.log.WithField("id", id).WithField("event", "working").
			WithField("amount", workDuration).Info("working task")

		if !sleepCtx(ctx, workDuration) {
			return nil
		}

		result, err := n.ops.Progress(ctx, t, rev, workDuration)
		if err != nil {
			return taggedError(err, id)
		}
		if result == nil {
			n.cfg.Metrics.TasksStolen().Add(1)
			n.log.WithField("id", id).WithField("event", "stolen").Warn("task stolen mid-work")
			return nil
		}
		n.cfg.Metrics.WorkDuration().Record(workDuration.Seconds())
		t, rev = result.Task, result.Revision
	}

	finished, err := n.ops.Finish(ctx, t.Key(), rev)
	if err != nil {
		return taggedError(err, id)
	}
	if !finished {
		n.cfg.Metrics.TasksStolen().Add(1)
		n.log.WithField("id", id).WithField("event", "stolen").Warn("task stolen before finish")
		return nil
	}

	n.cfg.Metrics.TasksFinished().Add(1)
	n.cfg.Metrics.TaskTotalDuration().Record(time.Since(t.CreatedAt).Seconds())
	n.log.WithField("id", id).WithField("event", "finished").Info("task finished")
	return nil
}

// sleepCtx sleeps for d or until ctx is canceled, whichever comes first.
// It returns false if ctx was canceled first, so callers can bail out of
// their loop instead of proceeding as if the sleep completed normally.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
