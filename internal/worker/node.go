// Package worker implements the cooperative worker pool of spec.md §5:
// a fixed number of Executors that work acquired tasks, a Finder that
// feeds them from the priority index, and a Requeuer that reclaims tasks
// whose worker went silent. The three activities are wired together by a
// pair of channels with a strict 1:1 demand/supply coupling, the pattern
// grounded on the teacher library's dispatcher — generalized here from a
// generic task/result pipeline to this fixed three-activity protocol.
package worker

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/satoqz/basti/internal/ops"
	"github.com/satoqz/basti/internal/store"
	"github.com/satoqz/basti/internal/task"
)

// workItem is a single unit handed from the finder to an idle executor.
type workItem struct {
	task     task.Task
	revision store.Revision
}

// Node runs the worker pool against a single task store. Construct one
// with New and drive it with Run; Run blocks until ctx is canceled and
// every activity has wound down.
type Node struct {
	cfg Config
	ops *ops.Ops
	log *logrus.Entry
}

// New validates opts and returns a Node ready to Run. WithName is
// mandatory; every other option has a default drawn from spec.md §5.
func New(client store.Client, opts ...Option) (*Node, error) {
	cfg, err := buildConfig(opts...)
	if err != nil {
		return nil, err
	}
	return &Node{
		cfg: cfg,
		ops: ops.New(client),
		log: logrus.WithField("worker", string(cfg.Name)),
	}, nil
}

// Run starts the configured number of executors plus one finder and one
// requeuer, and blocks until ctx is canceled, at which point it waits for
// every activity to stop before returning. It always returns nil; per
// spec.md §7, every activity's own failures are logged and backed off
// from, never escalated to the caller.
func (n *Node) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	work := make(chan workItem, 1)
	workRequest := make(chan struct{}, n.cfg.WorkerCount)

	var executors sync.WaitGroup
	for i := 0; i < n.cfg.WorkerCount; i++ {
		executors.Add(1)
		go func() {
			defer executors.Done()
			n.runExecutor(ctx, work, workRequest)
		}()
	}

	var background sync.WaitGroup
	background.Add(2)
	go func() {
		defer background.Done()
		n.runFinder(ctx, work, workRequest)
	}()
	go func() {
		defer background.Done()
		n.runRequeuer(ctx)
	}()

	coordinator := newShutdownCoordinator(cancel, &executors, &background)
	<-ctx.Done()
	coordinator.Close()
	return nil
}
