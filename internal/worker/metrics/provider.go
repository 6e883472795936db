// Package metrics is the instrumentation seam the worker pool records
// through. Unlike a general-purpose named-metric registry, this system
// only ever emits the fixed handful of signals named below: counts of
// lifecycle transitions, how many tasks are currently checked out to an
// executor, and how long work actually took. Provider is shaped around
// exactly that set rather than an open-ended "Counter(name string)"
// registry, so there is no instrument-creation path to synchronize and
// no instrument the node doesn't actually record.
package metrics

// Provider vends the worker pool's fixed instrument set. Implementations
// must be safe for concurrent use; Node calls every method from whichever
// activity (executor, finder, requeuer) observes the corresponding event.
type Provider interface {
	// TasksAcquired counts successful Acquire calls (the finder's yield).
	TasksAcquired() Counter
	// TasksFinished counts tasks an executor drove to completion.
	TasksFinished() Counter
	// TasksRequeued counts tasks the requeuer reclaimed from a dead worker.
	TasksRequeued() Counter
	// TasksStolen counts CAS misses an executor observed mid-work or at
	// finish — the task was requeued or cancelled out from under it.
	TasksStolen() Counter
	// TasksInflight tracks how many tasks are currently checked out to an
	// executor on this node.
	TasksInflight() Gauge
	// WorkDuration records the elapsed time of each checkpointed work
	// chunk (at most one feedback interval).
	WorkDuration() DurationStat
	// TaskTotalDuration records a task's full wall-clock time, from
	// creation through Finish.
	TaskTotalDuration() DurationStat
}

// Counter records monotonic counts, e.g. tasks finished.
type Counter interface {
	Add(n int64)
}

// Gauge records a value that moves in both directions, e.g. the number
// of tasks currently checked out to an executor.
type Gauge interface {
	Add(n int64)
}

// DurationStat accumulates a running count/sum/max of a duration measured
// in seconds. This system only ever needs to know how much work happened
// and whether any single chunk ran unusually long, not a bucketed
// distribution, so that's exactly what it tracks.
type DurationStat interface {
	Record(seconds float64)
}
