package metrics

import "sync/atomic"

// BasicProvider is a concurrency-safe, in-process Provider. Every
// instrument is a fixed field, constructed once at NewBasicProvider time
// rather than lazily on first use by name — the instrument set is known
// at compile time (see the Provider method set), so there is nothing to
// create on demand and nothing to synchronize a map against. Suitable
// for a single daemon process; it does not export anywhere.
type BasicProvider struct {
	tasksAcquired     atomicCounter
	tasksFinished     atomicCounter
	tasksRequeued     atomicCounter
	tasksStolen       atomicCounter
	tasksInflight     atomicCounter
	workDuration      durationStat
	taskTotalDuration durationStat
}

// NewBasicProvider constructs a BasicProvider with every instrument at
// its zero value.
func NewBasicProvider() *BasicProvider {
	return &BasicProvider{}
}

func (p *BasicProvider) TasksAcquired() Counter          { return &p.tasksAcquired }
func (p *BasicProvider) TasksFinished() Counter          { return &p.tasksFinished }
func (p *BasicProvider) TasksRequeued() Counter          { return &p.tasksRequeued }
func (p *BasicProvider) TasksStolen() Counter            { return &p.tasksStolen }
func (p *BasicProvider) TasksInflight() Gauge            { return &p.tasksInflight }
func (p *BasicProvider) WorkDuration() DurationStat      { return &p.workDuration }
func (p *BasicProvider) TaskTotalDuration() DurationStat { return &p.taskTotalDuration }

// atomicCounter backs both Counter and Gauge: the two interfaces have the
// identical single-method shape (Add(n int64)) and differ only in
// whether callers expect the value to move down as well as up, so one
// concrete type serves both rather than two structurally identical ones.
type atomicCounter struct {
	val atomic.Int64
}

func (c *atomicCounter) Add(n int64) { c.val.Add(n) }

// Snapshot returns the counter's current value.
func (c *atomicCounter) Snapshot() int64 { return c.val.Load() }

// durationStat tracks how many durations were recorded, their total, and
// the largest single one — enough to derive a mean and spot an unusually
// long work chunk or task, without the bucketing or min-tracking a
// general-purpose histogram would carry and this system never queries.
type durationStat struct {
	count atomic.Int64
	nanos atomic.Int64 // sum, stored as fixed-point nanoseconds
	max   atomic.Int64 // largest single Record, in nanoseconds
}

func (d *durationStat) Record(seconds float64) {
	n := int64(seconds * float64(1e9))
	d.count.Add(1)
	d.nanos.Add(n)
	for {
		cur := d.max.Load()
		if n <= cur {
			return
		}
		if d.max.CompareAndSwap(cur, n) {
			return
		}
	}
}

// DurationSnapshot is an immutable snapshot of a durationStat.
type DurationSnapshot struct {
	Count int64
	Sum   float64
	Max   float64
	Mean  float64
}

// Snapshot returns the stat's state at the time of call, in seconds.
func (d *durationStat) Snapshot() DurationSnapshot {
	count := d.count.Load()
	sum := float64(d.nanos.Load()) / 1e9
	max := float64(d.max.Load()) / 1e9

	var mean float64
	if count > 0 {
		mean = sum / float64(count)
	}
	return DurationSnapshot{Count: count, Sum: sum, Max: max, Mean: mean}
}
