package task

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// value is the wire shape of a task's value, independent of its key.
// msgpack encodes it as a self-describing map keyed by these field names,
// per spec.md §3: "a tagged object with field names; any codec that
// round-trips faithfully is acceptable."
type value struct {
	DurationNanos  int64     `msgpack:"duration"`
	RemainingNanos int64     `msgpack:"remaining"`
	CreatedAt      time.Time `msgpack:"created_at"`
	UpdatedAt      time.Time `msgpack:"updated_at"`
	Priority       uint8     `msgpack:"priority"`
	Assignee       string    `msgpack:"assignee,omitempty"`
}

// encoderPool recycles the bytes.Buffer backing each msgpack encode, the
// same one-liner idiom the teacher library uses for its worker pool
// (pool.NewDynamic wraps sync.Pool), adapted here to the hottest
// allocation path in the system: one value encode per checkpointed
// progress write, i.e. every feedback_interval for every running task.
var encoderPool = sync.Pool{
	New: func() interface{} { return new(bytes.Buffer) },
}

// MarshalValue encodes the task's value fields (not its key) for storage.
func (t Task) MarshalValue() ([]byte, error) {
	buf := encoderPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer encoderPool.Put(buf)

	enc := msgpack.NewEncoder(buf)
	if err := enc.Encode(value{
		DurationNanos:  int64(t.Duration),
		RemainingNanos: int64(t.Remaining),
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
		Priority:       t.Priority,
		Assignee:       string(t.Assignee),
	}); err != nil {
		return nil, fmt.Errorf("task: encode value: %w", err)
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}

// DecodeValue parses a task's value bytes and merges them onto the (state,
// id) components carried by key, producing the full Task. The result is
// validated before it's returned: a row that unmarshals cleanly but
// violates invariant 3 or 4 of spec.md §3 (state/assignee mismatch,
// remaining out of range) is exactly the kind of corrupted value bytes
// spec.md §7's Decode error kind covers, and must not reach a caller as a
// silently-wrong Task.
func DecodeValue(key Key, raw []byte) (Task, error) {
	var v value
	if err := msgpack.Unmarshal(raw, &v); err != nil {
		return Task{}, fmt.Errorf("%w: task value: %v", ErrDecode, err)
	}
	t := Task{
		ID:        key.ID,
		State:     key.State,
		Duration:  time.Duration(v.DurationNanos),
		Remaining: time.Duration(v.RemainingNanos),
		CreatedAt: v.CreatedAt.UTC(),
		UpdatedAt: v.UpdatedAt.UTC(),
		Priority:  v.Priority,
		Assignee:  WorkerName(v.Assignee),
	}
	if err := t.Validate(); err != nil {
		return Task{}, err
	}
	return t, nil
}
