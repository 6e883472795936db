package task

import (
	"fmt"

	"github.com/google/uuid"
)

// Key prefixes, spec.md §3 / §6 "Persisted key layout". These are single
// bytes, not strings: lexicographic byte order must equal the intended
// scan order, and a leading string like "task_" would still sort
// correctly but waste bytes on every single key — this is the hot path.
const (
	taskKeyTag     byte = 't'
	priorityKeyTag byte = 'p'
)

// Key is the (state, id) address of a task row: ['t', state, id(16)].
type Key struct {
	State State
	ID    uuid.UUID
}

// Encode renders the key as the raw bytes stored in the KV backend.
func (k Key) Encode() []byte {
	buf := make([]byte, 0, 2+16)
	buf = append(buf, taskKeyTag, byte(k.State))
	buf = append(buf, k.ID[:]...)
	return buf
}

// TaskPrefix is the scan prefix matching every task row, any state.
func TaskPrefix() []byte {
	return []byte{taskKeyTag}
}

// TaskStatePrefix is the scan prefix matching task rows in a single state.
func TaskStatePrefix(s State) []byte {
	return []byte{taskKeyTag, byte(s)}
}

// DecodeKey parses a raw key back into its (state, id) components. It
// fails cleanly (no panic) on anything that isn't a well-formed task key.
func DecodeKey(raw []byte) (Key, error) {
	if len(raw) != 2+16 {
		return Key{}, fmt.Errorf("%w: task key has length %d, want %d", ErrDecode, len(raw), 2+16)
	}
	if raw[0] != taskKeyTag {
		return Key{}, fmt.Errorf("%w: task key has tag %#02x, want %#02x", ErrDecode, raw[0], taskKeyTag)
	}
	state := State(raw[1])
	if !state.Valid() {
		return Key{}, fmt.Errorf("%w: task key has invalid state byte %#02x", ErrDecode, raw[1])
	}
	id, err := uuid.FromBytes(raw[2:])
	if err != nil {
		return Key{}, fmt.Errorf("%w: task key has invalid uuid: %v", ErrDecode, err)
	}
	return Key{State: state, ID: id}, nil
}

// PriorityKey is the secondary index key ['p', priority, id(16)], present
// iff a task row exists for id with State == Queued.
type PriorityKey struct {
	Priority uint8
	ID       uuid.UUID
}

// Encode renders the priority key as raw bytes.
func (k PriorityKey) Encode() []byte {
	buf := make([]byte, 0, 2+16)
	buf = append(buf, priorityKeyTag, k.Priority)
	buf = append(buf, k.ID[:]...)
	return buf
}

// PriorityPrefix is the scan prefix matching every priority-index entry,
// ordered ascending by (priority, id) under plain lexicographic iteration.
func PriorityPrefix() []byte {
	return []byte{priorityKeyTag}
}

// DecodePriorityKey parses a raw priority-index key.
func DecodePriorityKey(raw []byte) (PriorityKey, error) {
	if len(raw) != 2+16 {
		return PriorityKey{}, fmt.Errorf("%w: priority key has length %d, want %d", ErrDecode, len(raw), 2+16)
	}
	if raw[0] != priorityKeyTag {
		return PriorityKey{}, fmt.Errorf("%w: priority key has tag %#02x, want %#02x", ErrDecode, raw[0], priorityKeyTag)
	}
	id, err := uuid.FromBytes(raw[2:])
	if err != nil {
		return PriorityKey{}, fmt.Errorf("%w: priority key has invalid uuid: %v", ErrDecode, err)
	}
	return PriorityKey{Priority: raw[1], ID: id}, nil
}

// PriorityKeyOf derives the priority-index key for a queued task.
func PriorityKeyOf(t Task) PriorityKey {
	return PriorityKey{Priority: t.Priority, ID: t.ID}
}

// Pointer is a lightweight (state, id) reference to a task, addressing a
// row without carrying its full value. No operation in internal/ops
// returns it: a priority-index scan yields PriorityKey values.
type Pointer struct {
	ID    uuid.UUID
	State State
}
