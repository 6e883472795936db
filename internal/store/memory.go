package store

import (
	"bytes"
	"context"
	"sort"
	"sync"
)

// MemoryClient is a small in-memory fake of Client, used by internal/ops
// and internal/worker tests instead of a real etcd cluster — the teacher
// library's tests similarly hand-roll a local fake engine (fifoWorkers in
// tests/fifo_local_test_impl.go) rather than depend on a live backend.
// It is not optimized and not meant for production use.
type MemoryClient struct {
	mu       sync.Mutex
	data     map[string]memEntry
	revision int64
}

type memEntry struct {
	value       []byte
	modRevision Revision
}

// NewMemoryClient returns an empty store.
func NewMemoryClient() *MemoryClient {
	return &MemoryClient{data: make(map[string]memEntry)}
}

func (m *MemoryClient) Get(_ context.Context, key []byte) (KeyValue, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.data[string(key)]
	if !ok {
		return KeyValue{}, false, nil
	}
	return KeyValue{Key: append([]byte(nil), key...), Value: append([]byte(nil), e.value...), ModRevision: e.modRevision}, true, nil
}

func (m *MemoryClient) Range(_ context.Context, prefix []byte, limit int, order RangeOrder) ([]KeyValue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matches []KeyValue
	for k, e := range m.data {
		if bytes.HasPrefix([]byte(k), prefix) {
			matches = append(matches, KeyValue{Key: []byte(k), Value: append([]byte(nil), e.value...), ModRevision: e.modRevision})
		}
	}

	switch order {
	case OrderModRevisionAscend:
		sort.Slice(matches, func(i, j int) bool { return matches[i].ModRevision < matches[j].ModRevision })
	default:
		sort.Slice(matches, func(i, j int) bool { return bytes.Compare(matches[i].Key, matches[j].Key) < 0 })
	}

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func (m *MemoryClient) Txn(_ context.Context, compares []Compare, ops []Op) (bool, []OpResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, cmp := range compares {
		e, ok := m.data[string(cmp.Key)]
		if !ok || e.modRevision != cmp.Revision {
			return false, nil, nil
		}
	}

	m.revision++
	newRevision := Revision(m.revision)

	results := make([]OpResult, len(ops))
	for i, op := range ops {
		switch op.Kind {
		case OpPut:
			m.data[string(op.Key)] = memEntry{value: append([]byte(nil), op.Value...), modRevision: newRevision}
		case OpDelete:
			delete(m.data, string(op.Key))
		case OpGet:
			if e, ok := m.data[string(op.Key)]; ok {
				results[i] = OpResult{KVs: []KeyValue{{Key: append([]byte(nil), op.Key...), Value: append([]byte(nil), e.value...), ModRevision: e.modRevision}}}
			}
		}
	}
	return true, results, nil
}
