// Package store defines the narrow KV store contract internal/ops builds
// its transactional protocol on (spec.md §4.1, §6 "KV store contract
// (consumed)"), and an etcd-backed implementation of it. The contract is
// deliberately small: single-key get, prefix range scan, and a compound
// transaction of mod-revision compares plus ordered put/delete/get
// mutations — exactly what spec.md requires and nothing the rest of the
// system doesn't use.
package store

import "context"

// Revision is the opaque, monotonically increasing integer etcd assigns
// to a key on every mutation. Callers never interpret it beyond equality
// comparison in a Compare.
type Revision int64

// KeyValue is a single row read from the store.
type KeyValue struct {
	Key         []byte
	Value       []byte
	ModRevision Revision
}

// RangeOrder selects the ordering of a prefix scan's results.
type RangeOrder int

const (
	// OrderKeyAscend orders results by key, ascending. Used for the
	// priority-index scan, where key order is priority/id order.
	OrderKeyAscend RangeOrder = iota
	// OrderModRevisionAscend orders results by mod_revision, ascending.
	OrderModRevisionAscend
)

// Compare is a single mod-revision CAS predicate: "the key's current
// mod_revision equals Revision". spec.md §4.1 does not need any other
// compare kind (no value compares, no version compares), so this is the
// only one the contract exposes.
type Compare struct {
	Key      []byte
	Revision Revision
}

// OpKind identifies a mutation kind within a Txn.
type OpKind int

const (
	OpPut OpKind = iota
	OpDelete
	OpGet
)

// Op is a single ordered mutation (or read) inside a transaction.
type Op struct {
	Kind  OpKind
	Key   []byte
	Value []byte
}

// OpResult is the outcome of a single Op within a committed transaction.
// KVs is populated for OpGet (and is empty, not nil-checked, for put and
// delete — callers only inspect it for the gets they issued).
type OpResult struct {
	KVs []KeyValue
}

// Client is the KV store contract consumed by internal/ops. Every method
// takes a context so network I/O to the store remains a suspension point,
// never blocking call (spec.md §5).
type Client interface {
	// Get reads a single key. The second return value is false if the key
	// does not exist.
	Get(ctx context.Context, key []byte) (KeyValue, bool, error)

	// Range performs a prefix scan, returning at most limit rows ordered
	// per order.
	Range(ctx context.Context, prefix []byte, limit int, order RangeOrder) ([]KeyValue, error)

	// Txn executes compares and, only if every compare holds, ops
	// atomically. succeeded is false (and ops not applied) if any compare
	// failed; results has one entry per op, in order, when succeeded.
	Txn(ctx context.Context, compares []Compare, ops []Op) (succeeded bool, results []OpResult, err error)
}
