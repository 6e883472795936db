package store

import (
	"context"

	clientv3 "go.etcd.io/etcd/client/v3"
)

// EtcdClient implements Client against a real etcd cluster. Grounded on
// the retrieved gazette v3_allocator and hexfusion/dplearn etcdqueue
// packages, both of which drive clientv3 transactions with mod-revision
// compares the same way spec.md §4.1 specifies.
type EtcdClient struct {
	kv clientv3.KV
}

// NewEtcdClient wraps an already-connected etcd client. Connection
// lifecycle (dialing, TLS, endpoint lists) is the caller's concern —
// cmd/basti-daemon owns it.
func NewEtcdClient(cli *clientv3.Client) *EtcdClient {
	return &EtcdClient{kv: cli}
}

func (c *EtcdClient) Get(ctx context.Context, key []byte) (KeyValue, bool, error) {
	resp, err := c.kv.Get(ctx, string(key))
	if err != nil {
		return KeyValue{}, false, wrap("get", err)
	}
	if len(resp.Kvs) == 0 {
		return KeyValue{}, false, nil
	}
	kv := resp.Kvs[0]
	return KeyValue{Key: kv.Key, Value: kv.Value, ModRevision: Revision(kv.ModRevision)}, true, nil
}

func (c *EtcdClient) Range(ctx context.Context, prefix []byte, limit int, order RangeOrder) ([]KeyValue, error) {
	opts := []clientv3.OpOption{clientv3.WithPrefix(), clientv3.WithLimit(int64(limit))}
	switch order {
	case OrderModRevisionAscend:
		opts = append(opts, clientv3.WithSort(clientv3.SortByModRevision, clientv3.SortAscend))
	default:
		opts = append(opts, clientv3.WithSort(clientv3.SortByKey, clientv3.SortAscend))
	}

	resp, err := c.kv.Get(ctx, string(prefix), opts...)
	if err != nil {
		return nil, wrap("range", err)
	}

	out := make([]KeyValue, 0, len(resp.Kvs))
	for _, kv := range resp.Kvs {
		out = append(out, KeyValue{Key: kv.Key, Value: kv.Value, ModRevision: Revision(kv.ModRevision)})
	}
	return out, nil
}

func (c *EtcdClient) Txn(ctx context.Context, compares []Compare, ops []Op) (bool, []OpResult, error) {
	cmps := make([]clientv3.Cmp, 0, len(compares))
	for _, cmp := range compares {
		cmps = append(cmps, clientv3.Compare(clientv3.ModRevision(string(cmp.Key)), "=", int64(cmp.Revision)))
	}

	etcdOps := make([]clientv3.Op, 0, len(ops))
	for _, op := range ops {
		switch op.Kind {
		case OpPut:
			etcdOps = append(etcdOps, clientv3.OpPut(string(op.Key), string(op.Value)))
		case OpDelete:
			etcdOps = append(etcdOps, clientv3.OpDelete(string(op.Key)))
		case OpGet:
			etcdOps = append(etcdOps, clientv3.OpGet(string(op.Key)))
		}
	}

	resp, err := c.kv.Txn(ctx).If(cmps...).Then(etcdOps...).Commit()
	if err != nil {
		return false, nil, wrap("txn", err)
	}
	if !resp.Succeeded {
		return false, nil, nil
	}

	results := make([]OpResult, len(resp.Responses))
	for i, r := range resp.Responses {
		if rr := r.GetResponseRange(); rr != nil {
			kvs := make([]KeyValue, 0, len(rr.Kvs))
			for _, kv := range rr.Kvs {
				kvs = append(kvs, KeyValue{Key: kv.Key, Value: kv.Value, ModRevision: Revision(kv.ModRevision)})
			}
			results[i] = OpResult{KVs: kvs}
		}
	}
	return true, results, nil
}
