package asset

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/singleflight"
)

// namespace is an append-only map of loaded entries of one kind. Concurrent
// loads of the same id share one in-flight call.
type namespace[T any] struct {
	kind     Kind
	mu       sync.RWMutex
	entries  map[string]T
	inflight singleflight.Group
}

func newNamespace[T any](kind Kind) *namespace[T] {
	return &namespace[T]{kind: kind, entries: make(map[string]T)}
}

func (ns *namespace[T]) get(id string) (T, bool) {
	ns.mu.RLock()
	defer ns.mu.RUnlock()
	v, ok := ns.entries[id]
	return v, ok
}

func (ns *namespace[T]) lookup(id string) (T, error) {
	v, ok := ns.get(id)
	if !ok {
		return v, &LookupError{Kind: ns.kind, ID: id}
	}
	return v, nil
}

func (ns *namespace[T]) len() int {
	ns.mu.RLock()
	defer ns.mu.RUnlock()
	return len(ns.entries)
}

func (ns *namespace[T]) ids() []string {
	ns.mu.RLock()
	defer ns.mu.RUnlock()
	ids := make([]string, 0, len(ns.entries))
	for id := range ns.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (ns *namespace[T]) values() []T {
	ns.mu.RLock()
	defer ns.mu.RUnlock()
	vs := make([]T, 0, len(ns.entries))
	for _, v := range ns.entries {
		vs = append(vs, v)
	}
	return vs
}

// load runs fn at most once per id and installs its result. Callers arriving
// while a load of the same id is in flight receive that load's outcome. The
// shared load ignores cancellation; a cancelled ctx only fails its own caller.
func (ns *namespace[T]) load(ctx context.Context, id string, fn func(ctx context.Context) (T, error)) *Pending {
	if IsReserved(id) {
		return Failed(&NamingError{Kind: ns.kind, ID: id})
	}
	if _, ok := ns.get(id); ok {
		return Resolved()
	}

	p := newPending()
	ch := ns.inflight.DoChan(id, func() (any, error) {
		// A load that finished between the check above and this call has
		// already installed the entry.
		if v, ok := ns.get(id); ok {
			return v, nil
		}
		v, err := fn(context.WithoutCancel(ctx))
		if err != nil {
			return nil, &LoadError{Kind: ns.kind, ID: id, Err: err}
		}
		ns.mu.Lock()
		ns.entries[id] = v
		ns.mu.Unlock()
		return v, nil
	})

	go func() {
		select {
		case res := <-ch:
			p.settle(res.Err)
		case <-ctx.Done():
			p.settle(&LoadError{Kind: ns.kind, ID: id, Err: ctx.Err()})
		}
	}()
	return p
}
