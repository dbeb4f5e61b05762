package observer

import (
	"context"
	"iter"
	"slices"
	"weak"

	"github.com/tailored-agentic-units/observers/identity"
	"github.com/tailored-agentic-units/observers/observability"
)

// Member is one (owner, handler) pair of the flattened view. The owner is
// held weakly so a cached view never keeps it alive.
type Member[T any, H comparable] struct {
	key     identity.Key
	owner   weak.Pointer[T]
	Handler H
}

// Key returns the identity key the owner was filed under.
func (m Member[T, H]) Key() identity.Key {
	return m.key
}

// Owner returns the owner, or nil for the no-owner group and for owners
// collected since registration.
func (m Member[T, H]) Owner() *T {
	return m.owner.Value()
}

// Registry records which (owner, handler) pairs observe one key.
//
// Handlers are grouped per owner; an owner's group exists only while it has
// at least one handler. Members returns the flattened pairs, ordered by
// first registration of each owner and then of each handler, and caches the
// result until the next mutation that changes the contents.
//
// A Registry is not safe for concurrent use. Handlers that mutate the
// registry while being notified should be driven through Notify, or the
// caller should iterate a Clone.
type Registry[T any, H comparable] struct {
	alloc    identity.Allocator[T]
	observer observability.Observer
	quiet    bool

	sets       map[identity.Key]*targetSet[T, H]
	order      []identity.Key
	ownerCount int

	cache struct {
		valid   bool
		members []Member[T, H]
	}
}

// New creates an empty Registry. A nil alloc gets a fresh identity.Table;
// a nil obs discards events.
func New[T any, H comparable](alloc identity.Allocator[T], obs observability.Observer) *Registry[T, H] {
	if alloc == nil {
		alloc = identity.NewTable[T]()
	}
	obs = observability.OrNoOp(obs)
	_, quiet := obs.(observability.NoOpObserver)

	return &Registry[T, H]{
		alloc:    alloc,
		observer: obs,
		quiet:    quiet,
		sets:     make(map[identity.Key]*targetSet[T, H]),
	}
}

// Add registers handler for owner. Registering an existing pair is a
// no-op. A nil owner files the handler under identity.None.
//
// Handlers that cannot be compared by identity (nil, or an interface
// holding a func, map or slice) are ignored and reported as an
// EventReject warning.
func (r *Registry[T, H]) Add(owner *T, handler H) {
	if !identifiable(handler) {
		r.emit(EventReject, observability.LevelWarning, map[string]any{
			"reason": "handler is nil or not comparable",
		})
		return
	}

	key := r.alloc.KeyFor(owner)
	set, exists := r.sets[key]
	if !exists {
		set = newTargetSet[T, H](owner)
		r.sets[key] = set
		r.order = append(r.order, key)
		r.ownerCount++
	}

	if !set.add(handler) {
		return
	}
	r.invalidate()

	r.emit(EventAdd, observability.LevelVerbose, map[string]any{
		"owner":    string(key),
		"handlers": len(set.handlers),
		"owners":   r.ownerCount,
	})
}

// Remove unregisters handler for owner and reports whether the pair was
// present. The owner's group is dropped once its last handler goes.
func (r *Registry[T, H]) Remove(owner *T, handler H) bool {
	if !identifiable(handler) {
		return false
	}

	key, known := r.find(owner)
	if !known {
		return false
	}
	set, exists := r.sets[key]
	if !exists {
		return false
	}
	if !set.remove(handler) {
		return false
	}

	if set.empty() {
		r.drop(key)
	}
	r.invalidate()

	r.emit(EventRemove, observability.LevelVerbose, map[string]any{
		"owner":    string(key),
		"handlers": len(set.handlers),
		"owners":   r.ownerCount,
	})
	return true
}

// Has reports whether the pair is registered.
func (r *Registry[T, H]) Has(owner *T, handler H) bool {
	if !identifiable(handler) {
		return false
	}
	key, known := r.find(owner)
	if !known {
		return false
	}
	set, exists := r.sets[key]
	return exists && set.has(handler)
}

// Members returns every registered pair. While nothing has changed since
// the previous call the same slice is returned; after a change a new slice
// is built, so slices handed out earlier never change. The slice is shared
// with the cache: callers must not assign to its elements. Use All for a
// read-only view.
func (r *Registry[T, H]) Members() []Member[T, H] {
	if r.cache.valid {
		return r.cache.members
	}

	total := 0
	for _, key := range r.order {
		total += len(r.sets[key].handlers)
	}

	members := make([]Member[T, H], 0, total)
	for _, key := range r.order {
		set := r.sets[key]
		for _, h := range set.handlers {
			members = append(members, Member[T, H]{key: key, owner: set.owner, Handler: h})
		}
	}

	r.cache.members = members
	r.cache.valid = true

	r.emit(EventRebuild, observability.LevelVerbose, map[string]any{
		"members": len(members),
		"owners":  r.ownerCount,
	})
	return members
}

// All yields the current members without exposing the cached slice.
// Like Members, the sequence is fixed when All is called.
func (r *Registry[T, H]) All() iter.Seq[Member[T, H]] {
	members := r.Members()
	return func(yield func(Member[T, H]) bool) {
		for _, m := range members {
			if !yield(m) {
				return
			}
		}
	}
}

// Clone returns an independent Registry holding the same pairs. Owners and
// handlers are shared by reference; the per-owner groups, the owner count
// and the cache are not. The clone uses the same allocator and observer.
func (r *Registry[T, H]) Clone() *Registry[T, H] {
	c := &Registry[T, H]{
		alloc:      r.alloc,
		observer:   r.observer,
		quiet:      r.quiet,
		sets:       make(map[identity.Key]*targetSet[T, H], len(r.sets)),
		order:      slices.Clone(r.order),
		ownerCount: r.ownerCount,
	}
	for key, set := range r.sets {
		c.sets[key] = set.clone()
	}

	r.emit(EventClone, observability.LevelVerbose, map[string]any{
		"owners": c.ownerCount,
	})
	return c
}

// OwnerCount returns the number of owners with at least one handler.
func (r *Registry[T, H]) OwnerCount() int {
	return r.ownerCount
}

// Prune drops the groups of owners that have been garbage collected without
// being removed, returning how many were dropped. The no-owner group is
// never pruned.
func (r *Registry[T, H]) Prune() int {
	var stale []identity.Key
	for _, key := range r.order {
		if key == identity.None {
			continue
		}
		if r.sets[key].owner.Value() == nil {
			stale = append(stale, key)
		}
	}
	if len(stale) == 0 {
		return 0
	}

	for _, key := range stale {
		r.drop(key)
	}
	r.invalidate()

	r.emit(EventPrune, observability.LevelInfo, map[string]any{
		"pruned": len(stale),
		"owners": r.ownerCount,
	})
	return len(stale)
}

// find resolves owner to its key without minting one when the allocator
// supports lookups; an owner with no key cannot have a group.
func (r *Registry[T, H]) find(owner *T) (identity.Key, bool) {
	if finder, ok := r.alloc.(identity.Finder[T]); ok {
		return finder.Lookup(owner)
	}
	return r.alloc.KeyFor(owner), true
}

func (r *Registry[T, H]) drop(key identity.Key) {
	delete(r.sets, key)
	if i := slices.Index(r.order, key); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}
	r.ownerCount--
}

func (r *Registry[T, H]) invalidate() {
	r.cache.valid = false
	r.cache.members = nil
}

func (r *Registry[T, H]) emit(typ observability.EventType, level observability.Level, data map[string]any) {
	r.emitContext(context.Background(), typ, level, data)
}

func (r *Registry[T, H]) emitContext(ctx context.Context, typ observability.EventType, level observability.Level, data map[string]any) {
	if r.quiet {
		return
	}
	r.observer.OnEvent(ctx, observability.NewEvent(typ, level, eventSource, data))
}
