package loader

import (
	"cmp"
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"go.trai.ch/waypoint/internal/core/domain"
	"go.trai.ch/waypoint/internal/core/ports"
	"go.trai.ch/zerr"
)

// Load fetches the resource behind one key.
type Load[T any] func(ctx context.Context) (T, error)

// Lookup resolves the Load registered for a key.
type Lookup[K cmp.Ordered, T any] func(key K) (Load[T], bool)

// EntryState is the state of a single cache key.
type EntryState uint8

const (
	// EntryAbsent means no load is cached for the key.
	EntryAbsent EntryState = iota
	// EntryPending means a load is in flight.
	EntryPending
	// EntrySettled means the load completed successfully and is retained.
	EntrySettled
)

// String returns a human-readable state name.
func (s EntryState) String() string {
	switch s {
	case EntryPending:
		return "pending"
	case EntrySettled:
		return "settled"
	default:
		return "absent"
	}
}

// Recorder receives cache events, typically to export them as metrics.
type Recorder interface {
	Hit()
	Miss()
	Failure()
}

// Cache de-duplicates loads per key and retains successful results for its lifetime.
type Cache[K cmp.Ordered, T any] struct {
	mu      sync.Mutex
	entries map[K]*Future[T]
	lookup  Lookup[K, T]
	opts    options
}

// New creates a Cache that resolves loaders through lookup.
func New[K cmp.Ordered, T any](lookup Lookup[K, T], opts ...Option) *Cache[K, T] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Cache[K, T]{
		entries: make(map[K]*Future[T]),
		lookup:  lookup,
		opts:    o,
	}
}

// GetOrLoad returns the Future for key, starting a load if none is cached.
//
// The key must already be validated by the caller. A key without a registered
// loader yields an already-failed Future and nothing is cached.
// GetOrLoad never blocks on the load itself.
func (c *Cache[K, T]) GetOrLoad(ctx context.Context, key K) *Future[T] {
	c.mu.Lock()
	if f, ok := c.entries[key]; ok {
		c.mu.Unlock()
		c.opts.recorder.Hit()
		return f
	}

	load, ok := c.lookup(key)
	if !ok || load == nil {
		c.mu.Unlock()
		return Failed[T](zerr.With(domain.ErrUnknownZone, "key", fmt.Sprint(key)))
	}

	f := newFuture[T]()
	c.entries[key] = f
	c.mu.Unlock()

	c.opts.recorder.Miss()
	go c.run(context.WithoutCancel(ctx), key, load, f)

	return f
}

// Prefetch starts loading key in the background if it is not cached yet.
func (c *Cache[K, T]) Prefetch(ctx context.Context, key K) {
	_ = c.GetOrLoad(ctx, key)
}

// State returns the current state of key.
func (c *Cache[K, T]) State(key K) EntryState {
	c.mu.Lock()
	f, ok := c.entries[key]
	c.mu.Unlock()

	switch {
	case !ok:
		return EntryAbsent
	case f.Settled():
		return EntrySettled
	default:
		return EntryPending
	}
}

// Keys returns the cached keys in sorted order.
func (c *Cache[K, T]) Keys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Sorted(maps.Keys(c.entries))
}

// Len returns the number of cached keys.
func (c *Cache[K, T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// WaitIdle blocks until every load in flight when it was called has settled,
// or ctx is done. Failed loads are not reported; they are already gone from
// the cache.
func (c *Cache[K, T]) WaitIdle(ctx context.Context) error {
	c.mu.Lock()
	pending := make([]*Future[T], 0, len(c.entries))
	for _, f := range c.entries {
		if !f.Settled() {
			pending = append(pending, f)
		}
	}
	c.mu.Unlock()

	for _, f := range pending {
		select {
		case <-f.Done():
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// Evict drops the entry for key. It is a debugging aid: a pending load keeps
// running and settles its Future, but it is no longer handed out.
func (c *Cache[K, T]) Evict(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.entries[key]
	delete(c.entries, key)
	return ok
}

// Clear drops every entry. It is a debugging aid, see Evict.
func (c *Cache[K, T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
}

func (c *Cache[K, T]) run(ctx context.Context, key K, load Load[T], f *Future[T]) {
	ctx, span := c.opts.tracer.Start(ctx, "loader.load", ports.WithAttribute("key", fmt.Sprint(key)))
	defer span.End()

	value, err := invoke(ctx, load)
	if err != nil {
		err = zerr.With(zerr.Wrap(err, domain.ErrZoneLoadFailed.Error()), "key", fmt.Sprint(key))
		span.RecordError(err)

		// Drop the entry before settling so that anyone observing the failure
		// and asking again starts a new load.
		c.mu.Lock()
		if c.entries[key] == f {
			delete(c.entries, key)
		}
		c.mu.Unlock()

		c.opts.recorder.Failure()
		if c.opts.development {
			c.opts.logger.Warn(fmt.Sprintf("load of %v failed: %v", key, err))
		}
	}

	f.settle(value, err)
}

// invoke runs load and turns a panic into an error so the Future always settles.
func invoke[T any](ctx context.Context, load Load[T]) (value T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			value = zero
			err = zerr.With(domain.ErrLoaderPanicked, "panic", fmt.Sprint(r))
		}
	}()
	return load(ctx)
}
