// Package contextcache keeps a bounded set of quest contexts together with the
// loading and error state of their fetches.
package contextcache

import (
	"maps"
	"slices"
	"sync"
	"time"

	"go.trai.ch/waypoint/internal/core/domain"
)

// Recorder receives eviction events, typically to export them as metrics.
type Recorder interface {
	Evicted(n int)
}

// Entry is the combined state of one quest id.
type Entry struct {
	// Context is nil when no context is stored or a null context was stored.
	Context *domain.QuestContext
	Loading bool
	// Error is empty when there is no error.
	Error string
}

// Cache holds per-quest contexts and fetch state. Contexts are evicted oldest
// fetch first once more than Max are stored.
//
// loading=true always implies an empty error for the same id.
type Cache struct {
	mu       sync.Mutex
	contexts map[domain.QuestID]*domain.QuestContext
	loading  map[domain.QuestID]bool
	errors   map[domain.QuestID]string

	max      int
	now      func() time.Time
	recorder Recorder
}

// Option configures a Cache.
type Option func(*Cache)

// WithMax sets the number of contexts retained. Values below 1 select
// domain.DefaultContextCacheMax.
func WithMax(n int) Option {
	return func(c *Cache) {
		if n < 1 {
			n = domain.DefaultContextCacheMax
		}
		c.max = n
	}
}

// WithClock sets the clock used to stamp fetched contexts.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// WithRecorder sets the recorder notified of evictions.
func WithRecorder(r Recorder) Option {
	return func(c *Cache) {
		c.recorder = r
	}
}

// New creates an empty Cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		max: domain.DefaultContextCacheMax,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.reset()
	return c
}

func (c *Cache) reset() {
	c.contexts = make(map[domain.QuestID]*domain.QuestContext)
	c.loading = make(map[domain.QuestID]bool)
	c.errors = make(map[domain.QuestID]string)
}

// Max returns the configured bound.
func (c *Cache) Max() int {
	return c.max
}

// SetContext stores the payload stamped with the current time, clears the
// loading flag and error for id, and then enforces the bound.
// A nil payload stores a null context.
func (c *Cache) SetContext(id domain.QuestID, payload *domain.ContextPayload) {
	c.mu.Lock()

	var qc *domain.QuestContext
	if payload != nil {
		qc = &domain.QuestContext{
			Progress:    payload.Progress,
			Definition:  payload.Definition,
			LastFetched: c.now(),
		}
	}
	c.contexts[id] = qc
	c.loading[id] = false
	c.errors[id] = ""

	evicted := c.evictLocked()
	c.mu.Unlock()

	if evicted > 0 && c.recorder != nil {
		c.recorder.Evicted(evicted)
	}
}

// SetLoading sets the loading flag for id. Setting it clears any error.
func (c *Cache) SetLoading(id domain.QuestID, loading bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.loading[id] = loading
	if loading {
		c.errors[id] = ""
	}
}

// SetError records the error message for id and clears the loading flag.
// An empty message clears the error.
func (c *Cache) SetError(id domain.QuestID, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.errors[id] = message
	c.loading[id] = false
}

// Clear removes every trace of id. Unknown ids are ignored.
func (c *Cache) Clear(id domain.QuestID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.contexts, id)
	delete(c.loading, id)
	delete(c.errors, id)
}

// ResetAll restores the empty initial state.
func (c *Cache) ResetAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
}

// evictLocked removes the oldest non-null contexts while more than max
// contexts are stored. It returns the number of ids removed.
func (c *Cache) evictLocked() int {
	overflow := len(c.contexts) - c.max
	if overflow <= 0 {
		return 0
	}

	ids := make([]domain.QuestID, 0, len(c.contexts))
	for _, id := range slices.Sorted(maps.Keys(c.contexts)) {
		if c.contexts[id] != nil {
			ids = append(ids, id)
		}
	}
	slices.SortStableFunc(ids, func(a, b domain.QuestID) int {
		return c.contexts[a].LastFetched.Compare(c.contexts[b].LastFetched)
	})

	n := min(overflow, len(ids))
	for _, id := range ids[:n] {
		delete(c.contexts, id)
		delete(c.loading, id)
		delete(c.errors, id)
	}
	return n
}

// Context returns the stored context for id. The boolean reports whether an
// entry exists; a present entry may still be a null context.
func (c *Cache) Context(id domain.QuestID) (*domain.QuestContext, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	qc, ok := c.contexts[id]
	if qc == nil {
		return nil, ok
	}
	cp := *qc
	return &cp, ok
}

// Loading reports whether a fetch for id is in flight.
func (c *Cache) Loading(id domain.QuestID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading[id]
}

// Error returns the last error message for id, or "".
func (c *Cache) Error(id domain.QuestID) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errors[id]
}

// Lookup returns the combined state of id.
func (c *Cache) Lookup(id domain.QuestID) Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := Entry{Loading: c.loading[id], Error: c.errors[id]}
	if qc := c.contexts[id]; qc != nil {
		cp := *qc
		e.Context = &cp
	}
	return e
}

// Len returns the number of stored contexts, null contexts included.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.contexts)
}

// IDs returns the ids with a stored context, sorted.
func (c *Cache) IDs() []domain.QuestID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Sorted(maps.Keys(c.contexts))
}
