// Package store holds the active zone and notifies subscribers when it changes.
package store

import (
	"sync"
	"time"

	"go.trai.ch/waypoint/internal/core/domain"
	"go.trai.ch/waypoint/internal/core/ports"
)

// State is a point-in-time view of the store.
type State struct {
	ActiveKey   domain.ZoneKey
	LastChanged time.Time
	HasRedraw   bool
}

type subscriber struct {
	id int
	fn func(State)
}

// Store is the active-zone container shared by the router and the render host.
type Store struct {
	mu          sync.Mutex
	activeKey   domain.ZoneKey
	lastChanged time.Time
	redraw      func()
	subscribers []subscriber
	nextID      int

	now         func() time.Time
	logger      ports.Logger
	development bool
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used to stamp writes.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger and whether development warnings are emitted.
func WithLogger(l ports.Logger, development bool) Option {
	return func(s *Store) {
		s.logger = l
		s.development = development
	}
}

// New creates an empty Store with no active zone and no redraw callback.
func New(opts ...Option) *Store {
	s := &Store{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetActiveKey writes the active zone, stamps the write and notifies subscribers
// synchronously. It does not compare against the previous value.
func (s *Store) SetActiveKey(key domain.ZoneKey) {
	s.mu.Lock()
	s.activeKey = key
	s.lastChanged = s.now()
	state := s.snapshotLocked()
	subs := append([]subscriber(nil), s.subscribers...)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(state)
	}
}

// ActiveKey returns the active zone, or domain.NoZone.
func (s *Store) ActiveKey() domain.ZoneKey {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeKey
}

// LastChanged returns the time of the last write, or the zero time if none happened.
func (s *Store) LastChanged() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastChanged
}

// Snapshot returns the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() State {
	return State{
		ActiveKey:   s.activeKey,
		LastChanged: s.lastChanged,
		HasRedraw:   s.redraw != nil,
	}
}

// Subscribe registers fn to be called after every write, in subscription order.
// The returned function removes the subscription.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.subscribers = append(s.subscribers, subscriber{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subscribers {
			if sub.id == id {
				s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
				return
			}
		}
	}
}

// RegisterRedraw installs the render host's redraw callback.
// A later registration replaces the earlier one.
func (s *Store) RegisterRedraw(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.redraw = fn
}

// Invalidate asks the render host to redraw. Before a callback is registered
// it is a no-op that warns in development.
func (s *Store) Invalidate() {
	s.mu.Lock()
	redraw := s.redraw
	s.mu.Unlock()

	if redraw == nil {
		if s.development && s.logger != nil {
			s.logger.Warn("invalidate called before a redraw callback was registered")
		}
		return
	}
	redraw()
}
