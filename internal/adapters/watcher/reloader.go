package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"go.trai.ch/waypoint/internal/core/domain"
	"go.trai.ch/waypoint/internal/core/ports"
)

// DefaultDebounceWindow is the default time window for debouncing file events.
const DefaultDebounceWindow = 50 * time.Millisecond

// Evictor drops a zone from the loader cache.
type Evictor interface {
	Evict(key domain.ZoneKey) bool
}

// Reloader evicts zones whose bundle files changed so that the next request
// loads them again.
type Reloader struct {
	zones     map[string][]domain.ZoneKey
	evictor   Evictor
	logger    ports.Logger
	onReload  func(keys []domain.ZoneKey)
	debouncer *Debouncer
}

// ReloaderOption configures a Reloader.
type ReloaderOption func(*Reloader)

// WithOnReload sets a callback run after each batch of evictions with the
// affected zones.
func WithOnReload(fn func(keys []domain.ZoneKey)) ReloaderOption {
	return func(r *Reloader) {
		r.onReload = fn
	}
}

// WithWindow sets the debounce window.
func WithWindow(window time.Duration) ReloaderOption {
	return func(r *Reloader) {
		r.debouncer = NewDebouncer(window, r.reload)
	}
}

// NewReloader creates a Reloader for the given zones.
func NewReloader(specs []domain.ZoneSpec, evictor Evictor, logger ports.Logger, opts ...ReloaderOption) *Reloader {
	r := &Reloader{
		zones:   make(map[string][]domain.ZoneKey, len(specs)),
		evictor: evictor,
		logger:  logger,
	}
	for _, spec := range specs {
		path := filepath.Clean(spec.BundlePath)
		r.zones[path] = append(r.zones[path], spec.Key)
	}
	r.debouncer = NewDebouncer(DefaultDebounceWindow, r.reload)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run starts w on root and feeds its events into the reloader until the
// events end. Pending changes are flushed before Run returns.
func (r *Reloader) Run(ctx context.Context, w ports.Watcher, root string) error {
	if err := w.Start(ctx, root); err != nil {
		return err
	}
	for event := range w.Events() {
		r.Observe(event)
	}
	r.debouncer.Flush()
	return nil
}

// Observe records a file event. Events for files that back no zone are ignored.
func (r *Reloader) Observe(event ports.WatchEvent) {
	if _, ok := r.zones[filepath.Clean(event.Path)]; !ok {
		return
	}
	r.debouncer.Add(filepath.Clean(event.Path))
}

// Flush processes pending changes immediately.
func (r *Reloader) Flush() {
	r.debouncer.Flush()
}

func (r *Reloader) reload(paths []string) {
	var keys []domain.ZoneKey
	for _, path := range paths {
		for _, key := range r.zones[path] {
			r.evictor.Evict(key)
			keys = append(keys, key)
			if r.logger != nil {
				r.logger.Info(fmt.Sprintf("zone %s changed, reloading on next visit", key))
			}
		}
	}
	if len(keys) > 0 && r.onReload != nil {
		r.onReload(keys)
	}
}
