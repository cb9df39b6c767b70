// Package watcher reloads zone bundles when their files change during development.
package watcher

import (
	"maps"
	"slices"
	"sync"
	"time"
	"unique"
)

// Debouncer coalesces rapid file system events into batched reloads.
type Debouncer struct {
	mu       sync.Mutex
	pending  map[unique.Handle[string]]struct{}
	timer    *time.Timer
	window   time.Duration
	callback func(paths []string)
}

// NewDebouncer creates a new debouncer with the given time window and callback.
func NewDebouncer(window time.Duration, callback func(paths []string)) *Debouncer {
	return &Debouncer{
		pending:  make(map[unique.Handle[string]]struct{}),
		window:   window,
		callback: callback,
	}
}

// Add records path and restarts the window.
func (d *Debouncer) Add(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending[unique.Make(path)] = struct{}{}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	paths := d.drainLocked()
	d.timer = nil
	d.mu.Unlock()

	if len(paths) > 0 && d.callback != nil {
		go d.callback(paths)
	}
}

// Flush runs the callback with all pending paths and blocks until it returns.
// If the window already elapsed the pending batch is left to the timer.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		if !d.timer.Stop() {
			d.mu.Unlock()
			return
		}
		d.timer = nil
	}
	paths := d.drainLocked()
	d.mu.Unlock()

	if len(paths) > 0 && d.callback != nil {
		d.callback(paths)
	}
}

// drainLocked empties the pending set and returns its paths sorted.
func (d *Debouncer) drainLocked() []string {
	if len(d.pending) == 0 {
		return nil
	}
	paths := make([]string, 0, len(d.pending))
	for _, h := range slices.Collect(maps.Keys(d.pending)) {
		paths = append(paths, h.Value())
	}
	slices.Sort(paths)
	d.pending = make(map[unique.Handle[string]]struct{})
	return paths
}
