// Package loader implements a de-duplicating cache of in-flight and settled loads.
//
// Every key maps to at most one Future at a time. Callers asking for the same key
// receive the same *Future, so waiting on it never triggers a second fetch. A failed
// load is dropped from the cache before its Future settles, which makes a later
// request for the same key start a fresh load.
package loader

import "context"

// Future is a handle to a load that may not have completed yet.
// Two callers share a load exactly when they hold the same *Future.
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Failed returns a Future that is already settled with err.
func Failed[T any](err error) *Future[T] {
	f := newFuture[T]()
	f.settle(*new(T), err)
	return f
}

// settle must be called exactly once.
func (f *Future[T]) settle(value T, err error) {
	f.value = value
	f.err = err
	close(f.done)
}

// Done returns a channel that is closed once the load has settled.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Settled reports whether the load has completed, successfully or not.
func (f *Future[T]) Settled() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Err returns the load error. It is nil while the load is pending or when it succeeded.
func (f *Future[T]) Err() error {
	if !f.Settled() {
		return nil
	}
	return f.err
}

// Wait blocks until the load settles or ctx is done.
// Giving up on ctx does not cancel the load itself.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
