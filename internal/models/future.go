package models

import (
	"context"
	"sync"
)

// Result carries either the data produced by a unit of work or its error.
type Result[T any] struct {
	Data T
	Err  error
}

// Future is resolved exactly once by the scheduler worker that ran the work.
type Future[T any] struct {
	mu     sync.Mutex
	done   chan struct{}
	value  T
	cancel context.CancelFunc
}

func NewFuture[T any](cancel context.CancelFunc) *Future[T] {
	return &Future[T]{
		done:   make(chan struct{}),
		cancel: cancel,
	}
}

// Resolve sets the value. Only the first call has an effect.
func (f *Future[T]) Resolve(v T) {
	f.mu.Lock()
	defer f.mu.Unlock()

	select {
	case <-f.done:
		return
	default:
	}
	f.value = v
	close(f.done)
}

// Poll returns the value and true if the future is resolved.
func (f *Future[T]) Poll() (T, bool) {
	select {
	case <-f.done:
		f.mu.Lock()
		defer f.mu.Unlock()
		return f.value, true
	default:
		var zero T
		return zero, false
	}
}

func (f *Future[T]) IsResolved() bool {
	_, ok := f.Poll()
	return ok
}

// Done is closed once the future is resolved.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the future is resolved or ctx is done.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		v, _ := f.Poll()
		return v, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Stop cancels the context handed to the work.
func (f *Future[T]) Stop() {
	if f.cancel != nil {
		f.cancel()
	}
}
