package service

import (
	"context"
	"sync"
	"time"
)

// inFlightCall tracks a single upstream fetch that multiple callers may wait
// for.
type inFlightCall[T any] struct {
	mu      sync.Mutex
	result  T
	err     error
	done    bool
	waiters []chan struct{}
}

// coalescer prevents cache stampede by merging concurrent fetches for the
// same key into one upstream call. Followers wait for the leader's result up
// to the configured timeout.
type coalescer[T any] struct {
	mu       sync.Mutex
	inFlight map[string]*inFlightCall[T]
	timeout  time.Duration
}

func newCoalescer[T any](timeout time.Duration) *coalescer[T] {
	return &coalescer[T]{
		inFlight: make(map[string]*inFlightCall[T]),
		timeout:  timeout,
	}
}

// GetOrDo returns the in-flight result for key when one exists, otherwise
// runs fn and shares its result with any followers that arrive meanwhile.
// The second return value reports whether this caller coalesced onto an
// existing call. Respects ctx cancellation and the coalescer timeout.
func (c *coalescer[T]) GetOrDo(ctx context.Context, key string, fn func() (T, error)) (T, bool, error) {
	var zero T

	c.mu.Lock()
	call, exists := c.inFlight[key]
	if exists {
		c.mu.Unlock()
		result, err := c.wait(ctx, call)
		if err != nil {
			return zero, true, err
		}
		return result, true, nil
	}

	call = &inFlightCall[T]{}
	c.inFlight[key] = call
	c.mu.Unlock()

	go func() {
		result, err := fn()

		call.mu.Lock()
		call.result = result
		call.err = err
		call.done = true
		waiters := call.waiters
		call.waiters = nil
		call.mu.Unlock()

		for _, notify := range waiters {
			close(notify)
		}

		c.mu.Lock()
		delete(c.inFlight, key)
		c.mu.Unlock()
	}()

	result, err := c.wait(ctx, call)
	if err != nil {
		return zero, false, err
	}
	return result, false, nil
}

// wait blocks until the call completes, ctx is cancelled, or the coalescer
// timeout elapses.
func (c *coalescer[T]) wait(ctx context.Context, call *inFlightCall[T]) (T, error) {
	var zero T

	call.mu.Lock()
	if call.done {
		result, err := call.result, call.err
		call.mu.Unlock()
		return result, err
	}
	notify := make(chan struct{})
	call.waiters = append(call.waiters, notify)
	call.mu.Unlock()

	waitCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	select {
	case <-notify:
		call.mu.Lock()
		result, err := call.result, call.err
		call.mu.Unlock()
		return result, err
	case <-waitCtx.Done():
		return zero, waitCtx.Err()
	}
}
