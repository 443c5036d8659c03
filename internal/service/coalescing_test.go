package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// TestCoalescer_MergesConcurrentCalls verifies that simultaneous fetches for
// one key share a single execution and all receive the same result.
func TestCoalescer_MergesConcurrentCalls(t *testing.T) {
	c := newCoalescer[string](time.Second)
	var calls atomic.Int32
	var coalesced atomic.Int32

	fn := func() (string, error) {
		calls.Add(1)
		time.Sleep(50 * time.Millisecond)
		return "payload", nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, shared, err := c.GetOrDo(context.Background(), "k1", fn)
			if err != nil {
				t.Errorf("GetOrDo() error = %v", err)
				return
			}
			if got != "payload" {
				t.Errorf("GetOrDo() = %q, want payload", got)
			}
			if shared {
				coalesced.Add(1)
			}
		}()
	}
	wg.Wait()

	if calls.Load() != 1 {
		t.Errorf("fn executed %d times, want 1", calls.Load())
	}
	if coalesced.Load() != 4 {
		t.Errorf("%d callers coalesced, want 4", coalesced.Load())
	}
}

// TestCoalescer_DistinctKeysIndependent verifies no sharing across keys.
func TestCoalescer_DistinctKeysIndependent(t *testing.T) {
	c := newCoalescer[int](time.Second)
	a, sharedA, errA := c.GetOrDo(context.Background(), "a", func() (int, error) { return 1, nil })
	b, sharedB, errB := c.GetOrDo(context.Background(), "b", func() (int, error) { return 2, nil })
	if errA != nil || errB != nil {
		t.Fatalf("errors: %v, %v", errA, errB)
	}
	if a != 1 || b != 2 || sharedA || sharedB {
		t.Errorf("got (%d,%v) and (%d,%v), want independent results", a, sharedA, b, sharedB)
	}
}

// TestCoalescer_ErrorShared verifies the leader's error reaches followers.
func TestCoalescer_ErrorShared(t *testing.T) {
	c := newCoalescer[string](time.Second)
	wantErr := errors.New("upstream down")

	started := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_, _, _ = c.GetOrDo(context.Background(), "k1", func() (string, error) {
			close(started)
			<-release
			return "", wantErr
		})
	}()
	<-started

	done := make(chan error, 1)
	go func() {
		_, _, err := c.GetOrDo(context.Background(), "k1", func() (string, error) {
			t.Error("follower executed fn")
			return "", nil
		})
		done <- err
	}()
	time.Sleep(10 * time.Millisecond)
	close(release)

	if err := <-done; !errors.Is(err, wantErr) {
		t.Errorf("follower error = %v, want %v", err, wantErr)
	}
}

// TestCoalescer_WaitTimeout verifies a follower gives up after the coalescer
// timeout instead of blocking on a stuck leader.
func TestCoalescer_WaitTimeout(t *testing.T) {
	c := newCoalescer[string](20 * time.Millisecond)

	started := make(chan struct{})
	release := make(chan struct{})
	defer close(release)
	go func() {
		_, _, _ = c.GetOrDo(context.Background(), "k1", func() (string, error) {
			close(started)
			<-release
			return "late", nil
		})
	}()
	<-started

	_, shared, err := c.GetOrDo(context.Background(), "k1", func() (string, error) { return "", nil })
	if !shared {
		t.Error("caller did not coalesce onto the stuck leader")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error = %v, want context.DeadlineExceeded", err)
	}
}
