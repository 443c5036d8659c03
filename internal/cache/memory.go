package cache

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"
)

// MemoryStore implements Store with a mutex-guarded map. Safe for concurrent
// request handlers; Put swaps the whole entry so readers never see a partial
// write.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]Entry)}
}

// Get returns the payload if the entry exists and is fresh. Expired entries
// are removed on access.
func (s *MemoryStore) Get(ctx context.Context, key string) (json.RawMessage, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !time.Now().Before(e.ExpiresAt) {
		delete(s.entries, key)
		return nil, false, nil
	}
	return e.Payload, true, nil
}

// Put creates or overwrites the entry for key.
func (s *MemoryStore) Put(ctx context.Context, key string, payload json.RawMessage, ttl time.Duration) error {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = Entry{
		Key:       key,
		Payload:   payload,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	return nil
}

// FindNewestByPrefix returns the payload with the most recent CreatedAt among
// keys starting with prefix, ignoring expiry.
func (s *MemoryStore) FindNewestByPrefix(ctx context.Context, prefix string) (json.RawMessage, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var newest Entry
	found := false
	for k, e := range s.entries {
		if !strings.HasPrefix(k, prefix) {
			continue
		}
		if !found || e.CreatedAt.After(newest.CreatedAt) {
			newest = e
			found = true
		}
	}
	if !found {
		return nil, false, nil
	}
	return newest.Payload, true, nil
}

// SweepExpired removes every expired entry and returns the count removed.
func (s *MemoryStore) SweepExpired(ctx context.Context) (int, error) {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for k, e := range s.entries {
		if !now.Before(e.ExpiresAt) {
			delete(s.entries, k)
			removed++
		}
	}
	return removed, nil
}

// ClearAll removes every entry and returns the count removed.
func (s *MemoryStore) ClearAll(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.entries)
	s.entries = make(map[string]Entry)
	return n, nil
}

// Close is a no-op for the in-memory backend.
func (s *MemoryStore) Close() error { return nil }
