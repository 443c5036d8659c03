package cache

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
)

const (
	keyPrefix      = "forecast:"
	stalePrefix    = "forecast:stale:"
	staleRetention = 24 * time.Hour
)

// MemcachedStore implements Store on memcached. Memcached cannot enumerate
// keys, so every Put also writes a long-lived copy under the entry's key
// prefix; FindNewestByPrefix reads that copy. Expiry is delegated to the
// server, which makes SweepExpired a no-op, and flush_all does not report a
// count, so ClearAll returns 0.
type MemcachedStore struct {
	client *memcache.Client
}

// NewMemcachedStore creates a MemcachedStore. addrs is a comma-separated list
// (e.g. "localhost:11211" or "host1:11211,host2:11211"). timeout and
// maxIdleConns use client defaults when zero.
func NewMemcachedStore(addrs string, timeout time.Duration, maxIdleConns int) (*MemcachedStore, error) {
	servers := parseAddrs(addrs)
	if len(servers) == 0 {
		servers = []string{"localhost:11211"}
	}
	client := memcache.New(servers...)
	if timeout > 0 {
		client.Timeout = timeout
	}
	if maxIdleConns > 0 {
		client.MaxIdleConns = maxIdleConns
	}
	return &MemcachedStore{client: client}, nil
}

func parseAddrs(s string) []string {
	var out []string
	for _, a := range strings.Split(s, ",") {
		a = strings.TrimSpace(a)
		if a != "" {
			out = append(out, a)
		}
	}
	return out
}

// Get returns the payload on a fresh hit; memcached removes expired items
// itself, so a miss covers both absent and expired.
func (s *MemcachedStore) Get(ctx context.Context, key string) (json.RawMessage, bool, error) {
	if ctx.Err() != nil {
		return nil, false, ctx.Err()
	}
	item, err := s.client.Get(keyPrefix + key)
	if err != nil {
		if err == memcache.ErrCacheMiss {
			return nil, false, nil
		}
		return nil, false, err
	}
	return item.Value, true, nil
}

// Put stores the payload with the given TTL and refreshes the long-lived
// stale copy for the key's namespace prefix.
func (s *MemcachedStore) Put(ctx context.Context, key string, payload json.RawMessage, ttl time.Duration) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	expSec := int32(ttl.Seconds())
	const maxRelativeExp = 30 * 24 * 60 * 60 // 30 days
	if expSec <= 0 || expSec > maxRelativeExp {
		expSec = 3600
	}
	if err := s.client.Set(&memcache.Item{
		Key:        keyPrefix + key,
		Value:      payload,
		Expiration: expSec,
	}); err != nil {
		return err
	}
	// Newest-wins stale copy under the namespace prefix. An error here only
	// degrades the fallback path, not the primary write.
	return s.client.Set(&memcache.Item{
		Key:        stalePrefix + namespaceOf(key),
		Value:      payload,
		Expiration: int32(staleRetention.Seconds()),
	})
}

// namespaceOf strips the trailing options digest so all option variants of a
// coordinate share one stale slot. Keys look like "weather_lat_lon_<digest>".
func namespaceOf(key string) string {
	if i := strings.LastIndex(key, "_"); i >= 0 {
		return key[:i+1]
	}
	return key
}

// FindNewestByPrefix reads the stale copy written by Put for this prefix.
func (s *MemcachedStore) FindNewestByPrefix(ctx context.Context, prefix string) (json.RawMessage, bool, error) {
	if ctx.Err() != nil {
		return nil, false, ctx.Err()
	}
	item, err := s.client.Get(stalePrefix + prefix)
	if err != nil {
		if err == memcache.ErrCacheMiss {
			return nil, false, nil
		}
		return nil, false, err
	}
	return item.Value, true, nil
}

// SweepExpired is a no-op; the server evicts expired items.
func (s *MemcachedStore) SweepExpired(ctx context.Context) (int, error) {
	return 0, nil
}

// ClearAll flushes every item. Memcached does not report how many were
// removed, so the count is always 0.
func (s *MemcachedStore) ClearAll(ctx context.Context) (int, error) {
	if ctx.Err() != nil {
		return 0, ctx.Err()
	}
	return 0, s.client.FlushAll()
}

// Ping checks if memcached is reachable. Used for health checks.
func (s *MemcachedStore) Ping() error {
	return s.client.Ping()
}

// Close closes the memcached client connections.
func (s *MemcachedStore) Close() error {
	return s.client.Close()
}
