package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Store is the key/value persistence contract used by the forecast proxy.
// Keys are opaque strings of the form "<namespace>_<coords>_<digest>"; the
// plaintext prefix makes FindNewestByPrefix possible. Payloads are serialized
// upstream results; the store never inspects them.
//
// Backend failures are deliberately soft: callers treat a Get error as a miss
// and log-and-ignore a Put error. Caching is a performance optimization, not a
// correctness dependency.
type Store interface {
	// Get returns the payload only if an entry exists and has not expired.
	// Expired entries are removed on read.
	Get(ctx context.Context, key string) (json.RawMessage, bool, error)

	// Put creates or overwrites the entry for key with expiresAt = now + ttl.
	// A concurrent reader observes either the old or the new entry, never a
	// partial write.
	Put(ctx context.Context, key string, payload json.RawMessage, ttl time.Duration) error

	// FindNewestByPrefix returns the payload of the entry with the most recent
	// createdAt among keys starting with prefix, ignoring expiry. Used only
	// for the stale-fallback path.
	FindNewestByPrefix(ctx context.Context, prefix string) (json.RawMessage, bool, error)

	// SweepExpired removes every expired entry and returns the count removed.
	SweepExpired(ctx context.Context) (int, error)

	// ClearAll removes every entry and returns the count removed. Privileged;
	// the HTTP layer gates it behind the admin token.
	ClearAll(ctx context.Context) (int, error)

	// Close releases backend resources. Call during shutdown.
	Close() error
}

// Entry is the self-describing persisted record. CreatedAt is recoverable
// without decoding Payload, which FindNewestByPrefix relies on.
type Entry struct {
	Key       string          `json:"key"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
	ExpiresAt time.Time       `json:"expires_at"`
}
