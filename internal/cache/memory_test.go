package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"
)

// TestMemoryStore_GetMiss verifies a read of an absent key.
func TestMemoryStore_GetMiss(t *testing.T) {
	s := NewMemoryStore()
	_, ok, err := s.Get(context.Background(), "weather_1.0000_2.0000_abc")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok {
		t.Error("Get() ok = true for absent key, want false")
	}
}

// TestMemoryStore_PutGet verifies a fresh entry round-trips bit-identical.
func TestMemoryStore_PutGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	payload := json.RawMessage(`{"current":{"temperature":21.5}}`)

	if err := s.Put(ctx, "k1", payload, time.Minute); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	got, ok, err := s.Get(ctx, "k1")
	if err != nil || !ok {
		t.Fatalf("Get() = ok %v, err %v, want hit", ok, err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("Get() payload = %s, want %s", got, payload)
	}
}

// TestMemoryStore_PutIdempotent verifies overwriting a key leaves one entry
// with the latest payload.
func TestMemoryStore_PutIdempotent(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.Put(ctx, "k1", json.RawMessage(`"v1"`), time.Minute); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := s.Put(ctx, "k1", json.RawMessage(`"v2"`), time.Minute); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, ok, _ := s.Get(ctx, "k1")
	if !ok || string(got) != `"v2"` {
		t.Errorf("Get() = %s, ok %v, want \"v2\"", got, ok)
	}
	if n, _ := s.ClearAll(ctx); n != 1 {
		t.Errorf("ClearAll() removed %d entries, want 1", n)
	}
}

// TestMemoryStore_Expiry verifies expired entries disappear on read.
func TestMemoryStore_Expiry(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.Put(ctx, "k1", json.RawMessage(`"v"`), 10*time.Millisecond); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	time.Sleep(20 * time.Millisecond)

	if _, ok, _ := s.Get(ctx, "k1"); ok {
		t.Error("Get() ok = true after expiry, want false")
	}
	// Lazy delete already removed the entry.
	if n, _ := s.ClearAll(ctx); n != 0 {
		t.Errorf("ClearAll() removed %d entries after expired read, want 0", n)
	}
}

// TestMemoryStore_FindNewestByPrefix verifies prefix matching picks the most
// recently created entry and ignores expiry.
func TestMemoryStore_FindNewestByPrefix(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.Put(ctx, "weather_10.0000_20.0000_old", json.RawMessage(`"old"`), -time.Second); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	time.Sleep(2 * time.Millisecond)
	if err := s.Put(ctx, "weather_10.0000_20.0000_new", json.RawMessage(`"new"`), -time.Second); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := s.Put(ctx, "airquality_10.0000_20.0000", json.RawMessage(`"other"`), time.Minute); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, ok, err := s.FindNewestByPrefix(ctx, "weather_10.0000_20.0000_")
	if err != nil || !ok {
		t.Fatalf("FindNewestByPrefix() = ok %v, err %v, want hit", ok, err)
	}
	if string(got) != `"new"` {
		t.Errorf("FindNewestByPrefix() = %s, want \"new\"", got)
	}

	if _, ok, _ := s.FindNewestByPrefix(ctx, "weather_99.0000_0.0000_"); ok {
		t.Error("FindNewestByPrefix() ok = true for unseen prefix, want false")
	}
}

// TestMemoryStore_SweepExpired verifies the sweep removes only expired
// entries and reports the count.
func TestMemoryStore_SweepExpired(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_ = s.Put(ctx, "expired1", json.RawMessage(`"a"`), -time.Second)
	_ = s.Put(ctx, "expired2", json.RawMessage(`"b"`), -time.Second)
	_ = s.Put(ctx, "fresh", json.RawMessage(`"c"`), time.Minute)

	n, err := s.SweepExpired(ctx)
	if err != nil {
		t.Fatalf("SweepExpired() error = %v", err)
	}
	if n != 2 {
		t.Errorf("SweepExpired() removed %d, want 2", n)
	}
	if _, ok, _ := s.Get(ctx, "fresh"); !ok {
		t.Error("fresh entry removed by sweep")
	}
}

// TestMemoryStore_ClearAll verifies the clear removes everything regardless
// of expiry.
func TestMemoryStore_ClearAll(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_ = s.Put(ctx, "a", json.RawMessage(`1`), time.Minute)
	_ = s.Put(ctx, "b", json.RawMessage(`2`), -time.Second)

	n, err := s.ClearAll(ctx)
	if err != nil {
		t.Fatalf("ClearAll() error = %v", err)
	}
	if n != 2 {
		t.Errorf("ClearAll() removed %d, want 2", n)
	}
	if _, ok, _ := s.Get(ctx, "a"); ok {
		t.Error("entry survived ClearAll")
	}
}

// TestMemoryStore_ConcurrentAccess exercises the store from parallel
// goroutines to surface data races under -race.
func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	done := make(chan struct{})

	for i := 0; i < 4; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				_ = s.Put(ctx, "shared", json.RawMessage(`"v"`), time.Minute)
				_, _, _ = s.Get(ctx, "shared")
				_, _, _ = s.FindNewestByPrefix(ctx, "sha")
				_, _ = s.SweepExpired(ctx)
			}
		}()
	}
	for i := 0; i < 4; i++ {
		<-done
	}
}
