package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryStoreExpiry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryStore()

	if err := store.Set(ctx, "k", "v", 10*time.Millisecond); err != nil {
		t.Fatalf("set: %v", err)
	}

	if got, err := store.Get(ctx, "k"); err != nil || got != "v" {
		t.Fatalf("expected v, got %q err=%v", got, err)
	}

	time.Sleep(20 * time.Millisecond)

	if _, err := store.Get(ctx, "k"); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected ErrMiss after expiry, got %v", err)
	}
}

func TestMemoryStoreKeepTTLPreservesExpiry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryStore()

	if err := store.Set(ctx, "k", "v1", 15*time.Millisecond); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.SetKeepTTL(ctx, "k", "v2"); err != nil {
		t.Fatalf("set keepttl: %v", err)
	}

	if got, _ := store.Get(ctx, "k"); got != "v2" {
		t.Fatalf("expected v2, got %q", got)
	}

	time.Sleep(30 * time.Millisecond)

	if _, err := store.Get(ctx, "k"); !errors.Is(err, ErrMiss) {
		t.Fatal("keep-ttl update must not remove the in-flight expiry")
	}
}

func TestMemoryStoreKeys(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryStore()

	store.Set(ctx, "circuit:a", "1", 0)
	store.Set(ctx, "circuit:b", "1", 0)
	store.Set(ctx, "other", "1", 0)

	keys, err := store.Keys(ctx, "circuit:*")
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if len(keys) != 2 {
		t.Fatalf("expected 2 keys, got %d: %v", len(keys), keys)
	}
}

func TestMemoryStoreDel(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryStore()

	store.Set(ctx, "k", "v", 0)
	if err := store.Del(ctx, "k"); err != nil {
		t.Fatalf("del: %v", err)
	}
	if _, err := store.Get(ctx, "k"); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected ErrMiss, got %v", err)
	}
}
