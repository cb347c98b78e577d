package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStoreGetSetDelete(t *testing.T) {
	ctx := context.Background()
	store := NewStore(0)

	if _, ok := store.Get(ctx, "missing"); ok {
		t.Fatalf("expected miss for absent key")
	}

	store.Set(ctx, "k", 42)
	value, ok := store.Get(ctx, "k")
	if !ok {
		t.Fatalf("expected hit after Set")
	}
	if value.(int) != 42 {
		t.Fatalf("unexpected value: %v", value)
	}

	store.Delete(ctx, "k")
	if _, ok := store.Get(ctx, "k"); ok {
		t.Fatalf("expected miss after Delete")
	}
}

func TestStoreTTLExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewStore(10 * time.Millisecond)

	store.Set(ctx, "k", "v")
	if _, ok := store.Get(ctx, "k"); !ok {
		t.Fatalf("expected hit before expiry")
	}

	time.Sleep(20 * time.Millisecond)
	if _, ok := store.Get(ctx, "k"); ok {
		t.Fatalf("expected miss after expiry")
	}
}

func TestGetOrComputeSharesWork(t *testing.T) {
	ctx := context.Background()
	store := NewStore(0)

	var calls atomic.Int64
	release := make(chan struct{})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			value, err := store.GetOrCompute(ctx, "k", func() (any, error) {
				calls.Add(1)
				<-release
				return "computed", nil
			})
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if value.(string) != "computed" {
				t.Errorf("unexpected value: %v", value)
			}
		}()
	}

	time.Sleep(10 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Fatalf("expected a single compute, got %d", got)
	}

	// Subsequent calls serve from cache without recomputing.
	if _, err := store.GetOrCompute(ctx, "k", func() (any, error) {
		calls.Add(1)
		return nil, nil
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected cached value, compute ran %d times", got)
	}
}

func TestVersionedKey(t *testing.T) {
	got := VersionedKey("leaderboard", "event-1", uint64(7))
	if got != "leaderboard:event-1:7" {
		t.Fatalf("unexpected key: %s", got)
	}
}
