package resilience

import (
	"errors"
	"testing"
	"time"
)

func TestBreakerTripsAndRecovers(t *testing.T) {
	clock := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	b := NewBreaker(2, 10*time.Second)
	b.now = func() time.Time { return clock }

	if err := b.Allow(); err != nil {
		t.Fatalf("closed breaker should allow: %v", err)
	}
	b.Failure()
	b.Failure()

	if err := b.Allow(); !errors.Is(err, ErrBreakerOpen) {
		t.Fatalf("expected open breaker, got %v", err)
	}

	// After the cooldown a single probe goes through.
	clock = clock.Add(11 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("probe should be allowed: %v", err)
	}
	if err := b.Allow(); !errors.Is(err, ErrBreakerOpen) {
		t.Fatal("second concurrent probe should be rejected")
	}

	b.Success()
	if b.State() != BreakerClosed {
		t.Fatalf("breaker should close after probe success, state=%s", b.State())
	}
}

func TestBreakerReopensOnProbeFailure(t *testing.T) {
	clock := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	b := NewBreaker(1, 10*time.Second)
	b.now = func() time.Time { return clock }

	b.Failure()
	clock = clock.Add(11 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("probe should be allowed: %v", err)
	}
	b.Failure()

	if err := b.Allow(); !errors.Is(err, ErrBreakerOpen) {
		t.Fatal("breaker should reopen after failed probe")
	}
}

func TestSingleFlightShares(t *testing.T) {
	var g SingleFlight

	calls := 0
	started := make(chan struct{})
	release := make(chan struct{})

	go func() {
		_, _, _ = g.Do("key", func() (any, error) {
			calls++
			close(started)
			<-release
			return "first", nil
		})
	}()

	<-started
	done := make(chan struct{})
	var shared bool
	var val any
	go func() {
		val, _, shared = g.Do("key", func() (any, error) {
			calls++
			return "second", nil
		})
		close(done)
	}()

	close(release)
	<-done

	if !shared {
		t.Fatal("second caller should share the in-flight result")
	}
	if val != "first" || calls != 1 {
		t.Fatalf("expected one shared execution, val=%v calls=%d", val, calls)
	}
}
