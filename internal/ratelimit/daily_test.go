package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newLimiter(t *testing.T, limit int, window time.Duration) (*miniredis.Miniredis, *DailyLimiter) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	limiter, err := NewDailyLimiter(client, "test:ratelimit", limit, window)
	if err != nil {
		t.Fatalf("new limiter: %v", err)
	}
	return mr, limiter
}

func TestDailyLimiterBoundary(t *testing.T) {
	_, limiter := newLimiter(t, 3, 24*time.Hour)
	ctx := context.Background()

	for i, wantRemaining := range []int{2, 1, 0} {
		res, err := limiter.Check(ctx, "203.0.113.7")
		if err != nil {
			t.Fatalf("check %d: %v", i+1, err)
		}
		if !res.Allowed || res.Remaining != wantRemaining {
			t.Fatalf("check %d = %+v, want allowed with remaining %d", i+1, res, wantRemaining)
		}
	}

	res, err := limiter.Check(ctx, "203.0.113.7")
	if err != nil {
		t.Fatalf("fourth check: %v", err)
	}
	if res.Allowed || res.Remaining != 0 {
		t.Fatalf("fourth check = %+v, want blocked", res)
	}
}

func TestDailyLimiterWindowReset(t *testing.T) {
	mr, limiter := newLimiter(t, 3, 24*time.Hour)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		if _, err := limiter.Check(ctx, "203.0.113.7"); err != nil {
			t.Fatalf("check %d: %v", i, err)
		}
	}
	mr.FastForward(24*time.Hour + time.Minute)

	res, err := limiter.Check(ctx, "203.0.113.7")
	if err != nil {
		t.Fatalf("check after window: %v", err)
	}
	if !res.Allowed || res.Remaining != 2 {
		t.Fatalf("after window = %+v, want allowed with remaining 2", res)
	}
}

func TestDailyLimiterBlockedDoesNotExtendWindow(t *testing.T) {
	mr, limiter := newLimiter(t, 1, time.Hour)
	ctx := context.Background()

	if _, err := limiter.Check(ctx, "ip-1"); err != nil {
		t.Fatalf("first check: %v", err)
	}
	before := mr.TTL("test:ratelimit:ip-1")
	if _, err := limiter.Check(ctx, "ip-1"); err != nil {
		t.Fatalf("blocked check: %v", err)
	}
	if after := mr.TTL("test:ratelimit:ip-1"); after > before {
		t.Fatalf("blocked request extended the window: %v -> %v", before, after)
	}
}

func TestDailyLimiterIsolatesClients(t *testing.T) {
	_, limiter := newLimiter(t, 1, time.Hour)
	ctx := context.Background()

	if res, _ := limiter.Check(ctx, "ip-1"); !res.Allowed {
		t.Fatal("first client should pass")
	}
	if res, _ := limiter.Check(ctx, "ip-2"); !res.Allowed {
		t.Fatal("second client should be unaffected")
	}
}

func TestDailyLimiterEmptyClientSharesUnknownBucket(t *testing.T) {
	_, limiter := newLimiter(t, 1, time.Hour)
	ctx := context.Background()

	if res, _ := limiter.Check(ctx, ""); !res.Allowed {
		t.Fatal("first unknown should pass")
	}
	if res, _ := limiter.Check(ctx, "   "); res.Allowed {
		t.Fatal("second unknown should share the same bucket")
	}
}

func TestDailyLimiterConstructorValidation(t *testing.T) {
	if _, err := NewDailyLimiter(nil, "p", 1, time.Hour); err == nil {
		t.Fatal("expected error for nil client")
	}
	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	if _, err := NewDailyLimiter(client, "p", 0, time.Hour); err == nil {
		t.Fatal("expected error for zero limit")
	}
}
