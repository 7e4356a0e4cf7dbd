package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type stubLimiter struct {
	allow   bool
	retry   time.Duration
	err     error
	lastKey string
}

func (s *stubLimiter) Allow(_ context.Context, key string, _ int, _ time.Duration) (bool, time.Duration, error) {
	s.lastKey = key
	return s.allow, s.retry, s.err
}

func serveLimited(rl *RateLimiter, remoteAddr string) *httptest.ResponseRecorder {
	h := rl.Middleware()(okHandler())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/certificates", nil)
	req.RemoteAddr = remoteAddr
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestRateLimiterFailOpenOnBackendError(t *testing.T) {
	rl := NewDistributedRateLimiter(&stubLimiter{err: errors.New("redis down")}, 10, time.Minute, FailOpen, "writes")
	if rr := serveLimited(rl, "10.0.0.1:1111"); rr.Code != http.StatusOK {
		t.Fatalf("expected fail-open to allow request, got %d", rr.Code)
	}
}

func TestRateLimiterFailClosedOnBackendError(t *testing.T) {
	rl := NewDistributedRateLimiter(&stubLimiter{err: errors.New("redis down")}, 10, time.Minute, FailClosed, "writes")
	rr := serveLimited(rl, "10.0.0.1:1111")
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected fail-closed to reject request, got %d", rr.Code)
	}
	if rr.Header().Get("Retry-After") != "60" {
		t.Fatalf("expected window-based retry-after, got %q", rr.Header().Get("Retry-After"))
	}
}

func TestRateLimiterKeysByScopeAndClientIP(t *testing.T) {
	stub := &stubLimiter{allow: true}
	rl := NewDistributedRateLimiter(stub, 10, time.Minute, FailClosed, "writes")
	serveLimited(rl, "192.0.2.7:5555")
	if stub.lastKey != "writes:192.0.2.7" {
		t.Fatalf("unexpected limiter key %q", stub.lastKey)
	}
}

func TestLocalLimiterRejectsAfterBudgetAndResetsWithWindow(t *testing.T) {
	now := time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)
	limiter := NewLocalFixedWindowLimiter().(*localFixedWindowLimiter)
	limiter.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, _, err := limiter.Allow(ctx, "k", 2, time.Minute)
		if err != nil || !ok {
			t.Fatalf("request %d: expected allow, got ok=%v err=%v", i, ok, err)
		}
	}
	ok, retry, _ := limiter.Allow(ctx, "k", 2, time.Minute)
	if ok {
		t.Fatal("expected third request to be rejected")
	}
	if retry != time.Minute {
		t.Fatalf("expected full-window retry, got %v", retry)
	}

	now = now.Add(time.Minute)
	if ok, _, _ := limiter.Allow(ctx, "k", 2, time.Minute); !ok {
		t.Fatal("expected allow after window elapsed")
	}
}

func TestRateLimiterRejectsWithRetryAfter(t *testing.T) {
	rl := NewDistributedRateLimiter(&stubLimiter{allow: false, retry: 1500 * time.Millisecond}, 1, time.Minute, FailClosed, "writes")
	rr := serveLimited(rl, "10.0.0.2:2222")
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rr.Code)
	}
	if rr.Header().Get("Retry-After") != "2" {
		t.Fatalf("expected rounded retry-after 2, got %q", rr.Header().Get("Retry-After"))
	}
}

func TestRedisFixedWindowLimiter(t *testing.T) {
	m := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	limiter := NewRedisFixedWindowLimiter(client, "rl_test")
	ctx := context.Background()

	ok, _, err := limiter.Allow(ctx, "", 1, time.Second)
	if err != nil || !ok {
		t.Fatalf("expected first request allowed, got ok=%v err=%v", ok, err)
	}
	ok, retry, err := limiter.Allow(ctx, "", 1, time.Second)
	if err != nil {
		t.Fatalf("second allow: %v", err)
	}
	if ok {
		t.Fatal("expected second request denied")
	}
	if retry <= 0 {
		t.Fatalf("expected positive retry-after, got %v", retry)
	}
	if !m.Exists("rl_test:unknown") {
		t.Fatal("expected fallback key to be stored")
	}
}

func TestRedisFixedWindowLimiterNilClient(t *testing.T) {
	limiter := NewRedisFixedWindowLimiter(nil, "")
	if _, _, err := limiter.Allow(context.Background(), "k", 1, time.Second); err == nil {
		t.Fatal("expected error for nil client")
	}
}
