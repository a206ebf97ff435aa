package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// ============================================================================
// RateLimiter Tests
// ============================================================================

func TestRateLimiter_AllowsWithinBudget(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(RateLimitConfig{Rate: 5, Burst: 2, Window: time.Minute})
	defer rl.Stop()

	// Budget is rate + burst.
	for i := 0; i < 7; i++ {
		allowed, _, _ := rl.Allow("client-a")
		if !allowed {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
}

func TestRateLimiter_BlocksWhenExhausted(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(RateLimitConfig{Rate: 2, Burst: 1, Window: time.Minute})
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		if allowed, _, _ := rl.Allow("client-a"); !allowed {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}

	allowed, remaining, _ := rl.Allow("client-a")
	if allowed {
		t.Error("request beyond budget should be blocked")
	}
	if remaining != 0 {
		t.Errorf("remaining = %d, want 0", remaining)
	}
}

func TestRateLimiter_KeysAreIndependent(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(RateLimitConfig{Rate: 1, Burst: 0, Window: time.Minute})
	defer rl.Stop()

	// Burst of 0 falls back to the default, so drain rate+default burst.
	for {
		if allowed, _, _ := rl.Allow("client-a"); !allowed {
			break
		}
	}

	if allowed, _, _ := rl.Allow("client-b"); !allowed {
		t.Error("a fresh key should not be affected by another key's bucket")
	}
}

func TestRateLimiter_RefillsAfterWindow(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(RateLimitConfig{Rate: 1, Burst: 1, Window: 20 * time.Millisecond})
	defer rl.Stop()

	for {
		if allowed, _, _ := rl.Allow("client-a"); !allowed {
			break
		}
	}

	time.Sleep(30 * time.Millisecond)

	if allowed, _, _ := rl.Allow("client-a"); !allowed {
		t.Error("bucket should refill after the window elapses")
	}
}

// ============================================================================
// RateLimit Middleware Tests
// ============================================================================

func TestRateLimit_SetsHeaders(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(RateLimitConfig{Rate: 10, Burst: 5, Window: time.Minute})
	defer rl.Stop()

	handler := RateLimit(rl)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/activities", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if got := rr.Header().Get("X-RateLimit-Limit"); got != "10" {
		t.Errorf("X-RateLimit-Limit = %q", got)
	}
	if got := rr.Header().Get("X-RateLimit-Remaining"); got == "" {
		t.Error("expected X-RateLimit-Remaining header")
	}
	if got := rr.Header().Get("X-RateLimit-Reset"); got == "" {
		t.Error("expected X-RateLimit-Reset header")
	}
}

func TestRateLimit_Returns429WhenExceeded(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(RateLimitConfig{Rate: 1, Burst: 1, Window: time.Minute})
	defer rl.Stop()

	handler := RateLimit(rl)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	var last *httptest.ResponseRecorder
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/v1/activities", nil)
		req.RemoteAddr = "203.0.113.7:1234"
		last = httptest.NewRecorder()
		handler.ServeHTTP(last, req)
	}

	if last.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", last.Code)
	}
	if got := last.Header().Get("Retry-After"); got == "" {
		t.Error("expected Retry-After header")
	}
}

func TestRateLimit_KeysByUserWhenAuthenticated(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(RateLimitConfig{Rate: 1, Burst: 1, Window: time.Minute})
	defer rl.Stop()

	handler := RateLimit(rl)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(userID string) int {
		req := httptest.NewRequest(http.MethodGet, "/v1/favorites", nil)
		req.RemoteAddr = "203.0.113.7:1234" // same IP for both users
		ctx := context.WithValue(req.Context(), UserIDKey, userID)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req.WithContext(ctx))
		return rr.Code
	}

	// Exhaust user A's budget.
	for send("user:a") == http.StatusOK {
	}

	if code := send("user:b"); code != http.StatusOK {
		t.Errorf("user B should have an independent budget, got %d", code)
	}
}
