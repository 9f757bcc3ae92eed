package middleware

import (
	"testing"
	"time"
)

func TestKeyRateLimiterExhaustsBurst(t *testing.T) {
	limiter := NewKeyRateLimiter(1, time.Hour, 2, time.Hour)

	if !limiter.Allow("1.2.3.4") {
		t.Fatal("first request must pass")
	}
	if !limiter.Allow("1.2.3.4") {
		t.Fatal("second request within burst must pass")
	}
	if limiter.Allow("1.2.3.4") {
		t.Fatal("request beyond burst must be refused")
	}
}

func TestKeyRateLimiterIsolatesKeys(t *testing.T) {
	limiter := NewKeyRateLimiter(1, time.Hour, 1, time.Hour)

	if !limiter.Allow("1.2.3.4") {
		t.Fatal("first key must pass")
	}
	if limiter.Allow("1.2.3.4") {
		t.Fatal("first key must now be refused")
	}
	if !limiter.Allow("5.6.7.8") {
		t.Fatal("a different key must have its own budget")
	}
}

func TestKeyRateLimiterExpiresIdleEntries(t *testing.T) {
	limiter := NewKeyRateLimiter(1, time.Hour, 1, time.Minute).(*keyRateLimiter)

	current := time.Now()
	limiter.now = func() time.Time { return current }

	if !limiter.Allow("1.2.3.4") {
		t.Fatal("first request must pass")
	}
	if limiter.Allow("1.2.3.4") {
		t.Fatal("budget should be spent")
	}

	// A request from any key past the TTL sweeps idle entries; the swept
	// key starts over with a fresh budget.
	current = current.Add(2 * time.Minute)
	limiter.Allow("5.6.7.8")
	if !limiter.Allow("1.2.3.4") {
		t.Fatal("expired entry must reset the budget")
	}
}

func TestKeyRateLimiterEmptyKey(t *testing.T) {
	limiter := NewKeyRateLimiter(1, time.Hour, 1, time.Hour)

	if !limiter.Allow("") {
		t.Fatal("empty key must fall back to a shared bucket")
	}
	if limiter.Allow("") {
		t.Fatal("shared bucket must still be limited")
	}
}
