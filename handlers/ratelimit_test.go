package handlers

import (
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestIPRateLimiterSweepsIdleClients(t *testing.T) {
	clock := time.Unix(1_700_000_000, 0)
	l := NewIPRateLimiter(rate.Limit(1), 1)
	l.now = func() time.Time { return clock }

	a := l.GetLimiter("192.0.2.1")
	l.GetLimiter("192.0.2.2")
	if l.Len() != 2 {
		t.Fatalf("tracked %d clients", l.Len())
	}
	if l.GetLimiter("192.0.2.1") != a {
		t.Fatal("same client got a new bucket")
	}

	// .1 keeps talking, .2 goes quiet.
	clock = clock.Add(limiterTTL / 2)
	l.GetLimiter("192.0.2.1")
	clock = clock.Add(limiterTTL/2 + sweepEvery)
	l.GetLimiter("192.0.2.1")

	if l.Len() != 1 {
		t.Fatalf("idle client not swept: %d tracked", l.Len())
	}
	if l.GetLimiter("192.0.2.1") != a {
		t.Fatal("active client lost its bucket")
	}
}

func TestIPRateLimiterSweepIsThrottled(t *testing.T) {
	clock := time.Unix(1_700_000_000, 0)
	l := NewIPRateLimiter(rate.Limit(1), 1)
	l.now = func() time.Time { return clock }

	l.GetLimiter("192.0.2.1")
	clock = clock.Add(limiterTTL + time.Second)
	l.GetLimiter("192.0.2.2")
	if l.Len() != 1 {
		t.Fatalf("expected sweep of the idle client, tracked %d", l.Len())
	}

	clock = clock.Add(limiterTTL + time.Second)
	l.lastSweep = clock
	l.GetLimiter("192.0.2.3")
	if l.Len() != 2 {
		t.Fatalf("sweep ran before its interval, tracked %d", l.Len())
	}
}
