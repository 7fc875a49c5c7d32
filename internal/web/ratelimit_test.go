package web

import (
	"testing"
	"time"
)

func TestRateLimiter_Window(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := newRateLimiter(2, time.Minute)
	rl.now = func() time.Time { return now }

	if !rl.allow("1.1.1.1") || !rl.allow("1.1.1.1") {
		t.Fatal("first two requests should be allowed")
	}
	if rl.allow("1.1.1.1") {
		t.Error("third request in window should be denied")
	}
	if !rl.allow("2.2.2.2") {
		t.Error("other clients have their own budget")
	}

	now = now.Add(time.Minute + time.Second)
	if !rl.allow("1.1.1.1") {
		t.Error("request after window should be allowed")
	}
}

func TestRateLimiter_Evict(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := newRateLimiter(5, time.Minute)
	rl.now = func() time.Time { return now }

	rl.allow("1.1.1.1")
	now = now.Add(3 * time.Minute)
	rl.allow("2.2.2.2")
	rl.evict()

	if _, ok := rl.visitors["1.1.1.1"]; ok {
		t.Error("stale visitor should be evicted")
	}
	if _, ok := rl.visitors["2.2.2.2"]; !ok {
		t.Error("recent visitor should be kept")
	}
}
