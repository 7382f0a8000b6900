package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_AllowWithinBurst(t *testing.T) {
	limiter := NewLimiter(1, 2)

	if !limiter.Allow("openai") {
		t.Error("first request should be allowed")
	}
	if !limiter.Allow("openai") {
		t.Error("second request should be allowed within burst")
	}
	if limiter.Allow("openai") {
		t.Error("third request should exceed burst")
	}
}

func TestLimiter_ProvidersIndependent(t *testing.T) {
	limiter := NewLimiter(1, 1)

	if !limiter.Allow("openai") {
		t.Error("openai first request should be allowed")
	}
	if limiter.Allow("openai") {
		t.Error("openai second request should be limited")
	}

	// A different provider has its own bucket
	if !limiter.Allow("anthropic") {
		t.Error("anthropic should not share openai's bucket")
	}
}

func TestLimiter_SetProviderRate(t *testing.T) {
	limiter := NewLimiter(1, 1)
	limiter.SetProviderRate("ollama", 100, 10)

	for i := 0; i < 10; i++ {
		if !limiter.Allow("ollama") {
			t.Fatalf("request %d should be allowed with burst 10", i)
		}
	}
}

func TestLimiter_WaitHonorsContext(t *testing.T) {
	limiter := NewLimiter(0.1, 1)

	// Drain the burst so the next Wait must block
	if !limiter.Allow("openai") {
		t.Fatal("burst request should be allowed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := limiter.Wait(ctx, "openai"); err == nil {
		t.Error("expected context deadline error from Wait")
	}
}

func TestLimiter_WaitWithDelayCancelled(t *testing.T) {
	limiter := NewLimiter(100, 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := limiter.WaitWithDelay(ctx, "openai", 50*time.Millisecond); err == nil {
		t.Error("expected error from cancelled context")
	}
}
