package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiterAllow(t *testing.T) {
	l := NewLimiter(1, 2)

	if !l.Allow("llm") {
		t.Error("first call should be allowed")
	}
	if !l.Allow("llm") {
		t.Error("second call within burst should be allowed")
	}
	if l.Allow("llm") {
		t.Error("third call should exceed burst")
	}
}

func TestLimiterKeysAreIndependent(t *testing.T) {
	l := NewLimiter(1, 1)

	if !l.Allow("llm") {
		t.Error("llm should be allowed")
	}
	if !l.Allow("embeddings") {
		t.Error("embeddings has its own budget")
	}
}

func TestLimiterSetRate(t *testing.T) {
	l := NewLimiter(1, 1)
	l.SetRate("llm", 100, 10)

	for i := 0; i < 5; i++ {
		if !l.Allow("llm") {
			t.Fatalf("call %d should be allowed after SetRate", i)
		}
	}
}

func TestLimiterWaitHonorsContext(t *testing.T) {
	l := NewLimiter(0.01, 1)
	l.Allow("llm") // consume the burst

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := l.Wait(ctx, "llm"); err == nil {
		t.Error("expected context deadline error")
	}
}

func TestLimiterDefaultBurst(t *testing.T) {
	l := NewLimiter(1, 0)
	if l.defaultBurst != 5 {
		t.Errorf("defaultBurst = %d, want 5", l.defaultBurst)
	}
}
