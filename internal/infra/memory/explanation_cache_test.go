package memory

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestExplanationCacheCaches(t *testing.T) {
	cache := NewExplanationCache(time.Minute)
	calls := 0
	load := func(context.Context) (string, error) {
		calls++
		return "Robots are machines.", nil
	}

	if _, err := cache.GetOrLoad(context.Background(), "word:ROBOT", load); err != nil {
		t.Fatalf("get: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected loader once, got %d", calls)
	}

	text, err := cache.GetOrLoad(context.Background(), "word:ROBOT", load)
	if err != nil {
		t.Fatalf("get 2: %v", err)
	}
	if calls != 1 || text != "Robots are machines." {
		t.Fatalf("expected cache hit, loader calls %d text %q", calls, text)
	}
}

func TestExplanationCacheExpires(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	cache := NewExplanationCacheWithClock(time.Minute, func() time.Time { return now })
	calls := 0
	load := func(context.Context) (string, error) {
		calls++
		return "text", nil
	}

	_, _ = cache.GetOrLoad(context.Background(), "k", load)
	now = now.Add(2 * time.Minute)
	_, _ = cache.GetOrLoad(context.Background(), "k", load)
	if calls != 2 {
		t.Fatalf("expected reload after expiry, got %d calls", calls)
	}
}

func TestExplanationCacheSkipsFailures(t *testing.T) {
	cache := NewExplanationCache(time.Minute)
	boom := errors.New("boom")
	if _, err := cache.GetOrLoad(context.Background(), "k", func(context.Context) (string, error) { return "", boom }); !errors.Is(err, boom) {
		t.Fatalf("expected loader error, got %v", err)
	}
	text, err := cache.GetOrLoad(context.Background(), "k", func(context.Context) (string, error) { return "ok", nil })
	if err != nil || text != "ok" {
		t.Fatalf("expected failure not cached, got %q %v", text, err)
	}
}

func TestExplanationCacheSharedLoadSurvivesFirstCallerCancel(t *testing.T) {
	cache := NewExplanationCache(time.Minute)
	started := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32
	load := func(ctx context.Context) (string, error) {
		if calls.Add(1) == 1 {
			close(started)
		}
		select {
		case <-release:
			return "Data is information.", nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := cache.GetOrLoad(firstCtx, "word:DATA", load)
		firstErr <- err
	}()
	<-started

	type result struct {
		text string
		err  error
	}
	second := make(chan result, 1)
	go func() {
		text, err := cache.GetOrLoad(context.Background(), "word:DATA", load)
		second <- result{text, err}
	}()
	time.Sleep(50 * time.Millisecond)

	cancelFirst()
	if err := <-firstErr; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected first caller to stop waiting, got %v", err)
	}
	close(release)

	got := <-second
	if got.err != nil || got.text != "Data is information." {
		t.Fatalf("second caller should get the shared result, got %q %v", got.text, got.err)
	}
	if n := calls.Load(); n != 1 {
		t.Fatalf("expected a single shared load, got %d", n)
	}
}
