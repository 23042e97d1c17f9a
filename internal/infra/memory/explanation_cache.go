package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// LoadTimeout bounds a shared load once it no longer follows its first caller.
const LoadTimeout = time.Minute

// ExplanationCache keeps generated explanations in process with a TTL.
type ExplanationCache struct {
	ttl   time.Duration
	clock func() time.Time
	sf    singleflight.Group
	rnd   *rand.Rand
	rndMu sync.Mutex

	mu      sync.RWMutex
	entries map[string]cachedText
}

type cachedText struct {
	text      string
	expiresAt time.Time
}

func NewExplanationCache(ttl time.Duration) *ExplanationCache {
	return NewExplanationCacheWithClock(ttl, time.Now)
}

// NewExplanationCacheWithClock is used by tests to control expiry.
func NewExplanationCacheWithClock(ttl time.Duration, clock func() time.Time) *ExplanationCache {
	return &ExplanationCache{
		ttl:     ttl,
		clock:   clock,
		rnd:     rand.New(rand.NewSource(time.Now().UnixNano())),
		entries: make(map[string]cachedText),
	}
}

// GetOrLoad returns the cached text for key or loads it once for all concurrent callers.
// The shared load is detached from the caller that started it; each caller only
// stops waiting when its own ctx is done.
func (c *ExplanationCache) GetOrLoad(ctx context.Context, key string, load func(context.Context) (string, error)) (string, error) {
	if text, ok := c.lookup(key); ok {
		return text, nil
	}

	ch := c.sf.DoChan(key, func() (interface{}, error) {
		if text, ok := c.lookup(key); ok {
			return text, nil
		}
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), LoadTimeout)
		defer cancel()
		text, err := load(loadCtx)
		if err != nil {
			return "", err
		}
		c.mu.Lock()
		c.entries[key] = cachedText{text: text, expiresAt: c.clock().Add(c.ttlWithJitter())}
		c.mu.Unlock()
		return text, nil
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (c *ExplanationCache) lookup(key string) (string, bool) {
	now := c.clock()
	c.mu.RLock()
	defer c.mu.RUnlock()
	if entry, ok := c.entries[key]; ok && entry.expiresAt.After(now) {
		return entry.text, true
	}
	return "", false
}

func (c *ExplanationCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	c.rndMu.Lock()
	defer c.rndMu.Unlock()
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
