package redis

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// LoadTimeout bounds a shared load once it no longer follows its first caller.
const LoadTimeout = time.Minute

// ExplanationCache stores generated explanations in Redis so every instance
// shares them. Keys are laid out as: SET explain:{key} {text} EX ttl
type ExplanationCache struct {
	client *redis.Client
	ttl    time.Duration
	sf     singleflight.Group
	rndMu  sync.Mutex
	rnd    *rand.Rand
}

func NewExplanationCache(client *redis.Client, ttl time.Duration) *ExplanationCache {
	return &ExplanationCache{
		client: client,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// GetOrLoad returns the cached text for key, loading it once across concurrent
// callers. The shared load outlives the caller that started it.
func (c *ExplanationCache) GetOrLoad(ctx context.Context, key string, load func(context.Context) (string, error)) (string, error) {
	redisKey := c.key(key)
	if text, err := c.client.Get(ctx, redisKey).Result(); err == nil {
		return text, nil
	}

	ch := c.sf.DoChan(key, func() (interface{}, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), LoadTimeout)
		defer cancel()
		// Re-check cache in case another goroutine filled it.
		text, err := c.client.Get(loadCtx, redisKey).Result()
		if err == nil {
			return text, nil
		}
		if !errors.Is(err, redis.Nil) {
			// cache unavailable; still serve the request
			return load(loadCtx)
		}

		text, err = load(loadCtx)
		if err != nil {
			return "", err
		}
		// best-effort fill
		_ = c.client.Set(loadCtx, redisKey, text, c.ttlWithJitter()).Err()
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

func (c *ExplanationCache) key(key string) string {
	return "explain:" + key
}

func (c *ExplanationCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	c.rndMu.Lock()
	defer c.rndMu.Unlock()
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
