package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// IdentityRegistry marks anonymous identities live in Redis so any instance
// can resolve a token issued by another.
type IdentityRegistry struct {
	client *redis.Client
}

func NewIdentityRegistry(client *redis.Client) *IdentityRegistry {
	return &IdentityRegistry{client: client}
}

func (r *IdentityRegistry) Register(ctx context.Context, id string, ttl time.Duration) error {
	return r.client.Set(ctx, r.key(id), "1", ttl).Err()
}

func (r *IdentityRegistry) Active(ctx context.Context, id string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(id)).Result()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *IdentityRegistry) key(id string) string {
	return "identity:session:" + id
}
