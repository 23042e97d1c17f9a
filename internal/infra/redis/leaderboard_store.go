package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"ai-learning-lab/internal/domain"
	"github.com/redis/go-redis/v9"
)

// LeaderboardStore appends submissions as JSON documents to a Redis list per collection:
// RPUSH {collection} {entry}
type LeaderboardStore struct {
	client *redis.Client
}

func NewLeaderboardStore(client *redis.Client) *LeaderboardStore {
	return &LeaderboardStore{client: client}
}

func (s *LeaderboardStore) Append(ctx context.Context, collection string, entry domain.LeaderboardEntry) error {
	doc, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}
	return s.client.RPush(ctx, collection, doc).Err()
}
