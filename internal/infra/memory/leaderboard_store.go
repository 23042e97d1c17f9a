package memory

import (
	"context"
	"sync"

	"ai-learning-lab/internal/domain"
)

// LeaderboardStore is an append-only in-memory implementation of leaderboard.Store.
type LeaderboardStore struct {
	mu          sync.RWMutex
	collections map[string][]domain.LeaderboardEntry
}

func NewLeaderboardStore() *LeaderboardStore {
	return &LeaderboardStore{
		collections: make(map[string][]domain.LeaderboardEntry),
	}
}

func (s *LeaderboardStore) Append(_ context.Context, collection string, entry domain.LeaderboardEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections[collection] = append(s.collections[collection], entry)
	return nil
}

// Entries returns a copy of a collection in insertion order.
func (s *LeaderboardStore) Entries(collection string) []domain.LeaderboardEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.LeaderboardEntry(nil), s.collections[collection]...)
}
