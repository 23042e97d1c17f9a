package postgres

import (
	"context"
	"fmt"

	"ai-learning-lab/internal/domain"
	"github.com/jackc/pgx/v4/pgxpool"
)

// LeaderboardStore appends submissions to the leaderboard_submissions table.
type LeaderboardStore struct {
	pool *pgxpool.Pool
}

func NewLeaderboardStore(pool *pgxpool.Pool) *LeaderboardStore {
	return &LeaderboardStore{pool: pool}
}

func (s *LeaderboardStore) Append(ctx context.Context, collection string, entry domain.LeaderboardEntry) error {
	_, err := s.pool.Exec(ctx, `INSERT INTO leaderboard_submissions
		(collection, submitted_at, session_id, activity_type, score, total_items, display_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		collection, entry.Timestamp, entry.SessionID, string(entry.ActivityType), entry.Score, entry.TotalItems, entry.DisplayName)
	if err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}
	return nil
}

// Count returns the number of submissions in a collection.
func (s *LeaderboardStore) Count(ctx context.Context, collection string) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx, `SELECT count(*) FROM leaderboard_submissions WHERE collection=$1`, collection).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count submissions: %w", err)
	}
	return n, nil
}
