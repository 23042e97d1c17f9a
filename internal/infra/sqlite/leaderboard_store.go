// Package sqlite provides a single-file leaderboard store for deployments without Postgres.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ai-learning-lab/internal/domain"
	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS leaderboard_submissions (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    collection    TEXT    NOT NULL,
    submitted_at  TEXT    NOT NULL,
    session_id    TEXT    NOT NULL,
    activity_type TEXT    NOT NULL,
    score         INTEGER NOT NULL,
    total_items   INTEGER NOT NULL,
    display_name  TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS leaderboard_submissions_collection_idx
    ON leaderboard_submissions (collection, submitted_at);
`

// LeaderboardStore appends submissions to a sqlite database.
type LeaderboardStore struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and ensures the schema exists.
func Open(ctx context.Context, path string) (*LeaderboardStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// sqlite allows a single writer
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &LeaderboardStore{db: db}, nil
}

func (s *LeaderboardStore) Close() error {
	return s.db.Close()
}

func (s *LeaderboardStore) Append(ctx context.Context, collection string, entry domain.LeaderboardEntry) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO leaderboard_submissions
		(collection, submitted_at, session_id, activity_type, score, total_items, display_name)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		collection, entry.Timestamp.UTC().Format(time.RFC3339Nano), entry.SessionID, string(entry.ActivityType),
		entry.Score, entry.TotalItems, entry.DisplayName)
	if err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}
	return nil
}

// Entries returns a collection's submissions in insertion order.
func (s *LeaderboardStore) Entries(ctx context.Context, collection string) ([]domain.LeaderboardEntry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT submitted_at, session_id, activity_type, score, total_items, display_name
		FROM leaderboard_submissions WHERE collection = ? ORDER BY id`, collection)
	if err != nil {
		return nil, fmt.Errorf("query submissions: %w", err)
	}
	defer rows.Close()

	var out []domain.LeaderboardEntry
	for rows.Next() {
		var (
			entry    domain.LeaderboardEntry
			ts       string
			activity string
		)
		if err := rows.Scan(&ts, &entry.SessionID, &activity, &entry.Score, &entry.TotalItems, &entry.DisplayName); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		entry.Timestamp, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("parse timestamp: %w", err)
		}
		entry.ActivityType = domain.Activity(activity)
		out = append(out, entry)
	}
	return out, rows.Err()
}
