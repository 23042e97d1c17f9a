// Package leaderboard appends completed session scores to the shared submission log.
package leaderboard

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"ai-learning-lab/internal/domain"
)

// DefaultAppID namespaces the submission collection.
const DefaultAppID = "ai-camp-canvas"

// Store appends one entry to a collection. Implementations must not deduplicate.
type Store interface {
	Append(ctx context.Context, collection string, entry domain.LeaderboardEntry) error
}

// CollectionPath is the document collection for an application namespace.
func CollectionPath(appID string) string {
	return "artifacts/" + appID + "/public/data/leaderboardSubmissions"
}

// Submitter writes leaderboard entries for one activity session.
// Repeated submissions for the same session are allowed.
type Submitter struct {
	store   Store
	appID   string
	now     func() time.Time
	pending atomic.Bool
}

func NewSubmitter(store Store, appID string) *Submitter {
	return NewSubmitterWithClock(store, appID, time.Now)
}

// NewSubmitterWithClock allows deterministic timestamps in tests.
func NewSubmitterWithClock(store Store, appID string, now func() time.Time) *Submitter {
	if appID == "" {
		appID = DefaultAppID
	}
	return &Submitter{store: store, appID: appID, now: now}
}

// Pending reports whether a submission is in flight.
func (s *Submitter) Pending() bool {
	return s.pending.Load()
}

// Submit appends the score. It fails with ErrNotReady, without any I/O, when the
// identity or store is unavailable.
func (s *Submitter) Submit(ctx context.Context, identity *domain.IdentitySession, activity domain.Activity, score, total int, displayName string) (domain.LeaderboardEntry, error) {
	if identity == nil || identity.ID == "" || s.store == nil {
		return domain.LeaderboardEntry{}, domain.ErrNotReady
	}
	if !s.pending.CompareAndSwap(false, true) {
		return domain.LeaderboardEntry{}, domain.ErrRequestPending
	}
	defer s.pending.Store(false)

	entry := domain.LeaderboardEntry{
		Timestamp:    s.now().UTC(),
		SessionID:    identity.ID,
		ActivityType: activity,
		Score:        score,
		TotalItems:   total,
		DisplayName:  DisplayName(displayName, identity.ID),
	}
	if err := s.store.Append(ctx, CollectionPath(s.appID), entry); err != nil {
		return domain.LeaderboardEntry{}, fmt.Errorf("%w: append submission: %v", domain.ErrTransportFailure, err)
	}
	return entry, nil
}

// DisplayName trims name, falling back to "Anon-" plus the first six characters
// of the session id.
func DisplayName(name, sessionID string) string {
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		return trimmed
	}
	prefix := sessionID
	if len(prefix) > 6 {
		prefix = prefix[:6]
	}
	return "Anon-" + prefix
}
