package memory

import (
	"context"
	"sync"
	"time"
)

// IdentityRegistry is an in-memory implementation of identity.Registry.
type IdentityRegistry struct {
	clock func() time.Time

	mu      sync.RWMutex
	expires map[string]time.Time
}

func NewIdentityRegistry() *IdentityRegistry {
	return NewIdentityRegistryWithClock(time.Now)
}

func NewIdentityRegistryWithClock(clock func() time.Time) *IdentityRegistry {
	return &IdentityRegistry{
		clock:   clock,
		expires: make(map[string]time.Time),
	}
}

func (r *IdentityRegistry) Register(_ context.Context, id string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pruneLocked()
	r.expires[id] = r.clock().Add(ttl)
	return nil
}

func (r *IdentityRegistry) Active(_ context.Context, id string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	exp, ok := r.expires[id]
	return ok && exp.After(r.clock()), nil
}

func (r *IdentityRegistry) pruneLocked() {
	now := r.clock()
	for id, exp := range r.expires {
		if !exp.After(now) {
			delete(r.expires, id)
		}
	}
}
