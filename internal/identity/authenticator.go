// Package identity issues anonymous per-visit identities.
package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ai-learning-lab/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Registry tracks which anonymous identities are live.
type Registry interface {
	Register(ctx context.Context, id string, ttl time.Duration) error
	Active(ctx context.Context, id string) (bool, error)
}

// Authenticator signs in visitors anonymously and resolves their tokens.
type Authenticator struct {
	secret   []byte
	registry Registry
	ttl      time.Duration
	now      func() time.Time
}

func NewAuthenticator(secret string, registry Registry, ttl time.Duration) *Authenticator {
	return NewAuthenticatorWithClock(secret, registry, ttl, time.Now)
}

// NewAuthenticatorWithClock is used by tests to control token timestamps.
func NewAuthenticatorWithClock(secret string, registry Registry, ttl time.Duration, now func() time.Time) *Authenticator {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Authenticator{secret: []byte(secret), registry: registry, ttl: ttl, now: now}
}

// SignInAnonymously creates a fresh identity and returns its bearer token.
func (a *Authenticator) SignInAnonymously(ctx context.Context) (string, domain.IdentitySession, error) {
	if len(a.secret) == 0 {
		return "", domain.IdentitySession{}, fmt.Errorf("sign in: %w: auth secret not set", domain.ErrConfigurationMissing)
	}
	now := a.now()
	session := domain.IdentitySession{ID: uuid.NewString(), IssuedAt: now.UTC()}

	if a.registry != nil {
		if err := a.registry.Register(ctx, session.ID, a.ttl); err != nil {
			return "", domain.IdentitySession{}, fmt.Errorf("register identity: %w", err)
		}
	}

	claims := jwt.RegisteredClaims{
		Subject:   session.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", domain.IdentitySession{}, fmt.Errorf("sign token: %w", err)
	}
	return token, session, nil
}

// Resolve verifies a token and returns its identity. Every failure is reported
// as ErrNotReady so callers can degrade instead of blocking.
func (a *Authenticator) Resolve(ctx context.Context, token string) (*domain.IdentitySession, error) {
	if token == "" || len(a.secret) == 0 {
		return nil, domain.ErrNotReady
	}
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(a.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNotReady, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: token without subject", domain.ErrNotReady)
	}

	if a.registry != nil {
		active, err := a.registry.Active(ctx, claims.Subject)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrNotReady, err)
		}
		if !active {
			return nil, fmt.Errorf("%w: %v", domain.ErrNotReady, errExpired)
		}
	}

	session := &domain.IdentitySession{ID: claims.Subject}
	if claims.IssuedAt != nil {
		session.IssuedAt = claims.IssuedAt.Time.UTC()
	}
	return session, nil
}

var errExpired = errors.New("identity expired")
