package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"ai-learning-lab/internal/content"
	"ai-learning-lab/internal/domain"
	"ai-learning-lab/internal/explain"
	"ai-learning-lab/internal/game"
	"ai-learning-lab/internal/leaderboard"
)

// DefaultSkipDelay is how long a skipped word stays on screen before advancing.
const DefaultSkipDelay = 2 * time.Second

// Authenticator issues and resolves anonymous identities.
type Authenticator interface {
	SignInAnonymously(ctx context.Context) (string, domain.IdentitySession, error)
	Resolve(ctx context.Context, token string) (*domain.IdentitySession, error)
}

// Catalog supplies the items for each activity.
type Catalog struct {
	Riddles   func() []domain.RiddleItem
	Words     func() []domain.WordItem
	Questions func() []domain.QuestionItem
}

// DefaultCatalog serves the authored content.
func DefaultCatalog() Catalog {
	return Catalog{Riddles: content.Riddles, Words: content.Words, Questions: content.Questions}
}

// Options wires the external collaborators. Any of them may be nil; the
// operations that need a missing one fail on use instead of at startup.
type Options struct {
	Catalog   Catalog
	Generator explain.Generator
	Cache     explain.Cache
	Store     leaderboard.Store
	Auth      Authenticator
	AppID     string
	SkipDelay time.Duration
	Scrambler func() *game.Scrambler
}

// LabService opens activity widgets and bootstraps identities.
type LabService struct {
	opts Options
}

func NewLabService(opts Options) *LabService {
	if opts.Catalog.Riddles == nil || opts.Catalog.Words == nil || opts.Catalog.Questions == nil {
		opts.Catalog = DefaultCatalog()
	}
	if opts.SkipDelay <= 0 {
		opts.SkipDelay = DefaultSkipDelay
	}
	if opts.Scrambler == nil {
		opts.Scrambler = func() *game.Scrambler { return game.NewScrambler(nil) }
	}
	return &LabService{opts: opts}
}

// SignIn performs the anonymous sign-in for a new visitor.
func (s *LabService) SignIn(ctx context.Context) (string, domain.IdentitySession, error) {
	if s.opts.Auth == nil {
		return "", domain.IdentitySession{}, fmt.Errorf("sign in: %w: no authenticator", domain.ErrConfigurationMissing)
	}
	return s.opts.Auth.SignInAnonymously(ctx)
}

// Identify resolves a token, returning nil when identity is not available.
func (s *LabService) Identify(ctx context.Context, token string) *domain.IdentitySession {
	if s.opts.Auth == nil || token == "" {
		return nil
	}
	identity, err := s.opts.Auth.Resolve(ctx, token)
	if err != nil {
		log.Printf("identity not resolved: %v", err)
		return nil
	}
	return identity
}

// Open mounts a fresh widget for activity.
func (s *LabService) Open(activity domain.Activity, identity *domain.IdentitySession) (*Widget, error) {
	w := &Widget{
		activity:  activity,
		identity:  identity,
		skipDelay: s.opts.SkipDelay,
		explainer: explain.New(s.opts.Generator, s.opts.Cache),
		submitter: leaderboard.NewSubmitter(s.opts.Store, s.opts.AppID),
	}
	switch activity {
	case domain.ActivityRiddle:
		w.riddle = game.NewRiddleGame(s.opts.Catalog.Riddles())
		w.game = w.riddle
	case domain.ActivityWord:
		w.word = game.NewWordGame(s.opts.Catalog.Words(), s.opts.Scrambler())
		w.game = w.word
	case domain.ActivityQuiz:
		w.question = game.NewQuestionGame(s.opts.Catalog.Questions())
		w.game = w.question
	case domain.ActivityIdea:
	default:
		return nil, domain.ErrUnknownActivity
	}
	return w, nil
}
