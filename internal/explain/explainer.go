// Package explain produces short generated explanations and ideas for the lab activities.
package explain

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"ai-learning-lab/internal/domain"
)

var (
	wordConfig = GenerationConfig{Temperature: 0.7, TopK: 1, TopP: 1, MaxOutputTokens: 2048}
	ideaConfig = GenerationConfig{Temperature: 0.9, TopK: 1, TopP: 1, MaxOutputTokens: 2048}
)

// Generator sends one prompt to a text-generation backend.
type Generator interface {
	Generate(ctx context.Context, prompt string, cfg GenerationConfig) (string, error)
}

// Cache stores explanations by key, loading on miss.
type Cache interface {
	GetOrLoad(ctx context.Context, key string, load func(context.Context) (string, error)) (string, error)
}

// Explainer is owned by a single activity session. It allows one request at a
// time and never touches session score or position.
type Explainer struct {
	gen     Generator
	cache   Cache
	pending atomic.Bool
}

// New returns an Explainer; cache may be nil.
func New(gen Generator, cache Cache) *Explainer {
	return &Explainer{gen: gen, cache: cache}
}

// Pending reports whether a request is outstanding.
func (e *Explainer) Pending() bool {
	return e.pending.Load()
}

// ExplainWord explains an AI vocabulary word for a teenage audience.
func (e *Explainer) ExplainWord(ctx context.Context, word string) (string, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return "", fmt.Errorf("%w: word is empty", domain.ErrValidationFailed)
	}
	return e.run(ctx, func(ctx context.Context) (string, error) {
		prompt := WordPrompt(word)
		load := func(ctx context.Context) (string, error) {
			return e.gen.Generate(ctx, prompt, wordConfig)
		}
		if e.cache == nil {
			return load(ctx)
		}
		return e.cache.GetOrLoad(ctx, "word:"+strings.ToUpper(word), load)
	})
}

// GenerateIdea invents a short AI idea around a user keyword.
func (e *Explainer) GenerateIdea(ctx context.Context, keyword string) (string, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return "", domain.ErrKeywordMissing
	}
	return e.run(ctx, func(ctx context.Context) (string, error) {
		return e.gen.Generate(ctx, IdeaPrompt(keyword), ideaConfig)
	})
}

func (e *Explainer) run(ctx context.Context, fn func(context.Context) (string, error)) (string, error) {
	if e.gen == nil {
		return "", fmt.Errorf("%w: no generator", domain.ErrConfigurationMissing)
	}
	if !e.pending.CompareAndSwap(false, true) {
		return "", domain.ErrRequestPending
	}
	defer e.pending.Store(false)
	return fn(ctx)
}

func WordPrompt(word string) string {
	return fmt.Sprintf("Explain the AI term %q in a simple, engaging way for a 13-16 year old, in 1-2 sentences.", word)
}

func IdeaPrompt(keyword string) string {
	return fmt.Sprintf("Generate a fun, creative, and slightly futuristic AI idea based on the keyword %q. Make it sound exciting and briefly explain what it does. Keep it to 1-2 sentences.", keyword)
}
