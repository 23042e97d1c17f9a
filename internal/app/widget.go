package app

import (
	"context"
	"time"

	"ai-learning-lab/internal/domain"
	"ai-learning-lab/internal/explain"
	"ai-learning-lab/internal/game"
	"ai-learning-lab/internal/leaderboard"
)

// Widget is one mounted activity. Its state transitions must be driven from a
// single goroutine; Explain, GenerateIdea and Submit may run on another
// goroutine because they only read the values passed to them.
type Widget struct {
	activity  domain.Activity
	identity  *domain.IdentitySession
	skipDelay time.Duration

	game     game.Game
	riddle   *game.RiddleGame
	question *game.QuestionGame
	word     *game.WordGame

	explainer *explain.Explainer
	submitter *leaderboard.Submitter
}

func (w *Widget) Activity() domain.Activity              { return w.activity }
func (w *Widget) Identity() *domain.IdentitySession      { return w.identity }
func (w *Widget) SkipDelay() time.Duration               { return w.skipDelay }
func (w *Widget) SetIdentity(id *domain.IdentitySession) { w.identity = id }

// Snapshot returns the client view. The idea widget has no session state.
func (w *Widget) Snapshot() game.Snapshot {
	if w.game == nil {
		return game.Snapshot{Activity: w.activity, Phase: game.PhasePresenting}
	}
	return w.game.Snapshot()
}

func (w *Widget) SelectAnswer(isAI bool) error {
	if w.riddle == nil {
		return domain.ErrInvalidTransition
	}
	return w.riddle.SelectAnswer(isAI)
}

func (w *Widget) Select(option string) error {
	if w.question == nil {
		return domain.ErrInvalidTransition
	}
	return w.question.Select(option)
}

func (w *Widget) Confirm() error {
	if w.question == nil {
		return domain.ErrInvalidTransition
	}
	return w.question.Confirm()
}

func (w *Widget) Guess(text string) error {
	if w.word == nil {
		return domain.ErrInvalidTransition
	}
	return w.word.CheckGuess(text)
}

func (w *Widget) Type(text string) error {
	if w.word == nil {
		return domain.ErrInvalidTransition
	}
	return w.word.SetGuess(text)
}

func (w *Widget) Hint() error {
	if w.word == nil {
		return domain.ErrInvalidTransition
	}
	return w.word.Hint()
}

// Skip reveals the current word. The caller must call AdvanceSkipped after SkipDelay.
func (w *Widget) Skip() error {
	if w.word == nil {
		return domain.ErrInvalidTransition
	}
	return w.word.Skip()
}

// AdvanceSkipped completes a pending skip. It is a no-op if the word is no
// longer skipped, e.g. after a reset during the delay.
func (w *Widget) AdvanceSkipped() error {
	if w.word == nil || !w.word.Skipped() {
		return nil
	}
	return w.word.Advance()
}

func (w *Widget) Advance() error {
	if w.game == nil {
		return domain.ErrInvalidTransition
	}
	return w.game.Advance()
}

func (w *Widget) Reset() {
	if w.game != nil {
		w.game.Reset()
	}
}

// ExplainTarget returns the solved word to explain.
func (w *Widget) ExplainTarget() (string, error) {
	if w.word == nil {
		return "", domain.ErrInvalidTransition
	}
	word, ok := w.word.SolvedWord()
	if !ok {
		return "", domain.ErrInvalidTransition
	}
	return word, nil
}

func (w *Widget) Explain(ctx context.Context, word string) (string, error) {
	return w.explainer.ExplainWord(ctx, word)
}

func (w *Widget) GenerateIdea(ctx context.Context, keyword string) (string, error) {
	if w.activity != domain.ActivityIdea {
		return "", domain.ErrInvalidTransition
	}
	return w.explainer.GenerateIdea(ctx, keyword)
}

// Submission captures what a score submission will record.
type Submission struct {
	Activity domain.Activity
	Identity *domain.IdentitySession
	Score    int
	Total    int
}

// SubmissionTarget captures the final score of a completed session.
func (w *Widget) SubmissionTarget() (Submission, error) {
	if w.game == nil || !w.game.Completed() {
		return Submission{}, domain.ErrInvalidTransition
	}
	return Submission{
		Activity: w.activity,
		Identity: w.identity,
		Score:    w.game.Score(),
		Total:    w.game.Total(),
	}, nil
}

func (w *Widget) Submit(ctx context.Context, sub Submission, displayName string) (domain.LeaderboardEntry, error) {
	return w.submitter.Submit(ctx, sub.Identity, sub.Activity, sub.Score, sub.Total, displayName)
}
