// Package game implements the per-activity session state machines.
//
// Every activity walks the same path: Presenting(i) -> Revealed(i) ->
// Presenting(i+1) | Completed. Session holds that shared shape; the riddle,
// question and word games add their own input and scoring rules on top.
package game

import (
	"ai-learning-lab/internal/domain"
)

// Phase is the coarse state of a session.
type Phase string

const (
	PhasePresenting Phase = "presenting"
	PhaseRevealed   Phase = "revealed"
	PhaseCompleted  Phase = "completed"
)

// Game is the surface shared by every activity session.
type Game interface {
	Activity() domain.Activity
	Snapshot() Snapshot
	Advance() error
	Reset()
	Score() int
	Total() int
	Completed() bool
}

// Session is the generic linear session over an ordered item list.
// It is not safe for concurrent use; each session is owned by one caller.
type Session[T any] struct {
	items    []T
	position int
	score    int
	phase    Phase
	notice   string
}

// NewSession starts a session at the first item. An empty list starts Completed.
func NewSession[T any](items []T) *Session[T] {
	s := &Session[T]{items: items}
	s.Reset()
	return s
}

// Reset returns to Presenting(0) with a zero score.
func (s *Session[T]) Reset() {
	s.position = 0
	s.score = 0
	s.notice = ""
	s.phase = PhasePresenting
	if len(s.items) == 0 {
		s.phase = PhaseCompleted
	}
}

// Current returns the item at the current position.
func (s *Session[T]) Current() (T, bool) {
	var zero T
	if s.position >= len(s.items) {
		return zero, false
	}
	return s.items[s.position], true
}

func (s *Session[T]) Position() int   { return s.position }
func (s *Session[T]) Total() int      { return len(s.items) }
func (s *Session[T]) Score() int      { return s.score }
func (s *Session[T]) Phase() Phase    { return s.phase }
func (s *Session[T]) Notice() string  { return s.notice }
func (s *Session[T]) Completed() bool { return s.phase == PhaseCompleted }

// SetNotice replaces the user-facing notice without changing state.
func (s *Session[T]) SetNotice(msg string) {
	s.notice = msg
}

// Reveal locks the current item and awards points.
func (s *Session[T]) Reveal(points int) error {
	if s.phase != PhasePresenting {
		return domain.ErrInvalidTransition
	}
	if points > 0 {
		s.score += points
	}
	s.phase = PhaseRevealed
	return nil
}

// Advance moves past a revealed item, completing the session after the last one.
func (s *Session[T]) Advance() error {
	if s.phase != PhaseRevealed {
		return domain.ErrInvalidTransition
	}
	s.notice = ""
	if s.position+1 < len(s.items) {
		s.position++
		s.phase = PhasePresenting
		return nil
	}
	s.position = len(s.items)
	s.phase = PhaseCompleted
	return nil
}

// Snapshot is the client view of a session.
type Snapshot struct {
	Activity domain.Activity `json:"activity"`
	Position int             `json:"position"`
	Total    int             `json:"total"`
	Score    int             `json:"score"`
	Phase    Phase           `json:"phase"`
	Notice   string          `json:"notice,omitempty"`
	Riddle   *RiddleView     `json:"riddle,omitempty"`
	Question *QuestionView   `json:"question,omitempty"`
	Word     *WordView       `json:"word,omitempty"`
}

func baseSnapshot[T any](activity domain.Activity, s *Session[T]) Snapshot {
	return Snapshot{
		Activity: activity,
		Position: s.position,
		Total:    len(s.items),
		Score:    s.score,
		Phase:    s.phase,
		Notice:   s.notice,
	}
}
