package game

import (
	"fmt"

	"ai-learning-lab/internal/domain"
)

const noticeSelectAnswer = "Please select an answer!"

// QuestionView is the current multiple choice question.
// Answer is only populated once the question is revealed.
type QuestionView struct {
	Question  string   `json:"question"`
	Options   []string `json:"options"`
	Selection string   `json:"selection,omitempty"`
	Answer    string   `json:"answer,omitempty"`
}

// QuestionGame is the multiple choice quiz. Selection and confirmation are separate steps.
type QuestionGame struct {
	session   *Session[domain.QuestionItem]
	selection string
}

func NewQuestionGame(items []domain.QuestionItem) *QuestionGame {
	g := &QuestionGame{session: NewSession(items)}
	g.refreshNotice()
	return g
}

func (g *QuestionGame) Activity() domain.Activity { return domain.ActivityQuiz }
func (g *QuestionGame) Score() int                { return g.session.Score() }
func (g *QuestionGame) Total() int                { return g.session.Total() }
func (g *QuestionGame) Completed() bool           { return g.session.Completed() }

// Select records a pending choice; it does not reveal the answer.
func (g *QuestionGame) Select(option string) error {
	item, ok := g.session.Current()
	if !ok || g.session.Phase() != PhasePresenting {
		return domain.ErrInvalidTransition
	}
	for _, opt := range item.Options {
		if opt == option {
			g.selection = option
			return nil
		}
	}
	return fmt.Errorf("%w: %q is not an option", domain.ErrValidationFailed, option)
}

// Confirm reveals the current question and scores the pending selection.
// Without a selection it only surfaces a notice.
func (g *QuestionGame) Confirm() error {
	item, ok := g.session.Current()
	if !ok || g.session.Phase() != PhasePresenting {
		return domain.ErrInvalidTransition
	}
	if g.selection == "" {
		g.session.SetNotice(noticeSelectAnswer)
		return nil
	}
	correct := g.selection == item.Answer
	points := 0
	if correct {
		points = 1
	}
	if err := g.session.Reveal(points); err != nil {
		return err
	}
	if correct {
		g.session.SetNotice("Correct! 🎉")
	} else {
		g.session.SetNotice(fmt.Sprintf("Incorrect. The correct answer was: %q", item.Answer))
	}
	return nil
}

func (g *QuestionGame) Advance() error {
	if err := g.session.Advance(); err != nil {
		return err
	}
	g.selection = ""
	g.refreshNotice()
	return nil
}

func (g *QuestionGame) Reset() {
	g.session.Reset()
	g.selection = ""
	g.refreshNotice()
}

func (g *QuestionGame) refreshNotice() {
	if g.session.Completed() {
		g.session.SetNotice(fmt.Sprintf("Quiz Complete! You scored %d out of %d! Great job!", g.session.Score(), g.session.Total()))
	}
}

func (g *QuestionGame) Snapshot() Snapshot {
	snap := baseSnapshot(domain.ActivityQuiz, g.session)
	item, ok := g.session.Current()
	if !ok {
		return snap
	}
	view := &QuestionView{
		Question:  item.Question,
		Options:   append([]string(nil), item.Options...),
		Selection: g.selection,
	}
	if g.session.Phase() == PhaseRevealed {
		view.Answer = item.Answer
	}
	snap.Question = view
	return snap
}
