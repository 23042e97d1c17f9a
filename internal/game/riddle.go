package game

import (
	"ai-learning-lab/internal/domain"
)

// RiddleView is the current riddle as shown to the player.
type RiddleView struct {
	Title       string `json:"title"`
	Preamble    string `json:"preamble"`
	Selection   *bool  `json:"selection,omitempty"`
	IsAI        *bool  `json:"isAI,omitempty"`
	Correct     *bool  `json:"correct,omitempty"`
	Explanation string `json:"explanation,omitempty"`
}

// RiddleGame is the "AI or Not" quiz. Selecting an answer reveals it immediately.
type RiddleGame struct {
	session   *Session[domain.RiddleItem]
	selection *bool
}

func NewRiddleGame(items []domain.RiddleItem) *RiddleGame {
	g := &RiddleGame{session: NewSession(items)}
	g.refreshNotice()
	return g
}

func (g *RiddleGame) Activity() domain.Activity { return domain.ActivityRiddle }
func (g *RiddleGame) Score() int                { return g.session.Score() }
func (g *RiddleGame) Total() int                { return g.session.Total() }
func (g *RiddleGame) Completed() bool           { return g.session.Completed() }

// SelectAnswer records the player's classification and reveals the riddle.
func (g *RiddleGame) SelectAnswer(isAI bool) error {
	item, ok := g.session.Current()
	if !ok || g.session.Phase() != PhasePresenting {
		return domain.ErrInvalidTransition
	}
	points := 0
	if isAI == item.IsAI {
		points = 1
	}
	if err := g.session.Reveal(points); err != nil {
		return err
	}
	g.selection = &isAI
	if points > 0 {
		g.session.SetNotice("Correct!")
	} else {
		g.session.SetNotice("Incorrect!")
	}
	return nil
}

func (g *RiddleGame) Advance() error {
	if err := g.session.Advance(); err != nil {
		return err
	}
	g.selection = nil
	g.refreshNotice()
	return nil
}

func (g *RiddleGame) Reset() {
	g.session.Reset()
	g.selection = nil
	g.refreshNotice()
}

func (g *RiddleGame) refreshNotice() {
	if g.session.Completed() {
		g.session.SetNotice(riddleRating(g.session.Score()))
	}
}

func (g *RiddleGame) Snapshot() Snapshot {
	snap := baseSnapshot(domain.ActivityRiddle, g.session)
	item, ok := g.session.Current()
	if !ok {
		return snap
	}
	view := &RiddleView{Title: item.Title, Preamble: item.Preamble}
	if g.session.Phase() == PhaseRevealed && g.selection != nil {
		isAI := item.IsAI
		correct := *g.selection == item.IsAI
		view.Selection = g.selection
		view.IsAI = &isAI
		view.Correct = &correct
		view.Explanation = item.Explanation
	}
	snap.Riddle = view
	return snap
}

func riddleRating(score int) string {
	switch {
	case score >= 8:
		return "Outstanding! You're an AI detective!"
	case score >= 6:
		return "Great job! You've got a good eye for AI!"
	case score >= 4:
		return "Not bad! Keep learning about AI!"
	}
	return "Keep exploring! AI is everywhere once you know how to spot it!"
}
