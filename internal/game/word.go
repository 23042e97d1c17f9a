package game

import (
	"fmt"
	"strings"

	"ai-learning-lab/internal/domain"
)

// MaxHints is the per-word hint budget.
const MaxHints = 3

// WordView is the current word scramble round.
type WordView struct {
	Scrambled string `json:"scrambled"`
	Guess     string `json:"guess"`
	HintsUsed int    `json:"hintsUsed"`
	HintsLeft int    `json:"hintsLeft"`
	Solved    bool   `json:"solved"`
	Skipped   bool   `json:"skipped"`
	Original  string `json:"original,omitempty"`
}

// WordGame is the word unscrambling game.
type WordGame struct {
	session   *Session[domain.WordItem]
	scrambler *Scrambler
	scrambled string
	guess     string
	hintsUsed int
	solved    bool
	skipped   bool
}

func NewWordGame(items []domain.WordItem, scrambler *Scrambler) *WordGame {
	if scrambler == nil {
		scrambler = NewScrambler(nil)
	}
	g := &WordGame{session: NewSession(items), scrambler: scrambler}
	g.loadWord()
	return g
}

func (g *WordGame) Activity() domain.Activity { return domain.ActivityWord }
func (g *WordGame) Score() int                { return g.session.Score() }
func (g *WordGame) Total() int                { return g.session.Total() }
func (g *WordGame) Completed() bool           { return g.session.Completed() }
func (g *WordGame) Scrambled() string         { return g.scrambled }
func (g *WordGame) Guess() string             { return g.guess }
func (g *WordGame) HintsUsed() int            { return g.hintsUsed }
func (g *WordGame) Solved() bool              { return g.solved }

// SolvedWord returns the current word once it has been guessed correctly.
func (g *WordGame) SolvedWord() (string, bool) {
	item, ok := g.session.Current()
	if !ok || !g.solved {
		return "", false
	}
	return item.Original, true
}

// SetGuess stores typed input without checking it.
func (g *WordGame) SetGuess(text string) error {
	if g.session.Phase() != PhasePresenting {
		return domain.ErrInvalidTransition
	}
	g.guess = text
	return nil
}

// CheckGuess compares text to the current word, ignoring case and surrounding space.
// A wrong guess only sets a notice; retries are unlimited.
func (g *WordGame) CheckGuess(text string) error {
	item, ok := g.session.Current()
	if !ok || g.session.Phase() != PhasePresenting {
		return domain.ErrInvalidTransition
	}
	g.guess = text
	if strings.ToUpper(strings.TrimSpace(text)) != item.Original {
		g.session.SetNotice("Not quite. Try again!")
		return nil
	}
	points := WordPoints(g.hintsUsed)
	if err := g.session.Reveal(points); err != nil {
		return err
	}
	g.solved = true
	g.session.SetNotice(fmt.Sprintf("Correct! 🎉 +%d points", points))
	return nil
}

// WordPoints is the award for a correct guess after hintsUsed hints.
func WordPoints(hintsUsed int) int {
	return max(10-2*hintsUsed, 1)
}

// Hint reveals one more correct letter in the guess.
func (g *WordGame) Hint() error {
	item, ok := g.session.Current()
	if !ok || g.session.Phase() != PhasePresenting {
		return domain.ErrInvalidTransition
	}
	if g.hintsUsed >= MaxHints {
		g.session.SetNotice("Maximum hints used!")
		return nil
	}
	g.guess = RevealNext(item.Original, strings.ToUpper(g.guess))
	g.hintsUsed++
	g.session.SetNotice(fmt.Sprintf("Hint used! (%d/%d)", g.hintsUsed, MaxHints))
	return nil
}

// Skip reveals the word without scoring. The caller advances after the skip delay.
func (g *WordGame) Skip() error {
	item, ok := g.session.Current()
	if !ok || g.session.Phase() != PhasePresenting {
		return domain.ErrInvalidTransition
	}
	if err := g.session.Reveal(0); err != nil {
		return err
	}
	g.skipped = true
	g.session.SetNotice("Skipped! The word was: " + item.Original)
	return nil
}

// Skipped reports whether the current word was skipped and awaits its advance.
func (g *WordGame) Skipped() bool { return g.skipped }

func (g *WordGame) Advance() error {
	if err := g.session.Advance(); err != nil {
		return err
	}
	g.loadWord()
	return nil
}

func (g *WordGame) Reset() {
	g.session.Reset()
	g.loadWord()
}

func (g *WordGame) loadWord() {
	g.guess = ""
	g.hintsUsed = 0
	g.solved = false
	g.skipped = false
	g.scrambled = ""
	if item, ok := g.session.Current(); ok {
		g.scrambled = g.scrambler.Scramble(item.Original)
		return
	}
	g.session.SetNotice(fmt.Sprintf("Great job unscrambling all the words! Final score: %d", g.session.Score()))
}

func (g *WordGame) Snapshot() Snapshot {
	snap := baseSnapshot(domain.ActivityWord, g.session)
	item, ok := g.session.Current()
	if !ok {
		return snap
	}
	view := &WordView{
		Scrambled: g.scrambled,
		Guess:     g.guess,
		HintsUsed: g.hintsUsed,
		HintsLeft: MaxHints - g.hintsUsed,
		Solved:    g.solved,
		Skipped:   g.skipped,
	}
	if g.session.Phase() == PhaseRevealed {
		view.Original = item.Original
	}
	snap.Word = view
	return snap
}
