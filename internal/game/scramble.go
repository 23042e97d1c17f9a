package game

import (
	"math/rand"
	"time"
)

// Scrambler shuffles words so the result never matches the original ordering.
type Scrambler struct {
	rnd *rand.Rand
}

// NewScrambler uses rnd when given; nil seeds from the clock.
func NewScrambler(rnd *rand.Rand) *Scrambler {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Scrambler{rnd: rnd}
}

// Scramble returns a uniformly random permutation of word's letters that differs
// from word. Words with fewer than two distinct letters cannot differ and are
// returned as is.
func (s *Scrambler) Scramble(word string) string {
	letters := []rune(word)
	if !hasDistinctLetters(letters) {
		return word
	}
	for {
		s.rnd.Shuffle(len(letters), func(i, j int) {
			letters[i], letters[j] = letters[j], letters[i]
		})
		if out := string(letters); out != word {
			return out
		}
	}
}

func hasDistinctLetters(letters []rune) bool {
	for i := 1; i < len(letters); i++ {
		if letters[i] != letters[0] {
			return true
		}
	}
	return false
}
