package domain

import "time"

// Activity identifies one of the lab widgets.
type Activity string

const (
	ActivityRiddle Activity = "riddle"
	ActivityWord   Activity = "word"
	ActivityQuiz   Activity = "quiz"
	ActivityIdea   Activity = "idea"
)

// ParseActivity maps a wire name onto a known activity.
func ParseActivity(raw string) (Activity, error) {
	switch a := Activity(raw); a {
	case ActivityRiddle, ActivityWord, ActivityQuiz, ActivityIdea:
		return a, nil
	}
	return "", ErrUnknownActivity
}

// RiddleItem is one "AI or Not" riddle.
type RiddleItem struct {
	Title       string `json:"title"`
	Preamble    string `json:"preamble"`
	IsAI        bool   `json:"isAI"`
	Explanation string `json:"explanation"`
}

// WordItem is one word to unscramble. Original is uppercase letters only.
type WordItem struct {
	Original string `json:"original"`
}

// QuestionItem models a four-option multiple choice question.
// Answer must be exactly one of Options.
type QuestionItem struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// IdentitySession is the opaque anonymous identity for one app load.
// A nil *IdentitySession means identity is not available yet.
type IdentitySession struct {
	ID       string    `json:"id"`
	IssuedAt time.Time `json:"issuedAt"`
}

// LeaderboardEntry is a single persisted record of a completed session's score.
type LeaderboardEntry struct {
	Timestamp    time.Time `json:"timestamp"`
	SessionID    string    `json:"userId"`
	ActivityType Activity  `json:"activityType"`
	Score        int       `json:"score"`
	TotalItems   int       `json:"totalQuestions"`
	DisplayName  string    `json:"displayName"`
}
