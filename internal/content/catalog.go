// Package content holds the statically authored items for each lab activity.
package content

import (
	"fmt"

	"ai-learning-lab/internal/domain"
)

var riddles = []domain.RiddleItem{
	{
		Title:       "The Face Finder",
		Preamble:    "I unlock your phone just by looking at your face, recognizing your unique features in a split second. I remember you, even if you change your hairstyle!",
		IsAI:        true,
		Explanation: "This is AI! Face recognition uses machine learning to identify unique facial features and adapt to changes in your appearance.",
	},
	{
		Title:       "The Simple Sum Solver",
		Preamble:    "I can add, subtract, multiply, and divide numbers faster than anyone. But I only know the rules you give me; I can't learn new math on my own.",
		IsAI:        false,
		Explanation: "Not AI! This is just a calculator following programmed rules. It doesn't learn or adapt - it just executes mathematical operations.",
	},
	{
		Title:       "The Movie Matchmaker",
		Preamble:    "You finish a show, and I immediately suggest another one you'll probably love, based on everything you've watched before. It's like I know your taste better than you do!",
		IsAI:        true,
		Explanation: "This is AI! Recommendation systems use machine learning to analyze your viewing patterns and predict what you'll enjoy.",
	},
	{
		Title:       "The Voice Listener",
		Preamble:    "You speak a command, and I understand your words, even your accent, and then perform a task like playing music or setting a timer. I can even tell you a joke!",
		IsAI:        true,
		Explanation: "This is AI! Voice assistants use natural language processing and speech recognition to understand and respond to human speech.",
	},
	{
		Title:       "The Snack Dispenser",
		Preamble:    "You put in money, press a button, and I drop your chosen snack. If you press the wrong button, I still drop whatever is assigned to it. I don't care if you're hungry, only if you paid.",
		IsAI:        false,
		Explanation: "Not AI! A vending machine follows simple programmed logic - if payment received and button pressed, dispense item. No learning or decision-making.",
	},
	{
		Title:       "The Email Guard",
		Preamble:    "I guard your inbox, tirelessly sorting through thousands of emails to catch the junk and keep it out of your sight. I learn what 'junk' looks like by seeing millions of examples.",
		IsAI:        true,
		Explanation: "This is AI! Spam filters use machine learning to identify patterns in junk emails and continuously improve their detection abilities.",
	},
	{
		Title:       "The Road Navigator",
		Preamble:    "I navigate busy streets, identify traffic lights, pedestrians, and other vehicles, making decisions about when to stop, go, or turn, all without a human touching the wheel.",
		IsAI:        true,
		Explanation: "This is AI! Self-driving cars use computer vision, sensor fusion, and machine learning to make real-time driving decisions.",
	},
	{
		Title:       "The Time Teller",
		Preamble:    "I wake you up at the exact time you set, every single day, without fail. I don't care if it's a holiday or if you're tired; my job is just to make noise at a specific time.",
		IsAI:        false,
		Explanation: "Not AI! An alarm clock follows a simple timer program - when current time equals set time, make sound. No intelligence required.",
	},
	{
		Title:       "The Quick Reply Helper",
		Preamble:    "When you get an email or a message, I read it and then suggest a few short, quick responses you can tap to send. It's like I'm trying to help you reply faster!",
		IsAI:        true,
		Explanation: "This is AI! Smart reply systems use natural language processing to understand message content and generate contextually appropriate responses.",
	},
	{
		Title:       "The Mood Reader",
		Preamble:    "I listen to your voice or read your text, trying to figure out if you're happy, frustrated, or confused, so a system can respond better to your mood.",
		IsAI:        true,
		Explanation: "This is AI! Sentiment analysis uses machine learning to detect emotions from text or voice patterns and adapt responses accordingly.",
	},
}

var words = []domain.WordItem{
	{Original: "ROBOT"},
	{Original: "CHATBOT"},
	{Original: "ALGORITHM"},
	{Original: "LEARNING"},
	{Original: "DATA"},
	{Original: "VISION"},
	{Original: "LANGUAGE"},
	{Original: "INTELLIGENCE"},
	{Original: "AUTOMATION"},
	{Original: "PREDICT"},
	{Original: "COMPUTER"},
	{Original: "ARTIFICIAL"},
}

var questions = []domain.QuestionItem{
	{
		Question: "Which AI superpower helps machines 'see' and interpret images?",
		Options:  []string{"Natural Language Processing", "Machine Learning", "Computer Vision", "Emotion AI"},
		Answer:   "Computer Vision",
	},
	{
		Question: "What is an example of Machine Learning in action?",
		Options:  []string{"A calculator solving 2+2", "Netflix recommending shows", "A simple alarm clock", "A vending machine dispensing a drink"},
		Answer:   "Netflix recommending shows",
	},
	{
		Question: "Which AI technology allows systems like Siri or Alexa to understand your voice?",
		Options:  []string{"Computer Vision", "Predictive Support", "Natural Language Processing", "Hyper-Personalization"},
		Answer:   "Natural Language Processing",
	},
	{
		Question: "By 2030, what percentage of customer service interactions are expected to be handled by AI?",
		Options:  []string{"10%", "50%", "70%", "90%"},
		Answer:   "90%",
	},
	{
		Question: "Which of these is something humans are generally better at than AI?",
		Options:  []string{"Recognizing patterns", "Performing repetitive tasks", "Empathy", "Processing large datasets quickly"},
		Answer:   "Empathy",
	},
}

// Riddles returns a copy of the "AI or Not" riddles.
func Riddles() []domain.RiddleItem {
	out := make([]domain.RiddleItem, len(riddles))
	copy(out, riddles)
	return out
}

// Words returns a copy of the word scramble list.
func Words() []domain.WordItem {
	out := make([]domain.WordItem, len(words))
	copy(out, words)
	return out
}

// Questions returns a deep copy of the quiz questions.
func Questions() []domain.QuestionItem {
	out := make([]domain.QuestionItem, len(questions))
	for i, q := range questions {
		q.Options = append([]string(nil), q.Options...)
		out[i] = q
	}
	return out
}

// Validate checks the authored catalog invariants.
func Validate() error {
	for i, w := range words {
		if err := ValidateWord(w); err != nil {
			return fmt.Errorf("word %d: %w", i, err)
		}
	}
	for i, q := range questions {
		if err := ValidateQuestion(q); err != nil {
			return fmt.Errorf("question %d: %w", i, err)
		}
	}
	return nil
}

// ValidateWord requires a non-empty word of uppercase ASCII letters.
func ValidateWord(w domain.WordItem) error {
	if w.Original == "" {
		return fmt.Errorf("%w: empty word", domain.ErrValidationFailed)
	}
	for _, r := range w.Original {
		if r < 'A' || r > 'Z' {
			return fmt.Errorf("%w: %q is not uppercase letters", domain.ErrValidationFailed, w.Original)
		}
	}
	return nil
}

// ValidateQuestion requires four options and an answer that is exactly one of them.
func ValidateQuestion(q domain.QuestionItem) error {
	if len(q.Options) != 4 {
		return fmt.Errorf("%w: expected 4 options, got %d", domain.ErrValidationFailed, len(q.Options))
	}
	matches := 0
	for _, opt := range q.Options {
		if opt == q.Answer {
			matches++
		}
	}
	if matches != 1 {
		return fmt.Errorf("%w: answer %q must match exactly one option", domain.ErrValidationFailed, q.Answer)
	}
	return nil
}
