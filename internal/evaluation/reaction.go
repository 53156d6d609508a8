package evaluation

import (
	"slices"
	"strings"
)

// Reaction emojis returned alongside feedback.
const (
	ReactionNudge   = "🤔"
	ReactionHint    = "💡"
	ReactionAnalogy = "🚀"
	ReactionReveal  = "❌"
	ReactionWarning = "⚠️"

	// ReactionCorrect and ReactionPartial are what the keyword heuristic
	// picks when the model did not answer with JSON.
	ReactionCorrect = "🎉"
	ReactionPartial = "🤨"
)

var (
	// Celebratory reactions mark a fully correct answer.
	Celebratory = []string{"🎉", "🥳", "🚀", "🏆", "🎊"}

	// CloseBut reactions mark a partially correct answer.
	CloseBut = []string{"🤨", "👌", "😅"}
)

// ReactionForAttempt picks the hint-tier reaction for a wrong answer on the
// given 1-based attempt.
func ReactionForAttempt(attempt int) string {
	switch {
	case attempt >= 4:
		return ReactionReveal
	case attempt == 3:
		return ReactionAnalogy
	case attempt == 2:
		return ReactionHint
	default:
		return ReactionNudge
	}
}

// Solved reports whether a reply marks the answer as fully correct. The
// rocket is both celebratory and the third hint tier, so on its own it does
// not count; the "✅" prefix the prompt asks for does.
func Solved(feedback, reaction string) bool {
	if strings.HasPrefix(strings.TrimSpace(feedback), "✅") {
		return true
	}
	return reaction != ReactionAnalogy && slices.Contains(Celebratory, reaction)
}
