package evaluation

import (
	"encoding/json"
	"strings"

	"github.com/abhisek/listlab/internal/llm"
)

// Source records which parsing path produced an outcome.
type Source string

const (
	SourceModel     Source = "model"     // well-formed JSON from the model
	SourceHeuristic Source = "heuristic" // free text classified by keywords
	SourceEmpty     Source = "empty"     // the model returned nothing
	SourceError     Source = "error"     // the request failed before parsing
)

// NoFeedback replaces an empty model reply.
const NoFeedback = "No feedback generated."

// FeedbackSchema is the shape the model is asked to reply with. Only a
// string feedback is required; reaction is optional and may be any type.
var FeedbackSchema = &llm.Schema{
	Name:        "answer-feedback",
	Description: "Tutor feedback on a student's answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"feedback": map[string]any{"type": "string"},
			"reaction": map[string]any{},
		},
		"required": []any{"feedback"},
	},
}

type feedbackOutput struct {
	Feedback string `json:"feedback"`
	Reaction any    `json:"reaction"`
}

// Interpret turns the model's raw reply into feedback and a reaction. The
// first well-formed JSON object with a string feedback wins; otherwise the
// reply text itself becomes the feedback and the reaction is picked from
// keywords and the attempt number.
func Interpret(raw string, attempt int) (feedback, reaction string, source Source) {
	if span, ok := extractJSON(raw); ok {
		if out, ok := decodeFeedback(span); ok {
			reaction, _ := out.Reaction.(string)
			if reaction == "" {
				reaction = ReactionForAttempt(attempt)
			}
			return out.Feedback, reaction, SourceModel
		}
	}

	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(lower, "correct"):
		reaction = ReactionCorrect
	case strings.Contains(lower, "partially"):
		reaction = ReactionPartial
	default:
		reaction = ReactionForAttempt(attempt)
	}

	if raw == "" {
		return NoFeedback, reaction, SourceEmpty
	}
	return raw, reaction, SourceHeuristic
}

func decodeFeedback(span string) (feedbackOutput, bool) {
	var out feedbackOutput
	if err := llm.ValidateJSON(FeedbackSchema, json.RawMessage(span)); err != nil {
		return out, false
	}
	if err := json.Unmarshal([]byte(span), &out); err != nil {
		return out, false
	}
	return out, true
}

// extractJSON returns the first balanced top-level {...} span in s. Braces
// inside JSON strings, including escaped quotes, do not count.
func extractJSON(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
