package evaluation

import (
	"strings"
	"testing"
)

func intp(n int) *int { return &n }

func TestPromptBuilder_Build(t *testing.T) {
	b := NewPromptBuilder(DefaultRuleBook())

	prompt, err := b.Build(TopicDoublyLinkedList,
		"What connects photos bidirectionally?", "two pointers", "Photo viewer lesson", intp(2))
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	wantParts := []string{
		"\nContext: Photo viewer lesson\nQuestion: What connects photos bidirectionally?\nStudent Answer: two pointers\nAttempt Number: 2\n",
		"Evaluate the student's answer and provide progressive guidance:",
		`FULLY CORRECT ANSWER (must mention "doubly linked list" specifically):`,
		`- feedback: "✅ Correct! A doubly linked list has nodes with two pointers`,
		"- reaction: one of: 🎉 🥳 🚀 🏆 🎊",
		"- reaction: one of: 🤨 👌 😅",
		"WRONG ANSWER - Progressive Hints (DO NOT reveal the answer):\n- Attempt 1: \"Think about moving both FORWARD and BACKWARD efficiently...\"\n- Attempt 2:",
		"- Attempt 3: \"Like a photo viewer with Next and Previous buttons.\"\n- Attempt 4: Provide the correct answer with full explanation.\n",
		"- reaction: 🤔 (attempt 1), 💡 (attempt 2), 🚀 (attempt 3), ❌ (attempt 4+)",
		"If relevant, use these visualization hints:\n- \"Think about connecting photos like beads on a string...\"\n",
		"- \"What if each photo could point to both the previous AND next photo?\"\n\nReturn ONLY this JSON:",
	}
	for _, part := range wantParts {
		if !strings.Contains(prompt, part) {
			t.Errorf("prompt missing %q\n---\n%s", part, prompt)
		}
	}
	if !strings.HasSuffix(prompt, "\"reaction\": \"emoji_here\"\n}") {
		t.Errorf("prompt should end with the JSON instruction, got tail %q", prompt[len(prompt)-40:])
	}
}

func TestPromptBuilder_DefaultsAttempt(t *testing.T) {
	b := NewPromptBuilder(DefaultRuleBook())

	prompt, err := b.Build(TopicLinkedList, "What is a node?", "", "", nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !strings.Contains(prompt, "Context: \nQuestion: What is a node?\nStudent Answer: \nAttempt Number: 1\n") {
		t.Errorf("unexpected header:\n%s", prompt)
	}
}

func TestPromptBuilder_EveryTopicHasRules(t *testing.T) {
	b := NewPromptBuilder(DefaultRuleBook())
	for _, topic := range Topics {
		prompt, err := b.Build(topic, "q", "a", "c", intp(1))
		if err != nil {
			t.Fatalf("build %q: %v", topic, err)
		}
		if !strings.Contains(prompt, `must mention "`+string(topic)+`" specifically`) {
			t.Errorf("%q prompt does not name its term", topic)
		}
		if strings.Count(prompt, "- Attempt ") != 4 {
			t.Errorf("%q prompt should list four attempt tiers", topic)
		}
		if !strings.Contains(prompt, "If relevant, use these visualization hints:\n- \"") {
			t.Errorf("%q prompt has no visualization hints", topic)
		}
	}
}

func TestPromptBuilder_KeepsInputVerbatim(t *testing.T) {
	b := NewPromptBuilder(DefaultRuleBook())
	answer := `<b>head</b> & "tail" {{.Question}}`

	prompt, err := b.Build(TopicLinkedList, "q", answer, "", nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !strings.Contains(prompt, "Student Answer: "+answer+"\n") {
		t.Errorf("answer should not be escaped or expanded:\n%s", prompt)
	}
}

func TestRuleBook_UnknownTopicFallsBack(t *testing.T) {
	book := DefaultRuleBook()
	if got := book.Rule("binary tree").Term; got != "linked list" {
		t.Errorf("fallback term = %q, want linked list", got)
	}
}
