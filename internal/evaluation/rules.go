package evaluation

// Rule is the grading rubric the model follows for one topic.
type Rule struct {
	// Term is the exact name a fully correct answer must mention.
	Term string

	// Correct explains why the term is right. It follows "✅ Correct!" in
	// the full-credit feedback.
	Correct string

	// PartialWhen describes answers that get partial credit.
	PartialWhen string

	// Partial is the feedback for a partially correct answer.
	Partial string

	// Hints holds the wrong-answer guidance for attempts 1, 2 and 3.
	// Attempt 4 and later reveal the answer.
	Hints [3]string

	// Visuals are analogies the model may borrow when they fit.
	Visuals []string
}

// RuleBook holds the rubric for every topic. It is built once and never
// modified, so one instance can be shared by concurrent requests.
type RuleBook struct {
	rules map[Topic]Rule
}

// Rule returns the rubric for t, falling back to the plain linked list
// rubric for unknown topics.
func (b *RuleBook) Rule(t Topic) Rule {
	if r, ok := b.rules[t]; ok {
		return r
	}
	return b.rules[TopicLinkedList]
}

// DefaultRuleBook returns the built-in rubrics for the four list variants.
func DefaultRuleBook() *RuleBook {
	return &RuleBook{rules: map[Topic]Rule{
		TopicLinkedList: {
			Term:        "linked list",
			Correct:     "A linked list connects nodes where each node points to the next, avoiding array shifts and allowing dynamic growth.",
			PartialWhen: `mentions dynamic memory, pointers, nodes but not the term "linked list"`,
			Partial:     "Good thinking! You're on the right track with dynamic memory and pointers. However, what's the specific NAME of this structure where each node links to the next?",
			Hints: [3]string{
				`Give a gentle nudge: "Think about a structure that doesn't need continuous memory and can insert/remove without shifting many elements."`,
				`More specific hint: "Each element stores data and ONE link to the NEXT element."`,
				`Analogy: "Imagine train coaches connected in one direction, each knows only the next coach."`,
			},
			Visuals: []string{
				"Think about connecting items like beads on a single string.",
				"Each item only points to the NEXT one.",
				"Imagine train coaches, each knows only the next coach.",
			},
		},
		TopicDoublyLinkedList: {
			Term:        "doubly linked list",
			Correct:     "A doubly linked list has nodes with two pointers: previous and next, enabling efficient bidirectional traversal.",
			PartialWhen: "mentions 'two pointers', 'bidirectional', previous/next but not the exact term",
			Partial:     "Good thinking! You're on the right track with two pointers and bidirectional movement. However, what is the specific NAME of this structure?",
			Hints: [3]string{
				`"Think about moving both FORWARD and BACKWARD efficiently..."`,
				`"Each node connects to BOTH its neighbors (prev and next)."`,
				`"Like a photo viewer with Next and Previous buttons."`,
			},
			Visuals: []string{
				"Think about connecting photos like beads on a string...",
				"Imagine each photo knowing about its neighbors...",
				"What if each photo could point to both the previous AND next photo?",
			},
		},
		TopicCircularLinkedList: {
			Term:        "circular linked list",
			Correct:     "In a circular linked list the last node links back to the first, forming a loop for continuous traversal.",
			PartialWhen: "mentions loop, ring, cycle but not the exact term",
			Partial:     "You're close! You're describing a looping structure. What's the NAME for this linked list variant where the last connects to the first?",
			Hints: [3]string{
				`"Think about a list with no true end, it keeps going."`,
				`"The last node's next pointer doesn't point to null."`,
				`"Like a repeating playlist or a round-robin scheduler."`,
			},
			Visuals: []string{
				"Picture a ring where the last bead connects back to the first.",
				"No true end; traversal can continue indefinitely.",
				"Like a playlist that repeats.",
			},
		},
		TopicCircularDoubly: {
			Term:        "circular doubly linked list",
			Correct:     "A circular doubly linked list has prev and next pointers AND the last connects back to the first, enabling looped bidirectional traversal.",
			PartialWhen: "mentions loop + bidirectional / two pointers but not exact term",
			Partial:     "Great intuition! You're describing a loop that also supports back/forward via two pointers. What's the precise NAME of that structure?",
			Hints: [3]string{
				`"Think about a list that loops AND lets you go both ways."`,
				`"Each node knows previous and next; tail links to head too."`,
				`"Like a carousel you can spin left or right forever."`,
			},
			Visuals: []string{
				"A carousel that loops and supports both left and right moves.",
				"Each node knows previous and next; the chain is a closed loop.",
			},
		},
	}}
}
