package evaluation

import (
	"regexp"
	"strings"
)

// Topic names the linked-list variant a question is about. The string value
// is the lowercase name used in prompts and audit records.
type Topic string

const (
	TopicLinkedList         Topic = "linked list"
	TopicDoublyLinkedList   Topic = "doubly linked list"
	TopicCircularLinkedList Topic = "circular linked list"
	TopicCircularDoubly     Topic = "circular doubly linked list"
)

// Topics lists every known topic.
var Topics = []Topic{
	TopicLinkedList,
	TopicDoublyLinkedList,
	TopicCircularLinkedList,
	TopicCircularDoubly,
}

// topicRule maps a keyword pattern to a topic. Rules are tried in order and
// the first match wins, so more specific variants must come first.
type topicRule struct {
	pattern *regexp.Regexp
	topic   Topic
}

var topicRules = []topicRule{
	{regexp.MustCompile(`(cdll|circular\s+doubly)`), TopicCircularDoubly},
	{regexp.MustCompile(`(dll|doubly|two\s+pointers?|bidirectional|previous|prev)`), TopicDoublyLinkedList},
	{regexp.MustCompile(`(cll|circular|loop|ring|wrap(-| )?around)`), TopicCircularLinkedList},
}

// ParseTopic returns the known topic matching s, ignoring case and
// surrounding whitespace.
func ParseTopic(s string) (Topic, bool) {
	t := Topic(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Topics {
		if t == known {
			return t, true
		}
	}
	return "", false
}

// DetectTopic classifies a question by keywords in the question and its
// context.
func DetectTopic(question, context string) Topic {
	s := strings.ToLower(question + " " + context)
	for _, r := range topicRules {
		if r.pattern.MatchString(s) {
			return r.topic
		}
	}
	return TopicLinkedList
}

// ResolveTopic prefers a declared topic when it names a known variant and
// falls back to keyword detection otherwise.
func ResolveTopic(declared *string, question, context string) Topic {
	if declared != nil {
		if t, ok := ParseTopic(*declared); ok {
			return t
		}
	}
	return DetectTopic(question, context)
}
