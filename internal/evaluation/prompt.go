package evaluation

import (
	"fmt"
	"strconv"
	"strings"
	"text/template"
)

const promptTemplate = `
Context: {{.Context}}
Question: {{.Question}}
Student Answer: {{.Answer}}
Attempt Number: {{.Attempt}}

Evaluate the student's answer and provide progressive guidance:

FULLY CORRECT ANSWER (must mention "{{.Rule.Term}}" specifically):
- feedback: "✅ Correct! {{.Rule.Correct}}"
- reaction: one of: {{.Celebratory}}

PARTIALLY CORRECT ({{.Rule.PartialWhen}}):
- feedback: "{{.Rule.Partial}}"
- reaction: one of: {{.CloseBut}}

WRONG ANSWER - Progressive Hints (DO NOT reveal the answer):
{{- range $i, $hint := .Rule.Hints}}
- Attempt {{inc $i}}: {{$hint}}
{{- end}}
- Attempt 4: Provide the correct answer with full explanation.
- reaction: {{.Tiers}}

If relevant, use these visualization hints:
{{- range .Rule.Visuals}}
- "{{.}}"
{{- end}}

Return ONLY this JSON:
{
  "feedback": "your feedback here",
  "reaction": "emoji_here"
}`

var tiers = fmt.Sprintf("%s (attempt 1), %s (attempt 2), %s (attempt 3), %s (attempt 4+)",
	ReactionNudge, ReactionHint, ReactionAnalogy, ReactionReveal)

// PromptBuilder renders the grading prompt for one answer.
type PromptBuilder struct {
	rules *RuleBook
	tmpl  *template.Template
}

// NewPromptBuilder creates a builder over the given rule book.
func NewPromptBuilder(rules *RuleBook) *PromptBuilder {
	tmpl := template.Must(template.New("answer-check").
		Funcs(template.FuncMap{"inc": func(i int) int { return i + 1 }}).
		Parse(promptTemplate))
	return &PromptBuilder{rules: rules, tmpl: tmpl}
}

type promptData struct {
	Context     string
	Question    string
	Answer      string
	Attempt     string
	Rule        Rule
	Celebratory string
	CloseBut    string
	Tiers       string
}

// Build renders the prompt for the answer in the given topic. A nil attempt
// is rendered as the first attempt.
func (b *PromptBuilder) Build(topic Topic, question, answer, context string, attempt *int) (string, error) {
	n := 1
	if attempt != nil {
		n = *attempt
	}

	var sb strings.Builder
	err := b.tmpl.Execute(&sb, promptData{
		Context:     context,
		Question:    question,
		Answer:      answer,
		Attempt:     strconv.Itoa(n),
		Rule:        b.rules.Rule(topic),
		Celebratory: strings.Join(Celebratory, " "),
		CloseBut:    strings.Join(CloseBut, " "),
		Tiers:       tiers,
	})
	if err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	return sb.String(), nil
}
