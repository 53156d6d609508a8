package llm

import (
	"context"
	"strings"
)

// Provider sends one prompt to a generative text API. Implementations make
// exactly one upstream call per Generate; retrying is the caller's decision.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the configured model, before any server-side aliasing.
	ModelID() string
}

// Request is a prompt. Answer checks send a single user message and no
// system prompt, so the reply is free text the caller has to parse.
type Request struct {
	System   string
	Messages []Message

	MaxTokens int

	// Temperature is passed through when positive. Zero leaves the
	// provider's default in place.
	Temperature float64
}

// UserPrompt builds a single-message request.
func UserPrompt(text string, maxTokens int, temperature float64) Request {
	return Request{
		Messages:    []Message{{Role: RoleUser, Content: text}},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}
}

type Message struct {
	Role    Role
	Content string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Normalized stop reasons.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
	StopFiltered  = "filtered"
)

// Response is the model's reply. Content is the text exactly as the model
// produced it; it may or may not contain JSON.
type Response struct {
	Content    string
	Usage      Usage
	Model      string // model that served the request, when reported
	StopReason string
}

// Text returns the reply with surrounding whitespace removed.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	return strings.TrimSpace(r.Content)
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

func newUsage[T ~int | ~int32 | ~int64](in, out T) Usage {
	return Usage{
		InputTokens:  int(in),
		OutputTokens: int(out),
		TotalTokens:  int(in + out),
	}
}
