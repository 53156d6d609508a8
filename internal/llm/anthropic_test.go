package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestAnthropicProvider(t *testing.T, handler http.HandlerFunc) *AnthropicProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewAnthropicProvider(AnthropicConfig{APIKey: "test-key", Model: "claude-haiku", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewAnthropicProvider: %v", err)
	}
	return p
}

func anthropicMessage(stop string, texts ...string) map[string]any {
	var content []map[string]any
	for _, text := range texts {
		content = append(content, map[string]any{"type": "text", "text": text})
	}
	return map[string]any{
		"id":          "msg_test",
		"type":        "message",
		"role":        "assistant",
		"content":     content,
		"model":       "claude-haiku-4-5-20251001",
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 50, "output_tokens": 30},
	}
}

func anthropicError(w http.ResponseWriter, status int, kind string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"type":  "error",
		"error": map[string]any{"type": kind, "message": "upstream says no"},
	})
}

func TestAnthropicProvider_Reply(t *testing.T) {
	var body struct {
		Model     string `json:"model"`
		MaxTokens int    `json:"max_tokens"`
		Messages  []struct {
			Role string `json:"role"`
		} `json:"messages"`
	}
	p := newTestAnthropicProvider(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(anthropicMessage("end_turn", `{"feedback":"💡 Hint: think about what each node stores.","reaction":"💡"}`))
	})

	resp, err := p.Generate(context.Background(), UserPrompt("Question: What does a node store?\nStudent Answer: a value", 256, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body.Model != "claude-haiku-4-5-20251001" || body.MaxTokens != 256 {
		t.Errorf("unexpected request %+v", body)
	}
	if len(body.Messages) != 1 || body.Messages[0].Role != "user" {
		t.Errorf("unexpected messages %+v", body.Messages)
	}
	if resp.Usage != (Usage{InputTokens: 50, OutputTokens: 30, TotalTokens: 80}) {
		t.Errorf("usage = %+v", resp.Usage)
	}
	if resp.StopReason != StopEnd {
		t.Errorf("stop reason = %q", resp.StopReason)
	}
}

func TestAnthropicProvider_JoinsTextBlocks(t *testing.T) {
	p := newTestAnthropicProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(anthropicMessage("max_tokens", "✅ Correct! ", "Each node points to the next."))
	})

	resp, err := p.Generate(context.Background(), UserPrompt("q", 16, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text() != "✅ Correct! Each node points to the next." {
		t.Fatalf("text = %q", resp.Text())
	}
	if resp.StopReason != StopMaxTokens {
		t.Fatalf("stop reason = %q", resp.StopReason)
	}
}

func TestAnthropicProvider_StatusErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		kind       string
		wantRate   bool
		wantStatus int
	}{
		{"bad request", http.StatusBadRequest, "invalid_request_error", false, http.StatusBadRequest},
		{"rate limited", http.StatusTooManyRequests, "rate_limit_error", true, http.StatusTooManyRequests},
		{"server error", http.StatusInternalServerError, "api_error", false, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestAnthropicProvider(t, func(w http.ResponseWriter, r *http.Request) {
				anthropicError(w, tt.status, tt.kind)
			})
			_, err := p.Generate(context.Background(), UserPrompt("q", 16, 0))
			var rl *ErrRateLimit
			if errors.As(err, &rl) != tt.wantRate {
				t.Fatalf("rate limit classification wrong for %v", err)
			}
			if got := StatusCode(err); got != tt.wantStatus {
				t.Fatalf("StatusCode = %d, want %d", got, tt.wantStatus)
			}
		})
	}
}

func TestAnthropicProvider_RetryAfter(t *testing.T) {
	p := newTestAnthropicProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "7")
		anthropicError(w, http.StatusTooManyRequests, "rate_limit_error")
	})

	_, err := p.Generate(context.Background(), UserPrompt("q", 16, 0))
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got: %T (%v)", err, err)
	}
	if rl.RetryAfter != 7*time.Second {
		t.Fatalf("retry after = %s, want 7s", rl.RetryAfter)
	}
}

func TestResolveModel(t *testing.T) {
	tests := []struct {
		models map[string]string
		input  string
		want   string
	}{
		{anthropicModels, "claude-sonnet", "claude-sonnet-4-20250514"},
		{anthropicModels, "claude-haiku", "claude-haiku-4-5-20251001"},
		{anthropicModels, "claude-opus-4-1", "claude-opus-4-1"},
		{geminiModels, "gemini-flash", "gemini-2.0-flash"},
		{openaiModels, "gpt-mini", "gpt-4o-mini"},
		{openaiModels, "gpt-4.1-nano", "gpt-4.1-nano"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.input, tt.models); got != tt.want {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
