package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

func newTestOpenAIProvider(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "test-key", Model: "gpt-mini", BaseURL: server.URL + "/v1"})
	if err != nil {
		t.Fatalf("NewOpenAIProvider: %v", err)
	}
	return p
}

func chatCompletion(content, finish string) map[string]any {
	return map[string]any{
		"id":     "chatcmpl-test",
		"object": "chat.completion",
		"model":  "gpt-4o-mini-2024-07-18",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 25, "total_tokens": 65},
	}
}

func TestOpenAIProvider_Reply(t *testing.T) {
	var body openai.ChatCompletionRequest
	p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletion(`{"feedback":"💡 Hint: what does the head point to?","reaction":"💡"}`, "stop"))
	})

	resp, err := p.Generate(context.Background(), UserPrompt("Question: What does a node store?\nStudent Answer: a value", 256, 0.2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body.Model != "gpt-4o-mini" {
		t.Errorf("alias not resolved, sent model %q", body.Model)
	}
	if len(body.Messages) != 1 || body.Messages[0].Role != openai.ChatMessageRoleUser {
		t.Errorf("unexpected messages %+v", body.Messages)
	}
	if body.MaxCompletionTokens != 256 {
		t.Errorf("max tokens = %d", body.MaxCompletionTokens)
	}
	if resp.Usage != (Usage{InputTokens: 40, OutputTokens: 25, TotalTokens: 65}) {
		t.Errorf("usage = %+v", resp.Usage)
	}
	if resp.Model != "gpt-4o-mini-2024-07-18" || resp.StopReason != StopEnd {
		t.Errorf("model %q stop %q", resp.Model, resp.StopReason)
	}
}

func TestOpenAIProvider_StopReasons(t *testing.T) {
	tests := map[string]string{
		"stop":           StopEnd,
		"length":         StopMaxTokens,
		"content_filter": StopFiltered,
	}
	for finish, want := range tests {
		t.Run(finish, func(t *testing.T) {
			p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(chatCompletion("Not quite.", finish))
			})
			resp, err := p.Generate(context.Background(), UserPrompt("q", 16, 0))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp.StopReason != want {
				t.Fatalf("stop reason = %q, want %q", resp.StopReason, want)
			}
		})
	}
}

func TestOpenAIProvider_NoChoicesIsEmptyReply(t *testing.T) {
	p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"id": "x", "model": "gpt-4o-mini", "choices": []any{}})
	})
	resp, err := p.Generate(context.Background(), UserPrompt("q", 16, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text() != "" {
		t.Fatalf("expected empty reply, got %q", resp.Text())
	}
}

func TestOpenAIProvider_StatusErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		wantRate   bool
		wantStatus int
	}{
		{"unauthorized", http.StatusUnauthorized, false, http.StatusUnauthorized},
		{"rate limited", http.StatusTooManyRequests, true, http.StatusTooManyRequests},
		{"server error", http.StatusInternalServerError, false, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				json.NewEncoder(w).Encode(map[string]any{
					"error": map[string]any{"type": "server_error", "message": "upstream says no"},
				})
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

func TestOpenAIProvider_HTMLErrorKeepsStatus(t *testing.T) {
	p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	})
	_, err := p.Generate(context.Background(), UserPrompt("q", 16, 0))
	if got := StatusCode(err); got != http.StatusBadGateway {
		t.Fatalf("StatusCode = %d, want 502 (%v)", got, err)
	}
}

func TestOpenAIProvider_TransportErrorHasNoStatus(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "test-key", BaseURL: url + "/v1"})
	if err != nil {
		t.Fatalf("NewOpenAIProvider: %v", err)
	}
	_, err = p.Generate(context.Background(), UserPrompt("q", 16, 0))
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T (%v)", err, err)
	}
	if unavail.StatusCode != 0 {
		t.Fatalf("expected no status for a refused connection, got %d", unavail.StatusCode)
	}
}

func TestNewOpenAIProvider_RequiresKey(t *testing.T) {
	if _, err := NewOpenAIProvider(OpenAIConfig{Model: "gpt"}); err == nil {
		t.Fatal("expected error for empty API key")
	}
}
