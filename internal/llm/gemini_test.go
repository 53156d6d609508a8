package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"google.golang.org/genai"
)

func newTestGeminiProvider(t *testing.T, handler http.HandlerFunc) *GeminiProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewGeminiProvider(context.Background(), GeminiConfig{
		APIKey:  "test-key",
		Model:   "gemini-flash",
		BaseURL: server.URL + "/",
	})
	if err != nil {
		t.Fatalf("NewGeminiProvider: %v", err)
	}
	return p
}

func TestGeminiProvider_RawText(t *testing.T) {
	var gotPath string
	handler := func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"role":  "model",
					"parts": []map[string]any{{"text": "Sure!\n{\"feedback\":\"✅ Correct!\",\"reaction\":\"🎉\"}"}},
				},
				"finishReason": "STOP",
			}},
			"usageMetadata": map[string]any{
				"promptTokenCount":     120,
				"candidatesTokenCount": 18,
				"totalTokenCount":      138,
			},
		})
	}

	p := newTestGeminiProvider(t, handler)
	resp, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "Question: What is a linked list?"}},
		MaxTokens: 512,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(gotPath, "/models/gemini-2.0-flash:generateContent") {
		t.Errorf("unexpected request path %q", gotPath)
	}
	if !strings.Contains(resp.Content, `"reaction":"🎉"`) {
		t.Errorf("content = %s", resp.Content)
	}
	if resp.Usage.InputTokens != 120 || resp.Usage.OutputTokens != 18 || resp.Usage.TotalTokens != 138 {
		t.Errorf("usage = %+v", resp.Usage)
	}
	if resp.StopReason != "end" {
		t.Errorf("stop reason = %q", resp.StopReason)
	}
}

func TestGeminiProvider_StatusErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		wantRate   bool
		wantStatus int
	}{
		{"bad request", http.StatusBadRequest, false, http.StatusBadRequest},
		{"forbidden", http.StatusForbidden, false, http.StatusForbidden},
		{"rate limited", http.StatusTooManyRequests, true, http.StatusTooManyRequests},
		{"server error", http.StatusInternalServerError, false, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				json.NewEncoder(w).Encode(map[string]any{
					"error": map[string]any{
						"code":    tt.status,
						"message": "upstream says no",
						"status":  http.StatusText(tt.status),
					},
				})
			}
			p := newTestGeminiProvider(t, handler)
			_, err := p.Generate(context.Background(), Request{
				Messages: []Message{{Role: RoleUser, Content: "test"}},
			})
			if err == nil {
				t.Fatal("expected error")
			}
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

func TestGeminiStopReason(t *testing.T) {
	tests := []struct {
		reason genai.FinishReason
		want   string
	}{
		{genai.FinishReasonStop, StopEnd},
		{genai.FinishReasonMaxTokens, StopMaxTokens},
		{genai.FinishReasonSafety, StopFiltered},
		{"", StopEnd},
	}
	for _, tt := range tests {
		if got := geminiStopReason(tt.reason); got != tt.want {
			t.Errorf("geminiStopReason(%q) = %q, want %q", tt.reason, got, tt.want)
		}
	}
}
