package groq

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func completionBody(content string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "llama-3.1-8b-instant",
		"choices": []map[string]any{
			{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			},
		},
	}
}

func TestComplete_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer gsk-test" {
			t.Errorf("expected bearer auth, got %q", got)
		}

		var req struct {
			Model       string  `json:"model"`
			Temperature float64 `json:"temperature"`
			MaxTokens   int     `json:"max_tokens"`
			Messages    []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
			return
		}
		if req.Model != "llama-3.1-8b-instant" {
			t.Errorf("expected model llama-3.1-8b-instant, got %q", req.Model)
		}
		if req.Temperature != 0.3 {
			t.Errorf("expected temperature 0.3, got %v", req.Temperature)
		}
		if req.MaxTokens != 512 {
			t.Errorf("expected max_tokens 512, got %d", req.MaxTokens)
		}
		if len(req.Messages) != 1 || req.Messages[0].Role != "user" || req.Messages[0].Content != "classify this" {
			t.Errorf("unexpected messages: %+v", req.Messages)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(completionBody(`{"emotion":"sad","confidence":70}`))
	}))
	defer server.Close()

	c := NewClient(Config{
		APIKey:      "gsk-test",
		BaseURL:     server.URL,
		Model:       "llama-3.1-8b-instant",
		Temperature: 0.3,
		MaxTokens:   512,
	})

	out, err := c.Complete(context.Background(), "classify this")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != `{"emotion":"sad","confidence":70}` {
		t.Errorf("unexpected completion %q", out)
	}
}

func TestComplete_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "invalid api key", "type": "invalid_request_error"},
		})
	}))
	defer server.Close()

	c := NewClient(Config{APIKey: "bad", BaseURL: server.URL, Model: "m"})

	_, err := c.Complete(context.Background(), "hi")
	if err == nil {
		t.Fatal("expected error for API error response")
	}
	if !strings.Contains(err.Error(), "api error 401") {
		t.Errorf("expected status in error, got %v", err)
	}
}

func TestComplete_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := completionBody("")
		body["choices"] = []map[string]any{}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(body)
	}))
	defer server.Close()

	c := NewClient(Config{APIKey: "k", BaseURL: server.URL, Model: "m"})

	if _, err := c.Complete(context.Background(), "hi"); err == nil {
		t.Fatal("expected error for empty choices")
	}
}
