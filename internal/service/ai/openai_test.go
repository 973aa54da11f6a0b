package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/quickbites/support-backend/internal/config"
)

func openAITestConfig(baseURL string) config.AIConfig {
	return config.AIConfig{
		Provider:    config.ProviderOpenAI,
		OpenAIKey:   "test-key",
		BaseURL:     baseURL,
		MaxTokens:   100,
		Temperature: 0.5,
		Timeout:     5 * time.Second,
	}
}

func TestOpenAIProviderSendsPromptAndContext(t *testing.T) {
	var captured openAIRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "On its way!"}},
			},
		})
	}))
	defer srv.Close()

	p := NewOpenAIProvider(openAITestConfig(srv.URL))
	got, err := p.GenerateResponse(context.Background(), "where is my order", "previous context")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "On its way!" {
		t.Fatalf("unexpected response %q", got)
	}

	if len(captured.Messages) != 3 {
		t.Fatalf("expected system+context+user messages, got %d", len(captured.Messages))
	}
	if captured.Messages[0].Role != "system" {
		t.Fatalf("expected system message first, got %q", captured.Messages[0].Role)
	}
	if captured.Messages[2].Role != "user" || captured.Messages[2].Content != "where is my order" {
		t.Fatalf("expected user message last, got %+v", captured.Messages[2])
	}
}

func TestOpenAIProviderOmitsEmptyContext(t *testing.T) {
	var captured openAIRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "hi"}},
			},
		})
	}))
	defer srv.Close()

	p := NewOpenAIProvider(openAITestConfig(srv.URL))
	if _, err := p.GenerateResponse(context.Background(), "hello", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(captured.Messages) != 2 {
		t.Fatalf("expected system+user only, got %d messages", len(captured.Messages))
	}
}

func TestOpenAIProviderSurfacesAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "bad key"},
		})
	}))
	defer srv.Close()

	p := NewOpenAIProvider(openAITestConfig(srv.URL))
	if _, err := p.GenerateResponse(context.Background(), "hello", ""); err == nil {
		t.Fatal("expected an error for a 401 response")
	}
}
