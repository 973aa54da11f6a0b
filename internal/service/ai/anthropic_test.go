package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/quickbites/support-backend/internal/config"
)

func TestAnthropicProviderFoldsContextIntoUserTurn(t *testing.T) {
	var captured anthropicRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/messages" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("x-api-key"); got != "test-key" {
			t.Errorf("unexpected api key header %q", got)
		}
		if got := r.Header.Get("anthropic-version"); got == "" {
			t.Error("missing anthropic-version header")
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{{"type": "text", "text": "Happy to help."}},
		})
	}))
	defer srv.Close()

	p := NewAnthropicProvider(config.AIConfig{
		Provider:     config.ProviderAnthropic,
		AnthropicKey: "test-key",
		BaseURL:      srv.URL,
		MaxTokens:    100,
		Timeout:      5 * time.Second,
	})

	got, err := p.GenerateResponse(context.Background(), "cancel my order", "prior context")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Happy to help." {
		t.Fatalf("unexpected response %q", got)
	}

	if len(captured.Messages) != 1 || captured.Messages[0].Role != "user" {
		t.Fatalf("expected a single user message, got %+v", captured.Messages)
	}
	content := captured.Messages[0].Content
	if !strings.Contains(content, "prior context") || !strings.Contains(content, "cancel my order") {
		t.Fatalf("expected context and prompt folded into the turn, got %q", content)
	}
}

func TestAnthropicProviderSurfacesAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "rate limited"},
		})
	}))
	defer srv.Close()

	p := NewAnthropicProvider(config.AIConfig{
		Provider:     config.ProviderAnthropic,
		AnthropicKey: "test-key",
		BaseURL:      srv.URL,
		Timeout:      5 * time.Second,
	})
	if _, err := p.GenerateResponse(context.Background(), "hello", ""); err == nil {
		t.Fatal("expected an error for a 429 response")
	}
}
