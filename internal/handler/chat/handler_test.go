package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	faqmodel "github.com/quickbites/support-backend/internal/model/faq"
	aiservice "github.com/quickbites/support-backend/internal/service/ai"
	chatservice "github.com/quickbites/support-backend/internal/service/chat"
	faqservice "github.com/quickbites/support-backend/internal/service/faq"
	"github.com/quickbites/support-backend/internal/service/memory"
)

func setupRouter() (*chi.Mux, *chatservice.MemoryStore) {
	store := chatservice.NewMemoryStore()
	contexts := memory.NewBuilder(store)
	faqs := faqservice.NewMatcher(faqmodel.NewMemoryStore(faqmodel.Seed()))
	mock := aiservice.NewMockProvider()
	handler := New(store, contexts, faqs, mock, mock)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, store
}

func postChat(t *testing.T, r *chi.Mux, body map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("encoding request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestChatRepliesAndPersistsExchange(t *testing.T) {
	r, store := setupRouter()
	userID := uuid.NewString()

	resp := postChat(t, r, map[string]string{
		"message": "I need a refund for my cold pizza",
		"userId":  userID,
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var parsed chatResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if parsed.Response == "" {
		t.Fatal("expected a non-empty reply")
	}
	if parsed.SessionID == "" {
		t.Fatal("expected a generated session id")
	}
	if parsed.Metadata.Intent != "refund_request" {
		t.Fatalf("expected refund_request intent, got %q", parsed.Metadata.Intent)
	}
	if parsed.Metadata.Timestamp == "" {
		t.Fatal("expected a timestamp in metadata")
	}

	history, err := store.History(context.Background(), userID, parsed.SessionID, 10)
	if err != nil {
		t.Fatalf("fetching history: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected 1 persisted exchange, got %d", len(history))
	}
	if history[0].Response != parsed.Response {
		t.Fatal("expected the persisted response to match the reply")
	}
}

func TestChatReusesProvidedSession(t *testing.T) {
	r, _ := setupRouter()
	sessionID := uuid.NewString()

	resp := postChat(t, r, map[string]string{
		"message":   "where is my order",
		"userId":    uuid.NewString(),
		"sessionId": sessionID,
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var parsed chatResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if parsed.SessionID != sessionID {
		t.Fatalf("expected session %s, got %s", sessionID, parsed.SessionID)
	}
}

func TestChatRejectsMissingMessage(t *testing.T) {
	r, _ := setupRouter()

	resp := postChat(t, r, map[string]string{"userId": uuid.NewString()})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestChatRejectsInvalidUserID(t *testing.T) {
	r, _ := setupRouter()

	resp := postChat(t, r, map[string]string{
		"message": "hello",
		"userId":  "not-a-uuid",
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestChatRejectsInappropriateContent(t *testing.T) {
	r, _ := setupRouter()

	resp := postChat(t, r, map[string]string{
		"message": "this app is a scam",
		"userId":  uuid.NewString(),
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}

	var parsed map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if parsed["error"] != "Inappropriate content detected" {
		t.Fatalf("unexpected error body: %v", parsed)
	}
}

func TestChatRejectsMalformedJSON(t *testing.T) {
	r, _ := setupRouter()

	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}
