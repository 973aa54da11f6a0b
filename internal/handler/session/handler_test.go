package session

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	chatservice "github.com/quickbites/support-backend/internal/service/chat"
)

func setupRouter() *chi.Mux {
	handler := New(chatservice.NewMemoryStore())

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func TestCreateThenListSessions(t *testing.T) {
	r := setupRouter()
	userID := uuid.NewString()

	payload, _ := json.Marshal(map[string]string{"userId": userID})
	req := httptest.NewRequest(http.MethodPost, "/sessions", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var created struct {
		SessionID string `json:"sessionId"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if created.SessionID == "" {
		t.Fatal("expected a session id")
	}

	listReq := httptest.NewRequest(http.MethodGet, "/sessions?userId="+userID, nil)
	listResp := httptest.NewRecorder()
	r.ServeHTTP(listResp, listReq)

	if listResp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", listResp.Code)
	}

	var listed struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(listResp.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if listed.Count != 1 {
		t.Fatalf("expected 1 session, got %d", listed.Count)
	}
}

func TestCreateRequiresValidUserID(t *testing.T) {
	r := setupRouter()

	payload := []byte(`{"userId": "nope"}`)
	req := httptest.NewRequest(http.MethodPost, "/sessions", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestListRequiresUserID(t *testing.T) {
	r := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/sessions", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}
