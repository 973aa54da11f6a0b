package session

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/quickbites/support-backend/internal/logging"
	chatservice "github.com/quickbites/support-backend/internal/service/chat"
	"github.com/quickbites/support-backend/internal/validation"
	"github.com/quickbites/support-backend/pkg/utils"
)

// Handler serves session listing and creation.
type Handler struct {
	store chatservice.Store
}

// New creates the session handler.
func New(store chatservice.Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes registers the session endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/sessions", h.handleList)
	r.Post("/sessions", h.handleCreate)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	userID, err := validation.UserID(r.URL.Query().Get("userId"))
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	sessions, err := h.store.UserSessions(r.Context(), userID)
	if err != nil {
		logging.Logger.Error("failed to list sessions",
			zap.String("userId", userID), zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"sessions": sessions,
		"count":    len(sessions),
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "request body must be a valid JSON object")
		return
	}

	userID, err := validation.UserID(payload.UserID)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	sessionID := uuid.NewString()
	session, err := h.store.UpsertSession(r.Context(), userID, sessionID, map[string]string{
		"user_agent": r.UserAgent(),
		"created_at": time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		logging.Logger.Error("failed to create session",
			zap.String("userId", userID), zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	utils.RespondJSON(w, http.StatusCreated, map[string]any{
		"session":   session,
		"sessionId": sessionID,
	})
}
