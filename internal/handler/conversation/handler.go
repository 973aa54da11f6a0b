package conversation

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/quickbites/support-backend/internal/logging"
	model "github.com/quickbites/support-backend/internal/model/chat"
	chatservice "github.com/quickbites/support-backend/internal/service/chat"
	"github.com/quickbites/support-backend/internal/validation"
	"github.com/quickbites/support-backend/pkg/utils"
)

// Handler serves conversation history retrieval.
type Handler struct {
	store chatservice.Store
}

// New creates the conversation handler.
func New(store chatservice.Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes registers the conversation endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/conversations", h.handleList)
	r.Delete("/conversations", h.handleDelete)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	userID, err := validation.UserID(query.Get("userId"))
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	sessionID, err := validation.SessionID(query.Get("sessionId"))
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	limit, err := validation.Limit(query.Get("limit"))
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	messages, err := h.store.History(r.Context(), userID, sessionID, limit)
	if err != nil {
		logging.Logger.Error("failed to fetch conversations",
			zap.String("userId", userID), zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	// History returns newest first; the API promises chronological order.
	chronological := make([]model.Message, len(messages))
	for i, msg := range messages {
		chronological[len(messages)-1-i] = msg
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"conversations": chronological,
		"count":         len(chronological),
	})
}

// handleDelete is a placeholder; history deletion is not supported yet.
func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	userID, err := validation.UserID(query.Get("userId"))
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"message":   "Conversation deletion not implemented yet",
		"userId":    userID,
		"sessionId": query.Get("sessionId"),
	})
}
