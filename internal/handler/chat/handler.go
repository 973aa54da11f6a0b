package chat

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/quickbites/support-backend/internal/analysis/intent"
	"github.com/quickbites/support-backend/internal/logging"
	model "github.com/quickbites/support-backend/internal/model/chat"
	aiservice "github.com/quickbites/support-backend/internal/service/ai"
	chatservice "github.com/quickbites/support-backend/internal/service/chat"
	faqservice "github.com/quickbites/support-backend/internal/service/faq"
	"github.com/quickbites/support-backend/internal/service/memory"
	"github.com/quickbites/support-backend/internal/validation"
	"github.com/quickbites/support-backend/pkg/utils"
)

// Handler serves the chat exchange endpoint.
type Handler struct {
	store    chatservice.Store
	contexts *memory.Builder
	faqs     *faqservice.Matcher
	provider aiservice.Provider
	fallback aiservice.Provider
}

// New creates the chat handler. fallback answers when the primary provider
// fails; pass the mock provider so a reply is always available.
func New(store chatservice.Store, contexts *memory.Builder, faqs *faqservice.Matcher, provider, fallback aiservice.Provider) *Handler {
	return &Handler{
		store:    store,
		contexts: contexts,
		faqs:     faqs,
		provider: provider,
		fallback: fallback,
	}
}

// RegisterRoutes registers the chat endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleChat)
}

type chatRequest struct {
	Message   string `json:"message"`
	UserID    string `json:"userId"`
	SessionID string `json:"sessionId"`
}

type chatMetadata struct {
	Intent    string `json:"intent"`
	Timestamp string `json:"timestamp"`
}

type chatResponse struct {
	Response       string       `json:"response"`
	SessionID      string       `json:"sessionId"`
	ConversationID string       `json:"conversationId,omitempty"`
	Metadata       chatMetadata `json:"metadata"`
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var payload chatRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "request body must be a valid JSON object")
		return
	}

	message, err := validation.Message(payload.Message)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	userID, err := validation.UserID(payload.UserID)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	sessionID, err := validation.SessionID(payload.SessionID)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if !validation.Appropriate(message) {
		utils.RespondJSON(w, http.StatusBadRequest, map[string]string{
			"error":   "Inappropriate content detected",
			"message": "Please keep the conversation professional and appropriate.",
		})
		return
	}

	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	ctx := r.Context()

	// Assemble memory and FAQ context ahead of the user turn. Build never
	// fails; it degrades to an empty context when history is unreachable.
	convCtx := h.contexts.Build(ctx, userID, sessionID, message)
	contextString := memory.FormatForPrompt(convCtx) + h.faqs.ContextBlock(h.faqs.Match(message))

	response, err := h.provider.GenerateResponse(ctx, message, contextString)
	if err != nil {
		logging.Logger.Warn("provider call failed, using fallback response",
			zap.String("userId", userID), zap.Error(err))
		response, err = h.fallback.GenerateResponse(ctx, message, contextString)
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Sorry, I encountered an error while processing your message. Please try again.")
			return
		}
	}

	now := time.Now().UTC()
	metadata := model.Metadata{Intent: intent.Detect(message)}

	// A failure to remember never blocks the reply.
	saved, err := h.store.SaveMessage(ctx, model.Message{
		UserID:    userID,
		SessionID: sessionID,
		Text:      message,
		Response:  response,
		Timestamp: now,
		Metadata:  &metadata,
	})
	if err != nil {
		logging.Logger.Error("failed to persist exchange",
			zap.String("userId", userID), zap.String("sessionId", sessionID), zap.Error(err))
	}
	if _, err := h.store.UpsertSession(ctx, userID, sessionID, map[string]string{
		"user_agent":      r.UserAgent(),
		"last_message_at": now.Format(time.RFC3339),
	}); err != nil {
		logging.Logger.Error("failed to update session activity",
			zap.String("sessionId", sessionID), zap.Error(err))
	}

	utils.RespondJSON(w, http.StatusOK, chatResponse{
		Response:       response,
		SessionID:      sessionID,
		ConversationID: saved.ID,
		Metadata: chatMetadata{
			Intent:    metadata.Intent,
			Timestamp: now.Format(time.RFC3339),
		},
	})
}
