package health

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/quickbites/support-backend/internal/config"
	chatservice "github.com/quickbites/support-backend/internal/service/chat"
	"github.com/quickbites/support-backend/pkg/utils"
)

// Handler reports readiness of the service's collaborators.
type Handler struct {
	cfg   *config.Config
	store chatservice.Store
}

// New creates the health handler.
func New(cfg *config.Config, store chatservice.Store) *Handler {
	return &Handler{cfg: cfg, store: store}
}

// RegisterRoutes registers the health endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.handleHealth)
}

type checks struct {
	Environment bool `json:"environment"`
	Database    bool `json:"database"`
	AIProvider  bool `json:"aiProvider"`
	Overall     bool `json:"overall"`
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	var (
		result checks
		errs   []string
	)

	result.Environment = true
	if problems := h.cfg.AI.Validate(); len(problems) > 0 {
		result.Environment = false
		for _, p := range problems {
			errs = append(errs, "Environment: "+p)
		}
	}

	if err := h.store.Ping(r.Context()); err != nil {
		errs = append(errs, "Database: "+err.Error())
	} else {
		result.Database = true
	}

	if h.cfg.AI.Enabled() {
		result.AIProvider = true
	} else {
		errs = append(errs, "AI Provider: credentials missing for provider "+h.cfg.AI.Provider)
	}

	result.Overall = result.Environment && result.Database && result.AIProvider

	status := http.StatusOK
	label := "healthy"
	if !result.Overall {
		status = http.StatusServiceUnavailable
		label = "unhealthy"
	}

	payload := map[string]any{
		"status":    label,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"checks":    result,
	}
	if len(errs) > 0 {
		payload["errors"] = errs
	}

	utils.RespondJSON(w, status, payload)
}
