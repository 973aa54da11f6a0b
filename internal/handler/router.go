package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/quickbites/support-backend/internal/config"
	chatHandler "github.com/quickbites/support-backend/internal/handler/chat"
	conversationHandler "github.com/quickbites/support-backend/internal/handler/conversation"
	healthHandler "github.com/quickbites/support-backend/internal/handler/health"
	sessionHandler "github.com/quickbites/support-backend/internal/handler/session"
	middlewarePkg "github.com/quickbites/support-backend/internal/middleware"
	aiservice "github.com/quickbites/support-backend/internal/service/ai"
	chatservice "github.com/quickbites/support-backend/internal/service/chat"
	faqservice "github.com/quickbites/support-backend/internal/service/faq"
	"github.com/quickbites/support-backend/internal/service/memory"
)

// Limiters bundles the two rate-limiter instances used by the API: a tight
// one for chat exchanges and a looser one for read endpoints.
type Limiters struct {
	Chat *middlewarePkg.RateLimiter
	API  *middlewarePkg.RateLimiter
}

// NewRouter wires HTTP routes to core services.
func NewRouter(
	cfg *config.Config,
	store chatservice.Store,
	contexts *memory.Builder,
	faqs *faqservice.Matcher,
	provider aiservice.Provider,
	limiters Limiters,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	fallback := aiservice.NewMockProvider()
	chatH := chatHandler.New(store, contexts, faqs, provider, fallback)
	conversationH := conversationHandler.New(store)
	sessionH := sessionHandler.New(store)
	healthH := healthHandler.New(cfg, store)

	r.Route("/api", func(api chi.Router) {
		api.Group(func(g chi.Router) {
			g.Use(middlewarePkg.RateLimit(limiters.Chat))
			chatH.RegisterRoutes(g)
		})

		api.Group(func(g chi.Router) {
			g.Use(middlewarePkg.RateLimit(limiters.API))
			conversationH.RegisterRoutes(g)
			sessionH.RegisterRoutes(g)
		})

		healthH.RegisterRoutes(api)
	})

	return r
}
