package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/quickbites/support-backend/internal/config"
	"github.com/quickbites/support-backend/internal/handler"
	"github.com/quickbites/support-backend/internal/logging"
	"github.com/quickbites/support-backend/internal/middleware"
	faqmodel "github.com/quickbites/support-backend/internal/model/faq"
	aiservice "github.com/quickbites/support-backend/internal/service/ai"
	chatservice "github.com/quickbites/support-backend/internal/service/chat"
	faqservice "github.com/quickbites/support-backend/internal/service/faq"
	"github.com/quickbites/support-backend/internal/service/memory"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logging.Init(cfg.LogDir)
	defer logging.Sync()

	store, err := newStore(cfg.Store)
	if err != nil {
		logging.Logger.Fatal("failed to initialize store", zap.Error(err))
	}
	defer store.Close()

	if problems := cfg.AI.Validate(); len(problems) > 0 {
		for _, p := range problems {
			logging.Logger.Warn("configuration problem", zap.String("problem", p))
		}
		logging.Logger.Warn("replies will come from the deterministic mock until this is fixed")
	}
	provider := aiservice.NewProvider(cfg.AI)

	faqs := faqservice.NewMatcher(faqmodel.NewMemoryStore(faqmodel.Seed()))
	contexts := memory.NewBuilder(store)

	limiters := handler.Limiters{
		Chat: middleware.NewRateLimiter(cfg.RateLimit.ChatPerMinute, time.Minute),
		API:  middleware.NewRateLimiter(cfg.RateLimit.APIPerMinute, time.Minute),
	}
	limiters.Chat.StartCleanup(5*time.Minute, ctx.Done())
	limiters.API.StartCleanup(5*time.Minute, ctx.Done())

	router := handler.NewRouter(cfg, store, contexts, faqs, provider, limiters)

	startServer(ctx, cfg.Server, router)
}

func newStore(cfg config.StoreConfig) (chatservice.Store, error) {
	if cfg.Provider == config.StoreSQLite {
		logging.Logger.Info("using sqlite store", zap.String("path", cfg.Path))
		return chatservice.NewSQLiteStore(cfg.Path)
	}
	logging.Logger.Info("using in-memory store; conversations will not survive restarts")
	return chatservice.NewMemoryStore(), nil
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logging.Logger.Info("support backend listening", zap.String("addr", serverCfg.Addr))
	if err := runServer(ctx, srv); err != nil {
		logging.Logger.Fatal("server error", zap.Error(err))
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
