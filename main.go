package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"nobait/chat"
	"nobait/config"
	"nobait/logging"
	"nobait/vetting"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.Debug)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	assessor := vetting.NewAssessor(
		vetting.DefaultPolicy(),
		vetting.NewWhoisLookup(cfg.WhoisTimeout, logger),
		vetting.NewTLSProbe(cfg.TLSTimeout, logger),
		vetting.WithLookupTimeout(cfg.WhoisTimeout),
		vetting.WithWorkers(cfg.AssessWorkers),
		vetting.WithLogger(logger),
	)

	logger.Warn("No fallback responder configured; unmatched questions get a placeholder reply.")
	bot := chat.NewBot(assessor, nil, cfg.MaxURLsPerMessage, logger)
	chatHandler := chat.NewHandler(bot, chat.NewSessionStore(cfg.SessionTTL), logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.Requests(logger))
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodPost, "/check", vetting.NewCheckHandler(assessor, cfg.MaxURLsPerMessage, logger))
	chatHandler.Routes(r)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Infof("✅ nobait service listening on :%s (%s)", cfg.Port, cfg.Env)
		logger.Info("📍 Endpoints:")
		logger.Info("   POST /check        - URL phishing check")
		logger.Info("   POST /chat/start   - Start chat session")
		logger.Info("   POST /chat         - Send chat message")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("shutdown: %v", err)
	}
}
