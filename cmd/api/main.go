package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portfolio-backend/config"
	_ "portfolio-backend/docs" // Important for Swagger
	v1 "portfolio-backend/internal/delivery/http/v1"
	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/usecase"
	"portfolio-backend/pkg/auth"
	"portfolio-backend/pkg/clock"
	"portfolio-backend/pkg/email"
	"portfolio-backend/pkg/logger"
	"portfolio-backend/pkg/redis"
	"portfolio-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

// @title           Portfolio Backend API
// @version         1.0
// @description     Portfolio page content and contact form relay.
// @host            localhost:8080
// @BasePath        /v1
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	// 2. Setup Logger
	if err := logger.Init(cfg.IsProduction()); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()
	logger.Log.Infow("Starting portfolio backend", "port", cfg.Port)

	// 3. Setup Redis (optional, rate limiting only)
	if err := redis.Initialize(redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword}); err != nil {
		logger.Log.Warnw("Redis unavailable, using in-memory rate limiting", "error", err)
	}
	defer redis.Close()

	// 4. Setup Email Relay
	relay := domain.RelayConfig{
		ServiceID:  cfg.EmailJSServiceID,
		TemplateID: cfg.EmailJSTemplateID,
		PublicKey:  cfg.EmailJSPublicKey,
		PrivateKey: cfg.EmailJSPrivateKey,
	}
	if missing := relay.MissingKeys(); len(missing) > 0 {
		logger.Log.Warnw("Email relay not fully configured - contact form will report a configuration error", "missing", missing)
	}
	relayClient := email.NewRelayClient(cfg)

	// 5. Setup Sessions
	sessions, err := auth.NewSessionManager(cfg.SessionSecret, cfg.SessionIdleTTL)
	if err != nil {
		logger.Log.Errorw("Failed to create session manager", "error", err)
		os.Exit(1)
	}

	// 6. Setup UseCases
	contactUC := usecase.NewContactUsecase(usecase.ContactOptions{
		Relay:       relay,
		Sender:      relayClient,
		Clock:       clock.New(),
		Validate:    validation.New(),
		RevertDelay: cfg.ContactRevertDelay,
		IdleTTL:     cfg.SessionIdleTTL,
		Logger:      logger.Log.Named("contact"),
	})
	portfolioUC := usecase.NewPortfolioUsecase(nil)
	healthUC := usecase.NewHealthUsecase(relay)

	// 7. Setup Router
	router, err := v1.NewRouter(v1.RouterDeps{
		ContactUC:   contactUC,
		PortfolioUC: portfolioUC,
		HealthUC:    healthUC,
		Sessions:    sessions,
		Config:      cfg,
	})
	if err != nil {
		logger.Log.Errorw("Failed to build router", "error", err)
		os.Exit(1)
	}

	// 8. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Errorw("Listen failed", "error", err)
		}
	}()

	// 9. Metrics listener (kept off the public port)
	var metricsSrv *http.Server
	if cfg.MetricsAddr != "" {
		metricsSrv = &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           v1.NewMetricsRouter(),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Log.Errorw("Metrics listen failed", "error", err)
			}
		}()
		logger.Log.Infow("Serving metrics", "addr", cfg.MetricsAddr)
	}

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Errorw("Server forced to shutdown", "error", err)
	}
	if metricsSrv != nil {
		_ = metricsSrv.Shutdown(ctx)
	}

	// Let deliveries already handed to the relay finish
	if err := contactUC.Shutdown(ctx); err != nil {
		logger.Log.Warnw("Contact deliveries still in flight at exit", "error", err)
	}

	logger.Log.Info("Server exiting")
}
