package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ethosdigital/agency-ai-platform/internal/api/router"
	"github.com/ethosdigital/agency-ai-platform/internal/app/bootstrap"
	"github.com/ethosdigital/agency-ai-platform/internal/chatbot"
	appconfig "github.com/ethosdigital/agency-ai-platform/internal/config"
	"github.com/ethosdigital/agency-ai-platform/internal/observability/metrics"
	"github.com/ethosdigital/agency-ai-platform/pkg/logging"
)

func main() {
	// Load .env when present; real deployments rely on the environment.
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting agency-ai-platform API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	registry := prometheus.NewRegistry()
	conversationMetrics := metrics.NewConversationMetrics(registry)

	engine, cleanup, err := bootstrap.BuildEngine(context.Background(), cfg, conversationMetrics, logger)
	if err != nil {
		logger.Error("failed to build chatbot engine", "error", err)
		os.Exit(1)
	}

	chatbotHandler := chatbot.NewHandler(engine, logger)

	r := router.New(&router.Config{
		Logger:             logger,
		ChatbotHandler:     chatbotHandler,
		MetricsHandler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitPerSecond: cfg.RateLimitPerSecond,
		RateLimitBurst:     cfg.RateLimitBurst,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		cleanup()
		os.Exit(1)
	}

	cleanup()
	logger.Info("server stopped")
}
