package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/shreedharkb/Speechify/internal/api"
	"github.com/shreedharkb/Speechify/internal/embedding"
	"github.com/shreedharkb/Speechify/internal/grader"
	"github.com/shreedharkb/Speechify/internal/infrastructure/config"
	"github.com/shreedharkb/Speechify/internal/service"
	"github.com/shreedharkb/Speechify/internal/store"

	_ "github.com/shreedharkb/Speechify/docs" // generated swagger docs
)

// @title           SBERT Grading API
// @version         1.0
// @description     Grades free-text answers by semantic similarity to a reference answer.

// @host      localhost:5002
// @BasePath  /

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))

	// ── Encoder ─────────────────────────────────────────────────────
	base, err := embedding.NewProvider(embedding.ProviderConfig{
		Provider:   cfg.EmbeddingProvider,
		URL:        cfg.EmbeddingURL,
		Model:      cfg.EmbeddingModel,
		APIKey:     cfg.EmbeddingAPIKey,
		Timeout:    cfg.EmbeddingTimeout,
		Dimensions: cfg.EmbeddingDims,
	})
	if err != nil {
		logger.Error("failed to create embedding provider", "error", err)
		os.Exit(1)
	}

	cacheCfg := embedding.CacheConfig{
		Size:    cfg.EmbeddingCacheSize,
		Timeout: cfg.EmbeddingTimeout,
		Logger:  logger,
	}
	if cfg.EmbeddingCachePath != "" {
		db, err := store.NewSQLite(cfg.EmbeddingCachePath)
		if err != nil {
			logger.Error("failed to open embedding cache", "path", cfg.EmbeddingCachePath, "error", err)
			os.Exit(1)
		}
		defer db.Close()
		cacheCfg.Store = db

		entries, err := db.CountEmbeddings(context.Background(), base.Model())
		if err != nil {
			logger.Error("failed to read embedding cache", "path", cfg.EmbeddingCachePath, "error", err)
			os.Exit(1)
		}
		logger.Info("embedding cache opened", "path", cfg.EmbeddingCachePath, "model", base.Model(), "entries", entries)
	}

	cached, err := embedding.NewCachedEncoder(embedding.NewLimitedEncoder(base, cfg.EmbeddingMaxConcurrency), cacheCfg)
	if err != nil {
		logger.Error("failed to create embedding cache", "error", err)
		os.Exit(1)
	}

	// The model is loaded once, before any request is accepted.
	warmupCtx, cancelWarmup := context.WithTimeout(context.Background(), cfg.EmbeddingTimeout)
	start := time.Now()
	err = embedding.Warmup(warmupCtx, cached)
	cancelWarmup()
	if err != nil {
		logger.Error("encoder warm-up failed", "provider", cfg.EmbeddingProvider, "model", cached.Model(), "error", err)
		os.Exit(1)
	}
	logger.Info("encoder ready",
		"provider", cfg.EmbeddingProvider,
		"model", cached.Model(),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	// ── Dependencies ────────────────────────────────────────────────
	semantic := grader.NewSemanticGrader(cached, logger)
	gradingSvc := service.NewGradingService(semantic, cfg.BatchWorkers, logger)
	handler := api.NewHandler(gradingSvc, cached.Model(), cfg.MaxBodyBytes, logger)

	// ── Routes ──────────────────────────────────────────────────────
	mux := http.NewServeMux()
	api.RegisterRoutes(mux, handler)

	// Swagger UI served at /swagger/
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// ── Server ──────────────────────────────────────────────────────
	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           api.Wrap(mux, logger),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.EmbeddingTimeout + 30*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down server")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
	}()

	logger.Info("starting server", "address", cfg.ServerAddress)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed to start", "error", err)
		os.Exit(1)
	}
}
