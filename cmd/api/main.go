package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"jobshield/internal/api"
	"jobshield/internal/api/handlers"
	"jobshield/internal/config"
	"jobshield/internal/domain/services"
	"jobshield/internal/highlight"
	"jobshield/internal/infrastructure/cache"
	"jobshield/internal/infrastructure/fetch"
	"jobshield/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadDefault()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	var log *logger.Logger
	if cfg.App.Environment == "production" {
		log = logger.NewProduction()
	} else {
		log = logger.NewDevelopment()
	}
	logger.SetGlobal(log)

	log.Info().
		Str("app", cfg.App.Name).
		Str("env", cfg.App.Environment).
		Str("version", cfg.App.Version).
		Msg("starting JobShield API")

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize cache; the engine runs uncached and unlimited without Redis
	var redisCache *cache.RedisCache
	if cfg.Redis.Enabled {
		redisCache, err = cache.NewRedis(ctx, cfg.Redis, log)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to Redis, continuing without cache")
		}
	}
	defer func() {
		if redisCache != nil {
			redisCache.Close()
		}
	}()

	// Initialize the analysis engine
	matcher := services.NewMatcher()
	extractor := services.NewExtractor(matcher, log)
	scorer := services.NewScorer(cfg.Scoring, log)

	rdap := fetch.NewRDAPClient(cfg.Fetcher.Timeout, log)
	fetcher := fetch.NewHTTPFetcher(cfg.Fetcher, rdap.DomainAgeDays, log)
	linkAnalyzer := services.NewLinkAnalyzer(fetcher, matcher, scorer, redisCache, cfg.Fetcher, log)
	log.Info().Msg("analysis engine initialized")

	projector := highlight.NewProjector(matcher, log)

	// Initialize handlers
	deps := handlers.Dependencies{
		Extractor:    extractor,
		LinkAnalyzer: linkAnalyzer,
		Scorer:       scorer,
		Projector:    projector,
		Cache:        redisCache,
		Logger:       log,
	}
	h := handlers.NewHandlers(deps)

	// Create router
	router := api.NewRouter(*cfg, h, redisCache, log)
	httpHandler := router.Setup()

	// Start HTTP server
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.HTTPPort),
		Handler:      httpHandler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().
			Str("addr", httpServer.Addr).
			Msg("starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down...")

	cancel()

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("shutdown complete")
}
