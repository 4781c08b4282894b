package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.etcd.io/bbolt"

	"github.com/alorle/iptv-catalog/cache"
	"github.com/alorle/iptv-catalog/config"
	"github.com/alorle/iptv-catalog/internal/adapter/driven"
	"github.com/alorle/iptv-catalog/internal/adapter/driver"
	"github.com/alorle/iptv-catalog/internal/application"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Create structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	logger.Info("starting iptv-catalog",
		"address", cfg.HTTP.Address,
		"port", cfg.HTTP.Port,
		"db_path", cfg.DB.Path,
		"cache_dir", cfg.Cache.Dir,
		"cache_ttl", cfg.Cache.TTL.String(),
		"fetch_timeout", cfg.Fetch.Timeout.String(),
		"log_level", cfg.LogLevel,
	)

	// Open BoltDB
	db, err := bbolt.Open(cfg.DB.Path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("error closing database", "error", err)
		}
	}()

	// Create driven adapters (repositories and the playlist fetcher)
	sourceRepo, err := driven.NewSourceBoltDBRepository(db)
	if err != nil {
		log.Fatalf("failed to create source repository: %v", err)
	}

	favoriteRepo, err := driven.NewFavoriteBoltDBRepository(db)
	if err != nil {
		log.Fatalf("failed to create favorites repository: %v", err)
	}

	historyRepo, err := driven.NewHistoryBoltDBRepository(db)
	if err != nil {
		log.Fatalf("failed to create history repository: %v", err)
	}

	storage, err := cache.NewFileStorage(cfg.Cache.Dir)
	if err != nil {
		log.Fatalf("failed to create fetch cache: %v", err)
	}

	fetcher := driven.NewPlaylistHTTPFetcher(cfg.Fetch.Timeout, storage, cfg.Cache.TTL, logger)

	// Create application services
	catalogService := application.NewCatalogService(sourceRepo, fetcher, logger)
	libraryService := application.NewLibraryService(favoriteRepo, historyRepo)
	healthService := application.NewHealthService(sourceRepo)

	// Create HTTP handlers
	sourceHandler := driver.NewSourceHTTPHandler(catalogService)
	favoritesHandler := driver.NewFavoritesHTTPHandler(libraryService)
	historyHandler := driver.NewHistoryHTTPHandler(libraryService)
	healthHandler := driver.NewHealthHTTPHandler(healthService)

	// Register API routes
	apiMux := http.NewServeMux()
	apiMux.Handle("/sources", sourceHandler)
	apiMux.Handle("/sources/", sourceHandler)
	apiMux.Handle("/favorites", favoritesHandler)
	apiMux.Handle("/favorites/", favoritesHandler)
	apiMux.Handle("/history", historyHandler)

	rootMux := http.NewServeMux()
	rootMux.Handle("/api/", http.StripPrefix("/api", apiMux))
	rootMux.Handle("/health", healthHandler)
	rootMux.Handle("/metrics", promhttp.Handler())

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.HTTP.Address + ":" + cfg.HTTP.Port,
		Handler:      rootMux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("http server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutdown signal received, shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	logger.Info("server stopped")
}
