package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/dom/aura-backend/internal/api"
	"github.com/dom/aura-backend/internal/api/handlers"
	"github.com/dom/aura-backend/internal/config"
	"github.com/dom/aura-backend/internal/logger"
	"github.com/dom/aura-backend/internal/repository"
	"github.com/dom/aura-backend/internal/repository/memory"
	"github.com/dom/aura-backend/internal/repository/postgres"
	"github.com/dom/aura-backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	appLog, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer appLog.Sync()

	if cfg.IsProduction() && slices.Contains(cfg.CORSAllowedOrigins, "*") {
		appLog.Warn("CORS allows any origin in production", "origins", cfg.CORSAllowedOrigins)
	}

	// Initialize storage
	repos, store, closeStore, err := openStorage(cfg, appLog)
	if err != nil {
		appLog.Fatal("failed to open storage", "storage", cfg.Storage, "error", err)
	}
	defer closeStore()

	// Initialize services
	services := service.NewServices(repos, cfg, appLog)

	// Initialize router
	router := api.NewRouter(services, store, cfg, appLog)

	// Create server
	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 35 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		appLog.Info("server starting", "port", cfg.Port, "storage", cfg.Storage, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Fatal("failed to start server", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLog.Info("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLog.Error("server forced to shutdown", "error", err)
		return
	}

	appLog.Info("server stopped")
}

func openStorage(cfg *config.Config, log *logger.Logger) (*repository.Repositories, handlers.Pinger, func(), error) {
	if cfg.Storage == config.StorageMemory {
		log.Warn("using in-memory storage; data is lost on restart")
		return memory.NewRepositories(), nil, func() {}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn, err := postgres.NewConnection(ctx, cfg.DatabaseURL, postgres.Options{
		MaxConns: int32(cfg.DBMaxConns),
		Migrate:  cfg.MigrateOnRun,
	}, log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("connect to database: %w", err)
	}

	return postgres.NewRepositories(conn.DB), conn, conn.Close, nil
}
