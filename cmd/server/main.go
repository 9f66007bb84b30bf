package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/OpenNSW/tonban/internal/config"
	"github.com/OpenNSW/tonban/internal/database"
	"github.com/OpenNSW/tonban/internal/dataset"
	"github.com/OpenNSW/tonban/internal/logging"
	"github.com/OpenNSW/tonban/internal/middleware"
	"github.com/OpenNSW/tonban/internal/tonban/router"
	"github.com/OpenNSW/tonban/internal/tonban/service"
	"github.com/OpenNSW/tonban/internal/tonban/store"
)

func main() {
	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logCloser, err := logging.Setup(cfg.Log.Level, cfg.Log.Format, cfg.Log.File)
	if err != nil {
		log.Fatalf("failed to configure logging: %v", err)
	}
	defer logCloser.Close()

	slog.Info("configuration loaded successfully",
		"db_driver", cfg.Database.Driver,
		"dataset_path", cfg.Database.Path,
		"dataset_source", cfg.Dataset.Source,
		"dataset_missing_policy", cfg.Dataset.MissingPolicy,
	)

	slog.Info("server configuration",
		"port", cfg.Server.Port,
		"workers", cfg.Server.Workers,
	)

	ctx := context.Background()

	// Fetch the dataset before anything opens it
	src, err := dataset.NewSourceFromConfig(ctx, cfg.Dataset)
	if err != nil {
		log.Fatalf("failed to initialize dataset source: %v", err)
	}
	if _, err := dataset.Provision(ctx, src, cfg.Database.Path); err != nil {
		log.Fatalf("failed to provision dataset: %v", err)
	}

	ds := database.NewDataset(&cfg.Database)
	defer func() {
		if err := ds.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	// Indexes must be in place before the listener starts
	if ds.Exists() {
		db, err := ds.DB(ctx)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		if err := store.EnsureIndexes(ctx, db); err != nil {
			log.Fatalf("failed to create lookup indexes: %v", err)
		}
	} else {
		slog.Warn("dataset not found, skipping index creation", "path", cfg.Database.Path)
	}

	svc := service.NewTonbanService(store.New(ds), cfg.Dataset.MissingPolicy == config.MissingPolicyError)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(&cfg.CORS),
		middleware.ConcurrencyLimit(cfg.Server.Workers),
	)
	router.NewTonbanRouter(svc, ds).Register(engine)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Start server in a goroutine
	go func() {
		slog.Info("starting server", "addr", fmt.Sprintf("http://0.0.0.0:%d", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("failed to start server", "error", err)
			quit <- syscall.SIGTERM
		}
	}()

	// Wait for interrupt signal
	<-quit
	slog.Info("shutting down server...")

	// Create a context with timeout for graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	} else {
		slog.Info("server gracefully stopped")
	}

	slog.Info("server stopped")
}
