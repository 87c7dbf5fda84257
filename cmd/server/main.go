package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/david/civic-connect/internal/api"
	"github.com/david/civic-connect/internal/config"
	"github.com/david/civic-connect/internal/db"
	"github.com/david/civic-connect/internal/logger"
)

func main() {
	cfgPath := os.Getenv("CONFIG_FILE")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, closer, err := logger.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The store is optional; no route depends on it.
	var store db.Pinger
	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	switch {
	case errors.Is(err, db.ErrNotConfigured):
		log.Info("DATABASE_URL not set; running without a database")
	case err != nil:
		log.WithError(err).Warn("Database unavailable; continuing without it")
	default:
		defer pool.Close()
		store = pool
	}

	srv, err := api.NewServer(cfg, log, store)
	if err != nil {
		log.WithError(err).Fatal("Failed to build server")
	}

	go func() {
		log.WithField("env", cfg.Env).Infof("Server starting on port %s...", cfg.Port)
		if err := srv.Start(":" + cfg.Port); err != nil {
			log.WithError(err).Fatal("Server stopped")
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown failed")
	}
}
