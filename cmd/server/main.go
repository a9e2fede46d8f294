package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deckwise/i18trainer/internal/api"
	"github.com/deckwise/i18trainer/internal/config"
	"github.com/deckwise/i18trainer/internal/db"
	"github.com/deckwise/i18trainer/internal/logger"
	"github.com/deckwise/i18trainer/internal/repository/sqlite"
	"github.com/deckwise/i18trainer/internal/services"
	"github.com/deckwise/i18trainer/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("Illustrious 18 Trainer Starting")
	log.Info("===========================================")
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("save_worker_count=%d", cfg.SaveWorkerCount)
	log.Debug("save_queue_size=%d", cfg.SaveQueueSize)
	log.Debug("history_limit=%d", cfg.HistoryLimit)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	savePool := worker.NewPool(cfg.SaveWorkerCount, cfg.SaveQueueSize)

	sessionStore := sqlite.NewSessionStore(database.DB)
	historyRepo := sqlite.NewHistoryRepository(database.DB)
	sessionService := services.NewSessionService(sessionStore, historyRepo, savePool, cfg.HistoryLimit)

	srv := &api.Server{
		SessionService: sessionService,
	}

	ctx, cancel := context.WithCancel(context.Background())
	savePool.Start(ctx)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	// Drain pending saves before closing the database.
	log.Debug("stopping save pool")
	savePool.Stop()
	cancel()

	log.Info("===========================================")
	log.Info("Illustrious 18 Trainer Stopped")
	log.Info("===========================================")
}
