package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"

	"wallet_client/internal/infrastructure/configloader"
	"wallet_client/internal/infrastructure/historyapi"
	"wallet_client/internal/infrastructure/historystore"
	"wallet_client/internal/pkg/logger"
	"wallet_client/internal/pkg/utils"
)

func main() {
	// Bootstrap logger for the phase before zap is up.
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize zap logger: %v", err)
	}
	defer zapLogger.Sync()

	slogHandler := zapslog.NewHandler(zapLogger.Core(), &zapslog.HandlerOptions{})
	slog.SetDefault(slog.New(slogHandler))

	cfgPath := utils.GetEnv("CONFIG_PATH", "config/config.yml")
	cfg, err := configloader.Load(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if level, err := logrus.ParseLevel(cfg.Logging.Level); err == nil {
		log.SetLevel(level)
	}

	zapLogger.Info("History service starting", zap.String("config", cfgPath))

	// The store lives for the process lifetime only: no eviction, no
	// persistence across restarts.
	store := historystore.NewMemoryStore()
	handler := historyapi.NewHistoryHandler(store, logger.NewSlogAdapter())
	router := historyapi.SetupRouter(handler, zapLogger)

	srv := &http.Server{
		Addr:         ":" + cfg.HistoryAPI.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		zapLogger.Info("History API listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start history API server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutting down history API...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Fatal("History API forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("History API exiting")
}
