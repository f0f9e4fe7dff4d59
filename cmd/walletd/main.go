package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	slogzap "github.com/samber/slog-zap/v2"
	"go.uber.org/zap"

	"wallet_client/internal/app/service"
	"wallet_client/internal/infrastructure/configloader"
	"wallet_client/internal/infrastructure/historyclient"
	"wallet_client/internal/infrastructure/restapi"
	"wallet_client/internal/infrastructure/wallet"
	"wallet_client/internal/pkg/logger"
	"wallet_client/internal/pkg/metrics"
	"wallet_client/internal/pkg/utils"
)

func main() {
	zapLogger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: Failed to initialize zapLogger: %v\n", err)
		os.Exit(1)
	}
	defer zapLogger.Sync()

	cfgPath := utils.GetEnv("CONFIG_PATH", "config/config.yml")
	cfg, err := configloader.Load(cfgPath)
	if err != nil {
		zapLogger.Fatal("Failed to load configuration", zap.String("path", cfgPath), zap.Error(err))
	}

	// Route slog through zap so the logger package and zap-based
	// infrastructure share one pipeline.
	slogLevel := slog.LevelInfo
	if cfg.Logging.Level == "debug" {
		slogLevel = slog.LevelDebug
	}
	slogHandler := slogzap.Option{
		Level:  slogLevel,
		Logger: zapLogger,
	}.NewZapHandler()
	slog.SetDefault(slog.New(slogHandler))

	logger.Info("Wallet client starting...")
	appLogger := logger.NewSlogAdapter()

	metrics.MustRegisterMetrics()

	// A nil provider is a valid deployment (no key configured); connect
	// attempts then surface "Wallet provider not installed".
	provider, err := wallet.NewProviderFromConfig(cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to initialize wallet provider", zap.Error(err))
	}

	policy := service.NewNetworkPolicy(cfg.TargetNetwork)
	session := service.NewWalletSession(provider, policy, cfg.TargetNetwork, appLogger)
	defer session.Close()

	// A provider event invalidates the session; re-run the connection
	// bootstrap instead of reloading a page.
	session.SetInvalidateHook(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Performance.RPCCallTimeoutSeconds)*time.Second)
		defer cancel()
		if _, err := session.Connect(ctx); err != nil {
			appLogger.Warn("session bootstrap after invalidation failed", "error", err.Error())
		}
	})

	historyTimeout := time.Duration(cfg.HistoryAPI.RequestTimeoutMillis) * time.Millisecond
	historyStore := historyclient.NewClient(cfg.HistoryAPI.BaseURL, historyTimeout, zapLogger)

	transfers := service.NewTransferService(session, historyStore, cfg.TargetNetwork, appLogger)
	logger.Info("Transfer service initialized", "network", cfg.TargetNetwork.FriendlyName)

	sessionHandler := restapi.NewSessionHandler(session, appLogger)
	transferHandler := restapi.NewTransferHandler(transfers, session, appLogger)
	router := restapi.SetupRouter(sessionHandler, transferHandler, zapLogger, cfg.Performance.SwaggerEnabled)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		// No WriteTimeout: a transfer submission holds its response open for
		// the whole inclusion wait, which can take minutes.
	}

	go func() {
		logger.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start HTTP server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during HTTP server shutdown", "error", err)
	}

	logger.Info("Wallet client stopped.")
}
