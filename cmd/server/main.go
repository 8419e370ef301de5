package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kevin07696/pagseguro-gateway/internal/adapters/pagseguro"
	"github.com/kevin07696/pagseguro-gateway/internal/config"
	checkoutHandler "github.com/kevin07696/pagseguro-gateway/internal/handlers/checkout"
	pkghttp "github.com/kevin07696/pagseguro-gateway/pkg/http"
	"github.com/kevin07696/pagseguro-gateway/pkg/logging"
	"github.com/kevin07696/pagseguro-gateway/pkg/observability"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	logger := initLogger(cfg.Logger)
	defer logger.Sync()

	logger.Info("Starting PagSeguro gateway",
		zap.String("version", pagseguro.Version),
		zap.Bool("sandbox", cfg.Gateway.Sandbox),
	)

	adapter := pagseguro.New(gatewayConfig(cfg.Gateway), pkghttp.NewGatewayClient(), logging.NewZapLogger(logger))

	handler := checkoutHandler.NewHandler(adapter, logging.NewZapLogger(logger))

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Mount("/", handler.Routes())

	// Metrics and health endpoints on their own port
	health := observability.NewHealthChecker()
	metricsServer := observability.StartMetricsServer(strconv.Itoa(cfg.Server.MetricsPort), health)
	logger.Info("Metrics server listening", zap.Int("port", cfg.Server.MetricsPort))

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: pkghttp.GatewayTimeout + 15*time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
	}
	if err := observability.ShutdownMetricsServer(metricsServer); err != nil {
		logger.Error("Metrics server shutdown failed", zap.Error(err))
	}

	logger.Info("Shutdown complete")
}

func gatewayConfig(cfg config.GatewayConfig) pagseguro.Config {
	return pagseguro.Config{
		Email:     cfg.Email,
		PublicKey: cfg.PublicKey,
		Sandbox:   cfg.Sandbox,
		Debug:     cfg.Debug,

		InvoicePrefix: cfg.InvoicePrefix,
		SendOnlyTotal: cfg.SendOnlyTotal,
		Currency:      cfg.Currency,

		AcceptCreditCard:   cfg.AcceptCreditCard,
		AcceptBankTransfer: cfg.AcceptBankTransfer,
		AcceptTicket:       cfg.AcceptTicket,

		PublicURL:    cfg.PublicURL,
		BaseURL:      cfg.BaseURL,
		StaticMirror: cfg.StaticMirror,

		Platform:        cfg.Platform,
		PlatformVersion: cfg.PlatformVersion,
		ExtraVersion:    cfg.ExtraVersion,
	}
}

func initLogger(cfg config.LoggerConfig) *zap.Logger {
	var zapCfg zap.Config
	if cfg.Development {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zapCfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	return logger
}
