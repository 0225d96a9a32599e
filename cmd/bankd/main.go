// Command bankd serves the ledger over HTTP with Prometheus metrics and
// graceful shutdown on SIGINT/SIGTERM.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"bankledger/pkg/api"
	"bankledger/pkg/identity"
	"bankledger/pkg/ledger"
	"bankledger/pkg/logging"
	promMetrics "bankledger/pkg/metrics/prometheus"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	logger, err := logging.NewLoggerFromEnv()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	logging.SetGlobal(logger)

	collector := promMetrics.NewPrometheusCollector("bankledger")
	promRegistry := prometheus.NewRegistry()
	if err := collector.Register(promRegistry); err != nil {
		logger.Fatal("Failed to register metrics", zap.Error(err))
	}

	holders := identity.NewRegistry()
	accounts := ledger.NewRegistry(holders, ledger.RegistryConfig{
		Logger:  logger,
		Metrics: collector,
	})

	config := api.DefaultServerConfig()
	config.Address = getEnv("LISTEN_ADDR", ":8080")
	config.Limits = limitsFromEnv()
	config.Logger = logger
	config.Metrics = collector
	config.PromRegistry = promRegistry

	server := api.NewServer(holders, accounts, config)
	if err := server.Start(); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
	logger.Info("bankd started",
		zap.String("address", config.Address),
		zap.String("agency", ledger.DefaultAgency))

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Stop(ctx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}

// limitsFromEnv builds the withdrawal limits from WITHDRAWAL_LIMIT and
// DAILY_WITHDRAWALS, falling back to the defaults on absence or garbage.
func limitsFromEnv() ledger.LimitsConfig {
	limits := ledger.DefaultLimitsConfig()
	if v := os.Getenv("WITHDRAWAL_LIMIT"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			limits.PerWithdrawal = d
		}
	}
	if v := os.Getenv("DAILY_WITHDRAWALS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limits.DailyWithdrawals = n
		}
	}
	if err := limits.Validate(); err != nil {
		return ledger.DefaultLimitsConfig()
	}
	return limits
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
