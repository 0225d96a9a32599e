// Package api exposes the ledger over HTTP. It is a thin surface: handlers
// parse requests, call the registries and translate domain errors into
// status codes; all business rules live in pkg/identity and pkg/ledger.
package api

import (
	"context"
	"net/http"
	"time"

	"bankledger/pkg/identity"
	"bankledger/pkg/ledger"
	"bankledger/pkg/logging"
	"bankledger/pkg/metrics"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server provides HTTP endpoints for holders, accounts and operations.
type Server struct {
	holders  *identity.Registry
	accounts *ledger.Registry
	config   ServerConfig
	logger   *logging.Logger
	metrics  metrics.OperationsCollector
	server   *http.Server
}

// ServerConfig holds configuration for the API server.
type ServerConfig struct {
	// Address to listen on (e.g., ":8080")
	Address string

	// ReadTimeout for HTTP requests
	ReadTimeout time.Duration

	// WriteTimeout for HTTP responses
	WriteTimeout time.Duration

	// Limits applied to withdrawals served by this server
	Limits ledger.LimitsConfig

	// Logger for request logging. Defaults to a no-op logger.
	Logger *logging.Logger

	// Metrics receives registry-level metrics. Defaults to a no-op collector.
	Metrics metrics.OperationsCollector

	// PromRegistry, when set, is served at GET /metrics.
	PromRegistry *prometheus.Registry
}

// DefaultServerConfig returns a default configuration.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Address:      ":8080",
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		Limits:       ledger.DefaultLimitsConfig(),
	}
}

// NewServer creates an API server over the given registries.
func NewServer(holders *identity.Registry, accounts *ledger.Registry, config ServerConfig) *Server {
	if config.Logger == nil {
		config.Logger = logging.NewNoOpLogger()
	}
	if config.Metrics == nil {
		config.Metrics = metrics.NoOpCollector{}
	}

	s := &Server{
		holders:  holders,
		accounts: accounts,
		config:   config,
		logger:   config.Logger,
		metrics:  config.Metrics,
	}

	r := mux.NewRouter()

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	if config.PromRegistry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(config.PromRegistry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}

	r.HandleFunc("/holders", s.handleRegisterHolder).Methods(http.MethodPost)
	r.HandleFunc("/holders/{id}", s.handleGetHolder).Methods(http.MethodGet)

	r.HandleFunc("/accounts", s.handleOpenAccount).Methods(http.MethodPost)
	r.HandleFunc("/accounts", s.handleListAccounts).Methods(http.MethodGet)
	r.HandleFunc("/accounts/{number}", s.handleGetAccount).Methods(http.MethodGet)
	r.HandleFunc("/accounts/{number}/deposit", s.handleDeposit).Methods(http.MethodPost)
	r.HandleFunc("/accounts/{number}/withdraw", s.handleWithdraw).Methods(http.MethodPost)
	r.HandleFunc("/accounts/{number}/statement", s.handleStatement).Methods(http.MethodGet)

	s.server = &http.Server{
		Addr:         config.Address,
		Handler:      r,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	}

	return s
}

// Handler returns the configured router; used by tests via httptest.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server in a goroutine.
func (s *Server) Start() error {
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("api server error", zap.Error(err))
		}
	}()
	s.logger.Info("api server listening", zap.String("address", s.config.Address))
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// handleHealth returns a simple health check.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	})
}
