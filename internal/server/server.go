package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/tournevent/shipit/internal/graphql"
	"github.com/tournevent/shipit/internal/telemetry"
	"github.com/tournevent/shipit/internal/webhook"
	"github.com/tournevent/shipit/pkg/shipit"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

const maxGraphQLBody = 1 << 20

// Server is the HTTP server for the Shipit bridge.
type Server struct {
	port        int
	webhookPath string
	logger      *otelzap.Logger
	metrics     *telemetry.Metrics
	resolver    *graphql.Resolver
	receiver    *webhook.Receiver
}

// Config holds server configuration.
type Config struct {
	Port        int
	WebhookPath string
}

// New creates a new server instance. Callbacks received on cfg.WebhookPath
// are dispatched through dispatcher.
func New(cfg Config, client *shipit.Client, dispatcher *webhook.Dispatcher, logger *otelzap.Logger) *Server {
	metrics := telemetry.NewMetrics()
	if cfg.WebhookPath == "" {
		cfg.WebhookPath = "/webhooks/shipit"
	}

	return &Server{
		port:        cfg.Port,
		webhookPath: cfg.WebhookPath,
		logger:      logger,
		metrics:     metrics,
		resolver:    graphql.NewResolver(client, logger, metrics),
		receiver:    webhook.NewReceiver(dispatcher, logger, metrics),
	}
}

// Handler returns the routes served by Run.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", s.handleHealth)

	// Prometheus metrics
	mux.Handle("/metrics", s.metrics.Handler())

	// GraphQL endpoint
	mux.HandleFunc("/graphql", s.handleGraphQL)

	// Shipit status callbacks
	mux.Handle(s.webhookPath, s.receiver)

	return mux
}

// Run starts the HTTP server and blocks until context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting server",
			zap.Int("port", s.port),
			zap.String("webhook_path", s.webhookPath),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for context cancellation or error
	select {
	case <-ctx.Done():
		s.logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type graphQLError struct {
	Message string `json:"message"`
}

func writeGraphQLError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"errors": []graphQLError{{Message: msg}},
	})
}

func (s *Server) handleGraphQL(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		writeGraphQLError(w, http.StatusMethodNotAllowed, "Method not allowed, use POST")
		return
	}

	var req graphql.Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxGraphQLBody))
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		writeGraphQLError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	resp := s.resolver.Execute(r.Context(), req)
	if resp.Data == nil {
		w.WriteHeader(http.StatusBadRequest)
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Ctx(r.Context()).Error("Failed to encode GraphQL response", zap.Error(err))
	}
}
