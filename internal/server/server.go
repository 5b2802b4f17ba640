// Package server hosts the HTTP surface: the mux, request middleware,
// and the core routes every deployment gets.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/netsentry/fortiview/internal/metrics"
	"github.com/netsentry/fortiview/internal/services"
	"github.com/netsentry/fortiview/internal/version"
	"go.uber.org/zap"
)

// Server is the FortiView HTTP server.
type Server struct {
	httpServer *http.Server
	interfaces *services.InterfaceService
	logger     *zap.Logger
	metrics    *metrics.Metrics
	mux        *http.ServeMux
}

// New creates a Server. Feature handlers register their routes on Mux()
// before Start is called.
func New(addr string, logger *zap.Logger, m *metrics.Metrics) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      requestMiddleware(mux, logger, m),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		interfaces: services.NewInterfaceService(),
		logger:     logger,
		metrics:    m,
		mux:        mux,
	}

	s.registerCoreRoutes()

	return s
}

// Mux returns the underlying mux for feature route registration.
func (s *Server) Mux() *http.ServeMux {
	return s.mux
}

// registerCoreRoutes sets up routes that are always available.
func (s *Server) registerCoreRoutes() {
	s.mux.HandleFunc("GET /api/v1/health", s.handleHealth)
	s.mux.HandleFunc("GET /api/v1/server-info", s.handleServerInfo)
	s.mux.Handle("GET /metrics", s.metrics.Handler())
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-FortiView-Version", version.Short())
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":  "ok",
		"service": "fortiview",
		"version": version.Map(),
	})
}

// handleServerInfo reports where the dashboard is reachable, for
// display in the UI footer.
func (s *Server) handleServerInfo(w http.ResponseWriter, r *http.Request) {
	interfaces, err := s.interfaces.ListNetworkInterfaces()
	if err != nil {
		s.logger.Error("failed to list interfaces", zap.Error(err))
		InternalError(w, "failed to inspect network interfaces", r.URL.Path)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"ip":         s.interfaces.ServerIP(),
		"interfaces": interfaces,
	})
}
