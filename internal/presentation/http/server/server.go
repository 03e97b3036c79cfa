// Package server hosts the intelligence API over HTTP.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/AtRiskMedia/wealthstack-go/internal/application/container"
	"github.com/AtRiskMedia/wealthstack-go/internal/presentation/http/routes"
	"github.com/AtRiskMedia/wealthstack-go/pkg/config"
)

// Server wraps the http.Server carrying the session, analytics, and
// streaming routes. Timeouts come from pkg/config; note the write
// timeout also bounds how long an SSE or WebSocket stream may live.
type Server struct {
	httpServer *http.Server
	container  *container.Container
}

// New builds the server with routes wired against the service container.
func New(port string, container *container.Container) *Server {
	router := routes.SetupRoutes(container)

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	return &Server{
		httpServer: httpServer,
		container:  container,
	}
}

// Start listens until the server is shut down.
func (s *Server) Start() error {
	log.Printf("Starting HTTP server on %s", s.httpServer.Addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

// Stop drains in-flight requests and shuts the listener down.
func (s *Server) Stop(ctx context.Context) error {
	log.Println("Shutting down HTTP server...")
	return s.httpServer.Shutdown(ctx)
}
