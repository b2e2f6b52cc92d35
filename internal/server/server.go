package server

import (
	"context"
	"net"
	"net/http"
)

// Server wraps the HTTP server with graceful shutdown.
type Server struct {
	http *http.Server
}

// New creates a new server instance.
func New(host, port string, handler http.Handler) *Server {
	return &Server{
		http: &http.Server{
			Addr:    net.JoinHostPort(host, port),
			Handler: handler,
		},
	}
}

// Start starts the server and blocks until it stops.
func (s *Server) Start() error {
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
