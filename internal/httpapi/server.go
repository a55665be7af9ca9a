// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Panelinha Contributors

// Package httpapi serves the JSON HTTP surface: account registration,
// bearer-token sessions, and owner-scoped recipe CRUD.
package httpapi

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/oops"

	"github.com/panelinha/panelinha/internal/auth"
	"github.com/panelinha/panelinha/internal/observability"
	"github.com/panelinha/panelinha/internal/recipe"
)

// Options configures a Server. Credentials, Sessions, and Recipes are
// required; Logger and Metrics are optional.
type Options struct {
	Addr        string
	Credentials *auth.CredentialService
	Sessions    *auth.SessionService
	Recipes     *recipe.Service
	Logger      *slog.Logger
	Metrics     *observability.Metrics
}

// Server is the HTTP API server.
type Server struct {
	addr       string
	engine     *gin.Engine
	listener   net.Listener
	httpServer *http.Server
	running    atomic.Bool

	credentials *auth.CredentialService
	sessions    *auth.SessionService
	recipes     *recipe.Service
	logger      *slog.Logger
	metrics     *observability.Metrics
}

// New creates a Server with all routes registered.
func New(opts Options) (*Server, error) {
	if opts.Credentials == nil {
		return nil, oops.Errorf("credential service is required")
	}
	if opts.Sessions == nil {
		return nil, oops.Errorf("session service is required")
	}
	if opts.Recipes == nil {
		return nil, oops.Errorf("recipe service is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		addr:        opts.Addr,
		engine:      engine,
		credentials: opts.Credentials,
		sessions:    opts.Sessions,
		recipes:     opts.Recipes,
		logger:      logger,
		metrics:     opts.Metrics,
	}
	s.registerRoutes()

	return s, nil
}

// Handler returns the underlying HTTP handler. Used by tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start begins serving API requests. It returns an error channel that
// will receive any error from the HTTP server after it starts; the
// channel is closed when the server stops gracefully.
func (s *Server) Start() (<-chan error, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, oops.Errorf("api server already running")
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		s.running.Store(false)
		return nil, oops.With("addr", s.addr).Wrap(err)
	}
	s.listener = listener

	httpSrv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.httpServer = httpSrv

	errCh := make(chan error, 1)

	go func() {
		defer close(errCh)
		if serveErr := httpSrv.Serve(listener); serveErr != nil && serveErr != http.ErrServerClosed {
			s.logger.Error("api server error", "error", serveErr)
			errCh <- serveErr
		}
	}()

	s.logger.Info("api server started", "addr", listener.Addr().String())
	return errCh, nil
}

// Stop gracefully shuts down the server, letting in-flight requests
// finish within the context deadline.
func (s *Server) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.running.Store(true)
			return oops.With("operation", "shutdown_api_server").Wrap(err)
		}
	}

	s.logger.Info("api server stopped")
	return nil
}

// Addr returns the address the server is listening on.
// Returns empty string if not running.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return ""
}
