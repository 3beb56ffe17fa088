// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the course browser over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/pdiddy/edustream/pkg/types"
)

// Fallback timeouts for zero values in types.ServerConfig. The write
// timeout must outlast a course synthesis.
const (
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 90 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
	DefaultShutdownTimeout = 5 * time.Second
)

// Server runs an http.Server in the background.
type Server struct {
	httpServer      *http.Server
	notify          chan error
	shutdownTimeout time.Duration
}

// New prepares a server for handler. It does not listen until Start.
func New(cfg types.ServerConfig, handler http.Handler) *Server {
	httpServer := &http.Server{
		Addr:         cfg.Address,
		Handler:      handler,
		ReadTimeout:  orDefault(cfg.ReadTimeout, DefaultReadTimeout),
		WriteTimeout: orDefault(cfg.WriteTimeout, DefaultWriteTimeout),
		IdleTimeout:  orDefault(cfg.IdleTimeout, DefaultIdleTimeout),
	}
	return &Server{
		httpServer:      httpServer,
		notify:          make(chan error, 1),
		shutdownTimeout: orDefault(cfg.ShutdownTimeout, DefaultShutdownTimeout),
	}
}

// Start listens in a goroutine. The listener's exit error, nil after a
// clean Shutdown, is delivered on Notify.
func (s *Server) Start() {
	go func() {
		err := s.httpServer.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		s.notify <- err
		close(s.notify)
	}()
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Notify reports when the listener stops.
func (s *Server) Notify() <-chan error {
	return s.notify
}

// Shutdown drains open connections within the shutdown timeout.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}
