package network

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"

	"github.com/lixenwraith/colormix/core"
	"github.com/lixenwraith/colormix/logger"
)

// Service wraps Server as a hub-managed service; disabled without an address
type Service struct {
	cfg    Config
	server *Server

	http     *http.Server
	addr     atomic.Pointer[string]
	disabled atomic.Bool
}

// NewService creates the network service
func NewService(cfg Config, server *Server) *Service {
	return &Service{cfg: cfg, server: server}
}

// Name implements service.Service
func (s *Service) Name() string { return "network" }

// Dependencies implements service.Service
func (s *Service) Dependencies() []string { return nil }

// Init implements service.Service
func (s *Service) Init() error {
	if s.cfg.Address == "" {
		s.disabled.Store(true)
		return nil
	}
	s.http = &http.Server{
		Addr:              s.cfg.Address,
		Handler:           s.server.Handler(),
		ReadHeaderTimeout: s.cfg.WriteTimeout,
	}
	return nil
}

// Start binds the listener synchronously so address errors surface here
func (s *Service) Start() error {
	if s.disabled.Load() {
		return nil
	}
	ln, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Address, err)
	}
	addr := ln.Addr().String()
	s.addr.Store(&addr)
	logger.Info("network listening", "addr", addr)

	core.Go(func() {
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("network server failed", "err", err)
		}
	})
	return nil
}

// Stop disconnects players and shuts the server down
func (s *Service) Stop() error {
	if s.disabled.Load() || s.http == nil {
		return nil
	}
	s.server.hub.CloseAll()
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	return s.http.Shutdown(ctx)
}

// Addr returns the bound address, empty before Start
func (s *Service) Addr() string {
	if p := s.addr.Load(); p != nil {
		return *p
	}
	return ""
}

// IsDisabled reports whether the front-end is off
func (s *Service) IsDisabled() bool {
	return s.disabled.Load()
}
