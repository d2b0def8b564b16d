// Package server exposes a running session to observers over websocket and
// to operators over a small admin HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/hexcardgame/hexcard-server-go/internal/config"
	"github.com/hexcardgame/hexcard-server-go/internal/game"
	"github.com/hexcardgame/hexcard-server-go/internal/game/watchers"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

// Server bundles the hub and the admin endpoints behind one HTTP listener.
type Server struct {
	cfg     config.ServerConfig
	manager *game.Manager
	hub     *Hub
	admin   *adminHandler
	logger  *zap.Logger
}

// New wires the HTTP surface around manager. journal must already be
// subscribed to the manager's dispatcher.
func New(cfg config.ServerConfig, manager *game.Manager, journal *watchers.Journal, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.AdminPasswordHash == "" {
		logger.Warn("admin password hash not configured; admin endpoints disabled")
	}
	return &Server{
		cfg:     cfg,
		manager: manager,
		hub:     NewHub(manager, journal, logger.Named("hub")),
		admin: &adminHandler{
			manager:      manager,
			passwordHash: []byte(cfg.AdminPasswordHash),
			logger:       logger.Named("admin"),
		},
		logger: logger,
	}
}

// Handler returns the routes of the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.hub.ServeWS)
	mux.HandleFunc("/admin/force-win", s.admin.guard(s.admin.forceWin))
	mux.HandleFunc("/admin/restart", s.admin.guard(s.admin.restart))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		var state StateView
		s.manager.Do(func(g *game.Game) { state = NewStateView(g) })
		writeJSON(w, http.StatusOK, map[string]any{
			"status":     "ok",
			"session_id": state.SessionID,
			"phase":      state.Phase,
		})
	})
	return mux
}

// Run starts the hub and serves on the configured address until ctx is
// cancelled.
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Address, err)
	}
	return s.Serve(ctx, lis)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	hubCtx, stopHub := context.WithCancel(ctx)
	defer stopHub()
	go s.hub.Run(hubCtx)

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", zap.String("address", lis.Addr().String()))
		errCh <- srv.Serve(lis)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	stopHub()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
