package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/gravitas-games/hexgrid/internal/config"
	"github.com/gravitas-games/hexgrid/internal/gamemap"
)

// Server answers hex-grid queries over WebSocket
type Server struct {
	config    *config.Config
	session   *Session
	upgrader  websocket.Upgrader
	httpSrv   *http.Server
	validator *TokenValidator

	log *slog.Logger

	// Shutdown
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a new server instance
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("initializing server")

	gm, err := gamemap.New(gamemap.Options{
		Layout:         cfg.Grid.Layout(),
		Columns:        cfg.Grid.Columns,
		Rows:           cfg.Grid.Rows,
		DefaultTerrain: cfg.Grid.DefaultTerrain,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create game map: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	srv := &Server{
		config:    cfg,
		session:   NewSession("main", gm, logger),
		validator: NewTokenValidator(cfg.Auth),
		log:       logger,
		ctx:       ctx,
		cancel:    cancel,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			Subprotocols:    []string{tokenSubprotocol},
			CheckOrigin: func(r *http.Request) bool {
				// TODO: restrict to configured origins once browser clients ship
				return true
			},
		},
	}

	if srv.validator == nil {
		logger.Warn("authentication disabled, auth.secret is empty")
	}
	logger.Info("server initialized")
	return srv, nil
}

// Session returns the shared session.
func (s *Server) Session() *Session { return s.session }

// Handler returns the HTTP routes served by the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Start begins listening for connections and blocks until Shutdown.
func (s *Server) Start(addr string) error {
	s.httpSrv = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.log.Info("websocket endpoint", "url", fmt.Sprintf("ws://%s/ws", addr))
	s.log.Info("health endpoint", "url", fmt.Sprintf("http://%s/health", addr))

	if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown() error {
	s.log.Info("shutting down server")

	s.cancel()

	var err error
	if s.httpSrv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err = s.httpSrv.Shutdown(ctx); err != nil {
			s.log.Error("http server shutdown error", "err", err)
		}
	}

	for _, conn := range s.session.Connections() {
		conn.Close()
	}

	s.log.Info("server shutdown complete")
	return err
}

// handleWebSocket authenticates and upgrades a client connection
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	clientID, err := s.validator.authenticate(r)
	if err != nil {
		s.log.Info("rejected connection", "remote", r.RemoteAddr, "err", err)
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}

	conn := NewConnection(ws, s, clientID)
	s.session.AddConnection(conn)
	conn.Handle()
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
