package server

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gravitas-games/hexgrid/internal/gamemap"
	"github.com/gravitas-games/hexgrid/internal/network"
)

// Session is the shared state every connection works against: one game map
// and the set of connected clients.
type Session struct {
	ID        string
	CreatedAt time.Time

	gameMap *gamemap.GameMap

	connections map[*Connection]bool
	mu          sync.RWMutex

	log *slog.Logger
}

// NewSession creates a session serving gm.
func NewSession(id string, gm *gamemap.GameMap, logger *slog.Logger) *Session {
	s := &Session{
		ID:          id,
		CreatedAt:   time.Now(),
		gameMap:     gm,
		connections: make(map[*Connection]bool),
		log:         logger.With("session", id),
	}
	s.log.Info("session created", "cells", gm.CellCount())
	return s
}

// Map returns the session's game map.
func (s *Session) Map() *gamemap.GameMap { return s.gameMap }

// AddConnection registers conn for broadcasts.
func (s *Session) AddConnection(conn *Connection) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.connections[conn] = true
	s.log.Info("client joined", "client", conn.clientID, "clients", len(s.connections))
}

// RemoveConnection unregisters conn. Removing an unknown connection is a no-op.
func (s *Session) RemoveConnection(conn *Connection) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.connections[conn] {
		delete(s.connections, conn)
		s.log.Info("client left", "client", conn.clientID, "clients", len(s.connections))
	}
}

// Connections returns a snapshot of the registered connections.
func (s *Session) Connections() []*Connection {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conns := make([]*Connection, 0, len(s.connections))
	for conn := range s.connections {
		conns = append(conns, conn)
	}
	return conns
}

// BroadcastMessage sends msg to every connection.
func (s *Session) BroadcastMessage(msg *network.ServerMessage) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for conn := range s.connections {
		conn.SendMessage(msg)
	}
}

// Status returns the current session status.
func (s *Session) Status() network.StatusPayload {
	s.mu.RLock()
	clients := len(s.connections)
	s.mu.RUnlock()

	l := s.gameMap.Layout()
	return network.StatusPayload{
		Orientation: l.Orientation.String(),
		TileWidth:   l.Size.X,
		TileHeight:  l.Size.Y,
		Columns:     s.gameMap.Columns(),
		Rows:        s.gameMap.Rows(),
		Clients:     clients,
		Uptime:      int64(time.Since(s.CreatedAt).Seconds()),
	}
}
