package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"seehuhn.de/go/geom/vec"

	"github.com/gravitas-games/hexgrid/internal/gamemap"
	"github.com/gravitas-games/hexgrid/internal/network"
	"github.com/gravitas-games/hexgrid/pkg/hex"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Outbound messages queued per client before new ones are dropped
	sendBuffer = 256
)

// Connection represents a WebSocket connection to a client
type Connection struct {
	ws       *websocket.Conn
	server   *Server
	clientID string

	// Buffered channel for outbound messages
	send chan []byte

	done      chan struct{}
	closeOnce sync.Once

	log *slog.Logger
}

// NewConnection creates a new connection
func NewConnection(ws *websocket.Conn, server *Server, clientID string) *Connection {
	return &Connection{
		ws:       ws,
		server:   server,
		clientID: clientID,
		send:     make(chan []byte, sendBuffer),
		done:     make(chan struct{}),
		log:      server.log.With("client", clientID),
	}
}

// Handle manages the connection lifecycle and blocks until the client leaves.
func (c *Connection) Handle() {
	c.ws.SetReadLimit(c.server.config.Server.ReadLimit)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	go c.writePump()
	c.readPump()
}

// readPump pumps messages from the WebSocket connection to the handlers
func (c *Connection) readPump() {
	defer c.Close()

	for {
		_, message, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.log.Warn("websocket read error", "err", err)
			}
			return
		}

		var clientMsg network.ClientMessage
		if err := json.Unmarshal(message, &clientMsg); err != nil {
			c.log.Debug("failed to parse client message", "err", err)
			c.SendError("", network.ErrCodeInvalidMessage, "Failed to parse message")
			continue
		}

		c.handleMessage(&clientMsg)
	}
}

// writePump pumps messages from the send channel to the WebSocket connection
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case message := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, message); err != nil {
				c.log.Warn("websocket write error", "err", err)
				return
			}

		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			c.ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return

		case <-c.server.ctx.Done():
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			c.ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
			return
		}
	}
}

// handleMessage routes messages to appropriate handlers
func (c *Connection) handleMessage(msg *network.ClientMessage) {
	c.log.Debug("received message", "type", msg.Type, "id", msg.ID)

	var (
		result interface{}
		err    error
	)
	switch msg.Type {
	case network.MsgTypePointToOffset:
		result, err = c.handlePointToOffset(msg.Payload)
	case network.MsgTypeOffsetToPoint:
		result, err = c.handleOffsetToPoint(msg.Payload)
	case network.MsgTypeDistance:
		result, err = c.handleDistance(msg.Payload)
	case network.MsgTypeRing:
		result, err = c.handleArea(msg.Payload, c.gameMap().Ring)
	case network.MsgTypeRange:
		result, err = c.handleArea(msg.Payload, c.gameMap().Range)
	case network.MsgTypeGetTerrain:
		result, err = c.handleGetTerrain(msg.Payload)
	case network.MsgTypeSetTerrain:
		result, err = c.handleSetTerrain(msg.Payload)
	case network.MsgTypeStatus:
		c.SendMessage(&network.ServerMessage{Type: network.MsgTypeStatusReply, ID: msg.ID, Payload: c.server.session.Status()})
		return
	case network.MsgTypePing:
		c.SendMessage(&network.ServerMessage{
			Type:    network.MsgTypePong,
			ID:      msg.ID,
			Payload: map[string]interface{}{"timestamp": time.Now().Unix()},
		})
		return
	default:
		c.SendError(msg.ID, network.ErrCodeUnknownType, fmt.Sprintf("Unknown message type %q", msg.Type))
		return
	}

	if err != nil {
		var re *requestError
		if errors.As(err, &re) {
			c.SendError(msg.ID, re.code, re.message)
			return
		}
		c.log.Error("request failed", "type", msg.Type, "err", err)
		c.SendError(msg.ID, "internal", "Request failed")
		return
	}
	c.SendMessage(&network.ServerMessage{Type: network.MsgTypeResult, ID: msg.ID, Payload: result})
}

// requestError is reported to the client instead of being logged.
type requestError struct {
	code    string
	message string
}

func (e *requestError) Error() string { return e.code + ": " + e.message }

func badPayload(err error) error {
	return &requestError{code: network.ErrCodeInvalidPayload, message: err.Error()}
}

func outOfBounds(err error) error {
	if errors.Is(err, gamemap.ErrOutOfBounds) {
		return &requestError{code: network.ErrCodeOutOfBounds, message: err.Error()}
	}
	return err
}

func (c *Connection) gameMap() *gamemap.GameMap { return c.server.session.Map() }

func (c *Connection) handlePointToOffset(payload json.RawMessage) (interface{}, error) {
	var p network.Point
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, badPayload(err)
	}
	o, ok := c.gameMap().CellAt(vec.Vec2{X: p.X, Y: p.Y})
	return network.OffsetResult{Cell: toCell(o), InBounds: ok}, nil
}

func (c *Connection) handleOffsetToPoint(payload json.RawMessage) (interface{}, error) {
	var cell network.Cell
	if err := json.Unmarshal(payload, &cell); err != nil {
		return nil, badPayload(err)
	}
	p := c.gameMap().Center(fromCell(cell))
	return network.Point{X: p.X, Y: p.Y}, nil
}

func (c *Connection) handleDistance(payload json.RawMessage) (interface{}, error) {
	var d network.DistancePayload
	if err := json.Unmarshal(payload, &d); err != nil {
		return nil, badPayload(err)
	}
	return network.DistanceResult{Distance: c.gameMap().Distance(fromCell(d.From), fromCell(d.To))}, nil
}

func (c *Connection) handleArea(payload json.RawMessage, area func(hex.Offset[int], int) ([]hex.Offset[int], error)) (interface{}, error) {
	var a network.AreaPayload
	if err := json.Unmarshal(payload, &a); err != nil {
		return nil, badPayload(err)
	}
	if a.Radius < 0 {
		return nil, &requestError{code: network.ErrCodeInvalidPayload, message: "radius must not be negative"}
	}
	if limit := c.server.config.Grid.MaxQueryRadius; a.Radius > limit {
		return nil, &requestError{
			code:    network.ErrCodeRadiusTooLarge,
			message: fmt.Sprintf("radius %d exceeds limit %d", a.Radius, limit),
		}
	}
	cells, err := area(fromCell(a.Center), a.Radius)
	if err != nil {
		return nil, outOfBounds(err)
	}
	out := network.CellsResult{Cells: make([]network.Cell, len(cells))}
	for i, o := range cells {
		out.Cells[i] = toCell(o)
	}
	return out, nil
}

func (c *Connection) handleGetTerrain(payload json.RawMessage) (interface{}, error) {
	var cell network.Cell
	if err := json.Unmarshal(payload, &cell); err != nil {
		return nil, badPayload(err)
	}
	terrain, err := c.gameMap().Terrain(fromCell(cell))
	if err != nil {
		return nil, outOfBounds(err)
	}
	return network.TerrainPayload{Cell: cell, Terrain: terrain}, nil
}

func (c *Connection) handleSetTerrain(payload json.RawMessage) (interface{}, error) {
	var set network.SetTerrainPayload
	if err := json.Unmarshal(payload, &set); err != nil {
		return nil, badPayload(err)
	}
	if set.Terrain == "" {
		return nil, &requestError{code: network.ErrCodeInvalidTerrain, message: "terrain must not be empty"}
	}
	if err := c.gameMap().SetTerrain(fromCell(set.Cell), set.Terrain); err != nil {
		return nil, outOfBounds(err)
	}

	update := network.TerrainPayload{Cell: set.Cell, Terrain: set.Terrain, UpdatedBy: c.clientID}
	c.server.session.BroadcastMessage(&network.ServerMessage{Type: network.MsgTypeCellUpdated, Payload: update})
	return update, nil
}

// SendMessage queues msg for the client. Messages are dropped when the
// buffer is full or the connection is closed.
func (c *Connection) SendMessage(msg *network.ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		c.log.Error("failed to marshal message", "err", err)
		return
	}

	select {
	case <-c.done:
		return
	default:
	}

	select {
	case c.send <- data:
	default:
		c.log.Warn("send buffer full, dropping message", "type", msg.Type)
	}
}

// SendError sends an error message to the client
func (c *Connection) SendError(id, code, message string) {
	c.SendMessage(&network.ServerMessage{
		Type: network.MsgTypeError,
		ID:   id,
		Payload: network.ErrorPayload{
			Code:    code,
			Message: message,
		},
	})
}

// Close unregisters the connection and stops its write pump. It is safe to
// call more than once.
func (c *Connection) Close() {
	c.closeOnce.Do(func() {
		c.server.session.RemoveConnection(c)
		close(c.done)
	})
}

func toCell(o hex.Offset[int]) network.Cell { return network.Cell{Q: o.Q, R: o.R} }

func fromCell(c network.Cell) hex.Offset[int] { return hex.Offset[int]{Q: c.Q, R: c.R} }
