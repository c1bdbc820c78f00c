package network

import "encoding/json"

// Message types - Client → Server
const (
	MsgTypePointToOffset = "point_to_offset"
	MsgTypeOffsetToPoint = "offset_to_point"
	MsgTypeDistance      = "distance"
	MsgTypeRing          = "ring"
	MsgTypeRange         = "range"
	MsgTypeGetTerrain    = "get_terrain"
	MsgTypeSetTerrain    = "set_terrain"
	MsgTypeStatus        = "status"
	MsgTypePing          = "ping"
)

// Message types - Server → Client
const (
	MsgTypeResult      = "result"
	MsgTypeCellUpdated = "cell_updated"
	MsgTypeStatusReply = "status"
	MsgTypeError       = "error"
	MsgTypePong        = "pong"
)

// Error codes
const (
	ErrCodeInvalidMessage = "invalid_message"
	ErrCodeInvalidPayload = "invalid_payload"
	ErrCodeUnknownType    = "unknown_message_type"
	ErrCodeOutOfBounds    = "out_of_bounds"
	ErrCodeRadiusTooLarge = "radius_too_large"
	ErrCodeInvalidTerrain = "invalid_terrain"
)

// ClientMessage represents any message from client to server.
// ID is echoed back on the matching result.
type ClientMessage struct {
	Type    string          `json:"type"`
	ID      string          `json:"id,omitempty"`
	Payload json.RawMessage `json:"payload"`
}

// ServerMessage represents any message from server to client
type ServerMessage struct {
	Type    string      `json:"type"`
	ID      string      `json:"id,omitempty"`
	Payload interface{} `json:"payload"`
}

// --- Shared payload pieces ---

// Cell is an offset coordinate on the wire
type Cell struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// Point is a pixel position on the wire
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// --- Client Message Payloads ---

// DistancePayload asks for the step count between two cells
type DistancePayload struct {
	From Cell `json:"from"`
	To   Cell `json:"to"`
}

// AreaPayload asks for the ring or disc around a cell
type AreaPayload struct {
	Center Cell `json:"center"`
	Radius int  `json:"radius"`
}

// SetTerrainPayload replaces the terrain of one cell
type SetTerrainPayload struct {
	Cell
	Terrain string `json:"terrain"`
}

// --- Server Message Payloads ---

// OffsetResult answers point_to_offset
type OffsetResult struct {
	Cell
	InBounds bool `json:"in_bounds"`
}

// DistanceResult answers distance
type DistanceResult struct {
	Distance int `json:"distance"`
}

// CellsResult answers ring and range
type CellsResult struct {
	Cells []Cell `json:"cells"`
}

// TerrainPayload answers get_terrain and is broadcast as cell_updated
type TerrainPayload struct {
	Cell
	Terrain   string `json:"terrain"`
	UpdatedBy string `json:"updated_by,omitempty"`
}

// StatusPayload describes the served grid
type StatusPayload struct {
	Orientation string  `json:"orientation"`
	TileWidth   float64 `json:"tile_width"`
	TileHeight  float64 `json:"tile_height"`
	Columns     int     `json:"columns"`
	Rows        int     `json:"rows"`
	Clients     int     `json:"clients"`
	Uptime      int64   `json:"uptime"` // seconds
}

// ErrorPayload contains error information
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
