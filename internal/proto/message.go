package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	InboundTypeJoinRoom        = "joinRoom"
	InboundTypeLeaveRoom       = "leaveRoom"
	InboundTypeUpdateLocation  = "updateLocation"
	InboundTypeUpdateGameState = "updateGameState"

	OutboundTypeRoomState      = "roomState"
	OutboundTypePlayerJoined   = "playerJoined"
	OutboundTypePlayerLeft     = "playerLeft"
	OutboundTypeLocationUpdate = "playerLocationUpdate"
	OutboundTypeGameState      = "gameStateUpdate"
	OutboundTypeError          = "error"
)

// JoinRoomData requests to join a room, leaving any previous one.
type JoinRoomData struct {
	RoomID     string         `json:"roomId"`
	PlayerData map[string]any `json:"playerData"`
}

// LeaveRoomData requests to leave a room.
type LeaveRoomData struct {
	RoomID string `json:"roomId"`
}

// LocationData carries raw coordinate values. They stay untyped here so a
// malformed value reaches the core as-is and is rejected there, instead of
// failing the whole envelope decode.
type LocationData struct {
	Latitude  any `json:"latitude"`
	Longitude any `json:"longitude"`
}

// UpdateLocationData reports the client's latest location.
type UpdateLocationData struct {
	RoomID   string        `json:"roomId"`
	Location *LocationData `json:"location"`
}

// UpdateGameStateData requests a room lifecycle state change. GameState is
// relayed verbatim to the room, so it stays an open map.
type UpdateGameStateData struct {
	RoomID    string         `json:"roomId"`
	GameState map[string]any `json:"gameState"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// RoomStateData is the private snapshot sent to a joining client. Each
// player object carries userId, username, connectionId and the flattened
// join payload fields.
type RoomStateData struct {
	RoomID  string           `json:"roomId"`
	Players []map[string]any `json:"players"`
	State   string           `json:"state"`
}

// PlayerJoinedData notifies the room about a new player.
type PlayerJoinedData struct {
	UserID     string         `json:"userId"`
	Username   string         `json:"username"`
	PlayerData map[string]any `json:"playerData"`
}

// PlayerLeftData notifies the room that a player left.
type PlayerLeftData struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

// LocationUpdateData notifies the room about a player's new location.
type LocationUpdateData struct {
	UserID   string       `json:"userId"`
	Username string       `json:"username"`
	Location LocationBody `json:"location"`
}

// LocationBody is a validated pair of coordinates.
type LocationBody struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ErrorData describes a recoverable error reported to one client.
type ErrorData struct {
	Message string `json:"message"`
}
