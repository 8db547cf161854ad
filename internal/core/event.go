package core

// EventKind is a notification the coordinator emits to clients.
type EventKind int

const (
	// EventRoomState delivers the full room snapshot to a joining client.
	EventRoomState EventKind = iota
	// EventPlayerJoined notifies room members that a player joined.
	EventPlayerJoined
	// EventPlayerLeft notifies room members that a player left.
	EventPlayerLeft
	// EventLocationUpdate notifies room members about a player's new location.
	EventLocationUpdate
	// EventGameState relays an accepted game state update to room members.
	EventGameState
	// EventError notifies the originating client about a domain error.
	EventError
)

// Event is sent to clients to describe what happened in the system.
// Events carry copies of coordinator state, never live references.
type Event struct {
	Kind     EventKind
	Room     string
	UserID   string
	Username string

	// PlayerData is the join payload echoed in EventPlayerJoined.
	PlayerData map[string]any

	// Players and State are set for EventRoomState.
	Players []Member
	State   RoomState

	// Location is set for EventLocationUpdate.
	Location Location

	// GameState is the verbatim payload for EventGameState.
	GameState map[string]any

	Error *CoreError
}
