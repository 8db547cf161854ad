package core

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandJoinRoom puts the client into a room, leaving any previous one.
	CommandJoinRoom CommandKind = iota
	// CommandLeaveRoom removes the client from a room.
	CommandLeaveRoom
	// CommandUpdateLocation reports the client's latest coordinates.
	CommandUpdateLocation
	// CommandUpdateGameState requests a room lifecycle state change.
	CommandUpdateGameState
)

// Command represents an action requested by a client.
type Command struct {
	Kind CommandKind
	Room string

	// PlayerData carries arbitrary caller-supplied fields for join requests.
	PlayerData map[string]any

	// Latitude and Longitude hold decoded JSON values for location updates.
	// They stay untyped until the presence tracker validates them.
	Latitude  any
	Longitude any

	// GameState is the verbatim payload of an updateGameState request.
	GameState map[string]any
}
