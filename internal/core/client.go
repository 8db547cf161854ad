package core

// Identity is the verified identity bound to a connection for its lifetime.
// It is derived once from the credential presented at connection time.
type Identity struct {
	UserID   string
	Username string
}

// Client is one live connection as seen by the coordinator.
type Client struct {
	ConnID   string
	Identity Identity
	Commands chan *Command
	Events   chan *Event

	// room is the id of the client's current room, or "" when the client
	// is not in any room. A client belongs to at most one room at a time.
	// Owned by the coordinator dispatch loop; never touched elsewhere.
	room string
}

// NewClient constructs a client with initialized channels.
func NewClient(connID string, identity Identity) *Client {
	return &Client{
		ConnID:   connID,
		Identity: identity,
		Commands: make(chan *Command, 8),
		Events:   make(chan *Event, 16),
	}
}
