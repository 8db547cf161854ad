package core

import (
	"context"

	"github.com/rs/zerolog"
)

// Coordinator is the single authority over room and presence state. Every
// inbound command, registration, and disconnect is funneled through one
// dispatch goroutine and processed to completion before the next begins,
// which gives each operation atomicity across the registry and tracker and
// a total order on broadcasts per room.
type Coordinator struct {
	registry *Registry
	presence *Tracker
	log      *zerolog.Logger

	register   chan *Client
	unregister chan *Client
	commands   chan dispatch
	done       chan struct{}

	// clients is the set of live connections. Owned by the dispatch loop.
	clients map[*Client]struct{}
}

type dispatch struct {
	client *Client
	cmd    *Command
}

// NewCoordinator constructs a coordinator over the given registry and
// presence tracker. Both are created at process start and torn down with
// the process; the coordinator is their only writer.
func NewCoordinator(registry *Registry, presence *Tracker, logger *zerolog.Logger) *Coordinator {
	return &Coordinator{
		registry:   registry,
		presence:   presence,
		log:        logger,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		commands:   make(chan dispatch, 256),
		done:       make(chan struct{}),
		clients:    make(map[*Client]struct{}),
	}
}

// RegisterClient announces a verified connection to the coordinator. After
// Run has exited it returns without registering.
func (c *Coordinator) RegisterClient(client *Client) {
	select {
	case c.register <- client:
	case <-c.done:
	}
}

// UnregisterClient reports a transport-level disconnect. Safe to call for a
// client that was never registered or already unregistered, and after Run
// has exited.
func (c *Coordinator) UnregisterClient(client *Client) {
	select {
	case c.unregister <- client:
	case <-c.done:
	}
}

// Run processes events until ctx is cancelled. Commands submitted by one
// connection keep their submission order; commands from different
// connections interleave in arrival order.
func (c *Coordinator) Run(ctx context.Context) {
	defer close(c.done)
	for {
		select {
		case <-ctx.Done():
			return
		case client := <-c.register:
			c.clients[client] = struct{}{}
			go c.pump(client)
			c.log.Debug().Str("conn_id", client.ConnID).Str("user_id", client.Identity.UserID).Msg("client registered")
		case client := <-c.unregister:
			c.handleDisconnect(client)
		case d := <-c.commands:
			if _, ok := c.clients[d.client]; !ok {
				// Command raced with a disconnect; drop it.
				continue
			}
			c.handleCommand(d.client, d.cmd)
		}
	}
}

// pump forwards a client's commands into the dispatch channel. It exits
// when the transport closes the client's Commands channel, or when the
// dispatch loop is gone.
func (c *Coordinator) pump(client *Client) {
	for cmd := range client.Commands {
		select {
		case c.commands <- dispatch{client: client, cmd: cmd}:
		case <-c.done:
			return
		}
	}
}

func (c *Coordinator) handleCommand(client *Client, cmd *Command) {
	switch cmd.Kind {
	case CommandJoinRoom:
		c.handleJoin(client, cmd.Room, cmd.PlayerData)
	case CommandLeaveRoom:
		c.handleLeave(client, cmd.Room)
	case CommandUpdateLocation:
		c.handleLocationUpdate(client, cmd.Latitude, cmd.Longitude)
	case CommandUpdateGameState:
		c.handleGameStateUpdate(client, cmd.Room, cmd.GameState)
	}
}

// handleJoin moves the client into roomID. Joining supersedes any previous
// membership: the full leave sequence for the old room runs first.
func (c *Coordinator) handleJoin(client *Client, roomID string, playerData map[string]any) {
	if client.room != "" && client.room != roomID {
		c.handleLeave(client, client.room)
	}

	room := c.registry.Ensure(roomID)
	room.Add(Member{
		UserID:   client.Identity.UserID,
		Username: client.Identity.Username,
		ConnID:   client.ConnID,
		Data:     playerData,
	}, client)
	client.room = roomID

	// The whole room, joiner included, hears about the new player; the
	// joiner additionally gets a private full snapshot. Clients rely on
	// receiving both.
	room.Broadcast(&Event{
		Kind:       EventPlayerJoined,
		Room:       roomID,
		UserID:     client.Identity.UserID,
		Username:   client.Identity.Username,
		PlayerData: playerData,
	}, "")

	deliver(client, &Event{
		Kind:    EventRoomState,
		Room:    roomID,
		Players: room.Snapshot(),
		State:   room.State(),
	})

	c.log.Debug().Str("room", roomID).Str("user_id", client.Identity.UserID).Msg("player joined room")
}

// handleLeave removes the client from roomID and tells the remaining
// members. Leaving a room the client is not in is a no-op.
func (c *Coordinator) handleLeave(client *Client, roomID string) {
	if client.room == roomID {
		client.room = ""
	}

	room, removed := c.registry.RemoveMember(roomID, client.Identity.UserID)
	if !removed {
		return
	}

	// The departing connection already left the member set, so it is
	// never a target here. An emptied room was deleted by RemoveMember;
	// its absence from lookups is the only signal.
	room.Broadcast(&Event{
		Kind:     EventPlayerLeft,
		Room:     roomID,
		UserID:   client.Identity.UserID,
		Username: client.Identity.Username,
	}, "")

	c.log.Debug().Str("room", roomID).Str("user_id", client.Identity.UserID).Msg("player left room")
}

// handleLocationUpdate records the client's coordinates and relays them to
// the other members of its current room. The update is recorded even when
// the client occupies no room; there is simply no one to tell.
func (c *Coordinator) handleLocationUpdate(client *Client, latitude, longitude any) {
	loc, err := c.presence.Update(client.Identity.UserID, latitude, longitude)
	if err != nil {
		deliver(client, &Event{
			Kind:  EventError,
			Error: coreError(ErrCodeInvalidLocation, "Invalid location data"),
		})
		return
	}

	if client.room == "" {
		return
	}
	room, ok := c.registry.Get(client.room)
	if !ok {
		return
	}

	room.Broadcast(&Event{
		Kind:     EventLocationUpdate,
		Room:     client.room,
		UserID:   client.Identity.UserID,
		Username: client.Identity.Username,
		Location: loc,
	}, client.ConnID)
}

// handleGameStateUpdate applies a requested lifecycle state to the room and
// relays the full payload to every member, sender included. The coordinator
// does not judge transition legality; game rules above it do.
func (c *Coordinator) handleGameStateUpdate(client *Client, roomID string, gameState map[string]any) {
	room, ok := c.registry.Get(roomID)
	if !ok {
		deliver(client, &Event{
			Kind:  EventError,
			Error: coreError(ErrCodeRoomNotFound, "Room not found"),
		})
		return
	}

	if s, ok := gameState["state"].(string); ok && s != "" {
		room.SetState(RoomState(s))
	}

	room.Broadcast(&Event{
		Kind:      EventGameState,
		Room:      roomID,
		GameState: gameState,
	}, "")
}

// handleDisconnect runs the leave sequence for the client's current room,
// if any, and deletes its presence entry. Idempotent: a second disconnect
// for the same connection finds nothing left to clean up.
func (c *Coordinator) handleDisconnect(client *Client) {
	if client.room != "" {
		c.handleLeave(client, client.room)
	}
	c.presence.Remove(client.Identity.UserID)
	delete(c.clients, client)
}
