package core

import (
	"maps"
	"sort"
	"sync"
	"time"
)

// RoomState is the lifecycle state of a room.
type RoomState string

const (
	StateWaiting  RoomState = "waiting"
	StatePlaying  RoomState = "playing"
	StateFinished RoomState = "finished"
)

// Member is a user's participation record within a room.
type Member struct {
	UserID   string
	Username string
	ConnID   string

	// Data holds arbitrary caller-supplied fields from the join payload.
	Data map[string]any
}

// clone returns a detached copy safe to hand out to connections.
func (m Member) clone() Member {
	m.Data = maps.Clone(m.Data)
	return m
}

// Room groups the clients sharing one broadcast scope. Member bookkeeping
// is guarded by a mutex so tests and future readers can inspect it, but all
// mutation flows through the coordinator dispatch loop (one writer).
type Room struct {
	ID        string
	CreatedAt time.Time

	mu      sync.RWMutex
	state   RoomState
	members map[string]Member  // keyed by user id
	clients map[string]*Client // keyed by user id
}

func newRoom(id string) *Room {
	return &Room{
		ID:        id,
		CreatedAt: time.Now(),
		state:     StateWaiting,
		members:   make(map[string]Member),
		clients:   make(map[string]*Client),
	}
}

// Add inserts or replaces the member keyed by its user id. Replacing an
// existing entry is not an error; it is how reconnects take over a seat.
func (r *Room) Add(m Member, c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.members[m.UserID] = m
	r.clients[m.UserID] = c
}

// Remove deletes the member for userID. Returns true if it was present.
func (r *Room) Remove(userID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.members[userID]; !ok {
		return false
	}
	delete(r.members, userID)
	delete(r.clients, userID)
	return true
}

// Has reports whether userID currently occupies a seat in the room.
func (r *Room) Has(userID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.members[userID]
	return ok
}

// Len returns the current member count.
func (r *Room) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members)
}

// State returns the room's lifecycle state.
func (r *Room) State() RoomState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// SetState overwrites the lifecycle state. Transition legality is owned by
// game rules above the coordinator, so any state is accepted here.
func (r *Room) SetState(s RoomState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = s
}

// Snapshot returns detached copies of all members, ordered by user id.
func (r *Room) Snapshot() []Member {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Member, 0, len(r.members))
	for _, m := range r.members {
		out = append(out, m.clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out
}

// Broadcast sends an event to all clients in the room, skipping the
// connection identified by excludeConnID when non-empty. Delivery is
// best-effort per recipient: a slow or gone consumer is dropped silently
// and never fails the broadcast for the others.
func (r *Room) Broadcast(event *Event, excludeConnID string) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, client := range r.clients {
		if excludeConnID != "" && client.ConnID == excludeConnID {
			continue
		}
		deliver(client, event)
	}
}

// deliver hands an event to a single connection. Reports whether the event
// was accepted; callers fanning out to a room ignore the result.
func deliver(c *Client, event *Event) bool {
	select {
	case c.Events <- event:
		return true
	default:
		return false
	}
}
