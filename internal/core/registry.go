package core

import "sync"

// Registry owns the mapping from room id to live room. Rooms come into
// existence on first join and are deleted by the departure that empties
// them; a room with zero members never survives an operation.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

// NewRegistry constructs an empty room registry.
func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]*Room)}
}

// Ensure returns the room for id, creating it in the waiting state if it
// does not exist yet. Idempotent.
func (g *Registry) Ensure(id string) *Room {
	g.mu.Lock()
	defer g.mu.Unlock()
	room, ok := g.rooms[id]
	if !ok {
		room = newRoom(id)
		g.rooms[id] = room
	}
	return room
}

// Get returns the room for id, if it exists.
func (g *Registry) Get(id string) (*Room, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	room, ok := g.rooms[id]
	return room, ok
}

// RemoveMember removes userID from the room and deletes the room in the
// same step if that removal emptied it. Returns the room and whether the
// member was actually present.
func (g *Registry) RemoveMember(roomID, userID string) (*Room, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	room, ok := g.rooms[roomID]
	if !ok {
		return nil, false
	}
	if !room.Remove(userID) {
		return room, false
	}
	if room.Len() == 0 {
		delete(g.rooms, roomID)
	}
	return room, true
}

// Len returns the number of live rooms.
func (g *Registry) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.rooms)
}
