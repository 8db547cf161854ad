package core

import (
	"math"
	"sync"
	"time"
)

// Location is a reported pair of coordinates.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// PresenceEntry is a user's latest reported location, independent of which
// room (if any) the user currently occupies.
type PresenceEntry struct {
	UserID     string
	Location   Location
	LastUpdate time.Time
}

// Tracker owns per-user live presence state. Entries appear on the first
// location update and are deleted entirely when the user disconnects.
type Tracker struct {
	mu      sync.RWMutex
	entries map[string]PresenceEntry
}

// NewTracker constructs an empty presence tracker.
func NewTracker() *Tracker {
	return &Tracker{entries: make(map[string]PresenceEntry)}
}

// Update validates the raw coordinate values and overwrites the user's
// presence entry. A rejected update leaves any prior entry untouched.
func (t *Tracker) Update(userID string, latitude, longitude any) (Location, error) {
	lat, ok := numeric(latitude)
	if !ok {
		return Location{}, ErrInvalidLocation
	}
	lon, ok := numeric(longitude)
	if !ok {
		return Location{}, ErrInvalidLocation
	}

	loc := Location{Latitude: lat, Longitude: lon}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[userID] = PresenceEntry{
		UserID:     userID,
		Location:   loc,
		LastUpdate: time.Now(),
	}
	return loc, nil
}

// Get returns a copy of the user's presence entry, if one exists.
func (t *Tracker) Get(userID string) (PresenceEntry, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	entry, ok := t.entries[userID]
	return entry, ok
}

// Remove deletes the user's presence entry entirely. Removing an unknown
// user is a no-op.
func (t *Tracker) Remove(userID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.entries, userID)
}

// Len returns the number of tracked users.
func (t *Tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// numeric reports whether v is a well-formed coordinate value. Decoded JSON
// numbers arrive as float64; anything else, or a non-finite value, fails.
func numeric(v any) (float64, bool) {
	f, ok := v.(float64)
	if !ok {
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
