package core

import (
	"errors"
	"math"
	"testing"
)

func TestTrackerUpdateStoresEntry(t *testing.T) {
	tracker := NewTracker()

	loc, err := tracker.Update("u1", 48.85, 2.35)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.Latitude != 48.85 || loc.Longitude != 2.35 {
		t.Fatalf("unexpected location: %+v", loc)
	}

	entry, ok := tracker.Get("u1")
	if !ok || entry.Location != loc || entry.LastUpdate.IsZero() {
		t.Fatalf("unexpected entry: %+v", entry)
	}
}

func TestTrackerUpdateOverwrites(t *testing.T) {
	tracker := NewTracker()

	_, _ = tracker.Update("u1", 1.0, 2.0)
	_, err := tracker.Update("u1", 3.0, 4.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entry, _ := tracker.Get("u1")
	if entry.Location.Latitude != 3.0 || entry.Location.Longitude != 4.0 {
		t.Fatalf("entry not overwritten: %+v", entry)
	}
	if tracker.Len() != 1 {
		t.Fatalf("expected one entry, got %d", tracker.Len())
	}
}

func TestTrackerUpdateRejectsMalformedCoordinates(t *testing.T) {
	tracker := NewTracker()

	cases := []struct {
		name     string
		lat, lon any
	}{
		{"string latitude", "x", 2.0},
		{"string longitude", 1.0, "y"},
		{"nil latitude", nil, 2.0},
		{"nan", math.NaN(), 2.0},
		{"infinite", 1.0, math.Inf(1)},
		{"bool", true, 2.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := tracker.Update("u1", tc.lat, tc.lon); !errors.Is(err, ErrInvalidLocation) {
				t.Fatalf("expected ErrInvalidLocation, got %v", err)
			}
			if _, ok := tracker.Get("u1"); ok {
				t.Fatal("rejected update must not create an entry")
			}
		})
	}
}

func TestTrackerRemove(t *testing.T) {
	tracker := NewTracker()

	_, _ = tracker.Update("u1", 1.0, 2.0)
	tracker.Remove("u1")
	if _, ok := tracker.Get("u1"); ok {
		t.Fatal("entry must be deleted entirely")
	}

	// Removing an unknown user is a no-op.
	tracker.Remove("ghost")
}
