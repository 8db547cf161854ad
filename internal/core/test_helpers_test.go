package core

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestCoordinator(t *testing.T) (*Coordinator, *Registry, *Tracker) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	registry := NewRegistry()
	presence := NewTracker()
	logger := zerolog.Nop()

	coord := NewCoordinator(registry, presence, &logger)
	go coord.Run(ctx)

	return coord, registry, presence
}

func newTestClient(coord *Coordinator, connID, userID, username string) *Client {
	client := NewClient(connID, Identity{UserID: userID, Username: username})
	coord.RegisterClient(client)
	return client
}

// mustEvent waits for the next event of the given kind, discarding others.
func mustEvent(t *testing.T, ch <-chan *Event, kind EventKind) *Event {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev == nil {
				continue
			}
			if ev.Kind == kind {
				return ev
			}
		default:
			time.Sleep(5 * time.Millisecond)
		}
	}
	t.Fatalf("expected event kind %v not received", kind)
	return nil
}

// noEvent asserts that no event of the given kind arrives within the window.
func noEvent(t *testing.T, ch <-chan *Event, kind EventKind) {
	t.Helper()

	deadline := time.Now().Add(200 * time.Millisecond)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev != nil && ev.Kind == kind {
				t.Fatalf("unexpected event: %+v", ev)
			}
		default:
			time.Sleep(5 * time.Millisecond)
		}
	}
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal(msg)
}
