package core

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
)

func benchmarkLocationBroadcast(b *testing.B, recipients int) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := zerolog.Nop()
	coord := NewCoordinator(NewRegistry(), NewTracker(), &logger)
	go coord.Run(ctx)

	sender := NewClient("sender", Identity{UserID: "sender", Username: "sender"})
	coord.RegisterClient(sender)
	sender.Commands <- &Command{Kind: CommandJoinRoom, Room: "bench"}

	clients := make([]*Client, 0, recipients)
	for i := 0; i < recipients; i++ {
		c := NewClient(fmt.Sprintf("c%d", i), Identity{UserID: fmt.Sprintf("u%d", i), Username: "client"})
		coord.RegisterClient(c)
		c.Commands <- &Command{Kind: CommandJoinRoom, Room: "bench"}
		clients = append(clients, c)
	}

	// Drain events for all but the first recipient to avoid backpressure.
	target := clients[0]
	for _, c := range clients[1:] {
		go func(cl *Client) {
			for range cl.Events {
			}
		}(c)
	}
	go func() {
		for range sender.Events {
		}
	}()

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		sender.Commands <- &Command{Kind: CommandUpdateLocation, Latitude: 1.0, Longitude: 2.0}
		for {
			ev := <-target.Events
			if ev.Kind == EventLocationUpdate {
				break
			}
		}
	}
}

func BenchmarkLocationBroadcast_10(b *testing.B)  { benchmarkLocationBroadcast(b, 10) }
func BenchmarkLocationBroadcast_100(b *testing.B) { benchmarkLocationBroadcast(b, 100) }
func BenchmarkLocationBroadcast_500(b *testing.B) { benchmarkLocationBroadcast(b, 500) }
