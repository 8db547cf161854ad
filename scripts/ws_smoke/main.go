package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/georally/georally-server/internal/proto"
)

func main() {
	if err := run(); err != nil {
		log.Printf("ws_smoke: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:8080/ws", "WebSocket address")
	token := flag.String("token", "", "JWT access token")
	room := flag.String("room", "smoke-rally", "room id to join")
	lat := flag.Float64("lat", 48.8566, "latitude to report")
	lon := flag.Float64("lon", 2.3522, "longitude to report")
	timeout := flag.Duration("timeout", 5*time.Second, "total timeout for the run")
	flag.Parse()

	if *token == "" {
		return fmt.Errorf("missing -token (register via POST /api/users/register first)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	header := http.Header{}
	header.Set("Authorization", "Bearer "+*token)
	conn, _, err := websocket.Dial(ctx, *addr, &websocket.DialOptions{HTTPHeader: header})
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	send := func(msgType string, data any) error {
		payload, marshalErr := json.Marshal(data)
		if marshalErr != nil {
			return fmt.Errorf("marshal %s: %w", msgType, marshalErr)
		}
		if writeErr := wsjson.Write(ctx, conn, proto.Inbound{Type: msgType, Data: payload}); writeErr != nil {
			return fmt.Errorf("send %s: %w", msgType, writeErr)
		}
		return nil
	}

	if err := send(proto.InboundTypeJoinRoom, proto.JoinRoomData{
		RoomID:     *room,
		PlayerData: map[string]any{"client": "ws_smoke"},
	}); err != nil {
		return err
	}
	if err := send(proto.InboundTypeUpdateLocation, proto.UpdateLocationData{
		RoomID:   *room,
		Location: &proto.LocationData{Latitude: *lat, Longitude: *lon},
	}); err != nil {
		return err
	}
	if err := send(proto.InboundTypeUpdateGameState, proto.UpdateGameStateData{
		RoomID:    *room,
		GameState: map[string]any{"state": "playing"},
	}); err != nil {
		return err
	}

	sawRoomState := false
	for {
		var outbound struct {
			Type string          `json:"type"`
			Data json.RawMessage `json:"data"`
		}
		if err := wsjson.Read(ctx, conn, &outbound); err != nil {
			return fmt.Errorf("read: %w", err)
		}

		fmt.Printf("Received: type=%s data=%s\n", outbound.Type, outbound.Data)

		switch outbound.Type {
		case proto.OutboundTypeRoomState:
			sawRoomState = true
		case proto.OutboundTypeError:
			var evt proto.ErrorData
			if unmarshalErr := json.Unmarshal(outbound.Data, &evt); unmarshalErr != nil {
				return fmt.Errorf("unmarshal error event: %w", unmarshalErr)
			}
			return fmt.Errorf("server error: %s", evt.Message)
		case proto.OutboundTypeGameState:
			// Sender receives its own gameStateUpdate echo, so this is the
			// last expected message of the run.
			if !sawRoomState {
				return fmt.Errorf("gameStateUpdate arrived before roomState")
			}
			fmt.Println("Smoke run OK")
			return nil
		default:
			// keep looping for gameStateUpdate
		}
	}
}
