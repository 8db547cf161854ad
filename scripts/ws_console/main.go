package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/georally/georally-server/internal/proto"
)

func main() {
	if err := run(); err != nil {
		log.Printf("ws_console: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:8080/ws", "WebSocket address")
	token := flag.String("token", "", "JWT access token")
	room := flag.String("room", "", "room to join on connect")
	flag.Parse()

	if *token == "" {
		return fmt.Errorf("missing -token (register via POST /api/users/register first)")
	}

	baseCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(baseCtx)
	defer cancel()

	header := http.Header{}
	header.Set("Authorization", "Bearer "+*token)
	conn, _, err := websocket.Dial(ctx, *addr, &websocket.DialOptions{HTTPHeader: header})
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	session := &consoleSession{ctx: ctx, conn: conn, room: *room}

	if *room != "" {
		if err := session.send(proto.InboundTypeJoinRoom, proto.JoinRoomData{RoomID: *room}); err != nil {
			return err
		}
	}

	fmt.Printf("Connected to %s\n", *addr)
	fmt.Println("Commands: /join <room>, /leave, /loc <lat> <lon>, /state <state>. Ctrl+C to exit.")

	go func() {
		defer cancel()
		readLoop(ctx, conn)
	}()

	session.writeLoop()

	stop()
	cancel()
	_ = conn.Close(websocket.StatusNormalClosure, "bye")
	return nil
}

type consoleSession struct {
	ctx  context.Context
	conn *websocket.Conn
	room string
}

func (s *consoleSession) send(msgType string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", msgType, err)
	}
	if err := wsjson.Write(s.ctx, s.conn, proto.Inbound{Type: msgType, Data: payload}); err != nil {
		return fmt.Errorf("send %s: %w", msgType, err)
	}
	return nil
}

func (s *consoleSession) writeLoop() {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-s.ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			if err := s.handleLine(strings.TrimSpace(line)); err != nil {
				log.Printf("%v", err)
			}
		}
	}
}

func (s *consoleSession) handleLine(line string) error {
	if line == "" {
		return nil
	}
	fields := strings.Fields(line)
	switch fields[0] {
	case "/join":
		if len(fields) != 2 {
			return fmt.Errorf("usage: /join <room>")
		}
		s.room = fields[1]
		return s.send(proto.InboundTypeJoinRoom, proto.JoinRoomData{RoomID: s.room})
	case "/leave":
		if s.room == "" {
			return fmt.Errorf("not in a room")
		}
		room := s.room
		s.room = ""
		return s.send(proto.InboundTypeLeaveRoom, proto.LeaveRoomData{RoomID: room})
	case "/loc":
		if len(fields) != 3 {
			return fmt.Errorf("usage: /loc <lat> <lon>")
		}
		lat, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return fmt.Errorf("bad latitude: %w", err)
		}
		lon, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return fmt.Errorf("bad longitude: %w", err)
		}
		return s.send(proto.InboundTypeUpdateLocation, proto.UpdateLocationData{
			RoomID:   s.room,
			Location: &proto.LocationData{Latitude: lat, Longitude: lon},
		})
	case "/state":
		if len(fields) != 2 {
			return fmt.Errorf("usage: /state <state>")
		}
		if s.room == "" {
			return fmt.Errorf("not in a room")
		}
		return s.send(proto.InboundTypeUpdateGameState, proto.UpdateGameStateData{
			RoomID:    s.room,
			GameState: map[string]any{"state": fields[1]},
		})
	default:
		return fmt.Errorf("unknown command %q", fields[0])
	}
}

func readLoop(ctx context.Context, conn *websocket.Conn) {
	for {
		var outbound struct {
			Type string          `json:"type"`
			Data json.RawMessage `json:"data"`
		}
		if err := wsjson.Read(ctx, conn, &outbound); err != nil {
			// Treat expected shutdowns quietly.
			if errors.Is(err, context.Canceled) {
				return
			}
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				return
			}
			log.Printf("read error: %v", err)
			return
		}

		switch outbound.Type {
		case proto.OutboundTypeRoomState:
			var evt proto.RoomStateData
			if err := json.Unmarshal(outbound.Data, &evt); err != nil {
				log.Printf("unmarshal roomState: %v", err)
				continue
			}
			fmt.Printf("[room %s] state=%s players=%d\n", evt.RoomID, evt.State, len(evt.Players))
		case proto.OutboundTypePlayerJoined:
			var evt proto.PlayerJoinedData
			if err := json.Unmarshal(outbound.Data, &evt); err != nil {
				log.Printf("unmarshal playerJoined: %v", err)
				continue
			}
			fmt.Printf("-> %s joined\n", evt.Username)
		case proto.OutboundTypePlayerLeft:
			var evt proto.PlayerLeftData
			if err := json.Unmarshal(outbound.Data, &evt); err != nil {
				log.Printf("unmarshal playerLeft: %v", err)
				continue
			}
			fmt.Printf("<- %s left\n", evt.Username)
		case proto.OutboundTypeLocationUpdate:
			var evt proto.LocationUpdateData
			if err := json.Unmarshal(outbound.Data, &evt); err != nil {
				log.Printf("unmarshal playerLocationUpdate: %v", err)
				continue
			}
			fmt.Printf("%s @ %.5f,%.5f\n", evt.Username, evt.Location.Latitude, evt.Location.Longitude)
		case proto.OutboundTypeError:
			var evt proto.ErrorData
			if err := json.Unmarshal(outbound.Data, &evt); err != nil {
				log.Printf("unmarshal error: %v", err)
				continue
			}
			fmt.Printf("error: %s\n", evt.Message)
		default:
			fmt.Printf("type=%s data=%s\n", outbound.Type, outbound.Data)
		}
	}
}
