package http

import (
	"encoding/json"
	"maps"

	"github.com/georally/georally-server/internal/core"
	"github.com/georally/georally-server/internal/proto"
)

func inboundToCommand(inbound proto.Inbound) (*core.Command, *proto.ErrorData, error) {
	switch inbound.Type {
	case proto.InboundTypeJoinRoom:
		var data proto.JoinRoomData
		if err := json.Unmarshal(inbound.Data, &data); err != nil {
			return nil, nil, err
		}
		if data.RoomID == "" {
			return nil, &proto.ErrorData{Message: "roomId is required"}, nil
		}
		return &core.Command{
			Kind:       core.CommandJoinRoom,
			Room:       data.RoomID,
			PlayerData: data.PlayerData,
		}, nil, nil
	case proto.InboundTypeLeaveRoom:
		var data proto.LeaveRoomData
		if err := json.Unmarshal(inbound.Data, &data); err != nil {
			return nil, nil, err
		}
		if data.RoomID == "" {
			return nil, &proto.ErrorData{Message: "roomId is required"}, nil
		}
		return &core.Command{
			Kind: core.CommandLeaveRoom,
			Room: data.RoomID,
		}, nil, nil
	case proto.InboundTypeUpdateLocation:
		var data proto.UpdateLocationData
		if err := json.Unmarshal(inbound.Data, &data); err != nil {
			return nil, nil, err
		}
		// A missing or malformed location is judged by the presence
		// tracker, not here; nil coordinates fail its validation.
		cmd := &core.Command{
			Kind: core.CommandUpdateLocation,
			Room: data.RoomID,
		}
		if data.Location != nil {
			cmd.Latitude = data.Location.Latitude
			cmd.Longitude = data.Location.Longitude
		}
		return cmd, nil, nil
	case proto.InboundTypeUpdateGameState:
		var data proto.UpdateGameStateData
		if err := json.Unmarshal(inbound.Data, &data); err != nil {
			return nil, nil, err
		}
		if data.RoomID == "" {
			return nil, &proto.ErrorData{Message: "roomId is required"}, nil
		}
		return &core.Command{
			Kind:      core.CommandUpdateGameState,
			Room:      data.RoomID,
			GameState: data.GameState,
		}, nil, nil
	default:
		return nil, &proto.ErrorData{Message: "unknown message type"}, nil
	}
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventRoomState:
		players := make([]map[string]any, 0, len(event.Players))
		for _, m := range event.Players {
			players = append(players, playerObject(m))
		}
		return proto.Outbound{
			Type: proto.OutboundTypeRoomState,
			Data: proto.RoomStateData{
				RoomID:  event.Room,
				Players: players,
				State:   string(event.State),
			},
		}
	case core.EventPlayerJoined:
		return proto.Outbound{
			Type: proto.OutboundTypePlayerJoined,
			Data: proto.PlayerJoinedData{
				UserID:     event.UserID,
				Username:   event.Username,
				PlayerData: event.PlayerData,
			},
		}
	case core.EventPlayerLeft:
		return proto.Outbound{
			Type: proto.OutboundTypePlayerLeft,
			Data: proto.PlayerLeftData{
				UserID:   event.UserID,
				Username: event.Username,
			},
		}
	case core.EventLocationUpdate:
		return proto.Outbound{
			Type: proto.OutboundTypeLocationUpdate,
			Data: proto.LocationUpdateData{
				UserID:   event.UserID,
				Username: event.Username,
				Location: proto.LocationBody{
					Latitude:  event.Location.Latitude,
					Longitude: event.Location.Longitude,
				},
			},
		}
	case core.EventGameState:
		// The payload is relayed verbatim.
		return proto.Outbound{
			Type: proto.OutboundTypeGameState,
			Data: event.GameState,
		}
	case core.EventError:
		if event.Error == nil {
			return proto.Outbound{Type: proto.OutboundTypeError, Data: proto.ErrorData{Message: "unknown error"}}
		}
		return proto.Outbound{
			Type: proto.OutboundTypeError,
			Data: proto.ErrorData{Message: event.Error.Message},
		}
	default:
		return proto.Outbound{Type: proto.OutboundTypeError, Data: proto.ErrorData{Message: "unknown event"}}
	}
}

// playerObject renders a member the way clients expect it: userId,
// username, connectionId, and the join payload fields flattened alongside.
func playerObject(m core.Member) map[string]any {
	obj := make(map[string]any, len(m.Data)+3)
	maps.Copy(obj, m.Data)
	obj["userId"] = m.UserID
	obj["username"] = m.Username
	obj["connectionId"] = m.ConnID
	return obj
}
