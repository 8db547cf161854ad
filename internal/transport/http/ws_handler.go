package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	stdhttp "net/http"
	"strings"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"

	"github.com/georally/georally-server/internal/auth"
	"github.com/georally/georally-server/internal/core"
	"github.com/georally/georally-server/internal/proto"
	"github.com/georally/georally-server/internal/utils"
)

// WSHandler verifies the connection credential, upgrades to WebSocket, and
// bridges the connection to a core.Client.
type WSHandler struct {
	coord *core.Coordinator
	auth  *auth.Service
	log   *zerolog.Logger
}

// NewWSHandler builds a new WebSocket handler.
func NewWSHandler(coord *core.Coordinator, authService *auth.Service, logger *zerolog.Logger) stdhttp.Handler {
	return &WSHandler{coord: coord, auth: authService, log: logger}
}

func (h *WSHandler) ServeHTTP(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	ctx := r.Context()

	// The credential is presented once, as connection metadata. A failed
	// verification refuses the connection before the upgrade, so no room
	// event is ever dispatched for it.
	claims, err := h.auth.Verify(credentialFromRequest(r))
	if err != nil {
		msg := "invalid token"
		if errors.Is(err, auth.ErrMissingCredential) {
			msg = "authentication required"
		}
		h.log.Debug().Err(err).Msg("ws credential rejected")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(stdhttp.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(ErrorResponse{Error: msg})
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("ws accept error")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "internal error")

	client := core.NewClient(utils.NewConnID(), core.Identity{
		UserID:   claims.Subject,
		Username: claims.Username,
	})
	h.coord.RegisterClient(client)
	defer func() {
		h.coord.UnregisterClient(client)
		close(client.Commands)
	}()

	h.log.Info().Str("conn_id", client.ConnID).Str("username", claims.Username).Msg("client connected")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 2)
	go func() {
		errCh <- h.readLoop(ctx, conn, client)
	}()
	go func() {
		errCh <- h.writeLoop(ctx, conn, client)
	}()

	err = <-errCh
	cancel() // stop the other goroutine
	<-errCh

	status := websocket.StatusNormalClosure
	reason := "closing"
	if err != nil && !errors.Is(err, context.Canceled) {
		if errors.Is(err, io.EOF) {
			err = nil
		}
		if s := websocket.CloseStatus(err); s != 0 {
			status = s
		}
		if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
			err = nil
		}
		if err != nil {
			if status == websocket.StatusNormalClosure {
				status = websocket.StatusInternalError
			}
			reason = err.Error()
			h.log.Warn().Err(err).Msg("ws connection closed with error")
		}
	}

	h.log.Info().Str("conn_id", client.ConnID).Str("username", claims.Username).Msg("client disconnected")
	conn.Close(status, reason)
}

func (h *WSHandler) readLoop(ctx context.Context, conn *websocket.Conn, client *core.Client) error {
	for {
		var inbound proto.Inbound
		if err := wsjson.Read(ctx, conn, &inbound); err != nil {
			return err
		}

		cmd, protoErr, err := inboundToCommand(inbound)
		if err != nil {
			h.log.Warn().Err(err).Str("conn_id", client.ConnID).Msg("failed to map inbound")
			return err
		}
		if protoErr != nil {
			if writeErr := wsjson.Write(ctx, conn, proto.Outbound{
				Type: proto.OutboundTypeError,
				Data: protoErr,
			}); writeErr != nil {
				return writeErr
			}
			continue
		}
		client.Commands <- cmd
	}
}

func (h *WSHandler) writeLoop(ctx context.Context, conn *websocket.Conn, client *core.Client) error {
	for {
		select {
		case event, ok := <-client.Events:
			if !ok {
				return nil
			}
			if err := wsjson.Write(ctx, conn, outboundFromEvent(event)); err != nil {
				h.log.Error().Err(err).Str("conn_id", client.ConnID).Msg("write ws event")
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// credentialFromRequest extracts the bearer credential from the
// Authorization header or, for browser clients, the token query parameter.
func credentialFromRequest(r *stdhttp.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
	}
	return r.URL.Query().Get("token")
}
