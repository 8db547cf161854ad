package http

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"

	"github.com/georally/georally-server/internal/auth"
	"github.com/georally/georally-server/internal/config"
	"github.com/georally/georally-server/internal/core"
	"github.com/georally/georally-server/internal/proto"
	"github.com/georally/georally-server/internal/store/sqlite"
)

// testServer bundles everything an HTTP/WS test needs.
type testServer struct {
	ts       *httptest.Server
	auth     *auth.Service
	jwtCfg   *auth.JWTConfig
	registry *core.Registry
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	st, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("create test store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	jwtCfg := &auth.JWTConfig{
		Secret:   []byte("test-secret-change-me"),
		Issuer:   "test",
		Audience: "test",
		TTL:      time.Hour,
	}
	authService := auth.NewService(st, jwtCfg)

	logger := zerolog.Nop()
	registry := core.NewRegistry()
	coord := core.NewCoordinator(registry, core.NewTracker(), &logger)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go coord.Run(ctx)

	cfg := config.Default()
	cfg.Addr = ":0"
	server := NewServer(coord, authService, &cfg, &logger)

	ts := httptest.NewServer(server.Handler)
	t.Cleanup(ts.Close)

	return &testServer{ts: ts, auth: authService, jwtCfg: jwtCfg, registry: registry}
}

// makeToken mints a valid credential without going through the REST API.
func (s *testServer) makeToken(t *testing.T, userID int64, username string) string {
	t.Helper()

	token, err := auth.GenerateToken(s.jwtCfg, userID, username)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

// mustOutbound waits for the next outbound message of the given type,
// discarding others.
func mustOutbound(t *testing.T, ctx context.Context, conn *websocket.Conn, msgType string) json.RawMessage {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		var out struct {
			Type string          `json:"type"`
			Data json.RawMessage `json:"data"`
		}
		if err := wsjson.Read(ctx, conn, &out); err != nil {
			t.Fatalf("read outbound: %v", err)
		}
		if out.Type == msgType {
			return out.Data
		}
	}
	t.Fatalf("outbound %q not received", msgType)
	return nil
}

func sendInbound(t *testing.T, ctx context.Context, conn *websocket.Conn, msgType string, data any) {
	t.Helper()

	payload, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal inbound: %v", err)
	}
	if err := wsjson.Write(ctx, conn, proto.Inbound{Type: msgType, Data: payload}); err != nil {
		t.Fatalf("write inbound: %v", err)
	}
}
