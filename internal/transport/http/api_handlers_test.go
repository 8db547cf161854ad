package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestHealthEndpoint(t *testing.T) {
	s := startTestServer(t)

	resp, err := s.ts.Client().Get(s.ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRegisterEndpoint(t *testing.T) {
	s := startTestServer(t)
	url := s.ts.URL + "/api/users/register"

	resp := postJSON(t, url, RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "password123"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body AuthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "alice", body.Username)
	assert.NotEmpty(t, body.Token)

	// The issued token verifies against the same service.
	claims, err := s.auth.Verify(body.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)

	// Duplicate username or email conflicts.
	resp = postJSON(t, url, RegisterRequest{Username: "alice", Email: "other@example.com", Password: "password123"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Missing fields are a bad request.
	resp = postJSON(t, url, RegisterRequest{Username: "bob"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLoginEndpoint(t *testing.T) {
	s := startTestServer(t)

	resp := postJSON(t, s.ts.URL+"/api/users/register",
		RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "password123"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	loginURL := s.ts.URL + "/api/users/login"

	resp = postJSON(t, loginURL, LoginRequest{UsernameOrEmail: "alice", Password: "password123"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = postJSON(t, loginURL, LoginRequest{UsernameOrEmail: "alice@example.com", Password: "password123"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = postJSON(t, loginURL, LoginRequest{UsernameOrEmail: "alice", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = postJSON(t, loginURL, LoginRequest{UsernameOrEmail: "alice"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
