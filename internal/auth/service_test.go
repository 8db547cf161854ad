package auth

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georally/georally-server/internal/store/sqlite"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	st, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	jwtConfig := &JWTConfig{
		Secret:   []byte("test-secret-change-me"),
		Issuer:   "test",
		Audience: "test",
		TTL:      time.Hour,
	}

	return NewService(st, jwtConfig)
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "", "a@example.com", "password123")
	assert.ErrorIs(t, err, ErrMissingFields)

	_, _, err = svc.Register(ctx, "alice", "", "password123")
	assert.ErrorIs(t, err, ErrMissingFields)

	_, _, err = svc.Register(ctx, "ab", "a@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidUsername)

	_, _, err = svc.Register(ctx, "alice", "a@example.com", "12345")
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, token, err := svc.Register(ctx, " alice ", "alice@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEmpty(t, token)

	// Username and email collisions are both rejected.
	_, _, err = svc.Register(ctx, "alice", "other@example.com", "password123")
	assert.ErrorIs(t, err, ErrUserExists)
	_, _, err = svc.Register(ctx, "someone", "alice@example.com", "password123")
	assert.ErrorIs(t, err, ErrUserExists)

	// Login works with either username or email.
	_, byName, err := svc.Login(ctx, "alice", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, byName)

	_, byEmail, err := svc.Login(ctx, "alice@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, byEmail)

	_, _, err = svc.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Login(ctx, "ghost", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerify(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, token, err := svc.Register(ctx, "alice", "alice@example.com", "password123")
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, strconv.FormatInt(user.ID, 10), claims.Subject)

	_, err = svc.Verify("")
	assert.ErrorIs(t, err, ErrMissingCredential)

	_, err = svc.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	svc := newTestService(t)

	expired := &JWTConfig{
		Secret:   []byte("test-secret-change-me"),
		Issuer:   "test",
		Audience: "test",
		TTL:      -time.Minute,
	}
	token, err := GenerateToken(expired, 1, "alice")
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	svc := newTestService(t)

	other := &JWTConfig{
		Secret:   []byte("another-secret"),
		Issuer:   "test",
		Audience: "test",
		TTL:      time.Hour,
	}
	token, err := GenerateToken(other, 1, "alice")
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidCredential)
}
