package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/georally/georally-server/internal/store"
)

var (
	// ErrInvalidCredentials is returned when login/password don't match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserExists is returned when the username or email is taken.
	ErrUserExists = errors.New("user already exists")
	// ErrMissingFields is returned when a required field is empty.
	ErrMissingFields = errors.New("missing fields")
	// ErrInvalidUsername is returned when the username doesn't meet constraints.
	ErrInvalidUsername = errors.New("invalid username")
	// ErrInvalidPassword is returned when the password doesn't meet constraints.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrMissingCredential is returned when a connection presents no credential.
	ErrMissingCredential = errors.New("authentication required")
	// ErrInvalidCredential is returned for a bad signature or expired credential.
	ErrInvalidCredential = errors.New("invalid credential")
)

// Service issues and verifies identity credentials.
type Service struct {
	store     store.UserStore
	jwtConfig *JWTConfig
}

// NewService creates a new authentication service.
func NewService(userStore store.UserStore, jwtConfig *JWTConfig) *Service {
	return &Service{
		store:     userStore,
		jwtConfig: jwtConfig,
	}
}

// Register creates a new user with a hashed password and returns the user
// together with a signed credential.
func (s *Service) Register(ctx context.Context, username, email, password string) (*store.User, string, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return nil, "", ErrMissingFields
	}
	if len(username) < 3 || len(username) > 32 {
		return nil, "", ErrInvalidUsername
	}
	if len(password) < 6 {
		return nil, "", ErrInvalidPassword
	}

	if existing, err := s.store.GetUserByUsername(ctx, username); err == nil && existing != nil {
		return nil, "", ErrUserExists
	}
	if existing, err := s.store.GetUserByEmail(ctx, email); err == nil && existing != nil {
		return nil, "", ErrUserExists
	}

	hashedPassword, err := HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user, err := s.store.CreateUser(ctx, username, email, hashedPassword)
	if err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := GenerateToken(s.jwtConfig, user.ID, user.Username)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}

	return user, token, nil
}

// Login validates credentials against a username or email and returns the
// user together with a signed credential.
func (s *Service) Login(ctx context.Context, login, password string) (*store.User, string, error) {
	if login == "" || password == "" {
		return nil, "", ErrMissingFields
	}

	user, err := s.store.GetUserByLogin(ctx, login)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if errPwd := ComparePassword(user.PasswordHash, password); errPwd != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := GenerateToken(s.jwtConfig, user.ID, user.Username)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}

	return user, token, nil
}

// Verify validates the credential presented at connection time and returns
// its claims. A failed verification keeps the connection from completing
// setup; no events are ever dispatched for it.
func (s *Service) Verify(credential string) (*Claims, error) {
	if credential == "" {
		return nil, ErrMissingCredential
	}
	claims, err := ValidateToken(s.jwtConfig, credential)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}
	return claims, nil
}
