package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// User represents a registered player account.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// UserStore handles user persistence. Accounts are the only persisted
// state: rooms, presence, and game state live in memory and reset with the
// process.
type UserStore interface {
	// CreateUser creates a new user with a hashed password.
	CreateUser(ctx context.Context, username, email, passwordHash string) (*User, error)

	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, id int64) (*User, error)

	// GetUserByUsername retrieves a user by exact username.
	GetUserByUsername(ctx context.Context, username string) (*User, error)

	// GetUserByEmail retrieves a user by exact email.
	GetUserByEmail(ctx context.Context, email string) (*User, error)

	// GetUserByLogin retrieves a user whose username or email matches login.
	GetUserByLogin(ctx context.Context, login string) (*User, error)
}

// Store aggregates all storage interfaces.
type Store interface {
	UserStore

	// Close closes the underlying database connection.
	Close() error
}
