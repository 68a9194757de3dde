// Package users persists the accounts created after a passed
// registration challenge.
package users

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrUsernameTaken is returned when a registration collides with an
	// existing username.
	ErrUsernameTaken = errors.New("users: username already taken")

	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("users: user not found")
)

// User is a registered agent account.
type User struct {
	ID                int64     `json:"id"`
	Username          string    `json:"username"`
	APIKey            string    `json:"api_key"`
	VerificationScore int       `json:"verification_score"`
	CreatedAt         time.Time `json:"created_at"`
}

// Repository is the user-management collaborator the registration flow
// depends on.
type Repository interface {
	// Create inserts a new user, failing with ErrUsernameTaken when the
	// username is already registered.
	Create(ctx context.Context, username, apiKey string, verificationScore int) (*User, error)

	// ByAPIKey resolves the account an API key belongs to, failing with
	// ErrNotFound for unknown keys.
	ByAPIKey(ctx context.Context, apiKey string) (*User, error)

	// ByID resolves an account by its numeric ID, failing with
	// ErrNotFound for unknown IDs.
	ByID(ctx context.Context, id int64) (*User, error)

	// Ping verifies the backing database is reachable.
	Ping(ctx context.Context) error

	// Close releases the backing database.
	Close() error
}
