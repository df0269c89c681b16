package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines user directory persistence operations. Name lookups are
// case-insensitive; uniqueness of names is enforced case-insensitively by the
// backing store.
type Repository interface {
	Create(ctx context.Context, u *User) error

	// List returns all users ordered by name ascending.
	List(ctx context.Context) ([]*User, error)

	// GetByName looks a user up by name, case-insensitively.
	// Returns nil, nil when no user matches.
	GetByName(ctx context.Context, name string) (*User, error)

	// SetPIN binds a claimed PIN to the user.
	SetPIN(ctx context.Context, id uuid.UUID, pin string) error

	// ResetPIN clears the PIN so the next login claims a new one.
	// Unknown names are a no-op.
	ResetPIN(ctx context.Context, name string) error

	Rename(ctx context.Context, oldName, newName string) error

	// Delete removes the record if present; absence is not an error.
	Delete(ctx context.Context, name string) error

	// HasAdmin reports whether at least one admin user exists.
	HasAdmin(ctx context.Context) (bool, error)
}
