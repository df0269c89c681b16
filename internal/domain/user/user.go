// Package user defines the shop's user directory: mechanics and admins
// identified by name, authenticated with a claim-on-first-login 4-digit PIN.
package user

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Roles understood by the directory.
const (
	RoleMechanic = "mechanic"
	RoleAdmin    = "admin"
)

// Common errors
var (
	ErrEmptyName   = errors.New("user name cannot be empty")
	ErrInvalidRole = errors.New("role must be mechanic or admin")
)

// User is one directory record. PIN stays empty until the first successful
// login claims it.
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	PIN       string    `json:"-"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUser creates a new directory record with an empty, unclaimed PIN.
func NewUser(name, role string) (*User, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if role != RoleMechanic && role != RoleAdmin {
		return nil, ErrInvalidRole
	}

	return &User{
		ID:        uuid.New(),
		Name:      name,
		PIN:       "",
		Role:      role,
		CreatedAt: time.Now(),
	}, nil
}

// PINSet reports whether the PIN has been claimed.
func (u *User) PINSet() bool {
	return u.PIN != ""
}

// ErrUserNotFound indicates a missing directory record
type ErrUserNotFound struct {
	Name string
}

func (e ErrUserNotFound) Error() string {
	return "user not found: " + e.Name
}

// Is implements the errors.Is interface for ErrUserNotFound
func (e ErrUserNotFound) Is(target error) bool {
	t, ok := target.(ErrUserNotFound)
	if !ok {
		return false
	}
	// An empty target name matches any ErrUserNotFound
	if t.Name == "" {
		return true
	}
	return e.Name == t.Name
}

// ErrDuplicateName indicates a name uniqueness violation
type ErrDuplicateName struct {
	Name string
}

func (e ErrDuplicateName) Error() string {
	return "user with this name already exists: " + e.Name
}

// Is implements the errors.Is interface for ErrDuplicateName
func (e ErrDuplicateName) Is(target error) bool {
	t, ok := target.(ErrDuplicateName)
	if !ok {
		return false
	}
	if t.Name == "" {
		return true
	}
	return e.Name == t.Name
}

// ErrWrongPIN indicates a PIN mismatch at login
type ErrWrongPIN struct {
	Name string
}

func (e ErrWrongPIN) Error() string {
	return "wrong pin for user: " + e.Name
}
