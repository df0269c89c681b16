package service

import (
	"context"
	"time"

	"github.com/busshop-tracker/internal/domain/entry"
	"github.com/busshop-tracker/internal/domain/report"
	"github.com/busshop-tracker/internal/domain/user"
)

// EntryService defines the interface for work-order operations
type EntryService interface {
	// Upsert creates or fully replaces a work order. A missing id is
	// generated; the derived date and duration fields are recomputed from
	// the raw time inputs before persistence. Returns the stored record.
	Upsert(ctx context.Context, e *entry.Entry) (*entry.Entry, error)

	// List returns entries visible to the actor, narrowed by the criteria,
	// ordered by date descending.
	List(ctx context.Context, actor entry.Actor, criteria entry.Criteria) ([]*entry.Entry, error)

	// Delete removes a work order by id. A missing id is not an error.
	Delete(ctx context.Context, id string) error
}

// ReportService defines the interface for reporting operations
type ReportService interface {
	// WeeklyReport aggregates the week containing now into per-mechanic
	// rows sorted by hours descending.
	WeeklyReport(ctx context.Context, now time.Time) (*report.Weekly, error)
}

// UserService defines the interface for user directory operations
type UserService interface {
	// Login verifies a name/PIN pair. A user with an unclaimed PIN claims
	// the supplied one. Returns ErrUserNotFound for unknown names and
	// ErrWrongPIN on mismatch.
	Login(ctx context.Context, name, pin string) (*user.User, error)

	// ListUsers returns all users ordered by name.
	ListUsers(ctx context.Context) ([]*user.User, error)

	// CreateUser adds a directory record with an unclaimed PIN.
	// Returns ErrDuplicateName when the name is already taken.
	CreateUser(ctx context.Context, name, role string) (*user.User, error)

	// RenameUser changes a user's name.
	// Returns ErrDuplicateName when the new name is already taken.
	RenameUser(ctx context.Context, oldName, newName string) error

	// ResetPIN clears a user's PIN so the next login claims a new one.
	ResetPIN(ctx context.Context, name string) error

	// DeleteUser removes a user by name; absence is not an error.
	DeleteUser(ctx context.Context, name string) error

	// EnsureDefaultUsers seeds the default roster when no admin exists yet.
	EnsureDefaultUsers(ctx context.Context) error
}
