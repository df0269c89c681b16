package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/busshop-tracker/internal/domain/user"
	"github.com/busshop-tracker/internal/platform/persistence"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UserRepository implements the user.Repository interface for PostgreSQL
type UserRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewUserRepository creates a new PostgreSQL user repository.
func NewUserRepository(logger *slog.Logger, db *persistence.PostgresDB) user.Repository {
	return &UserRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// Create stores a new user. The unique index on lower(name) is the backstop
// for concurrent duplicate creates; the service layer checks first.
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (id, name, pin, role, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.querier.Exec(ctx, query,
		u.ID,
		u.Name,
		u.PIN,
		u.Role,
		u.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create user", "name", u.Name, "error", err)
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// List returns all users ordered by name ascending
func (r *UserRepository) List(ctx context.Context) ([]*user.User, error) {
	query := `
		SELECT id, name, pin, role, created_at
		FROM users
		ORDER BY name ASC
	`

	rows, err := r.querier.Query(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list users", "error", err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := make([]*user.User, 0)
	for rows.Next() {
		var u user.User
		if err := rows.Scan(&u.ID, &u.Name, &u.PIN, &u.Role, &u.CreatedAt); err != nil {
			r.logger.Error("Failed to scan user row", "error", err)
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read user rows: %w", err)
	}

	return users, nil
}

// GetByName retrieves a user by name, case-insensitively.
// Returns nil, nil when no user matches.
func (r *UserRepository) GetByName(ctx context.Context, name string) (*user.User, error) {
	query := `
		SELECT id, name, pin, role, created_at
		FROM users
		WHERE LOWER(name) = LOWER($1)
	`

	var u user.User
	err := r.querier.QueryRow(ctx, query, name).Scan(&u.ID, &u.Name, &u.PIN, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get user by name", "name", name, "error", err)
		return nil, fmt.Errorf("failed to get user by name: %w", err)
	}

	return &u, nil
}

// SetPIN binds a claimed PIN to the user
func (r *UserRepository) SetPIN(ctx context.Context, id uuid.UUID, pin string) error {
	query := `UPDATE users SET pin = $1 WHERE id = $2`

	_, err := r.querier.Exec(ctx, query, pin, id)
	if err != nil {
		r.logger.Error("Failed to set user pin", "id", id.String(), "error", err)
		return fmt.Errorf("failed to set user pin: %w", err)
	}

	return nil
}

// ResetPIN clears the PIN so the next login claims a new one. Unknown names
// are a no-op.
func (r *UserRepository) ResetPIN(ctx context.Context, name string) error {
	query := `UPDATE users SET pin = '' WHERE name = $1`

	_, err := r.querier.Exec(ctx, query, name)
	if err != nil {
		r.logger.Error("Failed to reset user pin", "name", name, "error", err)
		return fmt.Errorf("failed to reset user pin: %w", err)
	}

	return nil
}

// Rename changes a user's name keyed on the old name
func (r *UserRepository) Rename(ctx context.Context, oldName, newName string) error {
	query := `UPDATE users SET name = $1 WHERE name = $2`

	_, err := r.querier.Exec(ctx, query, newName, oldName)
	if err != nil {
		r.logger.Error("Failed to rename user", "oldName", oldName, "newName", newName, "error", err)
		return fmt.Errorf("failed to rename user: %w", err)
	}

	return nil
}

// Delete removes the record if present; absence is not an error
func (r *UserRepository) Delete(ctx context.Context, name string) error {
	query := `DELETE FROM users WHERE name = $1`

	_, err := r.querier.Exec(ctx, query, name)
	if err != nil {
		r.logger.Error("Failed to delete user", "name", name, "error", err)
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}

// HasAdmin reports whether at least one admin user exists
func (r *UserRepository) HasAdmin(ctx context.Context) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE role = 'admin')`

	var exists bool
	if err := r.querier.QueryRow(ctx, query).Scan(&exists); err != nil {
		r.logger.Error("Failed to check for admin user", "error", err)
		return false, fmt.Errorf("failed to check for admin user: %w", err)
	}

	return exists, nil
}
