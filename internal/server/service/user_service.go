package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/busshop-tracker/internal/domain/user"
)

// defaultMechanics is the roster seeded on first startup, alongside three
// admin accounts. Mechanics get sequential PINs starting at 1001.
var defaultMechanics = []string{
	"Angel Ramos", "Fasso Yolanola", "Hecktor Hernandez", "Joe D.", "Jorge Martinez",
	"Jose Rivas", "Jose Tenesaca", "Justin Tenesaca", "LuzFazo", "Marco Naula",
	"Marcial Rosendo", "Parkash Singh", "Ronaldo Guatemala", "Selvin Telles",
	"Shirlene Rawana", "Wilmer Guanuchi",
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userRepo user.Repository
	logger   *slog.Logger
}

// NewUserService creates a new user service
func NewUserService(logger *slog.Logger, userRepo user.Repository) UserService {
	return &UserServiceImpl{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Login looks the user up case-insensitively and verifies the PIN. An empty
// stored PIN means the account is unclaimed: the supplied PIN is bound to it
// and the login succeeds.
func (s *UserServiceImpl) Login(ctx context.Context, name, pin string) (*user.User, error) {
	u, err := s.userRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, user.ErrUserNotFound{Name: name}
	}

	if !u.PINSet() {
		if err := s.userRepo.SetPIN(ctx, u.ID, pin); err != nil {
			return nil, err
		}
		u.PIN = pin
		s.logger.Info("user claimed pin", "name", u.Name)
		return u, nil
	}

	if u.PIN != pin {
		return nil, user.ErrWrongPIN{Name: u.Name}
	}

	return u, nil
}

// ListUsers returns all users ordered by name
func (s *UserServiceImpl) ListUsers(ctx context.Context) ([]*user.User, error) {
	return s.userRepo.List(ctx)
}

// CreateUser adds a directory record with an unclaimed PIN, checking for
// duplicate names first. The store's unique index backstops concurrent
// creates.
func (s *UserServiceImpl) CreateUser(ctx context.Context, name, role string) (*user.User, error) {
	name = strings.TrimSpace(name)

	existing, err := s.userRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, user.ErrDuplicateName{Name: name}
	}

	u, err := user.NewUser(name, role)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

// RenameUser changes a user's name, refusing names already taken by another
// user.
func (s *UserServiceImpl) RenameUser(ctx context.Context, oldName, newName string) error {
	oldName = strings.TrimSpace(oldName)
	newName = strings.TrimSpace(newName)

	existing, err := s.userRepo.GetByName(ctx, newName)
	if err != nil {
		return err
	}
	if existing != nil && !strings.EqualFold(existing.Name, oldName) {
		return user.ErrDuplicateName{Name: newName}
	}

	return s.userRepo.Rename(ctx, oldName, newName)
}

// ResetPIN clears a user's PIN so the next login claims a new one
func (s *UserServiceImpl) ResetPIN(ctx context.Context, name string) error {
	return s.userRepo.ResetPIN(ctx, name)
}

// DeleteUser removes a user by name, idempotently
func (s *UserServiceImpl) DeleteUser(ctx context.Context, name string) error {
	return s.userRepo.Delete(ctx, name)
}

// EnsureDefaultUsers seeds the default mechanic roster and three admin
// accounts, but only when no admin user exists yet. Existing directories are
// left untouched.
func (s *UserServiceImpl) EnsureDefaultUsers(ctx context.Context) error {
	hasAdmin, err := s.userRepo.HasAdmin(ctx)
	if err != nil {
		return err
	}
	if hasAdmin {
		return nil
	}

	mechanics := make([]string, len(defaultMechanics))
	copy(mechanics, defaultMechanics)
	sort.Strings(mechanics)

	for i, name := range mechanics {
		u, err := user.NewUser(name, user.RoleMechanic)
		if err != nil {
			return err
		}
		u.PIN = fmt.Sprintf("%d", 1001+i)
		if err := s.userRepo.Create(ctx, u); err != nil {
			return err
		}
	}

	for i := 1; i <= 3; i++ {
		u, err := user.NewUser(fmt.Sprintf("Admin %d", i), user.RoleAdmin)
		if err != nil {
			return err
		}
		u.PIN = fmt.Sprintf("999%d", i)
		if err := s.userRepo.Create(ctx, u); err != nil {
			return err
		}
	}

	s.logger.Info("seeded default admins and mechanics", "mechanics", len(mechanics))
	return nil
}
