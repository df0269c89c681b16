package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/busshop-tracker/internal/domain/user"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context) ([]*user.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*user.User), args.Error(1)
}

func (m *MockUserRepository) GetByName(ctx context.Context, name string) (*user.User, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) SetPIN(ctx context.Context, id uuid.UUID, pin string) error {
	args := m.Called(ctx, id, pin)
	return args.Error(0)
}

func (m *MockUserRepository) ResetPIN(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockUserRepository) Rename(ctx context.Context, oldName, newName string) error {
	args := m.Called(ctx, oldName, newName)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockUserRepository) HasAdmin(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func testServiceLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("VerifiesExistingPIN", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		svc := NewUserService(testServiceLogger(), mockRepo)

		stored := &user.User{ID: uuid.New(), Name: "Angel Ramos", PIN: "1001", Role: user.RoleMechanic}
		mockRepo.On("GetByName", mock.Anything, "angel ramos").Return(stored, nil)

		u, err := svc.Login(ctx, "angel ramos", "1001")
		require.NoError(t, err)
		assert.Equal(t, stored, u)
		mockRepo.AssertExpectations(t)
		mockRepo.AssertNotCalled(t, "SetPIN", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ClaimsUnclaimedPIN", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		svc := NewUserService(testServiceLogger(), mockRepo)

		stored := &user.User{ID: uuid.New(), Name: "Jose Rivas", PIN: "", Role: user.RoleMechanic}
		mockRepo.On("GetByName", mock.Anything, "Jose Rivas").Return(stored, nil)
		mockRepo.On("SetPIN", mock.Anything, stored.ID, "4321").Return(nil)

		u, err := svc.Login(ctx, "Jose Rivas", "4321")
		require.NoError(t, err)
		assert.Equal(t, "4321", u.PIN)
		assert.True(t, u.PINSet())
		mockRepo.AssertExpectations(t)
	})

	t.Run("WrongPIN", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		svc := NewUserService(testServiceLogger(), mockRepo)

		stored := &user.User{ID: uuid.New(), Name: "Angel Ramos", PIN: "1001", Role: user.RoleMechanic}
		mockRepo.On("GetByName", mock.Anything, "Angel Ramos").Return(stored, nil)

		u, err := svc.Login(ctx, "Angel Ramos", "9999")
		assert.Nil(t, u)
		var wrongPIN user.ErrWrongPIN
		assert.ErrorAs(t, err, &wrongPIN)
		mockRepo.AssertExpectations(t)
	})

	t.Run("UnknownName", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		svc := NewUserService(testServiceLogger(), mockRepo)

		mockRepo.On("GetByName", mock.Anything, "Nobody").Return(nil, nil)

		u, err := svc.Login(ctx, "Nobody", "1234")
		assert.Nil(t, u)
		assert.ErrorIs(t, err, user.ErrUserNotFound{})
		mockRepo.AssertExpectations(t)
	})
}

func TestUserService_CreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		svc := NewUserService(testServiceLogger(), mockRepo)

		mockRepo.On("GetByName", mock.Anything, "New Mechanic").Return(nil, nil)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*user.User")).Return(nil)

		u, err := svc.CreateUser(ctx, "  New Mechanic  ", user.RoleMechanic)
		require.NoError(t, err)
		assert.Equal(t, "New Mechanic", u.Name, "name should be trimmed")
		assert.False(t, u.PINSet())
		mockRepo.AssertExpectations(t)
	})

	t.Run("DuplicateName", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		svc := NewUserService(testServiceLogger(), mockRepo)

		existing := &user.User{ID: uuid.New(), Name: "Angel Ramos", Role: user.RoleMechanic}
		mockRepo.On("GetByName", mock.Anything, "Angel Ramos").Return(existing, nil)

		u, err := svc.CreateUser(ctx, "Angel Ramos", user.RoleMechanic)
		assert.Nil(t, u)
		assert.ErrorIs(t, err, user.ErrDuplicateName{})
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("InvalidRole", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		svc := NewUserService(testServiceLogger(), mockRepo)

		mockRepo.On("GetByName", mock.Anything, "Someone").Return(nil, nil)

		u, err := svc.CreateUser(ctx, "Someone", "manager")
		assert.Nil(t, u)
		assert.ErrorIs(t, err, user.ErrInvalidRole)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestUserService_RenameUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		svc := NewUserService(testServiceLogger(), mockRepo)

		mockRepo.On("GetByName", mock.Anything, "New Name").Return(nil, nil)
		mockRepo.On("Rename", mock.Anything, "Old Name", "New Name").Return(nil)

		err := svc.RenameUser(ctx, "Old Name", "New Name")
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("NewNameTaken", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		svc := NewUserService(testServiceLogger(), mockRepo)

		existing := &user.User{ID: uuid.New(), Name: "Taken", Role: user.RoleMechanic}
		mockRepo.On("GetByName", mock.Anything, "Taken").Return(existing, nil)

		err := svc.RenameUser(ctx, "Old Name", "Taken")
		assert.ErrorIs(t, err, user.ErrDuplicateName{})
		mockRepo.AssertNotCalled(t, "Rename", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("CaseOnlyRenameAllowed", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		svc := NewUserService(testServiceLogger(), mockRepo)

		// Changing only the capitalization of your own name is not a conflict
		existing := &user.User{ID: uuid.New(), Name: "angel ramos", Role: user.RoleMechanic}
		mockRepo.On("GetByName", mock.Anything, "Angel Ramos").Return(existing, nil)
		mockRepo.On("Rename", mock.Anything, "angel ramos", "Angel Ramos").Return(nil)

		err := svc.RenameUser(ctx, "angel ramos", "Angel Ramos")
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}

func TestUserService_EnsureDefaultUsers(t *testing.T) {
	ctx := context.Background()

	t.Run("SkipsWhenAdminExists", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		svc := NewUserService(testServiceLogger(), mockRepo)

		mockRepo.On("HasAdmin", mock.Anything).Return(true, nil)

		err := svc.EnsureDefaultUsers(ctx)
		assert.NoError(t, err)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("SeedsRosterAndAdmins", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		svc := NewUserService(testServiceLogger(), mockRepo)

		mockRepo.On("HasAdmin", mock.Anything).Return(false, nil)

		var created []*user.User
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*user.User")).
			Run(func(args mock.Arguments) {
				created = append(created, args.Get(1).(*user.User))
			}).
			Return(nil)

		err := svc.EnsureDefaultUsers(ctx)
		require.NoError(t, err)
		require.Len(t, created, len(defaultMechanics)+3)

		// Mechanics come first, name-sorted, with sequential PINs from 1001
		assert.Equal(t, "Angel Ramos", created[0].Name)
		assert.Equal(t, "1001", created[0].PIN)
		assert.Equal(t, user.RoleMechanic, created[0].Role)
		assert.Equal(t, "1002", created[1].PIN)

		admins := created[len(defaultMechanics):]
		for i, admin := range admins {
			assert.Equal(t, user.RoleAdmin, admin.Role)
			assert.Equal(t, []string{"9991", "9992", "9993"}[i], admin.PIN)
		}
		mockRepo.AssertExpectations(t)
	})
}

func TestUserService_SimpleMutations(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockUserRepository)
	svc := NewUserService(testServiceLogger(), mockRepo)

	mockRepo.On("ResetPIN", mock.Anything, "Angel Ramos").Return(nil)
	mockRepo.On("Delete", mock.Anything, "Angel Ramos").Return(nil)
	mockRepo.On("List", mock.Anything).Return([]*user.User{}, nil)

	assert.NoError(t, svc.ResetPIN(ctx, "Angel Ramos"))
	assert.NoError(t, svc.DeleteUser(ctx, "Angel Ramos"))

	users, err := svc.ListUsers(ctx)
	assert.NoError(t, err)
	assert.Empty(t, users)
	mockRepo.AssertExpectations(t)
}

func TestUserService_StorageErrorsPropagate(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockUserRepository)
	svc := NewUserService(testServiceLogger(), mockRepo)

	repoErr := errors.New("storage failure")
	mockRepo.On("GetByName", mock.Anything, "Angel Ramos").Return(nil, repoErr)

	u, err := svc.Login(ctx, "Angel Ramos", "1001")
	assert.Nil(t, u)
	assert.ErrorIs(t, err, repoErr)
	mockRepo.AssertExpectations(t)
}
