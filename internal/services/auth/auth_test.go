package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/visahelper/visa-helper/internal/apperr"
	"github.com/visahelper/visa-helper/internal/lib/jwt"
	"github.com/visahelper/visa-helper/internal/lib/password"
	"github.com/visahelper/visa-helper/internal/models"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) RegisterUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *MockUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func TestService_Register(t *testing.T) {
	users := new(MockUserRepository)
	svc := New(users, jwt.NewJWTMaker("secret", time.Hour))

	users.On("RegisterUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		return u.Email == "alice@example.com" &&
			u.Username == "alice" &&
			u.Role == models.RoleUser &&
			u.PasswordHash != "" &&
			u.PasswordHash != "password123"
	})).Return("uid-123", nil).Once()

	uid, err := svc.Register(context.Background(), "alice@example.com", "alice", "password123")

	assert.NoError(t, err)
	assert.Equal(t, "uid-123", uid)
	users.AssertExpectations(t)
}

func TestService_Login(t *testing.T) {
	hash, err := password.GetHash("password123")
	assert.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		users := new(MockUserRepository)
		maker := jwt.NewJWTMaker("secret", time.Hour)
		svc := New(users, maker)

		users.On("GetUserByUsername", mock.Anything, "alice").Return(&models.User{
			UID:          "uid-123",
			Username:     "alice",
			PasswordHash: hash,
			Role:         models.RoleUser,
		}, nil).Once()

		token, role, err := svc.Login(context.Background(), "alice", "password123")

		assert.NoError(t, err)
		assert.Equal(t, models.RoleUser, role)

		claims, err := maker.ParseToken(token)
		assert.NoError(t, err)
		assert.Equal(t, "alice", claims.Username)
		assert.Equal(t, "uid-123", claims.UserUID)
	})

	t.Run("wrong password", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := New(users, jwt.NewJWTMaker("secret", time.Hour))

		users.On("GetUserByUsername", mock.Anything, "alice").Return(&models.User{
			Username:     "alice",
			PasswordHash: hash,
		}, nil).Once()

		token, role, err := svc.Login(context.Background(), "alice", "wrong")

		assert.Error(t, err)
		assert.Empty(t, token)
		assert.Empty(t, role)
	})

	t.Run("unknown user", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := New(users, jwt.NewJWTMaker("secret", time.Hour))

		users.On("GetUserByUsername", mock.Anything, "bob").Return(nil, apperr.ErrNotFound).Once()

		token, _, err := svc.Login(context.Background(), "bob", "password123")

		assert.ErrorIs(t, err, apperr.ErrNotFound)
		assert.Empty(t, token)
	})
}

func TestService_ValidateToken(t *testing.T) {
	maker := jwt.NewJWTMaker("secret", time.Hour)
	svc := New(new(MockUserRepository), maker)

	token, err := maker.GenerateToken("alice", models.RoleAdmin, "uid-123")
	assert.NoError(t, err)

	claims, err := svc.ValidateToken(context.Background(), token)

	assert.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, claims.Role)

	_, err = svc.ValidateToken(context.Background(), "garbage")
	assert.Error(t, err)
}
