package membership

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/visahelper/visa-helper/internal/apperr"
	"github.com/visahelper/visa-helper/internal/models"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetMembership(ctx context.Context, id int) (*models.Membership, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Membership), args.Error(1)
}

func (m *MockRepository) CreateMembership(ctx context.Context, mem models.Membership) (int, error) {
	args := m.Called(ctx, mem)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) ListMemberships(ctx context.Context) ([]*models.Membership, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Membership), args.Error(1)
}

func (m *MockRepository) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockRepository) CreateUserMembership(ctx context.Context, um models.UserMembership) (int, error) {
	args := m.Called(ctx, um)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) GetUserMembership(ctx context.Context, id int) (*models.UserMembership, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserMembership), args.Error(1)
}

func (m *MockRepository) HasActiveUserMembership(ctx context.Context, userUID string, membershipID int, now time.Time) (bool, error) {
	args := m.Called(ctx, userUID, membershipID, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) ExtendUserMembership(ctx context.Context, id, days int) error {
	args := m.Called(ctx, id, days)
	return args.Error(0)
}

func (m *MockRepository) CancelUserMembership(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(routingKey string, message any) error {
	args := m.Called(routingKey, message)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newTestService(repo *MockRepository, events *MockPublisher, now time.Time) *Service {
	var pub EventPublisher
	if events != nil {
		pub = events
	}
	s := New(repo, pub, newNoopLogger())
	s.now = func() time.Time { return now }
	return s
}

func TestService_Grant(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		repo := new(MockRepository)
		events := new(MockPublisher)
		svc := newTestService(repo, events, now)

		repo.On("GetMembership", mock.Anything, 5).Return(&models.Membership{
			ID:           5,
			Name:         "Premium",
			DurationDays: 365,
		}, nil).Once()
		repo.On("GetUser", mock.Anything, "user123").Return(&models.User{UID: "user123"}, nil).Once()
		repo.On("HasActiveUserMembership", mock.Anything, "user123", 5, now).Return(false, nil).Once()
		repo.On("CreateUserMembership", mock.Anything, mock.MatchedBy(func(um models.UserMembership) bool {
			return um.UserUID == "user123" &&
				um.MembershipID == 5 &&
				um.StartDate.Equal(now) &&
				um.EndDate.Equal(now.AddDate(0, 0, 365)) &&
				um.Status == models.MembershipStatusActive
		})).Return(42, nil).Once()
		events.On("Publish", "membership.granted", mock.Anything).Return(nil).Once()

		id, err := svc.Grant(context.Background(), "user123", 5)

		assert.NoError(t, err)
		assert.Equal(t, 42, id)
		repo.AssertExpectations(t)
		events.AssertExpectations(t)
	})

	t.Run("duplicate active membership", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, nil, now)

		repo.On("GetMembership", mock.Anything, 5).Return(&models.Membership{ID: 5, DurationDays: 365}, nil).Once()
		repo.On("GetUser", mock.Anything, "user123").Return(&models.User{UID: "user123"}, nil).Once()
		repo.On("HasActiveUserMembership", mock.Anything, "user123", 5, now).Return(true, nil).Once()

		id, err := svc.Grant(context.Background(), "user123", 5)

		assert.ErrorIs(t, err, apperr.ErrConflict)
		assert.Zero(t, id)
		repo.AssertNotCalled(t, "CreateUserMembership", mock.Anything, mock.Anything)
	})

	t.Run("unknown plan", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, nil, now)

		repo.On("GetMembership", mock.Anything, 99).Return(nil, apperr.ErrNotFound).Once()

		id, err := svc.Grant(context.Background(), "user123", 99)

		assert.ErrorIs(t, err, apperr.ErrNotFound)
		assert.Zero(t, id)
	})

	t.Run("publish failure does not fail grant", func(t *testing.T) {
		repo := new(MockRepository)
		events := new(MockPublisher)
		svc := newTestService(repo, events, now)

		repo.On("GetMembership", mock.Anything, 5).Return(&models.Membership{ID: 5, DurationDays: 30}, nil).Once()
		repo.On("GetUser", mock.Anything, "user123").Return(&models.User{UID: "user123"}, nil).Once()
		repo.On("HasActiveUserMembership", mock.Anything, "user123", 5, now).Return(false, nil).Once()
		repo.On("CreateUserMembership", mock.Anything, mock.Anything).Return(7, nil).Once()
		events.On("Publish", "membership.granted", mock.Anything).Return(errors.New("broker down")).Once()

		id, err := svc.Grant(context.Background(), "user123", 5)

		assert.NoError(t, err)
		assert.Equal(t, 7, id)
	})
}

func TestService_Extend(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("days below range", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, nil, now)

		err := svc.Extend(context.Background(), 1, 0)

		assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
		repo.AssertNotCalled(t, "ExtendUserMembership", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("days above range", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, nil, now)

		err := svc.Extend(context.Background(), 1, 366)

		assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
	})

	t.Run("maximum days allowed", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, nil, now)

		repo.On("GetUserMembership", mock.Anything, 1).Return(&models.UserMembership{ID: 1}, nil).Once()
		repo.On("ExtendUserMembership", mock.Anything, 1, 365).Return(nil).Once()

		err := svc.Extend(context.Background(), 1, 365)

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("membership not found", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, nil, now)

		repo.On("GetUserMembership", mock.Anything, 99).Return(nil, apperr.ErrNotFound).Once()

		err := svc.Extend(context.Background(), 99, 30)

		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestService_Cancel(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		repo := new(MockRepository)
		events := new(MockPublisher)
		svc := newTestService(repo, events, now)

		repo.On("GetUserMembership", mock.Anything, 1).Return(&models.UserMembership{
			ID:      1,
			UserUID: "user123",
		}, nil).Once()
		repo.On("CancelUserMembership", mock.Anything, 1).Return(nil).Once()
		events.On("Publish", "membership.cancelled", mock.Anything).Return(nil).Once()

		err := svc.Cancel(context.Background(), 1)

		assert.NoError(t, err)
		repo.AssertExpectations(t)
		events.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, nil, now)

		repo.On("GetUserMembership", mock.Anything, 99).Return(nil, apperr.ErrNotFound).Once()

		err := svc.Cancel(context.Background(), 99)

		assert.ErrorIs(t, err, apperr.ErrNotFound)
		repo.AssertNotCalled(t, "CancelUserMembership", mock.Anything, mock.Anything)
	})
}

func TestService_CreatePlan(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo, nil, time.Now())

	repo.On("CreateMembership", mock.Anything, mock.MatchedBy(func(m models.Membership) bool {
		return m.Name == "Premium" && m.Price == 10000 && m.DurationDays == 365
	})).Return(3, nil).Once()

	id, err := svc.CreatePlan(context.Background(), models.DummyMembership{
		Name:         "Premium",
		Price:        10000,
		DurationDays: 365,
		IsActive:     true,
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, id)
}

func TestService_ListPlans(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo, nil, time.Now())

	repo.On("ListMemberships", mock.Anything).Return([]*models.Membership{
		{ID: 1, Name: "Basic"},
		{ID: 2, Name: "Premium"},
	}, nil).Once()

	plans, err := svc.ListPlans(context.Background())

	assert.NoError(t, err)
	assert.Len(t, plans, 2)
}
