package usage

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/visahelper/visa-helper/internal/models"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) IncrementAiSuggestionsUsed(ctx context.Context, userUID string) error {
	args := m.Called(ctx, userUID)
	return args.Error(0)
}

func (m *MockUserRepository) ResetAiSuggestionsUsage(ctx context.Context, userUID string, resetDate time.Time) error {
	args := m.Called(ctx, userUID, resetDate)
	return args.Error(0)
}

type MockMembershipRepository struct {
	mock.Mock
}

func (m *MockMembershipRepository) FindActiveUserMembership(ctx context.Context, userUID string, now time.Time) (*models.UserMembership, error) {
	args := m.Called(ctx, userUID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserMembership), args.Error(1)
}

func (m *MockMembershipRepository) GetMembership(ctx context.Context, id int) (*models.Membership, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Membership), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newTestService(users *MockUserRepository, memberships *MockMembershipRepository, now time.Time) *Service {
	s := New(users, memberships, newNoopLogger())
	s.now = func() time.Time { return now }
	return s
}

func TestService_CheckLimit_NoMembership(t *testing.T) {
	users := new(MockUserRepository)
	memberships := new(MockMembershipRepository)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(users, memberships, now)

	users.On("GetUser", mock.Anything, "user123").Return(&models.User{
		UID:               "user123",
		AiSuggestionsUsed: 7,
	}, nil).Once()
	memberships.On("FindActiveUserMembership", mock.Anything, "user123", now).Return(nil, nil).Once()

	info, err := svc.CheckLimit(context.Background(), "user123")

	assert.NoError(t, err)
	assert.Equal(t, 7, info.Used)
	assert.Equal(t, 0, info.Limit)
	assert.Equal(t, 0, info.Remaining)
	assert.False(t, info.CanUse)
	assert.Empty(t, info.MembershipType)
	users.AssertExpectations(t)
	memberships.AssertExpectations(t)
}

func TestService_CheckLimit_PremiumYearPlan(t *testing.T) {
	users := new(MockUserRepository)
	memberships := new(MockMembershipRepository)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(users, memberships, now)

	start := now.AddDate(0, -1, 0)
	resetDate := start

	users.On("GetUser", mock.Anything, "user123").Return(&models.User{
		UID:                    "user123",
		AiSuggestionsUsed:      10,
		AiSuggestionsResetDate: &resetDate,
	}, nil).Once()
	memberships.On("FindActiveUserMembership", mock.Anything, "user123", now).Return(&models.UserMembership{
		ID:           1,
		MembershipID: 5,
		StartDate:    start,
		EndDate:      start.AddDate(0, 0, 365),
		Status:       models.MembershipStatusActive,
	}, nil).Once()
	memberships.On("GetMembership", mock.Anything, 5).Return(&models.Membership{
		ID:           5,
		Name:         "Premium",
		DurationDays: 365,
	}, nil).Once()

	info, err := svc.CheckLimit(context.Background(), "user123")

	assert.NoError(t, err)
	assert.Equal(t, 10, info.Used)
	assert.Equal(t, 80, info.Limit)
	assert.Equal(t, 70, info.Remaining)
	assert.True(t, info.CanUse)
	assert.Equal(t, "Premium", info.MembershipType)
	users.AssertExpectations(t)
	memberships.AssertExpectations(t)
}

func TestService_CheckLimit_DurationFallback(t *testing.T) {
	users := new(MockUserRepository)
	memberships := new(MockMembershipRepository)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(users, memberships, now)

	start := now.AddDate(0, 0, -10)
	resetDate := start

	users.On("GetUser", mock.Anything, "user123").Return(&models.User{
		UID:                    "user123",
		AiSuggestionsUsed:      3,
		AiSuggestionsResetDate: &resetDate,
	}, nil).Once()
	memberships.On("FindActiveUserMembership", mock.Anything, "user123", now).Return(&models.UserMembership{
		ID:           2,
		MembershipID: 7,
		StartDate:    start,
		EndDate:      start.AddDate(0, 0, 150),
		Status:       models.MembershipStatusActive,
	}, nil).Once()
	// Название не соответствует ни одному уровню, лимит берется по длительности.
	memberships.On("GetMembership", mock.Anything, 7).Return(&models.Membership{
		ID:           7,
		Name:         "6-Month Special",
		DurationDays: 150,
	}, nil).Once()

	info, err := svc.CheckLimit(context.Background(), "user123")

	assert.NoError(t, err)
	assert.Equal(t, 20, info.Limit)
	assert.Equal(t, "6-Month Special", info.MembershipType)
	users.AssertExpectations(t)
	memberships.AssertExpectations(t)
}

func TestService_CheckLimit_ResetsCounterForNewPeriod(t *testing.T) {
	users := new(MockUserRepository)
	memberships := new(MockMembershipRepository)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(users, memberships, now)

	oldReset := now.AddDate(0, -2, 0)
	start := now.AddDate(0, -1, 0)

	users.On("GetUser", mock.Anything, "user123").Return(&models.User{
		UID:                    "user123",
		AiSuggestionsUsed:      20,
		AiSuggestionsResetDate: &oldReset,
	}, nil).Once()
	memberships.On("FindActiveUserMembership", mock.Anything, "user123", now).Return(&models.UserMembership{
		ID:           3,
		MembershipID: 5,
		StartDate:    start,
		EndDate:      start.AddDate(0, 0, 365),
		Status:       models.MembershipStatusActive,
	}, nil).Once()
	memberships.On("GetMembership", mock.Anything, 5).Return(&models.Membership{
		ID:           5,
		Name:         "Basic",
		DurationDays: 180,
	}, nil).Once()
	users.On("ResetAiSuggestionsUsage", mock.Anything, "user123", start).Return(nil).Once()

	info, err := svc.CheckLimit(context.Background(), "user123")

	assert.NoError(t, err)
	assert.Equal(t, 0, info.Used)
	assert.Equal(t, 20, info.Limit)
	assert.Equal(t, 20, info.Remaining)
	assert.True(t, info.CanUse)
	users.AssertExpectations(t)
	memberships.AssertExpectations(t)
}

func TestService_CheckLimit_ResetFiresOnlyOncePerPeriod(t *testing.T) {
	users := new(MockUserRepository)
	memberships := new(MockMembershipRepository)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(users, memberships, now)

	start := now.AddDate(0, -1, 0)
	resetDate := start

	// Дата сброса совпадает с началом периода: повторный вызов не сбрасывает.
	users.On("GetUser", mock.Anything, "user123").Return(&models.User{
		UID:                    "user123",
		AiSuggestionsUsed:      5,
		AiSuggestionsResetDate: &resetDate,
	}, nil).Twice()
	memberships.On("FindActiveUserMembership", mock.Anything, "user123", now).Return(&models.UserMembership{
		ID:           4,
		MembershipID: 5,
		StartDate:    start,
		EndDate:      start.AddDate(0, 0, 365),
		Status:       models.MembershipStatusActive,
	}, nil).Twice()
	memberships.On("GetMembership", mock.Anything, 5).Return(&models.Membership{
		ID:           5,
		Name:         "Premium",
		DurationDays: 365,
	}, nil).Twice()

	first, err := svc.CheckLimit(context.Background(), "user123")
	assert.NoError(t, err)
	second, err := svc.CheckLimit(context.Background(), "user123")
	assert.NoError(t, err)

	assert.Equal(t, first, second)
	users.AssertNotCalled(t, "ResetAiSuggestionsUsage", mock.Anything, mock.Anything, mock.Anything)
	users.AssertExpectations(t)
	memberships.AssertExpectations(t)
}

func TestService_CheckLimit_ExhaustedQuota(t *testing.T) {
	users := new(MockUserRepository)
	memberships := new(MockMembershipRepository)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(users, memberships, now)

	start := now.AddDate(0, -1, 0)
	resetDate := start

	users.On("GetUser", mock.Anything, "user123").Return(&models.User{
		UID:                    "user123",
		AiSuggestionsUsed:      20,
		AiSuggestionsResetDate: &resetDate,
	}, nil).Once()
	memberships.On("FindActiveUserMembership", mock.Anything, "user123", now).Return(&models.UserMembership{
		ID:           5,
		MembershipID: 6,
		StartDate:    start,
		EndDate:      start.AddDate(0, 0, 180),
		Status:       models.MembershipStatusActive,
	}, nil).Once()
	memberships.On("GetMembership", mock.Anything, 6).Return(&models.Membership{
		ID:           6,
		Name:         "Basic",
		DurationDays: 180,
	}, nil).Once()

	info, err := svc.CheckLimit(context.Background(), "user123")

	assert.NoError(t, err)
	assert.Equal(t, 20, info.Used)
	assert.Equal(t, 20, info.Limit)
	assert.Equal(t, 0, info.Remaining)
	assert.False(t, info.CanUse)
}

func TestService_CheckLimit_UserError(t *testing.T) {
	users := new(MockUserRepository)
	memberships := new(MockMembershipRepository)
	svc := newTestService(users, memberships, time.Now())

	users.On("GetUser", mock.Anything, "user123").Return(nil, errors.New("db error")).Once()

	info, err := svc.CheckLimit(context.Background(), "user123")

	assert.Error(t, err)
	assert.Nil(t, info)
}

func TestService_Increment(t *testing.T) {
	users := new(MockUserRepository)
	memberships := new(MockMembershipRepository)
	svc := newTestService(users, memberships, time.Now())

	users.On("IncrementAiSuggestionsUsed", mock.Anything, "user123").Return(nil).Once()

	err := svc.Increment(context.Background(), "user123")

	assert.NoError(t, err)
	users.AssertExpectations(t)
}

func TestService_Increment_Error(t *testing.T) {
	users := new(MockUserRepository)
	memberships := new(MockMembershipRepository)
	svc := newTestService(users, memberships, time.Now())

	users.On("IncrementAiSuggestionsUsed", mock.Anything, "user123").Return(errors.New("db error")).Once()

	err := svc.Increment(context.Background(), "user123")

	assert.Error(t, err)
}
