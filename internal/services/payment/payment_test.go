package payment

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

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

func (m *MockRepository) CreatePayment(ctx context.Context, p models.Payment) (int, error) {
	args := m.Called(ctx, p)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) GetPaymentByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *MockRepository) UpdatePaymentStatus(ctx context.Context, id int, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockRepository) ListPaymentsByUser(ctx context.Context, userUID string, limit, offset int) ([]*models.Payment, error) {
	args := m.Called(ctx, userUID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Payment), args.Error(1)
}

type MockGranter struct {
	mock.Mock
}

func (m *MockGranter) Grant(ctx context.Context, userUID string, membershipID int) (int, error) {
	args := m.Called(ctx, userUID, membershipID)
	return args.Int(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestService_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := new(MockRepository)
		granter := new(MockGranter)
		svc := New(repo, granter, newNoopLogger())

		repo.On("GetMembership", mock.Anything, 5).Return(&models.Membership{
			ID:       5,
			Name:     "Premium",
			Price:    10000,
			IsActive: true,
		}, nil).Once()
		repo.On("CreatePayment", mock.Anything, mock.MatchedBy(func(p models.Payment) bool {
			return p.UserUID == "user123" &&
				p.MembershipID == 5 &&
				p.Amount == 10000 &&
				p.Status == models.PaymentStatusPending &&
				p.TransactionID != ""
		})).Return(42, nil).Once()

		res, err := svc.Create(context.Background(), "user123", models.DummyPayment{
			MembershipID: 5,
			Method:       "card",
		})

		assert.NoError(t, err)
		assert.Equal(t, 42, res.PaymentID)
		assert.NotEmpty(t, res.TransactionID)
		assert.True(t, strings.HasSuffix(res.RedirectURL, res.TransactionID))
		repo.AssertExpectations(t)
	})

	t.Run("inactive plan", func(t *testing.T) {
		repo := new(MockRepository)
		svc := New(repo, new(MockGranter), newNoopLogger())

		repo.On("GetMembership", mock.Anything, 5).Return(&models.Membership{
			ID:       5,
			IsActive: false,
		}, nil).Once()

		res, err := svc.Create(context.Background(), "user123", models.DummyPayment{MembershipID: 5, Method: "card"})

		assert.ErrorIs(t, err, apperr.ErrConflict)
		assert.Nil(t, res)
		repo.AssertNotCalled(t, "CreatePayment", mock.Anything, mock.Anything)
	})

	t.Run("plan not found", func(t *testing.T) {
		repo := new(MockRepository)
		svc := New(repo, new(MockGranter), newNoopLogger())

		repo.On("GetMembership", mock.Anything, 99).Return(nil, apperr.ErrNotFound).Once()

		res, err := svc.Create(context.Background(), "user123", models.DummyPayment{MembershipID: 99, Method: "card"})

		assert.ErrorIs(t, err, apperr.ErrNotFound)
		assert.Nil(t, res)
	})
}

func TestService_Confirm(t *testing.T) {
	t.Run("success grants membership", func(t *testing.T) {
		repo := new(MockRepository)
		granter := new(MockGranter)
		svc := New(repo, granter, newNoopLogger())

		repo.On("GetPaymentByTransactionID", mock.Anything, "tx-1").Return(&models.Payment{
			ID:           1,
			UserUID:      "user123",
			MembershipID: 5,
			Status:       models.PaymentStatusPending,
		}, nil).Once()
		repo.On("UpdatePaymentStatus", mock.Anything, 1, models.PaymentStatusCompleted).Return(nil).Once()
		granter.On("Grant", mock.Anything, "user123", 5).Return(7, nil).Once()

		err := svc.Confirm(context.Background(), models.DummyPaymentConfirm{
			TransactionID: "tx-1",
			Status:        "succeeded",
		})

		assert.NoError(t, err)
		repo.AssertExpectations(t)
		granter.AssertExpectations(t)
	})

	t.Run("failed payment does not grant", func(t *testing.T) {
		repo := new(MockRepository)
		granter := new(MockGranter)
		svc := New(repo, granter, newNoopLogger())

		repo.On("GetPaymentByTransactionID", mock.Anything, "tx-2").Return(&models.Payment{
			ID:     2,
			Status: models.PaymentStatusPending,
		}, nil).Once()
		repo.On("UpdatePaymentStatus", mock.Anything, 2, models.PaymentStatusFailed).Return(nil).Once()

		err := svc.Confirm(context.Background(), models.DummyPaymentConfirm{
			TransactionID: "tx-2",
			Status:        "canceled",
		})

		assert.NoError(t, err)
		granter.AssertNotCalled(t, "Grant", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("repeated confirmation is a conflict", func(t *testing.T) {
		repo := new(MockRepository)
		granter := new(MockGranter)
		svc := New(repo, granter, newNoopLogger())

		repo.On("GetPaymentByTransactionID", mock.Anything, "tx-3").Return(&models.Payment{
			ID:     3,
			Status: models.PaymentStatusCompleted,
		}, nil).Once()

		err := svc.Confirm(context.Background(), models.DummyPaymentConfirm{
			TransactionID: "tx-3",
			Status:        "succeeded",
		})

		assert.ErrorIs(t, err, apperr.ErrConflict)
		repo.AssertNotCalled(t, "UpdatePaymentStatus", mock.Anything, mock.Anything, mock.Anything)
		granter.AssertNotCalled(t, "Grant", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown transaction", func(t *testing.T) {
		repo := new(MockRepository)
		svc := New(repo, new(MockGranter), newNoopLogger())

		repo.On("GetPaymentByTransactionID", mock.Anything, "tx-404").Return(nil, apperr.ErrNotFound).Once()

		err := svc.Confirm(context.Background(), models.DummyPaymentConfirm{
			TransactionID: "tx-404",
			Status:        "succeeded",
		})

		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestService_List(t *testing.T) {
	repo := new(MockRepository)
	svc := New(repo, new(MockGranter), newNoopLogger())

	repo.On("ListPaymentsByUser", mock.Anything, "user123", 10, 0).Return([]*models.Payment{
		{ID: 1}, {ID: 2},
	}, nil).Once()

	payments, err := svc.List(context.Background(), "user123", 10, 0)

	assert.NoError(t, err)
	assert.Len(t, payments, 2)
}
