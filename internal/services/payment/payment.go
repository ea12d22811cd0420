// Package payment реализует упрощённый платёжный поток: создание
// аудиторской записи платежа до перенаправления на провайдера и
// подтверждение, выдающее подписку.
//
// Интеграция с реальным платёжным провайдером не выполняется — адрес
// перенаправления симулируется, подтверждение принимается отдельной
// операцией в формате webhook.
package payment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/visahelper/visa-helper/internal/apperr"
	"github.com/visahelper/visa-helper/internal/models"
)

// checkoutURL — базовый адрес симулируемой платёжной страницы.
const checkoutURL = "https://pay.visahelper.example/checkout/"

// Repository определяет методы работы с платежами и тарифами.
type Repository interface {
	GetMembership(ctx context.Context, id int) (*models.Membership, error)
	CreatePayment(ctx context.Context, p models.Payment) (int, error)
	GetPaymentByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error)
	UpdatePaymentStatus(ctx context.Context, id int, status string) error
	ListPaymentsByUser(ctx context.Context, userUID string, limit, offset int) ([]*models.Payment, error)
}

// Granter выдаёт подписку после успешной оплаты.
type Granter interface {
	Grant(ctx context.Context, userUID string, membershipID int) (int, error)
}

// Service реализует бизнес-логику платежей.
type Service struct {
	repo        Repository
	memberships Granter
	log         *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, memberships Granter, log *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		memberships: memberships,
		log:         log,
	}
}

// CheckoutResult — результат создания платежа: идентификатор транзакции
// и адрес перенаправления на платёжную страницу.
type CheckoutResult struct {
	PaymentID     int    `json:"payment_id"`
	TransactionID string `json:"transaction_id"`
	RedirectURL   string `json:"redirect_url"`
}

// Create сохраняет PENDING-платёж с уникальным идентификатором транзакции
// и возвращает адрес перенаправления. Запись создаётся до любого обращения
// к провайдеру и далее не изменяется движком квот.
func (s *Service) Create(ctx context.Context, userUID string, req models.DummyPayment) (*CheckoutResult, error) {
	const op = "payment.Create"

	plan, err := s.repo.GetMembership(ctx, req.MembershipID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !plan.IsActive {
		return nil, fmt.Errorf("%s: plan is not available for purchase: %w", op, apperr.ErrConflict)
	}

	transactionID := uuid.NewString()
	id, err := s.repo.CreatePayment(ctx, models.Payment{
		UserUID:       userUID,
		MembershipID:  plan.ID,
		Amount:        plan.Price,
		Method:        req.Method,
		Status:        models.PaymentStatusPending,
		TransactionID: transactionID,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("payment created", slog.Int("id", id), slog.String("transaction_id", transactionID))

	return &CheckoutResult{
		PaymentID:     id,
		TransactionID: transactionID,
		RedirectURL:   checkoutURL + transactionID,
	}, nil
}

// Confirm обрабатывает подтверждение платежа от провайдера. Успешный
// платёж переводится в COMPLETED и выдаёт покупателю подписку; любой
// другой исход помечает платёж как FAILED. Повторное подтверждение
// завершённого платежа отклоняется как конфликт.
func (s *Service) Confirm(ctx context.Context, req models.DummyPaymentConfirm) error {
	const op = "payment.Confirm"

	p, err := s.repo.GetPaymentByTransactionID(ctx, req.TransactionID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if p.Status != models.PaymentStatusPending {
		return fmt.Errorf("%s: payment is already %s: %w", op, p.Status, apperr.ErrConflict)
	}

	if req.Status != "succeeded" {
		if err := s.repo.UpdatePaymentStatus(ctx, p.ID, models.PaymentStatusFailed); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		s.log.Info("payment failed", slog.String("transaction_id", req.TransactionID),
			slog.String("provider_status", req.Status))
		return nil
	}

	if err := s.repo.UpdatePaymentStatus(ctx, p.ID, models.PaymentStatusCompleted); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err := s.memberships.Grant(ctx, p.UserUID, p.MembershipID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("payment completed, membership granted",
		slog.String("transaction_id", req.TransactionID), slog.String("user_uid", p.UserUID))
	return nil
}

// List возвращает платежи пользователя с пагинацией.
func (s *Service) List(ctx context.Context, userUID string, limit, offset int) ([]*models.Payment, error) {
	const op = "payment.List"

	payments, err := s.repo.ListPaymentsByUser(ctx, userUID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return payments, nil
}
