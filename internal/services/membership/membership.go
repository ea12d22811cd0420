// Package membership реализует операции администратора над подписками:
// выдачу, продление и отмену, а также управление тарифами.
package membership

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/visahelper/visa-helper/internal/apperr"
	"github.com/visahelper/visa-helper/internal/lib/sl"
	"github.com/visahelper/visa-helper/internal/models"
	"github.com/visahelper/visa-helper/internal/rabbitmq"
)

// Границы допустимого диапазона продления подписки в днях.
const (
	MinExtendDays = 1
	MaxExtendDays = 365
)

// Repository определяет методы работы с тарифами и подписками в хранилище.
type Repository interface {
	GetMembership(ctx context.Context, id int) (*models.Membership, error)
	CreateMembership(ctx context.Context, m models.Membership) (int, error)
	ListMemberships(ctx context.Context) ([]*models.Membership, error)
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	CreateUserMembership(ctx context.Context, um models.UserMembership) (int, error)
	GetUserMembership(ctx context.Context, id int) (*models.UserMembership, error)
	HasActiveUserMembership(ctx context.Context, userUID string, membershipID int, now time.Time) (bool, error)
	ExtendUserMembership(ctx context.Context, id, days int) error
	CancelUserMembership(ctx context.Context, id int) error
}

// EventPublisher публикует доменные события. Может быть nil —
// тогда события не публикуются.
type EventPublisher interface {
	Publish(routingKey string, message any) error
}

// Service реализует бизнес-логику подписок.
type Service struct {
	repo   Repository
	events EventPublisher
	log    *slog.Logger
	now    func() time.Time
}

// New создает новый экземпляр Service.
func New(repo Repository, events EventPublisher, log *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		events: events,
		log:    log,
		now:    time.Now,
	}
}

// Grant выдаёт пользователю подписку на тариф: start_date = сейчас,
// end_date = сейчас + длительность тарифа. Повторная выдача того же тарифа
// при ещё действующей подписке отклоняется как конфликт.
func (s *Service) Grant(ctx context.Context, userUID string, membershipID int) (int, error) {
	const op = "membership.Grant"

	plan, err := s.repo.GetMembership(ctx, membershipID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if _, err := s.repo.GetUser(ctx, userUID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now()
	exists, err := s.repo.HasActiveUserMembership(ctx, userUID, membershipID, now)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if exists {
		return 0, fmt.Errorf("%s: user already has an active membership for this plan: %w",
			op, apperr.ErrConflict)
	}

	id, err := s.repo.CreateUserMembership(ctx, models.UserMembership{
		UserUID:      userUID,
		MembershipID: membershipID,
		StartDate:    now,
		EndDate:      now.AddDate(0, 0, plan.DurationDays),
		Status:       models.MembershipStatusActive,
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("membership granted", slog.String("user_uid", userUID),
		slog.Int("membership_id", membershipID), slog.Int("user_membership_id", id))

	s.publish(rabbitmq.RoutingMembershipGranted, map[string]any{
		"user_uid":           userUID,
		"membership_id":      membershipID,
		"user_membership_id": id,
	})
	return id, nil
}

// Extend продлевает подписку на days дней, прибавляя их к текущей дате
// окончания, и принудительно возвращает статус ACTIVE: отменённая или
// истёкшая подписка оживает вместо создания новой записи, чтобы не
// дробить историю. Допустимый диапазон — [1, 365] дней.
func (s *Service) Extend(ctx context.Context, userMembershipID, days int) error {
	const op = "membership.Extend"

	if days < MinExtendDays || days > MaxExtendDays {
		return fmt.Errorf("%s: days must be between %d and %d: %w",
			op, MinExtendDays, MaxExtendDays, apperr.ErrInvalidArgument)
	}
	if _, err := s.repo.GetUserMembership(ctx, userMembershipID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.ExtendUserMembership(ctx, userMembershipID, days); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("membership extended", slog.Int("user_membership_id", userMembershipID),
		slog.Int("days", days))
	return nil
}

// Cancel немедленно отменяет подписку: статус становится CANCELLED,
// дата окончания не меняется. Для квот подписка перестаёт быть активной
// сразу, а не в конце периода.
func (s *Service) Cancel(ctx context.Context, userMembershipID int) error {
	const op = "membership.Cancel"

	um, err := s.repo.GetUserMembership(ctx, userMembershipID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.CancelUserMembership(ctx, userMembershipID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("membership cancelled", slog.Int("user_membership_id", userMembershipID))

	s.publish(rabbitmq.RoutingMembershipCancelled, map[string]any{
		"user_uid":           um.UserUID,
		"user_membership_id": userMembershipID,
	})
	return nil
}

// CreatePlan создаёт новый тариф.
func (s *Service) CreatePlan(ctx context.Context, req models.DummyMembership) (int, error) {
	const op = "membership.CreatePlan"

	id, err := s.repo.CreateMembership(ctx, models.Membership{
		Name:         req.Name,
		Price:        req.Price,
		DurationDays: req.DurationDays,
		Features:     req.Features,
		IsActive:     req.IsActive,
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// ListPlans возвращает доступные для покупки тарифы.
func (s *Service) ListPlans(ctx context.Context) ([]*models.Membership, error) {
	const op = "membership.ListPlans"

	plans, err := s.repo.ListMemberships(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return plans, nil
}

func (s *Service) publish(routingKey string, message any) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(routingKey, message); err != nil {
		s.log.Warn("failed to publish event", slog.String("routing_key", routingKey), sl.Err(err))
	}
}
