// Package usage реализует движок квот AI-подсказок: вычисление лимита
// по активной подписке, учёт расхода и сброс счётчика раз в период.
package usage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/visahelper/visa-helper/internal/lib/plantier"
	"github.com/visahelper/visa-helper/internal/models"
)

// UserRepository определяет методы работы с пользователями в хранилище.
type UserRepository interface {
	// GetUser возвращает пользователя по UID.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	// IncrementAiSuggestionsUsed атомарно увеличивает счётчик расхода на 1.
	IncrementAiSuggestionsUsed(ctx context.Context, userUID string) error
	// ResetAiSuggestionsUsage обнуляет счётчик и фиксирует начало периода.
	ResetAiSuggestionsUsage(ctx context.Context, userUID string, resetDate time.Time) error
}

// MembershipRepository определяет методы чтения подписок и тарифов.
type MembershipRepository interface {
	// FindActiveUserMembership возвращает текущую подписку пользователя
	// (ACTIVE, end_date в будущем, наибольшая end_date) или nil.
	FindActiveUserMembership(ctx context.Context, userUID string, now time.Time) (*models.UserMembership, error)
	// GetMembership возвращает тариф по ID.
	GetMembership(ctx context.Context, id int) (*models.Membership, error)
}

// Service отвечает на вопрос "может ли пользователь потратить ещё одну
// AI-подсказку", ведёт счётчик расхода и сбрасывает его при входе
// в новый период подписки.
type Service struct {
	users       UserRepository
	memberships MembershipRepository
	log         *slog.Logger
	now         func() time.Time
}

// New создает новый экземпляр Service.
func New(users UserRepository, memberships MembershipRepository, log *slog.Logger) *Service {
	return &Service{
		users:       users,
		memberships: memberships,
		log:         log,
		now:         time.Now,
	}
}

// CheckLimit вычисляет текущее состояние квоты пользователя.
//
// Без активной подписки лимит равен нулю. Если название тарифа не
// сопоставилось ни с одним уровнем, лимит берётся по длительности тарифа —
// это защищает от обнуления квоты при переименовании тарифов. Перед
// вычислением canUse выполняется проверка сброса: если дата сброса не
// установлена или подписка началась позже неё, счётчик обнуляется и датой
// сброса становится начало подписки. Сброс происходит не чаще одного раза
// за период.
func (s *Service) CheckLimit(ctx context.Context, userUID string) (*models.UsageInfo, error) {
	const op = "usage.CheckLimit"

	user, err := s.users.GetUser(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	current, err := s.memberships.FindActiveUserMembership(ctx, userUID, s.now())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if current == nil {
		return &models.UsageInfo{
			Used:           user.AiSuggestionsUsed,
			Limit:          0,
			Remaining:      0,
			CanUse:         false,
			MembershipType: "",
		}, nil
	}

	plan, err := s.memberships.GetMembership(ctx, current.MembershipID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	limit := plantier.QuotaForName(plan.Name)
	if limit == 0 {
		limit = plantier.QuotaForDuration(plan.DurationDays)
		s.log.Info("plan name did not match any tier, using duration fallback",
			slog.String("plan", plan.Name), slog.Int("limit", limit))
	}

	used := user.AiSuggestionsUsed
	if user.AiSuggestionsResetDate == nil || current.StartDate.After(*user.AiSuggestionsResetDate) {
		if err := s.users.ResetAiSuggestionsUsage(ctx, userUID, current.StartDate); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		used = 0
		s.log.Info("usage counter reset for new subscription period",
			slog.String("user_uid", userUID), slog.Time("period_start", current.StartDate))
	}

	remaining := limit - used
	if remaining < 0 {
		remaining = 0
	}
	return &models.UsageInfo{
		Used:           used,
		Limit:          limit,
		Remaining:      remaining,
		CanUse:         limit > 0 && used < limit,
		MembershipType: plan.Name,
	}, nil
}

// Increment учитывает одну потраченную AI-подсказку. Вызывается ровно один
// раз на успешную генерацию, включая генерацию с резервным списком.
// Компенсирующего уменьшения счётчика нет.
func (s *Service) Increment(ctx context.Context, userUID string) error {
	const op = "usage.Increment"
	if err := s.users.IncrementAiSuggestionsUsed(ctx, userUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
