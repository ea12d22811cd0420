// Package suggestion реализует генерацию AI-подсказок с учётом квоты.
//
// Недоступность внешнего провайдера не считается ошибкой запроса:
// вместо сгенерированного списка возвращается фиксированный резервный,
// а расход квоты учитывается в обоих случаях — стоимость запроса уже
// понесена.
package suggestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/visahelper/visa-helper/internal/lib/sl"
	"github.com/visahelper/visa-helper/internal/models"
)

// ErrQuotaExceeded возвращается, когда квота AI-подсказок исчерпана.
var ErrQuotaExceeded = errors.New("ai suggestion quota exceeded")

// fallbackSuggestions — резервный список на случай недоступности провайдера.
var fallbackSuggestions = []string{
	"What documents do I need to apply for this visa?",
	"How long does the visa application process take?",
	"Can I extend my stay after the visa expires?",
	"Am I allowed to work with this visa type?",
	"What are the most common reasons for visa rejection?",
}

// Generator описывает интерфейс внешнего AI-провайдера.
type Generator interface {
	Generate(ctx context.Context, topic string) ([]string, error)
}

// UsageEngine описывает интерфейс движка квот.
type UsageEngine interface {
	CheckLimit(ctx context.Context, userUID string) (*models.UsageInfo, error)
	Increment(ctx context.Context, userUID string) error
}

// Service реализует выдачу подсказок с учётом квоты.
type Service struct {
	generator Generator
	usage     UsageEngine
	log       *slog.Logger
}

// New создает новый экземпляр Service.
func New(generator Generator, usage UsageEngine, log *slog.Logger) *Service {
	return &Service{
		generator: generator,
		usage:     usage,
		log:       log,
	}
}

// Result — результат генерации подсказок вместе с состоянием квоты.
type Result struct {
	Suggestions []string
	Usage       models.UsageInfo
}

// Suggest проверяет квоту, генерирует подсказки по теме и учитывает расход.
//
// При исчерпанной квоте возвращает ErrQuotaExceeded вместе с состоянием
// квоты для формирования ответа 429. Расход учитывается ровно один раз
// на выдачу, включая выдачу резервного списка.
func (s *Service) Suggest(ctx context.Context, userUID, topic string) (*Result, *models.UsageInfo, error) {
	const op = "suggestion.Suggest"

	info, err := s.usage.CheckLimit(ctx, userUID)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	if !info.CanUse {
		return nil, info, fmt.Errorf("%s: %w", op, ErrQuotaExceeded)
	}

	suggestions := fallbackSuggestions
	if s.generator != nil {
		generated, err := s.generator.Generate(ctx, topic)
		if err != nil {
			s.log.Warn("suggestion provider unavailable, using fallback list", sl.Err(err))
		} else {
			suggestions = generated
		}
	}

	if err := s.usage.Increment(ctx, userUID); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	info.Used++
	info.Remaining = info.Limit - info.Used
	if info.Remaining < 0 {
		info.Remaining = 0
	}
	info.CanUse = info.Used < info.Limit

	return &Result{
		Suggestions: suggestions,
		Usage:       *info,
	}, info, nil
}
