// Package moderation реализует доску вопросов с модерацией:
// создание вопросов, одобрение и отклонение администратором,
// публичные списки и комментарии.
//
// Вопрос создаётся в статусе PENDING независимо от автора. Допустимы
// только переходы PENDING -> APPROVED и PENDING -> REJECTED; попытка
// модерации вопроса в другом статусе отклоняется с сообщением,
// называющим текущий статус.
package moderation

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

// Repository определяет методы работы с вопросами и комментариями.
type Repository interface {
	CreateQuestion(ctx context.Context, q models.Question) (int, error)
	GetQuestion(ctx context.Context, id int) (*models.Question, error)
	ListQuestionsByStatus(ctx context.Context, status string, limit, offset int) ([]*models.Question, error)
	UpdateQuestionStatus(ctx context.Context, id int, status, rejectNote string, moderatedAt time.Time) error
	CreateComment(ctx context.Context, c models.Comment) (int, error)
	ListCommentsByQuestion(ctx context.Context, questionID int) ([]*models.Comment, error)
	GetVideo(ctx context.Context, id int) (*models.Video, error)
}

// EventPublisher публикует доменные события. Может быть nil.
type EventPublisher interface {
	Publish(routingKey string, message any) error
}

// Service реализует бизнес-логику доски вопросов.
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

// Create сохраняет новый вопрос пользователя в статусе PENDING.
func (s *Service) Create(ctx context.Context, userUID string, req models.DummyQuestion) (int, error) {
	const op = "moderation.Create"

	id, err := s.repo.CreateQuestion(ctx, models.Question{
		UserUID: userUID,
		Title:   req.Title,
		Content: req.Content,
		Status:  models.QuestionStatusPending,
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("question created", slog.Int("id", id), slog.String("user_uid", userUID))
	return id, nil
}

// Approve одобряет вопрос, делая его публично видимым.
func (s *Service) Approve(ctx context.Context, questionID int) error {
	const op = "moderation.Approve"

	if err := s.transition(ctx, questionID, models.QuestionStatusApproved, ""); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.publish(rabbitmq.RoutingQuestionApproved, map[string]any{"question_id": questionID})
	return nil
}

// Reject отклоняет вопрос с необязательным примечанием администратора.
func (s *Service) Reject(ctx context.Context, questionID int, reason string) error {
	const op = "moderation.Reject"

	if err := s.transition(ctx, questionID, models.QuestionStatusRejected, reason); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.publish(rabbitmq.RoutingQuestionRejected, map[string]any{
		"question_id": questionID,
		"reason":      reason,
	})
	return nil
}

func (s *Service) transition(ctx context.Context, questionID int, status, rejectNote string) error {
	q, err := s.repo.GetQuestion(ctx, questionID)
	if err != nil {
		return err
	}
	if q.Status != models.QuestionStatusPending {
		return fmt.Errorf("question is already %s: %w", q.Status, apperr.ErrConflict)
	}
	return s.repo.UpdateQuestionStatus(ctx, questionID, status, rejectNote, s.now())
}

// ListPublic возвращает одобренные вопросы для публичного списка.
func (s *Service) ListPublic(ctx context.Context, limit, offset int) ([]*models.Question, error) {
	const op = "moderation.ListPublic"

	questions, err := s.repo.ListQuestionsByStatus(ctx, models.QuestionStatusApproved, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return questions, nil
}

// GetPublic возвращает одобренный вопрос по ID. Вопросы в других статусах
// для публики не существуют.
func (s *Service) GetPublic(ctx context.Context, questionID int) (*models.Question, error) {
	const op = "moderation.GetPublic"

	q, err := s.repo.GetQuestion(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if q.Status != models.QuestionStatusApproved {
		return nil, fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
	}
	return q, nil
}

// ListByStatus возвращает вопросы в заданном статусе для администратора.
func (s *Service) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*models.Question, error) {
	const op = "moderation.ListByStatus"

	switch status {
	case models.QuestionStatusPending, models.QuestionStatusApproved, models.QuestionStatusRejected:
	default:
		return nil, fmt.Errorf("%s: unknown status %q: %w", op, status, apperr.ErrInvalidArgument)
	}
	questions, err := s.repo.ListQuestionsByStatus(ctx, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return questions, nil
}

// CreateComment добавляет комментарий к одобренному вопросу.
func (s *Service) CreateComment(ctx context.Context, userUID string, questionID int, req models.DummyComment) (int, error) {
	const op = "moderation.CreateComment"

	if _, err := s.GetPublic(ctx, questionID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	id, err := s.repo.CreateComment(ctx, models.Comment{
		UserUID:    userUID,
		QuestionID: &questionID,
		Content:    req.Content,
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// CreateVideoComment добавляет комментарий к опубликованному видео.
func (s *Service) CreateVideoComment(ctx context.Context, userUID string, videoID int, req models.DummyComment) (int, error) {
	const op = "moderation.CreateVideoComment"

	video, err := s.repo.GetVideo(ctx, videoID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if !video.Published {
		return 0, fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
	}
	id, err := s.repo.CreateComment(ctx, models.Comment{
		UserUID: userUID,
		VideoID: &videoID,
		Content: req.Content,
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// ListComments возвращает комментарии одобренного вопроса.
func (s *Service) ListComments(ctx context.Context, questionID int) ([]*models.Comment, error) {
	const op = "moderation.ListComments"

	if _, err := s.GetPublic(ctx, questionID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	comments, err := s.repo.ListCommentsByQuestion(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return comments, nil
}

func (s *Service) publish(routingKey string, message any) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(routingKey, message); err != nil {
		s.log.Warn("failed to publish event", slog.String("routing_key", routingKey), sl.Err(err))
	}
}
