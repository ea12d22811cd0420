package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/visahelper/visa-helper/internal/apperr"
	"github.com/visahelper/visa-helper/internal/models"
)

// CreateQuestion вставляет новый вопрос в статусе PENDING и возвращает его ID.
func (s *Storage) CreateQuestion(ctx context.Context, q models.Question) (int, error) {
	const op = "storage.CreateQuestion"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO questions (user_uid, title, content, status)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		q.UserUID, q.Title, q.Content, models.QuestionStatusPending).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetQuestion возвращает вопрос по его ID.
func (s *Storage) GetQuestion(ctx context.Context, id int) (*models.Question, error) {
	const op = "storage.GetQuestion"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, title, content, status, reject_note, created_at, moderated_at
			  FROM questions
			  WHERE id = $1`
	var q models.Question
	var moderatedAt sql.NullTime
	err := s.DB.QueryRowContext(ctx, query, id).Scan(&q.ID, &q.UserUID, &q.Title,
		&q.Content, &q.Status, &q.RejectNote, &q.CreatedAt, &moderatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if moderatedAt.Valid {
		q.ModeratedAt = &moderatedAt.Time
	}
	return &q, nil
}

// ListQuestionsByStatus возвращает вопросы в заданном статусе с пагинацией.
func (s *Storage) ListQuestionsByStatus(ctx context.Context, status string, limit, offset int) ([]*models.Question, error) {
	const op = "storage.ListQuestionsByStatus"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, title, content, status, reject_note, created_at, moderated_at
			  FROM questions
			  WHERE status = $1
			  ORDER BY created_at DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Question
	for rows.Next() {
		var q models.Question
		var moderatedAt sql.NullTime
		if err := rows.Scan(&q.ID, &q.UserUID, &q.Title, &q.Content, &q.Status,
			&q.RejectNote, &q.CreatedAt, &moderatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if moderatedAt.Valid {
			q.ModeratedAt = &moderatedAt.Time
		}
		result = append(result, &q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateQuestionStatus переводит вопрос в новый статус модерации
// и фиксирует момент решения.
func (s *Storage) UpdateQuestionStatus(ctx context.Context, id int, status, rejectNote string, moderatedAt time.Time) error {
	const op = "storage.UpdateQuestionStatus"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE questions
			  SET status = $1, reject_note = $2, moderated_at = $3
			  WHERE id = $4`
	result, err := s.DB.ExecContext(ctx, query, status, rejectNote, moderatedAt, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
	}
	return nil
}

// CreateComment вставляет комментарий к вопросу или видео и возвращает его ID.
func (s *Storage) CreateComment(ctx context.Context, c models.Comment) (int, error) {
	const op = "storage.CreateComment"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO comments (user_uid, question_id, video_id, content)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		c.UserUID, c.QuestionID, c.VideoID, c.Content).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListCommentsByQuestion возвращает комментарии к вопросу в порядке создания.
func (s *Storage) ListCommentsByQuestion(ctx context.Context, questionID int) ([]*models.Comment, error) {
	const op = "storage.ListCommentsByQuestion"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, question_id, video_id, content, created_at
			  FROM comments
			  WHERE question_id = $1
			  ORDER BY created_at`
	rows, err := s.DB.QueryContext(ctx, query, questionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.UserUID, &c.QuestionID, &c.VideoID, &c.Content, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
