package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/visahelper/visa-helper/internal/apperr"
	"github.com/visahelper/visa-helper/internal/models"
)

// CreateBlog добавляет запись блога и возвращает её ID.
func (s *Storage) CreateBlog(ctx context.Context, b models.Blog) (int, error) {
	const op = "storage.CreateBlog"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO blogs (title, content, published, display_order)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query, b.Title, b.Content, b.Published, b.DisplayOrder).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetBlog возвращает запись блога по ID.
func (s *Storage) GetBlog(ctx context.Context, id int) (*models.Blog, error) {
	const op = "storage.GetBlog"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, content, published, display_order, created_at
			  FROM blogs
			  WHERE id = $1`
	var b models.Blog
	err := s.DB.QueryRowContext(ctx, query, id).Scan(&b.ID, &b.Title, &b.Content,
		&b.Published, &b.DisplayOrder, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &b, nil
}

// ListPublishedBlogs возвращает опубликованные записи блога
// в порядке отображения.
func (s *Storage) ListPublishedBlogs(ctx context.Context) ([]*models.Blog, error) {
	const op = "storage.ListPublishedBlogs"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, content, published, display_order, created_at
			  FROM blogs
			  WHERE published = true
			  ORDER BY display_order, id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Blog
	for rows.Next() {
		var b models.Blog
		if err := rows.Scan(&b.ID, &b.Title, &b.Content, &b.Published, &b.DisplayOrder, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateBlog обновляет запись блога по ID.
func (s *Storage) UpdateBlog(ctx context.Context, b models.Blog, id int) error {
	const op = "storage.UpdateBlog"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE blogs
			  SET title = $1, content = $2, published = $3, display_order = $4
			  WHERE id = $5`
	result, err := s.DB.ExecContext(ctx, query, b.Title, b.Content, b.Published, b.DisplayOrder, id)
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

// DeleteBlog удаляет запись блога по ID.
func (s *Storage) DeleteBlog(ctx context.Context, id int) error {
	const op = "storage.DeleteBlog"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM blogs WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
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

// ListPublishedVisaInfo возвращает опубликованные справочные страницы.
func (s *Storage) ListPublishedVisaInfo(ctx context.Context) ([]*models.VisaInfo, error) {
	const op = "storage.ListPublishedVisaInfo"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, content, published, display_order, created_at
			  FROM visa_info
			  WHERE published = true
			  ORDER BY display_order, id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.VisaInfo
	for rows.Next() {
		var v models.VisaInfo
		if err := rows.Scan(&v.ID, &v.Title, &v.Content, &v.Published, &v.DisplayOrder, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetVideo возвращает видео по ID.
func (s *Storage) GetVideo(ctx context.Context, id int) (*models.Video, error) {
	const op = "storage.GetVideo"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, url, published, display_order, created_at
			  FROM videos
			  WHERE id = $1`
	var v models.Video
	err := s.DB.QueryRowContext(ctx, query, id).Scan(&v.ID, &v.Title, &v.URL,
		&v.Published, &v.DisplayOrder, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &v, nil
}

// ListPublishedVideos возвращает опубликованные видео.
func (s *Storage) ListPublishedVideos(ctx context.Context) ([]*models.Video, error) {
	const op = "storage.ListPublishedVideos"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, url, published, display_order, created_at
			  FROM videos
			  WHERE published = true
			  ORDER BY display_order, id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Video
	for rows.Next() {
		var v models.Video
		if err := rows.Scan(&v.ID, &v.Title, &v.URL, &v.Published, &v.DisplayOrder, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListPublishedFiles возвращает опубликованные файлы для скачивания.
func (s *Storage) ListPublishedFiles(ctx context.Context) ([]*models.File, error) {
	const op = "storage.ListPublishedFiles"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, url, published, display_order, created_at
			  FROM files
			  WHERE published = true
			  ORDER BY display_order, id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.File
	for rows.Next() {
		var f models.File
		if err := rows.Scan(&f.ID, &f.Title, &f.URL, &f.Published, &f.DisplayOrder, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListPublishedFVisaQuestions возвращает опубликованные FAQ по визам F.
func (s *Storage) ListPublishedFVisaQuestions(ctx context.Context) ([]*models.FVisaQuestion, error) {
	const op = "storage.ListPublishedFVisaQuestions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, question, answer, published, display_order, created_at
			  FROM fvisa_questions
			  WHERE published = true
			  ORDER BY display_order, id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.FVisaQuestion
	for rows.Next() {
		var q models.FVisaQuestion
		if err := rows.Scan(&q.ID, &q.Question, &q.Answer, &q.Published, &q.DisplayOrder, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListPublishedBVisaQuestions возвращает опубликованные FAQ по визам B.
func (s *Storage) ListPublishedBVisaQuestions(ctx context.Context) ([]*models.BVisaQuestion, error) {
	const op = "storage.ListPublishedBVisaQuestions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, question, answer, published, display_order, created_at
			  FROM bvisa_questions
			  WHERE published = true
			  ORDER BY display_order, id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.BVisaQuestion
	for rows.Next() {
		var q models.BVisaQuestion
		if err := rows.Scan(&q.ID, &q.Question, &q.Answer, &q.Published, &q.DisplayOrder, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
