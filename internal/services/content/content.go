// Package content реализует бизнес-логику публикуемого контента:
// блог, справочные страницы, видео, файлы и визовые FAQ, включая
// кеширование публичных списков.
package content

import (
	"context"
	"log/slog"
	"time"

	"github.com/visahelper/visa-helper/internal/lib/sl"
	"github.com/visahelper/visa-helper/internal/models"
)

// Ключи кеша публичных списков.
const (
	cacheKeyBlogs    = "content:blogs"
	cacheKeyVisaInfo = "content:visainfo"
	cacheKeyVideos   = "content:videos"
	cacheKeyFiles    = "content:files"
	cacheKeyFVisa    = "content:fvisa"
	cacheKeyBVisa    = "content:bvisa"

	cacheTTL = time.Hour
)

// Repository определяет методы работы с контентом в хранилище.
type Repository interface {
	CreateBlog(ctx context.Context, b models.Blog) (int, error)
	GetBlog(ctx context.Context, id int) (*models.Blog, error)
	ListPublishedBlogs(ctx context.Context) ([]*models.Blog, error)
	UpdateBlog(ctx context.Context, b models.Blog, id int) error
	DeleteBlog(ctx context.Context, id int) error
	ListPublishedVisaInfo(ctx context.Context) ([]*models.VisaInfo, error)
	ListPublishedVideos(ctx context.Context) ([]*models.Video, error)
	ListPublishedFiles(ctx context.Context) ([]*models.File, error)
	ListPublishedFVisaQuestions(ctx context.Context) ([]*models.FVisaQuestion, error)
	ListPublishedBVisaQuestions(ctx context.Context) ([]*models.BVisaQuestion, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Service реализует чтение и администрирование контента с кешированием.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, cache Cache, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// ListBlogs возвращает опубликованные записи блога, используя кеш.
func (s *Service) ListBlogs(ctx context.Context) ([]*models.Blog, error) {
	var cached []*models.Blog
	if found, err := s.cache.Get(cacheKeyBlogs, &cached); err == nil && found {
		return cached, nil
	}
	blogs, err := s.repo.ListPublishedBlogs(ctx)
	if err != nil {
		return nil, err
	}
	s.cacheSet(cacheKeyBlogs, blogs)
	return blogs, nil
}

// GetBlog возвращает запись блога по ID.
func (s *Service) GetBlog(ctx context.Context, id int) (*models.Blog, error) {
	return s.repo.GetBlog(ctx, id)
}

// CreateBlog создаёт запись блога и инвалидирует кеш списка.
func (s *Service) CreateBlog(ctx context.Context, req models.DummyBlog) (int, error) {
	id, err := s.repo.CreateBlog(ctx, models.Blog{
		Title:        req.Title,
		Content:      req.Content,
		Published:    req.Published,
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		return 0, err
	}
	s.cacheInvalidate(cacheKeyBlogs)
	return id, nil
}

// UpdateBlog обновляет запись блога и инвалидирует кеш списка.
func (s *Service) UpdateBlog(ctx context.Context, id int, req models.DummyBlog) error {
	err := s.repo.UpdateBlog(ctx, models.Blog{
		Title:        req.Title,
		Content:      req.Content,
		Published:    req.Published,
		DisplayOrder: req.DisplayOrder,
	}, id)
	if err != nil {
		return err
	}
	s.cacheInvalidate(cacheKeyBlogs)
	return nil
}

// DeleteBlog удаляет запись блога и инвалидирует кеш списка.
func (s *Service) DeleteBlog(ctx context.Context, id int) error {
	if err := s.repo.DeleteBlog(ctx, id); err != nil {
		return err
	}
	s.cacheInvalidate(cacheKeyBlogs)
	return nil
}

// ListVisaInfo возвращает опубликованные справочные страницы, используя кеш.
func (s *Service) ListVisaInfo(ctx context.Context) ([]*models.VisaInfo, error) {
	var cached []*models.VisaInfo
	if found, err := s.cache.Get(cacheKeyVisaInfo, &cached); err == nil && found {
		return cached, nil
	}
	items, err := s.repo.ListPublishedVisaInfo(ctx)
	if err != nil {
		return nil, err
	}
	s.cacheSet(cacheKeyVisaInfo, items)
	return items, nil
}

// ListVideos возвращает опубликованные видео, используя кеш.
func (s *Service) ListVideos(ctx context.Context) ([]*models.Video, error) {
	var cached []*models.Video
	if found, err := s.cache.Get(cacheKeyVideos, &cached); err == nil && found {
		return cached, nil
	}
	items, err := s.repo.ListPublishedVideos(ctx)
	if err != nil {
		return nil, err
	}
	s.cacheSet(cacheKeyVideos, items)
	return items, nil
}

// ListFiles возвращает опубликованные файлы, используя кеш.
func (s *Service) ListFiles(ctx context.Context) ([]*models.File, error) {
	var cached []*models.File
	if found, err := s.cache.Get(cacheKeyFiles, &cached); err == nil && found {
		return cached, nil
	}
	items, err := s.repo.ListPublishedFiles(ctx)
	if err != nil {
		return nil, err
	}
	s.cacheSet(cacheKeyFiles, items)
	return items, nil
}

// ListFVisaQuestions возвращает опубликованные FAQ по визам F, используя кеш.
func (s *Service) ListFVisaQuestions(ctx context.Context) ([]*models.FVisaQuestion, error) {
	var cached []*models.FVisaQuestion
	if found, err := s.cache.Get(cacheKeyFVisa, &cached); err == nil && found {
		return cached, nil
	}
	items, err := s.repo.ListPublishedFVisaQuestions(ctx)
	if err != nil {
		return nil, err
	}
	s.cacheSet(cacheKeyFVisa, items)
	return items, nil
}

// ListBVisaQuestions возвращает опубликованные FAQ по визам B, используя кеш.
func (s *Service) ListBVisaQuestions(ctx context.Context) ([]*models.BVisaQuestion, error) {
	var cached []*models.BVisaQuestion
	if found, err := s.cache.Get(cacheKeyBVisa, &cached); err == nil && found {
		return cached, nil
	}
	items, err := s.repo.ListPublishedBVisaQuestions(ctx)
	if err != nil {
		return nil, err
	}
	s.cacheSet(cacheKeyBVisa, items)
	return items, nil
}

func (s *Service) cacheSet(key string, value any) {
	if err := s.cache.Set(key, value, cacheTTL); err != nil {
		s.log.Warn("failed to cache content list", slog.String("key", key), sl.Err(err))
	}
}

func (s *Service) cacheInvalidate(key string) {
	if err := s.cache.Invalidate(key); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", key), sl.Err(err))
	}
}
