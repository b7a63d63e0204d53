package service

import (
	"context"
	"time"

	"github.com/ignatzorin/skill-connector/internal/cache"
	"github.com/ignatzorin/skill-connector/internal/dto"
	"github.com/ignatzorin/skill-connector/internal/logger"
	"github.com/ignatzorin/skill-connector/internal/metrics"
	"github.com/ignatzorin/skill-connector/internal/models"
)

// CategoryAPI — чтение категорий из бэкенда.
type CategoryAPI interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
}

// CategoryService отдаёт список категорий через кеш.
// Сбой кеша никогда не роняет запрос: в худшем случае категории читаются напрямую.
type CategoryService struct {
	api   CategoryAPI
	cache cache.Cache
	ttl   time.Duration
}

// NewCategoryService создаёт сервис. cache может быть nil.
func NewCategoryService(api CategoryAPI, c cache.Cache, ttl time.Duration) *CategoryService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CategoryService{api: api, cache: c, ttl: ttl}
}

// List возвращает категории.
func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	log := logger.WithComponent("categories")

	if s.cache != nil {
		var cached []models.Category
		found, err := cache.GetJSON(ctx, s.cache, cache.CategoriesKey, &cached)
		switch {
		case err != nil:
			metrics.CategoryCacheTotal.WithLabelValues("error").Inc()
			log.WithError(err).Warn("кеш категорий недоступен")
		case found:
			metrics.CategoryCacheTotal.WithLabelValues("hit").Inc()
			return cached, nil
		default:
			metrics.CategoryCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	categories, err := s.api.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []models.Category{}
	}

	if s.cache != nil {
		if err := cache.SetJSON(ctx, s.cache, cache.CategoriesKey, categories, s.ttl); err != nil {
			log.WithError(err).Warn("не удалось сохранить категории в кеш")
		}
	}

	return categories, nil
}

// Page собирает публичный список категорий. Сбой бэкенда даёт пустой список и уведомление.
func (s *CategoryService) Page(ctx context.Context) (*dto.CategoriesPage, error) {
	page := &dto.CategoriesPage{Categories: []dto.CategoryOption{}}

	categories, err := s.List(ctx)
	if err != nil {
		if cancelled(ctx) {
			return nil, ctx.Err()
		}
		page.Add(dto.NoticeError, noticeMessage(err, "Не удалось загрузить категории"))
	} else {
		page.Categories = dto.NewCategoryOptions(categories)
	}

	page.Ensure()
	return page, nil
}

// Invalidate сбрасывает кеш категорий.
func (s *CategoryService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cache.CategoriesKey); err != nil {
		logger.WithComponent("categories").WithError(err).Warn("не удалось сбросить кеш категорий")
	}
}
