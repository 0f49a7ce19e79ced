// Package news предоставляет адаптер новостей по компании и тикеру.
// Service оборачивает источник кешем, ключ — пара (компания, тикер).
package news

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/portfolio-tracker/internal/cache"
	"github.com/magabrotheeeer/portfolio-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/portfolio-tracker/internal/models"
)

// Provider описывает источник новостей.
type Provider interface {
	// Fetch возвращает свежие статьи; пустой список — новостей нет
	// либо источник недоступен.
	Fetch(ctx context.Context, companyName, ticker string) ([]models.NewsArticle, error)
}

// Service кеширующая обертка над источником новостей.
type Service struct {
	provider Provider
	cache    cache.Cache
	ttl      time.Duration
	log      *slog.Logger
}

// NewService создает Service с указанным кешем и временем жизни записей.
func NewService(provider Provider, c cache.Cache, ttl time.Duration, log *slog.Logger) *Service {
	return &Service{
		provider: provider,
		cache:    c,
		ttl:      ttl,
		log:      log,
	}
}

// Get возвращает новости по компании и тикеру, используя кеш.
// Ошибка кеша не фатальна: запрос уходит в источник.
func (s *Service) Get(ctx context.Context, companyName, ticker string) ([]models.NewsArticle, error) {
	cacheKey := fmt.Sprintf("news:%s:%s", companyName, ticker)

	var cached []models.NewsArticle
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read news cache", slog.String("key", cacheKey), sl.Err(err))
	}
	if found {
		return cached, nil
	}

	articles, err := s.provider.Fetch(ctx, companyName, ticker)
	if err != nil {
		return nil, err
	}

	if len(articles) > 0 {
		if err := s.cache.Set(cacheKey, articles, s.ttl); err != nil {
			s.log.Warn("failed to cache news", slog.String("key", cacheKey), sl.Err(err))
		}
	}
	return articles, nil
}

// FallbackArticles строит детерминированную статью-заглушку, используемую
// при недоступности источника новостей.
func FallbackArticles(companyName, ticker string) []models.NewsArticle {
	return []models.NewsArticle{
		{
			Title:       fmt.Sprintf("%s Market Update", companyName),
			Description: fmt.Sprintf("Latest market analysis for %s...", ticker),
			URL:         "https://example.com/news/1",
			PublishedAt: time.Now().Format(time.RFC3339),
			Source:      "Market News",
		},
	}
}
