package news

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/portfolio-tracker/internal/models"
)

// MockProvider отдает фиксированные новости. Используется как источник
// по умолчанию, пока не подключен внешний поисковик новостей.
type MockProvider struct {
	log *slog.Logger
}

// NewMockProvider создает новый MockProvider.
func NewMockProvider(log *slog.Logger) *MockProvider {
	return &MockProvider{log: log}
}

// Fetch возвращает две фиксированные статьи по компании.
func (p *MockProvider) Fetch(_ context.Context, companyName, ticker string) ([]models.NewsArticle, error) {
	p.log.Info("fetching news",
		slog.String("company", companyName), slog.String("ticker", ticker))

	now := time.Now()
	return []models.NewsArticle{
		{
			Title:       fmt.Sprintf("%s Market Update", companyName),
			Description: fmt.Sprintf("Latest market analysis for %s...", ticker),
			URL:         "https://example.com/news/1",
			PublishedAt: now.Format(time.RFC3339),
			Source:      "Market News",
		},
		{
			Title:       fmt.Sprintf("%s Industry Trends", companyName),
			Description: fmt.Sprintf("Industry analysis for %s...", ticker),
			URL:         "https://example.com/news/2",
			PublishedAt: now.AddDate(0, 0, -1).Format(time.RFC3339),
			Source:      "Industry Insights",
		},
	}, nil
}
