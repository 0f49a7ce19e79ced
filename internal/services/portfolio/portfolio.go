// Package portfolio содержит бизнес-логику портфеля: добавление и
// удаление позиций и конвейер анализа, обогащающий каждую позицию
// историей цен и новостями.
package portfolio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/portfolio-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/portfolio-tracker/internal/marketdata"
	"github.com/magabrotheeeer/portfolio-tracker/internal/models"
	"github.com/magabrotheeeer/portfolio-tracker/internal/news"
	"github.com/magabrotheeeer/portfolio-tracker/internal/storage"
)

// ErrInvalidTicker тикер не распознан источником рыночных данных.
var ErrInvalidTicker = errors.New("invalid stock ticker")

// NewsGetter описывает источник новостей для конвейера анализа.
type NewsGetter interface {
	Get(ctx context.Context, companyName, ticker string) ([]models.NewsArticle, error)
}

// Service реализует операции портфеля.
type Service struct {
	repo   storage.PortfolioRepository
	market marketdata.Provider
	news   NewsGetter
	log    *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo storage.PortfolioRepository, market marketdata.Provider, newsGetter NewsGetter, log *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		market: market,
		news:   newsGetter,
		log:    log,
	}
}

// AddHolding добавляет позицию в портфель. Тикер нормализуется к
// верхнему регистру и должен разрешаться в рыночные данные, снимок
// котировки сохраняется вместе с позицией.
func (s *Service) AddHolding(ctx context.Context, userUID, ticker string, amount float64) (*models.Holding, error) {
	const op = "portfolio.AddHolding"

	normalized := strings.ToUpper(strings.TrimSpace(ticker))
	quote, err := s.market.Quote(ctx, normalized)
	if err != nil {
		s.log.Warn("quote lookup failed", slog.String("ticker", normalized), sl.Err(err))
		return nil, ErrInvalidTicker
	}
	if quote == nil {
		return nil, ErrInvalidTicker
	}

	holding := models.Holding{
		ID:          uuid.New().String(),
		Ticker:      normalized,
		Amount:      amount,
		CurrentData: quote,
		AddedAt:     time.Now(),
	}
	if err := s.repo.AddHolding(ctx, userUID, holding); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("holding added",
		slog.String("user_uid", userUID), slog.String("ticker", normalized))
	return &holding, nil
}

// ListHoldings возвращает позиции пользователя в порядке добавления.
func (s *Service) ListHoldings(ctx context.Context, userUID string) ([]models.Holding, error) {
	const op = "portfolio.ListHoldings"

	holdings, err := s.repo.ListHoldings(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return holdings, nil
}

// RemoveHolding удаляет позицию по id. Удаление неизвестного id из
// существующего портфеля успешно; отсутствие портфеля — ошибка.
func (s *Service) RemoveHolding(ctx context.Context, userUID, holdingID string) error {
	const op = "portfolio.RemoveHolding"

	if err := s.repo.RemoveHolding(ctx, userUID, holdingID); err != nil {
		if errors.Is(err, storage.ErrPortfolioNotFound) {
			return err
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("holding removed",
		slog.String("user_uid", userUID), slog.String("holding_id", holdingID))
	return nil
}

// Analyze строит обогащенное представление портфеля. Каждая позиция
// обрабатывается независимо: недоступная история или новости заменяются
// детерминированными заглушками, позиция без снимка котировки
// пропускается. Порядок входного списка сохраняется.
func (s *Service) Analyze(ctx context.Context, userUID string) ([]models.AnalysisEntry, error) {
	const op = "portfolio.Analyze"

	holdings, err := s.repo.ListHoldings(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	analysis := make([]models.AnalysisEntry, 0, len(holdings))
	for _, holding := range holdings {
		if holding.CurrentData == nil {
			s.log.Error("no stock data for holding", slog.String("ticker", holding.Ticker))
			continue
		}

		history, err := s.market.History(ctx, holding.Ticker, marketdata.HistoryDays)
		if err != nil || len(history) == 0 {
			s.log.Warn("no history data, using fallback", slog.String("ticker", holding.Ticker))
			history = marketdata.FallbackHistory(holding.Ticker, marketdata.HistoryDays)
		}

		articles, err := s.news.Get(ctx, holding.CurrentData.CompanyName, holding.Ticker)
		if err != nil || len(articles) == 0 {
			s.log.Warn("no news found, using fallback", slog.String("ticker", holding.Ticker))
			articles = news.FallbackArticles(holding.CurrentData.CompanyName, holding.Ticker)
		}

		analysis = append(analysis, models.AnalysisEntry{
			Ticker:      holding.Ticker,
			Amount:      holding.Amount,
			CurrentData: holding.CurrentData,
			History:     history,
			News:        articles,
		})
	}
	return analysis, nil
}
