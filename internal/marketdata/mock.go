package marketdata

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/portfolio-tracker/internal/models"
)

// MockProvider отдает фиксированные рыночные данные. Используется как
// источник по умолчанию, пока не подключен внешний поставщик котировок.
type MockProvider struct {
	log *slog.Logger
}

// NewMockProvider создает новый MockProvider.
func NewMockProvider(log *slog.Logger) *MockProvider {
	return &MockProvider{log: log}
}

// Quote возвращает фиксированный снимок котировки по тикеру.
func (p *MockProvider) Quote(_ context.Context, ticker string) (*models.Quote, error) {
	p.log.Info("fetching stock data", slog.String("ticker", ticker))

	if ticker == "AAPL" {
		return &models.Quote{
			CurrentPrice:  150.25,
			PreviousClose: 149.50,
			DayHigh:       151.00,
			DayLow:        148.75,
			Volume:        1000000,
			MarketCap:     2500000000,
			CompanyName:   "Apple Inc.",
		}, nil
	}
	return &models.Quote{
		CurrentPrice:  100.00,
		PreviousClose: 99.50,
		DayHigh:       101.00,
		DayLow:        98.75,
		Volume:        500000,
		MarketCap:     1000000000,
		CompanyName:   fmt.Sprintf("Company %s", ticker),
	}, nil
}

// History возвращает синтетический исторический ряд за days дней.
func (p *MockProvider) History(_ context.Context, ticker string, days int) ([]models.PricePoint, error) {
	p.log.Info("fetching historical data", slog.String("ticker", ticker))
	return FallbackHistory(ticker, days), nil
}
