// Package marketdata предоставляет адаптер рыночных данных: текущие
// котировки и исторические ряды цен по тикеру. Недоступность источника
// выражается значением nil, а не ошибкой наружу.
package marketdata

import (
	"context"
	"time"

	"github.com/magabrotheeeer/portfolio-tracker/internal/models"
)

// HistoryDays длина исторического ряда по умолчанию.
const HistoryDays = 30

// Provider описывает источник рыночных данных.
type Provider interface {
	// Quote возвращает текущий снимок котировки; nil — тикер не найден
	// либо источник недоступен.
	Quote(ctx context.Context, ticker string) (*models.Quote, error)
	// History возвращает исторический ряд за days дней; пустой ряд —
	// данные недоступны.
	History(ctx context.Context, ticker string, days int) ([]models.PricePoint, error)
}

// FallbackHistory строит детерминированный синтетический ряд цен,
// используемый как заглушка при недоступности источника: цена закрытия
// ходит по базовой цене с шагом i%5, объем линейно убывает.
func FallbackHistory(ticker string, days int) []models.PricePoint {
	basePrice := basePriceFor(ticker)
	points := make([]models.PricePoint, 0, days)
	now := time.Now()
	for i := 0; i < days; i++ {
		points = append(points, models.PricePoint{
			Date:   now.AddDate(0, 0, -i).Format("2006-01-02"),
			Close:  basePrice + float64(i%5),
			Volume: 1000000 - int64(i)*10000,
		})
	}
	return points
}

func basePriceFor(ticker string) float64 {
	if ticker == "AAPL" {
		return 150.0
	}
	return 100.0
}
