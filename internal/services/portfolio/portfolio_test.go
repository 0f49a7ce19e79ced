package portfolio

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/portfolio-tracker/internal/marketdata"
	"github.com/magabrotheeeer/portfolio-tracker/internal/models"
	"github.com/magabrotheeeer/portfolio-tracker/internal/storage"
	"github.com/magabrotheeeer/portfolio-tracker/internal/storage/memory"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubNews struct {
	articles []models.NewsArticle
	err      error
}

func (s *stubNews) Get(_ context.Context, _, _ string) ([]models.NewsArticle, error) {
	return s.articles, s.err
}

type failingHistoryProvider struct {
	marketdata.Provider
}

func (p *failingHistoryProvider) History(_ context.Context, _ string, _ int) ([]models.PricePoint, error) {
	return nil, errors.New("upstream unavailable")
}

func newService(t *testing.T, market marketdata.Provider, newsGetter NewsGetter) (*Service, *memory.Storage) {
	t.Helper()
	st := memory.New()
	return New(st, market, newsGetter, discardLogger()), st
}

func TestAddHolding_NormalizesTickerAndSnapshotsQuote(t *testing.T) {
	svc, _ := newService(t, marketdata.NewMockProvider(discardLogger()), &stubNews{})

	holding, err := svc.AddHolding(context.Background(), "user-1", "  aapl ", 10)
	require.NoError(t, err)

	assert.Equal(t, "AAPL", holding.Ticker)
	assert.NotEmpty(t, holding.ID)
	require.NotNil(t, holding.CurrentData)
	assert.Equal(t, 150.25, holding.CurrentData.CurrentPrice)
	assert.Equal(t, "Apple Inc.", holding.CurrentData.CompanyName)

	listed, err := svc.ListHoldings(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, holding.ID, listed[0].ID)
}

func TestAddHolding_UnknownTickerGetsGenericQuote(t *testing.T) {
	svc, _ := newService(t, marketdata.NewMockProvider(discardLogger()), &stubNews{})

	holding, err := svc.AddHolding(context.Background(), "user-1", "msft", 3)
	require.NoError(t, err)
	assert.Equal(t, 100.00, holding.CurrentData.CurrentPrice)
	assert.Equal(t, "Company MSFT", holding.CurrentData.CompanyName)
}

func TestRemoveHolding(t *testing.T) {
	svc, _ := newService(t, marketdata.NewMockProvider(discardLogger()), &stubNews{})

	holding, err := svc.AddHolding(context.Background(), "user-1", "AAPL", 1)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveHolding(context.Background(), "user-1", holding.ID))
	// повторное удаление того же id из существующего портфеля успешно
	require.NoError(t, svc.RemoveHolding(context.Background(), "user-1", holding.ID))

	err = svc.RemoveHolding(context.Background(), "nobody", holding.ID)
	assert.ErrorIs(t, err, storage.ErrPortfolioNotFound)
}

func TestAnalyze_EmptyPortfolio(t *testing.T) {
	svc, _ := newService(t, marketdata.NewMockProvider(discardLogger()), &stubNews{})

	analysis, err := svc.Analyze(context.Background(), "user-1")
	require.NoError(t, err)
	assert.NotNil(t, analysis)
	assert.Empty(t, analysis)
}

func TestAnalyze_EnrichesEveryHolding(t *testing.T) {
	stub := &stubNews{articles: []models.NewsArticle{
		{Title: "AAPL Reports Strong Quarterly Earnings"},
		{Title: "Analysts Upgrade AAPL Price Target"},
	}}
	svc, _ := newService(t, marketdata.NewMockProvider(discardLogger()), stub)

	_, err := svc.AddHolding(context.Background(), "user-1", "AAPL", 10)
	require.NoError(t, err)
	_, err = svc.AddHolding(context.Background(), "user-1", "GOOG", 2)
	require.NoError(t, err)

	analysis, err := svc.Analyze(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, analysis, 2)

	assert.Equal(t, "AAPL", analysis[0].Ticker)
	assert.Equal(t, "GOOG", analysis[1].Ticker)
	for _, entry := range analysis {
		assert.Len(t, entry.History, marketdata.HistoryDays)
		assert.NotEmpty(t, entry.News)
		require.NotNil(t, entry.CurrentData)
	}
}

func TestAnalyze_FallsBackWhenEnrichmentFails(t *testing.T) {
	market := &failingHistoryProvider{Provider: marketdata.NewMockProvider(discardLogger())}
	stub := &stubNews{err: errors.New("news api down")}
	svc, _ := newService(t, market, stub)

	_, err := svc.AddHolding(context.Background(), "user-1", "AAPL", 5)
	require.NoError(t, err)

	analysis, err := svc.Analyze(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, analysis, 1)

	entry := analysis[0]
	assert.Len(t, entry.History, marketdata.HistoryDays)
	require.NotEmpty(t, entry.News)
	assert.Contains(t, entry.News[0].Title, "Apple Inc.")
}

func TestAnalyze_SkipsHoldingWithoutQuote(t *testing.T) {
	svc, st := newService(t, marketdata.NewMockProvider(discardLogger()), &stubNews{})

	_, err := svc.AddHolding(context.Background(), "user-1", "AAPL", 5)
	require.NoError(t, err)
	require.NoError(t, st.AddHolding(context.Background(), "user-1", models.Holding{
		ID:     "broken",
		Ticker: "BRKN",
		Amount: 1,
	}))

	analysis, err := svc.Analyze(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, analysis, 1)
	assert.Equal(t, "AAPL", analysis[0].Ticker)
}
