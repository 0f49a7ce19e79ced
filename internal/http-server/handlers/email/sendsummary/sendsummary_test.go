package sendsummary_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/portfolio-tracker/internal/http-server/handlers/email/sendsummary"
	"github.com/magabrotheeeer/portfolio-tracker/internal/http-server/mware"
	"github.com/magabrotheeeer/portfolio-tracker/internal/models"
	"github.com/magabrotheeeer/portfolio-tracker/internal/services/email"
	"github.com/magabrotheeeer/portfolio-tracker/internal/storage/memory"
)

type mockDispatcher struct {
	EnqueueFunc func(job models.SummaryJob) error
}

func (m *mockDispatcher) Enqueue(job models.SummaryJob) error {
	return m.EnqueueFunc(job)
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }

func makeLogger() *slog.Logger {
	return slog.New(discardHandler{})
}

func authedRequest() *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/email/send-summary", nil)
	return req.WithContext(context.WithValue(req.Context(), mware.UserUID, "uid-1"))
}

func TestSendSummaryHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		st := memory.New()
		ctx := context.Background()
		require.NoError(t, st.RegisterUser(ctx, models.User{UID: "uid-1", Email: "user@example.com"}))
		require.NoError(t, st.AddHolding(ctx, "uid-1", models.Holding{ID: "h1", Ticker: "AAPL", Amount: 10}))

		var enqueued *models.SummaryJob
		dispatcher := &mockDispatcher{
			EnqueueFunc: func(job models.SummaryJob) error {
				enqueued = &job
				return nil
			},
		}

		w := httptest.NewRecorder()
		sendsummary.New(makeLogger(), st, st, dispatcher).ServeHTTP(w, authedRequest())

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "summary email scheduled")
		require.NotNil(t, enqueued)
		assert.Equal(t, "user@example.com", enqueued.Email)
		require.Len(t, enqueued.Holdings, 1)
	})

	t.Run("empty portfolio", func(t *testing.T) {
		st := memory.New()
		require.NoError(t, st.RegisterUser(context.Background(), models.User{UID: "uid-1", Email: "user@example.com"}))

		dispatcher := &mockDispatcher{
			EnqueueFunc: func(models.SummaryJob) error {
				t.Fatal("must not enqueue for empty portfolio")
				return nil
			},
		}

		w := httptest.NewRecorder()
		sendsummary.New(makeLogger(), st, st, dispatcher).ServeHTTP(w, authedRequest())

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "portfolio is empty")
	})

	t.Run("dispatcher full", func(t *testing.T) {
		st := memory.New()
		ctx := context.Background()
		require.NoError(t, st.RegisterUser(ctx, models.User{UID: "uid-1", Email: "user@example.com"}))
		require.NoError(t, st.AddHolding(ctx, "uid-1", models.Holding{ID: "h1", Ticker: "AAPL", Amount: 10}))

		dispatcher := &mockDispatcher{
			EnqueueFunc: func(models.SummaryJob) error {
				return email.ErrQueueFull
			},
		}

		w := httptest.NewRecorder()
		sendsummary.New(makeLogger(), st, st, dispatcher).ServeHTTP(w, authedRequest())

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
