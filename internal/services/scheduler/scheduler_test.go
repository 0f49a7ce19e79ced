package scheduler

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/portfolio-tracker/internal/models"
	"github.com/magabrotheeeer/portfolio-tracker/internal/storage/memory"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type publishedMessage struct {
	routingKey string
	message    any
}

func TestRunPublishDailySummaries(t *testing.T) {
	ctx := context.Background()
	st := memory.New()

	// пользователь с ежедневной рассылкой и непустым портфелем
	require.NoError(t, st.RegisterUser(ctx, models.User{UID: "u-daily", Email: "daily@example.com"}))
	require.NoError(t, st.AddHolding(ctx, "u-daily", models.Holding{ID: "h1", Ticker: "AAPL", Amount: 2}))
	require.NoError(t, st.UpsertPreference(ctx, models.EmailPreference{UserUID: "u-daily", Frequency: models.FrequencyDaily}))

	// пользователь с ежедневной рассылкой, но без позиций
	require.NoError(t, st.RegisterUser(ctx, models.User{UID: "u-empty", Email: "empty@example.com"}))
	require.NoError(t, st.UpsertPreference(ctx, models.EmailPreference{UserUID: "u-empty", Frequency: models.FrequencyDaily}))

	// пользователь с еженедельной рассылкой в ежедневный прогон не попадает
	require.NoError(t, st.RegisterUser(ctx, models.User{UID: "u-weekly", Email: "weekly@example.com"}))
	require.NoError(t, st.AddHolding(ctx, "u-weekly", models.Holding{ID: "h2", Ticker: "GOOG", Amount: 1}))
	require.NoError(t, st.UpsertPreference(ctx, models.EmailPreference{UserUID: "u-weekly", Frequency: models.FrequencyWeekly}))

	var published []publishedMessage
	svc := New(st, st, st, discardLogger())
	svc.publish = func(_ *amqp.Channel, exchange, routingKey string, message any) error {
		assert.Equal(t, "summaries", exchange)
		published = append(published, publishedMessage{routingKey: routingKey, message: message})
		return nil
	}

	svc.runPublishDailySummaries(ctx, nil)

	require.Len(t, published, 1)
	assert.Equal(t, "daily", published[0].routingKey)

	job, ok := published[0].message.(*models.SummaryJob)
	require.True(t, ok)
	assert.Equal(t, "u-daily", job.UserUID)
	assert.Equal(t, "daily@example.com", job.Email)
	require.Len(t, job.Holdings, 1)
	assert.Equal(t, "AAPL", job.Holdings[0].Ticker)
}

func TestRunPublishDailySummaries_NoUsers(t *testing.T) {
	st := memory.New()

	called := false
	svc := New(st, st, st, discardLogger())
	svc.publish = func(_ *amqp.Channel, _, _ string, _ any) error {
		called = true
		return nil
	}

	svc.runPublishDailySummaries(context.Background(), nil)
	assert.False(t, called)
}
