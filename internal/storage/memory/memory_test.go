package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/portfolio-tracker/internal/models"
	"github.com/magabrotheeeer/portfolio-tracker/internal/storage"
)

func newUser(email string) models.User {
	return models.User{
		UID:       uuid.New().String(),
		Email:     email,
		CreatedAt: time.Now(),
	}
}

func TestRegisterUser_DuplicateEmail(t *testing.T) {
	s := New()
	ctx := context.Background()

	first := newUser("user@example.com")
	require.NoError(t, s.RegisterUser(ctx, first))

	second := newUser("user@example.com")
	err := s.RegisterUser(ctx, second)
	assert.ErrorIs(t, err, storage.ErrEmailTaken)

	// второй пользователь не должен был сохраниться
	got, err := s.GetUserByEmail(ctx, "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.UID, got.UID)
}

func TestGetUser_NotFound(t *testing.T) {
	s := New()

	got, err := s.GetUser(context.Background(), "no-such-uid")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
	assert.Nil(t, got)
}

func TestSetPremium(t *testing.T) {
	s := New()
	ctx := context.Background()

	user := newUser("premium@example.com")
	require.NoError(t, s.RegisterUser(ctx, user))

	require.NoError(t, s.SetPremium(ctx, user.UID))

	got, err := s.GetUser(ctx, user.UID)
	require.NoError(t, err)
	assert.True(t, got.IsPremium)

	assert.ErrorIs(t, s.SetPremium(ctx, "missing"), storage.ErrUserNotFound)
}

func TestTouchLastLogin(t *testing.T) {
	s := New()
	ctx := context.Background()

	user := newUser("login@example.com")
	require.NoError(t, s.RegisterUser(ctx, user))

	at := time.Now()
	require.NoError(t, s.TouchLastLogin(ctx, user.UID, at))

	got, err := s.GetUser(ctx, user.UID)
	require.NoError(t, err)
	require.NotNil(t, got.LastLogin)
	assert.WithinDuration(t, at, *got.LastLogin, time.Second)
}

func TestHoldings_AddListOrder(t *testing.T) {
	s := New()
	ctx := context.Background()
	userUID := uuid.New().String()

	tickers := []string{"AAPL", "MSFT", "GOOG"}
	for _, ticker := range tickers {
		err := s.AddHolding(ctx, userUID, models.Holding{
			ID:     uuid.New().String(),
			Ticker: ticker,
			Amount: 10,
		})
		require.NoError(t, err)
	}

	holdings, err := s.ListHoldings(ctx, userUID)
	require.NoError(t, err)
	require.Len(t, holdings, 3)
	for i, ticker := range tickers {
		assert.Equal(t, ticker, holdings[i].Ticker)
	}
}

func TestListHoldings_NoPortfolio(t *testing.T) {
	s := New()

	holdings, err := s.ListHoldings(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, holdings)
}

func TestRemoveHolding(t *testing.T) {
	s := New()
	ctx := context.Background()
	userUID := uuid.New().String()

	keep := models.Holding{ID: uuid.New().String(), Ticker: "AAPL", Amount: 5}
	drop := models.Holding{ID: uuid.New().String(), Ticker: "MSFT", Amount: 3}
	require.NoError(t, s.AddHolding(ctx, userUID, keep))
	require.NoError(t, s.AddHolding(ctx, userUID, drop))

	require.NoError(t, s.RemoveHolding(ctx, userUID, drop.ID))

	holdings, err := s.ListHoldings(ctx, userUID)
	require.NoError(t, err)
	require.Len(t, holdings, 1)
	assert.Equal(t, keep.ID, holdings[0].ID)

	// удаление неизвестного id идемпотентно
	require.NoError(t, s.RemoveHolding(ctx, userUID, "no-such-id"))
	holdings, err = s.ListHoldings(ctx, userUID)
	require.NoError(t, err)
	assert.Len(t, holdings, 1)
}

func TestRemoveHolding_NoPortfolio(t *testing.T) {
	s := New()

	err := s.RemoveHolding(context.Background(), "nobody", "some-id")
	assert.ErrorIs(t, err, storage.ErrPortfolioNotFound)
}

func TestPreferences_UpsertAndListByFrequency(t *testing.T) {
	s := New()
	ctx := context.Background()

	daily1 := models.EmailPreference{UserUID: "u1", Frequency: models.FrequencyDaily}
	daily2 := models.EmailPreference{UserUID: "u2", Frequency: models.FrequencyDaily}
	weekly := models.EmailPreference{UserUID: "u3", Frequency: models.FrequencyWeekly}

	for _, p := range []models.EmailPreference{daily1, daily2, weekly} {
		require.NoError(t, s.UpsertPreference(ctx, p))
	}

	got, err := s.ListByFrequency(ctx, models.FrequencyDaily)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	// upsert заменяет прежнее значение
	require.NoError(t, s.UpsertPreference(ctx, models.EmailPreference{
		UserUID: "u1", Frequency: models.FrequencyNone,
	}))
	got, err = s.ListByFrequency(ctx, models.FrequencyDaily)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "u2", got[0].UserUID)
}
