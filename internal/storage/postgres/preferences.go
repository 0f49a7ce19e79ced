package postgres

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/portfolio-tracker/internal/models"
)

// UpsertPreference создает или обновляет настройку рассылки пользователя.
func (s *Storage) UpsertPreference(ctx context.Context, pref models.EmailPreference) error {
	const op = "postgres.UpsertPreference"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO email_preferences (user_uid, frequency)
			  VALUES ($1, $2)
			  ON CONFLICT (user_uid) DO UPDATE SET frequency = EXCLUDED.frequency`
	if _, err := s.DB.ExecContext(ctx, query, pref.UserUID, string(pref.Frequency)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListByFrequency возвращает настройки рассылки с указанной периодичностью.
func (s *Storage) ListByFrequency(ctx context.Context, freq models.EmailFrequency) ([]models.EmailPreference, error) {
	const op = "postgres.ListByFrequency"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT user_uid, frequency FROM email_preferences WHERE frequency = $1`, string(freq))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var prefs []models.EmailPreference
	for rows.Next() {
		var p models.EmailPreference
		var frequency string
		if err := rows.Scan(&p.UserUID, &frequency); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		p.Frequency = models.EmailFrequency(frequency)
		prefs = append(prefs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return prefs, nil
}
