package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/magabrotheeeer/portfolio-tracker/internal/models"
	"github.com/magabrotheeeer/portfolio-tracker/internal/storage"
)

// AddHolding добавляет позицию в портфель пользователя. Снимок котировки
// хранится как jsonb.
func (s *Storage) AddHolding(ctx context.Context, userUID string, holding models.Holding) error {
	const op = "postgres.AddHolding"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	currentData, err := json.Marshal(holding.CurrentData)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO holdings (id, user_uid, ticker, amount, current_data, added_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := s.DB.ExecContext(ctx, query,
		holding.ID, userUID, holding.Ticker, holding.Amount, currentData, holding.AddedAt); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListHoldings возвращает позиции пользователя в порядке добавления.
func (s *Storage) ListHoldings(ctx context.Context, userUID string) ([]models.Holding, error) {
	const op = "postgres.ListHoldings"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, ticker, amount, current_data, added_at
			  FROM holdings WHERE user_uid = $1 ORDER BY seq`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	holdings := make([]models.Holding, 0)
	for rows.Next() {
		var h models.Holding
		var currentData []byte
		if err := rows.Scan(&h.ID, &h.Ticker, &h.Amount, &currentData, &h.AddedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if len(currentData) > 0 {
			if err := json.Unmarshal(currentData, &h.CurrentData); err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
		}
		holdings = append(holdings, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return holdings, nil
}

// RemoveHolding удаляет позицию по id. Если у пользователя нет ни одной
// позиции, возвращает ErrPortfolioNotFound; удаление неизвестного id успешно.
func (s *Storage) RemoveHolding(ctx context.Context, userUID, holdingID string) error {
	const op = "postgres.RemoveHolding"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var exists bool
	if err := s.DB.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM holdings WHERE user_uid = $1)`, userUID).Scan(&exists); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !exists {
		return storage.ErrPortfolioNotFound
	}

	if _, err := s.DB.ExecContext(ctx,
		`DELETE FROM holdings WHERE user_uid = $1 AND id = $2`, userUID, holdingID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
