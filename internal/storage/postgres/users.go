package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/magabrotheeeer/portfolio-tracker/internal/models"
	"github.com/magabrotheeeer/portfolio-tracker/internal/storage"
)

// RegisterUser сохраняет нового пользователя. Уникальность email
// обеспечивается индексом, нарушение транслируется в ErrEmailTaken.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) error {
	const op = "postgres.RegisterUser"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO users (uid, email, password_hash, is_premium, created_at)
			  VALUES ($1, $2, $3, $4, $5)`
	_, err := s.DB.ExecContext(ctx, query,
		user.UID, user.Email, user.PasswordHash, user.IsPremium, user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return storage.ErrEmailTaken
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetUser возвращает пользователя по его uid.
func (s *Storage) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	const op = "postgres.GetUser"
	return s.getUser(ctx, op, `SELECT uid, email, password_hash, is_premium, created_at, last_login
			  FROM users WHERE uid = $1`, userUID)
}

// GetUserByEmail возвращает пользователя по email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "postgres.GetUserByEmail"
	return s.getUser(ctx, op, `SELECT uid, email, password_hash, is_premium, created_at, last_login
			  FROM users WHERE email = $1`, email)
}

func (s *Storage) getUser(ctx context.Context, op, query string, arg any) (*models.User, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, arg)

	var passwordHash sql.NullString
	var lastLogin sql.NullTime
	if err := row.Scan(&u.UID, &u.Email, &passwordHash, &u.IsPremium,
		&u.CreatedAt, &lastLogin); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if passwordHash.Valid {
		u.PasswordHash = &passwordHash.String
	}
	if lastLogin.Valid {
		u.LastLogin = &lastLogin.Time
	}
	return u, nil
}

// SetPremium включает премиум-флаг пользователя.
func (s *Storage) SetPremium(ctx context.Context, userUID string) error {
	const op = "postgres.SetPremium"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx,
		`UPDATE users SET is_premium = TRUE WHERE uid = $1`, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return storage.ErrUserNotFound
	}
	return nil
}

// TouchLastLogin обновляет время последнего входа пользователя.
func (s *Storage) TouchLastLogin(ctx context.Context, userUID string, at time.Time) error {
	const op = "postgres.TouchLastLogin"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx,
		`UPDATE users SET last_login = $2 WHERE uid = $1`, userUID, at)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return storage.ErrUserNotFound
	}
	return nil
}
