// Package auth содержит бизнес-логику регистрации и аутентификации
// пользователей: хеширование паролей, проверку учетных данных и выпуск
// JWT токенов.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/portfolio-tracker/internal/lib/jwt"
	"github.com/magabrotheeeer/portfolio-tracker/internal/lib/password"
	"github.com/magabrotheeeer/portfolio-tracker/internal/models"
	"github.com/magabrotheeeer/portfolio-tracker/internal/storage"
)

// ErrInvalidCredentials неверная пара email/пароль либо аккаунт без пароля.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service реализует операции регистрации, входа и смены статуса.
type Service struct {
	users    storage.UserRepository
	jwtMaker jwt.Maker
	log      *slog.Logger
}

// New создает новый экземпляр Service.
func New(users storage.UserRepository, jwtMaker jwt.Maker, log *slog.Logger) *Service {
	return &Service{
		users:    users,
		jwtMaker: jwtMaker,
		log:      log,
	}
}

// Register создает пользователя и возвращает токен доступа. Пароль
// опционален: без него создается email-only аккаунт, вход по паролю
// для которого невозможен.
func (s *Service) Register(ctx context.Context, email, plainPassword string) (string, error) {
	const op = "auth.Register"

	var passwordHash *string
	if plainPassword != "" {
		hash, err := password.GetHash(plainPassword)
		if err != nil {
			return "", fmt.Errorf("%s: %w", op, err)
		}
		passwordHash = &hash
	}

	user := models.User{
		UID:          uuid.New().String(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	if err := s.users.RegisterUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrEmailTaken) {
			return "", err
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("user created", slog.String("uid", user.UID))

	token, err := s.jwtMaker.GenerateToken(user.UID, user.Email)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// RegisterEmailOnly создает аккаунт без пароля. Повторная регистрация
// занятого email возвращает ErrEmailTaken.
func (s *Service) RegisterEmailOnly(ctx context.Context, email string) error {
	const op = "auth.RegisterEmailOnly"

	user := models.User{
		UID:       uuid.New().String(),
		Email:     email,
		CreatedAt: time.Now(),
	}
	if err := s.users.RegisterUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrEmailTaken) {
			return err
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("email-only user created", slog.String("uid", user.UID))
	return nil
}

// Login проверяет учетные данные и возвращает токен доступа.
// Неизвестный email, аккаунт без пароля и неверный пароль неразличимы
// для вызывающего: всегда ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, plainPassword string) (string, error) {
	const op = "auth.Login"

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if user.PasswordHash == nil {
		return "", ErrInvalidCredentials
	}
	if err := password.CompareHash(*user.PasswordHash, plainPassword); err != nil {
		return "", ErrInvalidCredentials
	}

	if err := s.users.TouchLastLogin(ctx, user.UID, time.Now()); err != nil {
		s.log.Warn("failed to update last login", slog.String("uid", user.UID))
	}

	token, err := s.jwtMaker.GenerateToken(user.UID, user.Email)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("login successful", slog.String("uid", user.UID))
	return token, nil
}

// UpgradePremium включает премиум-статус пользователя.
func (s *Service) UpgradePremium(ctx context.Context, userUID string) error {
	const op = "auth.UpgradePremium"

	if err := s.users.SetPremium(ctx, userUID); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("user upgraded to premium", slog.String("uid", userUID))
	return nil
}
