// Package storage определяет интерфейсы репозиториев пользователей,
// портфелей и настроек рассылки, а также общие ошибки хранилища.
// Реализации: storage/memory (по умолчанию) и storage/postgres.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/magabrotheeeer/portfolio-tracker/internal/models"
)

var (
	// ErrEmailTaken email уже занят другим пользователем.
	ErrEmailTaken = errors.New("email already registered")
	// ErrUserNotFound пользователь не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrPortfolioNotFound у пользователя нет портфеля.
	ErrPortfolioNotFound = errors.New("portfolio not found")
)

// UserRepository определяет методы для работы с пользователями.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя. Возвращает ErrEmailTaken,
	// если email уже зарегистрирован.
	RegisterUser(ctx context.Context, user models.User) error
	// GetUser возвращает пользователя по его uid.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	// GetUserByEmail возвращает пользователя по email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// SetPremium включает премиум-флаг пользователя.
	SetPremium(ctx context.Context, userUID string) error
	// TouchLastLogin обновляет время последнего входа.
	TouchLastLogin(ctx context.Context, userUID string, at time.Time) error
}

// PortfolioRepository определяет методы для работы с позициями портфеля.
type PortfolioRepository interface {
	// AddHolding добавляет позицию в портфель пользователя. Портфель
	// создается лениво при первом обращении.
	AddHolding(ctx context.Context, userUID string, holding models.Holding) error
	// ListHoldings возвращает позиции в порядке добавления. Отсутствие
	// портфеля — пустой список, не ошибка.
	ListHoldings(ctx context.Context, userUID string) ([]models.Holding, error)
	// RemoveHolding удаляет позицию по id. Возвращает ErrPortfolioNotFound,
	// если у пользователя нет портфеля; удаление неизвестного id успешно.
	RemoveHolding(ctx context.Context, userUID, holdingID string) error
}

// PreferenceRepository определяет методы для работы с настройками рассылки.
type PreferenceRepository interface {
	// UpsertPreference создает или обновляет настройку пользователя.
	UpsertPreference(ctx context.Context, pref models.EmailPreference) error
	// ListByFrequency возвращает настройки с указанной периодичностью.
	ListByFrequency(ctx context.Context, freq models.EmailFrequency) ([]models.EmailPreference, error)
}
