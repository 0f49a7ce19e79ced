// Package memory реализует хранилище в памяти процесса. Все данные
// теряются при перезапуске. Доступ к общим map защищен мьютексом,
// порядок позиций портфеля соответствует порядку добавления.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/magabrotheeeer/portfolio-tracker/internal/models"
	"github.com/magabrotheeeer/portfolio-tracker/internal/storage"
)

// Storage реализует репозитории пользователей, портфелей и настроек
// поверх map в памяти процесса.
type Storage struct {
	mu          sync.RWMutex
	users       map[string]*models.User
	emails      map[string]string // email -> uid
	portfolios  map[string][]models.Holding
	preferences map[string]models.EmailPreference
}

// New создает пустое хранилище.
func New() *Storage {
	return &Storage{
		users:       make(map[string]*models.User),
		emails:      make(map[string]string),
		portfolios:  make(map[string][]models.Holding),
		preferences: make(map[string]models.EmailPreference),
	}
}

// RegisterUser сохраняет нового пользователя, проверяя уникальность email.
func (s *Storage) RegisterUser(_ context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.emails[user.Email]; taken {
		return storage.ErrEmailTaken
	}
	u := user
	s.users[u.UID] = &u
	s.emails[u.Email] = u.UID
	return nil
}

// GetUser возвращает пользователя по uid.
func (s *Storage) GetUser(_ context.Context, userUID string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userUID]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

// GetUserByEmail возвращает пользователя по email.
func (s *Storage) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	uid, ok := s.emails[email]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	copied := *s.users[uid]
	return &copied, nil
}

// SetPremium включает премиум-флаг пользователя.
func (s *Storage) SetPremium(_ context.Context, userUID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userUID]
	if !ok {
		return storage.ErrUserNotFound
	}
	u.IsPremium = true
	return nil
}

// TouchLastLogin обновляет время последнего входа пользователя.
func (s *Storage) TouchLastLogin(_ context.Context, userUID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userUID]
	if !ok {
		return storage.ErrUserNotFound
	}
	u.LastLogin = &at
	return nil
}

// AddHolding добавляет позицию в конец портфеля пользователя.
func (s *Storage) AddHolding(_ context.Context, userUID string, holding models.Holding) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.portfolios[userUID] = append(s.portfolios[userUID], holding)
	return nil
}

// ListHoldings возвращает копию списка позиций в порядке добавления.
func (s *Storage) ListHoldings(_ context.Context, userUID string) ([]models.Holding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	holdings := s.portfolios[userUID]
	out := make([]models.Holding, len(holdings))
	copy(out, holdings)
	return out, nil
}

// RemoveHolding удаляет позицию по id фильтрацией списка. Удаление
// отсутствующего id оставляет список без изменений и не считается ошибкой.
func (s *Storage) RemoveHolding(_ context.Context, userUID, holdingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	holdings, ok := s.portfolios[userUID]
	if !ok {
		return storage.ErrPortfolioNotFound
	}
	filtered := holdings[:0]
	for _, h := range holdings {
		if h.ID != holdingID {
			filtered = append(filtered, h)
		}
	}
	s.portfolios[userUID] = filtered
	return nil
}

// UpsertPreference создает или заменяет настройку рассылки пользователя.
func (s *Storage) UpsertPreference(_ context.Context, pref models.EmailPreference) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.preferences[pref.UserUID] = pref
	return nil
}

// ListByFrequency возвращает настройки с указанной периодичностью.
func (s *Storage) ListByFrequency(_ context.Context, freq models.EmailFrequency) ([]models.EmailPreference, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.EmailPreference
	for _, pref := range s.preferences {
		if pref.Frequency == freq {
			out = append(out, pref)
		}
	}
	return out, nil
}
