// Package models содержит структуры данных предметной области:
// пользователей, позиции портфеля, рыночные данные, новости и
// настройки email-рассылки.
package models

import "time"

// User представляет зарегистрированного пользователя.
// PasswordHash может быть nil для пользователей, зарегистрированных
// только по email — такие пользователи не могут войти по паролю.
type User struct {
	UID          string     `json:"id"`
	Email        string     `json:"email"`
	PasswordHash *string    `json:"-"`
	IsPremium    bool       `json:"is_premium"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}

// Quote точечный снимок рыночных данных по тикеру.
type Quote struct {
	CurrentPrice  float64 `json:"current_price"`
	PreviousClose float64 `json:"previous_close"`
	DayHigh       float64 `json:"day_high"`
	DayLow        float64 `json:"day_low"`
	Volume        int64   `json:"volume"`
	MarketCap     float64 `json:"market_cap"`
	CompanyName   string  `json:"company_name"`
}

// PricePoint одна точка исторического ряда цен.
type PricePoint struct {
	Date   string  `json:"date"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// NewsArticle новость по компании.
type NewsArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"published_at"`
	Source      string `json:"source"`
}

// Holding позиция пользователя по одному тикеру.
// CurrentData — снимок котировки, сделанный в момент добавления,
// автоматически не обновляется.
type Holding struct {
	ID          string    `json:"id"`
	Ticker      string    `json:"ticker"`
	Amount      float64   `json:"amount"`
	CurrentData *Quote    `json:"current_data"`
	AddedAt     time.Time `json:"added_at"`
}

// AnalysisEntry обогащенное представление одной позиции: снимок
// котировки, исторический ряд и новости.
type AnalysisEntry struct {
	Ticker      string        `json:"ticker"`
	Amount      float64       `json:"amount"`
	CurrentData *Quote        `json:"current_data"`
	History     []PricePoint  `json:"history"`
	News        []NewsArticle `json:"news"`
}

// EmailFrequency периодичность email-рассылки.
type EmailFrequency string

const (
	FrequencyDaily  EmailFrequency = "daily"
	FrequencyWeekly EmailFrequency = "weekly"
	FrequencyNone   EmailFrequency = "none"
)

// Valid сообщает, является ли значение одним из допустимых.
func (f EmailFrequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyNone:
		return true
	}
	return false
}

// EmailPreference настройка рассылки одного пользователя.
type EmailPreference struct {
	UserUID   string         `json:"user_id"`
	Frequency EmailFrequency `json:"frequency"`
}

// SummaryJob задание на отправку сводки по портфелю. Публикуется
// планировщиком в очередь и потребляется сервисом отправки.
type SummaryJob struct {
	UserUID  string    `json:"user_id"`
	Email    string    `json:"email"`
	Holdings []Holding `json:"holdings"`
}
