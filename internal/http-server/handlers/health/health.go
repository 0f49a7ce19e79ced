// Package health реализует HTTP-обработчик проверки состояния сервиса.
package health

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

// Checker сообщает состояние одной зависимости сервиса.
type Checker func() string

// Handler обрабатывает HTTP-запросы проверки состояния.
type Handler struct {
	log    *slog.Logger
	checks map[string]Checker
}

// New создает новый экземпляр Handler с именованными проверками зависимостей.
func New(log *slog.Logger, checks map[string]Checker) *Handler {
	return &Handler{
		log:    log,
		checks: checks,
	}
}

// ServeHTTP godoc
// @Summary Проверка состояния сервиса
// @Description Возвращает состояние сервиса и его зависимостей
// @Tags Health
// @Produce  json
// @Success 200 {object} map[string]any "Состояние сервиса"
// @Failure 429 {object} response.ErrorResponse "Превышен лимит запросов"
// @Router /healthz [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		checks[name] = check()
	}

	render.JSON(w, r, map[string]any{
		"status":     "healthy",
		"timestamp":  time.Now().Format(time.RFC3339),
		"checks":     checks,
		"request_id": middleware.GetReqID(r.Context()),
	})
}
