// Package upgrade реализует HTTP-обработчик включения премиум-статуса.
package upgrade

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/portfolio-tracker/internal/http-server/mware"
	"github.com/magabrotheeeer/portfolio-tracker/internal/http-server/response"
	"github.com/magabrotheeeer/portfolio-tracker/internal/lib/sl"
)

// AuthService определяет методы бизнес-логики для премиум-статуса.
type AuthService interface {
	UpgradePremium(ctx context.Context, userUID string) error
}

// Handler обрабатывает HTTP-запросы включения премиум-статуса.
type Handler struct {
	log         *slog.Logger
	authService AuthService
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, authService AuthService) *Handler {
	return &Handler{
		log:         log,
		authService: authService,
	}
}

// ServeHTTP godoc
// @Summary Включение премиум-статуса
// @Description Помечает текущего пользователя как премиум
// @Tags Auth
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Сообщение об успехе"
// @Failure 401 {object} response.ErrorResponse "Пользователь не аутентифицирован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /auth/upgrade-premium [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.upgrade"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := mware.UserUIDFromContext(r.Context())
	if !ok {
		log.Error("user identification missing")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("user identification missing"))
		return
	}

	if err := h.authService.UpgradePremium(r.Context(), userUID); err != nil {
		log.Error("failed to upgrade user", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to upgrade user"))
		return
	}

	log.Info("user upgraded to premium", slog.String("user_uid", userUID))
	render.JSON(w, r, map[string]any{
		"message": "upgraded to premium successfully",
	})
}
