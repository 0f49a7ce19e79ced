// Package remove реализует HTTP-обработчик удаления позиции из портфеля.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/portfolio-tracker/internal/http-server/mware"
	"github.com/magabrotheeeer/portfolio-tracker/internal/http-server/response"
	"github.com/magabrotheeeer/portfolio-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/portfolio-tracker/internal/storage"
)

// PortfolioService определяет методы бизнес-логики портфеля.
type PortfolioService interface {
	RemoveHolding(ctx context.Context, userUID, holdingID string) error
}

// Handler обрабатывает HTTP-запросы удаления позиции.
type Handler struct {
	log              *slog.Logger
	portfolioService PortfolioService
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, portfolioService PortfolioService) *Handler {
	return &Handler{
		log:              log,
		portfolioService: portfolioService,
	}
}

// ServeHTTP godoc
// @Summary Удаление позиции из портфеля
// @Description Удаляет позицию по id, удаление неизвестного id успешно
// @Tags Portfolio
// @Produce  json
// @Security BearerAuth
// @Param id path string true "Идентификатор позиции"
// @Success 200 {object} map[string]any "Сообщение об успехе"
// @Failure 401 {object} response.ErrorResponse "Пользователь не аутентифицирован"
// @Failure 404 {object} response.ErrorResponse "У пользователя нет портфеля"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /portfolio/holdings/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.portfolio.remove"

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

	holdingID := chi.URLParam(r, "id")

	if err := h.portfolioService.RemoveHolding(r.Context(), userUID, holdingID); err != nil {
		if errors.Is(err, storage.ErrPortfolioNotFound) {
			log.Error("portfolio not found", slog.String("user_uid", userUID))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("portfolio not found"))
			return
		}
		log.Error("failed to remove holding", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to remove holding"))
		return
	}

	log.Info("holding removed", slog.String("holding_id", holdingID))
	render.JSON(w, r, map[string]any{
		"message": "holding removed successfully",
	})
}
