// Package list реализует HTTP-обработчик списка позиций портфеля.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/portfolio-tracker/internal/http-server/mware"
	"github.com/magabrotheeeer/portfolio-tracker/internal/http-server/response"
	"github.com/magabrotheeeer/portfolio-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/portfolio-tracker/internal/models"
)

// PortfolioService определяет методы бизнес-логики портфеля.
type PortfolioService interface {
	ListHoldings(ctx context.Context, userUID string) ([]models.Holding, error)
}

// Handler обрабатывает HTTP-запросы списка позиций.
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
// @Summary Список позиций портфеля
// @Description Возвращает позиции текущего пользователя в порядке добавления
// @Tags Portfolio
// @Produce  json
// @Security BearerAuth
// @Success 200 {array} models.Holding "Позиции портфеля"
// @Failure 401 {object} response.ErrorResponse "Пользователь не аутентифицирован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /portfolio/holdings [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.portfolio.list"

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

	holdings, err := h.portfolioService.ListHoldings(r.Context(), userUID)
	if err != nil {
		log.Error("failed to list holdings", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list holdings"))
		return
	}
	if holdings == nil {
		holdings = []models.Holding{}
	}

	log.Info("holdings listed", slog.Int("count", len(holdings)))
	render.JSON(w, r, holdings)
}
