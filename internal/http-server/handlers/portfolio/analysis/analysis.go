// Package analysis реализует HTTP-обработчик анализа портфеля.
package analysis

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
	Analyze(ctx context.Context, userUID string) ([]models.AnalysisEntry, error)
}

// Handler обрабатывает HTTP-запросы анализа портфеля.
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
// @Summary Анализ портфеля
// @Description Возвращает позиции с котировками, историей цен и новостями
// @Tags Portfolio
// @Produce  json
// @Security BearerAuth
// @Success 200 {array} models.AnalysisEntry "Анализ позиций"
// @Failure 401 {object} response.ErrorResponse "Пользователь не аутентифицирован"
// @Failure 429 {object} response.ErrorResponse "Превышен лимит запросов"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /portfolio/analysis [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.portfolio.analysis"

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

	entries, err := h.portfolioService.Analyze(r.Context(), userUID)
	if err != nil {
		log.Error("failed to analyze portfolio", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to analyze portfolio"))
		return
	}
	if entries == nil {
		entries = []models.AnalysisEntry{}
	}

	log.Info("portfolio analyzed", slog.Int("count", len(entries)))
	render.JSON(w, r, entries)
}
