// Package add реализует HTTP-обработчик добавления позиции в портфель.
package add

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/portfolio-tracker/internal/http-server/mware"
	"github.com/magabrotheeeer/portfolio-tracker/internal/http-server/response"
	"github.com/magabrotheeeer/portfolio-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/portfolio-tracker/internal/models"
	"github.com/magabrotheeeer/portfolio-tracker/internal/services/portfolio"
)

// Request — входные данные для добавления позиции.
type Request struct {
	Ticker string  `json:"ticker" validate:"required,min=1,max=10"`
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// PortfolioService определяет методы бизнес-логики портфеля.
type PortfolioService interface {
	AddHolding(ctx context.Context, userUID, ticker string, amount float64) (*models.Holding, error)
}

// Handler обрабатывает HTTP-запросы добавления позиции.
type Handler struct {
	log              *slog.Logger
	portfolioService PortfolioService
	validate         *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, portfolioService PortfolioService) *Handler {
	return &Handler{
		log:              log,
		portfolioService: portfolioService,
		validate:         validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Добавление позиции в портфель
// @Description Добавляет тикер с количеством акций, сохраняя снимок котировки
// @Tags Portfolio
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Тикер и количество акций"
// @Success 201 {object} models.Holding "Созданная позиция"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON либо неизвестный тикер"
// @Failure 401 {object} response.ErrorResponse "Пользователь не аутентифицирован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации данных"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /portfolio/holdings [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.portfolio.add"

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

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	holding, err := h.portfolioService.AddHolding(r.Context(), userUID, req.Ticker, req.Amount)
	if err != nil {
		if errors.Is(err, portfolio.ErrInvalidTicker) {
			log.Error("invalid ticker", slog.String("ticker", req.Ticker))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid stock ticker"))
			return
		}
		log.Error("failed to add holding", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to add holding"))
		return
	}

	log.Info("holding added", slog.String("ticker", holding.Ticker))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, holding)
}
