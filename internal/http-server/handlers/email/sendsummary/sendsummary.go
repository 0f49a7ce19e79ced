// Package sendsummary реализует HTTP-обработчик запуска фоновой отправки
// сводки по портфелю.
package sendsummary

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/portfolio-tracker/internal/http-server/mware"
	"github.com/magabrotheeeer/portfolio-tracker/internal/http-server/response"
	"github.com/magabrotheeeer/portfolio-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/portfolio-tracker/internal/models"
	"github.com/magabrotheeeer/portfolio-tracker/internal/storage"
)

// Dispatcher принимает задание на фоновую отправку сводки.
type Dispatcher interface {
	Enqueue(job models.SummaryJob) error
}

// Handler обрабатывает HTTP-запросы отправки сводки.
type Handler struct {
	log        *slog.Logger
	users      storage.UserRepository
	portfolios storage.PortfolioRepository
	dispatcher Dispatcher
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, users storage.UserRepository, portfolios storage.PortfolioRepository, dispatcher Dispatcher) *Handler {
	return &Handler{
		log:        log,
		users:      users,
		portfolios: portfolios,
		dispatcher: dispatcher,
	}
}

// ServeHTTP godoc
// @Summary Отправка сводки по портфелю
// @Description Ставит отправку письма со сводкой в фоновую очередь
// @Tags Email
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Сообщение о постановке в очередь"
// @Failure 400 {object} response.ErrorResponse "Портфель пуст"
// @Failure 401 {object} response.ErrorResponse "Пользователь не аутентифицирован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /email/send-summary [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.email.sendsummary"

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

	user, err := h.users.GetUser(r.Context(), userUID)
	if err != nil {
		log.Error("failed to get user", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to get user"))
		return
	}

	holdings, err := h.portfolios.ListHoldings(r.Context(), userUID)
	if err != nil {
		log.Error("failed to list holdings", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list holdings"))
		return
	}
	if len(holdings) == 0 {
		log.Error("portfolio is empty", slog.String("user_uid", userUID))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("portfolio is empty"))
		return
	}

	job := models.SummaryJob{
		UserUID:  user.UID,
		Email:    user.Email,
		Holdings: holdings,
	}
	if err := h.dispatcher.Enqueue(job); err != nil {
		log.Error("failed to enqueue summary", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to schedule summary"))
		return
	}

	log.Info("summary enqueued", slog.String("email", user.Email))
	render.JSON(w, r, map[string]any{
		"message": "summary email scheduled",
	})
}
