// Package preferences реализует HTTP-обработчик настройки email-рассылки.
package preferences

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

// Handler обрабатывает HTTP-запросы настройки рассылки.
type Handler struct {
	log   *slog.Logger
	prefs storage.PreferenceRepository
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, prefs storage.PreferenceRepository) *Handler {
	return &Handler{
		log:   log,
		prefs: prefs,
	}
}

// ServeHTTP godoc
// @Summary Настройка периодичности рассылки
// @Description Устанавливает периодичность сводок: daily, weekly либо none
// @Tags Email
// @Produce  json
// @Security BearerAuth
// @Param frequency query string true "Периодичность рассылки"
// @Success 200 {object} map[string]any "Сообщение об успехе"
// @Failure 400 {object} response.ErrorResponse "Недопустимая периодичность"
// @Failure 401 {object} response.ErrorResponse "Пользователь не аутентифицирован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /email/preferences [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.email.preferences"

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

	frequency := models.EmailFrequency(r.URL.Query().Get("frequency"))
	if !frequency.Valid() {
		log.Error("invalid frequency", slog.String("frequency", string(frequency)))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("frequency must be one of: daily, weekly, none"))
		return
	}

	pref := models.EmailPreference{
		UserUID:   userUID,
		Frequency: frequency,
	}
	if err := h.prefs.UpsertPreference(r.Context(), pref); err != nil {
		log.Error("failed to save preference", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to save preference"))
		return
	}

	log.Info("email preference saved",
		slog.String("user_uid", userUID), slog.String("frequency", string(frequency)))
	render.JSON(w, r, map[string]any{
		"message": "email preference updated successfully",
	})
}
