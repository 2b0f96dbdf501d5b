// Package upcoming реализует HTTP-обработчик ближайших дедлайнов подачи.
//
// Возвращаются неподанные отклики с дедлайном не раньше сегодняшнего дня,
// отсортированные по возрастанию дедлайна.
package upcoming

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/lifetrack-dashboard/internal/http/middlewarectx"
	"github.com/magabrotheeeer/lifetrack-dashboard/internal/http/response"
	"github.com/magabrotheeeer/lifetrack-dashboard/internal/lib/sl"
	"github.com/magabrotheeeer/lifetrack-dashboard/internal/models"
)

// Handler управляет HTTP-запросами на получение ближайших дедлайнов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики выборки ближайших дедлайнов.
type Service interface {
	Upcoming(ctx context.Context, userUID string) ([]*models.JobApplication, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Ближайшие дедлайны подачи
// @Description Возвращает неподанные отклики с дедлайном не раньше сегодняшнего дня, от ближнего к дальнему.
// @Tags Jobs
// @Produce  json
// @Success 200 {object} map[string]any "Список откликов с дедлайнами"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /jobs/upcoming [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.job.upcoming"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	jobs, err := h.service.Upcoming(r.Context(), userUID)
	if err != nil {
		log.Error("failed to list upcoming deadlines", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list upcoming deadlines"))
		return
	}

	log.Info("success to list upcoming deadlines", slog.Int("count", len(jobs)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"jobs":  jobs,
		"count": len(jobs),
	}))
}
