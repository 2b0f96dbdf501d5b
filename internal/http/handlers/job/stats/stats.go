// Package stats реализует HTTP-обработчик статистики откликов по статусам воронки.
package stats

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

// Handler управляет HTTP-запросами на подсчёт статистики откликов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики подсчёта статистики.
type Service interface {
	Stats(ctx context.Context, userUID string) (*models.JobStats, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Статистика откликов
// @Description Возвращает количество откликов по каждому статусу воронки и общее число.
// @Tags Jobs
// @Produce  json
// @Success 200 {object} map[string]any "Статистика по статусам"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /jobs/stats [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.job.stats"

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

	stats, err := h.service.Stats(r.Context(), userUID)
	if err != nil {
		log.Error("failed to calculate job stats", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not calculate job stats"))
		return
	}

	log.Info("success to calculate job stats", slog.Int("total", stats.Total))
	render.JSON(w, r, response.OKWithData(stats))
}
