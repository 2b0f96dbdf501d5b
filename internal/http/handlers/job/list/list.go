// Package list реализует HTTP-обработчик получения списка откликов на вакансии.
//
// Необязательный query-параметр status фильтрует записи по статусу воронки.
package list

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

// Handler управляет HTTP-запросами на получение откликов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики выборки откликов.
type Service interface {
	List(ctx context.Context, userUID, status string) ([]*models.JobApplication, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список откликов на вакансии
// @Description Возвращает отклики пользователя, отсортированные от новых к старым. Параметр status фильтрует по статусу.
// @Tags Jobs
// @Produce  json
// @Param status query string false "Фильтр по статусу" Enums(not_applied, applied, interviewing, offer, rejected)
// @Success 200 {object} map[string]any "Список откликов"
// @Failure 400 {object} response.ErrorResponse "Некорректный статус"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /jobs [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.job.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	status := r.URL.Query().Get("status")
	if status != "" && !models.IsValidJobStatus(status) {
		log.Error("invalid status query param", slog.String("status", status))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid status"))
		return
	}

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	jobs, err := h.service.List(r.Context(), userUID, status)
	if err != nil {
		log.Error("failed to list job applications", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list job applications"))
		return
	}

	log.Info("success to list job applications", slog.Int("count", len(jobs)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"jobs":  jobs,
		"count": len(jobs),
	}))
}
