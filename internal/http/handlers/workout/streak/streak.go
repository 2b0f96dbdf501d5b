// Package streak реализует HTTP-обработчик подсчёта текущей серии тренировок.
//
// Серия считается от сегодняшнего дня назад: количество подряд идущих дней
// с завершённой тренировкой, заканчивающихся сегодня.
package streak

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/lifetrack-dashboard/internal/http/middlewarectx"
	"github.com/magabrotheeeer/lifetrack-dashboard/internal/http/response"
	"github.com/magabrotheeeer/lifetrack-dashboard/internal/lib/sl"
)

// Handler управляет HTTP-запросами на подсчёт серии тренировок.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики подсчёта серии.
type Service interface {
	Streak(ctx context.Context, userUID string) (int, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Текущая серия тренировок
// @Description Возвращает количество подряд идущих дней с завершённой тренировкой, заканчивающихся сегодня.
// @Tags Workouts
// @Produce  json
// @Success 200 {object} map[string]any "Текущая серия"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /workouts/streak [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.workout.streak"

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

	streak, err := h.service.Streak(r.Context(), userUID)
	if err != nil {
		log.Error("failed to calculate streak", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not calculate streak"))
		return
	}

	log.Info("success to calculate streak", slog.Int("streak", streak))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"streak": streak,
	}))
}
