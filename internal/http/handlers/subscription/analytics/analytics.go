// Package analytics реализует HTTP-обработчик аналитики расходов на подписки.
//
// Аналитика строится только по активным подпискам: суммы нормализуются
// к месячному и годовому эквивалентам и группируются по категориям.
package analytics

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

// Handler управляет HTTP-запросами на получение аналитики расходов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики расчёта аналитики.
type Service interface {
	Analytics(ctx context.Context, userUID string) (*models.Analytics, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Аналитика расходов на подписки
// @Description Возвращает месячный и годовой эквиваленты трат по активным подпискам и разбивку по категориям.
// @Tags Subscriptions
// @Produce  json
// @Success 200 {object} map[string]any "Аналитика расходов"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /subscriptions/analytics [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.analytics"

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

	analytics, err := h.service.Analytics(r.Context(), userUID)
	if err != nil {
		log.Error("failed to calculate analytics", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not calculate analytics"))
		return
	}

	log.Info("success to calculate analytics",
		slog.Int("active_count", analytics.ActiveCount))
	render.JSON(w, r, response.OKWithData(analytics))
}
