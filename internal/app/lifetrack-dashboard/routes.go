// Package lifetrackdashboard предоставляет маршруты для основного приложения.
package lifetrackdashboard

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/lifetrack-dashboard/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/lifetrack-dashboard/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/lifetrack-dashboard/internal/http/handlers/health"
	jobcreate "github.com/magabrotheeeer/lifetrack-dashboard/internal/http/handlers/job/create"
	joblist "github.com/magabrotheeeer/lifetrack-dashboard/internal/http/handlers/job/list"
	jobremove "github.com/magabrotheeeer/lifetrack-dashboard/internal/http/handlers/job/remove"
	jobstats "github.com/magabrotheeeer/lifetrack-dashboard/internal/http/handlers/job/stats"
	jobupdate "github.com/magabrotheeeer/lifetrack-dashboard/internal/http/handlers/job/update"
	"github.com/magabrotheeeer/lifetrack-dashboard/internal/http/handlers/job/upcoming"
	"github.com/magabrotheeeer/lifetrack-dashboard/internal/http/handlers/subscription/analytics"
	subcreate "github.com/magabrotheeeer/lifetrack-dashboard/internal/http/handlers/subscription/create"
	sublist "github.com/magabrotheeeer/lifetrack-dashboard/internal/http/handlers/subscription/list"
	subremove "github.com/magabrotheeeer/lifetrack-dashboard/internal/http/handlers/subscription/remove"
	"github.com/magabrotheeeer/lifetrack-dashboard/internal/http/handlers/subscription/toggleactive"
	subupdate "github.com/magabrotheeeer/lifetrack-dashboard/internal/http/handlers/subscription/update"
	workoutlist "github.com/magabrotheeeer/lifetrack-dashboard/internal/http/handlers/workout/list"
	workoutstats "github.com/magabrotheeeer/lifetrack-dashboard/internal/http/handlers/workout/stats"
	"github.com/magabrotheeeer/lifetrack-dashboard/internal/http/handlers/workout/streak"
	"github.com/magabrotheeeer/lifetrack-dashboard/internal/http/handlers/workout/toggle"
	"github.com/magabrotheeeer/lifetrack-dashboard/internal/http/middlewarectx"
	"github.com/magabrotheeeer/lifetrack-dashboard/internal/lib/jwt"
	authservice "github.com/magabrotheeeer/lifetrack-dashboard/internal/services/auth"
	jobservice "github.com/magabrotheeeer/lifetrack-dashboard/internal/services/job"
	subservice "github.com/magabrotheeeer/lifetrack-dashboard/internal/services/subscription"
	workoutservice "github.com/magabrotheeeer/lifetrack-dashboard/internal/services/workout"
	"github.com/magabrotheeeer/lifetrack-dashboard/internal/storage/repository"
)

// RouteServices объединяет зависимости, необходимые дереву маршрутов.
type RouteServices struct {
	Auth         *authservice.AuthService
	Workout      *workoutservice.WorkoutService
	Job          *jobservice.JobService
	Subscription *subservice.SubscriptionService
	Storage      *repository.Storage
	JWTMaker     jwt.Maker
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, deps RouteServices) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, deps.Auth).ServeHTTP)
		r.Post("/login", login.New(logger, deps.Auth).ServeHTTP)
		r.Get("/health", health.New(logger, deps.Storage).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(deps.JWTMaker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Get("/workouts", workoutlist.New(logger, deps.Workout).ServeHTTP)
			r.Post("/workouts/toggle", toggle.New(logger, deps.Workout).ServeHTTP)
			r.Get("/workouts/streak", streak.New(logger, deps.Workout).ServeHTTP)
			r.Get("/workouts/stats", workoutstats.New(logger, deps.Workout).ServeHTTP)

			r.Post("/jobs", jobcreate.New(logger, deps.Job).ServeHTTP)
			r.Get("/jobs", joblist.New(logger, deps.Job).ServeHTTP)
			r.Get("/jobs/stats", jobstats.New(logger, deps.Job).ServeHTTP)
			r.Get("/jobs/upcoming", upcoming.New(logger, deps.Job).ServeHTTP)
			r.Put("/jobs/{id}", jobupdate.New(logger, deps.Job).ServeHTTP)
			r.Delete("/jobs/{id}", jobremove.New(logger, deps.Job).ServeHTTP)

			r.Post("/subscriptions", subcreate.New(logger, deps.Subscription).ServeHTTP)
			r.Get("/subscriptions", sublist.New(logger, deps.Subscription).ServeHTTP)
			r.Get("/subscriptions/analytics", analytics.New(logger, deps.Subscription).ServeHTTP)
			r.Put("/subscriptions/{id}", subupdate.New(logger, deps.Subscription).ServeHTTP)
			r.Delete("/subscriptions/{id}", subremove.New(logger, deps.Subscription).ServeHTTP)
			r.Post("/subscriptions/{id}/toggle", toggleactive.New(logger, deps.Subscription).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
