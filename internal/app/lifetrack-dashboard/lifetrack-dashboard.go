// Package lifetrackdashboard собирает приложение: хранилище, миграции,
// кеш, сервисы и HTTP-сервер.
package lifetrackdashboard

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/lifetrack-dashboard/internal/cache"
	"github.com/magabrotheeeer/lifetrack-dashboard/internal/config"
	"github.com/magabrotheeeer/lifetrack-dashboard/internal/lib/jwt"
	"github.com/magabrotheeeer/lifetrack-dashboard/internal/migrations"
	authservice "github.com/magabrotheeeer/lifetrack-dashboard/internal/services/auth"
	jobservice "github.com/magabrotheeeer/lifetrack-dashboard/internal/services/job"
	subservice "github.com/magabrotheeeer/lifetrack-dashboard/internal/services/subscription"
	workoutservice "github.com/magabrotheeeer/lifetrack-dashboard/internal/services/workout"
	"github.com/magabrotheeeer/lifetrack-dashboard/internal/storage/repository"
)

// App инкапсулирует HTTP-сервер и его зависимости.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
}

// New инициализирует зависимости приложения: подключается к PostgreSQL,
// применяет миграции, поднимает клиент Redis и собирает дерево маршрутов.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	authService := authservice.NewAuthService(db, jwtMaker)
	workoutService := workoutservice.NewWorkoutService(db, cacheRedis, logger)
	jobService := jobservice.NewJobService(db, cacheRedis, logger)
	subscriptionService := subservice.NewSubscriptionService(db, cacheRedis, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, RouteServices{
		Auth:         authService,
		Workout:      workoutService,
		Job:          jobService,
		Subscription: subscriptionService,
		Storage:      db,
		JWTMaker:     jwtMaker,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

// Run запускает HTTP-сервер и блокируется до отмены контекста
// или ошибки сервера. При отмене выполняет graceful shutdown.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if cerr := a.db.DB.Close(); cerr != nil {
			a.logger.Error("failed to close database", slog.Any("err", cerr))
		}
		return err
	}
}
