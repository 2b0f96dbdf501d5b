// Package services содержит бизнес-логику трекера тренировок:
// переключение отметок в календаре, подсчёт серии последовательных дней
// и месячной статистики с кешированием агрегатов.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/magabrotheeeer/lifetrack-dashboard/internal/lib/calendar"
	"github.com/magabrotheeeer/lifetrack-dashboard/internal/lib/sl"
	"github.com/magabrotheeeer/lifetrack-dashboard/internal/models"
)

// WorkoutRepository определяет методы для работы с тренировками в хранилище.
type WorkoutRepository interface {
	// UpsertWorkout добавляет или обновляет отметку для (пользователь, дата) и возвращает её ID.
	UpsertWorkout(ctx context.Context, entry models.Workout) (int, error)
	// ListWorkouts возвращает тренировки пользователя в полуинтервале [startDate, endDate).
	ListWorkouts(ctx context.Context, userUID, startDate, endDate string) ([]*models.Workout, error)
	// ListCompletedDates возвращает даты всех завершённых тренировок пользователя.
	ListCompletedDates(ctx context.Context, userUID string) ([]string, error)
	// CountCompletedInRange подсчитывает завершённые тренировки в полуинтервале.
	CountCompletedInRange(ctx context.Context, userUID, startDate, endDate string) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значения из кеша по ключам.
	Invalidate(keys ...string) error
}

// WorkoutService реализует бизнес-логику трекера тренировок.
//
// Текущая дата берётся из поля now, что позволяет подменять её в тестах:
// расчёты серии и статистики остаются чистыми функциями от входных данных.
type WorkoutService struct {
	repo  WorkoutRepository
	cache Cache
	log   *slog.Logger
	now   func() time.Time
}

// NewWorkoutService создает новый экземпляр WorkoutService.
func NewWorkoutService(repo WorkoutRepository, cache Cache, log *slog.Logger) *WorkoutService {
	return &WorkoutService{
		repo:  repo,
		cache: cache,
		log:   log,
		now:   time.Now,
	}
}

// Toggle добавляет или обновляет отметку о тренировке для (пользователь, дата)
// и возвращает ID записи. Кеш серии и месячной статистики инвалидируется.
func (s *WorkoutService) Toggle(ctx context.Context, userUID string, req models.DummyWorkout) (int, error) {
	date, err := calendar.ParseDay(req.Date)
	if err != nil {
		return 0, fmt.Errorf("invalid date: %w", err)
	}

	entry := models.Workout{
		UserUID:     userUID,
		Date:        req.Date,
		Completed:   req.Completed,
		WorkoutType: req.WorkoutType,
		Notes:       req.Notes,
	}

	id, err := s.repo.UpsertWorkout(ctx, entry)
	if err != nil {
		return 0, err
	}
	s.log.Info("toggled workout", slog.Int("id", id), slog.String("date", req.Date))

	keys := []string{
		streakKey(userUID, s.today()),
		statsKey(userUID, date.Year(), int(date.Month())),
	}
	if err := s.cache.Invalidate(keys...); err != nil {
		s.log.Warn("failed to invalidate workout cache", sl.Err(err))
	}

	return id, nil
}

// ListMonth возвращает тренировки пользователя за указанный месяц.
func (s *WorkoutService) ListMonth(ctx context.Context, userUID string, month, year int) ([]*models.Workout, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("month must be in range [1, 12], got %d", month)
	}
	start, end := calendar.MonthBounds(year, month)
	return s.repo.ListWorkouts(ctx, userUID, start, end)
}

// Streak возвращает количество последовательных дней с завершённой тренировкой,
// заканчивающихся сегодняшним днём (календарная дата UTC).
func (s *WorkoutService) Streak(ctx context.Context, userUID string) (int, error) {
	today := s.today()
	cacheKey := streakKey(userUID, today)

	var cached int
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read streak from cache", sl.Err(err))
	}
	if found {
		return cached, nil
	}

	dates, err := s.repo.ListCompletedDates(ctx, userUID)
	if err != nil {
		return 0, err
	}
	streak := calendar.Streak(dates, today)

	if err := s.cache.Set(cacheKey, streak, time.Hour); err != nil {
		s.log.Warn("failed to cache streak", slog.String("key", cacheKey), sl.Err(err))
	}
	return streak, nil
}

// MonthlyStats возвращает статистику тренировок за месяц: количество
// завершённых, количество дней в месяце и процент.
func (s *WorkoutService) MonthlyStats(ctx context.Context, userUID string, month, year int) (*models.MonthlyStats, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("month must be in range [1, 12], got %d", month)
	}

	cacheKey := statsKey(userUID, year, month)
	var cached models.MonthlyStats
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read stats from cache", sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	start, end := calendar.MonthBounds(year, month)
	completed, err := s.repo.CountCompletedInRange(ctx, userUID, start, end)
	if err != nil {
		return nil, err
	}

	total := calendar.DaysInMonth(year, month)
	stats := &models.MonthlyStats{
		Completed:  completed,
		Total:      total,
		Percentage: int(math.Round(float64(completed) / float64(total) * 100)),
	}

	if err := s.cache.Set(cacheKey, stats, time.Hour); err != nil {
		s.log.Warn("failed to cache stats", slog.String("key", cacheKey), sl.Err(err))
	}
	return stats, nil
}

func (s *WorkoutService) today() time.Time {
	t := s.now().UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Ключ серии включает дату, чтобы закешированное значение
// не переживало смену календарного дня.
func streakKey(userUID string, today time.Time) string {
	return fmt.Sprintf("streak:%s:%s", userUID, calendar.FormatDay(today))
}

func statsKey(userUID string, year, month int) string {
	return fmt.Sprintf("workoutstats:%s:%04d-%02d", userUID, year, month)
}
