// Package services содержит бизнес-логику трекера откликов на вакансии:
// CRUD-операции, фильтрацию по статусу, ближайшие дедлайны
// и подсчёт статистики по статусам.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/lifetrack-dashboard/internal/lib/calendar"
	"github.com/magabrotheeeer/lifetrack-dashboard/internal/lib/sl"
	"github.com/magabrotheeeer/lifetrack-dashboard/internal/models"
)

// JobRepository определяет методы для работы с откликами в хранилище.
type JobRepository interface {
	// CreateJobApplication добавляет новый отклик и возвращает его ID.
	CreateJobApplication(ctx context.Context, entry models.JobApplication) (int, error)
	// UpdateJobApplication частично обновляет отклик по ID.
	UpdateJobApplication(ctx context.Context, upd models.DummyJobApplicationUpdate, id int, userUID string) (int, error)
	// RemoveJobApplication удаляет отклик по ID.
	RemoveJobApplication(ctx context.Context, id int, userUID string) (int, error)
	// ListJobApplications возвращает все отклики пользователя.
	ListJobApplications(ctx context.Context, userUID string) ([]*models.JobApplication, error)
	// ListJobApplicationsByStatus возвращает отклики пользователя с заданным статусом.
	ListJobApplicationsByStatus(ctx context.Context, userUID, status string) ([]*models.JobApplication, error)
	// ListUpcomingJobApplications возвращает неподанные отклики с дедлайном не раньше today.
	ListUpcomingJobApplications(ctx context.Context, userUID, today string) ([]*models.JobApplication, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(keys ...string) error
}

// JobService реализует бизнес-логику трекера откликов.
type JobService struct {
	repo  JobRepository
	cache Cache
	log   *slog.Logger
	now   func() time.Time
}

// NewJobService создает новый экземпляр JobService.
func NewJobService(repo JobRepository, cache Cache, log *slog.Logger) *JobService {
	return &JobService{
		repo:  repo,
		cache: cache,
		log:   log,
		now:   time.Now,
	}
}

// Create добавляет новый отклик пользователя и возвращает его ID.
func (s *JobService) Create(ctx context.Context, userUID string, req models.DummyJobApplication) (int, error) {
	entry := models.JobApplication{
		UserUID:       userUID,
		CompanyName:   req.CompanyName,
		Position:      req.Position,
		Status:        req.Status,
		DueDate:       req.DueDate,
		AppliedDate:   req.AppliedDate,
		JobPostingURL: req.JobPostingURL,
		Notes:         req.Notes,
		Salary:        req.Salary,
		Location:      req.Location,
	}

	id, err := s.repo.CreateJobApplication(ctx, entry)
	if err != nil {
		return 0, err
	}
	s.log.Info("created job application", slog.Int("id", id))

	s.invalidateStats(userUID)
	return id, nil
}

// Update частично обновляет отклик: поля, отсутствующие в запросе,
// сохраняют прежние значения. Возвращает количество изменённых строк.
func (s *JobService) Update(ctx context.Context, req models.DummyJobApplicationUpdate, id int, userUID string) (int, error) {
	count, err := s.repo.UpdateJobApplication(ctx, req, id, userUID)
	if err != nil {
		return 0, err
	}
	s.log.Info("updated job application", slog.Int("id", id))

	s.invalidateStats(userUID)
	return count, nil
}

// Remove удаляет отклик по ID и возвращает количество удалённых строк.
func (s *JobService) Remove(ctx context.Context, id int, userUID string) (int, error) {
	count, err := s.repo.RemoveJobApplication(ctx, id, userUID)
	if err != nil {
		return 0, err
	}

	s.invalidateStats(userUID)
	return count, nil
}

// List возвращает отклики пользователя, при непустом status —
// только с этим статусом.
func (s *JobService) List(ctx context.Context, userUID, status string) ([]*models.JobApplication, error) {
	if status == "" {
		return s.repo.ListJobApplications(ctx, userUID)
	}
	return s.repo.ListJobApplicationsByStatus(ctx, userUID, status)
}

// Upcoming возвращает неподанные отклики с дедлайном не раньше
// сегодняшнего дня, отсортированные по дедлайну.
func (s *JobService) Upcoming(ctx context.Context, userUID string) ([]*models.JobApplication, error) {
	today := calendar.FormatDay(s.now().UTC())
	return s.repo.ListUpcomingJobApplications(ctx, userUID, today)
}

// Stats возвращает количество откликов пользователя по каждому статусу
// и общее число. Пустая коллекция даёт нулевые счётчики.
func (s *JobService) Stats(ctx context.Context, userUID string) (*models.JobStats, error) {
	cacheKey := statsKey(userUID)
	var cached models.JobStats
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read job stats from cache", sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	jobs, err := s.repo.ListJobApplications(ctx, userUID)
	if err != nil {
		return nil, err
	}
	stats := countStatuses(jobs)

	if err := s.cache.Set(cacheKey, stats, time.Hour); err != nil {
		s.log.Warn("failed to cache job stats", slog.String("key", cacheKey), sl.Err(err))
	}
	return stats, nil
}

// countStatuses группирует отклики по статусу.
func countStatuses(jobs []*models.JobApplication) *models.JobStats {
	stats := &models.JobStats{Total: len(jobs)}
	for _, j := range jobs {
		switch j.Status {
		case models.StatusNotApplied:
			stats.NotApplied++
		case models.StatusApplied:
			stats.Applied++
		case models.StatusInterviewing:
			stats.Interviewing++
		case models.StatusOffer:
			stats.Offer++
		case models.StatusRejected:
			stats.Rejected++
		}
	}
	return stats
}

func (s *JobService) invalidateStats(userUID string) {
	if err := s.cache.Invalidate(statsKey(userUID)); err != nil {
		s.log.Warn("failed to invalidate job stats cache", sl.Err(err))
	}
}

func statsKey(userUID string) string {
	return fmt.Sprintf("jobstats:%s", userUID)
}
