// Package services содержит бизнес-логику трекера подписок:
// CRUD-операции, переключение активности и аналитику расходов
// с кешированием агрегата.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/lifetrack-dashboard/internal/lib/billing"
	"github.com/magabrotheeeer/lifetrack-dashboard/internal/lib/sl"
	"github.com/magabrotheeeer/lifetrack-dashboard/internal/models"
)

// SubscriptionRepository определяет методы для работы с подписками в хранилище.
type SubscriptionRepository interface {
	// CreateSubscription добавляет новую подписку и возвращает её ID.
	CreateSubscription(ctx context.Context, entry models.Subscription) (int, error)
	// UpdateSubscription частично обновляет подписку по ID.
	UpdateSubscription(ctx context.Context, upd models.DummySubscriptionUpdate, id int, userUID string) (int, error)
	// RemoveSubscription удаляет подписку по ID.
	RemoveSubscription(ctx context.Context, id int, userUID string) (int, error)
	// ToggleSubscriptionActive переключает признак активности подписки.
	ToggleSubscriptionActive(ctx context.Context, id int, userUID string) (int, error)
	// ListSubscriptions возвращает все подписки пользователя.
	ListSubscriptions(ctx context.Context, userUID string) ([]*models.Subscription, error)
	// ListSubscriptionsByActive возвращает подписки с заданным признаком активности.
	ListSubscriptionsByActive(ctx context.Context, userUID string, active bool) ([]*models.Subscription, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(keys ...string) error
}

// SubscriptionService реализует бизнес-логику трекера подписок.
type SubscriptionService struct {
	repo  SubscriptionRepository
	cache Cache
	log   *slog.Logger
}

// NewSubscriptionService создает новый экземпляр SubscriptionService.
func NewSubscriptionService(repo SubscriptionRepository, cache Cache, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Create добавляет новую подписку пользователя и возвращает её ID.
// Если признак активности в запросе не указан, подписка создаётся активной.
func (s *SubscriptionService) Create(ctx context.Context, userUID string, req models.DummySubscription) (int, error) {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	entry := models.Subscription{
		UserUID:         userUID,
		ServiceName:     req.ServiceName,
		AmountCents:     req.AmountCents,
		BillingCycle:    req.BillingCycle,
		Category:        req.Category,
		NextBillingDate: req.NextBillingDate,
		IsActive:        isActive,
		URL:             req.URL,
		Notes:           req.Notes,
	}

	id, err := s.repo.CreateSubscription(ctx, entry)
	if err != nil {
		return 0, err
	}
	s.log.Info("created subscription", slog.Int("id", id))

	s.invalidateAnalytics(userUID)
	return id, nil
}

// Update частично обновляет подписку: поля, отсутствующие в запросе,
// сохраняют прежние значения. Возвращает количество изменённых строк.
func (s *SubscriptionService) Update(ctx context.Context, req models.DummySubscriptionUpdate, id int, userUID string) (int, error) {
	count, err := s.repo.UpdateSubscription(ctx, req, id, userUID)
	if err != nil {
		return 0, err
	}
	s.log.Info("updated subscription", slog.Int("id", id))

	s.invalidateAnalytics(userUID)
	return count, nil
}

// Remove удаляет подписку по ID и возвращает количество удалённых строк.
func (s *SubscriptionService) Remove(ctx context.Context, id int, userUID string) (int, error) {
	count, err := s.repo.RemoveSubscription(ctx, id, userUID)
	if err != nil {
		return 0, err
	}

	s.invalidateAnalytics(userUID)
	return count, nil
}

// ToggleActive переключает признак активности подписки.
func (s *SubscriptionService) ToggleActive(ctx context.Context, id int, userUID string) (int, error) {
	count, err := s.repo.ToggleSubscriptionActive(ctx, id, userUID)
	if err != nil {
		return 0, err
	}
	s.log.Info("toggled subscription active flag", slog.Int("id", id))

	s.invalidateAnalytics(userUID)
	return count, nil
}

// List возвращает подписки пользователя; при active != nil —
// только с этим признаком активности.
func (s *SubscriptionService) List(ctx context.Context, userUID string, active *bool) ([]*models.Subscription, error) {
	if active == nil {
		return s.repo.ListSubscriptions(ctx, userUID)
	}
	return s.repo.ListSubscriptionsByActive(ctx, userUID, *active)
}

// Analytics возвращает агрегат по активным подпискам пользователя:
// месячный и годовой эквиваленты и разбивку по категориям.
func (s *SubscriptionService) Analytics(ctx context.Context, userUID string) (*models.Analytics, error) {
	cacheKey := analyticsKey(userUID)
	var cached models.Analytics
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read analytics from cache", sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	subs, err := s.repo.ListSubscriptionsByActive(ctx, userUID, true)
	if err != nil {
		return nil, err
	}
	analytics := billing.Analytics(subs)

	if err := s.cache.Set(cacheKey, analytics, time.Hour); err != nil {
		s.log.Warn("failed to cache analytics", slog.String("key", cacheKey), sl.Err(err))
	}
	return &analytics, nil
}

func (s *SubscriptionService) invalidateAnalytics(userUID string) {
	if err := s.cache.Invalidate(analyticsKey(userUID)); err != nil {
		s.log.Warn("failed to invalidate analytics cache", sl.Err(err))
	}
}

func analyticsKey(userUID string) string {
	return fmt.Sprintf("analytics:%s", userUID)
}
