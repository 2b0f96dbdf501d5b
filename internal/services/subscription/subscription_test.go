package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/lifetrack-dashboard/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateSubscription(ctx context.Context, entry models.Subscription) (int, error) {
	args := m.Called(ctx, entry)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) UpdateSubscription(ctx context.Context, upd models.DummySubscriptionUpdate, id int, userUID string) (int, error) {
	args := m.Called(ctx, upd, id, userUID)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) RemoveSubscription(ctx context.Context, id int, userUID string) (int, error) {
	args := m.Called(ctx, id, userUID)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) ToggleSubscriptionActive(ctx context.Context, id int, userUID string) (int, error) {
	args := m.Called(ctx, id, userUID)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) ListSubscriptions(ctx context.Context, userUID string) ([]*models.Subscription, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Subscription), args.Error(1)
}
func (m *RepoMock) ListSubscriptionsByActive(ctx context.Context, userUID string, active bool) ([]*models.Subscription, error) {
	args := m.Called(ctx, userUID, active)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Subscription), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}
func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}
func (m *CacheMock) Invalidate(keys ...string) error {
	return m.Called(keys).Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestSubscriptionService_Create(t *testing.T) {
	req := models.DummySubscription{
		ServiceName:     "Netflix",
		AmountCents:     1200,
		BillingCycle:    models.CycleMonthly,
		Category:        "Streaming",
		NextBillingDate: "2025-07-01",
	}

	t.Run("missing is_active defaults to true", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		repo.On("CreateSubscription", mock.Anything, mock.MatchedBy(func(e models.Subscription) bool {
			return e.UserUID == "uid-1" && e.IsActive
		})).Return(42, nil).Once()
		cache.On("Invalidate", []string{"analytics:uid-1"}).Return(nil).Once()

		svc := NewSubscriptionService(repo, cache, newNoopLogger())
		id, err := svc.Create(context.Background(), "uid-1", req)
		assert.NoError(t, err)
		assert.Equal(t, 42, id)
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("explicit is_active false is kept", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		inactive := false
		reqInactive := req
		reqInactive.IsActive = &inactive
		repo.On("CreateSubscription", mock.Anything, mock.MatchedBy(func(e models.Subscription) bool {
			return !e.IsActive
		})).Return(43, nil).Once()
		cache.On("Invalidate", mock.Anything).Return(nil).Once()

		svc := NewSubscriptionService(repo, cache, newNoopLogger())
		_, err := svc.Create(context.Background(), "uid-1", reqInactive)
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("repo error", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		repo.On("CreateSubscription", mock.Anything, mock.Anything).
			Return(0, errors.New("db error")).Once()

		svc := NewSubscriptionService(repo, cache, newNoopLogger())
		_, err := svc.Create(context.Background(), "uid-1", req)
		assert.Error(t, err)
		cache.AssertNotCalled(t, "Invalidate", mock.Anything)
	})
}

func TestSubscriptionService_ToggleActive(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	repo.On("ToggleSubscriptionActive", mock.Anything, 5, "uid-1").Return(1, nil).Once()
	cache.On("Invalidate", []string{"analytics:uid-1"}).Return(nil).Once()

	svc := NewSubscriptionService(repo, cache, newNoopLogger())
	count, err := svc.ToggleActive(context.Background(), 5, "uid-1")
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
	cache.AssertExpectations(t)
}

func TestSubscriptionService_List(t *testing.T) {
	t.Run("nil filter lists all", func(t *testing.T) {
		repo := new(RepoMock)
		subs := []*models.Subscription{{ID: 1}, {ID: 2}}
		repo.On("ListSubscriptions", mock.Anything, "uid-1").Return(subs, nil).Once()

		svc := NewSubscriptionService(repo, new(CacheMock), newNoopLogger())
		got, err := svc.List(context.Background(), "uid-1", nil)
		assert.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("active filter narrows selection", func(t *testing.T) {
		repo := new(RepoMock)
		subs := []*models.Subscription{{ID: 1, IsActive: true}}
		repo.On("ListSubscriptionsByActive", mock.Anything, "uid-1", true).Return(subs, nil).Once()

		active := true
		svc := NewSubscriptionService(repo, new(CacheMock), newNoopLogger())
		got, err := svc.List(context.Background(), "uid-1", &active)
		assert.NoError(t, err)
		assert.Len(t, got, 1)
	})
}

func TestSubscriptionService_Analytics(t *testing.T) {
	t.Run("normalizes cycles and groups categories", func(t *testing.T) {
		subs := []*models.Subscription{
			{ServiceName: "Netflix", AmountCents: 1200, BillingCycle: models.CycleMonthly, Category: "Streaming", IsActive: true},
			{ServiceName: "Backup", AmountCents: 12000, BillingCycle: models.CycleYearly, Category: "Streaming", IsActive: true},
		}
		repo := new(RepoMock)
		cache := new(CacheMock)
		cache.On("Get", "analytics:uid-1", mock.Anything).Return(false, nil).Once()
		repo.On("ListSubscriptionsByActive", mock.Anything, "uid-1", true).Return(subs, nil).Once()
		cache.On("Set", "analytics:uid-1", mock.Anything, time.Hour).Return(nil).Once()

		svc := NewSubscriptionService(repo, cache, newNoopLogger())
		got, err := svc.Analytics(context.Background(), "uid-1")
		assert.NoError(t, err)
		assert.Equal(t, 2200.0, got.MonthlyTotal)
		assert.Equal(t, 26400.0, got.YearlyTotal)
		assert.Equal(t, 2, got.ActiveCount)
		assert.Equal(t, []models.CategorySpending{{Category: "Streaming", Amount: 2200}}, got.ByCategory)
	})

	t.Run("no active subscriptions gives empty breakdown", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		cache.On("Get", mock.Anything, mock.Anything).Return(false, nil).Once()
		repo.On("ListSubscriptionsByActive", mock.Anything, "uid-1", true).
			Return([]*models.Subscription{}, nil).Once()
		cache.On("Set", mock.Anything, mock.Anything, time.Hour).Return(nil).Once()

		svc := NewSubscriptionService(repo, cache, newNoopLogger())
		got, err := svc.Analytics(context.Background(), "uid-1")
		assert.NoError(t, err)
		assert.Equal(t, 0.0, got.MonthlyTotal)
		assert.Equal(t, 0, got.ActiveCount)
		assert.NotNil(t, got.ByCategory)
		assert.Empty(t, got.ByCategory)
	})

	t.Run("cache hit skips repository", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		cache.On("Get", "analytics:uid-1", mock.Anything).
			Run(func(args mock.Arguments) {
				*(args.Get(1).(*models.Analytics)) = models.Analytics{MonthlyTotal: 500, ActiveCount: 1}
			}).Return(true, nil).Once()

		svc := NewSubscriptionService(repo, cache, newNoopLogger())
		got, err := svc.Analytics(context.Background(), "uid-1")
		assert.NoError(t, err)
		assert.Equal(t, 500.0, got.MonthlyTotal)
		repo.AssertNotCalled(t, "ListSubscriptionsByActive", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestSubscriptionService_Update(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	amount := 1500
	upd := models.DummySubscriptionUpdate{AmountCents: &amount}
	repo.On("UpdateSubscription", mock.Anything, upd, 9, "uid-1").Return(1, nil).Once()
	cache.On("Invalidate", []string{"analytics:uid-1"}).Return(nil).Once()

	svc := NewSubscriptionService(repo, cache, newNoopLogger())
	count, err := svc.Update(context.Background(), upd, 9, "uid-1")
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSubscriptionService_Remove(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	repo.On("RemoveSubscription", mock.Anything, 9, "uid-1").Return(1, nil).Once()
	cache.On("Invalidate", []string{"analytics:uid-1"}).Return(nil).Once()

	svc := NewSubscriptionService(repo, cache, newNoopLogger())
	count, err := svc.Remove(context.Background(), 9, "uid-1")
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
}
