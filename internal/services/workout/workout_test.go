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

func (m *RepoMock) UpsertWorkout(ctx context.Context, entry models.Workout) (int, error) {
	args := m.Called(ctx, entry)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) ListWorkouts(ctx context.Context, userUID, startDate, endDate string) ([]*models.Workout, error) {
	args := m.Called(ctx, userUID, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Workout), args.Error(1)
}
func (m *RepoMock) ListCompletedDates(ctx context.Context, userUID string) ([]string, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
func (m *RepoMock) CountCompletedInRange(ctx context.Context, userUID, startDate, endDate string) (int, error) {
	args := m.Called(ctx, userUID, startDate, endDate)
	return args.Int(0), args.Error(1)
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

// фиксированная "сегодняшняя" дата для детерминированных расчётов
var testToday = time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)

func newTestService(repo *RepoMock, cache *CacheMock) *WorkoutService {
	s := NewWorkoutService(repo, cache, newNoopLogger())
	s.now = func() time.Time { return testToday }
	return s
}

func TestWorkoutService_Toggle(t *testing.T) {
	tests := []struct {
		name       string
		req        models.DummyWorkout
		setupMocks func(r *RepoMock, c *CacheMock)
		wantID     int
		wantErr    bool
	}{
		{
			name: "success toggle",
			req:  models.DummyWorkout{Date: "2025-03-15", Completed: true},
			setupMocks: func(r *RepoMock, c *CacheMock) {
				r.On("UpsertWorkout", mock.Anything, mock.MatchedBy(func(e models.Workout) bool {
					return e.UserUID == "uid-1" && e.Date == "2025-03-15" && e.Completed
				})).Return(7, nil).Once()
				c.On("Invalidate", []string{
					"streak:uid-1:2025-03-15",
					"workoutstats:uid-1:2025-03",
				}).Return(nil).Once()
			},
			wantID: 7,
		},
		{
			name:       "invalid date format",
			req:        models.DummyWorkout{Date: "15-03-2025", Completed: true},
			setupMocks: func(_ *RepoMock, _ *CacheMock) {},
			wantErr:    true,
		},
		{
			name: "repo error",
			req:  models.DummyWorkout{Date: "2025-03-15", Completed: true},
			setupMocks: func(r *RepoMock, _ *CacheMock) {
				r.On("UpsertWorkout", mock.Anything, mock.Anything).
					Return(0, errors.New("db error")).Once()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			cache := new(CacheMock)
			tt.setupMocks(repo, cache)
			svc := newTestService(repo, cache)

			id, err := svc.Toggle(context.Background(), "uid-1", tt.req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantID, id)
			}
			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestWorkoutService_Toggle_CacheInvalidationFailureIsNotFatal(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	repo.On("UpsertWorkout", mock.Anything, mock.Anything).Return(1, nil).Once()
	cache.On("Invalidate", mock.Anything).Return(errors.New("redis down")).Once()

	svc := newTestService(repo, cache)
	id, err := svc.Toggle(context.Background(), "uid-1", models.DummyWorkout{Date: "2025-03-15"})
	assert.NoError(t, err)
	assert.Equal(t, 1, id)
}

func TestWorkoutService_Streak(t *testing.T) {
	t.Run("cache hit skips repository", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		cache.On("Get", "streak:uid-1:2025-03-15", mock.Anything).
			Run(func(args mock.Arguments) {
				*(args.Get(1).(*int)) = 4
			}).Return(true, nil).Once()

		svc := newTestService(repo, cache)
		streak, err := svc.Streak(context.Background(), "uid-1")
		assert.NoError(t, err)
		assert.Equal(t, 4, streak)
		repo.AssertNotCalled(t, "ListCompletedDates", mock.Anything, mock.Anything)
	})

	t.Run("cache miss computes and stores", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		cache.On("Get", "streak:uid-1:2025-03-15", mock.Anything).Return(false, nil).Once()
		repo.On("ListCompletedDates", mock.Anything, "uid-1").
			Return([]string{"2025-03-15", "2025-03-14", "2025-03-12"}, nil).Once()
		cache.On("Set", "streak:uid-1:2025-03-15", 2, time.Hour).Return(nil).Once()

		svc := newTestService(repo, cache)
		streak, err := svc.Streak(context.Background(), "uid-1")
		assert.NoError(t, err)
		assert.Equal(t, 2, streak)
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("no workout today gives zero streak", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		cache.On("Get", mock.Anything, mock.Anything).Return(false, nil).Once()
		repo.On("ListCompletedDates", mock.Anything, "uid-1").
			Return([]string{"2025-03-14", "2025-03-13"}, nil).Once()
		cache.On("Set", mock.Anything, 0, time.Hour).Return(nil).Once()

		svc := newTestService(repo, cache)
		streak, err := svc.Streak(context.Background(), "uid-1")
		assert.NoError(t, err)
		assert.Equal(t, 0, streak)
	})

	t.Run("cache read failure falls back to repository", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		cache.On("Get", mock.Anything, mock.Anything).Return(false, errors.New("redis down")).Once()
		repo.On("ListCompletedDates", mock.Anything, "uid-1").
			Return([]string{"2025-03-15"}, nil).Once()
		cache.On("Set", mock.Anything, 1, time.Hour).Return(nil).Once()

		svc := newTestService(repo, cache)
		streak, err := svc.Streak(context.Background(), "uid-1")
		assert.NoError(t, err)
		assert.Equal(t, 1, streak)
	})
}

func TestWorkoutService_MonthlyStats(t *testing.T) {
	tests := []struct {
		name      string
		month     int
		year      int
		completed int
		want      models.MonthlyStats
	}{
		{
			name:      "half of march",
			month:     3,
			year:      2025,
			completed: 15,
			want:      models.MonthlyStats{Completed: 15, Total: 31, Percentage: 48},
		},
		{
			name:      "leap february",
			month:     2,
			year:      2024,
			completed: 29,
			want:      models.MonthlyStats{Completed: 29, Total: 29, Percentage: 100},
		},
		{
			name:      "regular february",
			month:     2,
			year:      2025,
			completed: 7,
			want:      models.MonthlyStats{Completed: 7, Total: 28, Percentage: 25},
		},
		{
			name:      "empty month",
			month:     1,
			year:      2025,
			completed: 0,
			want:      models.MonthlyStats{Completed: 0, Total: 31, Percentage: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			cache := new(CacheMock)
			cache.On("Get", mock.Anything, mock.Anything).Return(false, nil).Once()
			repo.On("CountCompletedInRange", mock.Anything, "uid-1", mock.Anything, mock.Anything).
				Return(tt.completed, nil).Once()
			cache.On("Set", mock.Anything, mock.Anything, time.Hour).Return(nil).Once()

			svc := newTestService(repo, cache)
			stats, err := svc.MonthlyStats(context.Background(), "uid-1", tt.month, tt.year)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, *stats)
		})
	}

	t.Run("invalid month", func(t *testing.T) {
		svc := newTestService(new(RepoMock), new(CacheMock))
		_, err := svc.MonthlyStats(context.Background(), "uid-1", 13, 2025)
		assert.Error(t, err)
	})
}

func TestWorkoutService_ListMonth(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	workouts := []*models.Workout{
		{ID: 1, Date: "2025-03-01", Completed: true},
		{ID: 2, Date: "2025-03-02", Completed: false},
	}
	repo.On("ListWorkouts", mock.Anything, "uid-1", "2025-03-01", "2025-04-01").
		Return(workouts, nil).Once()

	svc := newTestService(repo, cache)
	got, err := svc.ListMonth(context.Background(), "uid-1", 3, 2025)
	assert.NoError(t, err)
	assert.Equal(t, workouts, got)

	_, err = svc.ListMonth(context.Background(), "uid-1", 0, 2025)
	assert.Error(t, err)
}
