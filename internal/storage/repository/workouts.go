package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/magabrotheeeer/lifetrack-dashboard/internal/lib/calendar"
	"github.com/magabrotheeeer/lifetrack-dashboard/internal/models"
)

// UpsertWorkout вставляет отметку о тренировке или обновляет существующую
// для пары (пользователь, дата) и возвращает ID записи.
func (s *Storage) UpsertWorkout(ctx context.Context, entry models.Workout) (int, error) {
	const op = "storage.UpsertWorkout"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO workouts (user_uid, workout_date, completed, workout_type, notes)
			  VALUES ($1, $2, $3, $4, $5)
			  ON CONFLICT (user_uid, workout_date)
			  DO UPDATE SET completed = EXCLUDED.completed,
			      workout_type = EXCLUDED.workout_type,
			      notes = EXCLUDED.notes
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		entry.UserUID, entry.Date, entry.Completed, entry.WorkoutType, entry.Notes).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListWorkouts возвращает тренировки пользователя в полуинтервале
// [startDate, endDate), отсортированные по дате.
func (s *Storage) ListWorkouts(ctx context.Context, userUID, startDate, endDate string) ([]*models.Workout, error) {
	const op = "storage.ListWorkouts"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, workout_date, completed, workout_type, notes
			  FROM workouts
			  WHERE user_uid = $1
			    AND workout_date >= $2
			    AND workout_date < $3
			  ORDER BY workout_date`
	rows, err := s.DB.QueryContext(ctx, query, userUID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Workout
	for rows.Next() {
		var item models.Workout
		var date time.Time
		if err := rows.Scan(&item.ID, &item.UserUID, &date, &item.Completed,
			&item.WorkoutType, &item.Notes); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		item.Date = calendar.FormatDay(date)
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListCompletedDates возвращает все даты завершённых тренировок пользователя
// в виде строк 2006-01-02.
func (s *Storage) ListCompletedDates(ctx context.Context, userUID string) ([]string, error) {
	const op = "storage.ListCompletedDates"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT workout_date
			  FROM workouts
			  WHERE user_uid = $1
			    AND completed = true`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []string
	for rows.Next() {
		var date time.Time
		if err := rows.Scan(&date); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, calendar.FormatDay(date))
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountCompletedInRange подсчитывает завершённые тренировки пользователя
// в полуинтервале [startDate, endDate).
func (s *Storage) CountCompletedInRange(ctx context.Context, userUID, startDate, endDate string) (int, error) {
	const op = "storage.CountCompletedInRange"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COUNT(*)
			  FROM workouts
			  WHERE user_uid = $1
			    AND completed = true
			    AND workout_date >= $2
			    AND workout_date < $3`
	var count int
	if err := s.DB.QueryRowContext(ctx, query, userUID, startDate, endDate).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
