package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/lifetrack-dashboard/internal/lib/calendar"
	"github.com/magabrotheeeer/lifetrack-dashboard/internal/models"
)

// CreateJobApplication вставляет новый отклик на вакансию и возвращает его ID.
func (s *Storage) CreateJobApplication(ctx context.Context, entry models.JobApplication) (int, error) {
	const op = "storage.CreateJobApplication"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO job_applications (user_uid, company_name, position, status,
			      due_date, applied_date, job_posting_url, notes, salary, location)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		entry.UserUID, entry.CompanyName, entry.Position, entry.Status,
		entry.DueDate, entry.AppliedDate, entry.JobPostingURL,
		entry.Notes, entry.Salary, entry.Location).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// UpdateJobApplication частично обновляет отклик по ID: поля со значением nil
// не изменяют сохранённые данные. Возвращает количество изменённых строк.
func (s *Storage) UpdateJobApplication(ctx context.Context, upd models.DummyJobApplicationUpdate, id int, userUID string) (int, error) {
	const op = "storage.UpdateJobApplication"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE job_applications
			  SET company_name = COALESCE($1, company_name),
			      position = COALESCE($2, position),
			      status = COALESCE($3, status),
			      due_date = COALESCE($4::date, due_date),
			      applied_date = COALESCE($5::date, applied_date),
			      job_posting_url = COALESCE($6, job_posting_url),
			      notes = COALESCE($7, notes),
			      salary = COALESCE($8, salary),
			      location = COALESCE($9, location)
			  WHERE id = $10 AND user_uid = $11`
	result, err := s.DB.ExecContext(ctx, query,
		upd.CompanyName, upd.Position, upd.Status, upd.DueDate, upd.AppliedDate,
		upd.JobPostingURL, upd.Notes, upd.Salary, upd.Location, id, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveJobApplication удаляет отклик по ID и возвращает количество удалённых строк.
func (s *Storage) RemoveJobApplication(ctx context.Context, id int, userUID string) (int, error) {
	const op = "storage.RemoveJobApplication"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM job_applications WHERE id = $1 AND user_uid = $2`
	result, err := s.DB.ExecContext(ctx, query, id, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListJobApplications возвращает все отклики пользователя.
func (s *Storage) ListJobApplications(ctx context.Context, userUID string) ([]*models.JobApplication, error) {
	const op = "storage.ListJobApplications"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, company_name, position, status, due_date,
			      applied_date, job_posting_url, notes, salary, location
			  FROM job_applications
			  WHERE user_uid = $1
			  ORDER BY id`
	return s.queryJobApplications(ctx, op, query, userUID)
}

// ListJobApplicationsByStatus возвращает отклики пользователя с заданным статусом.
func (s *Storage) ListJobApplicationsByStatus(ctx context.Context, userUID, status string) ([]*models.JobApplication, error) {
	const op = "storage.ListJobApplicationsByStatus"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, company_name, position, status, due_date,
			      applied_date, job_posting_url, notes, salary, location
			  FROM job_applications
			  WHERE user_uid = $1 AND status = $2
			  ORDER BY id`
	return s.queryJobApplications(ctx, op, query, userUID, status)
}

// ListUpcomingJobApplications возвращает неподанные отклики с дедлайном
// не раньше today, отсортированные по дедлайну.
func (s *Storage) ListUpcomingJobApplications(ctx context.Context, userUID, today string) ([]*models.JobApplication, error) {
	const op = "storage.ListUpcomingJobApplications"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, company_name, position, status, due_date,
			      applied_date, job_posting_url, notes, salary, location
			  FROM job_applications
			  WHERE user_uid = $1
			    AND status = 'not_applied'
			    AND due_date IS NOT NULL
			    AND due_date >= $2
			  ORDER BY due_date`
	return s.queryJobApplications(ctx, op, query, userUID, today)
}

func (s *Storage) queryJobApplications(ctx context.Context, op, query string, args ...any) ([]*models.JobApplication, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.JobApplication
	for rows.Next() {
		var item models.JobApplication
		var dueDate, appliedDate sql.NullTime
		if err := rows.Scan(&item.ID, &item.UserUID, &item.CompanyName, &item.Position,
			&item.Status, &dueDate, &appliedDate, &item.JobPostingURL,
			&item.Notes, &item.Salary, &item.Location); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if dueDate.Valid {
			d := calendar.FormatDay(dueDate.Time)
			item.DueDate = &d
		}
		if appliedDate.Valid {
			d := calendar.FormatDay(appliedDate.Time)
			item.AppliedDate = &d
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
