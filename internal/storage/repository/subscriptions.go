package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/magabrotheeeer/lifetrack-dashboard/internal/lib/calendar"
	"github.com/magabrotheeeer/lifetrack-dashboard/internal/models"
)

// CreateSubscription вставляет новую подписку и возвращает её ID.
func (s *Storage) CreateSubscription(ctx context.Context, entry models.Subscription) (int, error) {
	const op = "storage.CreateSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscriptions (user_uid, service_name, amount_cents,
			      billing_cycle, category, next_billing_date, is_active, url, notes)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		entry.UserUID, entry.ServiceName, entry.AmountCents, entry.BillingCycle,
		entry.Category, entry.NextBillingDate, entry.IsActive, entry.URL, entry.Notes).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// UpdateSubscription частично обновляет подписку по ID: поля со значением nil
// не изменяют сохранённые данные. Возвращает количество изменённых строк.
func (s *Storage) UpdateSubscription(ctx context.Context, upd models.DummySubscriptionUpdate, id int, userUID string) (int, error) {
	const op = "storage.UpdateSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscriptions
			  SET service_name = COALESCE($1, service_name),
			      amount_cents = COALESCE($2, amount_cents),
			      billing_cycle = COALESCE($3, billing_cycle),
			      category = COALESCE($4, category),
			      next_billing_date = COALESCE($5::date, next_billing_date),
			      is_active = COALESCE($6, is_active),
			      url = COALESCE($7, url),
			      notes = COALESCE($8, notes)
			  WHERE id = $9 AND user_uid = $10`
	result, err := s.DB.ExecContext(ctx, query,
		upd.ServiceName, upd.AmountCents, upd.BillingCycle, upd.Category,
		upd.NextBillingDate, upd.IsActive, upd.URL, upd.Notes, id, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveSubscription удаляет подписку по ID и возвращает количество удалённых строк.
func (s *Storage) RemoveSubscription(ctx context.Context, id int, userUID string) (int, error) {
	const op = "storage.RemoveSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM subscriptions WHERE id = $1 AND user_uid = $2`
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

// ToggleSubscriptionActive переключает признак активности подписки.
// Возвращает количество изменённых строк.
func (s *Storage) ToggleSubscriptionActive(ctx context.Context, id int, userUID string) (int, error) {
	const op = "storage.ToggleSubscriptionActive"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscriptions
			  SET is_active = NOT is_active
			  WHERE id = $1 AND user_uid = $2`
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

// ListSubscriptions возвращает все подписки пользователя.
func (s *Storage) ListSubscriptions(ctx context.Context, userUID string) ([]*models.Subscription, error) {
	const op = "storage.ListSubscriptions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, service_name, amount_cents, billing_cycle,
			      category, next_billing_date, is_active, url, notes
			  FROM subscriptions
			  WHERE user_uid = $1
			  ORDER BY id`
	return s.querySubscriptions(ctx, op, query, userUID)
}

// ListSubscriptionsByActive возвращает подписки пользователя
// с заданным признаком активности.
func (s *Storage) ListSubscriptionsByActive(ctx context.Context, userUID string, active bool) ([]*models.Subscription, error) {
	const op = "storage.ListSubscriptionsByActive"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, service_name, amount_cents, billing_cycle,
			      category, next_billing_date, is_active, url, notes
			  FROM subscriptions
			  WHERE user_uid = $1 AND is_active = $2
			  ORDER BY id`
	return s.querySubscriptions(ctx, op, query, userUID, active)
}

func (s *Storage) querySubscriptions(ctx context.Context, op, query string, args ...any) ([]*models.Subscription, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Subscription
	for rows.Next() {
		var item models.Subscription
		var nextBillingDate time.Time
		if err := rows.Scan(&item.ID, &item.UserUID, &item.ServiceName, &item.AmountCents,
			&item.BillingCycle, &item.Category, &nextBillingDate, &item.IsActive,
			&item.URL, &item.Notes); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		item.NextBillingDate = calendar.FormatDay(nextBillingDate)
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
